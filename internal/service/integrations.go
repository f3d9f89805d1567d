package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/storage-booking/internal/config"
	"github.com/iliyamo/storage-booking/internal/model"
	"github.com/iliyamo/storage-booking/internal/repository"
	"github.com/iliyamo/storage-booking/internal/utils"
)

// APIKeyRequest stores or replaces a credential.
type APIKeyRequest struct {
	Service     string `json:"service" validate:"required,oneof=stripe twilio sendgrid"`
	KeyName     string `json:"key_name" validate:"required"`
	KeyValue    string `json:"key_value" validate:"required"`
	Environment string `json:"environment" validate:"omitempty,oneof=test live"`
}

// IntegrationStatus reports which providers are usable.
type IntegrationStatus struct {
	Stripe struct {
		Configured bool `json:"configured"`
		TestMode   bool `json:"test_mode"`
	} `json:"stripe"`
	Twilio struct {
		Configured bool   `json:"configured"`
		FromNumber string `json:"from_number"`
	} `json:"twilio"`
	SendGrid struct {
		Configured bool   `json:"configured"`
		FromEmail  string `json:"from_email"`
	} `json:"sendgrid"`
}

// Reloader rebuilds provider clients from stored keys.
type Reloader interface {
	Reload(keys []config.StoredKey) config.IntegrationSettings
	Settings() config.IntegrationSettings
}

// Integrations manages stored credentials and keeps the provider
// registry in step with them.
type Integrations struct {
	store    repository.Store
	sealer   *utils.Sealer
	registry Reloader
}

func NewIntegrations(store repository.Store, sealer *utils.Sealer, registry Reloader) *Integrations {
	return &Integrations{store: store, sealer: sealer, registry: registry}
}

// ListKeys returns every stored key with its value masked.
func (s *Integrations) ListKeys(ctx context.Context) ([]model.APIKey, error) {
	keys, err := s.store.ListAPIKeys(ctx)
	if err != nil {
		return nil, err
	}
	for i := range keys {
		plain, err := s.sealer.Open(keys[i].SealedValue)
		if err != nil {
			keys[i].KeyValue = "(unreadable)"
			continue
		}
		keys[i].KeyValue = utils.MaskSecret(plain)
	}
	return keys, nil
}

// SaveKey upserts on service and key name, then reloads the registry.
// The returned key is masked.
func (s *Integrations) SaveKey(ctx context.Context, req APIKeyRequest) (*model.APIKey, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.Environment == "" {
		req.Environment = "test"
	}
	sealed, err := s.sealer.Seal(req.KeyValue)
	if err != nil {
		return nil, fmt.Errorf("seal key: %w", err)
	}
	k := &model.APIKey{
		ID:          uuid.NewString(),
		Service:     req.Service,
		KeyName:     req.KeyName,
		SealedValue: sealed,
		Environment: req.Environment,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.UpsertAPIKey(ctx, k); err != nil {
		return nil, err
	}
	if _, err := s.Reload(ctx); err != nil {
		return nil, err
	}
	k.KeyValue = utils.MaskSecret(req.KeyValue)
	return k, nil
}

func (s *Integrations) DeleteKey(ctx context.Context, id string) error {
	if err := s.store.DeleteAPIKey(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("API key")
		}
		return err
	}
	_, err := s.Reload(ctx)
	return err
}

// Reload unseals every stored key and rebuilds the provider clients.
// Keys that fail to unseal are skipped with a warning.
func (s *Integrations) Reload(ctx context.Context) (*IntegrationStatus, error) {
	keys, err := s.store.ListAPIKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	stored := make([]config.StoredKey, 0, len(keys))
	for _, k := range keys {
		plain, err := s.sealer.Open(k.SealedValue)
		if err != nil {
			utils.Logger.WithField("service", k.Service).WithField("key_name", k.KeyName).
				Warn("stored api key cannot be unsealed with the current SECRET_KEY; skipped")
			continue
		}
		stored = append(stored, config.StoredKey{Service: k.Service, KeyName: k.KeyName, Value: plain})
	}
	return statusOf(s.registry.Reload(stored)), nil
}

// Status reports the settings currently in use.
func (s *Integrations) Status() *IntegrationStatus {
	return statusOf(s.registry.Settings())
}

func statusOf(st config.IntegrationSettings) *IntegrationStatus {
	out := &IntegrationStatus{}
	out.Stripe.Configured = st.StripeConfigured()
	out.Stripe.TestMode = st.Stripe.TestMode()
	out.Twilio.Configured = st.TwilioConfigured()
	out.Twilio.FromNumber = st.Twilio.FromNumber
	out.SendGrid.Configured = st.SendGridConfigured()
	out.SendGrid.FromEmail = st.SendGrid.FromEmail
	return out
}
