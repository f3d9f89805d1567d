package integration

import (
	"sync"

	"github.com/iliyamo/storage-booking/internal/config"
	"github.com/iliyamo/storage-booking/internal/utils"
)

// Providers hands out the configured clients.  Each accessor returns an
// UnavailableError when that service has no credentials.
type Providers interface {
	Payments() (PaymentGateway, error)
	SMS() (SMSSender, error)
	Email() (EmailSender, error)
}

// Registry builds provider clients from an IntegrationConfig and swaps
// them atomically on Reload.
type Registry struct {
	cfg *config.IntegrationConfig

	mu       sync.RWMutex
	payments PaymentGateway
	sms      SMSSender
	email    EmailSender
}

// NewRegistry builds clients from the config's current settings.
func NewRegistry(cfg *config.IntegrationConfig) *Registry {
	r := &Registry{cfg: cfg}
	r.rebuild(cfg.Current())
	return r
}

// Reload applies stored keys on top of the environment and rebuilds the
// clients.  Clients in use by in-flight calls are not interrupted.
func (r *Registry) Reload(keys []config.StoredKey) config.IntegrationSettings {
	s := r.cfg.Apply(keys)
	r.rebuild(s)
	return s
}

// Settings returns the settings the current clients were built from.
func (r *Registry) Settings() config.IntegrationSettings {
	return r.cfg.Current()
}

func (r *Registry) rebuild(s config.IntegrationSettings) {
	var (
		p PaymentGateway
		m SMSSender
		e EmailSender
	)
	if s.StripeConfigured() {
		p = NewStripeGateway(s.Stripe.SecretKey)
	}
	if s.TwilioConfigured() {
		m = NewTwilioSender(s.Twilio.AccountSID, s.Twilio.AuthToken, s.Twilio.FromNumber)
	}
	if s.SendGridConfigured() {
		e = NewSendGridSender(s.SendGrid.APIKey, s.SendGrid.FromEmail, s.SendGrid.FromName, s.SendGrid.Sandbox)
	}

	r.mu.Lock()
	r.payments, r.sms, r.email = p, m, e
	r.mu.Unlock()

	utils.Logger.Infof("integrations loaded: stripe=%t twilio=%t sendgrid=%t",
		p != nil, m != nil, e != nil)
}

func (r *Registry) Payments() (PaymentGateway, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.payments == nil {
		return nil, notConfigured("stripe")
	}
	return r.payments, nil
}

func (r *Registry) SMS() (SMSSender, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.sms == nil {
		return nil, notConfigured("twilio")
	}
	return r.sms, nil
}

func (r *Registry) Email() (EmailSender, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.email == nil {
		return nil, notConfigured("sendgrid")
	}
	return r.email, nil
}
