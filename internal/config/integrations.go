package config

import (
	"os"
	"strings"
	"sync"
)

// StripeSettings configures the payment provider.
type StripeSettings struct {
	SecretKey string
}

// TestMode reports whether the key is a Stripe test key.
func (s StripeSettings) TestMode() bool { return strings.HasPrefix(s.SecretKey, "sk_test_") }

// TwilioSettings configures SMS delivery.
type TwilioSettings struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// SendGridSettings configures e-mail delivery.
type SendGridSettings struct {
	APIKey    string
	FromEmail string
	FromName  string
	Sandbox   bool
}

// IntegrationSettings is one immutable view of every provider's settings.
type IntegrationSettings struct {
	Stripe   StripeSettings
	Twilio   TwilioSettings
	SendGrid SendGridSettings
}

// StripeConfigured and its siblings report whether the minimum credentials
// for that service are set.
func (s IntegrationSettings) StripeConfigured() bool { return s.Stripe.SecretKey != "" }
func (s IntegrationSettings) TwilioConfigured() bool {
	return s.Twilio.AccountSID != "" && s.Twilio.AuthToken != "" && s.Twilio.FromNumber != ""
}
func (s IntegrationSettings) SendGridConfigured() bool {
	return s.SendGrid.APIKey != "" && s.SendGrid.FromEmail != ""
}

// StoredKey is a decrypted credential read from the api_keys collection.
type StoredKey struct {
	Service string
	KeyName string
	Value   string
}

// IntegrationConfig owns the current IntegrationSettings.  Environment
// variables form the base layer; stored API keys override them on Reload.
// Readers call Current and get a consistent snapshot.
type IntegrationConfig struct {
	mu      sync.RWMutex
	base    IntegrationSettings
	current IntegrationSettings
}

// LoadIntegrationConfig reads the environment layer.
func LoadIntegrationConfig() *IntegrationConfig {
	base := IntegrationSettings{
		Stripe: StripeSettings{SecretKey: os.Getenv("STRIPE_SECRET_KEY")},
		Twilio: TwilioSettings{
			AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
			FromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
		},
		SendGrid: SendGridSettings{
			APIKey:    os.Getenv("SENDGRID_API_KEY"),
			FromEmail: os.Getenv("SENDGRID_FROM_EMAIL"),
			FromName:  envStr("SENDGRID_FROM_NAME", "RV & Boat Storage"),
			Sandbox:   envBool("SENDGRID_SANDBOX", false),
		},
	}
	return NewIntegrationConfig(base)
}

// NewIntegrationConfig starts from an explicit base layer.
func NewIntegrationConfig(base IntegrationSettings) *IntegrationConfig {
	return &IntegrationConfig{base: base, current: base}
}

// Current returns the active settings.
func (c *IntegrationConfig) Current() IntegrationSettings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Apply rebuilds the active settings from the base layer plus keys.
// Unknown service or key names are ignored.
func (c *IntegrationConfig) Apply(keys []StoredKey) IntegrationSettings {
	next := c.base
	for _, k := range keys {
		switch k.Service + "/" + k.KeyName {
		case "stripe/secret_key":
			next.Stripe.SecretKey = k.Value
		case "twilio/account_sid":
			next.Twilio.AccountSID = k.Value
		case "twilio/auth_token":
			next.Twilio.AuthToken = k.Value
		case "twilio/from_number":
			next.Twilio.FromNumber = k.Value
		case "sendgrid/api_key":
			next.SendGrid.APIKey = k.Value
		case "sendgrid/from_email":
			next.SendGrid.FromEmail = k.Value
		}
	}
	c.mu.Lock()
	c.current = next
	c.mu.Unlock()
	return next
}
