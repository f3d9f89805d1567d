package integration

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/storage-booking/internal/config"
)

func TestRegistryWithoutCredentials(t *testing.T) {
	r := NewRegistry(config.NewIntegrationConfig(config.IntegrationSettings{}))

	_, err := r.Payments()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIntegrationUnavailable))
	assert.Equal(t, "stripe is not configured", err.Error())

	_, err = r.SMS()
	assert.ErrorIs(t, err, ErrIntegrationUnavailable)
	_, err = r.Email()
	assert.ErrorIs(t, err, ErrIntegrationUnavailable)
}

func TestRegistryReloadAppliesStoredKeys(t *testing.T) {
	base := config.IntegrationSettings{
		SendGrid: config.SendGridSettings{FromEmail: "noreply@example.com", FromName: "Storage"},
	}
	r := NewRegistry(config.NewIntegrationConfig(base))

	s := r.Reload([]config.StoredKey{
		{Service: "stripe", KeyName: "secret_key", Value: "sk_test_123"},
		{Service: "sendgrid", KeyName: "api_key", Value: "SG.abc"},
		{Service: "unknown", KeyName: "x", Value: "y"},
	})
	assert.True(t, s.StripeConfigured())
	assert.True(t, s.Stripe.TestMode())
	assert.True(t, s.SendGridConfigured())
	assert.False(t, s.TwilioConfigured())

	p, err := r.Payments()
	require.NoError(t, err)
	assert.IsType(t, &StripeGateway{}, p)
	e, err := r.Email()
	require.NoError(t, err)
	assert.IsType(t, &SendGridSender{}, e)
	_, err = r.SMS()
	assert.ErrorIs(t, err, ErrIntegrationUnavailable)

	// keys removed: back to the environment layer
	r.Reload(nil)
	_, err = r.Payments()
	assert.ErrorIs(t, err, ErrIntegrationUnavailable)
}

func TestGuardedWrapsProviderErrors(t *testing.T) {
	cb := newBreaker("test")
	_, err := guarded(cb, func() (int, error) { return 0, errors.New("boom") })
	assert.ErrorIs(t, err, ErrExternalService)
	assert.Contains(t, err.Error(), "boom")

	v, err := guarded(cb, func() (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestGuardedOpenBreakerIsUnavailable(t *testing.T) {
	cb := newBreaker("flaky")
	for i := 0; i < 5; i++ {
		_, _ = guarded(cb, func() (int, error) { return 0, errors.New("down") })
	}
	_, err := guarded(cb, func() (int, error) { return 1, nil })
	assert.ErrorIs(t, err, ErrIntegrationUnavailable)
}
