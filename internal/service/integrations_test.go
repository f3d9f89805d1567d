package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/storage-booking/internal/config"
	"github.com/iliyamo/storage-booking/internal/integration"
	"github.com/iliyamo/storage-booking/internal/repository"
	"github.com/iliyamo/storage-booking/internal/repository/memstore"
	"github.com/iliyamo/storage-booking/internal/utils"
)

func TestSaveKeySealsMasksAndReloads(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	registry := integration.NewRegistry(config.NewIntegrationConfig(config.IntegrationSettings{}))
	svc := NewIntegrations(store, utils.NewSealer("test-secret"), registry)

	assert.False(t, svc.Status().Stripe.Configured)

	k, err := svc.SaveKey(ctx, APIKeyRequest{Service: "stripe", KeyName: "secret_key", KeyValue: "sk_test_1234567890"})
	require.NoError(t, err)
	assert.Equal(t, "sk_t...7890", k.KeyValue)
	assert.Equal(t, "test", k.Environment)

	st := svc.Status()
	assert.True(t, st.Stripe.Configured)
	assert.True(t, st.Stripe.TestMode)
	_, err = registry.Payments()
	assert.NoError(t, err)

	stored, err := store.ListAPIKeys(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.NotContains(t, string(stored[0].SealedValue), "sk_test_1234567890")

	// same service and key name replaces, keeping the id
	k2, err := svc.SaveKey(ctx, APIKeyRequest{Service: "stripe", KeyName: "secret_key", KeyValue: "sk_live_abcdefghij", Environment: "live"})
	require.NoError(t, err)
	assert.Equal(t, k.ID, k2.ID)
	assert.False(t, svc.Status().Stripe.TestMode)

	listed, err := svc.ListKeys(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "sk_l...ghij", listed[0].KeyValue)

	require.NoError(t, svc.DeleteKey(ctx, k.ID))
	assert.False(t, svc.Status().Stripe.Configured)
	assert.ErrorIs(t, svc.DeleteKey(ctx, k.ID), repository.ErrNotFound)
}

func TestReloadSkipsKeysSealedWithAnotherSecret(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	registry := integration.NewRegistry(config.NewIntegrationConfig(config.IntegrationSettings{}))
	_, err := NewIntegrations(store, utils.NewSealer("old"), registry).SaveKey(ctx,
		APIKeyRequest{Service: "stripe", KeyName: "secret_key", KeyValue: "sk_test_1234567890"})
	require.NoError(t, err)

	svc := NewIntegrations(store, utils.NewSealer("new"), registry)
	st, err := svc.Reload(ctx)
	require.NoError(t, err)
	assert.False(t, st.Stripe.Configured)

	listed, err := svc.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, "(unreadable)", listed[0].KeyValue)
}

func TestSaveKeyValidation(t *testing.T) {
	registry := integration.NewRegistry(config.NewIntegrationConfig(config.IntegrationSettings{}))
	svc := NewIntegrations(memstore.New(), utils.NewSealer("s"), registry)
	_, err := svc.SaveKey(context.Background(), APIKeyRequest{Service: "paypal", KeyName: "k", KeyValue: "v"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "service")
}
