package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
)

func newTestStripe(t *testing.T, hits *int32) *StripeGateway {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodPost:
			_, _ = w.Write([]byte(`{"id":"cs_test_1","object":"checkout.session","url":"https://checkout.example/cs_test_1"}`))
		default:
			_, _ = w.Write([]byte(`{"id":"cs_test_1","object":"checkout.session","status":"complete","payment_status":"paid","amount_total":20000,"currency":"usd"}`))
		}
	}))
	t.Cleanup(srv.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		MaxNetworkRetries: stripe.Int64(0),
	})
	return newStripeGateway("sk_test_123", &stripe.Backends{API: backend, Connect: backend, Uploads: backend})
}

func TestStripeGatewayCheckoutAndStatus(t *testing.T) {
	var hits int32
	g := newTestStripe(t, &hits)
	ctx := context.Background()

	s, err := g.CreateCheckout(ctx, CheckoutRequest{
		AmountCents: 20000, ProductName: "Enclosed Parking 12x30",
		SuccessURL: "https://example.com/ok", CancelURL: "https://example.com/cancel",
		Metadata: map[string]string{"booking_id": "b-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", s.SessionID)
	assert.Equal(t, "https://checkout.example/cs_test_1", s.URL)

	st, err := g.GetStatus(ctx, "cs_test_1")
	require.NoError(t, err)
	assert.Equal(t, "paid", st.PaymentStatus)
	assert.Equal(t, int64(20000), st.AmountTotal)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestStripeGatewayHonoursCancelledContext(t *testing.T) {
	var hits int32
	g := newTestStripe(t, &hits)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.CreateCheckout(ctx, CheckoutRequest{AmountCents: 100, ProductName: "x"})
	assert.ErrorIs(t, err, ErrExternalService)
	_, err = g.GetStatus(ctx, "cs_test_1")
	assert.ErrorIs(t, err, ErrExternalService)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}
