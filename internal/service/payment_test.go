package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/storage-booking/internal/integration"
	"github.com/iliyamo/storage-booking/internal/model"
	"github.com/iliyamo/storage-booking/internal/repository"
	"github.com/iliyamo/storage-booking/internal/repository/memstore"
)

func TestCheckoutWithoutStripeIsUnavailable(t *testing.T) {
	p := NewPayments(memstore.New(), &fakeProviders{}, nil)
	_, err := p.Checkout(context.Background(), CheckoutRequest{BookingID: "b", OriginURL: "http://localhost:3000"})
	assert.ErrorIs(t, err, integration.ErrIntegrationUnavailable)
}

func TestCheckoutAndStatusAwardPointsOnce(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	_, v1, _ := seedUnits(t, store)
	customers := NewCustomers(store)
	b, err := NewLedger(store, nil, customers, nil).CreateBooking(ctx, bookingFor(v1, model.PeriodMonthly))
	require.NoError(t, err)

	gw := &fakeGateway{status: integration.CheckoutStatus{Status: "open", PaymentStatus: "unpaid"}}
	loyalty := NewLoyalty(store)
	p := NewPayments(store, &fakeProviders{payments: gw}, loyalty)

	session, err := p.Checkout(ctx, CheckoutRequest{BookingID: b.ID, OriginURL: "https://shop.example/"})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", session.SessionID)
	require.Len(t, gw.created, 1)
	assert.Equal(t, int64(20000), gw.created[0].AmountCents)
	assert.Equal(t, "https://shop.example/payment-success?session_id={CHECKOUT_SESSION_ID}", gw.created[0].SuccessURL)
	assert.Equal(t, b.ID, gw.created[0].Metadata["booking_id"])

	st, err := p.Status(ctx, "cs_test_1")
	require.NoError(t, err)
	assert.Equal(t, "unpaid", st.PaymentStatus)
	assert.Zero(t, st.PointsAwarded)

	gw.status = integration.CheckoutStatus{Status: "complete", PaymentStatus: "paid"}
	st, err = p.Status(ctx, "cs_test_1")
	require.NoError(t, err)
	assert.Equal(t, int64(200), st.PointsAwarded)

	st, err = p.Status(ctx, "cs_test_1")
	require.NoError(t, err)
	assert.Zero(t, st.PointsAwarded)

	c, err := store.GetCustomerByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(200), c.LoyaltyPoints)
	assert.Equal(t, 200.0, c.LifetimeValue)

	tx, err := store.GetPaymentBySession(ctx, "cs_test_1")
	require.NoError(t, err)
	assert.Equal(t, "paid", tx.PaymentStatus)
	assert.True(t, tx.PointsAwarded)
}

func TestCheckoutValidation(t *testing.T) {
	p := NewPayments(memstore.New(), &fakeProviders{payments: &fakeGateway{}}, nil)
	_, err := p.Checkout(context.Background(), CheckoutRequest{BookingID: "b", OriginURL: "not a url"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "origin_url")

	_, err = p.Checkout(context.Background(), CheckoutRequest{BookingID: "missing", OriginURL: "http://localhost:3000"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = p.Status(context.Background(), "cs_unknown")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
