package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/storage-booking/internal/model"
	"github.com/iliyamo/storage-booking/internal/repository"
	"github.com/iliyamo/storage-booking/internal/repository/memstore"
)

func TestTierFor(t *testing.T) {
	assert.Equal(t, model.TierBronze, TierFor(0))
	assert.Equal(t, model.TierBronze, TierFor(499))
	assert.Equal(t, model.TierSilver, TierFor(500))
	assert.Equal(t, model.TierGold, TierFor(1500))
	assert.Equal(t, model.TierPlatinum, TierFor(5000))
}

func TestPointsForAmount(t *testing.T) {
	assert.Equal(t, int64(200), PointsForAmount(200))
	assert.Equal(t, int64(19), PointsForAmount(19.99))
	assert.Equal(t, int64(0), PointsForAmount(-5))
}

func newCustomer(t *testing.T, store *memstore.Store, email string) *model.Customer {
	t.Helper()
	c, err := NewCustomers(store).Create(context.Background(), CustomerRequest{
		FirstName: "Sam", LastName: "Lee", Email: email,
	})
	require.NoError(t, err)
	return c
}

func TestAwardAndRedeem(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	c := newCustomer(t, store, "sam@example.com")
	l := NewLoyalty(store)

	got, err := l.Award(ctx, PointsRequest{CustomerID: c.ID, Points: 600, Description: "welcome"})
	require.NoError(t, err)
	assert.Equal(t, int64(600), got.LoyaltyPoints)
	assert.Equal(t, model.TierSilver, got.LoyaltyTier)

	got, err = l.Redeem(ctx, PointsRequest{CustomerID: c.ID, Points: 200})
	require.NoError(t, err)
	assert.Equal(t, int64(400), got.LoyaltyPoints)
	assert.Equal(t, model.TierSilver, got.LoyaltyTier, "redeeming keeps lifetime points")

	_, err = l.Redeem(ctx, PointsRequest{CustomerID: c.ID, Points: 401})
	assert.ErrorIs(t, err, ErrInsufficientPoints)

	sum, err := l.Summary(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(400), sum.Points)
	require.Len(t, sum.Transactions, 2)
	assert.Equal(t, int64(-200), sum.Transactions[0].Points)
	assert.Equal(t, "redeemed", sum.Transactions[0].Kind)
}

func TestPointsValidation(t *testing.T) {
	l := NewLoyalty(memstore.New())
	_, err := l.Award(context.Background(), PointsRequest{CustomerID: "x", Points: 0})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "points")

	_, err = l.Award(context.Background(), PointsRequest{CustomerID: "x", Points: 5})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCustomersCreateAndList(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := NewCustomers(store)
	a := newCustomer(t, store, "a@example.com")
	_, err := svc.Create(ctx, CustomerRequest{FirstName: "B", LastName: "Corp", Email: "b@example.com", Company: "Harbor", CustomerType: "business"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CustomerRequest{FirstName: "A", LastName: "Again", Email: "A@example.com"})
	assert.ErrorIs(t, err, repository.ErrConflict)

	_, err = NewLoyalty(store).Award(ctx, PointsRequest{CustomerID: a.ID, Points: 1600})
	require.NoError(t, err)

	list, err := svc.List(ctx, CustomerQuery{LoyaltyTier: model.TierGold})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)

	list, err = svc.List(ctx, CustomerQuery{Search: "harbor"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "business", list[0].CustomerType)
	assert.Equal(t, model.TierBronze, list[0].LoyaltyTier)

	_, err = svc.Get(ctx, "nope")
	assert.EqualError(t, err, "Customer not found")
}

func TestCustomerBookings(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	_, v1, _ := seedUnits(t, store)
	customers := NewCustomers(store)
	_, err := NewLedger(store, nil, customers, nil).CreateBooking(ctx, bookingFor(v1, model.PeriodMonthly))
	require.NoError(t, err)

	c, err := store.GetCustomerByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	bookings, err := customers.Bookings(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}
