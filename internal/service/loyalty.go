package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/storage-booking/internal/model"
	"github.com/iliyamo/storage-booking/internal/repository"
)

// Tier thresholds in lifetime points.
const (
	silverThreshold   = 500
	goldThreshold     = 1500
	platinumThreshold = 5000
)

// TierFor maps lifetime points to a tier.
func TierFor(lifetimePoints int64) model.LoyaltyTier {
	switch {
	case lifetimePoints >= platinumThreshold:
		return model.TierPlatinum
	case lifetimePoints >= goldThreshold:
		return model.TierGold
	case lifetimePoints >= silverThreshold:
		return model.TierSilver
	}
	return model.TierBronze
}

// PointsForAmount earns one point per whole dollar.
func PointsForAmount(amount float64) int64 {
	if amount <= 0 {
		return 0
	}
	return decimal.NewFromFloat(amount).Floor().IntPart()
}

func withTier(c *model.Customer) *model.Customer {
	c.LoyaltyTier = TierFor(c.LifetimePoints)
	return c
}

// ErrInsufficientPoints is returned when a redemption exceeds the balance.
var ErrInsufficientPoints = &ValidationError{Message: "Insufficient loyalty points"}

// PointsRequest is the input to Award and Redeem.
type PointsRequest struct {
	CustomerID  string `json:"customer_id" validate:"required"`
	Points      int64  `json:"points" validate:"gt=0"`
	Description string `json:"description"`
}

// LoyaltySummary is a customer's loyalty state.
type LoyaltySummary struct {
	CustomerID     string                     `json:"customer_id"`
	Points         int64                      `json:"points"`
	LifetimePoints int64                      `json:"lifetime_points"`
	Tier           model.LoyaltyTier          `json:"tier"`
	LifetimeValue  float64                    `json:"lifetime_value"`
	Transactions   []model.LoyaltyTransaction `json:"transactions"`
}

// Loyalty manages points balances and their history.
type Loyalty struct {
	store repository.Store
}

func NewLoyalty(store repository.Store) *Loyalty {
	return &Loyalty{store: store}
}

func (l *Loyalty) Summary(ctx context.Context, customerID string) (*LoyaltySummary, error) {
	c, err := l.store.GetCustomer(ctx, customerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Customer")
	}
	if err != nil {
		return nil, err
	}
	txs, err := l.store.ListLoyaltyTransactions(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &LoyaltySummary{
		CustomerID:     c.ID,
		Points:         c.LoyaltyPoints,
		LifetimePoints: c.LifetimePoints,
		Tier:           TierFor(c.LifetimePoints),
		LifetimeValue:  c.LifetimeValue,
		Transactions:   txs,
	}, nil
}

// Award adds points to the balance and to lifetime points.
func (l *Loyalty) Award(ctx context.Context, req PointsRequest) (*model.Customer, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	return l.apply(ctx, req.CustomerID, repository.CustomerDelta{Points: req.Points, Lifetime: req.Points},
		req.Points, "earned", req.Description, nil)
}

// Redeem spends points.  Lifetime points, and so the tier, are unchanged.
func (l *Loyalty) Redeem(ctx context.Context, req PointsRequest) (*model.Customer, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	return l.apply(ctx, req.CustomerID, repository.CustomerDelta{Points: -req.Points},
		-req.Points, "redeemed", req.Description, nil)
}

// AwardForPayment credits a paid booking: points for the amount, plus the
// amount itself towards lifetime value.
func (l *Loyalty) AwardForPayment(ctx context.Context, customerID, bookingID string, amount float64) (*model.Customer, error) {
	pts := PointsForAmount(amount)
	value, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return l.apply(ctx, customerID, repository.CustomerDelta{Points: pts, Lifetime: pts, Value: value},
		pts, "earned", "Booking payment", &bookingID)
}

func (l *Loyalty) apply(ctx context.Context, customerID string, d repository.CustomerDelta, points int64, kind, desc string, bookingID *string) (*model.Customer, error) {
	c, err := l.store.ApplyCustomerDelta(ctx, customerID, d)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, notFound("Customer")
	case errors.Is(err, repository.ErrInsufficientPoints):
		return nil, ErrInsufficientPoints
	case err != nil:
		return nil, err
	}
	if points != 0 {
		tx := &model.LoyaltyTransaction{
			ID:          uuid.NewString(),
			CustomerID:  customerID,
			Points:      points,
			Kind:        kind,
			Description: desc,
			BookingID:   bookingID,
			CreatedAt:   time.Now().UTC(),
		}
		if err := l.store.AddLoyaltyTransaction(ctx, tx); err != nil {
			return nil, err
		}
	}
	return withTier(c), nil
}
