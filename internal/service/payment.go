package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/storage-booking/internal/integration"
	"github.com/iliyamo/storage-booking/internal/model"
	"github.com/iliyamo/storage-booking/internal/repository"
	"github.com/iliyamo/storage-booking/internal/utils"
)

// CheckoutRequest asks for a hosted payment page for a booking.
// OriginURL is the storefront origin the customer returns to.
type CheckoutRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
	OriginURL string `json:"origin_url" validate:"required,url"`
}

// PaymentStatus is returned by Status.
type PaymentStatus struct {
	SessionID     string  `json:"session_id"`
	BookingID     string  `json:"booking_id"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	PointsAwarded int64   `json:"points_awarded"`
}

// Payments opens checkout sessions for bookings and tracks their outcome.
type Payments struct {
	store     repository.Store
	providers integration.Providers
	loyalty   *Loyalty
}

func NewPayments(store repository.Store, providers integration.Providers, loyalty *Loyalty) *Payments {
	return &Payments{store: store, providers: providers, loyalty: loyalty}
}

// Checkout charges the booking's total price.  The amount always comes
// from the stored booking.
func (p *Payments) Checkout(ctx context.Context, req CheckoutRequest) (*integration.CheckoutSession, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	gw, err := p.providers.Payments()
	if err != nil {
		return nil, err
	}
	b, err := p.store.GetBooking(ctx, req.BookingID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Booking")
	}
	if err != nil {
		return nil, err
	}
	if b.TotalPrice <= 0 {
		return nil, invalid("booking_id", "booking has nothing to pay")
	}

	origin := strings.TrimRight(req.OriginURL, "/")
	session, err := gw.CreateCheckout(ctx, integration.CheckoutRequest{
		AmountCents: ToCents(b.TotalPrice),
		Currency:    "usd",
		ProductName: fmt.Sprintf("Storage booking %s (%s)", b.ID, b.PricingPeriod),
		SuccessURL:  origin + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:   origin + "/payment-cancelled",
		Metadata: map[string]string{
			"booking_id":     b.ID,
			"customer_email": b.CustomerEmail,
		},
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tx := &model.PaymentTransaction{
		ID:            uuid.NewString(),
		SessionID:     session.SessionID,
		BookingID:     b.ID,
		CustomerEmail: b.CustomerEmail,
		Amount:        b.TotalPrice,
		Currency:      "usd",
		Status:        "initiated",
		PaymentStatus: "pending",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := p.store.CreatePayment(ctx, tx); err != nil {
		return nil, err
	}
	return session, nil
}

// Status refreshes a session from the provider.  The first time it is
// seen paid, the booking's customer earns loyalty points; later calls do
// not award again.
func (p *Payments) Status(ctx context.Context, sessionID string) (*PaymentStatus, error) {
	tx, err := p.store.GetPaymentBySession(ctx, sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Payment session")
	}
	if err != nil {
		return nil, err
	}
	gw, err := p.providers.Payments()
	if err != nil {
		return nil, err
	}
	st, err := gw.GetStatus(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if st.Status != tx.Status || st.PaymentStatus != tx.PaymentStatus {
		if err := p.store.UpdatePaymentStatus(ctx, sessionID, st.Status, st.PaymentStatus); err != nil {
			return nil, err
		}
	}

	out := &PaymentStatus{
		SessionID:     sessionID,
		BookingID:     tx.BookingID,
		Status:        st.Status,
		PaymentStatus: st.PaymentStatus,
		Amount:        tx.Amount,
		Currency:      tx.Currency,
	}
	if st.PaymentStatus == "paid" {
		out.PointsAwarded = p.awardOnce(ctx, tx)
	}
	return out, nil
}

func (p *Payments) awardOnce(ctx context.Context, tx *model.PaymentTransaction) int64 {
	first, err := p.store.MarkPointsAwarded(ctx, tx.SessionID)
	if err != nil || !first {
		return 0
	}
	log := utils.Logger.WithField("session_id", tx.SessionID)
	c, err := p.store.GetCustomerByEmail(ctx, tx.CustomerEmail)
	if err != nil {
		log.WithError(err).Warn("paid session has no customer; points not awarded")
		return 0
	}
	if _, err := p.loyalty.AwardForPayment(ctx, c.ID, tx.BookingID, tx.Amount); err != nil {
		log.WithError(err).Warn("loyalty award failed")
		return 0
	}
	return PointsForAmount(tx.Amount)
}
