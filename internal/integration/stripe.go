package integration

import (
	"context"

	"github.com/sony/gobreaker"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// CheckoutRequest describes a one-off hosted checkout.
type CheckoutRequest struct {
	AmountCents int64
	Currency    string
	ProductName string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// CheckoutSession is what the front end needs to redirect the customer.
type CheckoutSession struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// CheckoutStatus is the provider's view of a session.
type CheckoutStatus struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `json:"currency"`
}

// PaymentGateway opens and inspects checkout sessions.
type PaymentGateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	GetStatus(ctx context.Context, sessionID string) (*CheckoutStatus, error)
}

// StripeGateway implements PaymentGateway with Stripe Checkout.
type StripeGateway struct {
	api *client.API
	cb  *gobreaker.CircuitBreaker
}

// NewStripeGateway builds a client bound to secretKey.
func NewStripeGateway(secretKey string) *StripeGateway {
	return newStripeGateway(secretKey, nil)
}

// newStripeGateway uses backends instead of the default Stripe endpoints
// when non-nil.
func newStripeGateway(secretKey string, backends *stripe.Backends) *StripeGateway {
	sc := &client.API{}
	sc.Init(secretKey, backends)
	return &StripeGateway{api: sc, cb: newBreaker("stripe")}
}

// CreateCheckout opens a single line item payment session.
func (g *StripeGateway) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(req.ProductName),
				},
				UnitAmount: stripe.Int64(req.AmountCents),
			},
			Quantity: stripe.Int64(1),
		}},
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	return guarded(g.cb, func() (*CheckoutSession, error) {
		s, err := g.api.CheckoutSessions.New(params)
		if err != nil {
			return nil, err
		}
		return &CheckoutSession{SessionID: s.ID, URL: s.URL}, nil
	})
}

func (g *StripeGateway) GetStatus(ctx context.Context, sessionID string) (*CheckoutStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	return guarded(g.cb, func() (*CheckoutStatus, error) {
		s, err := g.api.CheckoutSessions.Get(sessionID, params)
		if err != nil {
			return nil, err
		}
		return &CheckoutStatus{
			Status:        string(s.Status),
			PaymentStatus: string(s.PaymentStatus),
			AmountTotal:   s.AmountTotal,
			Currency:      string(s.Currency),
		}, nil
	})
}
