package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/storage-booking/internal/integration"
	"github.com/iliyamo/storage-booking/internal/model"
	"github.com/iliyamo/storage-booking/internal/queue"
	"github.com/iliyamo/storage-booking/internal/repository/memstore"
)

func seedUnits(t *testing.T, store *memstore.Store) (p *model.PhysicalUnit, v1, v2 *model.VirtualUnit) {
	t.Helper()
	ctx := context.Background()
	cat := NewCatalog(store)
	p, err := cat.CreatePhysicalUnit(ctx, &model.PhysicalUnit{UnitNumber: "A-001", ActualSize: "12x30", BasePrice: 200})
	require.NoError(t, err)
	v1, err = cat.CreateVirtualUnit(ctx, &model.VirtualUnit{
		PhysicalUnitID: p.ID, UnitType: model.UnitTypeEnclosedParking, DisplaySize: "12x30",
		DisplayName: "Enclosed Parking 12x30", DailyPrice: 8, WeeklyPrice: 50, MonthlyPrice: 200,
		Amenities: []string{"security", "covered"},
	})
	require.NoError(t, err)
	v2, err = cat.CreateVirtualUnit(ctx, &model.VirtualUnit{
		PhysicalUnitID: p.ID, UnitType: model.UnitTypeSelfStorage, DisplaySize: "12x25",
		DisplayName: "Self Storage 12x25", DailyPrice: 10, WeeklyPrice: 65, MonthlyPrice: 250,
		Amenities: []string{"climate_control"},
	})
	require.NoError(t, err)
	return p, v1, v2
}

type fakeGateway struct {
	mu      sync.Mutex
	created []integration.CheckoutRequest
	status  integration.CheckoutStatus
}

func (g *fakeGateway) CreateCheckout(_ context.Context, req integration.CheckoutRequest) (*integration.CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.created = append(g.created, req)
	return &integration.CheckoutSession{SessionID: "cs_test_1", URL: "https://checkout.example/cs_test_1"}, nil
}

func (g *fakeGateway) GetStatus(_ context.Context, _ string) (*integration.CheckoutStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	st := g.status
	return &st, nil
}

type fakeSMS struct {
	mu   sync.Mutex
	sent []string
}

func (s *fakeSMS) SendSMS(_ context.Context, to, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, to+"|"+body)
	return nil
}

type fakeEmail struct {
	mu   sync.Mutex
	sent []string
}

func (e *fakeEmail) SendEmail(_ context.Context, to, subject, _, _ string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sent = append(e.sent, to+"|"+subject)
	return nil
}

// fakeProviders returns the configured fakes; nil fields are reported as
// not configured.
type fakeProviders struct {
	payments integration.PaymentGateway
	sms      integration.SMSSender
	email    integration.EmailSender
}

func (f *fakeProviders) Payments() (integration.PaymentGateway, error) {
	if f.payments == nil {
		return nil, &integration.UnavailableError{Service: "stripe", Reason: "not configured"}
	}
	return f.payments, nil
}

func (f *fakeProviders) SMS() (integration.SMSSender, error) {
	if f.sms == nil {
		return nil, &integration.UnavailableError{Service: "twilio", Reason: "not configured"}
	}
	return f.sms, nil
}

func (f *fakeProviders) Email() (integration.EmailSender, error) {
	if f.email == nil {
		return nil, &integration.UnavailableError{Service: "sendgrid", Reason: "not configured"}
	}
	return f.email, nil
}

type recordingHandler struct {
	mu  sync.Mutex
	got []queue.BookingCreatedEvent
}

func (h *recordingHandler) HandleBookingCreated(_ context.Context, ev queue.BookingCreatedEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.got = append(h.got, ev)
	return nil
}
