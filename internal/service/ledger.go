package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/storage-booking/internal/lock"
	"github.com/iliyamo/storage-booking/internal/model"
	"github.com/iliyamo/storage-booking/internal/repository"
	"github.com/iliyamo/storage-booking/internal/utils"
)

// ConflictError reports a booking that lost to an existing blocking
// booking.  It matches repository.ErrConflict with errors.Is.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Unwrap() error { return repository.ErrConflict }

// ErrUnitUnavailable is returned when the physical unit already has a
// booked or maintenance booking.
var ErrUnitUnavailable = &ConflictError{Message: "Unit is not available"}

// BookingRequest is the input to CreateBooking.  PhysicalUnitID is never
// taken from the client.
type BookingRequest struct {
	VirtualUnitID   string              `json:"virtual_unit_id" validate:"required"`
	CustomerName    string              `json:"customer_name" validate:"required"`
	CustomerEmail   string              `json:"customer_email" validate:"required,email"`
	CustomerPhone   string              `json:"customer_phone" validate:"required"`
	PaymentOption   model.PaymentOption `json:"payment_option" validate:"required,oneof=pay_now_move_now pay_now_move_later pay_later_move_later"`
	PricingPeriod   model.PricingPeriod `json:"pricing_period" validate:"required,oneof=daily weekly monthly"`
	StartDate       time.Time           `json:"start_date" validate:"required"`
	EndDate         *time.Time          `json:"end_date"`
	MoveInDate      *time.Time          `json:"move_in_date"`
	SpecialRequests *string             `json:"special_requests"`
}

// CustomerRecorder links bookings to CRM records.
type CustomerRecorder interface {
	RecordBooking(ctx context.Context, b *model.Booking) error
}

// Ledger owns booking creation.  At most one booked or maintenance booking
// may exist per physical unit; the store enforces that atomically and a
// keyed lock serialises attempts on the same unit before they reach it.
type Ledger struct {
	store     repository.Store
	locker    lock.Locker
	customers CustomerRecorder
	events    BookingEvents
	lockWait  time.Duration
}

// NewLedger builds a ledger.  customers and events may be nil.
func NewLedger(store repository.Store, locker lock.Locker, customers CustomerRecorder, events BookingEvents) *Ledger {
	if locker == nil {
		locker = lock.NewLocal()
	}
	return &Ledger{
		store:     store,
		locker:    locker,
		customers: customers,
		events:    events,
		lockWait:  5 * time.Second,
	}
}

// CreateBooking books the virtual unit's physical unit for the customer.
// The total price is the unit price for the chosen period, whatever the
// dates.  It returns a NotFoundError for an unknown virtual unit and
// ErrUnitUnavailable when the physical unit is taken.
func (l *Ledger) CreateBooking(ctx context.Context, req BookingRequest) (*model.Booking, error) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return nil, invalid("end_date", "must not be before start_date")
	}

	vu, err := l.store.GetVirtualUnit(ctx, req.VirtualUnitID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Virtual unit")
		}
		return nil, fmt.Errorf("get virtual unit: %w", err)
	}

	b := &model.Booking{
		ID:              uuid.NewString(),
		VirtualUnitID:   vu.ID,
		PhysicalUnitID:  vu.PhysicalUnitID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		PaymentOption:   req.PaymentOption,
		PricingPeriod:   req.PricingPeriod,
		StartDate:       req.StartDate.UTC(),
		EndDate:         utcPtr(req.EndDate),
		TotalPrice:      PriceForPeriod(vu, req.PricingPeriod),
		Status:          model.BookingBooked,
		MoveInDate:      utcPtr(req.MoveInDate),
		SpecialRequests: req.SpecialRequests,
		CreatedAt:       time.Now().UTC(),
	}

	if err := l.insert(ctx, b); err != nil {
		return nil, err
	}

	if l.customers != nil {
		if err := l.customers.RecordBooking(ctx, b); err != nil {
			utils.Logger.WithError(err).WithField("booking_id", b.ID).Warn("customer record not updated")
		}
	}
	if l.events != nil {
		l.events.BookingCreated(b, vu)
	}
	return b, nil
}

func (l *Ledger) insert(ctx context.Context, b *model.Booking) error {
	lockCtx, cancel := context.WithTimeout(ctx, l.lockWait)
	defer cancel()
	release, err := l.locker.Acquire(lockCtx, b.PhysicalUnitID)
	if err != nil {
		return fmt.Errorf("lock physical unit %s: %w", b.PhysicalUnitID, err)
	}
	defer release()

	if err := l.store.InsertBookingIfUnblocked(ctx, b); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return ErrUnitUnavailable
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (l *Ledger) ListBookings(ctx context.Context) ([]model.Booking, error) {
	return l.store.ListBookings(ctx)
}

func (l *Ledger) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
	b, err := l.store.GetBooking(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Booking")
	}
	return b, err
}

// BlockingPhysicalUnitIDs returns the physical units that cannot be booked.
func (l *Ledger) BlockingPhysicalUnitIDs(ctx context.Context) (map[string]struct{}, error) {
	return l.store.BlockingPhysicalUnitIDs(ctx)
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
