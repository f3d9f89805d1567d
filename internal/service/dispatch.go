package service

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/storage-booking/internal/model"
	"github.com/iliyamo/storage-booking/internal/queue"
	"github.com/iliyamo/storage-booking/internal/utils"
)

// BookingPublisher puts booking events on the broker.
type BookingPublisher interface {
	PublishBookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error
}

// BookingEvents is told about every stored booking.
type BookingEvents interface {
	BookingCreated(b *model.Booking, vu *model.VirtualUnit)
}

// Dispatcher publishes booking.created to the broker and, when there is
// no broker or publishing fails, runs the handler in-process.  All work
// happens off the request goroutine.
type Dispatcher struct {
	pub     BookingPublisher
	handler queue.BookingHandler
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher accepts a nil pub.
func NewDispatcher(pub BookingPublisher, handler queue.BookingHandler) *Dispatcher {
	return &Dispatcher{pub: pub, handler: handler, timeout: 10 * time.Second}
}

func (d *Dispatcher) BookingCreated(b *model.Booking, vu *model.VirtualUnit) {
	ev := NewBookingCreatedEvent(b, vu)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if d.pub != nil {
			err := d.pub.PublishBookingCreated(ctx, ev)
			if err == nil {
				return
			}
			utils.Logger.WithError(err).WithField("booking_id", ev.BookingID).
				Warn("booking.created publish failed; notifying in-process")
		}
		if d.handler == nil {
			return
		}
		if err := d.handler.HandleBookingCreated(ctx, ev); err != nil {
			utils.Logger.WithError(err).WithField("booking_id", ev.BookingID).Warn("booking notification failed")
		}
	}()
}

// Wait blocks until every dispatched event has been handled.
func (d *Dispatcher) Wait() { d.wg.Wait() }

// NewBookingCreatedEvent flattens a booking and its listing into an event.
func NewBookingCreatedEvent(b *model.Booking, vu *model.VirtualUnit) queue.BookingCreatedEvent {
	ev := queue.BookingCreatedEvent{
		BookingID:      b.ID,
		VirtualUnitID:  b.VirtualUnitID,
		PhysicalUnitID: b.PhysicalUnitID,
		CustomerName:   b.CustomerName,
		CustomerEmail:  b.CustomerEmail,
		CustomerPhone:  b.CustomerPhone,
		PaymentOption:  string(b.PaymentOption),
		PricingPeriod:  string(b.PricingPeriod),
		StartDate:      b.StartDate.UTC().Format(time.RFC3339),
		TotalPrice:     b.TotalPrice,
		CreatedAt:      b.CreatedAt.UTC().Format(time.RFC3339),
	}
	if vu != nil {
		ev.UnitName = vu.DisplayName
	}
	return ev
}
