// Package queue defines message payloads exchanged over the message broker.
package queue

import "context"

// BookingCreatedEvent is published after a booking is stored.  It carries
// enough information for the notification consumer to contact the
// customer without querying the store.
type BookingCreatedEvent struct {
    BookingID      string  `json:"booking_id"`
    VirtualUnitID  string  `json:"virtual_unit_id"`
    PhysicalUnitID string  `json:"physical_unit_id"`
    UnitName       string  `json:"unit_name"`
    CustomerName   string  `json:"customer_name"`
    CustomerEmail  string  `json:"customer_email"`
    CustomerPhone  string  `json:"customer_phone"`
    PaymentOption  string  `json:"payment_option"`
    PricingPeriod  string  `json:"pricing_period"`
    StartDate      string  `json:"start_date"`
    TotalPrice     float64 `json:"total_price"`
    CreatedAt      string  `json:"created_at"`
}

// BookingHandler reacts to a booking.created event.
type BookingHandler interface {
    HandleBookingCreated(ctx context.Context, ev BookingCreatedEvent) error
}
