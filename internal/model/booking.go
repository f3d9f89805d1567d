package model

import "time"

// BookingStatus is the occupancy state recorded on a booking.
type BookingStatus string

const (
	BookingAvailable   BookingStatus = "available"
	BookingBooked      BookingStatus = "booked"
	BookingMaintenance BookingStatus = "maintenance"
	// BookingWaitlist is accepted and stored but nothing promotes it.
	BookingWaitlist BookingStatus = "waitlist"
)

// Blocking reports whether a booking in this status occupies its
// physical unit.
func (s BookingStatus) Blocking() bool {
	return s == BookingBooked || s == BookingMaintenance
}

// BlockingStatuses are the statuses that make a physical unit unavailable.
var BlockingStatuses = []BookingStatus{BookingBooked, BookingMaintenance}

// PaymentOption describes when the customer pays and moves in.
type PaymentOption string

const (
	PayNowMoveNow     PaymentOption = "pay_now_move_now"
	PayNowMoveLater   PaymentOption = "pay_now_move_later"
	PayLaterMoveLater PaymentOption = "pay_later_move_later"
)

// PaymentOptions lists every payment option in display order.
var PaymentOptions = []PaymentOption{PayNowMoveNow, PayNowMoveLater, PayLaterMoveLater}

// PricingPeriod selects which unit price applies.
type PricingPeriod string

const (
	PeriodDaily   PricingPeriod = "daily"
	PeriodWeekly  PricingPeriod = "weekly"
	PeriodMonthly PricingPeriod = "monthly"
)

// PricingPeriods lists every pricing period in display order.
var PricingPeriods = []PricingPeriod{PeriodDaily, PeriodWeekly, PeriodMonthly}

// Booking records a customer's claim on a physical unit made through one
// of its virtual unit listings.  PhysicalUnitID is copied from the virtual
// unit when the booking is created.
type Booking struct {
	ID              string        `json:"id" bson:"id"`
	VirtualUnitID   string        `json:"virtual_unit_id" bson:"virtual_unit_id"`
	PhysicalUnitID  string        `json:"physical_unit_id" bson:"physical_unit_id"`
	CustomerName    string        `json:"customer_name" bson:"customer_name"`
	CustomerEmail   string        `json:"customer_email" bson:"customer_email"`
	CustomerPhone   string        `json:"customer_phone" bson:"customer_phone"`
	PaymentOption   PaymentOption `json:"payment_option" bson:"payment_option"`
	PricingPeriod   PricingPeriod `json:"pricing_period" bson:"pricing_period"`
	StartDate       time.Time     `json:"start_date" bson:"start_date"`
	EndDate         *time.Time    `json:"end_date" bson:"end_date,omitempty"`
	TotalPrice      float64       `json:"total_price" bson:"total_price"`
	Status          BookingStatus `json:"status" bson:"status"`
	MoveInDate      *time.Time    `json:"move_in_date" bson:"move_in_date,omitempty"`
	SpecialRequests *string       `json:"special_requests" bson:"special_requests,omitempty"`
	CreatedAt       time.Time     `json:"created_at" bson:"created_at"`
}
