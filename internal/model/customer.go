package model

import "time"

// LoyaltyTier is derived from a customer's lifetime points.
type LoyaltyTier string

const (
	TierBronze   LoyaltyTier = "bronze"
	TierSilver   LoyaltyTier = "silver"
	TierGold     LoyaltyTier = "gold"
	TierPlatinum LoyaltyTier = "platinum"
)

// Customer is a CRM record.  Customers are keyed by e-mail; bookings are
// linked to a customer through CustomerEmail.
//
// Fields:
//  LoyaltyPoints  – spendable balance.
//  LifetimePoints – every point ever awarded; drives LoyaltyTier.
//  LoyaltyTier    – computed on read, never stored.
//  LifetimeValue  – sum of paid amounts in dollars.
type Customer struct {
	ID                string      `json:"id" bson:"id"`
	FirstName         string      `json:"first_name" bson:"first_name"`
	LastName          string      `json:"last_name" bson:"last_name"`
	Email             string      `json:"email" bson:"email"`
	Phone             string      `json:"phone" bson:"phone"`
	Company           string      `json:"company" bson:"company"`
	CustomerType      string      `json:"customer_type" bson:"customer_type"`
	AcquisitionSource string      `json:"acquisition_source" bson:"acquisition_source"`
	LoyaltyPoints     int64       `json:"loyalty_points" bson:"loyalty_points"`
	LifetimePoints    int64       `json:"lifetime_points" bson:"lifetime_points"`
	LoyaltyTier       LoyaltyTier `json:"loyalty_tier" bson:"-"`
	TotalBookings     int64       `json:"total_bookings" bson:"total_bookings"`
	LifetimeValue     float64     `json:"lifetime_value" bson:"lifetime_value"`
	CreatedAt         time.Time   `json:"created_at" bson:"created_at"`
}

// LoyaltyTransaction is one entry in a customer's points history.  Points
// is positive for awards and negative for redemptions.
type LoyaltyTransaction struct {
	ID          string    `json:"id" bson:"id"`
	CustomerID  string    `json:"customer_id" bson:"customer_id"`
	Points      int64     `json:"points" bson:"points"`
	Kind        string    `json:"kind" bson:"kind"`
	Description string    `json:"description" bson:"description"`
	BookingID   *string   `json:"booking_id" bson:"booking_id,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
