package model

import "time"

// APIKey stores one credential for a third-party service.  SealedValue
// holds the secretbox-sealed secret; it never leaves the process.
type APIKey struct {
	ID          string    `json:"id" bson:"id"`
	Service     string    `json:"service" bson:"service"`
	KeyName     string    `json:"key_name" bson:"key_name"`
	KeyValue    string    `json:"key_value" bson:"-"`
	SealedValue []byte    `json:"-" bson:"sealed_value"`
	Environment string    `json:"environment" bson:"environment"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// PaymentTransaction tracks a checkout session opened for a booking.
type PaymentTransaction struct {
	ID            string    `json:"id" bson:"id"`
	SessionID     string    `json:"session_id" bson:"session_id"`
	BookingID     string    `json:"booking_id" bson:"booking_id"`
	CustomerEmail string    `json:"customer_email" bson:"customer_email"`
	Amount        float64   `json:"amount" bson:"amount"`
	Currency      string    `json:"currency" bson:"currency"`
	Status        string    `json:"status" bson:"status"`
	PaymentStatus string    `json:"payment_status" bson:"payment_status"`
	PointsAwarded bool      `json:"points_awarded" bson:"points_awarded"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

// AnalyticsEvent is one tracked front-end interaction.
type AnalyticsEvent struct {
	ID        string            `json:"id" bson:"id"`
	SessionID string            `json:"session_id" bson:"session_id"`
	EventType string            `json:"event_type" bson:"event_type"`
	Page      string            `json:"page" bson:"page"`
	UnitID    *string           `json:"unit_id" bson:"unit_id,omitempty"`
	Metadata  map[string]string `json:"metadata" bson:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
}
