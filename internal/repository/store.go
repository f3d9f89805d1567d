package repository

import (
	"context"

	"github.com/iliyamo/storage-booking/internal/model"
)

// Catalog stores physical and virtual units.
type Catalog interface {
	CreatePhysicalUnit(ctx context.Context, u *model.PhysicalUnit) error
	GetPhysicalUnit(ctx context.Context, id string) (*model.PhysicalUnit, error)
	ListPhysicalUnits(ctx context.Context) ([]model.PhysicalUnit, error)

	CreateVirtualUnit(ctx context.Context, u *model.VirtualUnit) error
	GetVirtualUnit(ctx context.Context, id string) (*model.VirtualUnit, error)
	// ListVirtualUnits returns every virtual unit, or only those of
	// unitType when it is non-empty.
	ListVirtualUnits(ctx context.Context, unitType model.UnitType) ([]model.VirtualUnit, error)
	SetVirtualUnitImage(ctx context.Context, id, imageURL string) error
}

// Bookings stores bookings.  Implementations must make
// InsertBookingIfUnblocked atomic with respect to other inserts for the
// same physical unit.
type Bookings interface {
	// InsertBookingIfUnblocked stores b unless b is blocking and another
	// blocking booking already exists for b.PhysicalUnitID, in which case
	// it returns ErrConflict and stores nothing.
	InsertBookingIfUnblocked(ctx context.Context, b *model.Booking) error
	GetBooking(ctx context.Context, id string) (*model.Booking, error)
	ListBookings(ctx context.Context) ([]model.Booking, error)
	ListBookingsByEmail(ctx context.Context, email string) ([]model.Booking, error)
	// BlockingPhysicalUnitIDs returns the ids of physical units that have at
	// least one booked or maintenance booking.
	BlockingPhysicalUnitIDs(ctx context.Context) (map[string]struct{}, error)
}

// Images stores image assets.
type Images interface {
	ListImages(ctx context.Context, category string) ([]model.ImageAsset, error)
	CreateImage(ctx context.Context, img *model.ImageAsset) error
	ReplaceImage(ctx context.Context, img *model.ImageAsset) error
	DeleteImage(ctx context.Context, id string) error
}

// Content stores CMS text blocks and banners.
type Content interface {
	ListContent(ctx context.Context) ([]model.ContentBlock, error)
	GetContent(ctx context.Context, key string) (*model.ContentBlock, error)
	PutContent(ctx context.Context, block *model.ContentBlock) error
	ListBanners(ctx context.Context) ([]model.Banner, error)
	CreateBanner(ctx context.Context, b *model.Banner) error
	DeleteBanner(ctx context.Context, id string) error
}

// CustomerFilter narrows ListCustomers.  Search matches name, e-mail or
// company case-insensitively.
type CustomerFilter struct {
	Search       string
	CustomerType string
}

// CustomerDelta is applied atomically by ApplyCustomerDelta.
type CustomerDelta struct {
	Points   int64   // change to the spendable balance
	Lifetime int64   // change to lifetime points (never negative)
	Value    float64 // change to lifetime value in dollars
	Bookings int64   // change to total bookings
}

// Customers stores CRM records and the loyalty ledger.
type Customers interface {
	// CreateCustomer returns ErrConflict when the e-mail is taken.
	CreateCustomer(ctx context.Context, c *model.Customer) error
	GetCustomer(ctx context.Context, id string) (*model.Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (*model.Customer, error)
	ListCustomers(ctx context.Context, f CustomerFilter) ([]model.Customer, error)
	// ApplyCustomerDelta returns ErrInsufficientPoints if the balance would
	// drop below zero, leaving the record untouched.
	ApplyCustomerDelta(ctx context.Context, id string, d CustomerDelta) (*model.Customer, error)
	AddLoyaltyTransaction(ctx context.Context, t *model.LoyaltyTransaction) error
	// ListLoyaltyTransactions returns newest first.
	ListLoyaltyTransactions(ctx context.Context, customerID string) ([]model.LoyaltyTransaction, error)
}

// Payments stores checkout sessions.
type Payments interface {
	CreatePayment(ctx context.Context, p *model.PaymentTransaction) error
	GetPaymentBySession(ctx context.Context, sessionID string) (*model.PaymentTransaction, error)
	UpdatePaymentStatus(ctx context.Context, sessionID, status, paymentStatus string) error
	// MarkPointsAwarded flips points_awarded to true and reports whether
	// this call was the one that flipped it.
	MarkPointsAwarded(ctx context.Context, sessionID string) (bool, error)
}

// Integrations stores third-party credentials.
type Integrations interface {
	ListAPIKeys(ctx context.Context) ([]model.APIKey, error)
	// UpsertAPIKey replaces the key with the same service and key name, if
	// any, keeping its id.
	UpsertAPIKey(ctx context.Context, k *model.APIKey) error
	DeleteAPIKey(ctx context.Context, id string) error
}

// Events stores analytics events.
type Events interface {
	AppendEvent(ctx context.Context, e *model.AnalyticsEvent) error
	// ListSessionEvents returns a session's events oldest first.
	ListSessionEvents(ctx context.Context, sessionID string) ([]model.AnalyticsEvent, error)
}

// Store is everything the service layer needs from persistence.
type Store interface {
	Catalog
	Bookings
	Images
	Content
	Customers
	Payments
	Integrations
	Events

	// ResetCatalog removes all physical units, virtual units, bookings and
	// images.
	ResetCatalog(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
