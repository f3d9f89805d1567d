// Package memstore is an in-process implementation of repository.Store.
// It backs the test suite and STORE_DRIVER=memory.  Every method holds the
// store mutex for its whole duration, so the conditional booking insert is
// atomic.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/iliyamo/storage-booking/internal/model"
	"github.com/iliyamo/storage-booking/internal/repository"
)

// Store keeps every collection in insertion order.
type Store struct {
	mu sync.RWMutex

	physical  []model.PhysicalUnit
	virtual   []model.VirtualUnit
	bookings  []model.Booking
	images    []model.ImageAsset
	content   map[string]model.ContentBlock
	banners   []model.Banner
	customers []model.Customer
	loyalty   []model.LoyaltyTransaction
	payments  []model.PaymentTransaction
	apiKeys   []model.APIKey
	events    []model.AnalyticsEvent
}

var _ repository.Store = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{content: map[string]model.ContentBlock{}}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// ---- catalog ----

func (s *Store) CreatePhysicalUnit(_ context.Context, u *model.PhysicalUnit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	cp.Amenities = cloneStrings(u.Amenities)
	s.physical = append(s.physical, cp)
	return nil
}

func (s *Store) GetPhysicalUnit(_ context.Context, id string) (*model.PhysicalUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.physical {
		if u.ID == id {
			u.Amenities = cloneStrings(u.Amenities)
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) ListPhysicalUnits(_ context.Context) ([]model.PhysicalUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.PhysicalUnit, 0, len(s.physical))
	for _, u := range s.physical {
		u.Amenities = cloneStrings(u.Amenities)
		out = append(out, u)
	}
	return out, nil
}

func (s *Store) CreateVirtualUnit(_ context.Context, u *model.VirtualUnit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	cp.Amenities = cloneStrings(u.Amenities)
	s.virtual = append(s.virtual, cp)
	return nil
}

func (s *Store) GetVirtualUnit(_ context.Context, id string) (*model.VirtualUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.virtual {
		if u.ID == id {
			u.Amenities = cloneStrings(u.Amenities)
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) ListVirtualUnits(_ context.Context, unitType model.UnitType) ([]model.VirtualUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.VirtualUnit, 0, len(s.virtual))
	for _, u := range s.virtual {
		if unitType != "" && u.UnitType != unitType {
			continue
		}
		u.Amenities = cloneStrings(u.Amenities)
		out = append(out, u)
	}
	return out, nil
}

func (s *Store) SetVirtualUnitImage(_ context.Context, id, imageURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.virtual {
		if s.virtual[i].ID == id {
			url := imageURL
			s.virtual[i].ImageURL = &url
			return nil
		}
	}
	return repository.ErrNotFound
}

// ---- bookings ----

func (s *Store) InsertBookingIfUnblocked(_ context.Context, b *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.Status.Blocking() {
		for _, existing := range s.bookings {
			if existing.PhysicalUnitID == b.PhysicalUnitID && existing.Status.Blocking() {
				return repository.ErrConflict
			}
		}
	}
	s.bookings = append(s.bookings, *b)
	return nil
}

func (s *Store) GetBooking(_ context.Context, id string) (*model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookings {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) ListBookings(_ context.Context) ([]model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out, nil
}

func (s *Store) ListBookingsByEmail(_ context.Context, email string) ([]model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Booking{}
	for _, b := range s.bookings {
		if strings.EqualFold(b.CustomerEmail, email) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Store) BlockingPhysicalUnitIDs(_ context.Context) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := map[string]struct{}{}
	for _, b := range s.bookings {
		if b.Status.Blocking() {
			ids[b.PhysicalUnitID] = struct{}{}
		}
	}
	return ids, nil
}

// ---- images ----

func (s *Store) ListImages(_ context.Context, category string) ([]model.ImageAsset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.ImageAsset{}
	for _, img := range s.images {
		if category != "" && img.Category != category {
			continue
		}
		img.Tags = cloneStrings(img.Tags)
		out = append(out, img)
	}
	return out, nil
}

func (s *Store) CreateImage(_ context.Context, img *model.ImageAsset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *img
	cp.Tags = cloneStrings(img.Tags)
	s.images = append(s.images, cp)
	return nil
}

func (s *Store) ReplaceImage(_ context.Context, img *model.ImageAsset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.images {
		if s.images[i].ID == img.ID {
			cp := *img
			cp.Tags = cloneStrings(img.Tags)
			s.images[i] = cp
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *Store) DeleteImage(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.images {
		if s.images[i].ID == id {
			s.images = append(s.images[:i], s.images[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// ---- content ----

func (s *Store) ListContent(_ context.Context) ([]model.ContentBlock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ContentBlock, 0, len(s.content))
	for _, b := range s.content {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *Store) GetContent(_ context.Context, key string) (*model.ContentBlock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.content[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (s *Store) PutContent(_ context.Context, block *model.ContentBlock) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content[block.Key] = *block
	return nil
}

func (s *Store) ListBanners(_ context.Context) ([]model.Banner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Banner, len(s.banners))
	copy(out, s.banners)
	return out, nil
}

func (s *Store) CreateBanner(_ context.Context, b *model.Banner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.banners = append(s.banners, *b)
	return nil
}

func (s *Store) DeleteBanner(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.banners {
		if s.banners[i].ID == id {
			s.banners = append(s.banners[:i], s.banners[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// ---- customers ----

func (s *Store) CreateCustomer(_ context.Context, c *model.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.customers {
		if strings.EqualFold(existing.Email, c.Email) {
			return repository.ErrConflict
		}
	}
	s.customers = append(s.customers, *c)
	return nil
}

func (s *Store) GetCustomer(_ context.Context, id string) (*model.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) GetCustomerByEmail(_ context.Context, email string) (*model.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers {
		if strings.EqualFold(c.Email, email) {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) ListCustomers(_ context.Context, f repository.CustomerFilter) ([]model.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	out := []model.Customer{}
	for _, c := range s.customers {
		if f.CustomerType != "" && c.CustomerType != f.CustomerType {
			continue
		}
		if needle != "" {
			hay := strings.ToLower(strings.Join([]string{c.FirstName, c.LastName, c.Email, c.Company}, " "))
			if !strings.Contains(hay, needle) {
				continue
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Store) ApplyCustomerDelta(_ context.Context, id string, d repository.CustomerDelta) (*model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.customers {
		c := &s.customers[i]
		if c.ID != id {
			continue
		}
		if c.LoyaltyPoints+d.Points < 0 {
			return nil, repository.ErrInsufficientPoints
		}
		c.LoyaltyPoints += d.Points
		c.LifetimePoints += d.Lifetime
		c.LifetimeValue += d.Value
		c.TotalBookings += d.Bookings
		cp := *c
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (s *Store) AddLoyaltyTransaction(_ context.Context, t *model.LoyaltyTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loyalty = append(s.loyalty, *t)
	return nil
}

func (s *Store) ListLoyaltyTransactions(_ context.Context, customerID string) ([]model.LoyaltyTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.LoyaltyTransaction{}
	for i := len(s.loyalty) - 1; i >= 0; i-- {
		if s.loyalty[i].CustomerID == customerID {
			out = append(out, s.loyalty[i])
		}
	}
	return out, nil
}

// ---- payments ----

func (s *Store) CreatePayment(_ context.Context, p *model.PaymentTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = append(s.payments, *p)
	return nil
}

func (s *Store) GetPaymentBySession(_ context.Context, sessionID string) (*model.PaymentTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.payments {
		if p.SessionID == sessionID {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) UpdatePaymentStatus(_ context.Context, sessionID, status, paymentStatus string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.payments {
		if s.payments[i].SessionID == sessionID {
			s.payments[i].Status = status
			s.payments[i].PaymentStatus = paymentStatus
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *Store) MarkPointsAwarded(_ context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.payments {
		if s.payments[i].SessionID == sessionID {
			if s.payments[i].PointsAwarded {
				return false, nil
			}
			s.payments[i].PointsAwarded = true
			return true, nil
		}
	}
	return false, repository.ErrNotFound
}

// ---- integrations ----

func (s *Store) ListAPIKeys(_ context.Context) ([]model.APIKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.APIKey, len(s.apiKeys))
	copy(out, s.apiKeys)
	return out, nil
}

func (s *Store) UpsertAPIKey(_ context.Context, k *model.APIKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.apiKeys {
		if s.apiKeys[i].Service == k.Service && s.apiKeys[i].KeyName == k.KeyName {
			k.ID = s.apiKeys[i].ID
			k.CreatedAt = s.apiKeys[i].CreatedAt
			s.apiKeys[i] = *k
			return nil
		}
	}
	s.apiKeys = append(s.apiKeys, *k)
	return nil
}

func (s *Store) DeleteAPIKey(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.apiKeys {
		if s.apiKeys[i].ID == id {
			s.apiKeys = append(s.apiKeys[:i], s.apiKeys[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// ---- events ----

func (s *Store) AppendEvent(_ context.Context, e *model.AnalyticsEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, *e)
	return nil
}

func (s *Store) ListSessionEvents(_ context.Context, sessionID string) ([]model.AnalyticsEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.AnalyticsEvent{}
	for _, e := range s.events {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// ---- lifecycle ----

func (s *Store) ResetCatalog(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.physical = nil
	s.virtual = nil
	s.bookings = nil
	s.images = nil
	return nil
}

func (s *Store) Ping(context.Context) error  { return nil }
func (s *Store) Close(context.Context) error { return nil }
