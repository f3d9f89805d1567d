package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/storage-booking/internal/model"
	"github.com/iliyamo/storage-booking/internal/repository"
)

// CustomerRequest is the input to CreateCustomer.
type CustomerRequest struct {
	FirstName         string `json:"first_name" validate:"required"`
	LastName          string `json:"last_name" validate:"required"`
	Email             string `json:"email" validate:"required,email"`
	Phone             string `json:"phone"`
	Company           string `json:"company"`
	CustomerType      string `json:"customer_type" validate:"omitempty,oneof=individual business"`
	AcquisitionSource string `json:"acquisition_source"`
}

// CustomerQuery narrows ListCustomers.
type CustomerQuery struct {
	Search       string
	CustomerType string
	LoyaltyTier  model.LoyaltyTier
}

// Customers is the CRM service.  E-mail identifies a customer.
type Customers struct {
	store repository.Store
}

func NewCustomers(store repository.Store) *Customers {
	return &Customers{store: store}
}

func (s *Customers) Create(ctx context.Context, req CustomerRequest) (*model.Customer, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.CustomerType == "" {
		req.CustomerType = "individual"
	}
	c := &model.Customer{
		ID:                uuid.NewString(),
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		Company:           req.Company,
		CustomerType:      req.CustomerType,
		AcquisitionSource: req.AcquisitionSource,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.store.CreateCustomer(ctx, c); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, &ConflictError{Message: "Customer with this email already exists"}
		}
		return nil, err
	}
	return withTier(c), nil
}

func (s *Customers) Get(ctx context.Context, id string) (*model.Customer, error) {
	c, err := s.store.GetCustomer(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Customer")
	}
	if err != nil {
		return nil, err
	}
	return withTier(c), nil
}

// List filters by search and type in the store and by tier here, since
// tiers are never stored.
func (s *Customers) List(ctx context.Context, q CustomerQuery) ([]model.Customer, error) {
	list, err := s.store.ListCustomers(ctx, repository.CustomerFilter{
		Search:       q.Search,
		CustomerType: q.CustomerType,
	})
	if err != nil {
		return nil, err
	}
	out := list[:0]
	for i := range list {
		withTier(&list[i])
		if q.LoyaltyTier != "" && list[i].LoyaltyTier != q.LoyaltyTier {
			continue
		}
		out = append(out, list[i])
	}
	return out, nil
}

// Bookings returns the customer's bookings, matched by e-mail.
func (s *Customers) Bookings(ctx context.Context, id string) ([]model.Booking, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.store.ListBookingsByEmail(ctx, c.Email)
}

// RecordBooking finds or creates the customer behind b and counts the
// booking against it.
func (s *Customers) RecordBooking(ctx context.Context, b *model.Booking) error {
	email := strings.ToLower(strings.TrimSpace(b.CustomerEmail))
	c, err := s.store.GetCustomerByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		first, last := splitName(b.CustomerName)
		c = &model.Customer{
			ID:                uuid.NewString(),
			FirstName:         first,
			LastName:          last,
			Email:             email,
			Phone:             b.CustomerPhone,
			CustomerType:      "individual",
			AcquisitionSource: "website",
			CreatedAt:         time.Now().UTC(),
		}
		err = s.store.CreateCustomer(ctx, c)
		if errors.Is(err, repository.ErrConflict) {
			// created concurrently by another booking
			c, err = s.store.GetCustomerByEmail(ctx, email)
		}
	}
	if err != nil {
		return err
	}
	_, err = s.store.ApplyCustomerDelta(ctx, c.ID, repository.CustomerDelta{Bookings: 1})
	return err
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
