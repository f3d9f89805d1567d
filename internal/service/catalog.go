package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/storage-booking/internal/model"
	"github.com/iliyamo/storage-booking/internal/repository"
)

// Catalog manages physical and virtual units.
type Catalog struct {
	store repository.Store
}

func NewCatalog(store repository.Store) *Catalog {
	return &Catalog{store: store}
}

// CreatePhysicalUnit assigns id and created_at and stores u.  Status
// defaults to available.
func (c *Catalog) CreatePhysicalUnit(ctx context.Context, u *model.PhysicalUnit) (*model.PhysicalUnit, error) {
	if strings.TrimSpace(u.UnitNumber) == "" {
		return nil, invalid("unit_number", "required")
	}
	if u.Status == "" {
		u.Status = model.PhysicalUnitAvailable
	}
	if !u.Status.Valid() {
		return nil, invalid("status", "must be available, booked, maintenance or waitlist")
	}
	if u.BasePrice < 0 {
		return nil, invalid("base_price", "must not be negative")
	}
	if u.Amenities == nil {
		u.Amenities = []string{}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	if err := c.store.CreatePhysicalUnit(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (c *Catalog) ListPhysicalUnits(ctx context.Context) ([]model.PhysicalUnit, error) {
	return c.store.ListPhysicalUnits(ctx)
}

// CreateVirtualUnit stores u after checking that its physical unit exists.
// Missing required fields are rejected before the store is consulted; an
// unknown physical unit yields a NotFoundError and nothing is stored.
func (c *Catalog) CreateVirtualUnit(ctx context.Context, u *model.VirtualUnit) (*model.VirtualUnit, error) {
	u.PhysicalUnitID = strings.TrimSpace(u.PhysicalUnitID)
	u.DisplayName = strings.TrimSpace(u.DisplayName)
	u.DisplaySize = strings.TrimSpace(u.DisplaySize)
	if err := validateStruct(u); err != nil {
		return nil, err
	}
	if !u.UnitType.Valid() {
		return nil, invalid("unit_type", "must be one of enclosed_parking, self_storage, outdoor_parking, covered_parking")
	}
	if u.DailyPrice < 0 || u.WeeklyPrice < 0 || u.MonthlyPrice < 0 {
		return nil, invalid("price", "prices must not be negative")
	}
	if _, err := c.store.GetPhysicalUnit(ctx, u.PhysicalUnitID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Physical unit")
		}
		return nil, err
	}
	if u.Amenities == nil {
		u.Amenities = []string{}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	if err := c.store.CreateVirtualUnit(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (c *Catalog) GetVirtualUnit(ctx context.Context, id string) (*model.VirtualUnit, error) {
	vu, err := c.store.GetVirtualUnit(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Virtual unit")
	}
	return vu, err
}

// ListVirtualUnits returns all virtual units, or those of unitType.
func (c *Catalog) ListVirtualUnits(ctx context.Context, unitType model.UnitType) ([]model.VirtualUnit, error) {
	return c.store.ListVirtualUnits(ctx, unitType)
}

func (c *Catalog) UpdateVirtualUnitImage(ctx context.Context, id, imageURL string) error {
	if strings.TrimSpace(imageURL) == "" {
		return invalid("image_url", "required")
	}
	err := c.store.SetVirtualUnitImage(ctx, id, imageURL)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("Virtual unit")
	}
	return err
}

// PriceRange is the lowest and highest price across all periods.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FilterOptions describes the values a storefront can filter on.
type FilterOptions struct {
	UnitTypes      []model.UnitType      `json:"unit_types"`
	Amenities      []string              `json:"amenities"`
	SizeCategories []string              `json:"size_categories"`
	PricingPeriods []model.PricingPeriod `json:"pricing_periods"`
	PaymentOptions []model.PaymentOption `json:"payment_options"`
	PriceRange     PriceRange            `json:"price_range"`
}

// FilterOptions summarises every virtual unit, booked or not.  With no
// units the price range is 0..1000.
func (c *Catalog) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	units, err := c.store.ListVirtualUnits(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list virtual units: %w", err)
	}
	seen := map[string]struct{}{}
	amenities := []string{}
	pr := PriceRange{Min: 0, Max: 1000}
	for i, u := range units {
		for _, a := range u.Amenities {
			if _, ok := seen[a]; !ok {
				seen[a] = struct{}{}
				amenities = append(amenities, a)
			}
		}
		for j, p := range []float64{u.DailyPrice, u.WeeklyPrice, u.MonthlyPrice} {
			if (i == 0 && j == 0) || p < pr.Min {
				pr.Min = p
			}
			if (i == 0 && j == 0) || p > pr.Max {
				pr.Max = p
			}
		}
	}
	sort.Strings(amenities)
	return &FilterOptions{
		UnitTypes:      model.UnitTypes,
		Amenities:      amenities,
		SizeCategories: SizeCategories,
		PricingPeriods: model.PricingPeriods,
		PaymentOptions: model.PaymentOptions,
		PriceRange:     pr,
	}, nil
}
