package service

import (
	"context"
	"fmt"

	"github.com/iliyamo/storage-booking/internal/model"
	"github.com/iliyamo/storage-booking/internal/repository"
)

// Availability answers "which listings can be booked right now".  Nothing
// is cached: every call reads the ledger.
type Availability struct {
	store repository.Store
}

func NewAvailability(store repository.Store) *Availability {
	return &Availability{store: store}
}

// Resolve lists virtual units of unitType (all when empty).  With
// availableOnly it drops every unit whose physical unit carries a blocking
// booking, which hides all sibling listings of a booked physical unit.
func (a *Availability) Resolve(ctx context.Context, unitType model.UnitType, availableOnly bool) ([]model.VirtualUnit, error) {
	units, err := a.store.ListVirtualUnits(ctx, unitType)
	if err != nil {
		return nil, fmt.Errorf("list virtual units: %w", err)
	}
	if !availableOnly {
		return units, nil
	}
	blocked, err := a.store.BlockingPhysicalUnitIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("blocking set: %w", err)
	}
	out := units[:0]
	for _, u := range units {
		if _, taken := blocked[u.PhysicalUnitID]; !taken {
			out = append(out, u)
		}
	}
	return out, nil
}

// Search resolves availability and then applies f.
func (a *Availability) Search(ctx context.Context, unitType model.UnitType, availableOnly bool, f Filter) ([]model.VirtualUnit, error) {
	units, err := a.Resolve(ctx, unitType, availableOnly)
	if err != nil {
		return nil, err
	}
	return f.Apply(units), nil
}
