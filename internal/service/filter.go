package service

import (
	"strings"

	"github.com/iliyamo/storage-booking/internal/model"
)

// Filter narrows an already availability-resolved list of virtual units.
// Unit type is applied earlier, at the store.  Nil bounds and empty
// values disable their predicate.
type Filter struct {
	MinPrice      *float64
	MaxPrice      *float64
	PricingPeriod model.PricingPeriod
	Amenities     []string
	SizeCategory  string
}

// ParseAmenities splits a comma-separated list, trimming entries and
// dropping empty ones.
func ParseAmenities(s string) []string {
	var out []string
	for _, a := range strings.Split(s, ",") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// Apply returns the units that pass every predicate, in input order.
// Price bounds are inclusive; amenities match when the unit has any of
// them; size category is checked last.
func (f Filter) Apply(units []model.VirtualUnit) []model.VirtualUnit {
	out := make([]model.VirtualUnit, 0, len(units))
	for i := range units {
		u := &units[i]
		if f.MinPrice != nil || f.MaxPrice != nil {
			price := PriceForPeriod(u, f.PricingPeriod)
			if f.MinPrice != nil && price < *f.MinPrice {
				continue
			}
			if f.MaxPrice != nil && price > *f.MaxPrice {
				continue
			}
		}
		if len(f.Amenities) > 0 && !u.HasAnyAmenity(f.Amenities) {
			continue
		}
		if f.SizeCategory != "" && SizeCategory(u.DisplaySize) != f.SizeCategory {
			continue
		}
		out = append(out, *u)
	}
	return out
}
