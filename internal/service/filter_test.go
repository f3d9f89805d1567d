package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/storage-booking/internal/model"
)

func ptr(f float64) *float64 { return &f }

func names(units []model.VirtualUnit) []string {
	out := make([]string, 0, len(units))
	for _, u := range units {
		out = append(out, u.DisplayName)
	}
	return out
}

func filterFixture() []model.VirtualUnit {
	return []model.VirtualUnit{
		{DisplayName: "a", DisplaySize: "10x25", DailyPrice: 5, WeeklyPrice: 30, MonthlyPrice: 100, Amenities: []string{"security"}},
		{DisplayName: "b", DisplaySize: "12x30", DailyPrice: 8, WeeklyPrice: 50, MonthlyPrice: 200, Amenities: []string{"covered"}},
		{DisplayName: "c", DisplaySize: "16x40", DailyPrice: 10, WeeklyPrice: 60, MonthlyPrice: 320, Amenities: []string{"climate_control", "security"}},
	}
}

func TestFilterPriceRangeIsInclusive(t *testing.T) {
	got := Filter{MinPrice: ptr(100), MaxPrice: ptr(200)}.Apply(filterFixture())
	assert.Equal(t, []string{"a", "b"}, names(got))

	got = Filter{MinPrice: ptr(50), MaxPrice: ptr(50), PricingPeriod: model.PeriodWeekly}.Apply(filterFixture())
	assert.Equal(t, []string{"b"}, names(got))
}

func TestFilterAmenitiesAreOR(t *testing.T) {
	got := Filter{Amenities: []string{"covered", "climate_control"}}.Apply(filterFixture())
	assert.Equal(t, []string{"b", "c"}, names(got))
}

func TestFilterComposition(t *testing.T) {
	f := Filter{
		MaxPrice:     ptr(250),
		Amenities:    ParseAmenities(" security , ,covered"),
		SizeCategory: SizeMedium,
	}
	assert.Equal(t, []string{"a", "b"}, names(f.Apply(filterFixture())))
}

func TestFilterEmptyPassesEverything(t *testing.T) {
	assert.Len(t, Filter{}.Apply(filterFixture()), 3)
	assert.Empty(t, Filter{SizeCategory: "huge"}.Apply(filterFixture()))
}

func TestParseAmenities(t *testing.T) {
	assert.Equal(t, []string{"security", "covered"}, ParseAmenities("security, covered,"))
	assert.Nil(t, ParseAmenities(" , "))
}
