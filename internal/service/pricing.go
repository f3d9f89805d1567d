package service

import (
	"github.com/shopspring/decimal"

	"github.com/iliyamo/storage-booking/internal/model"
)

// PriceForPeriod selects the unit price for period.  Anything other than
// daily or weekly, including an empty or unknown period, selects the
// monthly price.
func PriceForPeriod(vu *model.VirtualUnit, period model.PricingPeriod) float64 {
	switch period {
	case model.PeriodDaily:
		return vu.DailyPrice
	case model.PeriodWeekly:
		return vu.WeeklyPrice
	default:
		return vu.MonthlyPrice
	}
}

// ParsePricingPeriod maps a query value to a period, defaulting to monthly.
func ParsePricingPeriod(s string) model.PricingPeriod {
	switch model.PricingPeriod(s) {
	case model.PeriodDaily, model.PeriodWeekly:
		return model.PricingPeriod(s)
	}
	return model.PeriodMonthly
}

// ToCents converts a dollar amount to integer cents, rounding half away
// from zero.
func ToCents(amount float64) int64 {
	return decimal.NewFromFloat(amount).Shift(2).Round(0).IntPart()
}
