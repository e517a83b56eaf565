package wage

import "github.com/shopspring/decimal"

var (
	normalPremium = decimal.RequireFromString("1.25")
	nightPremium  = decimal.RequireFromString("1.5")
	weeksPerYear  = decimal.RequireFromString("52.14")
)

type overtime struct {
	baseHourly decimal.Decimal
	pay        decimal.Decimal
	hours      decimal.Decimal
}

// computeOvertime annualizes the overtime figures and prices them at the
// statutory premiums over the base hourly wage. It reports false when there
// are no overtime hours.
func computeOvertime(d Description, baseAnnual, perDay, workingDays decimal.Decimal) (overtime, bool) {
	normal := dec(d.Overtime.Normal)
	night := dec(d.Overtime.Night)
	if normal.IsZero() && night.IsZero() {
		return overtime{}, false
	}

	var factor decimal.Decimal
	switch d.WorkingHoursUnit {
	case HoursWeekly:
		factor = weeksPerYear
	case HoursMonthly:
		factor = twelve
	default:
		factor = workingDays
	}
	annualNormal := normal.Mul(factor)
	annualNight := night.Mul(factor)

	// base hourly = monthly salary / (hours per day * average monthly working days)
	baseMonthly := baseAnnual.Div(twelve)
	avgMonthlyDays := workingDays.Div(twelve)
	denominator := perDay.Mul(avgMonthlyDays)

	baseHourly := decimal.Zero
	if denominator.IsPositive() {
		baseHourly = baseMonthly.Div(denominator)
	}

	pay := baseHourly.Mul(normalPremium).Mul(annualNormal).
		Add(baseHourly.Mul(nightPremium).Mul(annualNight))

	return overtime{
		baseHourly: baseHourly,
		pay:        pay,
		hours:      annualNormal.Add(annualNight),
	}, true
}
