package wage

import (
	"github.com/shopspring/decimal"
	"github.com/warp/wage-engine/holiday"
)

// DefaultPeriodDays is used when no year is known.
const DefaultPeriodDays = 365

// Per-day normalization divisors.
const (
	workdaysPerWeek  = 5
	workdaysPerMonth = 22
)

var twelve = decimal.NewFromInt(12)

// plan is the holiday accounting a variant hands to the shared pipeline.
type plan struct {
	periodDays  int
	specialDays decimal.Decimal
	archetype   holiday.Archetype
	source      Source
	overtime    bool
}

// =============================================================================
// STATIC VARIANT
// =============================================================================

// CalculateStatic normalizes d using its own AnnualHolidays figure and the
// fixed special-block table. Overtime is not applied.
func CalculateStatic(d Description) Result {
	if degenerate(d) {
		return Result{Source: SourceStatic}
	}
	return compute(d, staticPlan(d, SourceStatic, false))
}

func staticPlan(d Description, source Source, overtime bool) plan {
	return plan{
		periodDays:  staticPeriodDays(d.DynamicHolidays),
		specialDays: staticSpecialDays(d.SpecialHolidays, clamp(d.AnnualHolidays)),
		source:      source,
		overtime:    overtime,
	}
}

// staticPeriodDays is 365 unless a year was requested, in which case the
// real length of the calendar or fiscal year is used.
func staticPeriodDays(dh DynamicHolidays) int {
	if !dh.Enabled || dh.Year <= 0 {
		return DefaultPeriodDays
	}
	mode := dh.Mode
	if mode != holiday.ModeFiscal {
		mode = holiday.ModeCalendar
	}
	return holiday.PeriodFor(dh.Year, mode).Days()
}

// =============================================================================
// SHARED PIPELINE
// =============================================================================

func compute(d Description, p plan) Result {
	base := BaseAnnualSalary(d)
	income := base.Add(WelfareContribution(d)).Add(BonusTotal(d))

	totalHolidays := dec(d.AnnualHolidays).Add(p.specialDays).Add(dec(d.CustomHolidays))
	workingDays := decimal.NewFromInt(int64(p.periodDays)).Sub(totalHolidays)
	if workingDays.IsNegative() {
		workingDays = decimal.Zero
	}

	perDay := HoursPerDay(d)
	totalHours := workingDays.Mul(perDay)

	res := Result{
		TotalAnnualHolidays: totalHolidays.InexactFloat64(),
		Archetype:           p.archetype,
		Source:              p.source,
	}

	if p.overtime && d.Overtime != nil {
		if ot, ok := computeOvertime(d, base, perDay, workingDays); ok {
			income = income.Add(ot.pay)
			totalHours = totalHours.Add(ot.hours)

			baseHourly := Yen(ot.baseHourly)
			pay := Yen(ot.pay)
			otHours := hours(ot.hours)
			res.BaseHourlyWage = &baseHourly
			res.OvertimePay = &pay
			res.OvertimeHours = &otHours
		}
	}

	res.ActualAnnualIncome = Yen(income)
	res.ActualMonthlyIncome = Yen(income.Div(twelve))
	res.TotalWorkingHours = hours(totalHours)
	res.HourlyWage = hourlyWage(income, totalHours)
	return res
}

// BaseAnnualSalary returns the salary alone, annualized.
func BaseAnnualSalary(d Description) decimal.Decimal {
	salary := dec(d.SalaryAmount)
	if d.SalaryType == SalaryAnnual {
		return salary
	}
	return salary.Mul(twelve)
}

// WelfareContribution returns the annual welfare income, zero when benefits
// are disabled.
func WelfareContribution(d Description) decimal.Decimal {
	if !d.BenefitsEnabled {
		return decimal.Zero
	}
	var amount decimal.Decimal
	if d.Welfare.Method == WelfareItemized {
		amount = AllowanceTotal(d.Allowances)
	} else {
		amount = dec(d.Welfare.Amount)
	}
	if d.Welfare.Unit == AmountMonthly {
		return amount.Mul(twelve)
	}
	return amount
}

// AllowanceTotal sums the four allowance fields in their own unit.
func AllowanceTotal(a Allowances) decimal.Decimal {
	return dec(a.Housing).Add(dec(a.Family)).Add(dec(a.Commuting)).Add(dec(a.Other))
}

// BonusTotal sums the four annual bonus fields.
func BonusTotal(d Description) decimal.Decimal {
	b := d.Bonuses
	return dec(b.Summer).Add(dec(b.Winter)).Add(dec(b.Performance)).Add(dec(b.Other))
}

// HoursPerDay normalizes the working-hours figure to hours per working day.
func HoursPerDay(d Description) decimal.Decimal {
	h := dec(d.WorkingHours)
	switch d.WorkingHoursUnit {
	case HoursWeekly:
		return h.Div(decimal.NewFromInt(workdaysPerWeek))
	case HoursMonthly:
		return h.Div(decimal.NewFromInt(workdaysPerMonth))
	default:
		return h
	}
}

func hourlyWage(income, totalHours decimal.Decimal) int64 {
	if !totalHours.IsPositive() || !income.IsPositive() {
		return 0
	}
	return Yen(income.Div(totalHours))
}
