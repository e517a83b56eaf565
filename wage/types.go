/*
Package wage normalizes heterogeneous compensation into an effective hourly
wage.

PURPOSE:
  A salary of "¥240,000 a month with 120 holidays and 8 hours a day" and one
  of "¥4,000,000 a year, 40 hours a week, plus bonuses" are not comparable
  until both are reduced to income per working hour. This package performs
  that reduction.

KEY CONCEPTS IN THIS FILE (types.go):
  - Description: Raw compensation as entered by a user
  - Result:      Canonical normalized figures
  - Source:      Which holiday accounting produced a Result

ENTRY POINTS:
  CalculateStatic(d)          Uses the description's own holiday figure with
                              fixed special-block day counts. Pure.
  (*Calculator).Calculate     Resolves the real calendar through a
                              holiday.Resolver, classifies the user's holiday
                              count into an archetype and scales special
                              blocks accordingly. Adds overtime. Falls back
                              to the static formula when the calendar cannot
                              be resolved.

TOTALITY:
  Neither entry point returns an error or panics. Negative, NaN and infinite
  numbers degrade to zero contributions; a description with no usable
  salary, holidays or hours yields a zero Result. Use Validate to obtain
  user-facing range errors instead.

SEE ALSO:
  - static.go:     The calculation pipeline
  - blocks.go:     Special-holiday block day counts
  - classifier.go: Archetype classification policy
  - validate.go:   Bounded-range validation
*/
package wage

import "github.com/warp/wage-engine/holiday"

// =============================================================================
// ENUMS
// =============================================================================

type SalaryType string

const (
	SalaryMonthly SalaryType = "monthly"
	SalaryAnnual  SalaryType = "annual"
)

// HoursUnit is the period the WorkingHours figure refers to.
type HoursUnit string

const (
	HoursDaily   HoursUnit = "daily"
	HoursWeekly  HoursUnit = "weekly"
	HoursMonthly HoursUnit = "monthly"
)

// AmountUnit is the period a welfare or allowance amount refers to.
type AmountUnit string

const (
	AmountMonthly AmountUnit = "monthly"
	AmountAnnual  AmountUnit = "annual"
)

// WelfareMethod selects between an aggregate welfare figure and itemized
// allowances.
type WelfareMethod string

const (
	WelfareTotal    WelfareMethod = "total"
	WelfareItemized WelfareMethod = "itemized"
)

// Source records which holiday accounting produced a Result.
type Source string

const (
	SourceStatic   Source = "static"
	SourceDynamic  Source = "dynamic"
	SourceFallback Source = "fallback" // dynamic requested, calendar unavailable
)

// =============================================================================
// DESCRIPTION - Raw compensation input
// =============================================================================

// Description is one compensation description.
type Description struct {
	SalaryType       SalaryType `json:"salary_type"`
	SalaryAmount     float64    `json:"salary_amount"`
	AnnualHolidays   float64    `json:"annual_holidays"`
	WorkingHours     float64    `json:"working_hours"`
	WorkingHoursUnit HoursUnit  `json:"working_hours_unit"`

	DynamicHolidays DynamicHolidays `json:"dynamic_holidays"`

	BenefitsEnabled bool       `json:"benefits_enabled"`
	Welfare         Welfare    `json:"welfare"`
	Allowances      Allowances `json:"allowances"`
	Bonuses         Bonuses    `json:"bonuses"`

	SpecialHolidays SpecialHolidays `json:"special_holidays"`
	CustomHolidays  float64         `json:"custom_holidays"`

	Overtime  *Overtime  `json:"overtime,omitempty"`
	Insurance *Insurance `json:"insurance,omitempty"`
}

// DynamicHolidays asks for calendar-aware holiday accounting.
type DynamicHolidays struct {
	Enabled bool         `json:"enabled"`
	Year    int          `json:"year,omitempty"`
	Mode    holiday.Mode `json:"mode,omitempty"`
}

// Welfare is the aggregate welfare amount and how allowances are entered.
// Allowances share Welfare.Unit.
type Welfare struct {
	Amount float64       `json:"amount"`
	Unit   AmountUnit    `json:"unit"`
	Method WelfareMethod `json:"method"`
}

type Allowances struct {
	Housing   float64 `json:"housing"`
	Family    float64 `json:"family"`
	Commuting float64 `json:"commuting"`
	Other     float64 `json:"other"`
}

// Bonuses are annual amounts.
type Bonuses struct {
	Summer      float64 `json:"summer"`
	Winter      float64 `json:"winter"`
	Performance float64 `json:"performance"`
	Other       float64 `json:"other"`
}

// SpecialHolidays toggles the three company-wide holiday blocks.
type SpecialHolidays struct {
	GoldenWeek bool `json:"golden_week"`
	Summer     bool `json:"summer"`
	YearEnd    bool `json:"year_end"`
}

// Overtime hours are expressed in the description's WorkingHoursUnit.
type Overtime struct {
	Normal float64 `json:"normal"`
	Night  float64 `json:"night"`
}

// Insurance opts a description into social-insurance calculation.
type Insurance struct {
	Enabled    bool   `json:"enabled"`
	Region     string `json:"region"`
	Dependents int    `json:"dependents"`
}

// =============================================================================
// RESULT - Canonical output
// =============================================================================

// Result is the normalized compensation. Money is in whole yen.
type Result struct {
	HourlyWage          int64   `json:"hourly_wage"`
	ActualAnnualIncome  int64   `json:"actual_annual_income"`
	ActualMonthlyIncome int64   `json:"actual_monthly_income"`
	TotalWorkingHours   float64 `json:"total_working_hours"`
	TotalAnnualHolidays float64 `json:"total_annual_holidays"`

	// Present only when overtime was computed.
	BaseHourlyWage *int64   `json:"base_hourly_wage,omitempty"`
	OvertimePay    *int64   `json:"overtime_pay,omitempty"`
	OvertimeHours  *float64 `json:"overtime_hours,omitempty"`

	Archetype holiday.Archetype `json:"archetype,omitempty"`
	Source    Source            `json:"source"`
}
