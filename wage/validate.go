package wage

import (
	"fmt"
	"math"
	"strings"

	"github.com/warp/wage-engine/holiday"
)

// =============================================================================
// VALIDATION
// =============================================================================

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Input bounds. Values outside them are still calculated (clamped), but
// Validate reports them.
const (
	MaxSalaryAmount   = 1_000_000_000
	MaxAnnualHolidays = 366
	MaxDailyHours     = 24
	MaxWeeklyHours    = 168
	MaxMonthlyHours   = 744
	MaxAmount         = 100_000_000
	MaxCustomHolidays = 366
	MaxDependents     = 20
	MinYear           = 1900
	MaxYear           = 2200
)

// Validate checks every numeric field against its bounded range. NaN and
// infinities are reported as out of range rather than clamped.
func Validate(d Description) ValidationErrors {
	var errs ValidationErrors
	check := func(field string, v, min, max float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < min || v > max {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be between %s and %s", formatBound(min), formatBound(max)),
			})
		}
	}

	switch d.SalaryType {
	case SalaryMonthly, SalaryAnnual:
	default:
		errs = append(errs, ValidationError{Field: "salary_type", Message: "must be monthly or annual"})
	}
	check("salary_amount", d.SalaryAmount, 0, MaxSalaryAmount)
	check("annual_holidays", d.AnnualHolidays, 0, MaxAnnualHolidays)

	switch d.WorkingHoursUnit {
	case HoursDaily:
		check("working_hours", d.WorkingHours, 0, MaxDailyHours)
	case HoursWeekly:
		check("working_hours", d.WorkingHours, 0, MaxWeeklyHours)
	case HoursMonthly:
		check("working_hours", d.WorkingHours, 0, MaxMonthlyHours)
	default:
		errs = append(errs, ValidationError{Field: "working_hours_unit", Message: "must be daily, weekly or monthly"})
	}

	if dh := d.DynamicHolidays; dh.Enabled {
		if dh.Year < MinYear || dh.Year > MaxYear {
			errs = append(errs, ValidationError{
				Field:   "dynamic_holidays.year",
				Message: fmt.Sprintf("must be between %d and %d", MinYear, MaxYear),
			})
		}
		if dh.Mode != "" {
			if _, err := holiday.ParseMode(string(dh.Mode)); err != nil {
				errs = append(errs, ValidationError{Field: "dynamic_holidays.mode", Message: "must be calendar or fiscal"})
			}
		}
	}

	if d.BenefitsEnabled {
		check("welfare.amount", d.Welfare.Amount, 0, MaxAmount)
		check("allowances.housing", d.Allowances.Housing, 0, MaxAmount)
		check("allowances.family", d.Allowances.Family, 0, MaxAmount)
		check("allowances.commuting", d.Allowances.Commuting, 0, MaxAmount)
		check("allowances.other", d.Allowances.Other, 0, MaxAmount)
	}
	check("bonuses.summer", d.Bonuses.Summer, 0, MaxAmount)
	check("bonuses.winter", d.Bonuses.Winter, 0, MaxAmount)
	check("bonuses.performance", d.Bonuses.Performance, 0, MaxAmount)
	check("bonuses.other", d.Bonuses.Other, 0, MaxAmount)
	check("custom_holidays", d.CustomHolidays, 0, MaxCustomHolidays)

	if ot := d.Overtime; ot != nil {
		limit := float64(MaxDailyHours)
		switch d.WorkingHoursUnit {
		case HoursWeekly:
			limit = MaxWeeklyHours
		case HoursMonthly:
			limit = MaxMonthlyHours
		}
		check("overtime.normal", ot.Normal, 0, limit)
		check("overtime.night", ot.Night, 0, limit)
	}

	if ins := d.Insurance; ins != nil && ins.Enabled {
		if strings.TrimSpace(ins.Region) == "" {
			errs = append(errs, ValidationError{Field: "insurance.region", Message: "is required when insurance is enabled"})
		}
		if ins.Dependents < 0 || ins.Dependents > MaxDependents {
			errs = append(errs, ValidationError{
				Field:   "insurance.dependents",
				Message: fmt.Sprintf("must be between 0 and %d", MaxDependents),
			})
		}
	}

	return errs
}

func formatBound(v float64) string {
	return fmt.Sprintf("%.0f", v)
}
