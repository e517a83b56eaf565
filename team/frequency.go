package team

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// FREQUENCY
// =============================================================================

type FrequencyType string

const (
	FrequencyOnce    FrequencyType = "once"
	FrequencyDaily   FrequencyType = "daily"
	FrequencyWeekly  FrequencyType = "weekly"
	FrequencyMonthly FrequencyType = "monthly"
	FrequencyYearly  FrequencyType = "yearly"
)

// Frequency describes how often a task runs. Interval is "every N units";
// values below 1 are treated as 1. DaysOfWeek uses 0=Sunday .. 6=Saturday.
// DayOfMonth and MonthOfYear refine the schedule but do not change the
// yearly rate.
type Frequency struct {
	Type        FrequencyType `json:"type"`
	Interval    int           `json:"interval"`
	DaysOfWeek  []int         `json:"days_of_week,omitempty"`
	DayOfMonth  int           `json:"day_of_month,omitempty"`
	MonthOfYear int           `json:"month_of_year,omitempty"`
}

var (
	daysPerYear   = decimal.NewFromInt(365)
	weeksPerYear  = decimal.NewFromInt(52)
	monthsPerYear = decimal.NewFromInt(12)
)

// AnnualExecutions converts a frequency into executions per year:
//
//	once     1
//	daily    365 / interval
//	weekly   52 / interval x max(1, selected weekdays)
//	monthly  12 / interval
//	yearly   1 / interval
//
// Unknown types run zero times.
func AnnualExecutions(f Frequency) decimal.Decimal {
	interval := decimal.NewFromInt(int64(max(f.Interval, 1)))

	switch f.Type {
	case FrequencyOnce:
		return decimal.NewFromInt(1)
	case FrequencyDaily:
		return daysPerYear.Div(interval)
	case FrequencyWeekly:
		days := decimal.NewFromInt(int64(max(f.selectedWeekdays(), 1)))
		return weeksPerYear.Div(interval).Mul(days)
	case FrequencyMonthly:
		return monthsPerYear.Div(interval)
	case FrequencyYearly:
		return decimal.NewFromInt(1).Div(interval)
	default:
		return decimal.Zero
	}
}

// selectedWeekdays counts the distinct valid weekdays.
func (f Frequency) selectedWeekdays() int {
	var seen [7]bool
	n := 0
	for _, d := range f.DaysOfWeek {
		if d < int(time.Sunday) || d > int(time.Saturday) || seen[d] {
			continue
		}
		seen[d] = true
		n++
	}
	return n
}

// Validate checks the type and the refinements.
func (f Frequency) Validate() error {
	switch f.Type {
	case FrequencyOnce, FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
	default:
		return fmt.Errorf("%w: unknown frequency type %q", ErrInvalidTask, f.Type)
	}
	if f.Interval < 0 {
		return fmt.Errorf("%w: interval must not be negative", ErrInvalidTask)
	}
	for _, d := range f.DaysOfWeek {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: day of week %d out of range", ErrInvalidTask, d)
		}
	}
	if f.DayOfMonth < 0 || f.DayOfMonth > 31 {
		return fmt.Errorf("%w: day of month %d out of range", ErrInvalidTask, f.DayOfMonth)
	}
	if f.MonthOfYear < 0 || f.MonthOfYear > 12 {
		return fmt.Errorf("%w: month of year %d out of range", ErrInvalidTask, f.MonthOfYear)
	}
	return nil
}
