/*
Package holiday resolves public-holiday calendars into the day counts the
wage engine needs.

PURPOSE:
  A compensation description only states "120 holidays a year". To turn a
  year into working days the engine needs to know how many weekend days and
  public holidays a given calendar or fiscal year actually contains. This
  package fetches raw holiday dates from a provider, slices them into
  calendar or fiscal periods, and aggregates them into a Count.

KEY CONCEPTS IN THIS FILE (types.go):
  - Holiday:   A single public holiday (date + name)
  - Count:     Aggregated weekend/public/substitute counts for a period
  - Archetype: A named work pattern derived from a Count
  - Calendar:  A resolved (year, mode) with its holidays and Count

PROVIDER CHAIN:
  primary Provider (HTTP, optionally Redis-cached)
    -> StaticProvider (embedded table)
    -> ErrNoHolidayData to the caller

USAGE:
  resolver := holiday.NewResolver(holiday.NewStaticProvider(), nil, logger)
  count, err := resolver.Count(ctx, 2025, holiday.ModeFiscal)

SEE ALSO:
  - period.go:   Calendar vs fiscal period boundaries
  - resolver.go: Resolution, fiscal slicing and caching
  - provider.go: Provider implementations
*/
package holiday

import (
	"strings"
	"time"
)

// =============================================================================
// HOLIDAY
// =============================================================================

// Holiday is a single public holiday.
type Holiday struct {
	Date time.Time `json:"date"`
	Name string    `json:"name"`
}

// IsSubstitute reports whether the holiday is a substitute holiday (振替休日),
// granted when a public holiday falls on a Sunday.
func (h Holiday) IsSubstitute() bool {
	return strings.Contains(h.Name, "振替")
}

// =============================================================================
// COUNT
// =============================================================================

// Count is the aggregated holiday composition of a resolved period.
type Count struct {
	Total          int `json:"total"`
	Weekends       int `json:"weekends"`
	PublicHolidays int `json:"public_holidays"` // public holidays falling on weekdays
	Substitute     int `json:"substitute"`      // subset of PublicHolidays
	Days           int `json:"days"`            // length of the period
}

// =============================================================================
// ARCHETYPES - Named work patterns
// =============================================================================

// Archetype is a named work pattern used to classify a user-entered holiday
// count.
type Archetype string

const (
	ArchetypeTwoDayMonthlyShift         Archetype = "two_day_monthly_shift"
	ArchetypeTwoDayHolidaysMonthlyShift Archetype = "two_day_holidays_monthly_shift"
	ArchetypeFullTwoDay                 Archetype = "full_two_day"
	ArchetypeFullTwoDayHolidays         Archetype = "full_two_day_holidays"
)

// MonthlyShiftAdjustment is the number of weekend days worked per year by the
// "one weekend shift per month" patterns.
const MonthlyShiftAdjustment = 12

// Archetypes lists every archetype in classification order.
var Archetypes = []Archetype{
	ArchetypeTwoDayMonthlyShift,
	ArchetypeTwoDayHolidaysMonthlyShift,
	ArchetypeFullTwoDay,
	ArchetypeFullTwoDayHolidays,
}

// IncludesPublicHolidays reports whether the pattern's holiday count already
// contains the public holidays of the period.
func (a Archetype) IncludesPublicHolidays() bool {
	return a == ArchetypeTwoDayHolidaysMonthlyShift || a == ArchetypeFullTwoDayHolidays
}

// Baseline returns the number of holidays a period grants under archetype a.
func (c Count) Baseline(a Archetype) int {
	switch a {
	case ArchetypeTwoDayMonthlyShift:
		return c.Weekends - MonthlyShiftAdjustment
	case ArchetypeTwoDayHolidaysMonthlyShift:
		return c.Total - MonthlyShiftAdjustment
	case ArchetypeFullTwoDay:
		return c.Weekends
	case ArchetypeFullTwoDayHolidays:
		return c.Total
	default:
		return 0
	}
}

// Baselines returns the baseline of every archetype.
func (c Count) Baselines() map[Archetype]int {
	out := make(map[Archetype]int, len(Archetypes))
	for _, a := range Archetypes {
		out[a] = c.Baseline(a)
	}
	return out
}

// =============================================================================
// CALENDAR - A resolved (year, mode)
// =============================================================================

// Calendar is a resolved period with its public holidays sorted ascending.
// It is immutable once built and safe to share between goroutines.
type Calendar struct {
	Year     int       `json:"year"`
	Mode     Mode      `json:"mode"`
	Period   Period    `json:"period"`
	Holidays []Holiday `json:"holidays"`
	Count    Count     `json:"count"`

	index map[string]Holiday
}

func newCalendar(year int, mode Mode, period Period, holidays []Holiday) *Calendar {
	cal := &Calendar{
		Year:     year,
		Mode:     mode,
		Period:   period,
		Holidays: holidays,
		index:    make(map[string]Holiday, len(holidays)),
	}
	for _, h := range holidays {
		cal.index[dayKey(h.Date)] = h
	}
	cal.Count = cal.count()
	return cal
}

// IsPublicHoliday reports whether day is a public holiday in this calendar.
func (c *Calendar) IsPublicHoliday(day time.Time) bool {
	_, ok := c.index[dayKey(day)]
	return ok
}

func (c *Calendar) count() Count {
	cnt := Count{Days: c.Period.Days()}
	c.Period.Each(func(day time.Time) {
		if IsWeekend(day) {
			cnt.Weekends++
			return
		}
		if h, ok := c.index[dayKey(day)]; ok {
			cnt.PublicHolidays++
			if h.IsSubstitute() {
				cnt.Substitute++
			}
		}
	})
	cnt.Total = cnt.Weekends + cnt.PublicHolidays
	return cnt
}

func dayKey(t time.Time) string { return t.Format("2006-01-02") }
