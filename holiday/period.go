package holiday

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// PERIOD - Calendar vs fiscal year boundaries
// =============================================================================

// Mode selects how a year maps onto a period.
type Mode string

const (
	ModeCalendar Mode = "calendar" // Jan 1 - Dec 31
	ModeFiscal   Mode = "fiscal"   // Apr 1 - Mar 31 of the following year
)

// FiscalYearStartMonth is the first month of a Japanese fiscal year.
const FiscalYearStartMonth = time.April

// ParseMode parses a mode string. An empty string means calendar mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeCalendar:
		return ModeCalendar, nil
	case ModeFiscal:
		return ModeFiscal, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Period is an inclusive date range at day granularity.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// PeriodFor returns the period covered by year in the given mode.
func PeriodFor(year int, mode Mode) Period {
	if mode == ModeFiscal {
		start := Date(year, FiscalYearStartMonth, 1)
		return Period{Start: start, End: start.AddDate(1, 0, -1)}
	}
	return Period{Start: Date(year, time.January, 1), End: Date(year, time.December, 31)}
}

// Days returns the number of days in the period, both ends included.
func (p Period) Days() int {
	if p.End.Before(p.Start) {
		return 0
	}
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

// Contains returns true if day is within [Start, End].
func (p Period) Contains(day time.Time) bool {
	d := truncate(day)
	return !d.Before(p.Start) && !d.After(p.End)
}

// Each calls fn for every day of the period in order.
func (p Period) Each(fn func(day time.Time)) {
	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

// Clip returns the intersection of p and other. The result has zero days
// when they do not overlap.
func (p Period) Clip(other Period) Period {
	out := p
	if other.Start.After(out.Start) {
		out.Start = other.Start
	}
	if other.End.Before(out.End) {
		out.End = other.End
	}
	return out
}

func (p Period) String() string {
	return "[" + p.Start.Format("2006-01-02") + ", " + p.End.Format("2006-01-02") + "]"
}

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// IsWeekend reports whether day is a Saturday or Sunday.
func IsWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func truncate(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}
