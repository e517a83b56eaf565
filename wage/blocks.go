package wage

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/wage-engine/holiday"
)

// =============================================================================
// SPECIAL HOLIDAY BLOCKS
// =============================================================================

// Block is a company-wide holiday block.
type Block string

const (
	BlockGoldenWeek Block = "golden_week"
	BlockSummer     Block = "summer"
	BlockYearEnd    Block = "year_end"
)

// Some base holiday counts already contain the public holidays that fall
// inside a block, so the block only adds its remaining weekdays.
//
//	block        default  base 120/124  base 119
//	golden week       10             6         4
//	year-end           6             4         3
//	summer             5             5         5
func staticBlockDays(b Block, base float64) int {
	switch b {
	case BlockGoldenWeek:
		switch base {
		case 119:
			return 4
		case 120, 124:
			return 6
		}
		return 10
	case BlockYearEnd:
		switch base {
		case 119:
			return 3
		case 120, 124:
			return 4
		}
		return 6
	case BlockSummer:
		return 5
	}
	return 0
}

func staticSpecialDays(s SpecialHolidays, base float64) decimal.Decimal {
	total := 0
	for _, b := range s.enabled() {
		total += staticBlockDays(b, base)
	}
	return decimal.NewFromInt(int64(total))
}

func (s SpecialHolidays) enabled() []Block {
	var blocks []Block
	if s.GoldenWeek {
		blocks = append(blocks, BlockGoldenWeek)
	}
	if s.Summer {
		blocks = append(blocks, BlockSummer)
	}
	if s.YearEnd {
		blocks = append(blocks, BlockYearEnd)
	}
	return blocks
}

// =============================================================================
// CALENDAR-AWARE BLOCKS
// =============================================================================

// blockWindows returns the calendar windows of b inside cal's period. The
// year-end block straddles New Year, so a calendar year sees its tail
// (Jan 1-3) and its head (Dec 29-31) while a fiscal year sees one
// contiguous window.
func blockWindows(b Block, cal *holiday.Calendar) []holiday.Period {
	y := cal.Year
	var windows []holiday.Period
	switch b {
	case BlockGoldenWeek:
		windows = []holiday.Period{{Start: holiday.Date(y, time.April, 27), End: holiday.Date(y, time.May, 6)}}
	case BlockSummer:
		windows = []holiday.Period{{Start: holiday.Date(y, time.August, 13), End: holiday.Date(y, time.August, 17)}}
	case BlockYearEnd:
		windows = []holiday.Period{
			{Start: holiday.Date(y-1, time.December, 29), End: holiday.Date(y, time.January, 3)},
			{Start: holiday.Date(y, time.December, 29), End: holiday.Date(y+1, time.January, 3)},
		}
	}

	out := make([]holiday.Period, 0, len(windows))
	for _, w := range windows {
		if clipped := w.Clip(cal.Period); clipped.Days() > 0 {
			out = append(out, clipped)
		}
	}
	return out
}

// dynamicBlockDays counts the days of b that the archetype's base holidays
// do not already cover. Every archetype rests on weekends; the "+holidays"
// archetypes also rest on public holidays.
func dynamicBlockDays(b Block, cal *holiday.Calendar, a holiday.Archetype) int {
	days := 0
	for _, w := range blockWindows(b, cal) {
		w.Each(func(day time.Time) {
			if holiday.IsWeekend(day) {
				return
			}
			if a.IncludesPublicHolidays() && cal.IsPublicHoliday(day) {
				return
			}
			days++
		})
	}
	return days
}

func dynamicSpecialDays(s SpecialHolidays, cal *holiday.Calendar, a holiday.Archetype) decimal.Decimal {
	total := 0
	for _, b := range s.enabled() {
		total += dynamicBlockDays(b, cal, a)
	}
	return decimal.NewFromInt(int64(total))
}
