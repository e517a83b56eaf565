package holiday

import (
	"context"
	"fmt"
	"sort"
)

// =============================================================================
// STATIC PROVIDER - Embedded fallback table
// =============================================================================

// staticTable holds Japanese public holidays as MM-DD -> name per year.
var staticTable = map[int]map[string]string{
	2024: {
		"01-01": "元日",
		"01-08": "成人の日",
		"02-11": "建国記念の日",
		"02-12": "振替休日",
		"02-23": "天皇誕生日",
		"03-20": "春分の日",
		"04-29": "昭和の日",
		"05-03": "憲法記念日",
		"05-04": "みどりの日",
		"05-05": "こどもの日",
		"05-06": "振替休日",
		"07-15": "海の日",
		"08-11": "山の日",
		"08-12": "振替休日",
		"09-16": "敬老の日",
		"09-22": "秋分の日",
		"09-23": "振替休日",
		"10-14": "スポーツの日",
		"11-03": "文化の日",
		"11-04": "振替休日",
		"11-23": "勤労感謝の日",
	},
	2025: {
		"01-01": "元日",
		"01-13": "成人の日",
		"02-11": "建国記念の日",
		"02-23": "天皇誕生日",
		"02-24": "振替休日",
		"03-20": "春分の日",
		"04-29": "昭和の日",
		"05-03": "憲法記念日",
		"05-04": "みどりの日",
		"05-05": "こどもの日",
		"05-06": "振替休日",
		"07-21": "海の日",
		"08-11": "山の日",
		"09-15": "敬老の日",
		"09-23": "秋分の日",
		"10-13": "スポーツの日",
		"11-03": "文化の日",
		"11-23": "勤労感謝の日",
		"11-24": "振替休日",
	},
	2026: {
		"01-01": "元日",
		"01-12": "成人の日",
		"02-11": "建国記念の日",
		"02-23": "天皇誕生日",
		"03-20": "春分の日",
		"04-29": "昭和の日",
		"05-03": "憲法記念日",
		"05-04": "みどりの日",
		"05-05": "こどもの日",
		"05-06": "振替休日",
		"07-20": "海の日",
		"08-11": "山の日",
		"09-21": "敬老の日",
		"09-22": "国民の休日",
		"09-23": "秋分の日",
		"10-12": "スポーツの日",
		"11-03": "文化の日",
		"11-23": "勤労感謝の日",
	},
	2027: {
		"01-01": "元日",
		"01-11": "成人の日",
		"02-11": "建国記念の日",
		"02-23": "天皇誕生日",
		"03-21": "春分の日",
		"03-22": "振替休日",
		"04-29": "昭和の日",
		"05-03": "憲法記念日",
		"05-04": "みどりの日",
		"05-05": "こどもの日",
		"07-19": "海の日",
		"08-11": "山の日",
		"09-20": "敬老の日",
		"09-23": "秋分の日",
		"10-11": "スポーツの日",
		"11-03": "文化の日",
		"11-23": "勤労感謝の日",
	},
}

// StaticProvider serves holidays from the embedded table.
type StaticProvider struct{}

// NewStaticProvider returns the embedded-table provider.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

// Holidays returns the embedded holidays of year, or ErrNoHolidayData.
func (StaticProvider) Holidays(_ context.Context, year int) ([]Holiday, error) {
	entries, ok := staticTable[year]
	if !ok {
		return nil, fmt.Errorf("%w: %d (static table)", ErrNoHolidayData, year)
	}
	full := make(map[string]string, len(entries))
	for md, name := range entries {
		full[fmt.Sprintf("%04d-%s", year, md)] = name
	}
	return parseDateMap(year, full)
}

// StaticYears returns the years covered by the embedded table, ascending.
func StaticYears() []int {
	years := make([]int, 0, len(staticTable))
	for y := range staticTable {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
