package insurance

import "github.com/shopspring/decimal"

// =============================================================================
// STANDARD MONTHLY REMUNERATION GRADES
// =============================================================================

// Grade is one band of the standard monthly remuneration table. A salary s
// falls in the band when From <= s < To. The top band has To == 0.
type Grade struct {
	Grade    int   `json:"grade"`
	From     int64 `json:"from"`
	To       int64 `json:"to"`
	Standard int64 `json:"standard"`
}

// Pension contributions use the same table clamped to these bounds.
const (
	MinPensionStandard = 88000
	MaxPensionStandard = 650000
)

var grades = []Grade{
	{1, 0, 63000, 58000},
	{2, 63000, 73000, 68000},
	{3, 73000, 83000, 78000},
	{4, 83000, 93000, 88000},
	{5, 93000, 101000, 98000},
	{6, 101000, 107000, 104000},
	{7, 107000, 114000, 110000},
	{8, 114000, 122000, 118000},
	{9, 122000, 130000, 126000},
	{10, 130000, 138000, 134000},
	{11, 138000, 146000, 142000},
	{12, 146000, 155000, 150000},
	{13, 155000, 165000, 160000},
	{14, 165000, 175000, 170000},
	{15, 175000, 185000, 180000},
	{16, 185000, 195000, 190000},
	{17, 195000, 210000, 200000},
	{18, 210000, 230000, 220000},
	{19, 230000, 250000, 240000},
	{20, 250000, 270000, 260000},
	{21, 270000, 290000, 280000},
	{22, 290000, 310000, 300000},
	{23, 310000, 330000, 320000},
	{24, 330000, 350000, 340000},
	{25, 350000, 370000, 360000},
	{26, 370000, 395000, 380000},
	{27, 395000, 425000, 410000},
	{28, 425000, 455000, 440000},
	{29, 455000, 485000, 470000},
	{30, 485000, 515000, 500000},
	{31, 515000, 545000, 530000},
	{32, 545000, 575000, 560000},
	{33, 575000, 605000, 590000},
	{34, 605000, 635000, 620000},
	{35, 635000, 665000, 650000},
	{36, 665000, 695000, 680000},
	{37, 695000, 730000, 710000},
	{38, 730000, 770000, 750000},
	{39, 770000, 810000, 790000},
	{40, 810000, 855000, 830000},
	{41, 855000, 905000, 880000},
	{42, 905000, 955000, 930000},
	{43, 955000, 1005000, 980000},
	{44, 1005000, 1055000, 1030000},
	{45, 1055000, 1115000, 1090000},
	{46, 1115000, 1175000, 1150000},
	{47, 1175000, 1235000, 1210000},
	{48, 1235000, 1295000, 1270000},
	{49, 1295000, 1355000, 1330000},
	{50, 1355000, 0, 1390000},
}

// Grades returns a copy of the remuneration table in ascending order.
func Grades() []Grade {
	out := make([]Grade, len(grades))
	copy(out, grades)
	return out
}

// LookupGrade maps a monthly salary to its band. Salaries at or above the
// top band collapse to the maximum grade; negative salaries map to grade 1.
func LookupGrade(monthly decimal.Decimal) Grade {
	for _, g := range grades {
		if g.To == 0 || monthly.LessThan(decimal.NewFromInt(g.To)) {
			return g
		}
	}
	return grades[len(grades)-1]
}

// PensionStandard clamps a standard salary to the pension bounds.
func PensionStandard(standard int64) int64 {
	switch {
	case standard < MinPensionStandard:
		return MinPensionStandard
	case standard > MaxPensionStandard:
		return MaxPensionStandard
	default:
		return standard
	}
}
