package wage_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/wage-engine/holiday"
	"github.com/warp/wage-engine/wage"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// baseline is ¥240,000 a month, 120 holidays, 8 hours a day, no extras.
func baseline() wage.Description {
	return wage.Description{
		SalaryType:       wage.SalaryMonthly,
		SalaryAmount:     240000,
		AnnualHolidays:   120,
		WorkingHours:     8,
		WorkingHoursUnit: wage.HoursDaily,
	}
}

func dynamic(d wage.Description, year int, mode holiday.Mode) wage.Description {
	d.DynamicHolidays = wage.DynamicHolidays{Enabled: true, Year: year, Mode: mode}
	return d
}

func allBlocks() wage.SpecialHolidays {
	return wage.SpecialHolidays{GoldenWeek: true, Summer: true, YearEnd: true}
}

func newCalculator() *wage.Calculator {
	return wage.NewCalculator(holiday.NewResolver(holiday.NewStaticProvider(), nil, nil), nil, nil)
}

// =============================================================================
// STATIC VARIANT
// =============================================================================

func TestCalculateStatic_ReferenceScenario(t *testing.T) {
	// GIVEN: ¥240,000/month, 120 holidays, 8h/day
	// WHEN: Normalizing
	// THEN: 245 working days, 1960 hours, ¥2,880,000/year, ¥1,469/hour

	res := wage.CalculateStatic(baseline())

	assert.Equal(t, int64(2880000), res.ActualAnnualIncome)
	assert.Equal(t, int64(240000), res.ActualMonthlyIncome)
	assert.Equal(t, 1960.0, res.TotalWorkingHours)
	assert.Equal(t, 120.0, res.TotalAnnualHolidays)
	assert.Equal(t, int64(1469), res.HourlyWage)
	assert.Equal(t, wage.SourceStatic, res.Source)
	assert.Nil(t, res.OvertimePay)
}

func TestCalculateStatic_HourUnitsNormalizeToSameWage(t *testing.T) {
	weekly := baseline()
	weekly.WorkingHours = 40
	weekly.WorkingHoursUnit = wage.HoursWeekly

	monthly := baseline()
	monthly.WorkingHours = 176
	monthly.WorkingHoursUnit = wage.HoursMonthly

	daily := wage.CalculateStatic(baseline())
	assert.Equal(t, daily, wage.CalculateStatic(weekly))
	assert.Equal(t, daily, wage.CalculateStatic(monthly))
}

func TestCalculateStatic_AnnualSalary(t *testing.T) {
	d := baseline()
	d.SalaryType = wage.SalaryAnnual
	d.SalaryAmount = 3600000
	d.AnnualHolidays = 125

	res := wage.CalculateStatic(d)

	assert.Equal(t, int64(3600000), res.ActualAnnualIncome)
	assert.Equal(t, 1920.0, res.TotalWorkingHours)
	assert.Equal(t, int64(1875), res.HourlyWage)
}

func TestCalculateStatic_WelfareAndBonuses(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *wage.Description)
		income int64
		hourly int64
	}{
		{
			name: "aggregate monthly welfare",
			mutate: func(d *wage.Description) {
				d.BenefitsEnabled = true
				d.Welfare = wage.Welfare{Amount: 20000, Unit: wage.AmountMonthly, Method: wage.WelfareTotal}
			},
			income: 3120000,
			hourly: 1592,
		},
		{
			name: "aggregate annual welfare",
			mutate: func(d *wage.Description) {
				d.BenefitsEnabled = true
				d.Welfare = wage.Welfare{Amount: 240000, Unit: wage.AmountAnnual, Method: wage.WelfareTotal}
			},
			income: 3120000,
			hourly: 1592,
		},
		{
			name: "itemized monthly allowances",
			mutate: func(d *wage.Description) {
				d.BenefitsEnabled = true
				d.Welfare = wage.Welfare{Amount: 999999, Unit: wage.AmountMonthly, Method: wage.WelfareItemized}
				d.Allowances = wage.Allowances{Housing: 10000, Commuting: 5000}
			},
			income: 3060000,
			hourly: 1561,
		},
		{
			name: "benefits disabled ignores welfare",
			mutate: func(d *wage.Description) {
				d.Welfare = wage.Welfare{Amount: 20000, Unit: wage.AmountMonthly, Method: wage.WelfareTotal}
			},
			income: 2880000,
			hourly: 1469,
		},
		{
			name: "bonuses are annual",
			mutate: func(d *wage.Description) {
				d.Bonuses = wage.Bonuses{Summer: 300000, Winter: 300000}
			},
			income: 3480000,
			hourly: 1776,
		},
		{
			name: "negative bonus contributes nothing",
			mutate: func(d *wage.Description) {
				d.Bonuses = wage.Bonuses{Summer: -500000, Winter: math.NaN()}
			},
			income: 2880000,
			hourly: 1469,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := baseline()
			tt.mutate(&d)
			res := wage.CalculateStatic(d)
			assert.Equal(t, tt.income, res.ActualAnnualIncome)
			assert.Equal(t, tt.hourly, res.HourlyWage)
		})
	}
}

func TestCalculateStatic_SpecialHolidayTable(t *testing.T) {
	tests := []struct {
		base     float64
		blocks   wage.SpecialHolidays
		holidays float64
	}{
		{105, wage.SpecialHolidays{GoldenWeek: true}, 115},
		{105, wage.SpecialHolidays{YearEnd: true}, 111},
		{105, wage.SpecialHolidays{Summer: true}, 110},
		{120, allBlocks(), 135},
		{124, allBlocks(), 139},
		{119, allBlocks(), 131},
	}

	for _, tt := range tests {
		d := baseline()
		d.AnnualHolidays = tt.base
		d.SpecialHolidays = tt.blocks
		res := wage.CalculateStatic(d)
		assert.Equal(t, tt.holidays, res.TotalAnnualHolidays, "base %v", tt.base)
	}

	d := baseline()
	d.SpecialHolidays = allBlocks()
	res := wage.CalculateStatic(d)
	assert.Equal(t, 1840.0, res.TotalWorkingHours)
	assert.Equal(t, int64(1565), res.HourlyWage)
}

func TestCalculateStatic_IgnoresOvertime(t *testing.T) {
	d := baseline()
	d.Overtime = &wage.Overtime{Normal: 2}

	res := wage.CalculateStatic(d)

	assert.Equal(t, int64(1469), res.HourlyWage)
	assert.Nil(t, res.OvertimePay)
	assert.Nil(t, res.OvertimeHours)
}

// =============================================================================
// TOTALITY
// =============================================================================

func TestCalculateStatic_DegenerateInputsYieldZero(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *wage.Description)
	}{
		{"zero salary", func(d *wage.Description) { d.SalaryAmount = 0 }},
		{"negative salary", func(d *wage.Description) { d.SalaryAmount = -240000 }},
		{"NaN salary", func(d *wage.Description) { d.SalaryAmount = math.NaN() }},
		{"infinite salary", func(d *wage.Description) { d.SalaryAmount = math.Inf(1) }},
		{"negative holidays", func(d *wage.Description) { d.AnnualHolidays = -1 }},
		{"NaN holidays", func(d *wage.Description) { d.AnnualHolidays = math.NaN() }},
		{"zero hours", func(d *wage.Description) { d.WorkingHours = 0 }},
		{"NaN hours", func(d *wage.Description) { d.WorkingHours = math.NaN() }},
	}

	calc := newCalculator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := baseline()
			d.Bonuses = wage.Bonuses{Summer: 500000}
			d.BenefitsEnabled = true
			d.Welfare = wage.Welfare{Amount: 10000, Unit: wage.AmountMonthly}
			tt.mutate(&d)

			for _, res := range []wage.Result{
				wage.CalculateStatic(d),
				calc.Calculate(context.Background(), dynamic(d, 2025, holiday.ModeCalendar)),
			} {
				assert.Equal(t, int64(0), res.HourlyWage)
				assert.Equal(t, int64(0), res.ActualAnnualIncome)
				assert.Equal(t, int64(0), res.ActualMonthlyIncome)
			}
		})
	}
}

func TestCalculateStatic_HolidaysExceedingPeriod(t *testing.T) {
	// GIVEN: More holidays than days in the year
	// THEN: No working hours, so the hourly wage is 0 but income is kept

	d := baseline()
	d.AnnualHolidays = 400

	res := wage.CalculateStatic(d)

	assert.Equal(t, 0.0, res.TotalWorkingHours)
	assert.Equal(t, int64(0), res.HourlyWage)
	assert.Equal(t, int64(2880000), res.ActualAnnualIncome)
}

func TestCalculate_NonNegativeIntegerAndMonthlyConsistency(t *testing.T) {
	calc := newCalculator()
	salaries := []float64{1, 99999, 240000, 333333.33, 1234567}
	holidays := []float64{0, 96, 105, 119, 125.5}
	units := []struct {
		unit  wage.HoursUnit
		hours float64
	}{{wage.HoursDaily, 7.5}, {wage.HoursWeekly, 37}, {wage.HoursMonthly, 160}}

	for _, s := range salaries {
		for _, h := range holidays {
			for _, u := range units {
				d := wage.Description{
					SalaryType:       wage.SalaryMonthly,
					SalaryAmount:     s,
					AnnualHolidays:   h,
					WorkingHours:     u.hours,
					WorkingHoursUnit: u.unit,
					Bonuses:          wage.Bonuses{Performance: 12345},
				}
				for _, res := range []wage.Result{
					wage.CalculateStatic(d),
					calc.Calculate(context.Background(), dynamic(d, 2025, holiday.ModeFiscal)),
				} {
					assert.GreaterOrEqual(t, res.HourlyWage, int64(0))
					assert.InDelta(t, float64(res.ActualAnnualIncome), float64(res.ActualMonthlyIncome*12), 12)
				}
			}
		}
	}
}

func TestCalculate_MonotonicInHolidays(t *testing.T) {
	// GIVEN: The same income
	// WHEN: Enabling a block or adding custom holidays
	// THEN: The hourly wage never decreases

	calc := newCalculator()
	variants := map[string]func(wage.Description) wage.Result{
		"static": wage.CalculateStatic,
		"dynamic": func(d wage.Description) wage.Result {
			return calc.Calculate(context.Background(), dynamic(d, 2025, holiday.ModeCalendar))
		},
	}
	enablers := []func(d *wage.Description){
		func(d *wage.Description) { d.SpecialHolidays.GoldenWeek = true },
		func(d *wage.Description) { d.SpecialHolidays.Summer = true },
		func(d *wage.Description) { d.SpecialHolidays.YearEnd = true },
		func(d *wage.Description) { d.CustomHolidays += 3 },
	}

	for name, calculate := range variants {
		for _, base := range []float64{92, 104, 107, 119, 120, 124, 130} {
			d := baseline()
			d.AnnualHolidays = base
			before := calculate(d)
			for i, enable := range enablers {
				after := d
				enable(&after)
				got := calculate(after)
				assert.GreaterOrEqual(t, got.HourlyWage, before.HourlyWage,
					"%s base=%v enabler=%d", name, base, i)
			}
		}
	}
}

// =============================================================================
// DYNAMIC VARIANT
// =============================================================================

func TestCalculate_DynamicDisabledMatchesStatic(t *testing.T) {
	calc := newCalculator()
	d := baseline()
	d.SpecialHolidays = allBlocks()

	assert.Equal(t, wage.CalculateStatic(d), calc.Calculate(context.Background(), d))
}

func TestCalculate_DynamicClassifiesArchetype(t *testing.T) {
	// 2025: 104 weekend days, 15 weekday public holidays.
	// Golden Week Apr 27-May 6 has 7 weekdays, 4 of them not public holidays.
	// Obon Aug 13-17 has 3 weekdays. Year-end has 6 weekdays, 5 not Jan 1.
	tests := []struct {
		name      string
		base      float64
		blocks    wage.SpecialHolidays
		archetype holiday.Archetype
		holidays  float64
		hourly    int64
	}{
		{
			name:      "weekends and holidays",
			base:      120,
			blocks:    allBlocks(),
			archetype: holiday.ArchetypeFullTwoDayHolidays,
			holidays:  132,
			hourly:    1545,
		},
		{
			name:      "weekends only",
			base:      104,
			blocks:    wage.SpecialHolidays{GoldenWeek: true},
			archetype: holiday.ArchetypeFullTwoDay,
			holidays:  111,
			hourly:    1417,
		},
		{
			name:     "unmatched uses static table",
			base:     80,
			blocks:   wage.SpecialHolidays{GoldenWeek: true},
			holidays: 90,
			hourly:   1309,
		},
	}

	calc := newCalculator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := baseline()
			d.AnnualHolidays = tt.base
			d.SpecialHolidays = tt.blocks

			res := calc.Calculate(context.Background(), dynamic(d, 2025, holiday.ModeCalendar))

			assert.Equal(t, wage.SourceDynamic, res.Source)
			assert.Equal(t, tt.archetype, res.Archetype)
			assert.Equal(t, tt.holidays, res.TotalAnnualHolidays)
			assert.Equal(t, tt.hourly, res.HourlyWage)
		})
	}
}

func TestCalculate_DynamicMatchesStaticTableFor119(t *testing.T) {
	// GIVEN: 2025 calendar, whose weekends+holidays baseline is 119
	// THEN: Golden Week contributes 4 days like the static table

	calc := newCalculator()
	d := baseline()
	d.AnnualHolidays = 119
	d.SpecialHolidays = wage.SpecialHolidays{GoldenWeek: true}

	res := calc.Calculate(context.Background(), dynamic(d, 2025, holiday.ModeCalendar))

	assert.Equal(t, holiday.ArchetypeFullTwoDayHolidays, res.Archetype)
	assert.Equal(t, wage.CalculateStatic(d).TotalAnnualHolidays, res.TotalAnnualHolidays)
}

func TestCalculate_DynamicFiscalYearEnd(t *testing.T) {
	// Fiscal 2025 sees one contiguous year-end window, Dec 29 2025 - Jan 3 2026:
	// 5 weekdays, 4 of which are not Jan 1.
	calc := newCalculator()
	d := baseline()
	d.AnnualHolidays = 119
	d.SpecialHolidays = wage.SpecialHolidays{YearEnd: true}

	res := calc.Calculate(context.Background(), dynamic(d, 2025, holiday.ModeFiscal))

	assert.Equal(t, holiday.ArchetypeFullTwoDayHolidays, res.Archetype)
	assert.Equal(t, 123.0, res.TotalAnnualHolidays)
}

func TestCalculate_DynamicLeapYear(t *testing.T) {
	calc := newCalculator()

	res := calc.Calculate(context.Background(), dynamic(baseline(), 2024, holiday.ModeCalendar))

	assert.Equal(t, 1968.0, res.TotalWorkingHours)
	assert.Equal(t, int64(1463), res.HourlyWage)
}

func TestCalculate_FallsBackWhenCalendarUnavailable(t *testing.T) {
	// GIVEN: A year missing from both the provider and the static table
	// WHEN: Calculating dynamically
	// THEN: The static holiday formula is used and marked as fallback

	calc := newCalculator()
	d := baseline()
	d.SpecialHolidays = allBlocks()

	res := calc.Calculate(context.Background(), dynamic(d, 2099, holiday.ModeCalendar))

	static := wage.CalculateStatic(d)
	assert.Equal(t, wage.SourceFallback, res.Source)
	assert.Equal(t, static.HourlyWage, res.HourlyWage)
	assert.Equal(t, static.TotalAnnualHolidays, res.TotalAnnualHolidays)
}

func TestCalculate_CanceledContextFallsBack(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	failing := holiday.ProviderFunc(func(ctx context.Context, _ int) ([]holiday.Holiday, error) {
		return nil, ctx.Err()
	})
	calc := wage.NewCalculator(holiday.NewResolver(failing, nil, nil), nil, nil)

	res := calc.Calculate(ctx, dynamic(baseline(), 2025, holiday.ModeCalendar))

	assert.Equal(t, wage.SourceFallback, res.Source)
	assert.Equal(t, int64(1469), res.HourlyWage)
}

// =============================================================================
// OVERTIME
// =============================================================================

func TestCalculate_DailyOvertime(t *testing.T) {
	// GIVEN: 1h normal overtime per day over 245 working days
	// THEN: 245 overtime hours paid at 1.25x the ¥1,469.39 base rate

	calc := newCalculator()
	d := baseline()
	d.Overtime = &wage.Overtime{Normal: 1}

	res := calc.Calculate(context.Background(), d)

	require.NotNil(t, res.OvertimePay)
	require.NotNil(t, res.OvertimeHours)
	require.NotNil(t, res.BaseHourlyWage)
	assert.Equal(t, int64(450000), *res.OvertimePay)
	assert.Equal(t, 245.0, *res.OvertimeHours)
	assert.Equal(t, int64(1469), *res.BaseHourlyWage)
	assert.Equal(t, int64(3330000), res.ActualAnnualIncome)
	assert.Equal(t, 2205.0, res.TotalWorkingHours)
	assert.Equal(t, int64(1510), res.HourlyWage)
}

func TestCalculate_NightOvertimePremium(t *testing.T) {
	calc := newCalculator()
	d := baseline()
	d.Overtime = &wage.Overtime{Night: 1}

	res := calc.Calculate(context.Background(), d)

	require.NotNil(t, res.OvertimePay)
	assert.Equal(t, int64(540000), *res.OvertimePay)
	assert.Equal(t, int64(1551), res.HourlyWage)
}

func TestCalculate_WeeklyOvertimeUses52Weeks(t *testing.T) {
	calc := newCalculator()
	d := baseline()
	d.WorkingHours = 40
	d.WorkingHoursUnit = wage.HoursWeekly
	d.Overtime = &wage.Overtime{Normal: 2}

	res := calc.Calculate(context.Background(), d)

	require.NotNil(t, res.OvertimeHours)
	assert.Equal(t, 104.28, *res.OvertimeHours)
	assert.Equal(t, int64(191535), *res.OvertimePay)
	assert.Equal(t, int64(1488), res.HourlyWage)
}

func TestCalculate_ZeroOvertimeOmitsFields(t *testing.T) {
	calc := newCalculator()
	d := baseline()
	d.Overtime = &wage.Overtime{}

	res := calc.Calculate(context.Background(), d)

	assert.Nil(t, res.OvertimePay)
	assert.Equal(t, int64(1469), res.HourlyWage)
}

// =============================================================================
// CLASSIFIER
// =============================================================================

func TestToleranceClassifier(t *testing.T) {
	count := holiday.Count{Weekends: 104, PublicHolidays: 15, Total: 119, Days: 365}
	c := wage.ToleranceClassifier{Tolerance: wage.DefaultTolerance}

	tests := []struct {
		base  float64
		want  holiday.Archetype
		found bool
	}{
		{92, holiday.ArchetypeTwoDayMonthlyShift, true},
		{94, holiday.ArchetypeTwoDayMonthlyShift, true},
		{107, holiday.ArchetypeTwoDayHolidaysMonthlyShift, true},
		{106, holiday.ArchetypeTwoDayHolidaysMonthlyShift, true},
		{105, holiday.ArchetypeFullTwoDay, true},
		{105.5, holiday.ArchetypeTwoDayHolidaysMonthlyShift, true}, // tie keeps the first
		{121, holiday.ArchetypeFullTwoDayHolidays, true},
		{122, "", false},
		{math.NaN(), "", false},
	}

	for _, tt := range tests {
		got, ok := c.Classify(tt.base, count)
		assert.Equal(t, tt.found, ok, "base %v", tt.base)
		assert.Equal(t, tt.want, got, "base %v", tt.base)
	}
}

type fixedClassifier holiday.Archetype

func (f fixedClassifier) Classify(float64, holiday.Count) (holiday.Archetype, bool) {
	return holiday.Archetype(f), true
}

func TestCalculate_InjectedClassifier(t *testing.T) {
	calc := wage.NewCalculator(
		holiday.NewResolver(holiday.NewStaticProvider(), nil, nil),
		fixedClassifier(holiday.ArchetypeFullTwoDay),
		nil,
	)
	d := baseline()
	d.SpecialHolidays = wage.SpecialHolidays{GoldenWeek: true}

	res := calc.Calculate(context.Background(), dynamic(d, 2025, holiday.ModeCalendar))

	assert.Equal(t, holiday.ArchetypeFullTwoDay, res.Archetype)
	assert.Equal(t, 127.0, res.TotalAnnualHolidays)
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestValidate(t *testing.T) {
	assert.Empty(t, wage.Validate(baseline()))

	d := baseline()
	d.SalaryAmount = math.NaN()
	d.AnnualHolidays = 400
	d.WorkingHours = 25
	d.CustomHolidays = -1
	d.DynamicHolidays = wage.DynamicHolidays{Enabled: true, Year: 1800, Mode: "weekly"}
	d.Insurance = &wage.Insurance{Enabled: true, Dependents: -1}

	errs := wage.Validate(d).ToMap()

	assert.Contains(t, errs, "salary_amount")
	assert.Equal(t, "must be between 0 and 366", errs["annual_holidays"])
	assert.Equal(t, "must be between 0 and 24", errs["working_hours"])
	assert.Contains(t, errs, "custom_holidays")
	assert.Contains(t, errs, "dynamic_holidays.year")
	assert.Contains(t, errs, "dynamic_holidays.mode")
	assert.Contains(t, errs, "insurance.region")
	assert.Contains(t, errs, "insurance.dependents")
}

func TestValidate_WeeklyHoursBound(t *testing.T) {
	d := baseline()
	d.WorkingHours = 60
	d.WorkingHoursUnit = wage.HoursWeekly
	assert.Empty(t, wage.Validate(d))

	d.WorkingHoursUnit = "hourly"
	errs := wage.Validate(d)
	require.Len(t, errs, 1)
	assert.Equal(t, "working_hours_unit", errs[0].Field)
	assert.Contains(t, errs.Error(), "working_hours_unit")
}
