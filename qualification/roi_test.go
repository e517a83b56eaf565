package qualification_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/warp/wage-engine/qualification"
)

func TestCalculate_TwoYearPaybackIsGood(t *testing.T) {
	// GIVEN: ¥500,000 invested, ¥250,000 extra per year
	// THEN: 2.0 years payback, rated "good"

	res := qualification.Calculate(qualification.Data{
		CourseCost:     500000,
		SalaryIncrease: 250000,
	})

	assert.Equal(t, int64(500000), res.TotalInvestment)
	assert.Equal(t, int64(250000), res.AnnualBenefit)
	assert.Equal(t, 2.0, res.PaybackYears)
	assert.Equal(t, 50.0, res.ROIPercent)
	assert.Equal(t, int64(2000000), res.TenYearBenefit)
	assert.Equal(t, int64(1430434), res.NPV)
	assert.Equal(t, qualification.RatingGood, res.Evaluation.Rating)
	assert.NotEmpty(t, res.Evaluation.Reason)
}

func TestCalculate_OpportunityCostAndAllowance(t *testing.T) {
	// GIVEN: 40 study hours at ¥2,000/h plus ¥30,000 of direct costs,
	// allowance rising from ¥0 to ¥120,000 a year
	// THEN: ¥110,000 investment repaid in under a year

	res := qualification.Calculate(qualification.Data{
		StudyHours:        40,
		HourlyWage:        2000,
		ExamCost:          10000,
		MaterialCost:      5000,
		CourseCost:        12000,
		OtherCost:         3000,
		ExpectedAllowance: 120000,
	})

	assert.Equal(t, int64(80000), res.OpportunityCost)
	assert.Equal(t, int64(30000), res.DirectCost)
	assert.Equal(t, int64(110000), res.TotalInvestment)
	assert.Equal(t, int64(120000), res.AllowanceBenefit)
	assert.Equal(t, 0.92, res.PaybackYears)
	assert.Equal(t, int64(816608), res.NPV)
	assert.Equal(t, qualification.RatingExcellent, res.Evaluation.Rating)
}

func TestCalculate_NoBenefitIsPoorWithInfinitePayback(t *testing.T) {
	res := qualification.Calculate(qualification.Data{
		ExamCost:          20000,
		CurrentAllowance:  50000,
		ExpectedAllowance: 30000, // allowance drops: counts as 0
		SalaryIncrease:    -10000,
	})

	assert.Equal(t, int64(0), res.AnnualBenefit)
	assert.True(t, math.IsInf(res.PaybackYears, 1))
	assert.Equal(t, 0.0, res.ROIPercent)
	assert.Equal(t, qualification.RatingPoor, res.Evaluation.Rating)
}

func TestCalculate_UnknownWageHasNoOpportunityCost(t *testing.T) {
	res := qualification.Calculate(qualification.Data{StudyHours: 300, ExamCost: 10000, SalaryIncrease: 5000})

	assert.Equal(t, int64(0), res.OpportunityCost)
	assert.Equal(t, 2.0, res.PaybackYears)
}

func TestCalculate_FreeQualificationIsPoor(t *testing.T) {
	// No investment means no meaningful payback band
	res := qualification.Calculate(qualification.Data{SalaryIncrease: 100000})

	assert.Equal(t, 0.0, res.PaybackYears)
	assert.Equal(t, qualification.RatingPoor, res.Evaluation.Rating)
}

func TestCalculate_NaNInputsCountAsZero(t *testing.T) {
	res := qualification.Calculate(qualification.Data{
		StudyHours:        math.NaN(),
		HourlyWage:        math.Inf(1),
		CourseCost:        100000,
		SalaryIncrease:    math.NaN(),
		JobChangeIncrease: 400000,
	})

	assert.Equal(t, int64(100000), res.TotalInvestment)
	assert.Equal(t, int64(400000), res.AnnualBenefit)
	assert.Equal(t, 0.25, res.PaybackYears)
}

func TestEvaluate_Bands(t *testing.T) {
	inv := decimal.NewFromInt(100)
	ben := decimal.NewFromInt(10)

	tests := []struct {
		payback float64
		want    qualification.Rating
	}{
		{0.5, qualification.RatingExcellent},
		{1, qualification.RatingExcellent},
		{1.01, qualification.RatingGood},
		{3, qualification.RatingGood},
		{5, qualification.RatingFair},
		{5.01, qualification.RatingPoor},
		{math.Inf(1), qualification.RatingPoor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, qualification.Evaluate(tt.payback, inv, ben).Rating, "payback %v", tt.payback)
	}
	assert.Equal(t, qualification.RatingPoor, qualification.Evaluate(1, decimal.Zero, ben).Rating)
}

func TestCalculate_BandsUseUnroundedPayback(t *testing.T) {
	// GIVEN: Paybacks that round down onto a band edge (1.004, 3.004, 5.004 years)
	// WHEN: Calculating
	// THEN: The reported period is rounded, the rating is not

	tests := []struct {
		investment float64
		shown      float64
		want       qualification.Rating
	}{
		{1004000, 1, qualification.RatingGood},
		{3004000, 3, qualification.RatingFair},
		{5004000, 5, qualification.RatingPoor},
		{1000000, 1, qualification.RatingExcellent},
	}
	for _, tt := range tests {
		res := qualification.Calculate(qualification.Data{ExamCost: tt.investment, SalaryIncrease: 1000000})

		assert.Equal(t, tt.shown, res.PaybackYears, "investment %v", tt.investment)
		assert.Equal(t, tt.want, res.Evaluation.Rating, "investment %v", tt.investment)
	}
}
