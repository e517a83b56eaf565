/*
Package qualification evaluates a professional qualification as an
investment: what it costs in money and study time, what it returns per
year, and how long it takes to pay back.

METRICS:
  opportunity cost  study hours x reference hourly wage (0 if unknown)
  direct cost       exam + material + course + other
  annual benefit    max(0, expected - current allowance)
                    + max(0, salary increase) + max(0, job-change increase)
  payback years     total investment / annual benefit (+Inf when no benefit)
  ROI %             annual benefit / total investment x 100
  NPV               10 years of annual benefit discounted at 5%, minus the
                    up-front investment

All amounts are annual yen.
*/
package qualification

import (
	"math"

	"github.com/shopspring/decimal"
)

// Evaluation horizon and discount rate.
const (
	HorizonYears = 10
	DiscountRate = 0.05
)

type Rating string

const (
	RatingExcellent Rating = "excellent"
	RatingGood      Rating = "good"
	RatingFair      Rating = "fair"
	RatingPoor      Rating = "poor"
)

var reasons = map[Rating]string{
	RatingExcellent: "Pays for itself within a year. Strongly recommended.",
	RatingGood:      "Pays back within three years. A sound investment.",
	RatingFair:      "Pays back within five years. Worth it if the qualification fits your long-term plans.",
	RatingPoor:      "Takes more than five years to pay back, or brings no measurable financial return.",
}

// Data is one qualification investment profile.
type Data struct {
	Name              string  `json:"name,omitempty"`
	StudyHours        float64 `json:"study_hours"`
	StudyMonths       float64 `json:"study_months"`
	ExamCost          float64 `json:"exam_cost"`
	MaterialCost      float64 `json:"material_cost"`
	CourseCost        float64 `json:"course_cost"`
	OtherCost         float64 `json:"other_cost"`
	CurrentAllowance  float64 `json:"current_allowance"`
	ExpectedAllowance float64 `json:"expected_allowance"`
	SalaryIncrease    float64 `json:"salary_increase"`
	JobChangeIncrease float64 `json:"job_change_increase"`
	HourlyWage        float64 `json:"hourly_wage"` // reference wage; 0 when unknown
}

type Evaluation struct {
	Rating Rating `json:"rating"`
	Reason string `json:"reason"`
}

// Result holds the investment metrics. PaybackYears is +Inf when the annual
// benefit is not positive.
type Result struct {
	OpportunityCost  int64 `json:"opportunity_cost"`
	DirectCost       int64 `json:"direct_cost"`
	TotalInvestment  int64 `json:"total_investment"`
	AllowanceBenefit int64 `json:"allowance_benefit"`
	SalaryBenefit    int64 `json:"salary_benefit"`
	JobChangeBenefit int64 `json:"job_change_benefit"`
	AnnualBenefit    int64 `json:"annual_benefit"`

	PaybackYears   float64 `json:"payback_years"`
	TenYearBenefit int64   `json:"ten_year_benefit"` // annual benefit x 10 - investment
	ROIPercent     float64 `json:"roi_percent"`
	NPV            int64   `json:"npv"`

	Evaluation Evaluation `json:"evaluation"`
}

// Calculate computes the metrics of d. Negative and NaN inputs count as 0.
func Calculate(d Data) Result {
	opportunity := amount(d.StudyHours).Mul(amount(d.HourlyWage))
	direct := amount(d.ExamCost).Add(amount(d.MaterialCost)).Add(amount(d.CourseCost)).Add(amount(d.OtherCost))
	investment := opportunity.Add(direct)

	allowance := positive(amount(d.ExpectedAllowance).Sub(amount(d.CurrentAllowance)))
	salary := amount(d.SalaryIncrease)
	jobChange := amount(d.JobChangeIncrease)
	benefit := allowance.Add(salary).Add(jobChange)

	res := Result{
		OpportunityCost:  yen(opportunity),
		DirectCost:       yen(direct),
		TotalInvestment:  yen(investment),
		AllowanceBenefit: yen(allowance),
		SalaryBenefit:    yen(salary),
		JobChangeBenefit: yen(jobChange),
		AnnualBenefit:    yen(benefit),
		TenYearBenefit:   yen(benefit.Mul(decimal.NewFromInt(HorizonYears)).Sub(investment)),
		NPV:              yen(NPV(benefit, investment)),
		PaybackYears:     math.Inf(1),
	}

	// Bands are judged on the exact period; only the reported value is rounded.
	payback := math.Inf(1)
	if benefit.IsPositive() {
		exact := investment.Div(benefit)
		payback = exact.InexactFloat64()
		res.PaybackYears = exact.Round(2).InexactFloat64()
	}
	if investment.IsPositive() {
		res.ROIPercent = benefit.Div(investment).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
	}
	res.Evaluation = Evaluate(payback, investment, benefit)
	return res
}

// NPV discounts the annual benefit over HorizonYears at DiscountRate and
// subtracts the up-front investment.
func NPV(annualBenefit, investment decimal.Decimal) decimal.Decimal {
	rate := decimal.NewFromFloat(1 + DiscountRate)
	factor := decimal.NewFromInt(1)
	total := decimal.Zero
	for year := 1; year <= HorizonYears; year++ {
		factor = factor.Div(rate)
		total = total.Add(annualBenefit.Mul(factor))
	}
	return total.Sub(investment)
}

// Evaluate bands a payback period.
func Evaluate(paybackYears float64, investment, benefit decimal.Decimal) Evaluation {
	rating := RatingPoor
	if investment.IsPositive() && benefit.IsPositive() {
		switch {
		case paybackYears <= 1:
			rating = RatingExcellent
		case paybackYears <= 3:
			rating = RatingGood
		case paybackYears <= 5:
			rating = RatingFair
		}
	}
	return Evaluation{Rating: rating, Reason: reasons[rating]}
}

func amount(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

func positive(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func yen(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
