package insurance

import "github.com/shopspring/decimal"

// =============================================================================
// RESIDENT TAX
// =============================================================================

// TaxEstimator estimates the annual resident tax owed on an annual
// employment income. Implementations are per jurisdiction.
type TaxEstimator interface {
	AnnualResidentTax(annualIncome decimal.Decimal, dependents int, levies Levies) decimal.Decimal
}

// Deductions used by ResidentTaxApproximation, in yen per year.
var (
	BasicDeduction     = decimal.NewFromInt(430000)
	DependentDeduction = decimal.NewFromInt(330000)
)

// ResidentTaxApproximation is a simplified resident-tax estimate. It is NOT
// a legal tax computation: it ignores social insurance, life insurance and
// medical deductions, tax credits and the non-taxable thresholds, and it
// charges the per-capita levies whenever any income-linked tax is due.
//
//	employment income = income - employment income deduction (six bands)
//	taxable           = employment income - basic - dependents * dependent
//	tax               = taxable * rate + per-capita levies
type ResidentTaxApproximation struct{}

func (ResidentTaxApproximation) AnnualResidentTax(annualIncome decimal.Decimal, dependents int, levies Levies) decimal.Decimal {
	if !annualIncome.IsPositive() {
		return decimal.Zero
	}
	if dependents < 0 {
		dependents = 0
	}

	employment := annualIncome.Sub(EmploymentIncomeDeduction(annualIncome))
	taxable := employment.
		Sub(BasicDeduction).
		Sub(DependentDeduction.Mul(decimal.NewFromInt(int64(dependents))))
	if !taxable.IsPositive() {
		return decimal.Zero
	}

	rate := decimal.NewFromFloat(levies.Rate).Div(hundred)
	return taxable.Mul(rate).Floor().Add(decimal.NewFromInt(levies.PerCapita()))
}

var (
	band1 = decimal.NewFromInt(1625000)
	band2 = decimal.NewFromInt(1800000)
	band3 = decimal.NewFromInt(3600000)
	band4 = decimal.NewFromInt(6600000)
	band5 = decimal.NewFromInt(8500000)
)

// EmploymentIncomeDeduction returns the statutory deduction for an annual
// employment income. It never exceeds the income itself.
func EmploymentIncomeDeduction(income decimal.Decimal) decimal.Decimal {
	pct := func(p int64) decimal.Decimal { return income.Mul(decimal.NewFromInt(p)).Div(hundred) }

	var d decimal.Decimal
	switch {
	case income.LessThanOrEqual(band1):
		d = decimal.NewFromInt(550000)
	case income.LessThanOrEqual(band2):
		d = pct(40).Sub(decimal.NewFromInt(100000))
	case income.LessThanOrEqual(band3):
		d = pct(30).Add(decimal.NewFromInt(80000))
	case income.LessThanOrEqual(band4):
		d = pct(20).Add(decimal.NewFromInt(440000))
	case income.LessThanOrEqual(band5):
		d = pct(10).Add(decimal.NewFromInt(1100000))
	default:
		d = decimal.NewFromInt(1950000)
	}
	if d.GreaterThan(income) {
		return income
	}
	return d
}
