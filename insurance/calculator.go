/*
Package insurance estimates Japanese social-insurance contributions and an
approximate resident tax for one compensation description.

PURPOSE:
  Turns a monthly salary and a region into the employer/employee split of
  every statutory contribution, so the true labor cost of a salary and the
  employee's take-home pay can be compared.

CATEGORIES:
  health       standard salary x regional rate, split 50/50 (employee floor)
  pension      clamped standard salary x 18.3%, split 50/50 (employee floor)
  employment   raw salary x distinct employee / employer rates
  workers comp raw salary x rate, employer only
  resident tax TaxEstimator, employee only, annual estimate / 12

OPT-IN:
  Calculate returns nil unless the description enables insurance and names
  a known region. This is deliberate: no insurance figure is ever implied.

RESIDENT TAX:
  The default ResidentTaxApproximation is a simplification and must be
  presented to users as an estimate, not as a legal tax computation.

SEE ALSO:
  - grades.go:     Standard monthly remuneration table
  - rates.go:      Regional rates loaded from regions.yaml
  - tax.go:        TaxEstimator and the default approximation
*/
package insurance

import (
	"github.com/shopspring/decimal"
	"github.com/warp/wage-engine/wage"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
	twelve  = decimal.NewFromInt(12)
)

// Contribution is a monthly employer/employee pair in yen.
type Contribution struct {
	Employee int64 `json:"employee"`
	Employer int64 `json:"employer"`
}

// Total returns employee + employer.
func (c Contribution) Total() int64 {
	return c.Employee + c.Employer
}

// Result is the monthly social-insurance breakdown of one description.
type Result struct {
	Region          string `json:"region"`
	MonthlySalary   int64  `json:"monthly_salary"`
	Grade           int    `json:"grade"`
	StandardSalary  int64  `json:"standard_salary"`
	PensionStandard int64  `json:"pension_standard"`

	Health      Contribution `json:"health"`
	Pension     Contribution `json:"pension"`
	Employment  Contribution `json:"employment"`
	WorkersComp Contribution `json:"workers_comp"`
	ResidentTax Contribution `json:"resident_tax"`

	EmployeeTotal  int64 `json:"employee_total"`
	EmployerTotal  int64 `json:"employer_total"`
	TotalLaborCost int64 `json:"total_labor_cost"`
	NetMonthly     int64 `json:"net_monthly"`

	ResidentTaxIsEstimate bool `json:"resident_tax_is_estimate"`
}

// Calculator computes insurance results against a rate table.
type Calculator struct {
	rates *RateTable
	tax   TaxEstimator
}

// NewCalculator creates a calculator. Nil arguments select the embedded rate
// table and ResidentTaxApproximation.
func NewCalculator(rates *RateTable, tax TaxEstimator) *Calculator {
	if rates == nil {
		rates = DefaultRates()
	}
	if tax == nil {
		tax = ResidentTaxApproximation{}
	}
	return &Calculator{rates: rates, tax: tax}
}

// Rates exposes the calculator's rate table.
func (c *Calculator) Rates() *RateTable {
	return c.rates
}

// Calculate returns the breakdown for d, or nil when insurance is disabled,
// no region is set or the region is unknown.
func (c *Calculator) Calculate(d wage.Description) *Result {
	if d.Insurance == nil || !d.Insurance.Enabled || d.Insurance.Region == "" {
		return nil
	}
	rates, err := c.rates.Region(d.Insurance.Region)
	if err != nil {
		return nil
	}

	monthly := MonthlySalary(d)
	grade := LookupGrade(monthly)
	pensionStd := PensionStandard(grade.Standard)

	res := &Result{
		Region:                rates.Region,
		MonthlySalary:         wage.Yen(monthly),
		Grade:                 grade.Grade,
		StandardSalary:        grade.Standard,
		PensionStandard:       pensionStd,
		ResidentTaxIsEstimate: true,
	}

	res.Health = splitHalf(percent(decimal.NewFromInt(grade.Standard), rates.HealthRate))
	res.Pension = splitHalf(percent(decimal.NewFromInt(pensionStd), rates.PensionRate))
	res.Employment = Contribution{
		Employee: wage.Yen(percent(monthly, rates.Employment.EmployeeRate)),
		Employer: wage.Yen(percent(monthly, rates.Employment.EmployerRate)),
	}
	res.WorkersComp = Contribution{
		Employer: wage.Yen(percent(monthly, rates.WorkersCompRate)),
	}

	annualIncome := monthly.Mul(twelve).Add(wage.BonusTotal(d))
	annualTax := c.tax.AnnualResidentTax(annualIncome, d.Insurance.Dependents, rates.ResidentTax)
	res.ResidentTax = Contribution{Employee: annualTax.Div(twelve).Floor().IntPart()}

	for _, ct := range []Contribution{res.Health, res.Pension, res.Employment, res.WorkersComp, res.ResidentTax} {
		res.EmployeeTotal += ct.Employee
		res.EmployerTotal += ct.Employer
	}
	res.TotalLaborCost = res.MonthlySalary + res.EmployerTotal
	res.NetMonthly = res.MonthlySalary - res.EmployeeTotal
	return res
}

// MonthlySalary derives the monthly salary used for contributions: the base
// salary per month plus welfare allowances when benefits are enabled.
func MonthlySalary(d wage.Description) decimal.Decimal {
	annual := wage.BaseAnnualSalary(d).Add(wage.WelfareContribution(d))
	return annual.Div(twelve).Round(0)
}

func percent(amount decimal.Decimal, rate float64) decimal.Decimal {
	return amount.Mul(decimal.NewFromFloat(rate)).Div(hundred)
}

// splitHalf rounds a monthly total to yen and gives the odd yen to the
// employer.
func splitHalf(total decimal.Decimal) Contribution {
	t := total.Round(0)
	employee := t.Div(two).Floor()
	return Contribution{
		Employee: employee.IntPart(),
		Employer: t.Sub(employee).IntPart(),
	}
}
