// internal/workers/investment/forecast-cash-flow/models.go
package forecastcashflow

import (
	"rental-investment-workers/internal/common/config"
	"rental-investment-workers/internal/investment"
)

// Input mirrors investment.ForecastInput with optional assumptions. Omitted
// assumptions take the configured defaults.
type Input struct {
	ListingID           string                       `json:"zpid,omitempty"`
	Acquisition         investment.AcquisitionInputs `json:"acquisition"`
	Financing           FinancingInput               `json:"financing"`
	Income              IncomeInput                  `json:"income"`
	Expenses            ExpenseInput                 `json:"expenses"`
	AppreciationPercent *float64                     `json:"appreciationPercent,omitempty"`
	SaleCostPercent     *float64                     `json:"saleCostPercent,omitempty"`
}

type FinancingInput struct {
	DownPaymentPercent *float64 `json:"downPaymentPercent,omitempty"`
	InterestRate       *float64 `json:"interestRate,omitempty"`
	LoanTermYears      *int     `json:"loanTermYears,omitempty"`
	LoanPoints         float64  `json:"loanPoints,omitempty"`
	PMIPercent         *float64 `json:"pmiPercent,omitempty"`
}

type IncomeInput struct {
	MonthlyRent             float64  `json:"monthlyRent"`
	OtherIncome             float64  `json:"otherIncome,omitempty"`
	AnnualRentGrowthPercent *float64 `json:"annualRentGrowthPercent,omitempty"`
	VacancyRatePercent      *float64 `json:"vacancyRatePercent,omitempty"`
}

type ExpenseInput struct {
	PropertyTaxRatePercent           *float64 `json:"propertyTaxRatePercent,omitempty"`
	PropertyTaxAnnualIncreasePercent *float64 `json:"propertyTaxAnnualIncreasePercent,omitempty"`
	InsuranceAnnual                  *float64 `json:"insuranceAnnual,omitempty"`
	InsuranceAnnualIncreasePercent   *float64 `json:"insuranceAnnualIncreasePercent,omitempty"`
	MaintenancePercent               *float64 `json:"maintenancePercent,omitempty"`
	CapexPercent                     *float64 `json:"capexPercent,omitempty"`
	ManagementPercent                *float64 `json:"managementPercent,omitempty"`
	UtilitiesMonthly                 float64  `json:"utilitiesMonthly,omitempty"`
	HOAMonthly                       float64  `json:"hoaMonthly,omitempty"`
	OtherExpensesMonthly             float64  `json:"otherExpensesMonthly,omitempty"`
	AnnualExpenseGrowthPercent       *float64 `json:"annualExpenseGrowthPercent,omitempty"`
}

type Output struct {
	ForecastID           string                    `json:"forecastId"`
	ListingID            string                    `json:"zpid,omitempty"`
	Result               investment.ForecastResult `json:"result"`
	IRRConverged         bool                      `json:"irrConverged"`
	NonConvergedHorizons []int                     `json:"nonConvergedHorizons,omitempty"`
}

// ToForecastInput fills omitted assumptions from d.
func (in *Input) ToForecastInput(d config.ForecastDefaults, saleCostPercent float64) investment.ForecastInput {
	saleCost := saleCostPercent
	if in.SaleCostPercent != nil {
		saleCost = *in.SaleCostPercent
	}

	loanTerm := d.LoanTermYears
	if in.Financing.LoanTermYears != nil {
		loanTerm = *in.Financing.LoanTermYears
	}

	return investment.ForecastInput{
		Acquisition: in.Acquisition,
		Financing: investment.FinancingAssumptions{
			DownPaymentPercent: or(in.Financing.DownPaymentPercent, d.DownPaymentPercent),
			InterestRate:       or(in.Financing.InterestRate, d.InterestRate),
			LoanTermYears:      loanTerm,
			LoanPoints:         in.Financing.LoanPoints,
			PMIPercent:         or(in.Financing.PMIPercent, d.PMIPercent),
		},
		Income: investment.IncomeAssumptions{
			MonthlyRent:             in.Income.MonthlyRent,
			OtherIncome:             in.Income.OtherIncome,
			AnnualRentGrowthPercent: or(in.Income.AnnualRentGrowthPercent, d.AnnualRentGrowthPercent),
			VacancyRatePercent:      or(in.Income.VacancyRatePercent, d.VacancyRatePercent),
		},
		Expenses: investment.ExpenseAssumptions{
			PropertyTaxRatePercent:           or(in.Expenses.PropertyTaxRatePercent, d.PropertyTaxRatePercent),
			PropertyTaxAnnualIncreasePercent: or(in.Expenses.PropertyTaxAnnualIncreasePercent, d.PropertyTaxAnnualIncreasePercent),
			InsuranceAnnual:                  or(in.Expenses.InsuranceAnnual, d.InsuranceAnnual),
			InsuranceAnnualIncreasePercent:   or(in.Expenses.InsuranceAnnualIncreasePercent, d.InsuranceAnnualIncreasePercent),
			MaintenancePercent:               or(in.Expenses.MaintenancePercent, d.MaintenancePercent),
			CapexPercent:                     or(in.Expenses.CapexPercent, d.CapexPercent),
			ManagementPercent:                or(in.Expenses.ManagementPercent, d.ManagementPercent),
			UtilitiesMonthly:                 in.Expenses.UtilitiesMonthly,
			HOAMonthly:                       in.Expenses.HOAMonthly,
			OtherExpensesMonthly:             in.Expenses.OtherExpensesMonthly,
			AnnualExpenseGrowthPercent:       or(in.Expenses.AnnualExpenseGrowthPercent, d.AnnualExpenseGrowthPercent),
		},
		AppreciationPercent: or(in.AppreciationPercent, d.AppreciationPercent),
		SaleCostPercent:     &saleCost,
	}
}

func or(v *float64, fallback float64) float64 {
	if v != nil {
		return *v
	}
	return fallback
}
