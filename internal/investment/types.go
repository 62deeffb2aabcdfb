// internal/investment/types.go
package investment

// ProjectionYears is the length of every forecast.
const ProjectionYears = 30

// AcquisitionInputs describes what it costs to buy the property.
type AcquisitionInputs struct {
	Price            float64  `json:"price" toml:"price"`
	ClosingCosts     float64  `json:"closingCosts" toml:"closing_costs"`
	RenovationCosts  float64  `json:"renovationCosts" toml:"renovation_costs"`
	AfterRepairValue *float64 `json:"afterRepairValue,omitempty" toml:"after_repair_value"`
}

// FinancingAssumptions describes a fixed-rate mortgage. Rates are annual percentages.
type FinancingAssumptions struct {
	DownPaymentPercent float64 `json:"downPaymentPercent" toml:"down_payment_percent"`
	InterestRate       float64 `json:"interestRate" toml:"interest_rate"`
	LoanTermYears      int     `json:"loanTermYears" toml:"loan_term_years"`
	LoanPoints         float64 `json:"loanPoints" toml:"loan_points"`
	PMIPercent         float64 `json:"pmiPercent" toml:"pmi_percent"`
}

type IncomeAssumptions struct {
	MonthlyRent             float64 `json:"monthlyRent" toml:"monthly_rent"`
	OtherIncome             float64 `json:"otherIncome" toml:"other_income"`
	AnnualRentGrowthPercent float64 `json:"annualRentGrowthPercent" toml:"annual_rent_growth_percent"`
	VacancyRatePercent      float64 `json:"vacancyRatePercent" toml:"vacancy_rate_percent"`
}

// ExpenseAssumptions holds operating costs. Maintenance, capex and management
// are percentages of monthly rent; utilities, HOA and other are flat monthly amounts.
type ExpenseAssumptions struct {
	PropertyTaxRatePercent           float64 `json:"propertyTaxRatePercent" toml:"property_tax_rate_percent"`
	PropertyTaxAnnualIncreasePercent float64 `json:"propertyTaxAnnualIncreasePercent" toml:"property_tax_annual_increase_percent"`
	InsuranceAnnual                  float64 `json:"insuranceAnnual" toml:"insurance_annual"`
	InsuranceAnnualIncreasePercent   float64 `json:"insuranceAnnualIncreasePercent" toml:"insurance_annual_increase_percent"`
	MaintenancePercent               float64 `json:"maintenancePercent" toml:"maintenance_percent"`
	CapexPercent                     float64 `json:"capexPercent" toml:"capex_percent"`
	ManagementPercent                float64 `json:"managementPercent" toml:"management_percent"`
	UtilitiesMonthly                 float64 `json:"utilitiesMonthly" toml:"utilities_monthly"`
	HOAMonthly                       float64 `json:"hoaMonthly" toml:"hoa_monthly"`
	OtherExpensesMonthly             float64 `json:"otherExpensesMonthly" toml:"other_expenses_monthly"`
	AnnualExpenseGrowthPercent       float64 `json:"annualExpenseGrowthPercent" toml:"annual_expense_growth_percent"`
}

// ForecastInput is the immutable input of a single forecast.
// SaleCostPercent defaults to DefaultSaleCostPercent when nil.
type ForecastInput struct {
	Acquisition         AcquisitionInputs    `json:"acquisition" toml:"acquisition"`
	Financing           FinancingAssumptions `json:"financing" toml:"financing"`
	Income              IncomeAssumptions    `json:"income" toml:"income"`
	Expenses            ExpenseAssumptions   `json:"expenses" toml:"expenses"`
	AppreciationPercent float64              `json:"appreciationPercent" toml:"appreciation_percent"`
	SaleCostPercent     *float64             `json:"saleCostPercent,omitempty" toml:"sale_cost_percent"`
}

// PurchaseMetrics summarizes the acquisition. PointsCost is reported only; it
// is not part of TotalCashInvested.
type PurchaseMetrics struct {
	PurchasePrice     float64 `json:"purchasePrice"`
	DownPayment       float64 `json:"downPayment"`
	LoanAmount        float64 `json:"loanAmount"`
	LoanToValue       float64 `json:"loanToValue"`
	PointsCost        float64 `json:"pointsCost"`
	TotalCashInvested float64 `json:"totalCashInvested"`
}

type MonthlyExpenses struct {
	Mortgage    float64 `json:"mortgage"`
	PropertyTax float64 `json:"propertyTax"`
	Insurance   float64 `json:"insurance"`
	Maintenance float64 `json:"maintenance"`
	Capex       float64 `json:"capex"`
	Management  float64 `json:"management"`
	Utilities   float64 `json:"utilities"`
	HOA         float64 `json:"hoa"`
	Other       float64 `json:"other"`
	PMI         float64 `json:"pmi"`
	// Operating excludes the mortgage payment; Total includes it.
	Operating float64 `json:"operating"`
	Total     float64 `json:"total"`
}

// MonthOneBreakdown is the first month of ownership.
type MonthOneBreakdown struct {
	MonthlyRent          float64         `json:"monthlyRent"`
	GrossIncome          float64         `json:"grossIncome"`
	VacancyLoss          float64         `json:"vacancyLoss"`
	EffectiveGrossIncome float64         `json:"effectiveGrossIncome"`
	Expenses             MonthlyExpenses `json:"expenses"`
	HasPMI               bool            `json:"hasPmi"`
	CashFlow             float64         `json:"cashFlow"`
}

// YearProjection is one year of the forecast. All money fields are annual
// totals except PropertyValue, LoanBalance and Equity, which are end-of-year.
type YearProjection struct {
	Year               int     `json:"year"`
	GrossIncome        float64 `json:"grossIncome"`
	OperatingExpenses  float64 `json:"operatingExpenses"`
	NetOperatingIncome float64 `json:"netOperatingIncome"`
	MortgagePayment    float64 `json:"mortgagePayment"`
	CashFlow           float64 `json:"cashFlow"`
	PropertyValue      float64 `json:"propertyValue"`
	LoanBalance        float64 `json:"loanBalance"`
	Equity             float64 `json:"equity"`
	ReturnOnEquity     float64 `json:"returnOnEquity"`
}

// Projection is the projector output.
type Projection struct {
	Purchase       PurchaseMetrics   `json:"purchase"`
	MonthlyPayment float64           `json:"monthlyPayment"`
	MonthOne       MonthOneBreakdown `json:"monthOne"`
	Years          []YearProjection  `json:"years"`
}

// IRRResult is a solved internal rate of return. Rate is a percentage.
// When Converged is false Rate is the best estimate found, not an exact root.
type IRRResult struct {
	Rate       float64 `json:"rate"`
	Converged  bool    `json:"converged"`
	Iterations int     `json:"iterations"`
	NPV        float64 `json:"npv"`
}

type LifetimeTotals struct {
	EquityBuildup      float64 `json:"equityBuildup"`
	Appreciation       float64 `json:"appreciation"`
	CashFlow           float64 `json:"cashFlow"`
	TotalReturn        float64 `json:"totalReturn"`
	ReturnOnInvestment float64 `json:"returnOnInvestment"`
}

type ReturnMetrics struct {
	NetOperatingIncome  float64        `json:"netOperatingIncome"`
	AnnualCashFlow      float64        `json:"annualCashFlow"`
	CapRate             float64        `json:"capRate"`
	CashOnCashReturn    float64        `json:"cashOnCashReturn"`
	GrossRentMultiplier float64        `json:"grossRentMultiplier"`
	FiveYearIRR         IRRResult      `json:"fiveYearIrr"`
	TenYearIRR          IRRResult      `json:"tenYearIrr"`
	FifteenYearIRR      IRRResult      `json:"fifteenYearIrr"`
	Lifetime            LifetimeTotals `json:"lifetime"`
}

// ForecastResult is computed fresh on every call and never retained.
type ForecastResult struct {
	Purchase       PurchaseMetrics   `json:"purchase"`
	MonthlyPayment float64           `json:"monthlyPayment"`
	MonthOne       MonthOneBreakdown `json:"monthOne"`
	Returns        ReturnMetrics     `json:"returns"`
	Projections    []YearProjection  `json:"projections"`
}

// IRRConverged reports whether all three horizon IRRs converged.
func (r ForecastResult) IRRConverged() bool {
	return r.Returns.FiveYearIRR.Converged &&
		r.Returns.TenYearIRR.Converged &&
		r.Returns.FifteenYearIRR.Converged
}
