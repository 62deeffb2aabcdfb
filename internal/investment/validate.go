package investment

import (
	"errors"
	"fmt"
	"math"
)

const (
	MaxLoanTermYears   = 50
	MaxInterestRate    = 100.0
	MaxPurchasePrice   = 1_000_000_000.0
	MaxGrowthPercent   = 100.0
	MinGrowthPercent   = -100.0
	maxPercentOfAmount = 100.0
)

var (
	// ErrInvalidInput is wrapped by every ValidationError.
	ErrInvalidInput = errors.New("invalid input")
	// ErrIRRNotConverged marks a best-effort IRR.
	ErrIRRNotConverged = errors.New("irr did not converge")
)

// ValidationError names the first offending field of an input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks a forecast input before any computation happens.
func (in ForecastInput) Validate() error {
	a, f, inc, e := in.Acquisition, in.Financing, in.Income, in.Expenses

	if err := finite(map[string]float64{
		"acquisition.price":               a.Price,
		"acquisition.closingCosts":        a.ClosingCosts,
		"acquisition.renovationCosts":     a.RenovationCosts,
		"financing.downPaymentPercent":    f.DownPaymentPercent,
		"financing.interestRate":          f.InterestRate,
		"financing.loanPoints":            f.LoanPoints,
		"financing.pmiPercent":            f.PMIPercent,
		"income.monthlyRent":              inc.MonthlyRent,
		"income.otherIncome":              inc.OtherIncome,
		"income.annualRentGrowthPercent":  inc.AnnualRentGrowthPercent,
		"income.vacancyRatePercent":       inc.VacancyRatePercent,
		"expenses.propertyTaxRatePercent": e.PropertyTaxRatePercent,
		"expenses.insuranceAnnual":        e.InsuranceAnnual,
		"appreciationPercent":             in.AppreciationPercent,
	}); err != nil {
		return err
	}

	switch {
	case a.Price <= 0:
		return invalid("acquisition.price", "must be positive, got %.2f", a.Price)
	case a.Price > MaxPurchasePrice:
		return invalid("acquisition.price", "exceeds maximum of %.2f", MaxPurchasePrice)
	case a.ClosingCosts < 0:
		return invalid("acquisition.closingCosts", "must not be negative")
	case a.RenovationCosts < 0:
		return invalid("acquisition.renovationCosts", "must not be negative")
	case a.AfterRepairValue != nil && *a.AfterRepairValue < 0:
		return invalid("acquisition.afterRepairValue", "must not be negative")
	}

	switch {
	case f.DownPaymentPercent < 0 || f.DownPaymentPercent > 100:
		return invalid("financing.downPaymentPercent", "must be within [0,100], got %.2f", f.DownPaymentPercent)
	case f.InterestRate < 0:
		return invalid("financing.interestRate", "must not be negative")
	case f.InterestRate > MaxInterestRate:
		return invalid("financing.interestRate", "exceeds maximum of %.2f%%", MaxInterestRate)
	case f.LoanTermYears <= 0:
		return invalid("financing.loanTermYears", "must be positive, got %d", f.LoanTermYears)
	case f.LoanTermYears > MaxLoanTermYears:
		return invalid("financing.loanTermYears", "exceeds maximum of %d years", MaxLoanTermYears)
	case f.LoanPoints < 0:
		return invalid("financing.loanPoints", "must not be negative")
	case f.PMIPercent < 0 || f.PMIPercent > maxPercentOfAmount:
		return invalid("financing.pmiPercent", "must be within [0,100]")
	}

	switch {
	case inc.MonthlyRent < 0:
		return invalid("income.monthlyRent", "must not be negative")
	case inc.OtherIncome < 0:
		return invalid("income.otherIncome", "must not be negative")
	case inc.VacancyRatePercent < 0 || inc.VacancyRatePercent > 100:
		return invalid("income.vacancyRatePercent", "must be within [0,100], got %.2f", inc.VacancyRatePercent)
	}

	percents := []struct {
		field string
		value float64
	}{
		{"expenses.propertyTaxRatePercent", e.PropertyTaxRatePercent},
		{"expenses.maintenancePercent", e.MaintenancePercent},
		{"expenses.capexPercent", e.CapexPercent},
		{"expenses.managementPercent", e.ManagementPercent},
	}
	for _, p := range percents {
		if p.value < 0 || p.value > maxPercentOfAmount || math.IsNaN(p.value) {
			return invalid(p.field, "must be within [0,100]")
		}
	}

	amounts := []struct {
		field string
		value float64
	}{
		{"expenses.insuranceAnnual", e.InsuranceAnnual},
		{"expenses.utilitiesMonthly", e.UtilitiesMonthly},
		{"expenses.hoaMonthly", e.HOAMonthly},
		{"expenses.otherExpensesMonthly", e.OtherExpensesMonthly},
	}
	for _, m := range amounts {
		if m.value < 0 || math.IsNaN(m.value) || math.IsInf(m.value, 0) {
			return invalid(m.field, "must be a non-negative amount")
		}
	}

	growth := []struct {
		field string
		value float64
	}{
		{"appreciationPercent", in.AppreciationPercent},
		{"income.annualRentGrowthPercent", inc.AnnualRentGrowthPercent},
		{"expenses.propertyTaxAnnualIncreasePercent", e.PropertyTaxAnnualIncreasePercent},
		{"expenses.insuranceAnnualIncreasePercent", e.InsuranceAnnualIncreasePercent},
		{"expenses.annualExpenseGrowthPercent", e.AnnualExpenseGrowthPercent},
	}
	for _, g := range growth {
		if g.value <= MinGrowthPercent || g.value > MaxGrowthPercent || math.IsNaN(g.value) {
			return invalid(g.field, "must be within (%.0f,%.0f]", MinGrowthPercent, MaxGrowthPercent)
		}
	}

	if in.SaleCostPercent != nil {
		if s := *in.SaleCostPercent; s < 0 || s >= 100 || math.IsNaN(s) {
			return invalid("saleCostPercent", "must be within [0,100)")
		}
	}

	return nil
}

func finite(values map[string]float64) error {
	for field, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalid(field, "must be a finite number")
		}
	}
	return nil
}
