package investment

import "math"

const (
	monthsPerYear = 12
	// PMIThresholdLTV is the loan-to-value above which PMI is charged.
	PMIThresholdLTV = 80.0
	// balances below half a cent are treated as paid off
	payoffEpsilon = 0.005
)

// MonthlyPayment returns the fixed monthly payment for a fully amortizing loan.
// A zero rate degrades to straight-line repayment.
func MonthlyPayment(loanAmount, annualRatePercent float64, termYears int) float64 {
	if loanAmount <= 0 || termYears <= 0 {
		return 0
	}

	n := float64(termYears * monthsPerYear)
	r := annualRatePercent / 100 / monthsPerYear
	if r == 0 {
		return loanAmount / n
	}

	growth := math.Pow(1+r, n)
	return loanAmount * r * growth / (growth - 1)
}

// PresentValueOfPayments inverts MonthlyPayment: the loan amount a payment of
// m retires over the term.
func PresentValueOfPayments(m, annualRatePercent float64, termYears int) float64 {
	n := float64(termYears * monthsPerYear)
	r := annualRatePercent / 100 / monthsPerYear
	if r == 0 {
		return m * n
	}
	growth := math.Pow(1+r, n)
	return m * (growth - 1) / (r * growth)
}

// MonthlyPMI is zero unless loan-to-value exceeds PMIThresholdLTV.
func MonthlyPMI(loanAmount, price, pmiPercent float64) float64 {
	if price <= 0 || loanAmount*100 <= price*PMIThresholdLTV {
		return 0
	}
	return loanAmount * pmiPercent / 100 / monthsPerYear
}

func loanToValue(loanAmount, price float64) float64 {
	if price <= 0 {
		return 0
	}
	return loanAmount * 100 / price
}

// amortizeYear applies twelve monthly payments to balance and returns the
// remaining balance and the amount actually paid. The last payment is capped
// at what is owed so the balance never goes negative.
func amortizeYear(balance, annualRatePercent, payment float64) (remaining, paid float64) {
	r := annualRatePercent / 100 / monthsPerYear
	for m := 0; m < monthsPerYear && balance > 0; m++ {
		owed := balance * (1 + r)
		p := math.Min(payment, owed)
		balance = owed - p
		paid += p
	}
	if balance < payoffEpsilon {
		balance = 0
	}
	return balance, paid
}
