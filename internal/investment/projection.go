// internal/investment/projection.go
package investment

// Project validates the input and computes the month-one breakdown and the
// 30-year projection.
func Project(in ForecastInput) (Projection, error) {
	if err := in.Validate(); err != nil {
		return Projection{}, err
	}
	return project(in), nil
}

func project(in ForecastInput) Projection {
	purchase := purchaseMetrics(in)
	payment := MonthlyPayment(purchase.LoanAmount, in.Financing.InterestRate, in.Financing.LoanTermYears)

	return Projection{
		Purchase:       purchase,
		MonthlyPayment: payment,
		MonthOne:       monthOne(in, purchase, payment),
		Years:          projectYears(in, purchase, payment),
	}
}

func purchaseMetrics(in ForecastInput) PurchaseMetrics {
	price := in.Acquisition.Price
	down := price * in.Financing.DownPaymentPercent / 100
	loan := price - down
	if loan < 0 {
		loan = 0
	}

	return PurchaseMetrics{
		PurchasePrice:     price,
		DownPayment:       down,
		LoanAmount:        loan,
		LoanToValue:       loanToValue(loan, price),
		PointsCost:        loan * in.Financing.LoanPoints / 100,
		TotalCashInvested: down + in.Acquisition.ClosingCosts + in.Acquisition.RenovationCosts,
	}
}

func monthOne(in ForecastInput, p PurchaseMetrics, payment float64) MonthOneBreakdown {
	inc, exp := in.Income, in.Expenses
	rent := inc.MonthlyRent

	gross := rent + inc.OtherIncome
	vacancy := gross * inc.VacancyRatePercent / 100
	pmi := MonthlyPMI(p.LoanAmount, p.PurchasePrice, in.Financing.PMIPercent)

	e := MonthlyExpenses{
		Mortgage:    payment,
		PropertyTax: p.PurchasePrice * exp.PropertyTaxRatePercent / 100 / monthsPerYear,
		Insurance:   exp.InsuranceAnnual / monthsPerYear,
		Maintenance: rent * exp.MaintenancePercent / 100,
		Capex:       rent * exp.CapexPercent / 100,
		Management:  rent * exp.ManagementPercent / 100,
		Utilities:   exp.UtilitiesMonthly,
		HOA:         exp.HOAMonthly,
		Other:       exp.OtherExpensesMonthly,
		PMI:         pmi,
	}
	e.Operating = e.PropertyTax + e.Insurance + e.Maintenance + e.Capex + e.Management +
		e.Utilities + e.HOA + e.Other + e.PMI
	e.Total = e.Operating + e.Mortgage

	egi := gross - vacancy
	return MonthOneBreakdown{
		MonthlyRent:          rent,
		GrossIncome:          gross,
		VacancyLoss:          vacancy,
		EffectiveGrossIncome: egi,
		Expenses:             e,
		HasPMI:               pmi > 0,
		CashFlow:             egi - e.Operating - payment,
	}
}

// yearState carries the values that compound from one year to the next.
type yearState struct {
	propertyValue float64
	rent          float64
	otherIncome   float64
	propertyTax   float64 // annual
	insurance     float64 // annual
	flatMonthly   float64 // utilities + HOA + other
	balance       float64
}

func (s *yearState) grow(in ForecastInput) {
	s.propertyValue *= 1 + in.AppreciationPercent/100
	s.rent *= 1 + in.Income.AnnualRentGrowthPercent/100
	s.otherIncome *= 1 + in.Income.AnnualRentGrowthPercent/100
	s.propertyTax *= 1 + in.Expenses.PropertyTaxAnnualIncreasePercent/100
	s.insurance *= 1 + in.Expenses.InsuranceAnnualIncreasePercent/100
	s.flatMonthly *= 1 + in.Expenses.AnnualExpenseGrowthPercent/100
}

func projectYears(in ForecastInput, p PurchaseMetrics, payment float64) []YearProjection {
	exp := in.Expenses
	rentShare := (exp.MaintenancePercent + exp.CapexPercent + exp.ManagementPercent) / 100
	term := in.Financing.LoanTermYears

	startValue := p.PurchasePrice
	if arv := in.Acquisition.AfterRepairValue; arv != nil && *arv > 0 {
		startValue = *arv
	}

	s := yearState{
		propertyValue: startValue,
		rent:          in.Income.MonthlyRent,
		otherIncome:   in.Income.OtherIncome,
		propertyTax:   p.PurchasePrice * exp.PropertyTaxRatePercent / 100,
		insurance:     exp.InsuranceAnnual,
		flatMonthly:   exp.UtilitiesMonthly + exp.HOAMonthly + exp.OtherExpensesMonthly,
		balance:       p.LoanAmount,
	}

	years := make([]YearProjection, 0, ProjectionYears)
	for year := 1; year <= ProjectionYears; year++ {
		if year > 1 {
			s.grow(in)
		}

		// PMI stops once the start-of-year balance reaches the LTV threshold.
		var pmi float64
		if MonthlyPMI(s.balance, p.PurchasePrice, in.Financing.PMIPercent) > 0 {
			pmi = MonthlyPMI(p.LoanAmount, p.PurchasePrice, in.Financing.PMIPercent) * monthsPerYear
		}

		gross := (s.rent + s.otherIncome) * monthsPerYear
		egi := gross * (1 - in.Income.VacancyRatePercent/100)
		opex := s.propertyTax + s.insurance + s.rent*monthsPerYear*rentShare +
			s.flatMonthly*monthsPerYear + pmi
		noi := egi - opex

		var paid float64
		s.balance, paid = amortizeYear(s.balance, in.Financing.InterestRate, payment)
		if year >= term {
			s.balance = 0
		}

		cashFlow := noi - paid
		equity := s.propertyValue - s.balance

		var roe float64
		if equity > 0 {
			roe = cashFlow / equity * 100
		}

		years = append(years, YearProjection{
			Year:               year,
			GrossIncome:        gross,
			OperatingExpenses:  opex,
			NetOperatingIncome: noi,
			MortgagePayment:    paid,
			CashFlow:           cashFlow,
			PropertyValue:      s.propertyValue,
			LoanBalance:        s.balance,
			Equity:             equity,
			ReturnOnEquity:     roe,
		})
	}

	return years
}
