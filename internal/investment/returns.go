package investment

// DefaultSaleCostPercent is the selling cost assumed when computing sale proceeds.
const DefaultSaleCostPercent = 6.0

// IRR horizons in years.
const (
	FiveYears    = 5
	TenYears     = 10
	FifteenYears = 15
)

// Aggregate derives return metrics from a projection. saleCostPercent is a
// percentage of the sale price.
func Aggregate(p Projection, saleCostPercent float64) ReturnMetrics {
	price := p.Purchase.PurchasePrice
	cash := p.Purchase.TotalCashInvested
	m := p.MonthOne

	noi := (m.EffectiveGrossIncome - m.Expenses.Operating) * monthsPerYear
	annualCashFlow := m.CashFlow * monthsPerYear
	annualRent := m.MonthlyRent * monthsPerYear

	return ReturnMetrics{
		NetOperatingIncome:  noi,
		AnnualCashFlow:      annualCashFlow,
		CapRate:             percentOf(noi, price),
		CashOnCashReturn:    percentOf(annualCashFlow, cash),
		GrossRentMultiplier: ratio(price, annualRent),
		FiveYearIRR:         HorizonIRR(cash, p.Years, FiveYears, saleCostPercent),
		TenYearIRR:          HorizonIRR(cash, p.Years, TenYears, saleCostPercent),
		FifteenYearIRR:      HorizonIRR(cash, p.Years, FifteenYears, saleCostPercent),
		Lifetime:            lifetimeTotals(price, cash, p.Years),
	}
}

// HorizonCashFlows builds [-cash, cf1, ..., cfN] where the last entry also
// carries the net proceeds of selling at the end of year N.
func HorizonCashFlows(totalCashInvested float64, years []YearProjection, horizon int, saleCostPercent float64) []float64 {
	if horizon > len(years) {
		horizon = len(years)
	}
	flows := make([]float64, 0, horizon+1)
	flows = append(flows, -totalCashInvested)
	for _, y := range years[:horizon] {
		flows = append(flows, y.CashFlow)
	}
	if horizon > 0 {
		last := years[horizon-1]
		flows[horizon] += last.PropertyValue*(1-saleCostPercent/100) - last.LoanBalance
	}
	return flows
}

// HorizonIRR is the IRR of holding for horizon years and then selling.
func HorizonIRR(totalCashInvested float64, years []YearProjection, horizon int, saleCostPercent float64) IRRResult {
	return IRR(HorizonCashFlows(totalCashInvested, years, horizon, saleCostPercent))
}

func lifetimeTotals(price, cash float64, years []YearProjection) LifetimeTotals {
	if len(years) == 0 {
		return LifetimeTotals{}
	}
	last := years[len(years)-1]

	var cumulative float64
	for _, y := range years {
		cumulative += y.CashFlow
	}

	t := LifetimeTotals{
		EquityBuildup: last.Equity - cash,
		Appreciation:  last.PropertyValue - price,
		CashFlow:      cumulative,
	}
	t.TotalReturn = t.EquityBuildup + t.CashFlow
	t.ReturnOnInvestment = percentOf(t.TotalReturn, cash)
	return t
}

// percentOf returns part/whole*100, or 0 when whole is not positive.
func percentOf(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

func ratio(a, b float64) float64 {
	if b <= 0 {
		return 0
	}
	return a / b
}
