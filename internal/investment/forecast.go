package investment

import "fmt"

// Forecast validates the input, projects 30 years and aggregates the returns.
// A non-converged IRR is still returned; callers check IRRConverged or
// NonConvergedHorizons.
func Forecast(in ForecastInput) (ForecastResult, error) {
	p, err := Project(in)
	if err != nil {
		return ForecastResult{}, err
	}

	saleCost := DefaultSaleCostPercent
	if in.SaleCostPercent != nil {
		saleCost = *in.SaleCostPercent
	}

	return ForecastResult{
		Purchase:       p.Purchase,
		MonthlyPayment: p.MonthlyPayment,
		MonthOne:       p.MonthOne,
		Returns:        Aggregate(p, saleCost),
		Projections:    p.Years,
	}, nil
}

// NonConvergedHorizons lists the horizons, in years, whose IRR missed the tolerance.
func (r ForecastResult) NonConvergedHorizons() []int {
	var horizons []int
	for _, h := range []struct {
		years int
		irr   IRRResult
	}{
		{FiveYears, r.Returns.FiveYearIRR},
		{TenYears, r.Returns.TenYearIRR},
		{FifteenYears, r.Returns.FifteenYearIRR},
	} {
		if !h.irr.Converged {
			horizons = append(horizons, h.years)
		}
	}
	return horizons
}

// ConvergenceError wraps ErrIRRNotConverged when any horizon failed, else nil.
func (r ForecastResult) ConvergenceError() error {
	if h := r.NonConvergedHorizons(); len(h) > 0 {
		return fmt.Errorf("%w for horizons %v", ErrIRRNotConverged, h)
	}
	return nil
}
