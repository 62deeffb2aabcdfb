package investment

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecast_ReturnMetrics(t *testing.T) {
	result, err := Forecast(sampleInput())
	require.NoError(t, err)

	r := result.Returns
	assert.InDelta(t, 18300, r.NetOperatingIncome, 1e-6)
	assert.InDelta(t, 6.1, r.CapRate, 1e-9)
	assert.InDelta(t, 10, r.GrossRentMultiplier, 1e-9)
	assert.InDelta(t, result.MonthOne.CashFlow*12, r.AnnualCashFlow, 1e-9)
	assert.InDelta(t, r.AnnualCashFlow/69000*100, r.CashOnCashReturn, 1e-9)
	assert.Len(t, result.Projections, ProjectionYears)
}

func TestForecast_IRRConvergesForEachHorizon(t *testing.T) {
	in := sampleInput()
	result, err := Forecast(in)
	require.NoError(t, err)

	assert.True(t, result.IRRConverged())
	assert.Empty(t, result.NonConvergedHorizons())
	assert.NoError(t, result.ConvergenceError())

	cash := result.Purchase.TotalCashInvested
	for horizon, irr := range map[int]IRRResult{
		FiveYears:    result.Returns.FiveYearIRR,
		TenYears:     result.Returns.TenYearIRR,
		FifteenYears: result.Returns.FifteenYearIRR,
	} {
		flows := HorizonCashFlows(cash, result.Projections, horizon, DefaultSaleCostPercent)
		require.Len(t, flows, horizon+1)
		assert.Equal(t, -cash, flows[0])
		assert.Less(t, math.Abs(NPV(irr.Rate/100, flows)), 1e-3, "horizon %d", horizon)
		assert.Greater(t, irr.Rate, 0.0)
	}
}

func TestForecast_SaleCostLowersIRR(t *testing.T) {
	in := sampleInput()
	defaulted, err := Forecast(in)
	require.NoError(t, err)

	zero := 0.0
	in.SaleCostPercent = &zero
	free, err := Forecast(in)
	require.NoError(t, err)

	assert.Greater(t, free.Returns.FiveYearIRR.Rate, defaulted.Returns.FiveYearIRR.Rate)
	assert.Equal(t, defaulted.Returns.Lifetime, free.Returns.Lifetime)
}

func TestHorizonCashFlows_SaleProceeds(t *testing.T) {
	years := []YearProjection{
		{Year: 1, CashFlow: 1000, PropertyValue: 110000, LoanBalance: 70000},
		{Year: 2, CashFlow: 1200, PropertyValue: 120000, LoanBalance: 60000},
	}

	flows := HorizonCashFlows(30000, years, 2, 6)
	require.Len(t, flows, 3)
	assert.Equal(t, -30000.0, flows[0])
	assert.Equal(t, 1000.0, flows[1])
	assert.InDelta(t, 1200+112800-60000, flows[2], 1e-6)

	// horizons past the projection are truncated
	assert.Len(t, HorizonCashFlows(30000, years, 5, 6), 3)
}

func TestForecast_LifetimeTotals(t *testing.T) {
	result, err := Forecast(sampleInput())
	require.NoError(t, err)

	last := result.Projections[ProjectionYears-1]
	var cumulative float64
	for _, y := range result.Projections {
		cumulative += y.CashFlow
	}

	l := result.Returns.Lifetime
	assert.InDelta(t, last.Equity-69000, l.EquityBuildup, 1e-6)
	assert.InDelta(t, last.PropertyValue-300000, l.Appreciation, 1e-6)
	assert.InDelta(t, cumulative, l.CashFlow, 1e-6)
	assert.InDelta(t, l.EquityBuildup+l.CashFlow, l.TotalReturn, 1e-6)
	assert.InDelta(t, l.TotalReturn/69000*100, l.ReturnOnInvestment, 1e-6)
	assert.Equal(t, last.PropertyValue, last.Equity)
}

func TestForecast_DegenerateInputsStayFinite(t *testing.T) {
	in := sampleInput()
	in.Financing.DownPaymentPercent = 0
	in.Financing.InterestRate = 0
	in.Acquisition.ClosingCosts = 0
	in.Income.MonthlyRent = 0

	result, err := Forecast(in)
	require.NoError(t, err)

	r := result.Returns
	for _, v := range []float64{
		r.CapRate, r.CashOnCashReturn, r.GrossRentMultiplier,
		r.Lifetime.ReturnOnInvestment, result.MonthlyPayment,
		r.FiveYearIRR.Rate, r.TenYearIRR.Rate, r.FifteenYearIRR.Rate,
	} {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
	assert.Equal(t, 0.0, r.CashOnCashReturn)
	assert.Equal(t, 0.0, r.GrossRentMultiplier)
	assert.Equal(t, 0.0, r.Lifetime.ReturnOnInvestment)
}

func TestForecast_NonConvergenceIsReported(t *testing.T) {
	r := ForecastResult{Returns: ReturnMetrics{
		FiveYearIRR:    IRRResult{Converged: true},
		TenYearIRR:     IRRResult{Converged: false},
		FifteenYearIRR: IRRResult{Converged: false},
	}}

	assert.False(t, r.IRRConverged())
	assert.Equal(t, []int{TenYears, FifteenYears}, r.NonConvergedHorizons())
	assert.True(t, errors.Is(r.ConvergenceError(), ErrIRRNotConverged))
}

func TestForecast_InvalidInput(t *testing.T) {
	in := sampleInput()
	in.Financing.LoanTermYears = -5

	_, err := Forecast(in)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
