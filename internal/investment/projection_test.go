package investment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInput() ForecastInput {
	return ForecastInput{
		Acquisition: AcquisitionInputs{Price: 300000, ClosingCosts: 9000},
		Financing: FinancingAssumptions{
			DownPaymentPercent: 20,
			InterestRate:       6.5,
			LoanTermYears:      30,
			PMIPercent:         0.5,
		},
		Income: IncomeAssumptions{
			MonthlyRent:             2500,
			AnnualRentGrowthPercent: 2,
			VacancyRatePercent:      5,
		},
		Expenses: ExpenseAssumptions{
			PropertyTaxRatePercent:           1.2,
			PropertyTaxAnnualIncreasePercent: 2,
			InsuranceAnnual:                  1200,
			InsuranceAnnualIncreasePercent:   3,
			MaintenancePercent:               5,
			CapexPercent:                     5,
			ManagementPercent:                8,
			AnnualExpenseGrowthPercent:       2,
		},
		AppreciationPercent: 3,
	}
}

func TestProject_PurchaseAndMonthOne(t *testing.T) {
	p, err := Project(sampleInput())
	require.NoError(t, err)

	assert.Equal(t, 300000.0, p.Purchase.PurchasePrice)
	assert.Equal(t, 60000.0, p.Purchase.DownPayment)
	assert.Equal(t, 240000.0, p.Purchase.LoanAmount)
	assert.InDelta(t, 80.0, p.Purchase.LoanToValue, 1e-9)
	assert.Equal(t, 69000.0, p.Purchase.TotalCashInvested)
	assert.InDelta(t, 1517.50, p.MonthlyPayment, 1)

	m := p.MonthOne
	assert.False(t, m.HasPMI)
	assert.Equal(t, 0.0, m.Expenses.PMI)
	assert.InDelta(t, 2375, m.EffectiveGrossIncome, 1e-9)
	assert.InDelta(t, 300, m.Expenses.PropertyTax, 1e-9)
	assert.InDelta(t, 100, m.Expenses.Insurance, 1e-9)
	assert.InDelta(t, 125, m.Expenses.Maintenance, 1e-9)
	assert.InDelta(t, 125, m.Expenses.Capex, 1e-9)
	assert.InDelta(t, 200, m.Expenses.Management, 1e-9)
	assert.InDelta(t, 850, m.Expenses.Operating, 1e-9)
	assert.InDelta(t, 850+p.MonthlyPayment, m.Expenses.Total, 1e-9)
	assert.InDelta(t, 2375-850-p.MonthlyPayment, m.CashFlow, 1e-9)
}

func TestProject_LoanPayoff(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		term int
	}{
		{name: "30 year", rate: 6.5, term: 30},
		{name: "15 year", rate: 4.25, term: 15},
		{name: "zero rate 10 year", rate: 0, term: 10},
		{name: "1 year", rate: 9, term: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sampleInput()
			in.Financing.InterestRate = tt.rate
			in.Financing.LoanTermYears = tt.term

			p, err := Project(in)
			require.NoError(t, err)
			require.Len(t, p.Years, ProjectionYears)

			payoff := p.Years[tt.term-1]
			assert.Equal(t, 0.0, payoff.LoanBalance)
			assert.Equal(t, payoff.PropertyValue, payoff.Equity)

			prev := p.Purchase.LoanAmount
			for i, y := range p.Years {
				assert.Equal(t, i+1, y.Year)
				assert.GreaterOrEqual(t, y.LoanBalance, 0.0)
				assert.LessOrEqual(t, y.LoanBalance, prev)
				prev = y.LoanBalance
				if y.Year > tt.term {
					assert.Equal(t, 0.0, y.MortgagePayment)
					assert.InDelta(t, y.NetOperatingIncome, y.CashFlow, 1e-9)
				}
			}
		})
	}
}

func TestProject_FirstYearPaysTwelvePayments(t *testing.T) {
	p, err := Project(sampleInput())
	require.NoError(t, err)

	assert.InDelta(t, p.MonthlyPayment*12, p.Years[0].MortgagePayment, 1e-6)
	assert.InDelta(t, p.Years[0].NetOperatingIncome-p.Years[0].MortgagePayment, p.Years[0].CashFlow, 1e-9)
	assert.InDelta(t, 30000, p.Years[0].GrossIncome, 1e-9)
}

func TestProject_MonotonicGrowth(t *testing.T) {
	p, err := Project(sampleInput())
	require.NoError(t, err)

	for i := 1; i < len(p.Years); i++ {
		assert.Greater(t, p.Years[i].PropertyValue, p.Years[i-1].PropertyValue)
		assert.Greater(t, p.Years[i].GrossIncome, p.Years[i-1].GrossIncome)
	}
}

func TestProject_ZeroGrowthIsConstant(t *testing.T) {
	in := sampleInput()
	in.AppreciationPercent = 0
	in.Income.AnnualRentGrowthPercent = 0
	in.Expenses.PropertyTaxAnnualIncreasePercent = 0
	in.Expenses.InsuranceAnnualIncreasePercent = 0
	in.Expenses.AnnualExpenseGrowthPercent = 0

	p, err := Project(in)
	require.NoError(t, err)

	first := p.Years[0]
	for _, y := range p.Years[1:] {
		assert.Equal(t, first.PropertyValue, y.PropertyValue)
		assert.Equal(t, first.GrossIncome, y.GrossIncome)
		assert.InDelta(t, first.OperatingExpenses, y.OperatingExpenses, 1e-9)
	}
}

func TestProject_PMIDropsOffWithBalance(t *testing.T) {
	withPMI := sampleInput()
	withPMI.Financing.DownPaymentPercent = 10

	withoutPMI := withPMI
	withoutPMI.Financing.PMIPercent = 0

	a, err := Project(withPMI)
	require.NoError(t, err)
	b, err := Project(withoutPMI)
	require.NoError(t, err)

	assert.True(t, a.MonthOne.HasPMI)
	assert.InDelta(t, 112.5, a.MonthOne.Expenses.PMI, 1e-9)
	assert.InDelta(t, 1350, a.Years[0].OperatingExpenses-b.Years[0].OperatingExpenses, 1e-9)
	assert.InDelta(t, a.Years[29].OperatingExpenses, b.Years[29].OperatingExpenses, 1e-9)
}

func TestProject_AfterRepairValueSeedsPropertyValue(t *testing.T) {
	in := sampleInput()
	arv := 330000.0
	in.Acquisition.AfterRepairValue = &arv
	in.AppreciationPercent = 0

	p, err := Project(in)
	require.NoError(t, err)
	assert.Equal(t, 330000.0, p.Years[0].PropertyValue)
	assert.Equal(t, 300000.0, p.Purchase.PurchasePrice)
}

func TestProject_ZeroEquityHasZeroReturnOnEquity(t *testing.T) {
	in := sampleInput()
	in.Financing.DownPaymentPercent = 0
	in.AppreciationPercent = -99

	p, err := Project(in)
	require.NoError(t, err)
	for _, y := range p.Years {
		if y.Equity <= 0 {
			assert.Equal(t, 0.0, y.ReturnOnEquity)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ForecastInput)
		field  string
	}{
		{name: "zero price", mutate: func(in *ForecastInput) { in.Acquisition.Price = 0 }, field: "acquisition.price"},
		{name: "negative price", mutate: func(in *ForecastInput) { in.Acquisition.Price = -1 }, field: "acquisition.price"},
		{name: "negative closing costs", mutate: func(in *ForecastInput) { in.Acquisition.ClosingCosts = -5 }, field: "acquisition.closingCosts"},
		{name: "down payment over 100", mutate: func(in *ForecastInput) { in.Financing.DownPaymentPercent = 101 }, field: "financing.downPaymentPercent"},
		{name: "negative rate", mutate: func(in *ForecastInput) { in.Financing.InterestRate = -0.1 }, field: "financing.interestRate"},
		{name: "zero term", mutate: func(in *ForecastInput) { in.Financing.LoanTermYears = 0 }, field: "financing.loanTermYears"},
		{name: "term too long", mutate: func(in *ForecastInput) { in.Financing.LoanTermYears = 51 }, field: "financing.loanTermYears"},
		{name: "vacancy over 100", mutate: func(in *ForecastInput) { in.Income.VacancyRatePercent = 120 }, field: "income.vacancyRatePercent"},
		{name: "negative rent", mutate: func(in *ForecastInput) { in.Income.MonthlyRent = -1 }, field: "income.monthlyRent"},
		{name: "negative management", mutate: func(in *ForecastInput) { in.Expenses.ManagementPercent = -1 }, field: "expenses.managementPercent"},
		{name: "negative hoa", mutate: func(in *ForecastInput) { in.Expenses.HOAMonthly = -10 }, field: "expenses.hoaMonthly"},
		{name: "appreciation at -100", mutate: func(in *ForecastInput) { in.AppreciationPercent = -100 }, field: "appreciationPercent"},
		{
			name: "sale cost of 100",
			mutate: func(in *ForecastInput) {
				s := 100.0
				in.SaleCostPercent = &s
			},
			field: "saleCostPercent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sampleInput()
			tt.mutate(&in)

			err := in.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.field, vErr.Field)

			_, err = Project(in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	assert.NoError(t, sampleInput().Validate())
}
