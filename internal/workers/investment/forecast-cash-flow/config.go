// internal/workers/investment/forecast-cash-flow/config.go
package forecastcashflow

import (
	"time"

	"rental-investment-workers/internal/common/config"
	"rental-investment-workers/internal/investment"
)

type Config struct {
	Timeout         time.Duration
	SaleCostPercent float64
	Defaults        config.ForecastDefaults
}

func LoadConfig() *Config {
	return &Config{
		Timeout:         10 * time.Second,
		SaleCostPercent: investment.DefaultSaleCostPercent,
		Defaults: config.ForecastDefaults{
			DownPaymentPercent:               20,
			InterestRate:                     6.5,
			LoanTermYears:                    30,
			PMIPercent:                       0.5,
			AnnualRentGrowthPercent:          2,
			VacancyRatePercent:               5,
			PropertyTaxRatePercent:           1.2,
			PropertyTaxAnnualIncreasePercent: 2,
			InsuranceAnnual:                  1200,
			InsuranceAnnualIncreasePercent:   3,
			MaintenancePercent:               5,
			CapexPercent:                     5,
			ManagementPercent:                8,
			AnnualExpenseGrowthPercent:       2,
			AppreciationPercent:              3,
		},
	}
}
