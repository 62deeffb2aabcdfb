// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Investment    InvestmentConfig        `mapstructure:"investment"`
	Notifications NotificationConfig      `mapstructure:"notifications"`
	Logging       LoggingConfig           `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	HealthPort  int    `mapstructure:"health_port"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses     []string `mapstructure:"addresses"`
	Username      string   `mapstructure:"username"`
	Password      string   `mapstructure:"password"`
	URL           string   `mapstructure:"url"`
	ListingsIndex string   `mapstructure:"listings_index"`
}

// GetURL returns the URL field or the first address.
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// Comparable sources.
const (
	ComparablesFromPostgres      = "postgres"
	ComparablesFromElasticsearch = "elasticsearch"
)

// InvestmentConfig holds forecast defaults and rent estimation settings.
type InvestmentConfig struct {
	SaleCostPercent     float64          `mapstructure:"sale_cost_percent"`
	ComparablesSource   string           `mapstructure:"comparables_source"`
	RentCacheTTLSeconds int              `mapstructure:"rent_cache_ttl_seconds"`
	SearchPageSize      int              `mapstructure:"search_page_size"`
	Defaults            ForecastDefaults `mapstructure:"defaults"`
}

// ForecastDefaults fill assumptions a forecast request leaves out.
type ForecastDefaults struct {
	DownPaymentPercent               float64 `mapstructure:"down_payment_percent"`
	InterestRate                     float64 `mapstructure:"interest_rate"`
	LoanTermYears                    int     `mapstructure:"loan_term_years"`
	PMIPercent                       float64 `mapstructure:"pmi_percent"`
	AnnualRentGrowthPercent          float64 `mapstructure:"annual_rent_growth_percent"`
	VacancyRatePercent               float64 `mapstructure:"vacancy_rate_percent"`
	PropertyTaxRatePercent           float64 `mapstructure:"property_tax_rate_percent"`
	PropertyTaxAnnualIncreasePercent float64 `mapstructure:"property_tax_annual_increase_percent"`
	InsuranceAnnual                  float64 `mapstructure:"insurance_annual"`
	InsuranceAnnualIncreasePercent   float64 `mapstructure:"insurance_annual_increase_percent"`
	MaintenancePercent               float64 `mapstructure:"maintenance_percent"`
	CapexPercent                     float64 `mapstructure:"capex_percent"`
	ManagementPercent                float64 `mapstructure:"management_percent"`
	AnnualExpenseGrowthPercent       float64 `mapstructure:"annual_expense_growth_percent"`
	AppreciationPercent              float64 `mapstructure:"appreciation_percent"`
}

// NotificationConfig holds settings for deal alerts.
type NotificationConfig struct {
	DealAlerts struct {
		Enabled   bool     `mapstructure:"enabled"`
		TopicARN  string   `mapstructure:"topic_arn"`
		EmailFrom string   `mapstructure:"email_from"`
		EmailTo   []string `mapstructure:"email_to"`
	} `mapstructure:"deal_alerts"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
