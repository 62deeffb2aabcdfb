// internal/workers/investment/forecast-cash-flow/schema.go
package forecastcashflow

import "rental-investment-workers/internal/common/validation"

// inputSchema bounds the job variables before defaults are applied. Other
// process variables are allowed alongside.
var inputSchema = validation.MustCompile(`{
  "type": "object",
  "required": ["acquisition", "income"],
  "properties": {
    "zpid": {"type": "string"},
    "acquisition": {
      "type": "object",
      "required": ["price"],
      "properties": {
        "price": {"type": "number", "exclusiveMinimum": 0, "maximum": 1000000000},
        "closingCosts": {"type": "number", "minimum": 0},
        "renovationCosts": {"type": "number", "minimum": 0},
        "afterRepairValue": {"type": ["number", "null"], "minimum": 0}
      }
    },
    "financing": {
      "type": "object",
      "properties": {
        "downPaymentPercent": {"type": "number", "minimum": 0, "maximum": 100},
        "interestRate": {"type": "number", "minimum": 0, "maximum": 100},
        "loanTermYears": {"type": "integer", "minimum": 1, "maximum": 50},
        "loanPoints": {"type": "number", "minimum": 0, "maximum": 100},
        "pmiPercent": {"type": "number", "minimum": 0, "maximum": 100}
      }
    },
    "income": {
      "type": "object",
      "required": ["monthlyRent"],
      "properties": {
        "monthlyRent": {"type": "number", "minimum": 0},
        "otherIncome": {"type": "number", "minimum": 0},
        "annualRentGrowthPercent": {"type": "number", "exclusiveMinimum": -100, "maximum": 100},
        "vacancyRatePercent": {"type": "number", "minimum": 0, "maximum": 100}
      }
    },
    "expenses": {
      "type": "object",
      "properties": {
        "propertyTaxRatePercent": {"type": "number", "minimum": 0, "maximum": 100},
        "propertyTaxAnnualIncreasePercent": {"type": "number", "exclusiveMinimum": -100, "maximum": 100},
        "insuranceAnnual": {"type": "number", "minimum": 0},
        "insuranceAnnualIncreasePercent": {"type": "number", "exclusiveMinimum": -100, "maximum": 100},
        "maintenancePercent": {"type": "number", "minimum": 0, "maximum": 100},
        "capexPercent": {"type": "number", "minimum": 0, "maximum": 100},
        "managementPercent": {"type": "number", "minimum": 0, "maximum": 100},
        "utilitiesMonthly": {"type": "number", "minimum": 0},
        "hoaMonthly": {"type": "number", "minimum": 0},
        "otherExpensesMonthly": {"type": "number", "minimum": 0},
        "annualExpenseGrowthPercent": {"type": "number", "exclusiveMinimum": -100, "maximum": 100}
      }
    },
    "appreciationPercent": {"type": "number", "exclusiveMinimum": -100, "maximum": 100},
    "saleCostPercent": {"type": "number", "minimum": 0, "exclusiveMaximum": 100}
  }
}`)
