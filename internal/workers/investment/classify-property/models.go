// internal/workers/investment/classify-property/models.go
package classifyproperty

import (
	"rental-investment-workers/internal/investment"
	"rental-investment-workers/internal/models"
)

// Input carries the listing fields at the top level of the job variables.
type Input struct {
	models.Listing
}

type Output struct {
	ListingID      string                    `json:"zpid"`
	Classification investment.Classification `json:"classification"`
	MonthlyRent    float64                   `json:"monthlyRent"`
	EstimateSource string                    `json:"estimateSource,omitempty"`
	RentKnown      bool                      `json:"rentKnown"`
	AlertSent      bool                      `json:"alertSent"`
}
