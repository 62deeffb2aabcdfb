// internal/workers/investment/search-listings/models.go
package searchlistings

import "rental-investment-workers/internal/models"

type Input struct {
	models.ListingSearch
}

type Output struct {
	models.ListingPage
	PageSize int `json:"pageSize"`
}
