// internal/workers/investment/estimate-rent/models.go
package estimaterent

import "rental-investment-workers/internal/rentestimate"

// Input names a stored listing by zpid or carries the property inline. The
// inline property wins when both are given.
type Input struct {
	ListingID string                         `json:"zpid,omitempty"`
	Property  *rentestimate.PropertySnapshot `json:"property,omitempty"`
}

type Output struct {
	ListingID string `json:"zpid,omitempty"`
	rentestimate.RentEstimate
	// CustomRentEstimate is set for custom estimates so a following
	// classification step picks the rent up from the process variables.
	CustomRentEstimate *float64 `json:"customRentEstimate,omitempty"`
	CacheHit           bool     `json:"cacheHit"`
}
