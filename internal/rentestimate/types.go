// internal/rentestimate/types.go
package rentestimate

import "context"

// Source tags where an estimate came from.
type Source string

const (
	SourceProvider Source = "provider"
	SourceCustom   Source = "custom"
)

// Property type tags understood by the fallback model.
const (
	TypeSingleFamily = "SINGLE_FAMILY"
	TypeMultiFamily  = "MULTI_FAMILY"
	TypeCondo        = "CONDO"
	TypeApartment    = "APARTMENT"
)

// PropertySnapshot is the subject of an estimate. Optional fields are nil
// when unknown.
type PropertySnapshot struct {
	ID            string   `json:"id,omitempty"`
	Address       string   `json:"address,omitempty"`
	PropertyType  string   `json:"propertyType"`
	Price         float64  `json:"price"`
	Bedrooms      float64  `json:"bedrooms"`
	Bathrooms     float64  `json:"bathrooms"`
	SquareFootage float64  `json:"squareFootage"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	ProviderRent  *float64 `json:"providerRent,omitempty"`
	ValueEstimate *float64 `json:"valueEstimate,omitempty"`
}

func (p PropertySnapshot) hasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

func (p PropertySnapshot) providerRent() (float64, bool) {
	if p.ProviderRent == nil || *p.ProviderRent <= 0 {
		return 0, false
	}
	return *p.ProviderRent, true
}

// ComparableListing is a stored listing returned by a ComparablesLookup.
// Rent is the provider rent, or the custom estimate when the provider has none.
type ComparableListing struct {
	ID            string  `json:"id"`
	Address       string  `json:"address"`
	PropertyType  string  `json:"propertyType"`
	Rent          float64 `json:"rent"`
	Bedrooms      float64 `json:"bedrooms"`
	Bathrooms     float64 `json:"bathrooms"`
	SquareFootage float64 `json:"squareFootage"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
}

// ComparableProperty is a comparable annotated with its distance from the subject.
type ComparableProperty struct {
	ID            string  `json:"id,omitempty"`
	Address       string  `json:"address"`
	Rent          float64 `json:"rent"`
	Bedrooms      float64 `json:"bedrooms"`
	Bathrooms     float64 `json:"bathrooms"`
	SquareFootage float64 `json:"squareFootage"`
	DistanceMiles float64 `json:"distance"`
}

// RentEstimate is the estimator output. Comparables are ordered by
// ascending distance.
type RentEstimate struct {
	EstimatedRent   float64              `json:"estimatedRent"`
	Source          Source               `json:"source"`
	ConfidenceScore float64              `json:"confidenceScore"`
	Comparables     []ComparableProperty `json:"comparableProperties"`
}

// ComparablesLookup runs a range query over a listing store.
type ComparablesLookup interface {
	FindComparables(ctx context.Context, q ComparableQuery) ([]ComparableListing, error)
}
