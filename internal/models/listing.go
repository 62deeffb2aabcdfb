// internal/models/listing.go
package models

import (
	"fmt"
	"strings"
	"time"

	"rental-investment-workers/internal/investment"
	"rental-investment-workers/internal/rentestimate"
)

// Listing is a stored property listing enriched with its 1% rule results.
type Listing struct {
	Zpid               string   `json:"zpid"`
	Address            string   `json:"address"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	ZipCode            string   `json:"zipCode"`
	Price              float64  `json:"price"`
	Bedrooms           float64  `json:"bedrooms"`
	Bathrooms          float64  `json:"bathrooms"`
	SquareFootage      float64  `json:"squareFootage"`
	YearBuilt          *int     `json:"yearBuilt,omitempty"`
	PropertyType       string   `json:"propertyType"`
	LotSize            *float64 `json:"lotSize,omitempty"`
	LotUnit            string   `json:"lotUnit,omitempty"`
	Latitude           *float64 `json:"latitude,omitempty"`
	Longitude          *float64 `json:"longitude,omitempty"`
	Zestimate          *float64 `json:"zestimate,omitempty"`
	RentZestimate      *float64 `json:"rentZestimate,omitempty"`
	CustomRentEstimate *float64 `json:"customRentEstimate,omitempty"`

	EstimateSource          string    `json:"estimateSource"`
	MeetsRentOnePercentRule bool      `json:"meetsRentOnePercentRule"`
	MeetsSqftOnePercentRule bool      `json:"meetsSqftOnePercentRule"`
	MeetsCombinedRules      bool      `json:"meetsCombinedRules"`
	RentToValueRatio        float64   `json:"rentToValueRatio"`
	SqftToValueRatio        float64   `json:"sqftToValueRatio"`
	LastUpdated             time.Time `json:"lastUpdated"`
}

// Validate checks the fields the store and classifier depend on.
func (l *Listing) Validate() error {
	var problems []string
	if strings.TrimSpace(l.Zpid) == "" {
		problems = append(problems, "zpid is required")
	}
	if strings.TrimSpace(l.Address) == "" {
		problems = append(problems, "address is required")
	}
	if l.Price <= 0 {
		problems = append(problems, "price must be positive")
	}
	if l.SquareFootage < 0 || l.Bedrooms < 0 || l.Bathrooms < 0 {
		problems = append(problems, "bedrooms, bathrooms and squareFootage must not be negative")
	}
	if (l.Latitude == nil) != (l.Longitude == nil) {
		problems = append(problems, "latitude and longitude must be given together")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid listing: %s", strings.Join(problems, "; "))
	}
	return nil
}

// MonthlyRent returns the provider rent when positive, otherwise the custom
// estimate. The bool is false when neither is known.
func (l *Listing) MonthlyRent() (float64, rentestimate.Source, bool) {
	if l.RentZestimate != nil && *l.RentZestimate > 0 {
		return *l.RentZestimate, rentestimate.SourceProvider, true
	}
	if l.CustomRentEstimate != nil && *l.CustomRentEstimate > 0 {
		return *l.CustomRentEstimate, rentestimate.SourceCustom, true
	}
	return 0, rentestimate.SourceCustom, false
}

// ApplyClassification records the rule results and estimate source.
func (l *Listing) ApplyClassification(c investment.Classification, source rentestimate.Source, now time.Time) {
	l.EstimateSource = string(source)
	l.RentToValueRatio = c.RentToValueRatio
	l.SqftToValueRatio = c.SqftToValueRatio
	l.MeetsRentOnePercentRule = c.MeetsRentRule
	l.MeetsSqftOnePercentRule = c.MeetsSqftRule
	l.MeetsCombinedRules = c.MeetsCombinedRules
	l.LastUpdated = now.UTC()
}

// Snapshot converts the listing into a rent estimator subject.
func (l *Listing) Snapshot() rentestimate.PropertySnapshot {
	return rentestimate.PropertySnapshot{
		ID:            l.Zpid,
		Address:       l.Address,
		PropertyType:  l.PropertyType,
		Price:         l.Price,
		Bedrooms:      l.Bedrooms,
		Bathrooms:     l.Bathrooms,
		SquareFootage: l.SquareFootage,
		Latitude:      l.Latitude,
		Longitude:     l.Longitude,
		ProviderRent:  l.RentZestimate,
		ValueEstimate: l.Zestimate,
	}
}
