// internal/models/search.go
package models

import "fmt"

// Range bounds a numeric filter. Zero means unbounded on that side.
type Range struct {
	Min float64 `json:"min,omitempty"`
	Max float64 `json:"max,omitempty"`
}

func (r Range) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

type ListingFilters struct {
	PropertyTypes []string `json:"propertyType,omitempty"`
	Bedrooms      Range    `json:"bedrooms"`
	Bathrooms     Range    `json:"bathrooms"`
	Price         Range    `json:"price"`
	SquareFootage Range    `json:"squareFootage"`
	YearBuilt     Range    `json:"yearBuilt"`
}

// InvestmentCriteria selects listings by rule. CombinedRules matches
// listings meeting either rule and takes precedence over the single flags.
type InvestmentCriteria struct {
	RentOnePercentRule bool `json:"rentOnePercentRule"`
	SqftOnePercentRule bool `json:"sqftOnePercentRule"`
	CombinedRules      bool `json:"combinedRules"`
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type ListingSearch struct {
	Location   string             `json:"location,omitempty"`
	Filters    ListingFilters     `json:"filters"`
	Investment InvestmentCriteria `json:"investmentCriteria"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
}

// Normalize fills paging defaults and rejects inverted ranges.
func (s *ListingSearch) Normalize(defaultPageSize int) error {
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	if s.Page < 1 {
		s.Page = 1
	}
	if s.PageSize <= 0 {
		s.PageSize = defaultPageSize
	}
	if s.PageSize > MaxPageSize {
		s.PageSize = MaxPageSize
	}

	for name, r := range map[string]Range{
		"bedrooms":      s.Filters.Bedrooms,
		"bathrooms":     s.Filters.Bathrooms,
		"price":         s.Filters.Price,
		"squareFootage": s.Filters.SquareFootage,
		"yearBuilt":     s.Filters.YearBuilt,
	} {
		if r.Min < 0 || r.Max < 0 {
			return fmt.Errorf("%s: bounds must not be negative", name)
		}
		if r.Min > 0 && r.Max > 0 && r.Min > r.Max {
			return fmt.Errorf("%s: min %v exceeds max %v", name, r.Min, r.Max)
		}
	}
	return nil
}

func (s ListingSearch) Offset() int {
	return (s.Page - 1) * s.PageSize
}

type ListingPage struct {
	Properties []Listing `json:"properties"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
}

// TotalPagesFor is ceil(total/pageSize).
func TotalPagesFor(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
