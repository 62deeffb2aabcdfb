// Package listings persists enriched listings and serves comparable and
// investment searches over them.
package listings

import (
	"context"
	"errors"

	"rental-investment-workers/internal/models"
	"rental-investment-workers/internal/rentestimate"
)

var ErrListingNotFound = errors.New("listing not found")

// Writer stores an enriched listing, replacing any listing with the same zpid.
type Writer interface {
	Upsert(ctx context.Context, l *models.Listing) error
}

// Reader loads a listing by zpid.
type Reader interface {
	GetByZpid(ctx context.Context, zpid string) (*models.Listing, error)
}

// Searcher runs investment searches.
type Searcher interface {
	Search(ctx context.Context, s models.ListingSearch) (*models.ListingPage, error)
}

// Writers writes to every store in order and stops at the first failure.
type Writers []Writer

func (ws Writers) Upsert(ctx context.Context, l *models.Listing) error {
	for _, w := range ws {
		if err := w.Upsert(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

// toComparable converts a stored listing into a comparable. It returns false
// when the listing has no rent or no coordinates.
func toComparable(l *models.Listing) (rentestimate.ComparableListing, bool) {
	rent, _, ok := l.MonthlyRent()
	if !ok || l.Latitude == nil || l.Longitude == nil {
		return rentestimate.ComparableListing{}, false
	}
	return rentestimate.ComparableListing{
		ID:            l.Zpid,
		Address:       l.Address,
		PropertyType:  l.PropertyType,
		Rent:          rent,
		Bedrooms:      l.Bedrooms,
		Bathrooms:     l.Bathrooms,
		SquareFootage: l.SquareFootage,
		Latitude:      *l.Latitude,
		Longitude:     *l.Longitude,
	}, true
}
