package rentestimate

const (
	// SearchBoxDegrees is the half-width of the lat/lng search box, about half a mile.
	SearchBoxDegrees = 0.008
	// RoomTolerance is how many bedrooms or bathrooms a comparable may differ by.
	RoomTolerance = 1.0
	// SqftTolerance is the allowed fractional difference in square footage.
	SqftTolerance = 0.2
	// MaxComparables caps the lookup result.
	MaxComparables = 10
)

// ComparableQuery describes the range a comparable must fall in. All bounds
// are inclusive. Stores must also require a positive rent.
type ComparableQuery struct {
	PropertyType string  `json:"propertyType"`
	MinLatitude  float64 `json:"minLatitude"`
	MaxLatitude  float64 `json:"maxLatitude"`
	MinLongitude float64 `json:"minLongitude"`
	MaxLongitude float64 `json:"maxLongitude"`
	MinBedrooms  float64 `json:"minBedrooms"`
	MaxBedrooms  float64 `json:"maxBedrooms"`
	MinBathrooms float64 `json:"minBathrooms"`
	MaxBathrooms float64 `json:"maxBathrooms"`
	MinSqft      float64 `json:"minSqft"`
	MaxSqft      float64 `json:"maxSqft"`
	ExcludeID    string  `json:"excludeId,omitempty"`
	Limit        int     `json:"limit"`
}

// NewComparableQuery builds the search box around p. It returns false when p
// has no coordinates.
func NewComparableQuery(p PropertySnapshot) (ComparableQuery, bool) {
	if !p.hasCoordinates() {
		return ComparableQuery{}, false
	}
	lat, lng := *p.Latitude, *p.Longitude

	return ComparableQuery{
		PropertyType: p.PropertyType,
		MinLatitude:  lat - SearchBoxDegrees,
		MaxLatitude:  lat + SearchBoxDegrees,
		MinLongitude: lng - SearchBoxDegrees,
		MaxLongitude: lng + SearchBoxDegrees,
		MinBedrooms:  p.Bedrooms - RoomTolerance,
		MaxBedrooms:  p.Bedrooms + RoomTolerance,
		MinBathrooms: p.Bathrooms - RoomTolerance,
		MaxBathrooms: p.Bathrooms + RoomTolerance,
		MinSqft:      p.SquareFootage * (1 - SqftTolerance),
		MaxSqft:      p.SquareFootage * (1 + SqftTolerance),
		ExcludeID:    p.ID,
		Limit:        MaxComparables,
	}, true
}

// Matches reports whether c satisfies every bound of q.
func (q ComparableQuery) Matches(c ComparableListing) bool {
	if c.Rent <= 0 || c.PropertyType != q.PropertyType {
		return false
	}
	if q.ExcludeID != "" && c.ID == q.ExcludeID {
		return false
	}
	return within(c.Latitude, q.MinLatitude, q.MaxLatitude) &&
		within(c.Longitude, q.MinLongitude, q.MaxLongitude) &&
		within(c.Bedrooms, q.MinBedrooms, q.MaxBedrooms) &&
		within(c.Bathrooms, q.MinBathrooms, q.MaxBathrooms) &&
		within(c.SquareFootage, q.MinSqft, q.MaxSqft)
}

func within(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}
