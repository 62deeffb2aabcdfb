package rentestimate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackRent(t *testing.T) {
	tests := []struct {
		name     string
		snapshot PropertySnapshot
		expected float64
	}{
		{
			name:     "baseline single family",
			snapshot: PropertySnapshot{PropertyType: TypeSingleFamily, Bedrooms: 2, Bathrooms: 1, SquareFootage: 1200},
			expected: 1500,
		},
		{
			name:     "larger single family",
			snapshot: PropertySnapshot{PropertyType: TypeSingleFamily, Bedrooms: 3, Bathrooms: 2, SquareFootage: 1500},
			expected: 2300,
		},
		{
			name:     "small condo",
			snapshot: PropertySnapshot{PropertyType: TypeCondo, Bedrooms: 1, Bathrooms: 1, SquareFootage: 700},
			expected: 350,
		},
		{
			name:     "apartment",
			snapshot: PropertySnapshot{PropertyType: TypeApartment, Bedrooms: 2, Bathrooms: 1, SquareFootage: 1000},
			expected: 800,
		},
		{
			name:     "unknown type uses default",
			snapshot: PropertySnapshot{PropertyType: "TOWNHOUSE", Bedrooms: 2, Bathrooms: 1, SquareFootage: 1200},
			expected: 1200,
		},
		{
			name: "blended with value estimate",
			snapshot: PropertySnapshot{
				PropertyType: TypeSingleFamily, Bedrooms: 3, Bathrooms: 2, SquareFootage: 1500,
				ValueEstimate: ptr(300000),
			},
			expected: 2150,
		},
		{
			name: "half dollar rounds up",
			snapshot: PropertySnapshot{
				PropertyType: TypeMultiFamily, Bedrooms: 2, Bathrooms: 1, SquareFootage: 1201,
			},
			expected: 1202,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FallbackRent(tt.snapshot))
		})
	}
}

func TestDistanceMiles(t *testing.T) {
	nyc := [2]float64{40.7128, -74.0060}
	la := [2]float64{34.0522, -118.2437}

	assert.InDelta(t, 2445.59, DistanceMiles(nyc[0], nyc[1], la[0], la[1]), 0.01)
	assert.Equal(t, DistanceMiles(nyc[0], nyc[1], la[0], la[1]), DistanceMiles(la[0], la[1], nyc[0], nyc[1]))
	assert.Equal(t, 0.0, DistanceMiles(nyc[0], nyc[1], nyc[0], nyc[1]))

	// the search box half-width is roughly half a mile
	assert.InDelta(t, 0.5, DistanceMiles(30.2672, -97.7431, 30.2672+SearchBoxDegrees, -97.7431), 0.1)

	d := DistanceMiles(30.2672, -97.7431, 30.2701, -97.7402)
	assert.Equal(t, d, math.Round(d*100)/100)
}

func TestComparableQueryMatches(t *testing.T) {
	q, ok := NewComparableQuery(subject())
	assert.True(t, ok)

	assert.True(t, q.Matches(comp("ok", 2000, 0.001)))

	edge := comp("edge", 2000, SearchBoxDegrees/2)
	edge.Bedrooms = 4
	edge.SquareFootage = 1800
	assert.True(t, q.Matches(edge))

	tooFar := comp("far", 2000, 0.01)
	assert.False(t, q.Matches(tooFar))

	_, ok = NewComparableQuery(PropertySnapshot{})
	assert.False(t, ok)
}
