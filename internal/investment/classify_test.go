package investment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyProperty(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		rent     float64
		sqft     float64
		rentPct  float64
		sqftPct  float64
		rentRule bool
		sqftRule bool
	}{
		{
			name: "typical suburban listing", price: 300000, rent: 2500, sqft: 1800,
			rentPct: 0.8333, sqftPct: 0.6,
		},
		{
			name: "exactly one percent", price: 100000, rent: 1000, sqft: 1000,
			rentPct: 1, sqftPct: 1, rentRule: true, sqftRule: true,
		},
		{
			name: "just below one percent", price: 100000, rent: 999.999, sqft: 999.999,
			rentPct: 0.999999, sqftPct: 0.999999,
		},
		{
			name: "rent rule only", price: 80000, rent: 1200, sqft: 700,
			rentPct: 1.5, sqftPct: 0.875, rentRule: true,
		},
		{
			name: "sqft rule only", price: 120000, rent: 900, sqft: 1500,
			rentPct: 0.75, sqftPct: 1.25, sqftRule: true,
		},
		{
			name: "missing rent", price: 150000, rent: 0, sqft: 1600,
			rentPct: 0, sqftPct: 1.0667, sqftRule: true,
		},
		{name: "zero price", price: 0, rent: 1000, sqft: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ClassifyProperty(tt.price, tt.rent, tt.sqft)

			assert.InDelta(t, tt.rentPct, c.RentToValueRatio, 1e-4)
			assert.InDelta(t, tt.sqftPct, c.SqftToValueRatio, 1e-4)
			assert.Equal(t, tt.rentRule, c.MeetsRentRule)
			assert.Equal(t, tt.sqftRule, c.MeetsSqftRule)
			assert.Equal(t, tt.rentRule && tt.sqftRule, c.MeetsCombinedRules)
		})
	}
}
