package rentestimate

const (
	baselineBedrooms   = 2.0
	baselineBathrooms  = 1.0
	baselineSqft       = 1200.0
	perBedroom         = 200.0
	perBathroom        = 150.0
	perSqft            = 1.50
	annualYieldOfValue = 0.08
	defaultBaseRent    = 1200.0
	valueBlendWeight   = 0.5
)

var baseRentByType = map[string]float64{
	TypeSingleFamily: 1500,
	TypeMultiFamily:  1200,
	TypeCondo:        1300,
	TypeApartment:    1100,
}

// FallbackRent is the rule-of-thumb estimate used when no comparables exist.
func FallbackRent(p PropertySnapshot) float64 {
	rent, ok := baseRentByType[p.PropertyType]
	if !ok {
		rent = defaultBaseRent
	}

	rent += (p.Bedrooms - baselineBedrooms) * perBedroom
	rent += (p.Bathrooms - baselineBathrooms) * perBathroom
	rent += (p.SquareFootage - baselineSqft) * perSqft

	if p.ValueEstimate != nil && *p.ValueEstimate > 0 {
		valueRent := *p.ValueEstimate * annualYieldOfValue / 12
		rent = rent*(1-valueBlendWeight) + valueRent*valueBlendWeight
	}

	return roundDollars(rent)
}
