// internal/rentestimate/estimator.go
package rentestimate

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// Confidence and weighting heuristics. These are product choices, kept stable
// so estimates stay comparable over time.
const (
	ProviderConfidence          = 0.90
	ProviderConfidenceFewComps  = 0.85
	ProviderConfidenceManyComps = 0.95
	manyComps                   = 5
	someComps                   = 3

	roomSimilaritySpan   = 3.0
	distanceDecay        = 5.0
	baseCustomConfidence = 0.5
	perCompConfidence    = 1.0 / 20
	maxCustomConfidence  = 0.9
	nearBonus            = 0.2
	nearMiles            = 0.1
	closeBonus           = 0.1
	closeMiles           = 0.25

	FallbackConfidence = 0.6
)

// Estimator produces rent estimates. The lookup is queried at most once per
// estimate and may be nil, in which case no comparables are ever found.
type Estimator struct {
	lookup ComparablesLookup
}

func NewEstimator(lookup ComparablesLookup) *Estimator {
	return &Estimator{lookup: lookup}
}

// Estimate uses the provider rent when present, else a weighted average of
// comparables, else the rule-of-thumb fallback. Lookup errors are returned
// wrapped; no partial estimate is produced.
func (e *Estimator) Estimate(ctx context.Context, p PropertySnapshot) (RentEstimate, error) {
	comps, err := e.Comparables(ctx, p)
	if err != nil {
		return RentEstimate{}, err
	}

	if rent, ok := p.providerRent(); ok {
		return RentEstimate{
			EstimatedRent:   rent,
			Source:          SourceProvider,
			ConfidenceScore: providerConfidence(len(comps)),
			Comparables:     comps,
		}, nil
	}

	if len(comps) > 0 {
		return RentEstimate{
			EstimatedRent:   WeightedRent(p, comps),
			Source:          SourceCustom,
			ConfidenceScore: customConfidence(comps),
			Comparables:     comps,
		}, nil
	}

	return RentEstimate{
		EstimatedRent:   FallbackRent(p),
		Source:          SourceCustom,
		ConfidenceScore: FallbackConfidence,
		Comparables:     []ComparableProperty{},
	}, nil
}

// Comparables queries the lookup, re-applies the range filter, annotates each
// result with its distance and returns at most MaxComparables ordered by
// ascending distance.
func (e *Estimator) Comparables(ctx context.Context, p PropertySnapshot) ([]ComparableProperty, error) {
	q, ok := NewComparableQuery(p)
	if !ok || e.lookup == nil {
		return []ComparableProperty{}, nil
	}

	listings, err := e.lookup.FindComparables(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("find comparables: %w", err)
	}

	comps := make([]ComparableProperty, 0, len(listings))
	for _, l := range listings {
		if !q.Matches(l) {
			continue
		}
		comps = append(comps, ComparableProperty{
			ID:            l.ID,
			Address:       l.Address,
			Rent:          l.Rent,
			Bedrooms:      l.Bedrooms,
			Bathrooms:     l.Bathrooms,
			SquareFootage: l.SquareFootage,
			DistanceMiles: DistanceMiles(*p.Latitude, *p.Longitude, l.Latitude, l.Longitude),
		})
	}

	sort.SliceStable(comps, func(i, j int) bool {
		return comps[i].DistanceMiles < comps[j].DistanceMiles
	})
	if len(comps) > MaxComparables {
		comps = comps[:MaxComparables]
	}
	return comps, nil
}

func providerConfidence(n int) float64 {
	switch {
	case n == 0:
		return ProviderConfidence
	case n >= manyComps:
		return ProviderConfidenceManyComps
	case n >= someComps:
		return ProviderConfidence
	default:
		return ProviderConfidenceFewComps
	}
}

// WeightedRent averages comparable rents weighted by similarity to p and by
// proximity. Negative similarities count as zero. The result is rounded to
// the dollar and stays within the range of comparable rents.
func WeightedRent(p PropertySnapshot, comps []ComparableProperty) float64 {
	if len(comps) == 0 {
		return 0
	}

	var totalWeight, weightedSum, plainSum float64
	minRent, maxRent := math.Inf(1), math.Inf(-1)
	for _, c := range comps {
		w := similarity(p, c) / (1 + distanceDecay*c.DistanceMiles)
		totalWeight += w
		weightedSum += c.Rent * w
		plainSum += c.Rent
		minRent = math.Min(minRent, c.Rent)
		maxRent = math.Max(maxRent, c.Rent)
	}

	avg := plainSum / float64(len(comps))
	if totalWeight > 0 {
		avg = weightedSum / totalWeight
	}

	return math.Max(minRent, math.Min(maxRent, roundDollars(avg)))
}

func similarity(p PropertySnapshot, c ComparableProperty) float64 {
	bed := 1 - math.Abs(p.Bedrooms-c.Bedrooms)/roomSimilaritySpan
	bath := 1 - math.Abs(p.Bathrooms-c.Bathrooms)/roomSimilaritySpan

	var sqft float64
	if p.SquareFootage > 0 {
		sqft = 1 - math.Abs(p.SquareFootage-c.SquareFootage)/p.SquareFootage
	}

	return (math.Max(0, bed) + math.Max(0, bath) + math.Max(0, sqft)) / 3
}

func customConfidence(comps []ComparableProperty) float64 {
	var totalDistance float64
	for _, c := range comps {
		totalDistance += c.DistanceMiles
	}
	avgDistance := totalDistance / float64(len(comps))

	confidence := baseCustomConfidence + float64(len(comps))*perCompConfidence
	switch {
	case avgDistance < nearMiles:
		confidence += nearBonus
	case avgDistance < closeMiles:
		confidence += closeBonus
	}
	return math.Min(confidence, maxCustomConfidence)
}
