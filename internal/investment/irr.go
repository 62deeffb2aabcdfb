package investment

import "math"

const (
	irrInitialGuess  = 0.10
	irrMaxIterations = 100
	irrTolerance     = 1e-4
	// rates at or below -100% make the discount factor undefined
	irrLowerBound = -0.99
	irrUpperBound = 1e6
)

// bracket probes for a sign change of NPV.
var irrProbeRates = []float64{irrLowerBound, -0.5, -0.2, 0, 0.1, 0.25, 0.5, 1, 2, 5, 10, 100}

// NPV discounts cashFlows at rate (a fraction, not a percentage). cashFlows[0]
// is undiscounted.
func NPV(rate float64, cashFlows []float64) float64 {
	v, _ := npvWithDerivative(rate, cashFlows)
	return v
}

func npvWithDerivative(rate float64, cashFlows []float64) (v, dv float64) {
	base := 1 + rate
	discount := 1.0
	for t, cf := range cashFlows {
		v += cf / discount
		if t > 0 {
			dv -= float64(t) * cf / (discount * base)
		}
		discount *= base
	}
	return v, dv
}

// IRR solves NPV(r) = 0 with Newton-Raphson starting at 10%, falling back to
// bisection whenever a Newton step leaves the bracketing interval. The total
// iteration budget is shared between both methods. A result that misses the
// tolerance is returned with Converged=false and the best rate seen.
func IRR(cashFlows []float64) IRRResult {
	if len(cashFlows) < 2 {
		return IRRResult{Rate: irrInitialGuess * 100, NPV: sum(cashFlows)}
	}

	lo, hi, bracketed := bracketIRR(cashFlows)
	var loPositive bool
	if bracketed {
		loPositive = NPV(lo, cashFlows) > 0
	}

	r := irrInitialGuess
	if bracketed && (r <= lo || r >= hi) {
		r = (lo + hi) / 2
	}

	best := IRRResult{Rate: r * 100, NPV: math.Inf(1)}
	for i := 1; i <= irrMaxIterations; i++ {
		v, dv := npvWithDerivative(r, cashFlows)
		if math.Abs(v) < math.Abs(best.NPV) {
			best.Rate, best.NPV = r*100, v
		}
		best.Iterations = i

		if math.Abs(v) < irrTolerance {
			best.Rate, best.NPV, best.Converged = r*100, v, true
			return best
		}

		if bracketed {
			if (v > 0) == loPositive {
				lo = r
			} else {
				hi = r
			}
		}

		next := r - v/dv
		outside := dv == 0 || math.IsNaN(next) || next <= irrLowerBound || next >= irrUpperBound
		switch {
		case bracketed && (outside || next <= lo || next >= hi):
			next = (lo + hi) / 2
		case outside && next > r:
			next = (r + irrUpperBound) / 2
		case outside:
			next = (r + irrLowerBound) / 2
		}
		r = next
	}

	return best
}

// bracketIRR returns the first adjacent pair of probe rates whose NPVs
// differ in sign.
func bracketIRR(cashFlows []float64) (lo, hi float64, ok bool) {
	prev := NPV(irrProbeRates[0], cashFlows)
	for i := 1; i < len(irrProbeRates); i++ {
		cur := NPV(irrProbeRates[i], cashFlows)
		if (prev > 0) != (cur > 0) {
			return irrProbeRates[i-1], irrProbeRates[i], true
		}
		prev = cur
	}
	return 0, 0, false
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
