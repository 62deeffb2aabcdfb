package investment

// RuleThresholdPercent is the 1% rule threshold for both ratios.
const RuleThresholdPercent = 1.0

// Classification is the 1% rule outcome for one property snapshot.
type Classification struct {
	RentToValueRatio   float64 `json:"rentToValueRatio"`
	SqftToValueRatio   float64 `json:"sqftToValueRatio"`
	MeetsRentRule      bool    `json:"meetsRentRule"`
	MeetsSqftRule      bool    `json:"meetsSqftRule"`
	MeetsCombinedRules bool    `json:"meetsCombinedRules"`
}

// ClassifyProperty computes both ratios as percentages of price. A
// non-positive price yields zero ratios and no rule met.
func ClassifyProperty(price, monthlyRent, squareFootage float64) Classification {
	if price <= 0 {
		return Classification{}
	}

	c := Classification{
		RentToValueRatio: monthlyRent * 100 / price,
		SqftToValueRatio: squareFootage * 100 / price,
	}
	c.MeetsRentRule = c.RentToValueRatio >= RuleThresholdPercent
	c.MeetsSqftRule = c.SqftToValueRatio >= RuleThresholdPercent
	c.MeetsCombinedRules = c.MeetsRentRule && c.MeetsSqftRule
	return c
}
