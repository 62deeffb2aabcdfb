// cmd/dealcalc/scenario.go
package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"rental-investment-workers/internal/investment"
)

// loadScenario decodes a TOML scenario into a forecast input. Unknown keys
// are rejected so a misspelled assumption does not silently become zero.
func loadScenario(path string) (investment.ForecastInput, error) {
	var in investment.ForecastInput
	md, err := toml.DecodeFile(path, &in)
	if err != nil {
		return in, fmt.Errorf("read scenario %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return in, fmt.Errorf("scenario %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return in, nil
}
