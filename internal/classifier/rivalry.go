package classifier

import "strings"

// RivalryTable maps team pairs to a rivalry intensity in [0,1]. Lookups are
// symmetric and case-insensitive.
type RivalryTable map[string]float64

// pairKey builds the canonical lookup key for a pair of teams.
func pairKey(a, b string) string {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

// NewRivalryTable builds a table from (teamA, teamB, intensity) entries
// keyed as "teamA|teamB" in any order.
func NewRivalryTable(entries map[[2]string]float64) RivalryTable {
	t := make(RivalryTable, len(entries))
	for pair, intensity := range entries {
		t[pairKey(pair[0], pair[1])] = intensity
	}
	return t
}

// Intensity returns the rivalry intensity for a pair, zero when untracked.
func (t RivalryTable) Intensity(a, b string) float64 {
	if t == nil {
		return 0
	}
	return t[pairKey(a, b)]
}

// Set records an intensity for a pair.
func (t RivalryTable) Set(a, b string, intensity float64) {
	t[pairKey(a, b)] = intensity
}
