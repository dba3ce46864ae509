package convert

import "strings"

// IntensityRule maps a pace phrase to a 1-7 effort level.
type IntensityRule struct {
	Phrase string
	Level  int
}

// DefaultIntensity is returned when no table phrase occurs in the text.
const DefaultIntensity = 2

// DefaultIntensityTable returns the stock phrase table. Order is
// significant: lookup is first hit over the slice, so when two phrases
// overlap ("marathon pace" inside "half marathon pace") the earlier entry
// wins. Callers may pass their own table to New to change the vocabulary.
func DefaultIntensityTable() []IntensityRule {
	return []IntensityRule{
		{"easy", 1},
		{"moderate", 2},
		{"steady", 3},
		{"tempo", 4},
		{"threshold", 5},
		{"interval", 6},
		{"vo2max", 7},
		{"race pace", 4},
		{"marathon pace", 4},
		{"half marathon pace", 5},
		{"10k pace", 6},
		{"5k pace", 7},
	}
}

// ResolveIntensity scans the table in order and returns the level of the
// first phrase found as a substring of text. It never fails: unknown
// vocabulary degrades to DefaultIntensity.
func ResolveIntensity(table []IntensityRule, text string) int {
	lower := strings.ToLower(text)
	for _, r := range table {
		if strings.Contains(lower, r.Phrase) {
			return r.Level
		}
	}
	return DefaultIntensity
}
