package report

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortNames returns the names in collation order. Competitor names are
// arbitrary Unicode, so reports sort them with a real collator rather than
// by code point; the order is deterministic across runs, which keeps
// successive audit reports comparable.
func SortNames(names []string) []string {
	sorted := slices.Clone(names)
	collate.New(language.Und).SortStrings(sorted)
	return sorted
}

// SortedKeys returns the keys of a name set in collation order.
func SortedKeys(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	return SortNames(names)
}
