package plan

import (
	"fmt"
	"sort"

	"github.com/agext/levenshtein"
)

// suggest returns the candidate closest to name, or "" when nothing is
// reasonably close.
func suggest(name string, candidates []string) string {
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)

	best, bestDist := "", 3
	for _, c := range sorted {
		if c == name {
			continue
		}
		if d := levenshtein.Distance(name, c, nil); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// didYouMean formats a hint for the closest candidate, if any.
func didYouMean(name string, candidates []string) string {
	if s := suggest(name, candidates); s != "" {
		return fmt.Sprintf(" Did you mean '%s'?", s)
	}
	return ""
}
