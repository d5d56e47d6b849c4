package linkcheck

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Suggest returns the route closest to target by edit distance over
// characters, or "" when nothing is close enough to be a plausible typo.
// Ties go to the earlier route.
func Suggest(target string, routes []string) string {
	limit := max(2, utf8.RuneCountInString(target)/3)
	best, bestDist := "", limit+1
	for _, r := range routes {
		d := levenshtein.ComputeDistance(target, r)
		if d < bestDist {
			best, bestDist = r, d
		}
	}
	return best
}
