// Package matcher finds the known question closest to a free-text query.
package matcher

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Cutoff is the minimum similarity a candidate needs to count as a match.
const Cutoff = 0.6

// Score returns the Ratcliff-Obershelp similarity of a and b in [0, 1].
// Comparison is per character, case- and whitespace-sensitive.
func Score(a, b string) float64 {
	return difflib.NewMatcher(runes(a), runes(b)).Ratio()
}

// BestMatch returns the candidate most similar to query when its score is at
// least Cutoff. Ties go to the earliest candidate. candidates is not modified.
func BestMatch(query string, candidates []string) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}

	q := runes(query)
	best, bestScore := -1, -1.0
	for i, c := range candidates {
		m := difflib.NewMatcher(runes(c), q)
		// RealQuickRatio and QuickRatio are upper bounds on Ratio.
		if m.RealQuickRatio() < Cutoff || m.QuickRatio() < Cutoff {
			continue
		}
		if s := m.Ratio(); s >= Cutoff && s > bestScore {
			best, bestScore = i, s
		}
	}
	if best < 0 {
		return "", false
	}
	return candidates[best], true
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
