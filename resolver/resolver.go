package resolver

import (
	"fmt"
	"strings"

	"github.com/agext/levenshtein"
)

// DefaultFuzzyThreshold is the normalized edit similarity a token must
// exceed before it is accepted as a station name.
const DefaultFuzzyThreshold = 0.70

var simParams = levenshtein.NewParams()

// AmbiguousQueryError reports that a query resolved fewer than the two
// distinct stations a journey needs. Candidates holds what was found so
// the caller can ask a clarifying question instead of guessing.
type AmbiguousQueryError struct {
	Candidates []string
}

func (e *AmbiguousQueryError) Error() string {
	switch len(e.Candidates) {
	case 0:
		return "could not identify any station; origin and destination are both missing"
	case 1:
		return fmt.Sprintf("only identified %q; destination is missing", e.Candidates[0])
	default:
		return "query is ambiguous"
	}
}

// Resolver maps free text onto canonical station names.
type Resolver struct {
	names     []string // canonical names in feed store order
	lower     []string
	threshold float64
}

// New builds a resolver over the canonical station name list. The list
// order is the match order for the exact pass.
func New(stationNames []string, threshold float64) *Resolver {
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}
	lower := make([]string, len(stationNames))
	for i, n := range stationNames {
		lower[i] = strings.ToLower(n)
	}
	return &Resolver{names: stationNames, lower: lower, threshold: threshold}
}

// Candidates extracts up to two distinct canonical station names from free
// text: an exact case-insensitive substring pass in list order first, then
// a token-level fuzzy pass for whatever is still missing. A name matched
// twice in the text still counts once.
func (r *Resolver) Candidates(freeText string) []string {
	text := strings.ToLower(freeText)
	var found []string
	seen := map[string]struct{}{}
	add := func(name string) bool {
		if _, dup := seen[name]; dup {
			return false
		}
		seen[name] = struct{}{}
		found = append(found, name)
		return true
	}

	for i, ln := range r.lower {
		if ln != "" && strings.Contains(text, ln) {
			if add(r.names[i]) && len(found) == 2 {
				return found
			}
		}
	}

	for _, token := range strings.Fields(text) {
		best, bestSim := -1, 0.0
		for i, ln := range r.lower {
			if sim := levenshtein.Similarity(token, ln, simParams); sim > bestSim {
				best, bestSim = i, sim
			}
		}
		if best >= 0 && bestSim > r.threshold {
			if add(r.names[best]) && len(found) == 2 {
				break
			}
		}
	}
	return found
}

// Resolve returns the (from, to) station pair named in the free text. With
// fewer than two distinct stations it returns *AmbiguousQueryError rather
// than guessing endpoints.
func (r *Resolver) Resolve(freeText string) (from, to string, err error) {
	found := r.Candidates(freeText)
	if len(found) < 2 {
		return "", "", &AmbiguousQueryError{Candidates: found}
	}
	return found[0], found[1], nil
}
