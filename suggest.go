package zipsearch

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance caps the edit distance for city suggestions to keep
// the scan over distinct city names cheap.
const maxSuggestDistance = 3

// suggestCities returns the distinct known city names within maxDist edits
// of the input, ordered by ascending distance then name. names must be
// sorted and normalized; the query is normalized before matching.
func suggestCities(names []string, query string, maxDist int) []string {
	query = normalizeCity(query)
	if query == "" {
		return nil
	}
	if maxDist <= 0 || maxDist > maxSuggestDistance {
		maxDist = maxSuggestDistance
	}

	type scored struct {
		name string
		dist int
	}
	var hits []scored
	for _, name := range names {
		d := levenshtein.ComputeDistance(query, name)
		if d <= maxDist {
			hits = append(hits, scored{name: name, dist: d})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].name < hits[j].name
	})

	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}
	return out
}
