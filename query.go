package zipsearch

import "fmt"

// Query is a structured lookup request with optional fields. When several
// identifying fields are supplied, the earliest in this precedence order
// wins as the primary index: Zipcode, then (City, State), then
// (Lat, Lng, Radius), then Prefix, then State alone. PopulationLower and
// PopulationUpper act as post-filters over the primary sequence, and
// Returns truncates the filtered result.
//
// Lat, Lng and Radius are pointers because zero is a valid value for each.
// A coordinate query without a radius uses the engine's default radius.
type Query struct {
	Zipcode string
	City    string
	State   string
	Lat     *float64
	Lng     *float64
	Radius  *float64
	Prefix  string

	PopulationLower *int
	PopulationUpper *int
	Returns         int
}

// Search dispatches a structured query to the right index, applies the
// population filters in primary-index order, and truncates to Returns
// last. Supplying no identifying field at all is a validation error;
// an empty result is not.
func (e *Engine) Search(q Query) ([]ZipcodeRecord, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if q.Radius != nil {
		if q.Lat == nil || q.Lng == nil {
			return nil, ErrRadiusWithoutPoint
		}
		if *q.Radius < 0 {
			return nil, fmt.Errorf("%w: %v", ErrNegativeRadius, *q.Radius)
		}
	}
	if (q.Lat == nil) != (q.Lng == nil) {
		return nil, fmt.Errorf("%w: lat and lng must be supplied together", ErrInvalidQuery)
	}

	ids, err := e.primaryIDs(q)
	if err != nil {
		return nil, err
	}
	ids = e.filterPopulation(ids, q.PopulationLower, q.PopulationUpper)
	if q.Returns > 0 && len(ids) > q.Returns {
		ids = ids[:q.Returns]
	}
	return e.collect(ids), nil
}

// primaryIDs resolves the primary index for a query and returns its
// ordered candidate ids.
func (e *Engine) primaryIDs(q Query) ([]int, error) {
	switch {
	case q.Zipcode != "":
		if id, ok := e.store.lookup(normalizeZipcode(q.Zipcode)); ok {
			return []int{id}, nil
		}
		return nil, nil
	case q.City != "" && q.State != "":
		return e.cities.byCityAndState(q.City, q.State), nil
	case q.Lat != nil && q.Lng != nil:
		radius := e.cfg.DefaultRadius
		if q.Radius != nil {
			radius = *q.Radius
		}
		matches, err := e.grid.search(e.store, *q.Lat, *q.Lng, radius, 0)
		if err != nil {
			return nil, err
		}
		ids := make([]int, len(matches))
		for i, m := range matches {
			ids[i] = m.id
		}
		return ids, nil
	case q.Prefix != "":
		return e.prefixes.byPrefix(q.Prefix), nil
	case q.State != "":
		return e.cities.byState(q.State), nil
	default:
		return nil, ErrInvalidQuery
	}
}

// filterPopulation keeps ids whose record has a population inside the
// requested band, preserving the input order. Records without a
// population value never satisfy a band.
func (e *Engine) filterPopulation(ids []int, lower, upper *int) []int {
	if lower == nil && upper == nil {
		return ids
	}
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		pop := e.store.record(id).Population
		if pop == nil {
			continue
		}
		if lower != nil && *pop < *lower {
			continue
		}
		if upper != nil && *pop > *upper {
			continue
		}
		out = append(out, id)
	}
	return out
}
