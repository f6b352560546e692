package zipsearch

import "sort"

// cityStateKey is a normalized (city, state) pair.
type cityStateKey struct {
	city  string
	state string
}

// cityStateIndex maps normalized (city, state) pairs to ordered record ids.
// Ids within each bucket preserve catalog load order, so repeated queries
// against an unchanged catalog always return the same sequence.
type cityStateIndex struct {
	buckets    map[cityStateKey][]int
	states     map[string][]int    // normalized state -> ids in load order
	cityStates map[string][]string // normalized city -> ascending states
	cityNames  []string            // distinct normalized city names, sorted
}

func buildCityStateIndex(records []ZipcodeRecord) *cityStateIndex {
	idx := &cityStateIndex{
		buckets:    make(map[cityStateKey][]int),
		states:     make(map[string][]int),
		cityStates: make(map[string][]string),
	}
	for id, r := range records {
		state := normalizeState(r.State)
		if state != "" {
			idx.states[state] = append(idx.states[state], id)
		}
		city := normalizeCity(r.MajorCity)
		if city == "" || state == "" {
			continue
		}
		key := cityStateKey{city: city, state: state}
		if _, ok := idx.buckets[key]; !ok {
			idx.cityStates[city] = append(idx.cityStates[city], state)
		}
		idx.buckets[key] = append(idx.buckets[key], id)
	}
	for city, states := range idx.cityStates {
		sort.Strings(states)
		idx.cityNames = append(idx.cityNames, city)
	}
	sort.Strings(idx.cityNames)
	return idx
}

// byCityAndState returns the ids for a (city, state) pair in load order.
// The returned slice is shared index state and must not be mutated.
func (idx *cityStateIndex) byCityAndState(city, state string) []int {
	key := cityStateKey{city: normalizeCity(city), state: normalizeState(state)}
	return idx.buckets[key]
}

// byCity returns the ids for a city across all states, concatenated in
// ascending state order and load order within each state.
func (idx *cityStateIndex) byCity(city string) []int {
	c := normalizeCity(city)
	var ids []int
	for _, state := range idx.cityStates[c] {
		ids = append(ids, idx.buckets[cityStateKey{city: c, state: state}]...)
	}
	return ids
}

// byState returns all ids whose state matches, in load order.
func (idx *cityStateIndex) byState(state string) []int {
	return idx.states[normalizeState(state)]
}
