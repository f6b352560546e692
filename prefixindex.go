package zipsearch

import "sort"

// prefixSentinel is one past '9', so prefix+sentinel is lexicographically
// greater than every zipcode sharing the prefix.
const prefixSentinel = string(rune('9' + 1))

// prefixEntry pairs a zipcode with its record id.
type prefixEntry struct {
	zipcode string
	id      int
}

// prefixIndex is a lexicographically sorted array of (zipcode, id) pairs.
// Prefix lookups locate the contiguous matching range with two binary
// searches, O(log N + k) for k matches.
type prefixIndex struct {
	entries []prefixEntry
}

func buildPrefixIndex(records []ZipcodeRecord) *prefixIndex {
	idx := &prefixIndex{entries: make([]prefixEntry, len(records))}
	for id, r := range records {
		idx.entries[id] = prefixEntry{zipcode: r.Zipcode, id: id}
	}
	sort.Slice(idx.entries, func(i, j int) bool {
		return idx.entries[i].zipcode < idx.entries[j].zipcode
	})
	return idx
}

// byPrefix returns the ids of all zipcodes starting with prefix, in
// ascending zipcode order. The empty prefix matches the whole catalog.
func (idx *prefixIndex) byPrefix(prefix string) []int {
	lo := sort.Search(len(idx.entries), func(i int) bool {
		return idx.entries[i].zipcode >= prefix
	})
	upper := prefix + prefixSentinel
	hi := sort.Search(len(idx.entries), func(i int) bool {
		return idx.entries[i].zipcode >= upper
	})
	if lo >= hi {
		return nil
	}
	ids := make([]int, 0, hi-lo)
	for _, e := range idx.entries[lo:hi] {
		ids = append(ids, e.id)
	}
	return ids
}
