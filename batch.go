package zipsearch

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// CityState is one (city, state) pair in a batch lookup.
type CityState struct {
	City  string
	State string
}

// BatchCityStateLookup performs one ByCityAndState lookup per unique pair
// in the input and returns a mapping from each unique pair to its result
// sequence, so repeated pairs share a single computation. Every value in
// the mapping equals what ByCityAndState would return for that pair.
//
// Unique pairs are partitioned into chunks dispatched across worker
// goroutines; results are merged only after all chunks complete, so no
// partial state is ever observable. Cancellation is checked between chunk
// boundaries: a cancelled context fails the whole call and discards any
// finished chunks.
func (e *Engine) BatchCityStateLookup(ctx context.Context, pairs []CityState) (map[CityState][]ZipcodeRecord, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}

	seen := make(map[CityState]bool, len(pairs))
	unique := make([]CityState, 0, len(pairs))
	for _, p := range pairs {
		if !seen[p] {
			seen[p] = true
			unique = append(unique, p)
		}
	}
	if len(unique) == 0 {
		return map[CityState][]ZipcodeRecord{}, nil
	}

	workers := e.cfg.BatchWorkers
	if workers < 1 {
		workers = 1
	}
	if workers > len(unique) {
		workers = len(unique)
	}
	chunkSize := (len(unique) + workers - 1) / workers

	var mu sync.Mutex
	results := make(map[CityState][]ZipcodeRecord, len(unique))

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(unique); start += chunkSize {
		chunk := unique[start:min(start+chunkSize, len(unique))]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("batch lookup cancelled: %w", err)
			}
			local := make(map[CityState][]ZipcodeRecord, len(chunk))
			for _, p := range chunk {
				local[p] = e.collect(e.cities.byCityAndState(p.City, p.State))
			}
			mu.Lock()
			for p, recs := range local {
				results[p] = recs
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
