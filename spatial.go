package zipsearch

import (
	"fmt"
	"math"
	"sort"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/umahmood/haversine"
)

// defaultCellLevel determines the granularity of the S2 spatial grid.
//
// Level 7 cells are roughly 80km across at the equator, which keeps the
// candidate set small for typical radius searches (the engine default is
// 25 miles) without creating an excessive number of cells. The level is
// tunable via WithCellLevel.
const defaultCellLevel = 7

// earthRadiusMiles is the mean Earth radius used to convert a search
// radius in miles to an angle on the unit sphere.
const earthRadiusMiles = 3958.8

// covererMaxCells caps the covering size hint for a search disc. MinLevel
// can force the coverer above this for very large radii, which keeps the
// search correct at the cost of more candidate cells.
const covererMaxCells = 256

// spatialGrid buckets every record with a coordinate pair into exactly one
// fixed-level S2 cell. Records lacking coordinates are excluded entirely
// and can never match a radius query.
type spatialGrid struct {
	level int
	cells map[s2.CellID][]int
}

func buildSpatialGrid(records []ZipcodeRecord, level int) *spatialGrid {
	g := &spatialGrid{
		level: level,
		cells: make(map[s2.CellID][]int),
	}
	for id, r := range records {
		lat, lng, ok := r.Coordinates()
		if !ok {
			continue
		}
		ll := s2.LatLngFromDegrees(lat, lng)
		cell := s2.CellIDFromLatLng(ll).Parent(level)
		g.cells[cell] = append(g.cells[cell], id)
	}
	return g
}

// spatialMatch pairs a record id with its great-circle distance in miles
// from the query point.
type spatialMatch struct {
	id       int
	distance float64
}

// validateSearchDisc rejects invalid query points and radii before any
// index work.
func validateSearchDisc(lat, lng, radius float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return fmt.Errorf("%w: (%v, %v)", ErrInvalidCoordinates, lat, lng)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return fmt.Errorf("%w: (%v, %v)", ErrInvalidCoordinates, lat, lng)
	}
	if math.IsNaN(radius) || radius < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeRadius, radius)
	}
	return nil
}

// search returns the ids of all records within radius miles of the query
// point, sorted ascending by distance with ties broken by ascending
// zipcode. A positive limit truncates the sorted result.
//
// Candidates are gathered from the grid cells intersecting the search
// disc, then filtered by exact haversine distance.
func (g *spatialGrid) search(store *recordStore, lat, lng, radius float64, limit int) ([]spatialMatch, error) {
	if err := validateSearchDisc(lat, lng, radius); err != nil {
		return nil, err
	}

	center := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lng))
	disc := s2.CapFromCenterAngle(center, s1.Angle(radius/earthRadiusMiles))
	coverer := &s2.RegionCoverer{
		MinLevel: g.level,
		MaxLevel: g.level,
		MaxCells: covererMaxCells,
	}

	origin := haversine.Coord{Lat: lat, Lon: lng}
	var matches []spatialMatch
	for _, cell := range coverer.Covering(disc) {
		for _, id := range g.cells[cell] {
			rlat, rlng, _ := store.record(id).Coordinates()
			mi, _ := haversine.Distance(origin, haversine.Coord{Lat: rlat, Lon: rlng})
			if mi <= radius {
				matches = append(matches, spatialMatch{id: id, distance: mi})
			}
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return store.record(matches[i].id).Zipcode < store.record(matches[j].id).Zipcode
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}
