package zipsearch

import (
	"sort"

	"github.com/dhconnelly/rtreego"
)

// probeSide is the side length of the degenerate query rectangle used for
// point containment probes. rtreego rejects zero-length rectangles.
const probeSide = 1e-9

// boundsEntry is one record's bounding box in the R-tree. Rectangles are
// stored in (lng, lat) order to match the coordinate plane.
type boundsEntry struct {
	rect rtreego.Rect
	id   int
}

func (e *boundsEntry) Bounds() rtreego.Rect {
	return e.rect
}

// boundsIndex answers which records' stored bounding boxes contain a
// point. Only records carrying all four bounds edges participate.
type boundsIndex struct {
	tree *rtreego.Rtree
}

func buildBoundsIndex(records []ZipcodeRecord) (*boundsIndex, error) {
	idx := &boundsIndex{tree: rtreego.NewTree(2, 2, 32)}
	for id, r := range records {
		if !r.hasBounds() {
			continue
		}
		rect, err := rtreego.NewRect(
			rtreego.Point{*r.BoundsWest, *r.BoundsSouth},
			[]float64{*r.BoundsEast - *r.BoundsWest, *r.BoundsNorth - *r.BoundsSouth},
		)
		if err != nil {
			return nil, err
		}
		idx.tree.Insert(&boundsEntry{rect: rect, id: id})
	}
	return idx, nil
}

// containing returns the ids of records whose bounding box contains the
// point, in ascending zipcode order.
func (idx *boundsIndex) containing(store *recordStore, lat, lng float64) ([]int, error) {
	probe, err := rtreego.NewRect(rtreego.Point{lng, lat}, []float64{probeSide, probeSide})
	if err != nil {
		return nil, err
	}
	var ids []int
	for _, hit := range idx.tree.SearchIntersect(probe) {
		e := hit.(*boundsEntry)
		r := store.record(e.id)
		if lng >= *r.BoundsWest && lng <= *r.BoundsEast && lat >= *r.BoundsSouth && lat <= *r.BoundsNorth {
			ids = append(ids, e.id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		return store.record(ids[i]).Zipcode < store.record(ids[j]).Zipcode
	})
	return ids, nil
}
