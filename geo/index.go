package geo

import (
	"github.com/paulmach/orb"
	"github.com/tidwall/rtree"
)

// Index finds the department under a lon/lat point. Bounding boxes narrow the
// search down before the exact polygon test.
type Index struct {
	tr     rtree.RTreeG[int]
	shapes []*Shape
}

// NewIndex indexes the given shapes; Locate returns positions in this slice.
func NewIndex(shapes []orb.MultiPolygon) *Index {
	idx := &Index{shapes: make([]*Shape, len(shapes))}
	for i, mp := range shapes {
		idx.shapes[i] = NewShape(mp)
		b := mp.Bound()
		idx.tr.Insert([2]float64{b.Min.X(), b.Min.Y()}, [2]float64{b.Max.X(), b.Max.Y()}, i)
	}
	return idx
}

// Len returns the number of indexed shapes.
func (idx *Index) Len() int {
	return len(idx.shapes)
}

// Locate returns the position of the shape containing p (lon, lat), or -1.
// When shapes overlap the one added last wins, matching draw order.
func (idx *Index) Locate(p orb.Point) int {
	found := -1
	pt := [2]float64{p.X(), p.Y()}
	idx.tr.Search(pt, pt, func(_, _ [2]float64, i int) bool {
		if i > found && idx.shapes[i].ContainsPoint(p.Y(), p.X()) {
			found = i
		}
		return true
	})
	return found
}
