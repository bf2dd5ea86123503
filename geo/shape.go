package geo

import (
	"sync"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// Shape answers point-in-department queries for one multipolygon.
type Shape struct {
	once   sync.Once
	poly   *s2.Polygon
	points orb.MultiPolygon
}

func NewShape(mp orb.MultiPolygon) *Shape {
	return &Shape{points: mp}
}

func (s *Shape) build() {
	loops := []*s2.Loop{}
	for _, poly := range s.points {
		for _, ring := range poly {
			pts := make([]s2.Point, 0, len(ring))
			for i, p := range ring {
				// golang/geo does not like having the loop end in the same point
				if i == len(ring)-1 && i > 0 && p == ring[0] {
					continue
				}
				pts = append(pts, s2.PointFromLatLng(s2.LatLngFromDegrees(p[1], p[0])))
			}
			if len(pts) < 3 {
				continue
			}
			loop := s2.LoopFromPoints(pts)
			// Winding in the source file varies; a normalized loop covers at
			// most half the sphere, which every department does.
			loop.Normalize()
			loops = append(loops, loop)
		}
	}
	s.poly = s2.PolygonFromLoops(loops)
}

// ContainsPoint reports whether the department contains the given point.
func (s *Shape) ContainsPoint(lat, long float64) bool {
	s.once.Do(s.build)
	return s.poly.ContainsPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(lat, long)))
}
