// Package geo projects department shapes onto the drawing surface and answers
// "which department is under this point".
package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// Colombia is the geographic point the map is centered on.
var Colombia = orb.Point{-74, 4.5}

// DefaultScale is the Mercator scale that fits Colombia into an 800x750
// surface.
const DefaultScale = 2000

// Mercator is a spherical Mercator projection onto screen coordinates: Scale
// pixels per radian, with Center drawn at Translate. Screen y grows downward.
type Mercator struct {
	Scale     float64
	Center    orb.Point
	Translate orb.Point
}

// NewMercator returns the projection used for the department map on a surface
// of the given size.
func NewMercator(width, height float64) *Mercator {
	return &Mercator{
		Scale:     DefaultScale,
		Center:    Colombia,
		Translate: orb.Point{width / 2, height / 2},
	}
}

// orb's Mercator works in meters on a sphere of this radius.
const mercatorRadius = 20037508.34 / math.Pi

func (m *Mercator) raw(p orb.Point) orb.Point {
	merc := project.Point(p, project.WGS84.ToMercator)
	return orb.Point{merc[0] / mercatorRadius, merc[1] / mercatorRadius}
}

// Project returns the screen position of the lon/lat point p.
func (m *Mercator) Project(p orb.Point) orb.Point {
	r := m.raw(p)
	c := m.raw(m.Center)
	return orb.Point{
		m.Translate[0] + m.Scale*(r[0]-c[0]),
		m.Translate[1] - m.Scale*(r[1]-c[1]),
	}
}

// Invert returns the lon/lat point drawn at screen position p.
func (m *Mercator) Invert(p orb.Point) orb.Point {
	c := m.raw(m.Center)
	x := (p[0]-m.Translate[0])/m.Scale + c[0]
	y := (m.Translate[1]-p[1])/m.Scale + c[1]
	return project.Point(orb.Point{x * mercatorRadius, y * mercatorRadius}, project.Mercator.ToWGS84)
}

// Projection returns m as an orb.Projection.
func (m *Mercator) Projection() orb.Projection {
	return m.Project
}

// ProjectMultiPolygon returns a projected copy of mp. mp is not modified.
func (m *Mercator) ProjectMultiPolygon(mp orb.MultiPolygon) orb.MultiPolygon {
	return project.MultiPolygon(mp.Clone(), m.Projection())
}
