package mapview

import (
	"github.com/kevinburke/elecciones"
	"github.com/paulmach/orb"
)

// shapeAt returns the shape drawn at surface point (x, y), or nil.
func (v *View) shapeAt(x, y float64) *Shape {
	if v.index == nil {
		return nil
	}
	projected := v.transition.At(v.now()).Invert(orb.Point{x, y})
	i := v.index.Locate(v.proj.Invert(projected))
	if i < 0 {
		return nil
	}
	return v.shapes[i]
}

// Click handles a click at surface point (x, y): a department click sends
// Select, anything else is a background click. Before the departments are
// drawn there is nothing to click and Click does nothing.
func (v *View) Click(x, y float64) {
	if v.dispatcher == nil {
		return
	}
	s := v.shapeAt(x, y)
	if s == nil {
		v.dispatcher.Dispatch(elecciones.DeselectBackground{})
		return
	}
	v.dispatcher.Dispatch(elecciones.Select{Code: s.Feature.Code})
}

// Move handles the pointer moving to surface point (x, y), sending HoverExit
// and HoverEnter as it crosses department borders.
func (v *View) Move(x, y float64) {
	if v.dispatcher == nil {
		return
	}
	s := v.shapeAt(x, y)
	if s == v.hovered {
		return
	}
	v.Leave()
	if s != nil {
		v.hovered = s
		v.dispatcher.Dispatch(elecciones.HoverEnter{Code: s.Feature.Code})
	}
}

// Leave handles the pointer leaving the surface.
func (v *View) Leave() {
	if v.dispatcher == nil || v.hovered == nil {
		return
	}
	code := v.hovered.Feature.Code
	v.hovered = nil
	v.dispatcher.Dispatch(elecciones.HoverExit{Code: code})
}

// ScreenPoint returns the surface position at which the lon/lat point p is
// currently drawn.
func (v *View) ScreenPoint(p orb.Point) orb.Point {
	return v.transition.At(v.now()).Apply(v.proj.Project(p))
}
