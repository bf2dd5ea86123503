package mapview

import (
	"strconv"
	"time"

	"github.com/paulmach/orb"
)

// Transform maps a projected point p to TX + K*p.x, TY + K*p.y on the
// surface. It is the transform applied to the map group when zooming.
type Transform struct {
	TX, TY, K float64
}

// Identity is the transform of the unzoomed map.
var Identity = Transform{K: 1}

// focusOn returns the transform that draws p in the middle of a surface of
// the given size, magnified k times.
func focusOn(size Size, p orb.Point, k float64) Transform {
	return Transform{
		TX: size.Width/2 - k*p[0],
		TY: size.Height/2 - k*p[1],
		K:  k,
	}
}

// Apply maps a projected point onto the surface.
func (t Transform) Apply(p orb.Point) orb.Point {
	return orb.Point{t.TX + t.K*p[0], t.TY + t.K*p[1]}
}

// Invert maps a surface point back to projected coordinates.
func (t Transform) Invert(p orb.Point) orb.Point {
	return orb.Point{(p[0] - t.TX) / t.K, (p[1] - t.TY) / t.K}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// String returns t as an SVG transform attribute.
func (t Transform) String() string {
	return "translate(" + formatFloat(t.TX) + "," + formatFloat(t.TY) + ")scale(" + formatFloat(t.K) + ")"
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// EaseCubicInOut is the default easing for map transitions.
func EaseCubicInOut(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	case t <= 0.5:
		return 4 * t * t * t
	default:
		u := 2 - 2*t
		return 1 - u*u*u/2
	}
}

// A Transition animates the map transform from From to To.
type Transition struct {
	From, To Transform
	Start    time.Time
	Duration time.Duration
}

// At returns the transform shown at time now.
func (tr Transition) At(now time.Time) Transform {
	if tr.Duration <= 0 || !now.Before(tr.Start.Add(tr.Duration)) {
		return tr.To
	}
	if now.Before(tr.Start) {
		return tr.From
	}
	e := EaseCubicInOut(float64(now.Sub(tr.Start)) / float64(tr.Duration))
	return Transform{
		TX: lerp(tr.From.TX, tr.To.TX, e),
		TY: lerp(tr.From.TY, tr.To.TY, e),
		K:  lerp(tr.From.K, tr.To.K, e),
	}
}

// Done reports whether the transition has finished at time now.
func (tr Transition) Done(now time.Time) bool {
	return !now.Before(tr.Start.Add(tr.Duration))
}
