// Package mapview draws one shape per department, colored by winning party,
// and turns pointer input on the drawing surface into map events.
//
// A View is not safe for concurrent use. All calls are expected to come from
// a single event loop.
package mapview

import (
	"context"
	"errors"
	"time"

	log "github.com/inconshreveable/log15"
	"github.com/kevinburke/elecciones"
	"github.com/kevinburke/elecciones/geo"
	"github.com/paulmach/orb"
)

const (
	// BaselineOpacity is the opacity of a department that is neither
	// selected nor hovered.
	BaselineOpacity = 0.6
	FullOpacity     = 1.0

	// FocusScale is the zoom factor used when a department is selected.
	FocusScale = 4
	// ZoomDuration is how long a zoom transition lasts.
	ZoomDuration = 750 * time.Millisecond
)

// Layers, bottom to top.
const (
	EffectLayer = "effect-layer"
	MapLayer    = "map-layer"
	LabelLayer  = "label-text"
)

// Position of the department label on the surface.
const (
	LabelX = 15
	LabelY = 30
)

type Size struct {
	Width, Height float64
}

// DefaultSize is the size of the drawing surface.
var DefaultSize = Size{Width: 800, Height: 750}

// A Dispatcher receives the events produced by pointer input.
type Dispatcher interface {
	Dispatch(elecciones.Event)
}

// A Shape is one drawn department.
type Shape struct {
	Feature *elecciones.Feature
	// SVG path data in projected coordinates.
	Path    string
	Fill    elecciones.Color
	Opacity float64

	centroid orb.Point
}

// Target is where ZoomTo zooms to: a department or the whole map.
type Target struct {
	feature *elecciones.Feature
}

// Reset zooms out to the full surface.
var Reset = Target{}

// Focus zooms in on f.
func Focus(f *elecciones.Feature) Target {
	return Target{feature: f}
}

// Feature returns the department being zoomed to, or nil for Reset.
func (t Target) Feature() *elecciones.Feature {
	return t.feature
}

type View struct {
	size   Size
	layers []string
	proj   *geo.Mercator

	shapes     []*Shape
	byCode     map[string]*Shape
	index      *geo.Index
	dispatcher Dispatcher
	hovered    *Shape

	transition Transition
	label      string
	err        error

	now    func() time.Time
	logger log.Logger
}

type Option func(*View)

// WithClock sets the time source used for transitions.
func WithClock(now func() time.Time) Option {
	return func(v *View) {
		v.now = now
	}
}

func WithLogger(l log.Logger) Option {
	return func(v *View) {
		v.logger = l
	}
}

func discardLogger() log.Logger {
	l := log.New()
	l.SetHandler(log.DiscardHandler())
	return l
}

// New creates an empty drawing surface of the given size, with a background
// click target and the effect, map and label layers.
func New(size Size, opts ...Option) *View {
	v := &View{
		size:   size,
		layers: []string{EffectLayer, MapLayer, LabelLayer},
		proj:   geo.NewMercator(size.Width, size.Height),
		byCode: make(map[string]*Shape),
		transition: Transition{
			From: Identity,
			To:   Identity,
		},
		now:    time.Now,
		logger: discardLogger(),
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// LoadFeatures loads the departments from src and draws them, sending
// pointer events to d. If the load fails the map stays empty, the error is
// kept for display and returned as a *elecciones.DataLoadError. There is no
// retry; ctx bounds how long the load may take.
func (v *View) LoadFeatures(ctx context.Context, src Source, d Dispatcher) ([]*elecciones.Feature, error) {
	features, err := src.Load(ctx)
	if err != nil {
		var dle *elecciones.DataLoadError
		if !errors.As(err, &dle) {
			err = &elecciones.DataLoadError{Err: err}
		}
		v.err = err
		v.logger.Error("could not load departments", "err", err)
		return nil, err
	}
	v.err = nil
	v.Draw(features, elecciones.FillRule, d)
	v.logger.Info("loaded departments", "count", len(features))
	return features, nil
}

// Draw renders one shape per feature using fill, at baseline opacity, and
// routes pointer events over the shapes to d.
func (v *View) Draw(features []*elecciones.Feature, fill func(*elecciones.Feature) elecciones.Color, d Dispatcher) {
	v.shapes = make([]*Shape, len(features))
	v.byCode = make(map[string]*Shape, len(features))
	polys := make([]orb.MultiPolygon, len(features))
	for i, f := range features {
		s := &Shape{
			Feature:  f,
			Path:     v.proj.Path(f.Geometry),
			Fill:     fill(f),
			Opacity:  BaselineOpacity,
			centroid: v.proj.Centroid(f.Geometry),
		}
		v.shapes[i] = s
		v.byCode[f.Code] = s
		polys[i] = f.Geometry
	}
	v.index = geo.NewIndex(polys)
	v.dispatcher = d
	v.hovered = nil
}

// SetOpacity sets every shape to full opacity where opaque returns true and
// to the baseline otherwise.
func (v *View) SetOpacity(opaque func(*elecciones.Feature) bool) {
	for _, s := range v.shapes {
		if opaque(s.Feature) {
			s.Opacity = FullOpacity
		} else {
			s.Opacity = BaselineOpacity
		}
	}
}

// Highlight draws f at full opacity without touching the other shapes.
func (v *View) Highlight(f *elecciones.Feature) {
	if s, ok := v.byCode[f.Code]; ok {
		s.Opacity = FullOpacity
	}
}

// Opacity returns the opacity of the department with the given code, or 0 if
// it isn't drawn.
func (v *View) Opacity(code string) float64 {
	if s, ok := v.byCode[code]; ok {
		return s.Opacity
	}
	return 0
}

// Centroid returns the projected centroid of f.
func (v *View) Centroid(f *elecciones.Feature) orb.Point {
	if s, ok := v.byCode[f.Code]; ok && s.Feature == f {
		return s.centroid
	}
	return v.proj.Centroid(f.Geometry)
}

// ZoomTo starts a transition toward target and returns immediately. A zoom
// that is still running is replaced, starting from wherever it got to.
func (v *View) ZoomTo(target Target) {
	now := v.now()
	from := v.transition.At(now)
	var to Transform
	if f := target.Feature(); f != nil {
		to = focusOn(v.size, v.Centroid(f), FocusScale)
	} else {
		to = focusOn(v.size, orb.Point{v.size.Width / 2, v.size.Height / 2}, 1)
	}
	v.transition = Transition{
		From:     from,
		To:       to,
		Start:    now,
		Duration: ZoomDuration,
	}
}

// Transform returns the transform the map is moving toward.
func (v *View) Transform() Transform {
	return v.transition.To
}

// TransformAt returns the transform shown at time t.
func (v *View) TransformAt(t time.Time) Transform {
	return v.transition.At(t)
}

// Transition returns the most recent zoom transition.
func (v *View) Transition() Transition {
	return v.transition
}

// ShowLabel replaces the department label.
func (v *View) ShowLabel(text string) {
	v.label = text
}

func (v *View) ClearLabel() {
	v.label = ""
}

func (v *View) Label() string {
	return v.label
}

// Err returns the error from the last load, if any.
func (v *View) Err() error {
	return v.err
}

// Shapes returns the drawn shapes in draw order.
func (v *View) Shapes() []*Shape {
	return v.shapes
}

func (v *View) Size() Size {
	return v.size
}

// Layers returns the layer names, bottom to top.
func (v *View) Layers() []string {
	return v.layers
}
