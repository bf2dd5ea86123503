// Package selection keeps the map and the table in step. Clicking a
// department zooms the map to it and filters the table to its row; clicking it
// again, or clicking the background, zooms back out and clears the filter.
// Hovering a department highlights it and shows its name without changing the
// selection.
//
// A Coordinator is driven by one event at a time and is not safe for
// concurrent use.
package selection

import (
	"context"

	log "github.com/inconshreveable/log15"
	"github.com/kevinburke/elecciones"
	"github.com/kevinburke/elecciones/mapview"
	"github.com/kevinburke/elecciones/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Map is the part of the map view the coordinator drives.
type Map interface {
	SetOpacity(opaque func(*elecciones.Feature) bool)
	Highlight(*elecciones.Feature)
	ZoomTo(mapview.Target)
	ShowLabel(string)
	ClearLabel()
}

// Table is the part of the table controller the coordinator drives.
type Table interface {
	FilterByText(query string) int
	FilterByCode(code string) int
	Clear()
}

// FilterMode picks how the table is filtered to the selected department.
type FilterMode int

const (
	// FilterByName searches the table for the department name. Names that
	// contain other names ("Santander", "Norte de Santander") match more
	// than one row.
	FilterByName FilterMode = iota
	// FilterByCode shows exactly the department's row.
	FilterByCode
)

type State int

const (
	Idle State = iota
	Focused
)

func (s State) String() string {
	if s == Focused {
		return "focused"
	}
	return "idle"
}

type Coordinator struct {
	features map[string]*elecciones.Feature
	m        Map
	t        Table
	centered *elecciones.Feature

	mode   FilterMode
	lang   language.Tag
	logger log.Logger
}

type Option func(*Coordinator)

func WithFilterMode(mode FilterMode) Option {
	return func(c *Coordinator) {
		c.mode = mode
	}
}

func WithLogger(l log.Logger) Option {
	return func(c *Coordinator) {
		c.logger = l
	}
}

// New returns an idle coordinator. It ignores events until SetFeatures is
// called.
func New(m Map, t Table, opts ...Option) *Coordinator {
	l := log.New()
	l.SetHandler(log.DiscardHandler())
	c := &Coordinator{
		features: make(map[string]*elecciones.Feature),
		m:        m,
		t:        t,
		lang:     language.Spanish,
		logger:   l,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetFeatures sets the departments that events refer to.
func (c *Coordinator) SetFeatures(features []*elecciones.Feature) {
	c.features = elecciones.FeatureMap(features)
}

// Start loads the departments from src into view and tbl and returns a
// coordinator wired to both. If the load fails the coordinator is still
// returned, with nothing to select, along with the error.
func Start(ctx context.Context, view *mapview.View, tbl *table.Controller, src mapview.Source, opts ...Option) (*Coordinator, error) {
	c := New(view, tbl, opts...)
	features, err := view.LoadFeatures(ctx, src, c)
	if err != nil {
		return c, err
	}
	c.SetFeatures(features)
	tbl.Initialize(elecciones.Rows(features))
	return c, nil
}

// Centered returns the selected department, or nil.
func (c *Coordinator) Centered() *elecciones.Feature {
	return c.centered
}

func (c *Coordinator) State() State {
	if c.centered == nil {
		return Idle
	}
	return Focused
}

// Dispatch implements mapview.Dispatcher.
func (c *Coordinator) Dispatch(ev elecciones.Event) {
	c.Handle(ev)
}

// Handle applies one event.
func (c *Coordinator) Handle(ev elecciones.Event) {
	switch e := ev.(type) {
	case elecciones.Select:
		f, ok := c.features[e.Code]
		if !ok {
			c.logger.Debug("select: unknown department", "code", e.Code)
			return
		}
		c.click(f)
	case elecciones.DeselectBackground:
		c.click(nil)
	case elecciones.HoverEnter:
		f, ok := c.features[e.Code]
		if !ok {
			c.logger.Debug("hover: unknown department", "code", e.Code)
			return
		}
		c.m.Highlight(f)
		c.m.ShowLabel(cases.Upper(c.lang).String(f.Name))
	case elecciones.HoverExit:
		c.restyle()
		c.m.ClearLabel()
	default:
		c.logger.Debug("ignoring event", "event", ev)
	}
}

// click selects f, or deselects when f is nil or already selected.
func (c *Coordinator) click(f *elecciones.Feature) {
	if f != nil && f != c.centered {
		c.m.ZoomTo(mapview.Focus(f))
		c.centered = f
		c.filter(f)
		c.logger.Debug("selected department", "code", f.Code, "name", f.Name)
	} else {
		c.m.ZoomTo(mapview.Reset)
		c.centered = nil
		c.t.Clear()
		c.logger.Debug("cleared selection")
	}
	c.restyle()
	c.m.ClearLabel()
}

func (c *Coordinator) filter(f *elecciones.Feature) {
	if c.mode == FilterByCode {
		c.t.FilterByCode(f.Code)
		return
	}
	if n := c.t.FilterByText(f.Name); n > 1 {
		c.logger.Warn("ambiguous filter match", "name", f.Name, "rows", n)
	}
}

// restyle draws the selected department at full opacity and every other one
// at the baseline.
func (c *Coordinator) restyle() {
	centered := c.centered
	c.m.SetOpacity(func(f *elecciones.Feature) bool {
		return centered != nil && f == centered
	})
}
