package mapview

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/kevinburke/elecciones"
	"github.com/paulmach/orb"
)

type recorder struct {
	events []elecciones.Event
}

func (r *recorder) Dispatch(ev elecciones.Event) {
	r.events = append(r.events, ev)
}

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func box(minLon, minLat, maxLon, maxLat float64) orb.MultiPolygon {
	return orb.MultiPolygon{{{
		{minLon, minLat}, {maxLon, minLat}, {maxLon, maxLat}, {minLon, maxLat}, {minLon, minLat},
	}}}
}

func testFeatures() []*elecciones.Feature {
	return []*elecciones.Feature{
		{Name: "Antioquia", Code: "05", PartyWinner: "Partido Liberal Colombiano", Stations: 100, Geometry: box(-77.0, 5.5, -74.5, 8.5)},
		{Name: "Boyacá", Code: "15", PartyWinner: "Partido Alianza Verde", Stations: 50, Geometry: box(-74.0, 4.6, -72.0, 7.0)},
		{Name: "San Andrés", Code: "88", PartyWinner: "Partido MIRA", Stations: 12, Geometry: box(-81.75, 12.45, -81.65, 12.62)},
	}
}

var (
	medellin = orb.Point{-75.57, 6.25}
	sogamoso = orb.Point{-72.5, 6.5}
	ocean    = orb.Point{-79.5, 3.0}
)

func newTestView(t *testing.T) (*View, *recorder, *clock) {
	t.Helper()
	c := &clock{t: time.Date(2018, time.March, 11, 16, 0, 0, 0, time.UTC)}
	v := New(DefaultSize, WithClock(c.now))
	r := new(recorder)
	v.Draw(testFeatures(), elecciones.FillRule, r)
	return v, r, c
}

func closeTo(a, b orb.Point) bool {
	return math.Abs(a[0]-b[0]) < 1e-6 && math.Abs(a[1]-b[1]) < 1e-6
}

func TestNew(t *testing.T) {
	v := New(DefaultSize)
	if want := []string{EffectLayer, MapLayer, LabelLayer}; !reflect.DeepEqual(v.Layers(), want) {
		t.Errorf("layers: got %v, want %v", v.Layers(), want)
	}
	if v.Transform() != Identity {
		t.Errorf("new view should not be zoomed, got %v", v.Transform())
	}
	if len(v.Shapes()) != 0 {
		t.Errorf("new view should have no shapes")
	}
}

func TestDraw(t *testing.T) {
	v, _, _ := newTestView(t)
	shapes := v.Shapes()
	if len(shapes) != 3 {
		t.Fatalf("expected 3 shapes, got %d", len(shapes))
	}
	want := []elecciones.Color{"#c0000d", "#007d3c", elecciones.FallbackColor}
	for i, s := range shapes {
		if s.Fill != want[i] {
			t.Errorf("%s: fill %q, want %q", s.Feature.Name, s.Fill, want[i])
		}
		if s.Opacity != BaselineOpacity {
			t.Errorf("%s: opacity %f, want baseline", s.Feature.Name, s.Opacity)
		}
		if s.Path == "" {
			t.Errorf("%s: empty path", s.Feature.Name)
		}
	}
}

func TestSetOpacityAndHighlight(t *testing.T) {
	v, _, _ := newTestView(t)
	v.SetOpacity(func(f *elecciones.Feature) bool { return f.Code == "15" })
	if v.Opacity("15") != FullOpacity || v.Opacity("05") != BaselineOpacity {
		t.Errorf("bad opacities after SetOpacity: 05=%f 15=%f", v.Opacity("05"), v.Opacity("15"))
	}
	v.Highlight(testFeatures()[0])
	if v.Opacity("05") != FullOpacity || v.Opacity("15") != FullOpacity || v.Opacity("88") != BaselineOpacity {
		t.Errorf("Highlight should only change one shape")
	}
	if v.Opacity("99") != 0 {
		t.Errorf("unknown department should report 0 opacity")
	}
}

func TestZoomTo(t *testing.T) {
	v, _, c := newTestView(t)
	antioquia := v.Shapes()[0].Feature
	v.ZoomTo(Focus(antioquia))
	tr := v.Transform()
	if tr.K != FocusScale {
		t.Errorf("expected zoom factor %d, got %f", FocusScale, tr.K)
	}
	center := orb.Point{DefaultSize.Width / 2, DefaultSize.Height / 2}
	if got := tr.Apply(v.Centroid(antioquia)); !closeTo(got, center) {
		t.Errorf("centroid should be drawn at the surface center, got %v", got)
	}
	if v.TransformAt(c.t) != Identity {
		t.Errorf("transition should start from the identity transform")
	}
	c.advance(ZoomDuration)
	if v.TransformAt(c.t) != tr {
		t.Errorf("transition should be done after %s", ZoomDuration)
	}

	v.ZoomTo(Reset)
	if v.Transform() != Identity {
		t.Errorf("reset should return to the identity transform, got %v", v.Transform())
	}
	if v.Transition().From != tr {
		t.Errorf("reset should start from the focused transform")
	}
}

func TestZoomInterrupted(t *testing.T) {
	v, _, c := newTestView(t)
	v.ZoomTo(Focus(v.Shapes()[0].Feature))
	c.advance(ZoomDuration / 2)
	mid := v.TransformAt(c.t)
	if mid.K <= 1 || mid.K >= FocusScale {
		t.Fatalf("expected a zoom factor between 1 and %d halfway through, got %f", FocusScale, mid.K)
	}
	if math.Abs(mid.K-2.5) > 1e-9 {
		t.Errorf("cubic in-out is symmetric: expected k=2.5 halfway, got %f", mid.K)
	}
	v.ZoomTo(Focus(v.Shapes()[1].Feature))
	if v.Transition().From != mid {
		t.Errorf("new zoom should start where the last one got to: got %v, want %v", v.Transition().From, mid)
	}
}

func TestEaseCubicInOut(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-1, 0}, {0, 0}, {0.25, 0.0625}, {0.5, 0.5}, {0.75, 0.9375}, {1, 1}, {2, 1},
	}
	for _, tt := range tests {
		if got := EaseCubicInOut(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("EaseCubicInOut(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTransformString(t *testing.T) {
	tr := Transform{TX: -400, TY: 12.5, K: 4}
	if got, want := tr.String(), "translate(-400,12.5)scale(4)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	p := orb.Point{123, 456}
	if got := tr.Invert(tr.Apply(p)); !closeTo(got, p) {
		t.Errorf("Invert(Apply(p)) = %v", got)
	}
}

func TestClickBeforeDraw(t *testing.T) {
	v := New(DefaultSize)
	// Nothing is drawn and no dispatcher is attached; these must not panic.
	v.Click(400, 375)
	v.Move(400, 375)
	v.Leave()
}

func TestClick(t *testing.T) {
	v, r, _ := newTestView(t)
	p := v.ScreenPoint(medellin)
	v.Click(p[0], p[1])
	p = v.ScreenPoint(ocean)
	v.Click(p[0], p[1])
	want := []elecciones.Event{
		elecciones.Select{Code: "05"},
		elecciones.DeselectBackground{},
	}
	if !reflect.DeepEqual(r.events, want) {
		t.Errorf("events: got %#v, want %#v", r.events, want)
	}
}

func TestClickWhileZoomed(t *testing.T) {
	v, r, c := newTestView(t)
	v.ZoomTo(Focus(v.Shapes()[0].Feature))
	c.advance(ZoomDuration)
	// Medellín is near the middle of Antioquia, so it is near the middle of
	// the surface once zoomed.
	p := v.ScreenPoint(medellin)
	if math.Abs(p[0]-400) > 150 || math.Abs(p[1]-375) > 150 {
		t.Fatalf("expected Medellín near the surface center, got %v", p)
	}
	v.Click(p[0], p[1])
	if len(r.events) != 1 || r.events[0] != (elecciones.Select{Code: "05"}) {
		t.Errorf("events: got %#v", r.events)
	}
}

func TestMove(t *testing.T) {
	v, r, _ := newTestView(t)
	a := v.ScreenPoint(medellin)
	b := v.ScreenPoint(sogamoso)
	v.Move(a[0], a[1])
	v.Move(a[0]+1, a[1]+1)
	v.Move(b[0], b[1])
	v.Leave()
	v.Leave()
	want := []elecciones.Event{
		elecciones.HoverEnter{Code: "05"},
		elecciones.HoverExit{Code: "05"},
		elecciones.HoverEnter{Code: "15"},
		elecciones.HoverExit{Code: "15"},
	}
	if !reflect.DeepEqual(r.events, want) {
		t.Errorf("events: got %#v, want %#v", r.events, want)
	}
}

func TestLoadFeatures(t *testing.T) {
	v := New(DefaultSize)
	r := new(recorder)
	features, err := v.LoadFeatures(context.Background(), FileSource(filepath.Join("..", "testdata", "golden.geo.json")), r)
	if err != nil {
		t.Fatal(err)
	}
	if len(features) != 2 || len(v.Shapes()) != 2 {
		t.Fatalf("expected 2 features and shapes, got %d and %d", len(features), len(v.Shapes()))
	}
	if v.Err() != nil {
		t.Errorf("unexpected error %v", v.Err())
	}
}

func TestLoadFeaturesError(t *testing.T) {
	v := New(DefaultSize)
	r := new(recorder)
	boom := errors.New("connection reset")
	src := SourceFunc(func(context.Context) ([]*elecciones.Feature, error) {
		return nil, boom
	})
	_, err := v.LoadFeatures(context.Background(), src, r)
	var dle *elecciones.DataLoadError
	if !errors.As(err, &dle) {
		t.Fatalf("expected a DataLoadError, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("error should wrap the source error")
	}
	if v.Err() == nil {
		t.Errorf("view should keep the load error")
	}
	if len(v.Shapes()) != 0 {
		t.Errorf("failed load should leave the map empty")
	}
	v.Click(400, 375)
	if len(r.events) != 0 {
		t.Errorf("clicks on an empty map should do nothing, got %v", r.events)
	}
}

func TestFileSourceCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FileSource(filepath.Join("..", "testdata", "golden.geo.json")).Load(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestScene(t *testing.T) {
	v, _, _ := newTestView(t)
	v.ShowLabel("ANTIOQUIA")
	v.ZoomTo(Focus(v.Shapes()[0].Feature))
	sc := v.Scene()
	if sc.Width != 800 || sc.Height != 750 {
		t.Errorf("bad scene size %vx%v", sc.Width, sc.Height)
	}
	if sc.Transform.K != FocusScale {
		t.Errorf("scene should show the settled transform, got %v", sc.Transform)
	}
	if sc.Label != "ANTIOQUIA" || sc.LabelX != LabelX || sc.LabelY != LabelY {
		t.Errorf("bad label %q at %v,%v", sc.Label, sc.LabelX, sc.LabelY)
	}
	if len(sc.Shapes) != 3 || sc.Shapes[1].Code != "15" {
		t.Errorf("bad scene shapes %+v", sc.Shapes)
	}
}
