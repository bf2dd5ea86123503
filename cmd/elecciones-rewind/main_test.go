package main

import (
	"path/filepath"
	"testing"

	"github.com/kevinburke/elecciones"
	"github.com/kevinburke/elecciones/geo"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func testCollection() *geojson.FeatureCollection {
	ccw := orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}
	cw := orb.Polygon{{{2, 0}, {2, 1}, {3, 1}, {3, 0}, {2, 0}}}
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(ccw))
	fc.Append(geojson.NewFeature(orb.MultiPolygon{cw}))
	fc.Append(geojson.NewFeature(orb.Point{1, 1}))
	return fc
}

func TestRewindCollection(t *testing.T) {
	fc := testCollection()
	if n := rewindCollection(fc, false); n != 2 {
		t.Errorf("expected 2 rewound features, got %d", n)
	}
	if !geo.Clockwise(orb.MultiPolygon{fc.Features[0].Geometry.(orb.Polygon)}) {
		t.Errorf("first feature should now be clockwise")
	}
	if geo.Clockwise(fc.Features[1].Geometry.(orb.MultiPolygon)) {
		t.Errorf("second feature should now be counterclockwise")
	}
}

func TestRewindOnlyClockwise(t *testing.T) {
	fc := testCollection()
	if n := rewindCollection(fc, true); n != 1 {
		t.Errorf("expected 1 rewound feature, got %d", n)
	}
	if geo.Clockwise(orb.MultiPolygon{fc.Features[0].Geometry.(orb.Polygon)}) {
		t.Errorf("counterclockwise feature should be left alone")
	}
	if geo.Clockwise(fc.Features[1].Geometry.(orb.MultiPolygon)) {
		t.Errorf("clockwise feature should be rewound")
	}
}

func TestRewindFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.geo.json")
	if err := rewind(filepath.Join("..", "..", "testdata", "golden.geo.json"), out, false); err != nil {
		t.Fatal(err)
	}
	features, err := elecciones.LoadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(features) != 2 || features[0].Code != "05" {
		t.Errorf("rewound file lost data: %v", features)
	}
}
