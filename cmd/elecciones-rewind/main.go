// The elecciones-rewind binary reverses the ring winding of every department
// in a GeoJSON file, for exports wound in the opposite direction from what
// the map expects.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/kevinburke/elecciones/geo"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// rewindCollection rewinds the polygons in fc in place and returns how many
// features it changed. With onlyClockwise set, features whose exterior rings
// already run counterclockwise are left alone.
func rewindCollection(fc *geojson.FeatureCollection, onlyClockwise bool) int {
	n := 0
	for _, f := range fc.Features {
		var mp orb.MultiPolygon
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			mp = orb.MultiPolygon{g}
		case orb.MultiPolygon:
			mp = g
		default:
			continue
		}
		if onlyClockwise && !geo.Clockwise(mp) {
			continue
		}
		geo.Rewind(mp)
		n++
	}
	return n
}

func rewind(in, out string, onlyClockwise bool) error {
	blob, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	fc, err := geojson.UnmarshalFeatureCollection(blob)
	if err != nil {
		return err
	}
	n := rewindCollection(fc, onlyClockwise)
	output, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	log.Printf("rewound %d of %d features", n, len(fc.Features))
	return os.WriteFile(out, output, 0644)
}

func main() {
	onlyClockwise := flag.Bool("only-clockwise", false, "Only rewind features wound clockwise")
	flag.Parse()
	if flag.NArg() != 2 {
		log.Fatal("usage: elecciones-rewind [-only-clockwise] in.geo.json out.geo.json")
	}
	if err := rewind(flag.Arg(0), flag.Arg(1), *onlyClockwise); err != nil {
		log.Fatal(err)
	}
}
