package geo

import "github.com/paulmach/orb"

// Rewind reverses the winding order of every ring in mp, in place. Some
// GeoJSON exports wind exterior rings clockwise and some tools expect the
// opposite.
func Rewind(mp orb.MultiPolygon) {
	for k := range mp {
		for j := range mp[k] {
			mp[k][j].Reverse()
		}
	}
}

// Clockwise reports whether the exterior rings of mp are wound clockwise in
// lon/lat space.
func Clockwise(mp orb.MultiPolygon) bool {
	for _, poly := range mp {
		if len(poly) == 0 {
			continue
		}
		return poly[0].Orientation() == orb.CW
	}
	return false
}
