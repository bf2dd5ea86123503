package geo

import (
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

func appendCoord(sb *strings.Builder, p orb.Point) {
	sb.WriteString(strconv.FormatFloat(p[0], 'f', 2, 64))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatFloat(p[1], 'f', 2, 64))
}

// Path returns SVG path data for mp after projecting it with m. Each ring is
// a closed subpath; holes rely on fill-rule="evenodd".
func (m *Mercator) Path(mp orb.MultiPolygon) string {
	sb := new(strings.Builder)
	for _, poly := range m.ProjectMultiPolygon(mp) {
		for _, ring := range poly {
			n := len(ring)
			// GeoJSON rings repeat the first point at the end; Z closes the
			// subpath for us.
			if n > 1 && ring[0] == ring[n-1] {
				n--
			}
			if n < 3 {
				continue
			}
			for i := 0; i < n; i++ {
				if i == 0 {
					sb.WriteByte('M')
				} else {
					sb.WriteByte('L')
				}
				appendCoord(sb, ring[i])
			}
			sb.WriteByte('Z')
		}
	}
	return sb.String()
}

// Centroid returns the area-weighted centroid of mp on screen, the point the
// map zooms to when a department is selected. Degenerate shapes fall back to
// the center of their projected bounds.
func (m *Mercator) Centroid(mp orb.MultiPolygon) orb.Point {
	projected := m.ProjectMultiPolygon(mp)
	c, area := planar.CentroidArea(projected)
	if area == 0 {
		return projected.Bound().Center()
	}
	return c
}
