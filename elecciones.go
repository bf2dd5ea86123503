// Package elecciones loads the 2018 Colombian election results by department
// and turns them into the records used by the map and the table.
package elecciones

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const Version = "0.3"

// GeoJSON property keys in the election file.
const (
	propName     = "NOMBRE_DPT"
	propCode     = "DPTO"
	propStations = "MESAS"
	propParty    = "PARTIDO"
)

// A Feature is one department: its shape plus the election results. Features
// are not modified after Load returns and are shared by pointer.
type Feature struct {
	Name        string
	Code        string
	PartyWinner string
	// Number of polling stations that reported results.
	Stations int

	Geometry orb.MultiPolygon
}

// Party returns the typed winning party for f.
func (f *Feature) Party() Party {
	return ParseParty(f.PartyWinner)
}

// DataLoadError is returned when the department data can't be fetched or
// parsed.
type DataLoadError struct {
	Source string
	Err    error
}

func (e *DataLoadError) Error() string {
	if e.Source == "" {
		return "elecciones: could not load features: " + e.Err.Error()
	}
	return fmt.Sprintf("elecciones: could not load features from %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

func stringProp(props geojson.Properties, key string) (string, error) {
	v, ok := props[key]
	if !ok {
		return "", fmt.Errorf("missing property %q", key)
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("property %q: unexpected type %T", key, v)
	}
}

func intProp(props geojson.Properties, key string) (int, error) {
	v, ok := props[key]
	if !ok {
		return 0, fmt.Errorf("missing property %q", key)
	}
	switch t := v.(type) {
	case float64:
		return int(t), nil
	case string:
		return strconv.Atoi(t)
	default:
		return 0, fmt.Errorf("property %q: unexpected type %T", key, v)
	}
}

func parseFeature(gf *geojson.Feature) (*Feature, error) {
	f := new(Feature)
	var err error
	if f.Name, err = stringProp(gf.Properties, propName); err != nil {
		return nil, err
	}
	if f.Code, err = stringProp(gf.Properties, propCode); err != nil {
		return nil, err
	}
	if f.Name == "" || f.Code == "" {
		return nil, fmt.Errorf("department with empty name or code (%q, %q)", f.Name, f.Code)
	}
	if err := ValidCode(f.Code); err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name, err)
	}
	if f.Stations, err = intProp(gf.Properties, propStations); err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name, err)
	}
	// A department with no declared winner is still drawn, with the fallback
	// color.
	if party, ok := gf.Properties[propParty].(string); ok {
		f.PartyWinner = party
	}
	switch g := gf.Geometry.(type) {
	case orb.Polygon:
		f.Geometry = orb.MultiPolygon{g}
	case orb.MultiPolygon:
		f.Geometry = g
	default:
		return nil, fmt.Errorf("%s: unsupported geometry %T", f.Name, gf.Geometry)
	}
	return f, nil
}

// ValidCode returns an error if code can't name a department. Codes identify
// departments in events and become directory names and URL path segments,
// so they must be a single clean path element.
func ValidCode(code string) error {
	if code == "" || code == "." || code == ".." ||
		strings.ContainsAny(code, `/\`) || filepath.Base(code) != code {
		return fmt.Errorf("invalid department code %q", code)
	}
	return nil
}

// Parse parses a GeoJSON feature collection.
func Parse(data []byte) ([]*Feature, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, &DataLoadError{Err: err}
	}
	features := make([]*Feature, 0, len(fc.Features))
	seen := make(map[string]bool, len(fc.Features))
	for i := range fc.Features {
		f, err := parseFeature(fc.Features[i])
		if err != nil {
			return nil, &DataLoadError{Err: fmt.Errorf("feature %d: %w", i, err)}
		}
		if seen[f.Code] {
			return nil, &DataLoadError{Err: fmt.Errorf("feature %d: duplicate department code %q (%s)", i, f.Code, f.Name)}
		}
		seen[f.Code] = true
		features = append(features, f)
	}
	return features, nil
}

// Load reads a GeoJSON feature collection from rdr. The order of the returned
// features matches the file.
func Load(rdr io.Reader) ([]*Feature, error) {
	data, err := io.ReadAll(rdr)
	if err != nil {
		return nil, &DataLoadError{Err: err}
	}
	return Parse(data)
}

// LoadFile loads the features in the file at path.
func LoadFile(path string) ([]*Feature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataLoadError{Source: path, Err: err}
	}
	defer f.Close()
	features, err := Load(f)
	if err != nil {
		if dle, ok := err.(*DataLoadError); ok {
			dle.Source = path
		}
		return nil, err
	}
	return features, nil
}

// FeatureMap indexes features by department code.
func FeatureMap(features []*Feature) map[string]*Feature {
	mp := make(map[string]*Feature, len(features))
	for i := range features {
		mp[features[i].Code] = features[i]
	}
	return mp
}

// A RowRecord is the table's view of one department.
type RowRecord struct {
	Department string
	Stations   int
	Party      string
	// Code tags the row; it is not displayed.
	Code string
}

// Rows projects features into table rows, in the same order.
func Rows(features []*Feature) []RowRecord {
	rows := make([]RowRecord, len(features))
	for i, f := range features {
		rows[i] = RowRecord{
			Department: f.Name,
			Stations:   f.Stations,
			Party:      f.PartyWinner,
			Code:       f.Code,
		}
	}
	return rows
}
