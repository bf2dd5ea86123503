package mapview

import (
	"context"

	"github.com/kevinburke/elecciones"
)

// A Source produces the department features. It is called once per load.
type Source interface {
	Load(ctx context.Context) ([]*elecciones.Feature, error)
}

// SourceFunc adapts a function to a Source.
type SourceFunc func(ctx context.Context) ([]*elecciones.Feature, error)

func (f SourceFunc) Load(ctx context.Context) ([]*elecciones.Feature, error) {
	return f(ctx)
}

// FileSource loads features from a GeoJSON file on disk.
func FileSource(path string) Source {
	return SourceFunc(func(ctx context.Context) ([]*elecciones.Feature, error) {
		if err := ctx.Err(); err != nil {
			return nil, &elecciones.DataLoadError{Source: path, Err: err}
		}
		return elecciones.LoadFile(path)
	})
}

// Features returns a Source that always yields the given features.
func Features(features []*elecciones.Feature) Source {
	return SourceFunc(func(context.Context) ([]*elecciones.Feature, error) {
		return features, nil
	})
}
