package client

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/kevinburke/elecciones"
)

type FeatureService struct {
	// Set CacheTTL to a nonzero value to load the data from a local copy. If
	// the copy is older than the TTL we will ignore it and fetch the data
	// again, saving the result.
	CacheTTL time.Duration
	// Directory holding data files on disk, if empty, "data" is assumed.
	DataDir string
	// Path of the GeoJSON file on the server.
	Path string

	client *Client
}

func (s *FeatureService) cacheFile() string {
	dataDir := s.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	return filepath.Join(dataDir, filepath.Base(s.Path))
}

func (s *FeatureService) loadFromDisk() ([]*elecciones.Feature, error) {
	if s.CacheTTL == 0 {
		return nil, errors.New("cache set to zero")
	}
	name := s.cacheFile()
	inf, err := os.Stat(name)
	if err != nil {
		return nil, err
	}
	if time.Since(inf.ModTime()) > s.CacheTTL {
		return nil, errors.New("local data too old")
	}
	return elecciones.LoadFile(name)
}

func (s *FeatureService) saveToDisk(data []byte) error {
	name := s.cacheFile()
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return err
	}
	return os.WriteFile(name, data, 0644)
}

// Load returns every department, from the local copy if it is fresh enough and
// from the server otherwise. Errors are *elecciones.DataLoadError.
func (s *FeatureService) Load(ctx context.Context) ([]*elecciones.Feature, error) {
	if features, err := s.loadFromDisk(); err == nil {
		return features, nil
	}
	source := s.client.Host + s.Path
	req, err := s.client.NewRequest("GET", s.Path, nil)
	if err != nil {
		return nil, &elecciones.DataLoadError{Source: source, Err: err}
	}
	req = req.WithContext(ctx)
	var body json.RawMessage
	if err := s.client.Client.Do(req, &body); err != nil {
		return nil, &elecciones.DataLoadError{Source: source, Err: err}
	}
	features, err := elecciones.Parse(body)
	if err != nil {
		if dle, ok := err.(*elecciones.DataLoadError); ok {
			dle.Source = source
		}
		return nil, err
	}
	if s.CacheTTL > 0 {
		// a failed save only costs us a fetch next time.
		_ = s.saveToDisk(body)
	}
	return features, nil
}
