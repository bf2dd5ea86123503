// Package client retrieves the department data from a web server.
package client

import (
	"io"
	"net/http"

	"github.com/kevinburke/elecciones"
	"github.com/kevinburke/rest"
)

type Client struct {
	Client *rest.Client
	Host   string

	Features *FeatureService
}

// DataPath is where the election file is served, relative to the host.
const DataPath = "/data/elecciones2018.geo.json"

// NewClient returns a new Client that fetches data from host.
func NewClient(host string) *Client {
	c := new(Client)
	c.Host = host
	c.Client = rest.NewClient("", "", host)

	c.Features = &FeatureService{client: c, Path: DataPath}
	return c
}

// NewRequest creates a new HTTP request to hit the given endpoint.
func (c *Client) NewRequest(method, path string, body io.Reader) (*http.Request, error) {
	req, err := c.Client.NewRequest(method, path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "elecciones/"+elecciones.Version+" "+req.Header.Get("User-Agent"))
	return req, nil
}
