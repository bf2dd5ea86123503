// The elecciones-server binary loads configuration from a file and serves the
// rendered site, along with the election data file, for local previews.
//
// See config.yml for an explanation of the configuration options.
package main

import (
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kevinburke/elecciones"
	"github.com/kevinburke/elecciones/server"
	"github.com/kevinburke/handlers"
	yaml "gopkg.in/yaml.v2"
)

// DefaultPort is the listening port if no other port is specified.
var DefaultPort = 7065

// FileConfig represents the data in a config file.
type FileConfig struct {
	// Port to listen on. Set to 0 to choose a port at random. If unspecified,
	// the PORT environment variable is used, then 7065.
	Port *int `yaml:"port"`

	// Set to true to listen for HTTP traffic (instead of TLS traffic).
	HTTPOnly bool `yaml:"http_only"`

	// Directory holding the rendered site. Defaults to "docs".
	DocsDir string `yaml:"docs_dir"`

	// GeoJSON file to serve to the client. Leave empty to serve only the
	// site.
	DataFile string `yaml:"data_file"`

	// For TLS configuration.
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

var cfg = flag.String("config", "config.yml", "Path to a config file")
var version = flag.Bool("version", false, "Print the version string and exit")

func main() {
	start := time.Now()
	flag.Parse()
	if *version {
		fmt.Fprintf(os.Stderr, "elecciones-server version %s\n", elecciones.Version)
		os.Exit(0)
	}
	logger := server.Logger
	// a missing .env file is fine, the environment may already be set.
	_ = godotenv.Load(".env")
	data, err := os.ReadFile(*cfg)
	c := new(FileConfig)
	if err == nil {
		if err := yaml.Unmarshal(data, c); err != nil {
			logger.Error("Couldn't parse config file", "err", err)
			os.Exit(2)
		}
	} else {
		logger.Error("Couldn't find config file", "err", err)
		os.Exit(2)
	}

	if c.Port == nil {
		port, ok := os.LookupEnv("PORT")
		if ok {
			iPort, err := strconv.Atoi(port)
			if err != nil {
				logger.Error("Invalid port", "err", err, "port", port)
				os.Exit(2)
			}
			c.Port = &iPort
		} else {
			c.Port = &DefaultPort
		}
	}
	if c.DocsDir == "" {
		c.DocsDir = "docs"
	}
	if _, err := os.Stat(c.DocsDir); err != nil {
		logger.Error("Could not find the site; generate it with elecciones-site", "dir", c.DocsDir, "err", err)
		os.Exit(2)
	}
	mux := server.NewServeMux(c.DocsDir, c.DataFile)
	mux = handlers.UUID(mux)                                     // add UUID header
	mux = handlers.Server(mux, "elecciones/"+elecciones.Version) // add Server header
	mux = handlers.Log(mux)                                      // log requests/responses
	mux = handlers.Duration(mux)                                 // add Duration header
	addr := ":" + strconv.Itoa(*c.Port)
	if c.HTTPOnly {
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			logger.Error("Error listening", "addr", addr, "err", err)
			os.Exit(2)
		}
		logger.Info("Started server", "time", time.Since(start).Round(100*time.Microsecond),
			"protocol", "http", "port", *c.Port, "docs", c.DocsDir)
		listenErr := http.Serve(ln, mux)
		logger.Error("server shut down", "err", listenErr)
		return
	}
	mux = handlers.STS(mux) // set Strict-Transport-Security header
	if c.CertFile == "" {
		c.CertFile = "certs/leaf.pem"
	}
	if _, err := os.Stat(c.CertFile); os.IsNotExist(err) {
		logger.Error("Could not find a cert file", "file", c.CertFile)
		os.Exit(2)
	}
	if c.KeyFile == "" {
		c.KeyFile = "certs/leaf.key"
	}
	if _, err := os.Stat(c.KeyFile); os.IsNotExist(err) {
		logger.Error("Could not find a key file", "file", c.KeyFile)
		os.Exit(2)
	}
	logger.Info("Starting server", "time", time.Since(start).Round(100*time.Microsecond), "protocol", "https", "port", *c.Port, "docs", c.DocsDir)
	listenErr := http.ListenAndServeTLS(addr, c.CertFile, c.KeyFile, mux)
	logger.Error("server shut down", "err", listenErr)
}
