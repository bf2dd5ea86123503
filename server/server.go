// Package server serves the rendered site and the election data file, for
// previewing the pages locally.
package server

import (
	"bytes"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	log "github.com/inconshreveable/log15"
	"github.com/kevinburke/elecciones/client"
	"github.com/kevinburke/handlers"
	"github.com/kevinburke/rest"
)

var Logger log.Logger

func init() {
	Logger = handlers.Logger
}

// A HTTP server for the files in a directory. Directories are served from
// their index.html.
type static struct {
	dir     string
	modTime time.Time
}

var expires = time.Date(2050, time.January, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC1123)

func (s *static) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := filepath.Join(s.dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
	inf, err := os.Stat(name)
	if err != nil {
		rest.NotFound(w, r)
		return
	}
	if inf.IsDir() {
		if !strings.HasSuffix(r.URL.Path, "/") {
			http.Redirect(w, r, r.URL.Path+"/", http.StatusMovedPermanently)
			return
		}
		name = filepath.Join(name, "index.html")
	}
	bits, err := os.ReadFile(name)
	if err != nil {
		rest.NotFound(w, r)
		return
	}
	// the pages are regenerated in place, so only cache busted URLs get a
	// long expiry.
	if query := r.URL.Query(); query.Get("s") != "" {
		w.Header().Set("Expires", expires)
	}
	http.ServeContent(w, r, name, s.modTime, bytes.NewReader(bits))
}

// NewServeMux returns a HTTP handler that serves the site in docsDir and, if
// dataFile is not empty, the election data at client.DataPath.
func NewServeMux(docsDir, dataFile string) http.Handler {
	staticServer := &static{
		dir:     docsDir,
		modTime: time.Now().UTC(),
	}

	r := new(handlers.Regexp)
	if dataFile != "" {
		dataRoute := regexp.MustCompile("^" + regexp.QuoteMeta(client.DataPath) + "$")
		r.HandleFunc(dataRoute, []string{"GET", "HEAD"}, func(w http.ResponseWriter, r *http.Request) {
			bits, err := os.ReadFile(dataFile)
			if err != nil {
				Logger.Error("could not read data file", "file", dataFile, "err", err)
				rest.ServerError(w, r, err)
				return
			}
			w.Header().Set("Content-Type", "application/geo+json")
			http.ServeContent(w, r, dataFile, staticServer.modTime, bytes.NewReader(bits))
		})
	}
	r.Handle(regexp.MustCompile(`^/`), []string{"GET", "HEAD"}, handlers.GZip(staticServer))
	// Routes not matched will get a 404 error page.
	return r
}
