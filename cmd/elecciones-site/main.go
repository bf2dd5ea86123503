// The elecciones-site binary renders the election map and table into a
// directory of static HTML pages.
//
// Usage:
//
//	elecciones-site [-data file.geo.json | -host https://example.com] [-out docs]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/inconshreveable/log15"
	"github.com/kevinburke/elecciones/client"
	"github.com/kevinburke/elecciones/mapview"
	"github.com/kevinburke/elecciones/selection"
	"github.com/kevinburke/elecciones/site"
	tss "github.com/kevinburke/tss/lib"
)

// DefaultDataFile is read when neither -data nor -host is given.
const DefaultDataFile = "data/elecciones2018.geo.json"

func parseFilterMode(s string) (selection.FilterMode, error) {
	switch s {
	case "name", "":
		return selection.FilterByName, nil
	case "code":
		return selection.FilterByCode, nil
	default:
		return 0, fmt.Errorf("unknown filter mode %q, want name or code", s)
	}
}

func main() {
	dataFile := flag.String("data", "", "Local GeoJSON file with the results (default "+DefaultDataFile+")")
	host := flag.String("host", "", "Fetch the results from this host instead of a local file")
	cacheTTL := flag.Duration("cache-ttl", 24*14*time.Hour, "How long to reuse results fetched with -host")
	dataDir := flag.String("data-dir", "data", "Where to cache results fetched with -host")
	out := flag.String("out", "docs", "Directory to write the site to")
	filter := flag.String("filter", "name", "Narrow the table by department name or code")
	timeout := flag.Duration("timeout", 5*time.Second, "How long to wait for the results")
	verbose := flag.Bool("v", false, "Log every rendered page")
	flag.Parse()

	logger := log.New()
	lvl := log.LvlInfo
	if *verbose {
		lvl = log.LvlDebug
	}
	logger.SetHandler(log.LvlFilterHandler(lvl, log.StreamHandler(os.Stderr, log.LogfmtFormat())))

	mode, err := parseFilterMode(*filter)
	if err != nil {
		logger.Error("bad -filter flag", "err", err)
		os.Exit(2)
	}
	w := tss.NewWriter(os.Stdout, time.Time{})

	if err := os.MkdirAll(*out, 0755); err != nil {
		logger.Error("could not create output directory", "dir", *out, "err", err)
		os.Exit(1)
	}
	// two renders into the same directory would interleave pages.
	lockFile, err := os.OpenFile(*out+".lock", os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		logger.Error("could not open lock file", "err", err)
		os.Exit(1)
	}
	if err := lock(lockFile); err != nil {
		logger.Error("could not lock output directory", "err", err)
		os.Exit(1)
	}
	defer func() {
		unlock(lockFile)
		lockFile.Close()
	}()

	var src mapview.Source
	switch {
	case *host != "":
		c := client.NewClient(*host)
		c.Features.CacheTTL = *cacheTTL
		c.Features.DataDir = *dataDir
		src = c.Features
		fmt.Fprintf(w, "get results from %s\n", *host)
	case *dataFile != "":
		src = mapview.FileSource(*dataFile)
		fmt.Fprintf(w, "load results from %s\n", *dataFile)
	default:
		src = mapview.FileSource(DefaultDataFile)
		fmt.Fprintf(w, "load results from %s\n", DefaultDataFile)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	err = site.Render(ctx, *out, src, site.Options{
		FilterMode: mode,
		Logger:     logger,
	})
	if err != nil {
		logger.Error("could not render site", "err", err)
		unlock(lockFile)
		os.Exit(1)
	}
	fmt.Fprintf(w, "wrote site to %s\n", *out)
}
