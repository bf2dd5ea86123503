// Package site renders the map and table as a set of static HTML pages, one
// per selection state: docs/index.html shows every department, and
// docs/<code>/index.html shows the map zoomed to one department with the table
// filtered to it. Each department links to the page its click leads to, so
// the pages together behave like the interactive map.
package site

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	log "github.com/inconshreveable/log15"
	"github.com/kevinburke/elecciones"
	"github.com/kevinburke/elecciones/mapview"
	"github.com/kevinburke/elecciones/selection"
	"github.com/kevinburke/elecciones/stats"
	"github.com/kevinburke/elecciones/table"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.html
var templateFS embed.FS

var tpl = template.Must(template.New("").Option("missingkey=error").Funcs(template.FuncMap{
	"opacity": func(f float64) string {
		return fmt.Sprintf("%.1f", f)
	},
}).ParseFS(templateFS, "templates/*.html"))

type Options struct {
	// FilterMode picks how the table is narrowed to the selected department.
	FilterMode selection.FilterMode
	Size       mapview.Size
	Logger     log.Logger
	// Now is stamped on every page. Defaults to time.Now.
	Now func() time.Time
}

type shapeData struct {
	Code    string
	Name    string
	Label   string
	Path    string
	Fill    elecciones.Color
	Opacity float64
	Href    string
}

type rowData struct {
	Department string
	Stations   string
	Party      string
	Code       string
	// Hidden rows are filtered out by the selection but still on the page,
	// so clearing the search box brings them back.
	Hidden bool
}

type legendData struct {
	Name        string
	Color       elecciones.Color
	Departments int
}

type pageData struct {
	Title     string
	Root      string
	Width     float64
	Height    float64
	Transform string
	LabelX    float64
	LabelY    float64
	Shapes    []shapeData
	Headers   []string
	Rows      []rowData
	Query     string
	Centered  string

	Legend        []legendData
	LegendJSON    template.JS
	TotalStations string
	Generated     string
	Version       string
}

type errorData struct {
	Title   string
	Source  string
	Message string
	Width   float64
	Height  float64
	Version string
}

func (o *Options) defaults() {
	if o.Size == (mapview.Size{}) {
		o.Size = mapview.DefaultSize
	}
	if o.Logger == nil {
		l := log.New()
		l.SetHandler(log.DiscardHandler())
		o.Logger = l
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// Render loads the departments from src and writes every page under dir. If
// the load fails, dir/index.html shows the error instead of the map and the
// *elecciones.DataLoadError is returned.
func Render(ctx context.Context, dir string, src mapview.Source, opts Options) error {
	opts.defaults()
	features, err := src.Load(ctx)
	if err != nil {
		var dle *elecciones.DataLoadError
		if !errors.As(err, &dle) {
			err = &elecciones.DataLoadError{Err: err}
		}
		opts.Logger.Error("could not load departments", "err", err)
		if werr := renderError(dir, err, opts); werr != nil {
			return werr
		}
		return err
	}
	return RenderFeatures(ctx, dir, features, opts)
}

// RenderFeatures writes the index page and one page per department. Pages
// are rendered in parallel, each with its own map, table and coordinator.
func RenderFeatures(ctx context.Context, dir string, features []*elecciones.Feature, opts Options) error {
	opts.defaults()
	seen := make(map[string]bool, len(features))
	for _, f := range features {
		if err := elecciones.ValidCode(f.Code); err != nil {
			return fmt.Errorf("site: %s: %w", f.Name, err)
		}
		if seen[f.Code] {
			return fmt.Errorf("site: duplicate department code %q", f.Code)
		}
		seen[f.Code] = true
	}
	counts := stats.ByParty(features)
	legendJSON, err := json.Marshal(counts)
	if err != nil {
		return err
	}
	legend := make([]legendData, len(counts))
	for i, c := range counts {
		legend[i] = legendData{Name: c.Name, Color: c.Color, Departments: c.Departments}
	}
	common := pageData{
		Legend:     legend,
		LegendJSON: template.JS(legendJSON),
		Generated:  opts.Now().UTC().Format(time.RFC3339),
		Version:    elecciones.Version,
	}
	total := stats.TotalStations(features)

	group, errctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return renderPage(errctx, dir, "", features, common, total, opts)
	})
	for _, f := range features {
		code := f.Code
		group.Go(func() error {
			return renderPage(errctx, dir, code, features, common, total, opts)
		})
	}
	return group.Wait()
}

// renderPage drives a fresh map, table and coordinator into the state reached
// by clicking the department with the given code (or none, for the index)
// and writes the result.
func renderPage(ctx context.Context, dir, code string, features []*elecciones.Feature, data pageData, total int, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	view := mapview.New(opts.Size, mapview.WithLogger(opts.Logger))
	tbl := table.New(table.WithLogger(opts.Logger))
	coord, err := selection.Start(ctx, view, tbl, mapview.Features(features),
		selection.WithFilterMode(opts.FilterMode), selection.WithLogger(opts.Logger))
	if err != nil {
		return err
	}
	labels := hoverLabels(coord, view, features)
	root := "./"
	if code != "" {
		coord.Handle(elecciones.Select{Code: code})
		if coord.Centered() == nil {
			return fmt.Errorf("site: unknown department %q", code)
		}
		root = "../"
	}
	centered := ""
	if f := coord.Centered(); f != nil {
		centered = f.Code
		data.Title = f.Name
	}

	printer := message.NewPrinter(language.Spanish)
	scene := view.Scene()
	data.Root = root
	data.Width = scene.Width
	data.Height = scene.Height
	data.Transform = scene.Transform.String()
	data.LabelX = scene.LabelX
	data.LabelY = scene.LabelY
	data.Centered = centered
	data.Query = tbl.Query()
	data.TotalStations = printer.Sprintf("%d", total)
	data.Shapes = make([]shapeData, len(scene.Shapes))
	for i, s := range scene.Shapes {
		data.Shapes[i] = shapeData{
			Code:    s.Code,
			Name:    s.Name,
			Label:   labels[s.Code],
			Path:    s.Path,
			Fill:    s.Fill,
			Opacity: s.Opacity,
			Href:    href(root, centered, s.Code),
		}
	}
	data.Headers = make([]string, len(table.Columns))
	for i, c := range table.Columns {
		data.Headers[i] = c.String()
	}
	visible := tbl.Visible()
	shown := make(map[string]bool, len(visible))
	for _, r := range visible {
		shown[r.Code] = true
	}
	rows := visible
	for _, r := range elecciones.Rows(features) {
		if !shown[r.Code] {
			rows = append(rows, r)
		}
	}
	data.Rows = make([]rowData, len(rows))
	for i, r := range rows {
		data.Rows[i] = rowData{
			Department: r.Department,
			Stations:   printer.Sprintf("%d", r.Stations),
			Party:      r.Party,
			Code:       r.Code,
			Hidden:     !shown[r.Code],
		}
	}

	buf := new(bytes.Buffer)
	if err := tpl.ExecuteTemplate(buf, "page.html", data); err != nil {
		return err
	}
	pageDir := filepath.Join(dir, code)
	if err := os.MkdirAll(pageDir, 0755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(pageDir, "index.html"), buf.Bytes(), 0644); err != nil {
		return err
	}
	opts.Logger.Debug("rendered page", "dir", pageDir, "rows", len(visible))
	return nil
}

// hoverLabels records the label the map shows while each department is
// hovered.
func hoverLabels(coord *selection.Coordinator, view *mapview.View, features []*elecciones.Feature) map[string]string {
	labels := make(map[string]string, len(features))
	for _, f := range features {
		coord.Handle(elecciones.HoverEnter{Code: f.Code})
		labels[f.Code] = view.Label()
		coord.Handle(elecciones.HoverExit{Code: f.Code})
	}
	return labels
}

// href is the page reached by clicking code while centered is selected:
// clicking the selected department goes back to the full map.
func href(root, centered, code string) string {
	if code == centered {
		return root
	}
	return root + code + "/"
}

func renderError(dir string, err error, opts Options) error {
	data := errorData{
		Title:   "No se pudieron cargar los datos",
		Message: err.Error(),
		Width:   opts.Size.Width,
		Height:  opts.Size.Height,
		Version: elecciones.Version,
	}
	var dle *elecciones.DataLoadError
	if errors.As(err, &dle) {
		data.Source = dle.Source
		if dle.Err != nil {
			data.Message = dle.Err.Error()
		}
	}
	buf := new(bytes.Buffer)
	if err := tpl.ExecuteTemplate(buf, "error.html", data); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "index.html"), buf.Bytes(), 0644)
}
