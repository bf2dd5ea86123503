// Package table keeps the searchable, sortable list of departments that sits
// next to the map.
package table

import (
	"sort"
	"strconv"
	"strings"

	log "github.com/inconshreveable/log15"
	"github.com/kevinburke/elecciones"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Column int

const (
	Department Column = iota
	Stations
	Party
)

// Columns lists the visible columns in display order.
var Columns = []Column{Department, Stations, Party}

func (c Column) String() string {
	switch c {
	case Department:
		return "Department"
	case Stations:
		return "Reported Stations"
	case Party:
		return "Party"
	default:
		return "Column(" + strconv.Itoa(int(c)) + ")"
	}
}

type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Cell returns the display value of column c in r.
func Cell(r elecciones.RowRecord, c Column) string {
	switch c {
	case Department:
		return r.Department
	case Stations:
		return strconv.Itoa(r.Stations)
	case Party:
		return r.Party
	default:
		return ""
	}
}

// A Handle is the live table. A Controller creates at most one.
type Handle struct {
	rows   []elecciones.RowRecord
	search []string // folded search text per row

	query string
	terms []string
	code  string

	sorted  bool
	sortCol Column
	sortDir Direction

	order   []int // row indices in display order, before filtering
	visible []int
}

type Controller struct {
	handle   *Handle
	created  int
	language language.Tag
	logger   log.Logger
}

type Option func(*Controller)

func WithLogger(l log.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithLanguage sets the collation used to sort text columns. The default is
// Spanish.
func WithLanguage(tag language.Tag) Option {
	return func(c *Controller) {
		c.language = tag
	}
}

func New(opts ...Option) *Controller {
	l := log.New()
	l.SetHandler(log.DiscardHandler())
	c := &Controller{
		language: language.Spanish,
		logger:   l,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Initialize loads rows into the table. The first call creates the table;
// later calls reuse it, keeping the current search and sort.
func (c *Controller) Initialize(rows []elecciones.RowRecord) *Handle {
	if c.handle == nil {
		c.handle = new(Handle)
		c.created++
		c.logger.Debug("created table", "rows", len(rows))
	} else {
		c.logger.Debug("reusing table", "rows", len(rows), "query", c.handle.query)
	}
	h := c.handle
	h.rows = make([]elecciones.RowRecord, len(rows))
	copy(h.rows, rows)
	h.search = make([]string, len(rows))
	for i := range rows {
		h.search[i] = searchText(rows[i])
	}
	c.reorder()
	h.refilter()
	return h
}

// Handle returns the live table, or nil before Initialize.
func (c *Controller) Handle() *Handle {
	return c.handle
}

// Created returns the number of tables this controller has constructed.
func (c *Controller) Created() int {
	return c.created
}

// FilterByText shows the rows matching query and returns how many there are.
// Every whitespace-separated term (or double-quoted phrase) has to appear,
// ignoring case, in one of the visible columns. An empty query shows every
// row.
func (c *Controller) FilterByText(query string) int {
	h := c.handle
	if h == nil {
		return 0
	}
	h.query = query
	h.terms = splitTerms(query)
	h.code = ""
	h.refilter()
	return len(h.visible)
}

// FilterByCode shows only the row tagged with the given department code.
func (c *Controller) FilterByCode(code string) int {
	h := c.handle
	if h == nil {
		return 0
	}
	h.query = ""
	h.terms = nil
	h.code = code
	h.refilter()
	return len(h.visible)
}

// Clear removes any filter.
func (c *Controller) Clear() {
	c.FilterByText("")
}

// Sort orders the rows by col. Text columns use the controller's collation;
// ties keep their original order.
func (c *Controller) Sort(col Column, dir Direction) {
	h := c.handle
	if h == nil {
		return
	}
	h.sorted = true
	h.sortCol = col
	h.sortDir = dir
	c.reorder()
	h.refilter()
}

func (c *Controller) reorder() {
	h := c.handle
	h.order = make([]int, len(h.rows))
	for i := range h.order {
		h.order[i] = i
	}
	if !h.sorted {
		return
	}
	var less func(a, b elecciones.RowRecord) bool
	switch h.sortCol {
	case Stations:
		less = func(a, b elecciones.RowRecord) bool { return a.Stations < b.Stations }
	default:
		col := collate.New(c.language)
		less = func(a, b elecciones.RowRecord) bool {
			return col.CompareString(Cell(a, h.sortCol), Cell(b, h.sortCol)) < 0
		}
	}
	sort.SliceStable(h.order, func(i, j int) bool {
		a, b := h.rows[h.order[i]], h.rows[h.order[j]]
		if h.sortDir == Descending {
			return less(b, a)
		}
		return less(a, b)
	})
}

func (h *Handle) refilter() {
	h.visible = h.visible[:0]
	for _, i := range h.order {
		if h.matches(i) {
			h.visible = append(h.visible, i)
		}
	}
}

func (h *Handle) matches(i int) bool {
	if h.code != "" {
		return h.rows[i].Code == h.code
	}
	for _, term := range h.terms {
		if !strings.Contains(h.search[i], term) {
			return false
		}
	}
	return true
}

// Visible returns the rows currently shown, in display order.
func (c *Controller) Visible() []elecciones.RowRecord {
	h := c.handle
	if h == nil {
		return nil
	}
	rows := make([]elecciones.RowRecord, len(h.visible))
	for i, idx := range h.visible {
		rows[i] = h.rows[idx]
	}
	return rows
}

// Query returns the current search text.
func (c *Controller) Query() string {
	if c.handle == nil {
		return ""
	}
	return c.handle.query
}

// Code returns the department code the table is filtered to, if any.
func (c *Controller) Code() string {
	if c.handle == nil {
		return ""
	}
	return c.handle.code
}

// Len returns the total number of rows, shown or not.
func (c *Controller) Len() int {
	if c.handle == nil {
		return 0
	}
	return len(c.handle.rows)
}

// SortedBy returns the current sort column and direction; ok is false when
// the rows are in their original order.
func (c *Controller) SortedBy() (col Column, dir Direction, ok bool) {
	if c.handle == nil || !c.handle.sorted {
		return 0, Ascending, false
	}
	return c.handle.sortCol, c.handle.sortDir, true
}
