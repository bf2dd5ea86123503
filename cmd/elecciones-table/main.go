// The elecciones-table binary prints the department table, optionally
// searched and sorted, the way the site shows it.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/kevinburke/elecciones"
	"github.com/kevinburke/elecciones/stats"
	"github.com/kevinburke/elecciones/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func parseColumn(s string) (table.Column, error) {
	switch strings.ToLower(s) {
	case "department", "departamento":
		return table.Department, nil
	case "stations", "mesas":
		return table.Stations, nil
	case "party", "partido":
		return table.Party, nil
	default:
		return 0, fmt.Errorf("unknown column %q", s)
	}
}

func printRows(w io.Writer, rows []elecciones.RowRecord) {
	p := message.NewPrinter(language.Spanish)
	for _, r := range rows {
		p.Fprintf(w, "%-2s  %-30s %8d  %s\n", r.Code, r.Department, r.Stations, r.Party)
	}
}

func printParties(w io.Writer, features []*elecciones.Feature) {
	p := message.NewPrinter(language.Spanish)
	for _, pc := range stats.ByParty(features) {
		p.Fprintf(w, "%-35s %s %3d departments %8d stations\n", pc.Name, pc.Color, pc.Departments, pc.Stations)
	}
}

func main() {
	dataFile := flag.String("data", "data/elecciones2018.geo.json", "GeoJSON file with the results")
	search := flag.String("search", "", "Show only rows matching this search")
	code := flag.String("code", "", "Show only the department with this code")
	sortFlag := flag.String("sort", "", "Sort by department, stations or party")
	desc := flag.Bool("desc", false, "Sort in descending order")
	parties := flag.Bool("parties", false, "Print departments won per party instead")
	flag.Parse()

	features, err := elecciones.LoadFile(*dataFile)
	if err != nil {
		log.Fatal(err)
	}
	if *parties {
		printParties(os.Stdout, features)
		return
	}
	c := table.New()
	c.Initialize(elecciones.Rows(features))
	if *sortFlag != "" {
		col, err := parseColumn(*sortFlag)
		if err != nil {
			log.Fatal(err)
		}
		dir := table.Ascending
		if *desc {
			dir = table.Descending
		}
		c.Sort(col, dir)
	}
	switch {
	case *code != "":
		c.FilterByCode(*code)
	case *search != "":
		c.FilterByText(*search)
	}
	printRows(os.Stdout, c.Visible())
	fmt.Fprintf(os.Stderr, "%d of %d departments\n", len(c.Visible()), c.Len())
}
