package table

import (
	"strings"

	"github.com/kevinburke/elecciones"
	"golang.org/x/text/cases"
)

// A Caser holds state, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// searchText is what a search term is matched against: the visible columns
// of r, folded.
func searchText(r elecciones.RowRecord) string {
	parts := make([]string, len(Columns))
	for i, c := range Columns {
		parts[i] = Cell(r, c)
	}
	return fold(strings.Join(parts, "  "))
}

// splitTerms splits a query on whitespace, keeping double-quoted phrases
// together.
func splitTerms(query string) []string {
	var terms []string
	var cur strings.Builder
	quoted := false
	flush := func() {
		if cur.Len() > 0 {
			terms = append(terms, fold(cur.String()))
			cur.Reset()
		}
	}
	for _, r := range query {
		switch {
		case r == '"':
			if quoted {
				flush()
			}
			quoted = !quoted
		case !quoted && (r == ' ' || r == '\t' || r == '\n'):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return terms
}
