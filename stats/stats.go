package stats

import (
	"encoding/json"
	"sort"

	"github.com/kevinburke/elecciones"
)

// PartyCount is how many departments, and how many of their reporting
// stations, a party won.
type PartyCount struct {
	Party       elecciones.Party
	Name        string
	Color       elecciones.Color
	Departments int
	Stations    int
}

type PartyCounts []*PartyCount

// MarshalJSON encodes the counts as [name, color, departments] triples for the
// page legend.
func (p PartyCounts) MarshalJSON() ([]byte, error) {
	a := make([][3]interface{}, len(p))
	for i := 0; i < len(p); i++ {
		a[i][0] = p[i].Name
		a[i][1] = p[i].Color
		a[i][2] = p[i].Departments
	}
	return json.Marshal(a)
}

// ByParty counts departments per winning party, most departments first.
// Departments are grouped by the raw winner name, so each party without a
// color gets its own entry, drawn in the fallback color.
func ByParty(features []*elecciones.Feature) PartyCounts {
	mp := make(map[string]*PartyCount)
	for i := 0; i < len(features); i++ {
		name := features[i].PartyWinner
		pc, ok := mp[name]
		if !ok {
			pc = &PartyCount{
				Party: features[i].Party(),
				Name:  name,
				Color: elecciones.FillRule(features[i]),
			}
			mp[name] = pc
		}
		pc.Departments++
		pc.Stations += features[i].Stations
	}
	result := make(PartyCounts, 0, len(mp))
	for _, pc := range mp {
		result = append(result, pc)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Departments != result[j].Departments {
			return result[i].Departments > result[j].Departments
		}
		if result[i].Stations != result[j].Stations {
			return result[i].Stations > result[j].Stations
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// TotalStations returns the number of reporting stations across all
// departments.
func TotalStations(features []*elecciones.Feature) int {
	total := 0
	for i := 0; i < len(features); i++ {
		total += features[i].Stations
	}
	return total
}
