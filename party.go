package elecciones

// Party is a party that won at least one department in 2018.
type Party int

const (
	PartyUnknown Party = iota
	PartyCentroDemocratico
	PartyCambioRadical
	PartyConservador
	PartyUnidadNacional
	PartyLiberal
	PartyAlianzaVerde
)

var partyNames = [...]string{
	PartyUnknown:           "",
	PartyCentroDemocratico: "Partido Centro Democrático",
	PartyCambioRadical:     "Partido Cambio Radical",
	PartyConservador:       "Partido Conservador Colombiano",
	PartyUnidadNacional:    "Partido Social de Unidad Nacional",
	PartyLiberal:           "Partido Liberal Colombiano",
	PartyAlianzaVerde:      "Partido Alianza Verde",
}

// Parties lists the known parties in declaration order.
var Parties = []Party{
	PartyCentroDemocratico,
	PartyCambioRadical,
	PartyConservador,
	PartyUnidadNacional,
	PartyLiberal,
	PartyAlianzaVerde,
}

// ParseParty returns the party with the given name as it appears in the
// election file, or PartyUnknown.
func ParseParty(name string) Party {
	for _, p := range Parties {
		if partyNames[p] == name {
			return p
		}
	}
	return PartyUnknown
}

func (p Party) String() string {
	if p <= PartyUnknown || int(p) >= len(partyNames) {
		return "unknown"
	}
	return partyNames[p]
}

// A Color is a CSS hex color.
type Color string

// FallbackColor fills departments whose winner is not in PartyColorMap.
const FallbackColor Color = "#cccccc"

// PartyColorMap holds the fill color for each known party.
var PartyColorMap = map[Party]Color{
	PartyCentroDemocratico: "#54b8ec",
	PartyCambioRadical:     "#de818a",
	PartyConservador:       "#0460a7",
	PartyUnidadNacional:    "#e46f00",
	PartyLiberal:           "#c0000d",
	PartyAlianzaVerde:      "#007d3c",
}

// PartyColor returns the color for p, or FallbackColor.
func PartyColor(p Party) Color {
	c, ok := PartyColorMap[p]
	if !ok {
		return FallbackColor
	}
	return c
}

// FillRule returns the fill color for a department. It never returns an empty
// color.
func FillRule(f *Feature) Color {
	return PartyColor(f.Party())
}
