package mapview

import "github.com/kevinburke/elecciones"

// ShapeState is a drawn department at a point in time.
type ShapeState struct {
	Code    string
	Name    string
	Path    string
	Fill    elecciones.Color
	Opacity float64
}

// A Scene is everything needed to render the map once.
type Scene struct {
	Width, Height  float64
	Layers         []string
	Transform      Transform
	Shapes         []ShapeState
	Label          string
	LabelX, LabelY float64
	Err            error
}

// Scene returns the settled state of the map: transitions are shown at their
// end.
func (v *View) Scene() *Scene {
	sc := &Scene{
		Width:     v.size.Width,
		Height:    v.size.Height,
		Layers:    v.layers,
		Transform: v.Transform(),
		Shapes:    make([]ShapeState, len(v.shapes)),
		Label:     v.label,
		LabelX:    LabelX,
		LabelY:    LabelY,
		Err:       v.err,
	}
	for i, s := range v.shapes {
		sc.Shapes[i] = ShapeState{
			Code:    s.Feature.Code,
			Name:    s.Feature.Name,
			Path:    s.Path,
			Fill:    s.Fill,
			Opacity: s.Opacity,
		}
	}
	return sc
}
