package elecciones

// An Event is a user interaction with the map. Departments are identified by
// their code.
type Event interface {
	event()
}

// HoverEnter is sent when the pointer enters a department.
type HoverEnter struct{ Code string }

// HoverExit is sent when the pointer leaves a department.
type HoverExit struct{ Code string }

// Select is sent when a department is clicked.
type Select struct{ Code string }

// DeselectBackground is sent when the map background is clicked.
type DeselectBackground struct{}

func (HoverEnter) event()         {}
func (HoverExit) event()          {}
func (Select) event()             {}
func (DeselectBackground) event() {}
