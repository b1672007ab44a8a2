package app

// Pane is the part of the dashboard that receives navigation keys
type Pane int

const (
	PaneGraph Pane = iota
	PaneActions
	PaneStatus
	PaneDetails
)

var paneNames = []string{"Graph", "Actions", "Status", "Details"}

func (p Pane) String() string {
	if int(p) < len(paneNames) {
		return paneNames[p]
	}
	return "Unknown"
}

// next cycles forward through the panes
func (p Pane) next() Pane {
	return Pane((int(p) + 1) % len(paneNames))
}

// prev cycles backward through the panes
func (p Pane) prev() Pane {
	return Pane((int(p) + len(paneNames) - 1) % len(paneNames))
}

// Mode is the dialog currently capturing the keyboard
type Mode int

const (
	ModeNormal Mode = iota
	ModeConfirm
	ModeInput
	ModeBranchSelect
)

func (m Mode) String() string {
	names := []string{"Normal", "Confirm", "Input", "BranchSelect"}
	if int(m) < len(names) {
		return names[m]
	}
	return "Unknown"
}
