package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prahar/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for a short status string shown
// on the right of the header.
type StatusProvider interface {
	Status() string
}

// PointerKind distinguishes pointer motion from a click.
type PointerKind int

const (
	PointerMove PointerKind = iota
	PointerClick
)

// PointerMsg is a mouse event in content coordinates: X is the terminal
// column, Y the row within the screen's full (unscrolled) view.
type PointerMsg struct {
	Kind PointerKind
	X, Y int
}
