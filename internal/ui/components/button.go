package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prahar/internal/ui/theme"
)

// Button is a single-action control such as "Take Quiz Again".
type Button struct {
	Label   string
	Active  bool
	OnPress func() tea.Cmd
}

// NewButton creates a new button.
func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Active:  active,
		OnPress: onPress,
	}
}

// Update fires OnPress on Enter while the button is active.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Active {
		return b, nil
	}
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "enter" {
		return b.Press()
	}
	return b, nil
}

// Press fires OnPress if the button is active.
func (b Button) Press() (Button, tea.Cmd) {
	if !b.Active || b.OnPress == nil {
		return b, nil
	}
	return b, b.OnPress()
}

// View renders the button.
func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}
