// Package about explains the eight Prahars behind the quiz.
package about

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prahar/internal/prahar"
	"github.com/abhisek/prahar/internal/screen"
	"github.com/abhisek/prahar/internal/ui/layout"
	"github.com/abhisek/prahar/internal/ui/theme"
)

const intro = "The day is divided into eight Prahars of about three hours each. " +
	"Answer ten questions and the quiz tells you which one you belong to."

// AboutScreen lists the Prahars with their colours.
type AboutScreen struct{}

var _ screen.Screen = (*AboutScreen)(nil)

func New() *AboutScreen {
	return &AboutScreen{}
}

func (a *AboutScreen) Init() tea.Cmd {
	return nil
}

func (a *AboutScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return a, nil
}

func (a *AboutScreen) Title() string {
	return "About"
}

func (a *AboutScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (a *AboutScreen) View(width, height int) string {
	textWidth := max(min(width-4, 76), 20)

	sections := []string{
		RenderBanner(width),
		"",
		theme.Body.Width(textWidth).Render(intro),
		"",
	}

	for _, p := range prahar.All() {
		bg := theme.Hex(p.Color)
		swatch := lipgloss.NewStyle().Background(bg).Render("    ")
		name := theme.Body.Bold(true).Render(p.Name)
		tod := theme.Subtitle.Render(fmt.Sprintf("(%s)", p.TimeOfDay))
		sections = append(sections, fmt.Sprintf("%d  %s  %s %s", p.Index, swatch, name, tod))
	}

	return lipgloss.NewStyle().
		Padding(0, 2).
		Render(strings.Join(sections, "\n"))
}
