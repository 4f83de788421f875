// Package result renders a classification returned by the scoring backend.
package result

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prahar/internal/quiz"
	"github.com/abhisek/prahar/internal/screen"
	"github.com/abhisek/prahar/internal/ui/components"
	"github.com/abhisek/prahar/internal/ui/layout"
	"github.com/abhisek/prahar/internal/ui/theme"
)

// RevealDelay is how long the heading shows before the details appear.
const RevealDelay = 800 * time.Millisecond

// RevealMsg ends the reveal animation of the display with the same ID.
type RevealMsg struct {
	ID uint64
}

var lastID atomic.Uint64

// Display shows one result. It never changes the result it was given.
type Display struct {
	id       uint64
	result   *quiz.Result
	revealed bool
	retake   components.Button

	// Width is the render width, set by the hosting screen.
	Width int
}

// New creates a display for r. onReset runs when the player retakes the
// quiz after the reveal.
func New(r *quiz.Result, onReset func() tea.Cmd) *Display {
	return &Display{
		id:     lastID.Add(1),
		result: r,
		retake: components.NewButton("Retake Quiz", false, onReset),
		Width:  80,
	}
}

// ID identifies this display's reveal timer.
func (d *Display) ID() uint64 {
	return d.id
}

// Revealed reports whether the details are visible.
func (d *Display) Revealed() bool {
	return d.revealed
}

// Init starts the one-shot reveal timer.
func (d *Display) Init() tea.Cmd {
	id := d.id
	return tea.Tick(RevealDelay, func(time.Time) tea.Msg {
		return RevealMsg{ID: id}
	})
}

// Update handles the reveal timer and the retake control. Timers from
// other displays are ignored.
func (d *Display) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case RevealMsg:
		if msg.ID == d.id {
			d.revealed = true
			d.retake.Active = true
		}
		return nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "r", "enter":
			var cmd tea.Cmd
			d.retake, cmd = d.retake.Press()
			return cmd
		}

	case screen.PointerMsg:
		if msg.Kind == screen.PointerClick && d.revealed && msg.Y == d.buttonRow() {
			var cmd tea.Cmd
			d.retake, cmd = d.retake.Press()
			return cmd
		}
	}
	return nil
}

// KeyHints lists the result controls.
func (d *Display) KeyHints() []layout.KeyHint {
	if !d.revealed {
		return nil
	}
	return []layout.KeyHint{{Key: "r", Description: "Retake Quiz"}}
}

func (d *Display) heading(width int) []string {
	r := d.result
	bg := theme.Hex(r.Color)
	badge := lipgloss.NewStyle().
		Background(bg).
		Foreground(theme.Contrast(bg)).
		Bold(true).
		Padding(0, 2).
		Render(r.Name)

	return []string{
		theme.Title.Render("Your Prahar Personality"),
		"",
		badge,
		"",
		confidenceBar(r.Confidence, bg, min(width, 50)),
	}
}

func (d *Display) details(width int) []string {
	r := d.result
	body := theme.Body.Width(width)

	lines := []string{"", body.Render(r.Description)}
	if r.Reading != "" {
		lines = append(lines, "", theme.Hint.Width(width).Render(r.Reading))
	}
	lines = append(lines,
		"",
		theme.Subtitle.Render("Time of Day: ")+theme.Body.Render(r.TimeOfDay),
		theme.Subtitle.Render("Confidence: ")+theme.Body.Render(r.FormatConfidence()),
		"",
	)
	return lines
}

func (d *Display) textWidth() int {
	return max(min(d.Width-4, 76), 20)
}

// buttonRow is the first row of the retake control.
func (d *Display) buttonRow() int {
	w := d.textWidth()
	parts := append(d.heading(w), d.details(w)...)
	return lipgloss.Height(strings.Join(parts, "\n"))
}

// View renders the result.
func (d *Display) View() string {
	w := d.textWidth()
	parts := d.heading(w)
	if d.revealed {
		parts = append(parts, d.details(w)...)
		parts = append(parts, d.retake.View())
	}
	return strings.Join(parts, "\n")
}

// confidenceBar draws confidence (0..1) as a bar in the result colour.
func confidenceBar(confidence float64, fill color.Color, width int) string {
	barWidth := max(width-6, 4)
	filled := min(max(int(math.Round(confidence*float64(barWidth))), 0), barWidth)

	bar := lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))
	return bar + theme.Subtitle.Render(fmt.Sprintf(" %3d%%", int(math.Round(confidence*100))))
}
