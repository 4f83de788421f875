package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prahar/internal/prahar"
	"github.com/abhisek/prahar/internal/ui/theme"
)

// ProgressBar shows how far through the quiz the player is. The filled
// part takes the Prahar colour for the current fraction.
type ProgressBar struct {
	Answered int
	Total    int
	Percent  float64 // 0..100
	Width    int
}

// NewProgressBar builds a bar for answered/total with the given percent.
func NewProgressBar(answered, total int, percent float64, width int) ProgressBar {
	return ProgressBar{
		Answered: answered,
		Total:    total,
		Percent:  percent,
		Width:    width,
	}
}

// Filled returns the number of filled cells for a bar of barWidth cells.
func (p ProgressBar) Filled(barWidth int) int {
	filled := int(float64(barWidth) * p.Percent / 100)
	return min(max(filled, 0), barWidth)
}

func (p ProgressBar) label() string {
	return fmt.Sprintf("%d/%d answered", p.Answered, p.Total)
}

// View renders the bar.
func (p ProgressBar) View() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Render(p.label())

	barWidth := max(p.Width-lipgloss.Width(label)-2, 4)
	filled := p.Filled(barWidth)

	fill := theme.Hex(prahar.ColorForFraction(p.Percent / 100))
	filledStr := lipgloss.NewStyle().
		Background(fill).
		Render(strings.Repeat(" ", filled))
	emptyStr := theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	return filledStr + emptyStr + "  " + label
}
