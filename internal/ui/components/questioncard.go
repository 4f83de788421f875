package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prahar/internal/quiz"
	"github.com/abhisek/prahar/internal/ui/theme"
)

// optionLabels letters the options of a question.
var optionLabels = []string{"A", "B", "C", "D"}

// Rect is a cell-space rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) is inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Tilt is the pointer-driven card rotation. Both angles are zero when the
// pointer is outside the card.
type Tilt struct {
	RotateX float64
	RotateY float64
}

// TiltAt computes the tilt for a pointer at (x, y) over r:
// RotateX = (y-cy)/10, RotateY = (cx-x)/10, with (cx, cy) the centre of r.
func TiltAt(r Rect, x, y int) Tilt {
	if !r.Contains(x, y) {
		return Tilt{}
	}
	cx := float64(r.X) + float64(r.W)/2
	cy := float64(r.Y) + float64(r.H)/2
	return Tilt{
		RotateX: (float64(y) - cy) / 10,
		RotateY: (cx - float64(x)) / 10,
	}
}

// QuestionCard renders one question and reports choices through OnSelect.
// It holds no quiz data of its own; Cursor is the only local UI state.
type QuestionCard struct {
	Question quiz.Question
	Number   int // 1-based
	Total    int
	Selected int // quiz.Unanswered or an option index
	Cursor   int
	Width    int
	Tilt     Tilt
	OnSelect func(option int) tea.Cmd
}

// NewQuestionCard starts the cursor on the stored answer, or on A.
func NewQuestionCard(q quiz.Question, number, total, selected, width int, onSelect func(int) tea.Cmd) QuestionCard {
	cursor := 0
	if selected >= 0 && selected < len(q.Options) {
		cursor = selected
	}
	return QuestionCard{
		Question: q,
		Number:   number,
		Total:    total,
		Selected: selected,
		Cursor:   cursor,
		Width:    width,
		OnSelect: onSelect,
	}
}

// Update handles a-d / 1-4 direct picks plus cursor movement and Enter.
func (c QuestionCard) Update(msg tea.Msg) (QuestionCard, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
		return c, nil
	case "down", "j":
		if c.Cursor < len(c.Question.Options)-1 {
			c.Cursor++
		}
		return c, nil
	case "enter", "space":
		return c.choose(c.Cursor)
	}

	if len(key) == 1 {
		switch ch := key[0]; {
		case ch >= 'a' && ch <= 'd':
			return c.choose(int(ch - 'a'))
		case ch >= '1' && ch <= '4':
			return c.choose(int(ch - '1'))
		}
	}
	return c, nil
}

// Click selects the option under the card-relative row y, if any.
func (c QuestionCard) Click(y int) (QuestionCard, tea.Cmd) {
	opt, ok := c.OptionAt(y)
	if !ok {
		return c, nil
	}
	return c.choose(opt)
}

func (c QuestionCard) choose(opt int) (QuestionCard, tea.Cmd) {
	if opt < 0 || opt >= len(c.Question.Options) {
		return c, nil
	}
	c.Cursor = opt
	if c.OnSelect == nil {
		return c, nil
	}
	return c, c.OnSelect(opt)
}

// innerWidth is the text width inside the card border and padding.
func (c QuestionCard) innerWidth() int {
	return max(c.Width-2-4-2, 10) // border, padding, tilt margin
}

func (c QuestionCard) heading() string {
	style := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(c.innerWidth())
	return style.Render(c.Question.Prompt)
}

func (c QuestionCard) option(i int) string {
	label := "?"
	if i < len(optionLabels) {
		label = optionLabels[i]
	}

	marker := "  "
	style := theme.Unselected
	switch {
	case i == c.Selected:
		marker = "● "
		style = theme.Selected
	case i == c.Cursor:
		marker = "▸ "
		style = theme.Cursor
	}
	if i == c.Cursor && i == c.Selected {
		marker = "▸●"
	}

	line := fmt.Sprintf("%s %s)  %s", marker, label, c.Question.Options[i])
	return style.Width(c.innerWidth()).Render(line)
}

// OptionAt maps a card-relative row to an option index.
func (c QuestionCard) OptionAt(y int) (int, bool) {
	row := 2 + lipgloss.Height(c.heading()) + 1 // border, padding, heading, gap
	for i := range c.Question.Options {
		h := lipgloss.Height(c.option(i))
		if y >= row && y < row+h {
			return i, true
		}
		row += h
	}
	return 0, false
}

// Height is the rendered height in rows.
func (c QuestionCard) Height() int {
	return lipgloss.Height(c.View())
}

// View renders the card. The tilt shifts it one column toward the
// pointer and tints the border by vertical lean.
func (c QuestionCard) View() string {
	parts := []string{c.heading(), ""}
	for i := range c.Question.Options {
		parts = append(parts, c.option(i))
	}

	border := theme.Border
	switch {
	case c.Tilt.RotateX < 0:
		border = theme.Secondary
	case c.Tilt.RotateX > 0:
		border = theme.Accent
	}

	margin := 1
	switch {
	case c.Tilt.RotateY > 0:
		margin = 0
	case c.Tilt.RotateY < 0:
		margin = 2
	}

	return theme.Card.
		BorderForeground(border).
		MarginLeft(margin).
		Width(c.innerWidth() + 4 + 2).
		Render(strings.Join(parts, "\n"))
}

// Caption is the "Question n of N" line shown above the card.
func (c QuestionCard) Caption() string {
	return theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", c.Number, c.Total))
}
