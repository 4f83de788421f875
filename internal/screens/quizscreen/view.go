package quizscreen

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prahar/internal/quiz"
	"github.com/abhisek/prahar/internal/ui/components"
	"github.com/abhisek/prahar/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch s.state.Phase {
	case quiz.PhaseLoading:
		return s.viewBusy("Loading questions...")
	case quiz.PhaseSubmitting:
		return s.viewBusy("Reading your answers...")
	case quiz.PhaseError:
		return s.viewError()
	case quiz.PhaseResult:
		if s.display != nil {
			return strings.Repeat("\n", s.resultTop()) + s.display.View()
		}
		return ""
	}
	return s.viewQuestion()
}

func (s *QuizScreen) viewBusy(label string) string {
	return "\n " + s.spinner.View() + " " + theme.Subtitle.Render(label)
}

func (s *QuizScreen) viewError() string {
	return strings.Join([]string{
		"",
		" " + theme.ErrorText.Render(s.state.Err),
		"",
		" " + theme.Hint.Render("Press r to try again."),
	}, "\n")
}

// preamble is everything above the card: progress bar and caption.
func (s *QuizScreen) preamble(card components.QuestionCard) string {
	bar := components.NewProgressBar(s.state.Answers.Answered(), len(s.state.Answers),
		quiz.Progress(s.state.Answers), min(s.width, 84)-2)
	return strings.Join([]string{
		"",
		" " + bar.View(),
		"",
		" " + card.Caption(),
	}, "\n")
}

// cardRect is the card's position in content coordinates.
func (s *QuizScreen) cardRect(card components.QuestionCard) components.Rect {
	top := lipgloss.Height(s.preamble(card))
	plain := card
	plain.Tilt = components.Tilt{}
	return components.Rect{
		X: 0,
		Y: top,
		W: lipgloss.Width(plain.View()) + 2,
		H: plain.Height(),
	}
}

// resultTop is the blank rows above the result display.
func (s *QuizScreen) resultTop() int {
	return 1
}

func (s *QuizScreen) viewQuestion() string {
	card, ok := s.card()
	if !ok {
		return ""
	}

	parts := []string{s.preamble(card), card.View()}

	if s.state.Err != "" {
		parts = append(parts, " "+theme.ErrorText.Render(s.state.Err))
	} else {
		parts = append(parts, "")
	}

	nav := []string{}
	if s.state.Current > 0 {
		nav = append(nav, theme.ButtonInactive.Render("← Previous"))
	}
	if s.state.IsLast() {
		submit := components.NewButton("Submit", s.state.Answers.Complete(), nil)
		nav = append(nav, submit.View())
	} else {
		nav = append(nav, theme.ButtonInactive.Render("Next →"))
	}
	parts = append(parts, " "+lipgloss.JoinHorizontal(lipgloss.Center, nav...))

	return strings.Join(parts, "\n")
}
