// Package quizscreen hosts the quiz: it executes the effects requested by
// the quiz state machine and renders the question card, the error states
// and the result display.
package quizscreen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/prahar/internal/quiz"
	"github.com/abhisek/prahar/internal/router"
	"github.com/abhisek/prahar/internal/screen"
	"github.com/abhisek/prahar/internal/screens/about"
	"github.com/abhisek/prahar/internal/screens/result"
	"github.com/abhisek/prahar/internal/ui/components"
	"github.com/abhisek/prahar/internal/ui/layout"
	"github.com/abhisek/prahar/internal/ui/theme"
)

// Backend is the scoring service the quiz talks to.
type Backend interface {
	FetchQuestions(ctx context.Context) ([]quiz.Question, error)
	Submit(ctx context.Context, answers quiz.Answers) (*quiz.Result, error)
}

// QuizScreen is the quiz container.
type QuizScreen struct {
	ctx     context.Context
	backend Backend
	log     *zap.Logger

	state   quiz.State
	display *result.Display

	// cursor is the highlighted option of the card at cursorFor.
	cursor    int
	cursorFor int
	tilt      components.Tilt

	spinner  spinner.Model
	spinning bool
	keys     keyMap
	width    int
}

var _ screen.Screen = (*QuizScreen)(nil)

// New creates the quiz screen. In-flight requests are bound to ctx; once
// it is cancelled their responses are discarded.
func New(ctx context.Context, backend Backend, log *zap.Logger) *QuizScreen {
	if log == nil {
		log = zap.NewNop()
	}
	return &QuizScreen{
		ctx:       ctx,
		backend:   backend,
		log:       log,
		state:     quiz.NewState(),
		cursorFor: -1,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
		keys:  newKeyMap(),
		width: 80,
	}
}

// State returns the current quiz state.
func (s *QuizScreen) State() quiz.State {
	return s.state
}

func (s *QuizScreen) Title() string {
	if s.state.Phase == quiz.PhaseResult {
		return "Your Result"
	}
	return "Personality Quiz"
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.dispatch(quiz.Start{})
}

// Status is the answered count shown in the header.
func (s *QuizScreen) Status() string {
	if len(s.state.Answers) == 0 {
		return ""
	}
	return fmt.Sprintf("%d/%d  ", s.state.Answers.Answered(), len(s.state.Answers))
}

// KeyHints lists the controls for the current phase.
func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.state.Phase {
	case quiz.PhaseReady:
		h := hints(s.keys.Answer, s.keys.Prev, s.keys.Next, s.keys.Submit, s.keys.About)
		if s.state.Err != "" {
			h = append(h, hints(s.keys.Dismiss)...)
		}
		return h
	case quiz.PhaseError:
		return hints(s.keys.Retry, s.keys.About)
	case quiz.PhaseResult:
		if s.display != nil {
			return s.display.KeyHints()
		}
	}
	return nil
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		if s.display != nil {
			s.display.Width = msg.Width
		}
		return s, nil

	case quiz.QuestionsFailed:
		s.log.Warn("fetch questions", zap.Error(msg.Err))
		return s, s.dispatch(msg)

	case quiz.SubmitFailed:
		s.log.Warn("submit answers", zap.Error(msg.Err))
		return s, s.dispatch(msg)

	case quiz.Event:
		return s, s.dispatch(msg)

	case result.RevealMsg:
		if s.display != nil {
			return s, s.display.Update(msg)
		}
		return s, nil

	case spinner.TickMsg:
		if !s.busy() {
			s.spinning = false
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case screen.PointerMsg:
		return s, s.handlePointer(msg)

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if key.Matches(msg, s.keys.About) && s.state.Phase != quiz.PhaseResult {
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: about.New()}
		}
	}

	switch s.state.Phase {
	case quiz.PhaseError:
		if key.Matches(msg, s.keys.Retry) {
			return s.dispatch(quiz.Retry{})
		}

	case quiz.PhaseResult:
		if s.display != nil {
			return s.display.Update(msg)
		}

	case quiz.PhaseReady:
		switch {
		case key.Matches(msg, s.keys.Prev):
			return s.dispatch(quiz.Prev{})
		case key.Matches(msg, s.keys.Next):
			return s.dispatch(quiz.Next{})
		case key.Matches(msg, s.keys.Submit):
			return s.dispatch(quiz.Submit{})
		case key.Matches(msg, s.keys.Dismiss):
			return s.dispatch(quiz.DismissError{})
		}
		card, ok := s.card()
		if !ok {
			return nil
		}
		card, cmd := card.Update(msg)
		s.cursor = card.Cursor
		return cmd
	}
	return nil
}

func (s *QuizScreen) handlePointer(msg screen.PointerMsg) tea.Cmd {
	if s.state.Phase == quiz.PhaseResult {
		if s.display != nil {
			msg.Y -= s.resultTop()
			return s.display.Update(msg)
		}
		return nil
	}

	card, ok := s.card()
	if !ok || s.state.Phase != quiz.PhaseReady {
		s.tilt = components.Tilt{}
		return nil
	}

	rect := s.cardRect(card)
	s.tilt = components.TiltAt(rect, msg.X, msg.Y)
	if msg.Kind != screen.PointerClick || !rect.Contains(msg.X, msg.Y) {
		return nil
	}
	card, cmd := card.Click(msg.Y - rect.Y)
	s.cursor = card.Cursor
	return cmd
}

// dispatch feeds ev through the state machine and turns the requested
// effects into commands.
func (s *QuizScreen) dispatch(ev quiz.Event) tea.Cmd {
	prev := s.state.Phase

	next, effects := quiz.Transition(s.state, ev)
	s.state = next

	var cmds []tea.Cmd
	for _, eff := range effects {
		cmds = append(cmds, s.run(eff))
	}

	switch {
	case s.state.Phase == quiz.PhaseResult && prev != quiz.PhaseResult:
		s.display = result.New(s.state.Result, s.resetCmd)
		s.display.Width = s.width
		cmds = append(cmds, s.display.Init())
	case s.state.Phase != quiz.PhaseResult:
		s.display = nil
	}

	if s.busy() && !s.spinning {
		s.spinning = true
		cmds = append(cmds, s.spinner.Tick)
	}

	s.syncCursor()
	return tea.Batch(cmds...)
}

func (s *QuizScreen) run(eff quiz.Effect) tea.Cmd {
	switch e := eff.(type) {
	case quiz.FetchQuestions:
		return s.fetchCmd(e.Epoch)
	case quiz.SubmitAnswers:
		return s.submitCmd(e.Epoch, e.Answers)
	case quiz.ScheduleAdvance:
		epoch, to := e.Epoch, e.To
		return tea.Tick(e.After, func(time.Time) tea.Msg {
			return quiz.AdvanceDue{Epoch: epoch, To: to}
		})
	}
	return nil
}

func (s *QuizScreen) fetchCmd(epoch uint64) tea.Cmd {
	ctx, backend := s.ctx, s.backend
	return func() tea.Msg {
		questions, err := backend.FetchQuestions(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return quiz.QuestionsFailed{Epoch: epoch, Err: err}
		}
		if len(questions) == 0 {
			return quiz.QuestionsFailed{Epoch: epoch, Err: errors.New("empty question set")}
		}
		return quiz.QuestionsLoaded{Epoch: epoch, Questions: questions}
	}
}

func (s *QuizScreen) submitCmd(epoch uint64, answers quiz.Answers) tea.Cmd {
	ctx, backend := s.ctx, s.backend
	return func() tea.Msg {
		res, err := backend.Submit(ctx, answers)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return quiz.SubmitFailed{Epoch: epoch, Err: err}
		}
		return quiz.SubmitSucceeded{Epoch: epoch, Result: res}
	}
}

func (s *QuizScreen) resetCmd() tea.Cmd {
	return func() tea.Msg { return quiz.Reset{} }
}

func (s *QuizScreen) busy() bool {
	return s.state.Phase == quiz.PhaseLoading || s.state.Phase == quiz.PhaseSubmitting
}

// syncCursor moves the option cursor onto the stored answer whenever the
// pointer lands on a different question.
func (s *QuizScreen) syncCursor() {
	if s.cursorFor == s.state.Current && s.state.Phase == quiz.PhaseReady {
		return
	}
	s.cursorFor = s.state.Current
	s.cursor = max(s.state.SelectedAt(s.state.Current), 0)
	s.tilt = components.Tilt{}
}

func (s *QuizScreen) card() (components.QuestionCard, bool) {
	q, ok := s.state.CurrentQuestion()
	if !ok {
		return components.QuestionCard{}, false
	}
	index := s.state.Current
	card := components.NewQuestionCard(q, index+1, len(s.state.Questions),
		s.state.SelectedAt(index), min(s.width, 84), func(opt int) tea.Cmd {
			return func() tea.Msg {
				return quiz.AnswerSelected{Index: index, Option: opt}
			}
		})
	card.Cursor = s.cursor
	card.Tilt = s.tilt
	return card, true
}
