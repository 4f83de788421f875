package app

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prahar/internal/prahar"
	"github.com/abhisek/prahar/internal/quiz"
	"github.com/abhisek/prahar/internal/router"
	"github.com/abhisek/prahar/internal/screen"
	"github.com/abhisek/prahar/internal/ui/theme"
)

// tallScreen renders a fixed number of numbered lines and records the
// messages it receives.
type tallScreen struct {
	title    string
	lines    int
	pointers []screen.PointerMsg
	events   []quiz.Event
}

func (s *tallScreen) Init() tea.Cmd { return nil }
func (s *tallScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.PointerMsg:
		s.pointers = append(s.pointers, msg)
	case quiz.Event:
		s.events = append(s.events, msg)
	}
	return s, nil
}
func (s *tallScreen) View(int, int) string {
	rows := make([]string, s.lines)
	for i := range rows {
		rows[i] = fmt.Sprintf("line %d", i)
	}
	return strings.Join(rows, "\n")
}
func (s *tallScreen) Title() string { return s.title }

func sized(root screen.Screen) AppModel {
	m := newAppModel(root)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return next.(AppModel)
}

func send(m AppModel, msg tea.Msg) AppModel {
	next, _ := m.Update(msg)
	return next.(AppModel)
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestScroll_Keys(t *testing.T) {
	m := sized(&tallScreen{title: "Quiz", lines: 100})
	maxOffset := m.contentLines() - m.contentHeight()

	m = send(m, specialKey(tea.KeyPgDown))
	if m.offset != m.contentHeight() {
		t.Errorf("offset after PgDn = %d, want %d", m.offset, m.contentHeight())
	}

	m = send(m, specialKey(tea.KeyEnd))
	if m.offset != maxOffset {
		t.Errorf("offset after End = %d, want %d", m.offset, maxOffset)
	}
	if m.ScrollFraction() != 1 {
		t.Errorf("fraction at end = %v, want 1", m.ScrollFraction())
	}

	m = send(m, specialKey(tea.KeyPgDown))
	if m.offset != maxOffset {
		t.Errorf("offset past end = %d, want %d", m.offset, maxOffset)
	}

	m = send(m, specialKey(tea.KeyHome))
	if m.offset != 0 || m.ScrollFraction() != 0 {
		t.Errorf("offset after Home = %d", m.offset)
	}

	m = send(m, specialKey(tea.KeyPgUp))
	if m.offset != 0 {
		t.Errorf("offset before start = %d, want 0", m.offset)
	}
}

func TestScroll_Wheel(t *testing.T) {
	m := sized(&tallScreen{lines: 100})

	m = send(m, tea.MouseWheelMsg{Button: tea.MouseWheelDown})
	m = send(m, tea.MouseWheelMsg{Button: tea.MouseWheelDown})
	if m.offset != 2*wheelStep {
		t.Errorf("offset = %d, want %d", m.offset, 2*wheelStep)
	}
	m = send(m, tea.MouseWheelMsg{Button: tea.MouseWheelUp})
	if m.offset != wheelStep {
		t.Errorf("offset = %d, want %d", m.offset, wheelStep)
	}
}

func TestShortContentDoesNotScroll(t *testing.T) {
	m := sized(&tallScreen{lines: 3})
	m = send(m, specialKey(tea.KeyPgDown))
	if m.offset != 0 {
		t.Errorf("offset = %d, want 0", m.offset)
	}
	if m.ScrollFraction() != 0 {
		t.Errorf("fraction = %v, want 0", m.ScrollFraction())
	}
}

func TestBackgroundFollowsScroll(t *testing.T) {
	m := sized(&tallScreen{lines: 100})

	if got, want := m.View().BackgroundColor, theme.Hex(prahar.Palette()[0]); got != want {
		t.Errorf("background at top = %v, want %v", got, want)
	}

	m = send(m, specialKey(tea.KeyEnd))
	if got, want := m.View().BackgroundColor, theme.Hex(prahar.Palette()[prahar.Count-1]); got != want {
		t.Errorf("background at end = %v, want %v", got, want)
	}
}

func TestPointerTranslatedToContent(t *testing.T) {
	root := &tallScreen{lines: 100}
	m := sized(root)
	headerHeight := strings.Count(m.header(), "\n") + 1

	m = send(m, tea.MouseClickMsg{X: 7, Y: headerHeight + 2, Button: tea.MouseLeft})
	m = send(m, specialKey(tea.KeyPgDown))
	m = send(m, tea.MouseMotionMsg{X: 1, Y: headerHeight})

	if len(root.pointers) != 2 {
		t.Fatalf("pointers = %v", root.pointers)
	}
	if got := root.pointers[0]; got.Kind != screen.PointerClick || got.X != 7 || got.Y != 2 {
		t.Errorf("click = %+v, want {click 7 2}", got)
	}
	if got := root.pointers[1]; got.Kind != screen.PointerMove || got.Y != m.offset {
		t.Errorf("move = %+v, want Y %d", got, m.offset)
	}
}

func TestRightClickIgnored(t *testing.T) {
	root := &tallScreen{lines: 10}
	m := sized(root)
	send(m, tea.MouseClickMsg{X: 1, Y: 5, Button: tea.MouseRight})
	if len(root.pointers) != 0 {
		t.Errorf("pointers = %v, want none", root.pointers)
	}
}

func TestEscPopsOverlay(t *testing.T) {
	root := &tallScreen{title: "Quiz", lines: 5}
	m := sized(root)
	m = send(m, router.PushScreenMsg{Screen: &tallScreen{title: "About", lines: 5}})
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}

	_, cmd := m.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	m = send(m, cmd())
	if m.router.Active().Title() != "Quiz" {
		t.Errorf("active = %q, want Quiz", m.router.Active().Title())
	}

	// Esc at the root is a no-op.
	if _, cmd := m.Update(specialKey(tea.KeyEscape)); cmd != nil {
		t.Error("expected no command at root")
	}
}

func TestQuizEventsReachRootUnderOverlay(t *testing.T) {
	root := &tallScreen{title: "Quiz", lines: 5}
	m := sized(root)
	m = send(m, router.PushScreenMsg{Screen: &tallScreen{title: "About", lines: 5}})

	send(m, quiz.AdvanceDue{Epoch: 0, To: 1})
	if len(root.events) != 1 {
		t.Errorf("root events = %d, want 1", len(root.events))
	}
}

func TestTooSmall(t *testing.T) {
	m := newAppModel(&tallScreen{lines: 1})
	m = send(m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(m.frame(), "Terminal too small") {
		t.Error("expected min size message")
	}
}
