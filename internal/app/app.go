package app

import (
	"context"
	"errors"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/prahar/internal/prahar"
	"github.com/abhisek/prahar/internal/quiz"
	"github.com/abhisek/prahar/internal/router"
	"github.com/abhisek/prahar/internal/screen"
	"github.com/abhisek/prahar/internal/screens/quizscreen"
	"github.com/abhisek/prahar/internal/screens/result"
	"github.com/abhisek/prahar/internal/ui/layout"
	"github.com/abhisek/prahar/internal/ui/theme"
)

// wheelStep is the number of lines one wheel notch scrolls.
const wheelStep = 3

// AppModel is the root Bubble Tea model: a header, a scrollable content
// region hosting the router's active screen, and a footer.
type AppModel struct {
	router *router.Router
	width  int
	height int
	offset int
}

// newAppModel creates an AppModel with root at the bottom of the stack.
func newAppModel(root screen.Screen) AppModel {
	return AppModel{
		router: router.New(root),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Root().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.router.UpdateRoot(msg)

	// Async results belong to the quiz even while another screen is on top.
	case quiz.Event, result.RevealMsg, spinner.TickMsg:
		return m, m.router.UpdateRoot(msg)

	case router.PushScreenMsg, router.PopScreenMsg:
		m.offset = 0

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		case "pgup":
			m.scroll(-m.contentHeight())
			return m, nil
		case "pgdown":
			m.scroll(m.contentHeight())
			return m, nil
		case "home":
			m.offset = 0
			return m, nil
		case "end":
			m.scroll(m.contentLines())
			return m, nil
		}

	case tea.MouseWheelMsg:
		switch msg.Mouse().Button {
		case tea.MouseWheelUp:
			m.scroll(-wheelStep)
		case tea.MouseWheelDown:
			m.scroll(wheelStep)
		}
		return m, nil

	case tea.MouseMotionMsg:
		return m, m.router.Update(m.pointer(screen.PointerMove, msg.Mouse()))

	case tea.MouseClickMsg:
		if msg.Mouse().Button != tea.MouseLeft {
			return m, nil
		}
		return m, m.router.Update(m.pointer(screen.PointerClick, msg.Mouse()))
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// pointer translates a terminal mouse position into content coordinates.
func (m AppModel) pointer(kind screen.PointerKind, mouse tea.Mouse) screen.PointerMsg {
	return screen.PointerMsg{
		Kind: kind,
		X:    mouse.X,
		Y:    mouse.Y - lipgloss.Height(m.header()) + m.clampedOffset(),
	}
}

func (m *AppModel) scroll(delta int) {
	m.offset = min(max(m.offset+delta, 0), layout.MaxOffset(m.contentLines(), m.contentHeight()))
}

func (m AppModel) clampedOffset() int {
	return min(max(m.offset, 0), layout.MaxOffset(m.contentLines(), m.contentHeight()))
}

func (m AppModel) header() string {
	title, status := "", ""
	if active := m.router.Active(); active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}
	return layout.RenderHeader(title, status, m.width)
}

func (m AppModel) footer() string {
	var hints []layout.KeyHint
	if hp, ok := m.router.Active().(screen.KeyHintProvider); ok {
		hints = hp.KeyHints()
	}
	if m.router.Depth() > 1 {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	return layout.RenderFooter(dedupe(hints), m.width)
}

func dedupe(hints []layout.KeyHint) []layout.KeyHint {
	seen := make(map[string]bool, len(hints))
	out := hints[:0:0]
	for _, h := range hints {
		if seen[h.Key] {
			continue
		}
		seen[h.Key] = true
		out = append(out, h)
	}
	return out
}

func (m AppModel) contentHeight() int {
	return max(m.height-lipgloss.Height(m.header())-lipgloss.Height(m.footer()), 0)
}

func (m AppModel) content() string {
	return m.router.View(m.width, m.contentHeight())
}

func (m AppModel) contentLines() int {
	return strings.Count(m.content(), "\n") + 1
}

// ScrollFraction is how far the content region is scrolled, in [0, 1].
func (m AppModel) ScrollFraction() float64 {
	return layout.ScrollFraction(m.clampedOffset(), m.contentLines(), m.contentHeight())
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion

	if m.width == 0 || m.height == 0 {
		return v
	}

	if !layout.IsTooSmall(m.width, m.height) {
		v.BackgroundColor = theme.Hex(prahar.ColorForFraction(m.ScrollFraction()))
	}
	v.SetContent(m.frame())
	return v
}

// frame renders the header, the visible slice of content and the footer.
func (m AppModel) frame() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	header := m.header()
	footer := m.footer()
	visible, _ := layout.Viewport(m.content(), m.offset, m.contentHeight())
	return layout.RenderFrame(header, visible, footer, m.width, m.height)
}

// Run starts the terminal UI with the quiz as its root screen. In-flight
// requests are cancelled when the program exits.
func Run(ctx context.Context, backend quizscreen.Backend, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newAppModel(quizscreen.New(ctx, backend, log)), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Error("run program", zap.Error(err))
		return err
	}
	return nil
}
