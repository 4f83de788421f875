package quizscreen

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/prahar/internal/ui/layout"
)

type keyMap struct {
	Answer  key.Binding
	Prev    key.Binding
	Next    key.Binding
	Submit  key.Binding
	Retry   key.Binding
	Dismiss key.Binding
	About   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Answer: key.NewBinding(
			key.WithKeys("a", "b", "c", "d", "1", "2", "3", "4"),
			key.WithHelp("a-d", "Answer"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "p"),
			key.WithHelp("←", "Previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l", "n"),
			key.WithHelp("→", "Next"),
		),
		Submit: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Submit"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Retry"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Dismiss"),
		),
		About: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "About"),
		),
	}
}

func hints(bindings ...key.Binding) []layout.KeyHint {
	out := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return out
}
