package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette: a dusk-toned dark UI with the Prahar colours as accents.
var (
	Primary   = lipgloss.Color("#BDB2FF") // Lavender (Shastha)
	Secondary = lipgloss.Color("#9BF6FF") // Sky (Chaturtha)
	Accent    = lipgloss.Color("#FFC8DD") // Blush (Pratham)
	Success   = lipgloss.Color("#CAFFBF") // Mint (Tritiya)
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#10002B") // Night (Ashtam)
	BgCard    = lipgloss.Color("#1E1535") // Deep violet
	Border    = lipgloss.Color("#3C2F5C") // Muted violet
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Card is the question and result container.
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(1, 2)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	Cursor = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)
)

// Components
var (
	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)

// Hex parses a "#RRGGBB" string, falling back to Primary when s is not
// a colour lipgloss understands.
func Hex(s string) color.Color {
	if len(s) != 7 || s[0] != '#' {
		return Primary
	}
	return lipgloss.Color(s)
}

// Contrast picks dark or light text for a background colour.
func Contrast(bg color.Color) color.Color {
	r, g, b, _ := bg.RGBA()
	// Rec. 601 luma on 16-bit channels.
	luma := (299*r + 587*g + 114*b) / 1000
	if luma > 0x8000 {
		return BgDark
	}
	return Text
}
