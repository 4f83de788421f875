package about

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prahar/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ██████╗  █████╗ ██╗  ██╗ █████╗ ██████╗
 ██╔══██╗██╔══██╗██╔══██╗██║  ██║██╔══██╗██╔══██╗
 ██████╔╝██████╔╝███████║███████║███████║██████╔╝
 ██╔═══╝ ██╔══██╗██╔══██║██╔══██║██╔══██║██╔══██╗
 ██║     ██║  ██║██║  ██║██║  ██║██║  ██║██║  ██║
 ╚═╝     ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝`

const bannerCompact = "P R A H A R"

// RenderBanner returns the PRAHAR banner in the primary color, or a
// compact fallback below 54 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 54 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
