package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizline/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ██╗   ██╗██╗███████╗██╗     ██╗███╗   ██╗███████╗
██╔═══██╗██║   ██║██║╚══███╔╝██║     ██║████╗  ██║██╔════╝
██║   ██║██║   ██║██║  ███╔╝ ██║     ██║██╔██╗ ██║█████╗
██║▄▄ ██║██║   ██║██║ ███╔╝  ██║     ██║██║╚██╗██║██╔══╝
╚██████╔╝╚██████╔╝██║███████╗███████╗██║██║ ╚████║███████╗
 ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝╚══════╝╚═╝╚═╝  ╚═══╝╚══════╝`

const bannerCompact = "Q U I Z L I N E"

// RenderBanner returns the banner, falling back to spaced letters on
// terminals narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < lipgloss.Width(bannerArt)+2 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
