package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectora/internal/ui/theme"
)

const bannerArt = `
 ██╗     ███████╗ ██████╗████████╗ ██████╗ ██████╗  █████╗
 ██║     ██╔════╝██╔════╝╚══██╔══╝██╔═══██╗██╔══██╗██╔══██╗
 ██║     █████╗  ██║        ██║   ██║   ██║██████╔╝███████║
 ██║     ██╔══╝  ██║        ██║   ██║   ██║██╔══██╗██╔══██║
 ███████╗███████╗╚██████╗   ██║   ╚██████╔╝██║  ██║██║  ██║
 ╚══════╝╚══════╝ ╚═════╝   ╚═╝    ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝`

const bannerCompact = "L E C T O R A"

// bannerWidth is the widest line of bannerArt.
const bannerWidth = 59

// RenderBanner returns the LECTORA banner styled in the primary color.
// Uses a compact fallback for terminals narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
