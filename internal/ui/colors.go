package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	ColorAccent  lipgloss.Color = "#7D56F4"
	ColorSky     lipgloss.Color = "#4FC3F7"
	ColorMint    lipgloss.Color = "#5AF78E"
	ColorSunrise lipgloss.Color = "#FF9F43"

	ColorSuccess lipgloss.Color = "#5AF78E"
	ColorError   lipgloss.Color = "#FF5C57"
	ColorWarning lipgloss.Color = "#F3F99D"
	ColorInfo    lipgloss.Color = "#57C7FF"

	ColorPrimary lipgloss.Color = "#F1F1F0"
	ColorMuted   lipgloss.Color = "#6B6B8D"
)

// GradientColors are cycled through by the spinner.
var GradientColors = []lipgloss.Color{ColorAccent, ColorSky, ColorMint, ColorSunrise}

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func SuccessStyle() lipgloss.Style { return fg(ColorSuccess) }
func ErrorStyle() lipgloss.Style   { return fg(ColorError) }
func WarningStyle() lipgloss.Style { return fg(ColorWarning) }
func InfoStyle() lipgloss.Style    { return fg(ColorInfo) }
func MutedStyle() lipgloss.Style   { return fg(ColorMuted) }
func BoldStyle() lipgloss.Style    { return fg(ColorPrimary).Bold(true) }

// DisableColors switches all rendering to plain text (--no-color, NO_COLOR).
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// FprintSuccess writes "✓ msg" to w.
func FprintSuccess(w io.Writer, msg string) {
	fmt.Fprintln(w, SuccessStyle().Render(SymbolSuccess)+" "+msg)
}
