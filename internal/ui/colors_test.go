package ui

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

var hexColor = regexp.MustCompile(`^#[0-9A-F]{6}$`)

func TestPalette(t *testing.T) {
	for _, c := range append([]lipgloss.Color{ColorSuccess, ColorError, ColorWarning, ColorInfo, ColorPrimary, ColorMuted}, GradientColors...) {
		assert.Regexp(t, hexColor, string(c))
	}

	status := map[lipgloss.Color]bool{}
	for _, c := range []lipgloss.Color{ColorSuccess, ColorError, ColorWarning, ColorInfo} {
		assert.False(t, status[c], "status color %s used twice", c)
		status[c] = true
	}
}

func TestSymbolsAreDistinct(t *testing.T) {
	symbols := []string{SymbolSuccess, SymbolFail, SymbolComplete, SymbolSkipped, SymbolWarning}
	seen := map[string]bool{}
	for _, s := range symbols {
		assert.False(t, seen[s], "symbol %s used twice", s)
		seen[s] = true
	}
}

func TestStylesKeepText(t *testing.T) {
	for _, style := range []lipgloss.Style{SuccessStyle(), ErrorStyle(), WarningStyle(), InfoStyle(), MutedStyle(), BoldStyle()} {
		assert.Contains(t, style.Render("Web farm"), "Web farm")
	}
}

func TestFprintSuccess(t *testing.T) {
	var buf bytes.Buffer
	FprintSuccess(&buf, "Wrote tessera.yaml")
	assert.Contains(t, buf.String(), SymbolSuccess)
	assert.Contains(t, buf.String(), "Wrote tessera.yaml")
}

func TestDisableColors(t *testing.T) {
	DisableColors()
	assert.Equal(t, "plain", SuccessStyle().Render("plain"))
}
