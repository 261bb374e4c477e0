package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/icco/beatglow/internal/palette"
	"github.com/muesli/termenv"
)

// ThumbStyler renders the slider thumb in the current tempo color. Pick one with
// SelectThumb at startup.
type ThumbStyler interface {
	Thumb(c palette.RGB) string
	Name() string
}

// SelectThumb returns the styler matching what the terminal can display.
func SelectThumb(p termenv.Profile) ThumbStyler {
	if p == termenv.TrueColor {
		return trueColorThumb{}
	}
	return paletteThumb{}
}

// trueColorThumb paints the exact gradient color.
type trueColorThumb struct{}

func (trueColorThumb) Name() string { return "truecolor" }

func (trueColorThumb) Thumb(c palette.RGB) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Hex())).
		Render("●")
}

// paletteThumb snaps to the nearest xterm-256 entry. Neighbouring tempos often
// share an entry, so a heavier glyph keeps the thumb visible.
type paletteThumb struct{}

func (paletteThumb) Name() string { return "ansi256" }

func (paletteThumb) Thumb(c palette.RGB) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ansi256(c))).
		Bold(true).
		Render("█")
}

func ansi256(c palette.RGB) string {
	if a, ok := termenv.ANSI256.Color(c.Hex()).(termenv.ANSI256Color); ok {
		return fmt.Sprintf("%d", int(a))
	}
	return c.Hex()
}
