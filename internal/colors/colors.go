// Package colors centralizes terminal color output. Colors are disabled
// automatically when stdout is not a TTY; Init overrides that based on CLI
// flags.
package colors

import (
	"github.com/fatih/color"

	"github.com/vulcandth/gb-save-patcher/pkg/patch"
)

// Init overrides the auto-detected color setting. forceColor == nil keeps
// the detected value.
func Init(forceColor *bool) {
	if forceColor != nil {
		color.NoColor = !*forceColor
	}
}

// Enabled returns true if colors are currently enabled.
func Enabled() bool {
	return !color.NoColor
}

func Bold() *color.Color   { return color.New(color.Bold) }
func Faint() *color.Color  { return color.New(color.Faint) }
func Yellow() *color.Color { return color.New(color.FgYellow) }
func Red() *color.Color    { return color.New(color.FgRed) }
func Green() *color.Color  { return color.New(color.FgGreen) }

// Level returns the color used to render a patch log level.
func Level(l patch.Level) *color.Color {
	switch l {
	case patch.Warning:
		return Yellow()
	case patch.Error:
		return Red()
	default:
		return Faint()
	}
}
