package display

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether w is a terminal that should receive colour.
// NO_COLOR (via fatih/color) always wins.
func IsTerminal(w io.Writer) bool {
	if color.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Palette holds the colours used across screens.
type Palette struct {
	Title   *color.Color
	Heading *color.Color
	Label   *color.Color
	Good    *color.Color
	Warn    *color.Color
	Bad     *color.Color
	Muted   *color.Color
}

// NewPalette builds a palette with colour forced on or off.
func NewPalette(enabled bool) *Palette {
	p := &Palette{
		Title:   color.New(color.Bold, color.FgHiWhite),
		Heading: color.New(color.Bold),
		Label:   color.New(color.FgCyan),
		Good:    color.New(color.FgGreen),
		Warn:    color.New(color.FgYellow),
		Bad:     color.New(color.FgRed),
		Muted:   color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{p.Title, p.Heading, p.Label, p.Good, p.Warn, p.Bad, p.Muted} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}
