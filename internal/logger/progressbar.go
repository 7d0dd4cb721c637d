package logger

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// defaultBarWidth is used when NewProgressBar gets a width below 1.
const defaultBarWidth = 10

// ProgressBar renders how many questions have been answered as
// "[=====     ] 5/10 (50%)". Bars are cheap and built per render; they are
// not shared between goroutines.
type ProgressBar struct {
	done  int
	total int
	width int
	color bool
}

// NewProgressBar creates a bar for total steps drawn width characters wide.
func NewProgressBar(total, width int, enableColor bool) *ProgressBar {
	if width < 1 {
		width = defaultBarWidth
	}
	return &ProgressBar{total: total, width: width, color: enableColor}
}

// Update sets the number of completed steps.
func (pb *ProgressBar) Update(done int) {
	pb.done = done
}

// Percentage returns the completed share clamped to 0-100.
func (pb *ProgressBar) Percentage() int {
	if pb.total <= 0 || pb.done <= 0 {
		return 0
	}
	return min(pb.done*100/pb.total, 100)
}

// Render draws the bar. Coloured bars are cyan until full, then green.
func (pb *ProgressBar) Render() string {
	perc := pb.Percentage()
	filled := perc * pb.width / 100

	text := fmt.Sprintf("[%-*s] %d/%d (%d%%)", pb.width, strings.Repeat("=", filled), pb.done, pb.total, perc)
	if !pb.color {
		return text
	}

	c := color.New(color.FgCyan)
	if perc == 100 {
		c = color.New(color.FgGreen)
	}
	// An explicit colour request wins over TTY detection
	c.EnableColor()
	return c.Sprint(text)
}
