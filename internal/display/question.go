package display

import (
	"fmt"
	"io"

	"github.com/harrison/wellnest/internal/assessment"
	"github.com/harrison/wellnest/internal/logger"
)

// progressWidth is the bar width on the question screen.
const progressWidth = 20

// ShowQuestion draws the current question of s: position, progress bar,
// question text and numbered options with the recorded answer marked.
func ShowQuestion(w io.Writer, s *assessment.Session, p *Palette) error {
	q, err := s.CurrentQuestion()
	if err != nil {
		return err
	}
	total := s.Bank().Len()
	position := s.Cursor() + 1

	bar := logger.NewProgressBar(total, progressWidth, false)
	bar.Update(position)

	p.Title.Fprintln(w, "Mental Health Assessment")
	p.Label.Fprintln(w, bar.Render())
	p.Heading.Fprintf(w, "Question %d of %d\n", position, total)
	fmt.Fprintln(w, q.Text)
	fmt.Fprintln(w)

	selected, answered := s.Answer()
	for i, option := range q.Options {
		if answered && i == selected {
			p.Good.Fprintf(w, "  (*) %d. %s\n", i+1, option)
			continue
		}
		fmt.Fprintf(w, "  ( ) %d. %s\n", i+1, option)
	}
	fmt.Fprintln(w)

	next := "Next Question"
	if position == total {
		next = "View Results"
	}
	p.Muted.Fprintf(w, "Enter 1-%d or the option text for %s (q to quit): ", len(q.Options), next)
	return nil
}
