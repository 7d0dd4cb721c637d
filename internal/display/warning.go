package display

import (
	"fmt"
	"io"
	"strings"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string // Main warning title
	Message    string // Detailed explanation (optional)
	Suggestion string // Action to take (optional)
}

// DisplayWith shows the warning using the given palette.
func (w Warning) DisplayWith(out io.Writer, p *Palette) {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion: ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	p.Warn.Fprint(out, b.String())
}

// WarnUnanswered is shown when the user tries to move on without an answer.
func WarnUnanswered() Warning {
	return Warning{Title: "Please select an answer before continuing"}
}

// WarnInvalidOption is shown for input that matches no option.
func WarnInvalidOption(input string, options int) Warning {
	return Warning{
		Title:      fmt.Sprintf("%q is not one of the options", input),
		Suggestion: fmt.Sprintf("Enter a number from 1 to %d or the option text", options),
	}
}

// WarnSaveFailed is shown when results could not be stored.
func WarnSaveFailed(err error) Warning {
	return Warning{
		Title:      "Your results could not be saved",
		Message:    err.Error(),
		Suggestion: "Enter \"r\" to retry or \"s\" to continue without saving",
	}
}
