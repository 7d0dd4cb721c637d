package logger

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/wellnest/internal/assessment"
)

// colorScheme defines consistent colors for logged values.
type colorScheme struct {
	label *color.Color
	value *color.Color
}

// newColorScheme creates the standard color scheme.
func newColorScheme() *colorScheme {
	return &colorScheme{
		label: color.New(color.FgCyan),
		value: color.New(color.FgWhite),
	}
}

// formatColorizedMetric formats a single metric as "label: value" with a cyan label.
func formatColorizedMetric(label string, value interface{}, scheme *colorScheme) string {
	labelColored := scheme.label.Sprint(label)
	valueColored := scheme.value.Sprintf("%v", value)
	return fmt.Sprintf("%s: %s", labelColored, valueColored)
}

// formatColorizedScores formats the three sub-scores in category order.
// Colors are disabled automatically when output is not a TTY via fatih/color.
func formatColorizedScores(scores assessment.ScoreResult, scheme *colorScheme) string {
	parts := make([]string, 0, len(assessment.Categories))
	for _, c := range assessment.Categories {
		parts = append(parts, formatColorizedMetric(string(c), scores.Get(c), scheme))
	}
	return strings.Join(parts, ", ")
}
