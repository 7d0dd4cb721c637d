package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/harrison/wellnest/internal/assessment"
)

// scoreBarWidth is the bar width on the results screen.
const scoreBarWidth = 30

// closingNote follows the recommendations on the results screen.
const closingNote = "Based on your responses, we've created these personalized recommendations to help improve your mental wellness.\n" +
	"Try to incorporate these activities into your daily routine gradually."

// scoreTitles are the bar headings per category.
var scoreTitles = map[assessment.Category]string{
	assessment.CategoryStress:    "Stress Level",
	assessment.CategoryMood:      "Mood",
	assessment.CategoryWellbeing: "Overall Wellbeing",
}

// ScoreBar renders pct (0-100) as "[=====     ]  50%".
func ScoreBar(pct float64, width int) string {
	if width < 1 {
		width = scoreBarWidth
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct * float64(width) / 100)
	return fmt.Sprintf("[%s%s] %3.0f%%", strings.Repeat("=", filled), strings.Repeat(" ", width-filled), pct)
}

// Result is everything the results screen shows.
type Result struct {
	Scores          assessment.ScoreResult
	Percentages     assessment.Percentages
	Recommendations assessment.RecommendationSet
	Thresholds      assessment.Thresholds
}

// NewResult scores and recommends for scores using r.
func NewResult(r *assessment.Recommender, scores assessment.ScoreResult) Result {
	return Result{
		Scores:          scores,
		Percentages:     r.Percentages(scores),
		Recommendations: r.Recommend(scores),
		Thresholds:      r.Thresholds(),
	}
}

// ShowResults draws the results screen: one bar per sub-score, the
// non-empty recommendation sections and the closing note.
func ShowResults(w io.Writer, res Result, p *Palette) {
	p.Title.Fprintln(w, "Your Mental Health Assessment Results")
	fmt.Fprintln(w)

	for _, c := range assessment.Categories {
		p.Heading.Fprintln(w, scoreTitles[c])
		pct := res.Percentages.Get(c)
		barColor := p.Good
		if res.Thresholds.Triggers(c, pct) {
			barColor = p.Warn
		}
		barColor.Fprintf(w, "%s  (score %d)\n", ScoreBar(pct, scoreBarWidth), res.Scores.Get(c))
	}
	fmt.Fprintln(w)

	p.Title.Fprintln(w, "Your Personalized Recommendations")
	for _, section := range res.Recommendations.Sections() {
		fmt.Fprintln(w)
		p.Label.Fprintln(w, section.Title)
		for _, item := range section.Items {
			fmt.Fprintf(w, "  • %s\n", item)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, closingNote)
}
