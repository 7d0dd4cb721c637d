// Package report exports stored assessment history as JSON, CSV, Markdown or
// HTML.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/harrison/wellnest/internal/assessment"
	"github.com/harrison/wellnest/internal/storage"
)

// Format is an export format name.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatCSV, FormatMarkdown, FormatHTML}

// ParseFormat resolves a format name; "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("invalid format '%s': format must be one of json, csv, markdown, html", s)
	}
}

// Exporter renders records with percentages and recommendations computed
// against a bank.
type Exporter struct {
	recommender *assessment.Recommender
	markdown    goldmark.Markdown
}

// NewExporter creates an Exporter for bank.
func NewExporter(bank *assessment.Bank) *Exporter {
	return &Exporter{
		recommender: assessment.NewRecommender(bank),
		markdown:    goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

// Export writes records to w in format.
func (e *Exporter) Export(w io.Writer, format Format, records []storage.Record) error {
	// Keep JSON output [] rather than null
	if records == nil {
		records = []storage.Record{}
	}

	switch format {
	case FormatJSON:
		return e.exportJSON(w, records)
	case FormatCSV:
		return e.exportCSV(w, records)
	case FormatMarkdown:
		_, err := io.WriteString(w, e.Markdown(records))
		return err
	case FormatHTML:
		return e.exportHTML(w, records)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// entry is the JSON shape of one exported record.
type entry struct {
	storage.Record
	Percentages     assessment.Percentages       `json:"percentages"`
	Recommendations assessment.RecommendationSet `json:"recommendations"`
}

func (e *Exporter) exportJSON(w io.Writer, records []storage.Record) error {
	entries := make([]entry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, entry{
			Record:          rec,
			Percentages:     e.recommender.Percentages(rec.Scores),
			Recommendations: e.recommender.Recommend(rec.Scores),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func (e *Exporter) exportCSV(w io.Writer, records []storage.Record) error {
	csvWriter := csv.NewWriter(w)

	header := []string{
		"id",
		"completed_at",
		"stress",
		"mood",
		"wellbeing",
		"stress_pct",
		"mood_pct",
		"wellbeing_pct",
		"responses",
	}
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, rec := range records {
		pct := e.recommender.Percentages(rec.Scores)
		row := []string{
			rec.ID,
			rec.CompletedAt.Format("2006-01-02 15:04:05"),
			strconv.Itoa(rec.Scores.Stress),
			strconv.Itoa(rec.Scores.Mood),
			strconv.Itoa(rec.Scores.Wellbeing),
			formatPercent(pct.Stress),
			formatPercent(pct.Mood),
			formatPercent(pct.Wellbeing),
			formatResponses(rec.Responses),
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// Markdown renders records as a Markdown document.
func (e *Exporter) Markdown(records []storage.Record) string {
	var b strings.Builder

	b.WriteString("# Mental Health Assessment History\n\n")
	if len(records) == 0 {
		b.WriteString("No assessments recorded yet.\n")
		return b.String()
	}

	for _, rec := range records {
		pct := e.recommender.Percentages(rec.Scores)
		recs := e.recommender.Recommend(rec.Scores)

		fmt.Fprintf(&b, "## %s\n\n", rec.CompletedAt.Format("2006-01-02 15:04"))
		if rec.ID != "" {
			fmt.Fprintf(&b, "Record `%s`\n\n", rec.ID)
		}

		b.WriteString("| Measure | Score | Percent |\n")
		b.WriteString("|---|---:|---:|\n")
		fmt.Fprintf(&b, "| Stress Level | %d | %s%% |\n", rec.Scores.Stress, formatPercent(pct.Stress))
		fmt.Fprintf(&b, "| Mood | %d | %s%% |\n", rec.Scores.Mood, formatPercent(pct.Mood))
		fmt.Fprintf(&b, "| Overall Wellbeing | %d | %s%% |\n\n", rec.Scores.Wellbeing, formatPercent(pct.Wellbeing))

		for _, section := range recs.Sections() {
			fmt.Fprintf(&b, "### %s\n\n", section.Title)
			for _, item := range section.Items {
				fmt.Fprintf(&b, "- %s\n", item)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (e *Exporter) exportHTML(w io.Writer, records []storage.Record) error {
	var body bytes.Buffer
	if err := e.markdown.Convert([]byte(e.Markdown(records)), &body); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}

	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>Mental Health Assessment History</title>\n</head>\n<body>\n%s</body>\n</html>\n", body.String())
	return err
}

func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64)
}

// formatResponses renders responses as "1=0;2=3" in question order.
func formatResponses(r assessment.ResponseSet) string {
	ids := make([]int, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%d=%d", id, r[id]))
	}
	return strings.Join(parts, ";")
}
