package display

import (
	"fmt"
	"io"

	"github.com/harrison/wellnest/internal/storage"
)

// ShowHistory prints stored records as a table, newest first.
func ShowHistory(w io.Writer, records []storage.Record, p *Palette) {
	if len(records) == 0 {
		p.Muted.Fprintln(w, "No assessments recorded yet.")
		return
	}

	p.Heading.Fprintf(w, "%-19s  %-8s  %6s  %4s  %9s\n", "Completed", "ID", "Stress", "Mood", "Wellbeing")
	for _, rec := range records {
		id := rec.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Fprintf(w, "%-19s  %-8s  %6d  %4d  %9d\n",
			rec.CompletedAt.Local().Format("2006-01-02 15:04:05"),
			id,
			rec.Scores.Stress,
			rec.Scores.Mood,
			rec.Scores.Wellbeing,
		)
	}
	p.Muted.Fprintf(w, "%d assessment(s)\n", len(records))
}
