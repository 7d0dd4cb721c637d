package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrison/wellnest/internal/assessment"
	"github.com/harrison/wellnest/internal/report"
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export assessment history",
		Long: `Export all saved assessments with their percentages and
recommendations. Supported formats: json, csv, markdown (md), html.`,
		Example: `  wellnest export --format csv --output history.csv
  wellnest export --format markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			results, kv, err := openResults(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer kv.Close()

			records, err := results.History(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load history: %w", err)
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer file.Close()
				w = file
			}

			exporter := report.NewExporter(assessment.DefaultBank())
			if err := exporter.Export(w, f, records); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			if output != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d assessment(s) to %s\n", len(records), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Export format (json, csv, markdown, html)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (default: stdout)")

	return cmd
}
