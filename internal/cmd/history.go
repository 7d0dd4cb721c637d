package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/wellnest/internal/display"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past assessments",
		Long:  `List saved assessments, newest first.`,
		Example: `  wellnest history
  wellnest history --limit 5
  wellnest history --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must be >= 0, got %d", limit)
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
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}

			out := cmd.OutOrStdout()
			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(records)
			}

			display.ShowHistory(out, records, palette(cfg, out))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many assessments (0 = all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the records as JSON")

	return cmd
}
