package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/wellnest/internal/assessment"
	"github.com/harrison/wellnest/internal/display"
	"github.com/harrison/wellnest/internal/storage"
)

// NewResultsCommand creates the results command
func NewResultsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "results",
		Short: "Show the most recent assessment results",
		Long: `Show the scores and recommendations from the most recently saved
assessment. With --json the stored score object is printed as-is.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResults(cmd, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the stored scores as JSON")

	return cmd
}

func runResults(cmd *cobra.Command, asJSON bool) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	results, kv, err := openResults(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer kv.Close()

	out := cmd.OutOrStdout()
	scores, err := results.Latest(cmd.Context())
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintln(out, "No results saved yet. Run 'wellnest take' to complete an assessment.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}

	if asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(scores)
	}

	recommender := assessment.NewRecommender(assessment.DefaultBank())
	display.ShowResults(out, display.NewResult(recommender, scores), palette(cfg, out))
	return nil
}
