package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for wellnest
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wellnest",
		Short: "Mental health self-assessment with personalised recommendations",
		Long: `Wellnest runs a short mental health self-assessment in the terminal.

It asks eight multiple-choice questions, scores the answers into stress,
mood and wellbeing sub-scores, and suggests activities based on the result.
Results are saved locally so you can review and export your history.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.String("home", "", "Wellnest data directory (default: $WELLNEST_HOME or ~/.wellnest)")
	flags.String("log-level", "", "Console log level (trace|debug|info|warn|error)")
	flags.String("backend", "", "Storage backend (file|sqlite|redis|memory)")
	flags.String("storage-path", "", "Store file or database path")
	flags.Bool("no-color", false, "Disable coloured output")

	cmd.AddCommand(NewTakeCommand())
	cmd.AddCommand(NewResultsCommand())
	cmd.AddCommand(NewHistoryCommand())
	cmd.AddCommand(NewExportCommand())
	cmd.AddCommand(NewClearCommand())
	cmd.AddCommand(NewQuestionsCommand())
	cmd.AddCommand(NewScoreCommand())

	return cmd
}
