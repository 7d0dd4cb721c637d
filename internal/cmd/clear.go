package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewClearCommand creates the clear command
func NewClearCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete saved results and history",
		Long: `Delete the latest results and the whole assessment history from the
configured store. Session logs are left in place.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !yes {
				fmt.Fprintln(out, "This will delete your saved results and assessment history.")
				if !confirmAction(cmd.InOrStdin(), out) {
					fmt.Fprintln(out, "Operation cancelled.")
					return nil
				}
			}

			results, kv, err := openResults(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer kv.Close()

			if err := results.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("failed to clear results: %w", err)
			}

			fmt.Fprintln(out, "Saved results and history cleared.")
			if loc := storeLocation(kv); loc != "" {
				fmt.Fprintf(out, "Store: %s\n", loc)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
