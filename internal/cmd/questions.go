package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/wellnest/internal/assessment"
)

// NewQuestionsCommand creates the questions command
func NewQuestionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "questions",
		Short: "List the assessment questions and their scoring category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			p := palette(cfg, out)
			bank := assessment.DefaultBank()

			for _, q := range bank.Questions() {
				category, _ := bank.CategoryOf(q.ID)
				p.Heading.Fprintf(out, "%d. %s", q.ID, q.Text)
				p.Muted.Fprintf(out, " [%s]\n", category)
				for i, option := range q.Options {
					fmt.Fprintf(out, "     %d) %s\n", i+1, option)
				}
			}

			fmt.Fprintln(out)
			for _, c := range assessment.Categories {
				p.Label.Fprintf(out, "%-10s", c)
				fmt.Fprintf(out, " questions %v, max %d\n", bank.QuestionsIn(c), bank.CategoryMax(c))
			}
			return nil
		},
	}
}
