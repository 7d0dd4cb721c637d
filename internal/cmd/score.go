package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/wellnest/internal/assessment"
	"github.com/harrison/wellnest/internal/display"
)

// NewScoreCommand creates the score command
func NewScoreCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "score ID=OPTION...",
		Short: "Score a set of answers without taking the assessment",
		Long: `Score answers given on the command line. Each argument is a question
id and either a 1-based option number or the option text (case-insensitive,
quoted when it contains spaces). Nothing is saved.`,
		Example: `  wellnest score 1=1 2=4 3=2 4=2 5=1 6=3 7=2 8=1
  wellnest score --json 1=4 2=1 3=3 4=3 5=4 6=1 7=3 8=4
  wellnest score 1="Several days" 2=Rarely 6=often`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bank := assessment.DefaultBank()
			responses, err := parseResponses(bank, args)
			if err != nil {
				return err
			}

			recommender := assessment.NewRecommender(bank)
			res := display.NewResult(recommender, assessment.NewScorer(bank).Score(responses))

			out := cmd.OutOrStdout()
			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(struct {
					Scores          assessment.ScoreResult       `json:"scores"`
					Percentages     assessment.Percentages       `json:"percentages"`
					Recommendations assessment.RecommendationSet `json:"recommendations"`
				}{res.Scores, res.Percentages, res.Recommendations})
			}

			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			display.ShowResults(out, res, palette(cfg, out))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print scores, percentages and recommendations as JSON")

	return cmd
}

// parseResponses turns "id=option" arguments into a response set. Options
// are 1-based on the command line and 0-based in the result.
func parseResponses(bank *assessment.Bank, args []string) (assessment.ResponseSet, error) {
	responses := make(assessment.ResponseSet, len(args))
	for _, arg := range args {
		idText, optText, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid answer %q: expected ID=OPTION", arg)
		}
		id, err := strconv.Atoi(strings.TrimSpace(idText))
		if err != nil {
			return nil, fmt.Errorf("invalid question id in %q", arg)
		}
		q, ok := bank.Question(id)
		if !ok {
			return nil, fmt.Errorf("unknown question %d", id)
		}
		if _, dup := responses[id]; dup {
			return nil, fmt.Errorf("question %d answered more than once", id)
		}

		option, err := strconv.Atoi(strings.TrimSpace(optText))
		if err != nil {
			idx, found := q.OptionIndex(optText)
			if !found {
				return nil, &assessment.InputError{QuestionID: id, Err: assessment.ErrUnknownOption, Detail: optText}
			}
			responses[id] = idx
			continue
		}
		if !q.ValidIndex(option - 1) {
			return nil, &assessment.InputError{
				QuestionID: id,
				Err:        assessment.ErrOptionOutOfRange,
				Detail:     fmt.Sprintf("got %d, want 1..%d", option, len(q.Options)),
			}
		}
		responses[id] = option - 1
	}
	return responses, nil
}
