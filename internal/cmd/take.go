package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/wellnest/internal/assessment"
	"github.com/harrison/wellnest/internal/config"
	"github.com/harrison/wellnest/internal/display"
	"github.com/harrison/wellnest/internal/logger"
	"github.com/harrison/wellnest/internal/storage"
)

// errInputClosed is returned when stdin ends before the assessment does.
var errInputClosed = errors.New("input closed before the assessment was complete")

// NewTakeCommand creates the take command
func NewTakeCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "take",
		Short: "Take the assessment",
		Long: `Walk through the assessment one question at a time.

Answer each question with the option number or its text; the next question
follows automatically. Press Enter to move on once a question is answered,
or q to quit without saving. After the last question your scores and
personalised recommendations are shown and saved.`,
		Example: `  wellnest take
  wellnest take --dry-run
  printf '1\n2\n3\n4\n1\n2\n3\n4\n' | wellnest take`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTake(cmd, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run the assessment without saving results or writing logs")

	return cmd
}

// takeRunner holds the pieces of one interactive assessment.
type takeRunner struct {
	in      *bufio.Scanner
	out     io.Writer
	palette *display.Palette
	log     logger.Logger
	console *logger.ConsoleLogger
	session *assessment.Session
}

func runTake(cmd *cobra.Command, dryRun bool) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		results *storage.Results
		kv      storage.KV
	)
	if dryRun {
		kv = storage.NewMemoryStore()
		results = storage.NewResults(kv, cfg.Storage)
	} else {
		results, kv, err = openResults(ctx, cfg)
		if err != nil {
			return err
		}
	}
	defer kv.Close()

	console := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	log, closeLog, err := sessionLogger(cfg, console, dryRun)
	if err != nil {
		return err
	}
	defer closeLog()

	bank := assessment.DefaultBank()
	recommender := assessment.NewRecommender(bank)

	// One record per session so a retried save replaces rather than duplicates
	var record *storage.Record
	hook := func(o assessment.Outcome) error {
		if record == nil {
			r := storage.NewRecord(o)
			record = &r
		}
		return results.Save(ctx, *record)
	}

	out := cmd.OutOrStdout()
	r := &takeRunner{
		in:      bufio.NewScanner(cmd.InOrStdin()),
		out:     out,
		palette: palette(cfg, out),
		log:     log,
		console: console,
		session: assessment.NewSession(bank,
			assessment.WithRecommender(recommender),
			assessment.WithCompletionHook(hook),
		),
	}

	log.LogSessionStart(bank.Len())

	saved, err := r.run()
	if err != nil {
		return err
	}
	if !r.session.IsComplete() {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Assessment cancelled. Nothing was saved.")
		log.LogInfo("Assessment cancelled")
		return nil
	}

	outcome, err := r.session.Outcome()
	if err != nil {
		return err
	}
	log.LogComplete(outcome.Scores)
	if saved && !dryRun {
		log.LogPersisted(cfg.Storage.Key)
	}

	fmt.Fprintln(out)
	display.ShowResults(out, display.NewResult(recommender, outcome.Scores), r.palette)
	return nil
}

// sessionLogger combines the console logger with a per-session file logger.
// Dry runs log to the console only.
func sessionLogger(cfg *config.Config, console *logger.ConsoleLogger, dryRun bool) (logger.Logger, func(), error) {
	if dryRun || cfg.LogDir == "" {
		return console, func() {}, nil
	}

	fileLog, err := logger.NewFileLoggerWithLevel(cfg.LogDir, "debug")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session log: %w", err)
	}
	return logger.NewMultiLogger(fileLog, console), func() { fileLog.Close() }, nil
}

// run drives the session until it completes or the user quits. It reports
// whether the results were saved.
func (r *takeRunner) run() (bool, error) {
	for !r.session.IsComplete() {
		if err := display.ShowQuestion(r.out, r.session, r.palette); err != nil {
			return false, err
		}

		line, err := r.readLine()
		if err != nil {
			return false, err
		}
		fmt.Fprintln(r.out)

		switch strings.ToLower(line) {
		case "q", "quit":
			return false, nil
		case "", "n", "next":
		default:
			if !r.answer(line) {
				continue
			}
		}

		if _, err := r.session.Advance(); err != nil {
			if errors.Is(err, assessment.ErrUnanswered) {
				q, _ := r.session.CurrentQuestion()
				r.log.LogAdvanceRejected(q.ID)
				display.WarnUnanswered().DisplayWith(r.out, r.palette)
				continue
			}
			if assessment.IsStorageError(err) {
				return r.retrySave(err)
			}
			return false, err
		}
		r.console.LogProgress(len(r.session.Responses()), r.session.Bank().Len())
	}
	return true, nil
}

// answer records line as the answer to the current question. A number picks
// an option by position, anything else must match an option label.
func (r *takeRunner) answer(line string) bool {
	q, err := r.session.CurrentQuestion()
	if err != nil {
		return false
	}

	if n, convErr := strconv.Atoi(line); convErr == nil {
		err = r.session.RecordAnswer(n - 1)
	} else {
		err = r.session.RecordAnswerText(line)
	}
	if err != nil {
		r.log.LogDebug(err.Error())
		display.WarnInvalidOption(line, len(q.Options)).DisplayWith(r.out, r.palette)
		return false
	}

	idx, _ := r.session.Answer()
	r.log.LogAnswer(q.ID, idx)
	return true
}

// retrySave asks the user to retry or skip a failed save until one succeeds
// or they give up.
func (r *takeRunner) retrySave(err error) (bool, error) {
	for err != nil {
		r.log.LogError(err.Error())
		display.WarnSaveFailed(err).DisplayWith(r.out, r.palette)
		fmt.Fprint(r.out, "[r/s]: ")

		line, readErr := r.readLine()
		if readErr != nil {
			// Nobody left to ask; keep the results on screen unsaved
			return false, nil
		}
		fmt.Fprintln(r.out)

		switch strings.ToLower(line) {
		case "r", "retry":
			err = r.session.Persist()
		case "s", "skip":
			r.log.LogWarn("Results were not saved")
			return false, nil
		}
	}
	return true, nil
}

func (r *takeRunner) readLine() (string, error) {
	if !r.in.Scan() {
		if err := r.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(r.in.Text()), nil
}
