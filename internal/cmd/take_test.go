package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/wellnest/internal/assessment"
	"github.com/harrison/wellnest/internal/display"
	"github.com/harrison/wellnest/internal/logger"
	"github.com/harrison/wellnest/internal/storage"
)

// answers joins input lines into stdin for the take command.
func answers(options ...string) string {
	return strings.Join(options, "\n") + "\n"
}

func TestTakeCommand_CompletesAndSaves(t *testing.T) {
	home := t.TempDir()

	out, _, err := executeCommand(t, answers("1", "1", "1", "1", "1", "1", "1", "1"), "--home", home, "take")
	require.NoError(t, err)

	assert.Contains(t, out, "Question 1 of 8")
	assert.Contains(t, out, "Question 8 of 8")
	assert.Contains(t, out, "View Results")
	assert.Contains(t, out, "Your Mental Health Assessment Results")
	assert.Contains(t, out, "Stress Management")
	assert.Contains(t, out, "Start with gentle stretching exercises")
	assert.NotContains(t, out, "Mood Improvement")

	jsonOut, _, err := executeCommand(t, "", "--home", home, "results", "--json")
	require.NoError(t, err)

	var scores assessment.ScoreResult
	require.NoError(t, json.Unmarshal([]byte(jsonOut), &scores))
	assert.Equal(t, assessment.ScoreResult{Stress: 6, Mood: 9, Wellbeing: 9}, scores)

	_, err = os.Lstat(filepath.Join(home, "logs", "latest.log"))
	assert.NoError(t, err, "session log symlink should exist")
}

func TestTakeCommand_LogsSession(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCommand(t, answers("4", "4", "4", "4", "4", "4", "4", "4"), "--home", home, "take")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(home, "logs", "latest.log"))
	require.NoError(t, err)
	log := string(data)
	assert.Contains(t, log, "Starting assessment: 8 questions")
	assert.Contains(t, log, "Question 1: option 3")
	assert.Contains(t, log, "Assessment complete: stress: 0, mood: 0, wellbeing: 0")
	assert.Contains(t, log, `Saved results under "wellnest_quiz_results"`)
}

func TestTakeCommand_OptionText(t *testing.T) {
	home := t.TempDir()

	in := answers("several days", "Often", "3", "3", "3", "3", "3", "3")
	_, _, err := executeCommand(t, in, "--home", home, "take")
	require.NoError(t, err)

	out, _, err := executeCommand(t, "", "--home", home, "history", "--json")
	require.NoError(t, err)

	var records []storage.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].Responses[1])
	assert.Equal(t, 2, records[0].Responses[2])
}

func TestTakeCommand_RejectsAdvanceWithoutAnswer(t *testing.T) {
	home := t.TempDir()

	in := answers("", "n", "2", "2", "2", "2", "2", "2", "2", "2")
	out, stderr, err := executeCommand(t, in, "--home", home, "--log-level", "info", "take")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "Please select an answer before continuing"))
	assert.Contains(t, stderr, "Question 1: no answer selected")
	assert.Contains(t, out, "Your Mental Health Assessment Results")
}

func TestTakeCommand_InvalidOption(t *testing.T) {
	home := t.TempDir()

	in := answers("7", "maybe", "1", "1", "1", "1", "1", "1", "1", "1")
	out, _, err := executeCommand(t, in, "--home", home, "take")
	require.NoError(t, err)

	assert.Contains(t, out, `"7" is not one of the options`)
	assert.Contains(t, out, `"maybe" is not one of the options`)
	assert.Contains(t, out, "Enter a number from 1 to 4 or the option text")
	assert.Contains(t, out, "Your Mental Health Assessment Results")
}

func TestTakeCommand_Quit(t *testing.T) {
	home := t.TempDir()

	out, _, err := executeCommand(t, answers("1", "2", "q"), "--home", home, "take")
	require.NoError(t, err)
	assert.Contains(t, out, "Assessment cancelled. Nothing was saved.")
	assert.NotContains(t, out, "Your Mental Health Assessment Results")

	out, _, err = executeCommand(t, "", "--home", home, "results")
	require.NoError(t, err)
	assert.Contains(t, out, "No results saved yet")
}

func TestTakeCommand_InputClosed(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCommand(t, answers("1", "1"), "--home", home, "take")
	require.Error(t, err)
	assert.ErrorIs(t, err, errInputClosed)
}

func TestTakeCommand_DryRun(t *testing.T) {
	home := t.TempDir()

	out, _, err := executeCommand(t, answers("2", "2", "2", "2", "2", "2", "2", "2"), "--home", home, "take", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Your Mental Health Assessment Results")

	out, _, err = executeCommand(t, "", "--home", home, "results")
	require.NoError(t, err)
	assert.Contains(t, out, "No results saved yet")

	_, err = os.Stat(filepath.Join(home, "logs"))
	assert.True(t, os.IsNotExist(err), "dry run should not write session logs")
}

func TestTakeCommand_SQLiteBackend(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCommand(t, answers("3", "3", "3", "3", "3", "3", "3", "3"), "--home", home, "--backend", "sqlite", "take")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(home, "wellnest.db"))
	require.NoError(t, err)

	out, _, err := executeCommand(t, "", "--home", home, "--backend", "sqlite", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "1 assessment(s)")
}

// flakyResults fails the first n saves.
type flakyResults struct {
	failures int
	saves    int
}

func (f *flakyResults) hook(assessment.Outcome) error {
	if f.failures > 0 {
		f.failures--
		return &assessment.StorageError{Op: "put", Err: errors.New("disk full")}
	}
	f.saves++
	return nil
}

func newTestRunner(stdin string, hook assessment.CompletionHook) (*takeRunner, *bytes.Buffer) {
	out := new(bytes.Buffer)
	return &takeRunner{
		in:      bufio.NewScanner(strings.NewReader(stdin)),
		out:     out,
		palette: display.NewPalette(false),
		log:     logger.NewNoOpLogger(),
		console: logger.NewConsoleLogger(nil, "info"),
		session: assessment.NewSession(assessment.DefaultBank(), assessment.WithCompletionHook(hook)),
	}, out
}

func TestTakeRunner_RetrySave(t *testing.T) {
	flaky := &flakyResults{failures: 2}
	r, out := newTestRunner(answers("1", "1", "1", "1", "1", "1", "1", "1", "r", "r"), flaky.hook)

	saved, err := r.run()
	require.NoError(t, err)
	assert.True(t, saved)
	assert.True(t, r.session.IsComplete())
	assert.Equal(t, 1, flaky.saves)
	assert.Equal(t, 2, strings.Count(out.String(), "Your results could not be saved"))
	assert.Contains(t, out.String(), "disk full")
}

func TestTakeRunner_SkipSave(t *testing.T) {
	flaky := &flakyResults{failures: 5}
	r, out := newTestRunner(answers("1", "1", "1", "1", "1", "1", "1", "1", "x", "s"), flaky.hook)

	saved, err := r.run()
	require.NoError(t, err)
	assert.False(t, saved)
	assert.True(t, r.session.IsComplete(), "results are still shown after skipping")
	assert.Equal(t, 0, flaky.saves)
	assert.Equal(t, 2, strings.Count(out.String(), "Your results could not be saved"))
}

func TestTakeRunner_SaveFailureAtEOF(t *testing.T) {
	flaky := &flakyResults{failures: 1}
	r, _ := newTestRunner(answers("1", "1", "1", "1", "1", "1", "1", "1"), flaky.hook)

	saved, err := r.run()
	require.NoError(t, err)
	assert.False(t, saved)
	assert.True(t, r.session.IsComplete())
}

func TestTakeRunner_ChangeAnswerBeforeAdvance(t *testing.T) {
	var got assessment.Outcome
	hook := func(o assessment.Outcome) error {
		got = o
		return nil
	}
	r, _ := newTestRunner(answers("1", "1", "1", "1", "1", "1", "1", "1"), hook)

	// The typed answer replaces one recorded earlier
	require.NoError(t, r.session.RecordAnswer(3))
	saved, err := r.run()
	require.NoError(t, err)
	assert.True(t, saved)
	assert.Equal(t, 0, got.Responses[1])
}
