package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/harrison/wellnest/internal/assessment"
)

// ConsoleLogger logs session events to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
// It supports log level filtering to control message verbosity.
// Color output is automatically enabled for terminal output (os.Stdout/os.Stderr).
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
// Returns true for os.Stdout and os.Stderr when they are TTYs.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}

	if w == os.Stdout || w == os.Stderr {
		// color.NoColor already accounts for NO_COLOR and non-TTY output
		return !color.NoColor
	}

	return false
}

func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return allows(cl.logLevel, messageLevel)
}

// LogTrace logs a trace-level message (most verbose).
// Format: "[HH:MM:SS] [TRACE] <message>"
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

// logWithLevel logs a message at the specified level if filtering allows it.
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}
	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string
	if cl.colorOutput {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, colorLevel(level), message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.writer.Write([]byte(formatted))
}

// colorLevel wraps a level tag in its display colour.
func colorLevel(level string) string {
	switch strings.ToUpper(level) {
	case "TRACE":
		return color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(level)
	case "INFO":
		return color.New(color.FgBlue).Sprint(level)
	case "WARN":
		return color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		return color.New(color.FgRed).Sprint(level)
	default:
		return level
	}
}

// writeEvent writes a pre-formatted event line at level.
func (cl *ConsoleLogger) writeEvent(level, plain, colored string) {
	if cl.writer == nil || !cl.shouldLog(level) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	msg := plain
	if cl.colorOutput && colored != "" {
		msg = colored
	}
	cl.writer.Write([]byte(fmt.Sprintf("[%s] %s\n", timestamp(), msg)))
}

// LogSessionStart logs the start of an assessment at INFO level.
// Format: "[HH:MM:SS] Starting assessment: <n> questions"
func (cl *ConsoleLogger) LogSessionStart(total int) {
	plain := fmt.Sprintf("Starting assessment: %d questions", total)
	colored := fmt.Sprintf("%s: %d questions", color.New(color.Bold).Sprint("Starting assessment"), total)
	cl.writeEvent("info", plain, colored)
}

// LogAnswer logs a recorded answer at DEBUG level.
// Format: "[HH:MM:SS] Question <id>: option <index>"
func (cl *ConsoleLogger) LogAnswer(questionID, index int) {
	cl.writeEvent("debug", fmt.Sprintf("Question %d: option %d", questionID, index), "")
}

// LogAdvanceRejected logs an attempt to move past an unanswered question at
// INFO level.
func (cl *ConsoleLogger) LogAdvanceRejected(questionID int) {
	plain := fmt.Sprintf("Question %d: no answer selected", questionID)
	colored := color.New(color.FgYellow).Sprint(plain)
	cl.writeEvent("info", plain, colored)
}

// LogComplete logs the final sub-scores at INFO level.
// Format: "[HH:MM:SS] Assessment complete: stress: N, mood: N, wellbeing: N"
func (cl *ConsoleLogger) LogComplete(scores assessment.ScoreResult) {
	plain := "Assessment complete: " + formatScores(scores)
	colored := fmt.Sprintf("%s: %s",
		color.New(color.FgGreen).Sprint("Assessment complete"),
		formatColorizedScores(scores, newColorScheme()))
	cl.writeEvent("info", plain, colored)
}

// LogPersisted logs a successful save at INFO level.
func (cl *ConsoleLogger) LogPersisted(key string) {
	cl.writeEvent("info", fmt.Sprintf("Saved results under %q", key), "")
}

// LogProgress logs how far through the bank the session is at DEBUG level.
// Format: "[HH:MM:SS] Progress: [===       ] 3/8 (37%)"
func (cl *ConsoleLogger) LogProgress(answered, total int) {
	pb := NewProgressBar(total, 10, cl.colorOutput)
	pb.Update(answered)
	cl.writeEvent("debug", "Progress: "+pb.Render(), "")
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatScores renders scores as "stress: N, mood: N, wellbeing: N".
func formatScores(scores assessment.ScoreResult) string {
	return fmt.Sprintf("stress: %d, mood: %d, wellbeing: %d", scores.Stress, scores.Mood, scores.Wellbeing)
}
