// Package logger provides logging implementations for assessment sessions.
//
// Loggers record session lifecycle events (start, each answer, rejected
// advances, completion and persistence) plus free-form leveled messages.
// Implementations are thread-safe and write to the console or to per-session
// log files.
package logger

import (
	"strings"

	"github.com/harrison/wellnest/internal/assessment"
)

// Logger is the event sink a running session reports to.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)

	LogSessionStart(total int)
	LogAnswer(questionID, index int)
	LogAdvanceRejected(questionID int)
	LogComplete(scores assessment.ScoreResult)
	LogPersisted(key string)
}

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	default:
		return "info"
	}
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// allows reports whether a message at messageLevel passes the configured level.
func allows(configured, messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(configured)
}

// MultiLogger fans every call out to each wrapped logger in order.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger wraps loggers, skipping nil entries.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

func (m *MultiLogger) each(fn func(Logger)) {
	for _, l := range m.loggers {
		fn(l)
	}
}

func (m *MultiLogger) LogTrace(message string) { m.each(func(l Logger) { l.LogTrace(message) }) }
func (m *MultiLogger) LogDebug(message string) { m.each(func(l Logger) { l.LogDebug(message) }) }
func (m *MultiLogger) LogInfo(message string) { m.each(func(l Logger) { l.LogInfo(message) }) }
func (m *MultiLogger) LogWarn(message string) { m.each(func(l Logger) { l.LogWarn(message) }) }
func (m *MultiLogger) LogError(message string) { m.each(func(l Logger) { l.LogError(message) }) }

func (m *MultiLogger) LogSessionStart(total int) {
	m.each(func(l Logger) { l.LogSessionStart(total) })
}

func (m *MultiLogger) LogAnswer(questionID, index int) {
	m.each(func(l Logger) { l.LogAnswer(questionID, index) })
}

func (m *MultiLogger) LogAdvanceRejected(questionID int) {
	m.each(func(l Logger) { l.LogAdvanceRejected(questionID) })
}

func (m *MultiLogger) LogComplete(scores assessment.ScoreResult) {
	m.each(func(l Logger) { l.LogComplete(scores) })
}

func (m *MultiLogger) LogPersisted(key string) {
	m.each(func(l Logger) { l.LogPersisted(key) })
}

// NoOpLogger is a Logger implementation that discards all log messages.
// Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) LogTrace(string) {}
func (n *NoOpLogger) LogDebug(string) {}
func (n *NoOpLogger) LogInfo(string) {}
func (n *NoOpLogger) LogWarn(string) {}
func (n *NoOpLogger) LogError(string) {}
func (n *NoOpLogger) LogSessionStart(int) {}
func (n *NoOpLogger) LogAnswer(int, int) {}
func (n *NoOpLogger) LogAdvanceRejected(int) {}
func (n *NoOpLogger) LogComplete(assessment.ScoreResult) {}
func (n *NoOpLogger) LogPersisted(string) {}
