package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/harrison/wellnest/internal/assessment"
)

// TestLogLevelFiltering verifies that messages are filtered based on log level
func TestLogLevelFiltering(t *testing.T) {
	levels := []string{"trace", "debug", "info", "warn", "error"}

	for ci, configured := range levels {
		for mi, messageLevel := range levels {
			shouldAppear := mi >= ci
			name := configured + " vs " + messageLevel
			t.Run(name, func(t *testing.T) {
				buf := &bytes.Buffer{}
				logger := NewConsoleLogger(buf, configured)
				message := messageLevel + " msg"

				switch messageLevel {
				case "trace":
					logger.LogTrace(message)
				case "debug":
					logger.LogDebug(message)
				case "info":
					logger.LogInfo(message)
				case "warn":
					logger.LogWarn(message)
				case "error":
					logger.LogError(message)
				}

				contains := strings.Contains(buf.String(), message)
				if shouldAppear && !contains {
					t.Errorf("Expected %q to appear at level %s, output: %q", message, configured, buf.String())
				}
				if !shouldAppear && contains {
					t.Errorf("Expected %q NOT to appear at level %s, output: %q", message, configured, buf.String())
				}
			})
		}
	}
}

// TestLogLevelEdgeCases verifies level normalization
func TestLogLevelEdgeCases(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "info"},
		{"INFO", "info"},
		{"  Debug  ", "debug"},
		{"verbose", "info"},
		{"ERROR", "error"},
		{"warn", "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := normalizeLogLevel(tt.input); got != tt.expected {
				t.Errorf("normalizeLogLevel(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// TestEventLevels verifies each session event is emitted at its documented level
func TestEventLevels(t *testing.T) {
	tests := []struct {
		name     string
		emit     func(Logger)
		text     string
		minLevel string
		hiddenAt string
	}{
		{"session start", func(l Logger) { l.LogSessionStart(8) }, "Starting assessment", "info", "warn"},
		{"answer", func(l Logger) { l.LogAnswer(3, 2) }, "Question 3: option 2", "debug", "info"},
		{"advance rejected", func(l Logger) { l.LogAdvanceRejected(5) }, "Question 5: no answer selected", "info", "warn"},
		{"complete", func(l Logger) { l.LogComplete(assessment.ScoreResult{Stress: 6}) }, "Assessment complete", "info", "warn"},
		{"persisted", func(l Logger) { l.LogPersisted("wellnest_quiz_results") }, "wellnest_quiz_results", "info", "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shown := &bytes.Buffer{}
			tt.emit(NewConsoleLogger(shown, tt.minLevel))
			if !strings.Contains(shown.String(), tt.text) {
				t.Errorf("expected %q at level %s, got %q", tt.text, tt.minLevel, shown.String())
			}

			hidden := &bytes.Buffer{}
			tt.emit(NewConsoleLogger(hidden, tt.hiddenAt))
			if hidden.Len() != 0 {
				t.Errorf("expected no output at level %s, got %q", tt.hiddenAt, hidden.String())
			}
		})
	}
}

// TestFileLoggerWithLogLevel verifies FileLogger respects log level
func TestFileLoggerWithLogLevel(t *testing.T) {
	logDir := t.TempDir()
	logger, err := NewFileLoggerWithLevel(logDir, "warn")
	if err != nil {
		t.Fatalf("NewFileLoggerWithLevel() error = %v", err)
	}

	logger.LogInfo("info message")
	logger.LogDebug("debug message")
	logger.LogAnswer(1, 0)
	logger.LogAdvanceRejected(2)
	logger.LogWarn("warn message")
	logger.Close()

	content, err := os.ReadFile(logger.Path())
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	output := string(content)

	for _, hidden := range []string{"info message", "debug message", "Question 1: option 0", "Question 2: no answer selected"} {
		if strings.Contains(output, hidden) {
			t.Errorf("%q should be filtered at warn level", hidden)
		}
	}
	for _, shown := range []string{"warn message"} {
		if !strings.Contains(output, shown) {
			t.Errorf("%q should appear at warn level", shown)
		}
	}
}
