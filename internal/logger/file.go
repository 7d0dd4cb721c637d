package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/wellnest/internal/assessment"
)

// FileLogger writes session events to a timestamped file in the log
// directory and keeps a latest.log symlink pointing at the newest one.
// It is thread-safe and supports log level filtering.
type FileLogger struct {
	logDir      string
	sessionLog  *os.File
	sessionFile string
	logLevel    string
	mu          sync.Mutex
}

// NewFileLogger creates a FileLogger writing to logDir at "info" level.
func NewFileLogger(logDir string) (*FileLogger, error) {
	return NewFileLoggerWithLevel(logDir, "info")
}

// NewFileLoggerWithLevel creates the log directory if needed, opens a
// session-YYYYMMDD-HHMMSS.log file and points latest.log at it.
func NewFileLoggerWithLevel(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	stamp := time.Now().Format("20060102-150405")
	sessionFile := filepath.Join(logDir, fmt.Sprintf("session-%s.log", stamp))

	file, err := os.OpenFile(sessionFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create session log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(sessionFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	logger := &FileLogger{
		logDir:      logDir,
		sessionLog:  file,
		sessionFile: sessionFile,
		logLevel:    normalizeLogLevel(logLevel),
	}

	logger.write("=== Wellnest Session Log ===\n")
	logger.write(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return logger, nil
}

// Path returns the session log file location.
func (fl *FileLogger) Path() string {
	return fl.sessionFile
}

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return allows(fl.logLevel, messageLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}
	fl.write(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

func (fl *FileLogger) event(level, message string) {
	if !fl.shouldLog(level) {
		return
	}
	fl.write(fmt.Sprintf("[%s] %s\n", timestamp(), message))
}

// LogSessionStart records the start of an assessment at INFO level.
func (fl *FileLogger) LogSessionStart(total int) {
	label := "questions"
	if total == 1 {
		label = "question"
	}
	fl.event("info", fmt.Sprintf("Starting assessment: %d %s", total, label))
}

// LogAnswer records a selected option at DEBUG level.
func (fl *FileLogger) LogAnswer(questionID, index int) {
	fl.event("debug", fmt.Sprintf("Question %d: option %d", questionID, index))
}

// LogAdvanceRejected records an advance without an answer at INFO level.
func (fl *FileLogger) LogAdvanceRejected(questionID int) {
	fl.event("info", fmt.Sprintf("Question %d: no answer selected", questionID))
}

// LogComplete records the final sub-scores at INFO level.
func (fl *FileLogger) LogComplete(scores assessment.ScoreResult) {
	fl.event("info", "Assessment complete: "+formatScores(scores))
}

// LogPersisted records a successful save at INFO level.
func (fl *FileLogger) LogPersisted(key string) {
	fl.event("info", fmt.Sprintf("Saved results under %q", key))
}

// Close flushes and closes the session log file. Calling it twice is safe.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.sessionLog != nil {
		if err := fl.sessionLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync session log: %w", err)
		}
		if err := fl.sessionLog.Close(); err != nil {
			return fmt.Errorf("failed to close session log: %w", err)
		}
		fl.sessionLog = nil
	}

	return nil
}

// write is a thread-safe helper to append to the session log.
func (fl *FileLogger) write(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.sessionLog != nil {
		fl.sessionLog.WriteString(message)
		// Flush after each write so a crash keeps the trail
		fl.sessionLog.Sync()
	}
}
