package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/harrison/wellnest/internal/assessment"
)

// TestLogDirectoryCreation verifies the log directory is created on initialization
func TestLogDirectoryCreation(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "nested", "logs")

	logger, err := NewFileLogger(logDir)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Expected log directory %s to exist", logDir)
	}
	if logger.logLevel != "info" {
		t.Errorf("expected default level info, got %q", logger.logLevel)
	}
}

// TestSessionLogFile verifies a timestamped log file with a header is created
func TestSessionLogFile(t *testing.T) {
	logger, err := NewFileLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer logger.Close()

	base := filepath.Base(logger.Path())
	if !strings.HasPrefix(base, "session-") || !strings.HasSuffix(base, ".log") {
		t.Errorf("unexpected log file name %q", base)
	}

	content, err := os.ReadFile(logger.Path())
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if !strings.Contains(string(content), "=== Wellnest Session Log ===") {
		t.Errorf("missing header in %q", string(content))
	}
}

// TestLatestSymlink verifies latest.log points at the session file
func TestLatestSymlink(t *testing.T) {
	logDir := t.TempDir()
	logger, err := NewFileLogger(logDir)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer logger.Close()

	symlinkPath := filepath.Join(logDir, "latest.log")
	linkInfo, err := os.Lstat(symlinkPath)
	if err != nil {
		t.Fatalf("Expected latest.log symlink to exist: %v", err)
	}
	if linkInfo.Mode()&os.ModeSymlink == 0 {
		t.Error("Expected latest.log to be a symlink")
	}

	target, err := os.Readlink(symlinkPath)
	if err != nil {
		t.Fatalf("Failed to read symlink: %v", err)
	}
	if target != filepath.Base(logger.Path()) {
		t.Errorf("symlink target = %q, want %q", target, filepath.Base(logger.Path()))
	}
}

// TestSymlinkUpdate verifies symlink updates on a new session
func TestSymlinkUpdate(t *testing.T) {
	logDir := t.TempDir()

	logger1, err := NewFileLogger(logDir)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	logger1.Close()

	// Session files are named to the second
	time.Sleep(time.Second)

	logger2, err := NewFileLogger(logDir)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer logger2.Close()

	target, err := os.Readlink(filepath.Join(logDir, "latest.log"))
	if err != nil {
		t.Fatalf("Failed to read symlink: %v", err)
	}
	if target != filepath.Base(logger2.Path()) {
		t.Errorf("Expected symlink to point to %s, got %s", filepath.Base(logger2.Path()), target)
	}
	if logger1.Path() == logger2.Path() {
		t.Error("expected distinct session files")
	}
}

// TestFileLogSessionEvents verifies the full event trail is written
func TestFileLogSessionEvents(t *testing.T) {
	logger, err := NewFileLoggerWithLevel(t.TempDir(), "debug")
	if err != nil {
		t.Fatalf("NewFileLoggerWithLevel() error = %v", err)
	}

	logger.LogSessionStart(8)
	logger.LogAnswer(1, 3)
	logger.LogAdvanceRejected(2)
	logger.LogComplete(assessment.ScoreResult{Stress: 6, Mood: 0, Wellbeing: 0})
	logger.LogPersisted("wellnest_quiz_results")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	content, err := os.ReadFile(logger.Path())
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	output := string(content)

	expected := []string{
		"Starting assessment: 8 questions",
		"Question 1: option 3",
		"Question 2: no answer selected",
		"Assessment complete: stress: 6, mood: 0, wellbeing: 0",
		`Saved results under "wellnest_quiz_results"`,
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in log:\n%s", want, output)
		}
	}
}

// TestFileLogSingularQuestion verifies the singular label
func TestFileLogSingularQuestion(t *testing.T) {
	logger, err := NewFileLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	logger.LogSessionStart(1)
	logger.Close()

	content, _ := os.ReadFile(logger.Path())
	if !strings.Contains(string(content), "Starting assessment: 1 question\n") {
		t.Errorf("unexpected content %q", string(content))
	}
}

// TestConcurrentLogWrites verifies concurrent writes all land
func TestConcurrentLogWrites(t *testing.T) {
	logger, err := NewFileLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.LogInfo(fmt.Sprintf("concurrent %d", n))
		}(i)
	}
	wg.Wait()
	logger.Close()

	content, err := os.ReadFile(logger.Path())
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	for i := 0; i < 10; i++ {
		if !strings.Contains(string(content), fmt.Sprintf("concurrent %d\n", i)) {
			t.Errorf("missing line %d", i)
		}
	}
}

// TestNewFileLoggerInvalidPath verifies an error when the directory cannot be created
func TestNewFileLoggerInvalidPath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileLogger(filepath.Join(blocker, "logs")); err == nil {
		t.Error("expected error when log dir is under a regular file")
	}
}

// TestCloseTwice verifies Close is idempotent and later writes are dropped
func TestCloseTwice(t *testing.T) {
	logger, err := NewFileLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	logger.LogInfo("after close")
}
