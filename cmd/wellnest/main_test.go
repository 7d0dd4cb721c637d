package main

import (
	"testing"

	"github.com/harrison/wellnest/internal/cmd"
)

func TestVersionDefault(t *testing.T) {
	if cmd.Version == "" {
		t.Error("Version should not be empty")
	}
}

func TestRootCommandVersion(t *testing.T) {
	if got := cmd.NewRootCommand().Version; got != cmd.Version {
		t.Errorf("root command version = %q, want %q", got, cmd.Version)
	}
}
