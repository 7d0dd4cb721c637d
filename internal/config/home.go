package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetWellnestHome returns the wellnest home directory
// Priority order:
//  1. WELLNEST_HOME environment variable (if set)
//  2. $HOME/.wellnest
//  3. .wellnest in the current working directory (fallback)
//
// The directory is created if it doesn't exist
func GetWellnestHome() (string, error) {
	home := os.Getenv("WELLNEST_HOME")

	if home == "" {
		if userHome, err := os.UserHomeDir(); err == nil && userHome != "" {
			home = filepath.Join(userHome, ".wellnest")
		}
	}

	if home == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		home = filepath.Join(cwd, ".wellnest")
	}

	if err := os.MkdirAll(home, 0755); err != nil {
		return "", fmt.Errorf("create wellnest home directory: %w", err)
	}

	return home, nil
}

// ConfigPath returns the config file location inside home
func ConfigPath(home string) string {
	return filepath.Join(home, "config.yaml")
}
