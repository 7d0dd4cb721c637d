package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/wellnest/internal/assessment"
	"github.com/harrison/wellnest/internal/config"
	"github.com/harrison/wellnest/internal/display"
	"github.com/harrison/wellnest/internal/storage"
)

// loadConfig resolves the home directory and loads configuration with the
// persistent flags applied on top.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	flags := cmd.Flags()

	home, _ := flags.GetString("home")
	if home == "" {
		var err error
		home, err = config.GetWellnestHome()
		if err != nil {
			return nil, "", fmt.Errorf("failed to resolve wellnest home: %w", err)
		}
	} else if err := os.MkdirAll(home, 0755); err != nil {
		return nil, "", fmt.Errorf("failed to create wellnest home: %w", err)
	}

	var logLevelPtr, backendPtr, storagePathPtr *string
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		logLevelPtr = &v
	}
	if flags.Changed("backend") {
		v, _ := flags.GetString("backend")
		backendPtr = &v
	}
	if flags.Changed("storage-path") {
		v, _ := flags.GetString("storage-path")
		storagePathPtr = &v
	}
	noColor, _ := flags.GetBool("no-color")

	cfg, err := config.Load(home, func(c *config.Config) {
		c.MergeWithFlags(logLevelPtr, backendPtr, storagePathPtr)
		if noColor {
			c.NoColor = true
		}
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid config: %w", err)
	}

	return cfg, home, nil
}

// openResults opens the configured store and wraps it in a Results repository.
// The caller closes the returned KV.
func openResults(ctx context.Context, cfg *config.Config) (*storage.Results, storage.KV, error) {
	kv, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, nil, &assessment.StorageError{Op: "open", Err: err}
	}
	return storage.NewResults(kv, cfg.Storage), kv, nil
}

// storeLocation is the file behind kv, or "" for stores without one.
func storeLocation(kv storage.KV) string {
	if p, ok := kv.(interface{ Path() string }); ok {
		return p.Path()
	}
	return ""
}

// palette picks colours for w, honouring NO_COLOR and --no-color.
func palette(cfg *config.Config, w io.Writer) *display.Palette {
	return display.NewPalette(!cfg.NoColor && display.IsTerminal(w))
}

// confirmAction asks a yes/no question on in; anything but y/yes is no.
func confirmAction(in io.Reader, out io.Writer) bool {
	scanner := bufio.NewScanner(in)

	fmt.Fprintf(out, "Continue? [y/N]: ")

	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return response == "y" || response == "yes"
}
