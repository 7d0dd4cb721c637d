package main

import (
	"fmt"
	"os"

	"github.com/harrison/wellnest/internal/cmd"
)

// version overrides cmd.Version when set with -ldflags "-X main.version=..."
var version string

func main() {
	if version != "" {
		cmd.Version = version
	}

	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
