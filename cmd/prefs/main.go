package main

import (
	"fmt"
	"os"

	"github.com/andybarron/preferences-go/internal/version"
	"github.com/andybarron/preferences-go/pkg/config"
	"github.com/andybarron/preferences-go/pkg/style"
)

func versionString() string {
	return fmt.Sprintf("%s (commit %s, built %s)", version.Version, version.Commit, version.Date)
}

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, style.RenderError(err))
		os.Exit(1)
	}

	rootCmd := NewRootCmd(settings)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.RenderError(err))
		os.Exit(1)
	}
}
