// Package main is the entry point for the tasktimer CLI.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/runoshun/tasktimer/internal/app"
	"github.com/runoshun/tasktimer/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	dataDir, err := app.ResolveDataDir()
	if err != nil {
		return fmt.Errorf("failed to resolve data directory: %w", err)
	}

	// Create dependency injection container
	container, err := app.New(dataDir)
	if err != nil {
		// Help and the config template do not need a readable config or store
		if canRunWithoutContainer(os.Args[1:]) {
			return cli.NewRootCommand(nil, version).Execute()
		}
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() { _ = container.Close() }()

	// Create and execute root command
	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.Execute()
}

func canRunWithoutContainer(args []string) bool {
	if len(args) > 0 && args[0] == "help" {
		return true
	}
	if len(args) >= 2 && args[0] == "config" && args[1] == "template" {
		return true
	}
	for _, arg := range args {
		if arg == "--version" || arg == "-v" || arg == "--help" || arg == "-h" ||
			strings.HasPrefix(arg, "--help") {
			return true
		}
	}
	return false
}
