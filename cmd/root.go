/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Design: configuration is loaded once in PersistentPreRunE and shared
// with commands through loadedConfig(). A missing config file is not an
// error (defaults apply); a malformed one is, because silently ignoring
// it would make config edits appear to have no effect.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/jpl-au/writerd/internal/config"
	"github.com/jpl-au/writerd/internal/log"
	"github.com/spf13/cobra"
)

// cfg is the configuration loaded for this invocation. Nil until
// PersistentPreRunE runs; accessors fall back to defaults when nil.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "writerd",
	Short: "Word processor automation for LLM workflows",
	Long:  `A document editing server with cursor, selection, search, track changes, comments, and export operations, exposed to LLMs over MCP.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		// Detect author if not explicitly set
		if author == "" {
			author = detectAuthor()
		}
		return nil
	},
}

// loadedConfig returns the configuration for this invocation, loading
// defaults if PersistentPreRunE has not run (as in tests).
func loadedConfig() *config.Config {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return cfg
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, executes the command, and closes the log before
// exit. Exit code 1 indicates error.
func Execute() {
	// Initialise audit logger (warn if it fails, but continue)
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	if wd, err := os.Getwd(); err == nil {
		log.SetWorkspace(wd)
	}

	if err := rootCmd.Execute(); err != nil {
		log.Close()
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
