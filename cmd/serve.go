/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// serve.go implements the "writerd serve" command for MCP server operation.
//
// Unlike other commands that run and exit, serve blocks indefinitely
// handling MCP requests over stdio. The editor session lives for the
// duration of the server; documents opened or created by one tool call
// are visible to the next.

package cmd

import (
	"fmt"

	"github.com/jpl-au/writerd/internal/editor"
	"github.com/jpl-au/writerd/internal/mcp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP server",
	Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Use --file to open a document before serving:
  writerd serve --file draft.txt`,
	RunE: runServe,
}

func runServe(_ *cobra.Command, _ []string) error {
	desk := editor.NewDesktop()
	if path := File(); path != "" {
		if _, err := desk.Open(path); err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
	}
	return mcp.Serve(desk, loadedConfig(), Author())
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
