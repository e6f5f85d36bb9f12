// Package mcp implements the Model Context Protocol server, exposing
// writerd's editing tools to LLMs. This enables AI assistants to
// navigate, edit, and review documents through a standardised protocol.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jpl-au/writerd/internal/action"
	"github.com/jpl-au/writerd/internal/config"
	"github.com/jpl-au/writerd/internal/editor"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// Serve starts the MCP server over stdio, enabling LLM integration.
// Uses stdio transport for compatibility with Claude Desktop and other
// MCP clients.
//
// Design: every writerd tool is one MCP tool taking an "action"
// parameter, rather than one MCP tool per action. This keeps the tool
// list short enough for clients to hold in context, and the action
// router returns valid_actions hints when an LLM picks a wrong action,
// so the flat surface stays self-correcting.
func Serve(desk *editor.Desktop, cfg *config.Config, author string) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	r := action.New(desk, cfg)
	r.SetSource("mcp")
	if author != "" {
		r.SetAuthor(author)
	}

	s := server.NewMCPServer(
		"writerd",
		Version,
		server.WithToolCapabilities(true),
	)

	registerTools(s, r)

	slog.Info("writerd MCP server ready", "version", Version, "transport", "stdio")

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// actionDesc builds the description for a tool's action parameter from
// the router's dispatch table, so the advertised list can never drift
// from what Dispatch accepts.
func actionDesc(tool string) string {
	return fmt.Sprintf("Action to perform. One of: %s", strings.Join(action.ValidActions(tool), ", "))
}

// registerTools exposes the editing tools for LLM invocation.
func registerTools(s *server.MCPServer, r *action.Router) {
	// Document lifecycle - create/info/list/content work without a file,
	// status works without any document at all
	s.AddTool(
		mcp.NewTool("writerd_document",
			mcp.WithDescription("Create and inspect documents. Use action=status to check the connection, action=create to open a new document."),
			mcp.WithString("action", mcp.Required(), mcp.Description(actionDesc("document"))),
			mcp.WithString("doc_type", mcp.Description("Document type for create: writer, calc, impress, draw (default: writer)")),
		),
		toolHandler(r, "document"),
	)

	// Structure
	s.AddTool(
		mcp.NewTool("writerd_structure",
			mcp.WithDescription("Read document structure: heading outline, individual paragraphs, paragraph ranges"),
			mcp.WithString("action", mcp.Required(), mcp.Description(actionDesc("structure"))),
			mcp.WithNumber("n", mcp.Description("Paragraph number (1-based)")),
			mcp.WithNumber("start", mcp.Description("First paragraph of a range (1-based)")),
			mcp.WithNumber("end", mcp.Description("Last paragraph of a range (inclusive)")),
		),
		toolHandler(r, "structure"),
	)

	// Cursor
	s.AddTool(
		mcp.NewTool("writerd_cursor",
			mcp.WithDescription("Move the cursor and read its surroundings"),
			mcp.WithString("action", mcp.Required(), mcp.Description(actionDesc("cursor"))),
			mcp.WithNumber("n", mcp.Description("Paragraph number for goto_paragraph (1-based)")),
			mcp.WithNumber("char_pos", mcp.Description("Character position for goto_position (clamped to document length)")),
			mcp.WithNumber("chars", mcp.Description("Context window size for context (default from config)")),
		),
		toolHandler(r, "cursor"),
	)

	// Selection
	s.AddTool(
		mcp.NewTool("writerd_selection",
			mcp.WithDescription("Select text and edit the selection. Deletes and replacements respect track changes when recording is on."),
			mcp.WithString("action", mcp.Required(), mcp.Description(actionDesc("selection"))),
			mcp.WithNumber("n", mcp.Description("Paragraph number for paragraph (1-based)")),
			mcp.WithNumber("start", mcp.Description("Selection start character position")),
			mcp.WithNumber("end", mcp.Description("Selection end character position (exclusive)")),
			mcp.WithString("text", mcp.Description("Replacement text for replace")),
			mcp.WithString("author", mcp.Description("Author attribution for tracked edits")),
		),
		toolHandler(r, "selection"),
	)

	// Search
	s.AddTool(
		mcp.NewTool("writerd_search",
			mcp.WithDescription("Find and replace text. Matches are computed over visible text, so occurrences pending tracked deletion are skipped."),
			mcp.WithString("action", mcp.Required(), mcp.Description(actionDesc("search"))),
			mcp.WithString("query", mcp.Description("Text to find (for find)")),
			mcp.WithString("old", mcp.Description("Text to find (for replace, replace_all)")),
			mcp.WithString("new", mcp.Description("Replacement text (for replace, replace_all)")),
			mcp.WithString("author", mcp.Description("Author attribution for tracked edits")),
		),
		toolHandler(r, "search"),
	)

	// Track changes
	s.AddTool(
		mcp.NewTool("writerd_track_changes",
			mcp.WithDescription("Control change tracking and review pending revisions. accept_all/reject_all resolve every pending change; preview diffs the shown text against the all-accepted text."),
			mcp.WithString("action", mcp.Required(), mcp.Description(actionDesc("track_changes"))),
			mcp.WithNumber("index", mcp.Description("Revision index for accept/reject (0-based, from list)")),
			mcp.WithBoolean("show", mcp.Description("For enable: also display tracked changes in the text (default true)")),
		),
		toolHandler(r, "track_changes"),
	)

	// Comments
	s.AddTool(
		mcp.NewTool("writerd_comments",
			mcp.WithDescription("List comments or add a comment anchored at the cursor"),
			mcp.WithString("action", mcp.Required(), mcp.Description(actionDesc("comments"))),
			mcp.WithString("text", mcp.Description("Comment text (for add)")),
			mcp.WithString("author", mcp.Description("Comment author attribution")),
		),
		toolHandler(r, "comments"),
	)

	// Save and export
	s.AddTool(
		mcp.NewTool("writerd_save",
			mcp.WithDescription("Save the document or export it to another format"),
			mcp.WithString("action", mcp.Required(), mcp.Description(actionDesc("save"))),
			mcp.WithString("file_path", mcp.Description("Target path (required for export, optional for save when the document already has a location)")),
			mcp.WithString("export_format", mcp.Description("Export format: pdf, docx, odt, html, txt (default: pdf)")),
		),
		toolHandler(r, "save"),
	)

	// Text
	s.AddTool(
		mcp.NewTool("writerd_text",
			mcp.WithDescription("Insert text and apply character formatting to the selection"),
			mcp.WithString("action", mcp.Required(), mcp.Description(actionDesc("text"))),
			mcp.WithString("content", mcp.Description("Text to insert (for insert)")),
			mcp.WithNumber("position", mcp.Description("Insertion position (default: cursor)")),
			mcp.WithBoolean("bold", mcp.Description("Set or clear bold on the selection")),
			mcp.WithBoolean("italic", mcp.Description("Set or clear italic on the selection")),
			mcp.WithBoolean("underline", mcp.Description("Set or clear underline on the selection")),
			mcp.WithNumber("font_size", mcp.Description("Font size in points")),
			mcp.WithString("font_name", mcp.Description("Font family name")),
			mcp.WithString("author", mcp.Description("Author attribution for tracked edits")),
		),
		toolHandler(r, "text"),
	)
}

// toolHandler adapts one writerd tool to an MCP tool handler. The
// router's envelope already carries success/error state and hints, so
// failures are returned as normal JSON results rather than MCP error
// results - the LLM reads the envelope either way.
func toolHandler(r *action.Router, tool string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		act, err := req.RequireString("action")
		if err != nil {
			return mcp.NewToolResultError("action is required"), nil //nolint:nilerr
		}
		return jsonResult(r.Dispatch(tool, act, getParams(req)))
	}
}
