// Package log provides centralised audit logging for writerd operations.
// Logs are stored in ~/.writerd/log/writerd-log.db and track all CLI
// commands and MCP tool invocations across working directories.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("mcp:search", "replace_all").
//		Author(author).
//		Document(doc.Title).
//		Detail("query", query).
//		Detail("count", n).
//		Write(err)
//
// The source parameter follows the format "cli:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools. Examples: "cli:run",
// "mcp:document", "mcp:track_changes".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source   string // e.g., "cli:run", "mcp:document"
	Author   string // who performed the action
	Action   string // verb: create, find, replace_all, accept_all, etc.
	Document string // input: title or path of the document acted on
	Position int    // input: 1-based paragraph targeted, when applicable

	// Output field - populated after operation succeeds
	ResultPosition int // output: cursor offset after the operation

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "cli:{command}" (e.g., "cli:run")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:search", "mcp:comments")
//
// The action is the tool action that was dispatched:
//   - "create", "open", "find", "replace_all", "accept_all", etc.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation.
//
// For CLI commands, use the configured author. For MCP tools, use the
// author resolved for the session.
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Document sets the title or path of the document this operation affects.
//
// Leave unset for operations that don't target a document (e.g., a
// create before any document exists).
func (b *Builder) Document(name string) *Builder {
	b.entry.Document = name
	return b
}

// Position sets the 1-based paragraph the operation targeted, for
// operations addressed by paragraph number.
func (b *Builder) Position(paragraph int) *Builder {
	b.entry.Position = paragraph
	return b
}

// ResultPosition sets the cursor offset after the operation (output).
func (b *Builder) ResultPosition(offset int) *Builder {
	b.entry.ResultPosition = offset
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// search queries, replacement counts, export formats, etc.
// Can be called multiple times to add multiple details.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// If err is nil, the entry is logged as successful.
// If err is non-nil, the entry is logged as failed with the error message.
//
// This is the standard way to complete a log entry after an operation.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetWorkspace sets the workspace identifier for subsequent log entries.
// The dir should be the absolute path to the working directory.
func SetWorkspace(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.workspace = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
