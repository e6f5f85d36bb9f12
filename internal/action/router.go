// Package action implements the action router: a closed dispatch table
// mapping (tool, action) pairs onto editor operations, with parameter
// validation and a uniform result envelope.
//
// Every invocation returns an envelope map: {"success": true, ...fields}
// on success, {"success": false, "error": msg, ...hints} on failure.
// Errors never cross the dispatch boundary as Go errors or panics; the
// router converts everything. An invalid action includes the tool's
// valid actions in the envelope, a missing parameter names the
// parameter, so clients can self-correct.
//
// The table is closed: tools and actions are declared here at compile
// time, not registered dynamically.
package action

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/jpl-au/writerd/internal/config"
	"github.com/jpl-au/writerd/internal/editor"
	"github.com/jpl-au/writerd/internal/log"
)

// Result is the envelope returned by every dispatch.
type Result map[string]any

// Handler implements one action.
type Handler func(r *Router, p Params) (Result, error)

// Router routes invocations to the editor session. One request is in
// flight at a time; the mutex serialises dispatches so handlers can
// re-read cursor and selection state without interleaving.
type Router struct {
	mu     sync.Mutex
	desk   *editor.Desktop
	cfg    *config.Config
	source string
	author string
}

// New creates a router over an editor session. cfg may be nil, in which
// case defaults apply.
func New(desk *editor.Desktop, cfg *config.Config) *Router {
	return &Router{desk: desk, cfg: cfg, source: "cli"}
}

// SetSource sets the invocation source recorded in the audit log
// ("cli" or "mcp").
func (r *Router) SetSource(source string) { r.source = source }

// SetAuthor sets the default author for edits, overriding configuration.
func (r *Router) SetAuthor(author string) { r.author = author }

// Desktop returns the underlying editor session.
func (r *Router) Desktop() *editor.Desktop { return r.desk }

// table is the closed dispatch table. actionOrder mirrors it with the
// advertised ordering; the two are asserted equal in tests.
var table = map[string]map[string]Handler{
	"document": {
		"create":  documentCreate,
		"info":    documentInfo,
		"list":    documentList,
		"content": documentContent,
		"status":  documentStatus,
	},
	"structure": {
		"outline":   structureOutline,
		"paragraph": structureParagraph,
		"range":     structureRange,
		"count":     structureCount,
	},
	"cursor": {
		"goto_paragraph": cursorGotoParagraph,
		"goto_position":  cursorGotoPosition,
		"position":       cursorPosition,
		"context":        cursorContext,
	},
	"selection": {
		"paragraph": selectionParagraph,
		"range":     selectionRange,
		"delete":    selectionDelete,
		"replace":   selectionReplace,
	},
	"search": {
		"find":        searchFind,
		"replace":     searchReplace,
		"replace_all": searchReplaceAll,
	},
	"track_changes": {
		"status":     trackStatus,
		"enable":     trackEnable,
		"disable":    trackDisable,
		"list":       trackList,
		"accept":     trackAccept,
		"reject":     trackReject,
		"accept_all": trackAcceptAll,
		"reject_all": trackRejectAll,
		"preview":    trackPreview,
	},
	"comments": {
		"list": commentsList,
		"add":  commentsAdd,
	},
	"save": {
		"save":   saveSave,
		"export": saveExport,
	},
	"text": {
		"insert": textInsert,
		"format": textFormat,
	},
}

var toolOrder = []string{
	"document", "structure", "cursor", "selection", "search",
	"track_changes", "comments", "save", "text",
}

var actionOrder = map[string][]string{
	"document":      {"create", "info", "list", "content", "status"},
	"structure":     {"outline", "paragraph", "range", "count"},
	"cursor":        {"goto_paragraph", "goto_position", "position", "context"},
	"selection":     {"paragraph", "range", "delete", "replace"},
	"search":        {"find", "replace", "replace_all"},
	"track_changes": {"status", "enable", "disable", "list", "accept", "reject", "accept_all", "reject_all", "preview"},
	"comments":      {"list", "add"},
	"save":          {"save", "export"},
	"text":          {"insert", "format"},
}

// Tools lists the tools in the order they are advertised.
func Tools() []string {
	return slices.Clone(toolOrder)
}

// ValidActions lists a tool's actions in advertised order, or nil for an
// unknown tool.
func ValidActions(tool string) []string {
	return slices.Clone(actionOrder[tool])
}

// Dispatch routes one invocation and returns its envelope.
func (r *Router) Dispatch(tool, action string, p Params) Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	fields, err := r.invoke(tool, action, p)

	if r.auditEnabled() {
		b := log.Event(r.source+":"+tool, action).Author(r.authorFor(p))
		if doc, derr := r.desk.Current(); derr == nil {
			b.Document(doc.Title())
		}
		if n, ok := asInt(p["n"]); ok {
			b.Position(n)
		}
		if pos, ok := fields["position"].(int); ok {
			b.ResultPosition(pos)
		}
		b.Write(err)
	}

	if err != nil {
		return errResult(err)
	}
	res := Result{"success": true}
	maps.Copy(res, fields)
	return res
}

// invoke looks up and runs the handler. A panicking handler is reported
// as an internal error rather than taking the server down.
func (r *Router) invoke(tool, action string, p Params) (fields Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error in %s.%s: %v", tool, action, rec)
		}
	}()

	actions, ok := table[tool]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, tool)
	}
	h, ok := actions[action]
	if !ok {
		return nil, &InvalidActionError{Tool: tool, Action: action}
	}
	return h(r, p)
}

// errResult converts an error into the failure envelope, attaching
// machine-readable hints for the routing error classes.
func errResult(err error) Result {
	res := Result{"success": false, "error": err.Error()}

	var ia *InvalidActionError
	if errors.As(err, &ia) {
		res["valid_actions"] = ValidActions(ia.Tool)
	}
	var mp *MissingParameterError
	if errors.As(err, &mp) {
		res["parameter"] = mp.Name
	}
	if errors.Is(err, ErrUnknownTool) {
		res["valid_tools"] = Tools()
	}
	return res
}

func (r *Router) auditEnabled() bool {
	return r.cfg == nil || r.cfg.AuditEnabled()
}

// authorFor resolves the author for an invocation: explicit parameter,
// then the router override, then configuration.
func (r *Router) authorFor(p Params) string {
	if a := p.StringDefault("author", ""); a != "" {
		return a
	}
	if r.author != "" {
		return r.author
	}
	if r.cfg != nil {
		return r.cfg.AuthorName()
	}
	return config.DefaultAuthorName
}

// contextChars returns the default cursor context window.
func (r *Router) contextChars() int {
	if r.cfg != nil {
		return r.cfg.ContextChars()
	}
	return config.DefaultContextChars
}

// maxMatches returns the search result cap.
func (r *Router) maxMatches() int {
	if r.cfg != nil {
		return r.cfg.MaxMatches()
	}
	return config.DefaultMaxMatches
}

// current returns the active document.
func (r *Router) current() (*editor.Document, error) {
	return r.desk.Current()
}

// requireWriter guards actions that only make sense on writer documents.
func requireWriter(doc *editor.Document, op string) error {
	if doc.Type() != editor.Writer {
		return fmt.Errorf("%s not supported for %s documents: %w", op, doc.Type(), editor.ErrUnsupportedDocType)
	}
	return nil
}
