package action

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/writerd/internal/config"
	"github.com/jpl-au/writerd/internal/editor"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	var cfg config.Config
	audit := false
	cfg.Log.Audit = &audit
	return New(editor.NewDesktop(), &cfg)
}

// ok dispatches and requires a success envelope.
func ok(t *testing.T, r *Router, tool, action string, p Params) Result {
	t.Helper()
	res := r.Dispatch(tool, action, p)
	require.Equal(t, true, res["success"], "dispatch %s.%s failed: %v", tool, action, res["error"])
	return res
}

// fail dispatches and requires a failure envelope with a non-empty error.
func fail(t *testing.T, r *Router, tool, action string, p Params) Result {
	t.Helper()
	res := r.Dispatch(tool, action, p)
	require.Equal(t, false, res["success"], "dispatch %s.%s unexpectedly succeeded", tool, action)
	require.NotEmpty(t, res["error"])
	return res
}

func newWriterDoc(t *testing.T, r *Router, content string) {
	t.Helper()
	ok(t, r, "document", "create", Params{"doc_type": "writer"})
	if content != "" {
		ok(t, r, "text", "insert", Params{"content": content})
	}
}

func TestDispatch_UnknownTool(t *testing.T) {
	r := newTestRouter(t)

	res := fail(t, r, "spreadsheet", "create", nil)
	assert.Contains(t, res["error"], "unknown tool")
	assert.Equal(t, Tools(), res["valid_tools"])
}

func TestDispatch_InvalidAction(t *testing.T) {
	r := newTestRouter(t)

	res := fail(t, r, "document", "destroy", nil)
	assert.Contains(t, res["error"], "invalid action")
	assert.Equal(t, []string{"create", "info", "list", "content", "status"}, res["valid_actions"])
}

func TestValidActions_MatchesDispatchTable(t *testing.T) {
	assert.Len(t, table, len(toolOrder))
	for _, tool := range Tools() {
		handlers, found := table[tool]
		require.True(t, found, "tool %s missing from table", tool)

		var registered []string
		for action := range handlers {
			registered = append(registered, action)
		}
		assert.ElementsMatch(t, ValidActions(tool), registered, "tool %s", tool)
	}
}

func TestValidActions_WireContract(t *testing.T) {
	tests := []struct {
		tool    string
		actions []string
	}{
		{"document", []string{"create", "info", "list", "content", "status"}},
		{"structure", []string{"outline", "paragraph", "range", "count"}},
		{"cursor", []string{"goto_paragraph", "goto_position", "position", "context"}},
		{"selection", []string{"paragraph", "range", "delete", "replace"}},
		{"search", []string{"find", "replace", "replace_all"}},
		{"track_changes", []string{"status", "enable", "disable", "list", "accept", "reject", "accept_all", "reject_all", "preview"}},
		{"comments", []string{"list", "add"}},
		{"save", []string{"save", "export"}},
		{"text", []string{"insert", "format"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.actions, ValidActions(tt.tool), "tool %s", tt.tool)
	}
}

func TestDispatch_MissingParameter(t *testing.T) {
	r := newTestRouter(t)
	newWriterDoc(t, r, "some text")

	tests := []struct {
		tool, action, param string
	}{
		{"structure", "paragraph", "n"},
		{"structure", "range", "start"},
		{"cursor", "goto_paragraph", "n"},
		{"cursor", "goto_position", "char_pos"},
		{"selection", "paragraph", "n"},
		{"selection", "replace", "text"},
		{"search", "find", "query"},
		{"search", "replace", "old"},
		{"search", "replace_all", "old"},
		{"track_changes", "accept", "index"},
		{"comments", "add", "text"},
		{"save", "export", "file_path"},
		{"text", "insert", "content"},
	}
	for _, tt := range tests {
		res := fail(t, r, tt.tool, tt.action, Params{})
		assert.Equal(t, tt.param, res["parameter"], "%s.%s", tt.tool, tt.action)
		assert.Contains(t, res["error"], tt.param)
	}
}

func TestDispatch_NoDocument(t *testing.T) {
	r := newTestRouter(t)

	for _, call := range [][2]string{
		{"document", "info"},
		{"structure", "count"},
		{"cursor", "position"},
		{"comments", "list"},
		{"track_changes", "status"},
	} {
		res := fail(t, r, call[0], call[1], nil)
		assert.Contains(t, res["error"], "no document available", "%s.%s", call[0], call[1])
	}
}

func TestDocumentStatus_WorksWithoutDocument(t *testing.T) {
	r := newTestRouter(t)

	res := ok(t, r, "document", "status", nil)
	assert.Equal(t, false, res["document_open"])
	assert.Equal(t, 0, res["document_count"])
	assert.NotEmpty(t, res["server_version"])
}

func TestCreateThenCount(t *testing.T) {
	r := newTestRouter(t)

	res := ok(t, r, "document", "create", Params{"doc_type": "writer"})
	assert.Equal(t, "writer", res["doc_type"])

	res = ok(t, r, "structure", "count", nil)
	assert.Equal(t, 1, res["count"], "a new document has exactly one empty paragraph")
}

func TestDocumentCreate_InvalidType(t *testing.T) {
	r := newTestRouter(t)

	res := fail(t, r, "document", "create", Params{"doc_type": "presentation"})
	assert.Contains(t, res["error"], "doc_type")
}

func TestNonWriterDocument_RejectsTextOperations(t *testing.T) {
	r := newTestRouter(t)
	ok(t, r, "document", "create", Params{"doc_type": "calc"})

	for _, call := range [][2]string{
		{"text", "insert"},
		{"structure", "count"},
		{"search", "find"},
		{"search", "replace"},
		{"search", "replace_all"},
		{"track_changes", "status"},
	} {
		p := Params{"content": "x", "query": "x", "old": "x", "new": "y"}
		res := fail(t, r, call[0], call[1], p)
		assert.Contains(t, res["error"], "not supported for calc documents", "%s.%s", call[0], call[1])
	}
}

func TestParagraphBounds(t *testing.T) {
	r := newTestRouter(t)
	newWriterDoc(t, r, "first\nsecond\nthird")

	res := ok(t, r, "structure", "count", nil)
	require.Equal(t, 3, res["count"])

	res = ok(t, r, "structure", "paragraph", Params{"n": 1})
	assert.Equal(t, "first", res["content"])

	res = ok(t, r, "structure", "paragraph", Params{"n": 3})
	assert.Equal(t, "third", res["content"])

	for _, n := range []int{0, 4, -1} {
		res = fail(t, r, "structure", "paragraph", Params{"n": n})
		assert.Contains(t, res["error"], "out of range")
		assert.Contains(t, res["error"], "valid range: 1-3")
	}
}

func TestStructureRange(t *testing.T) {
	r := newTestRouter(t)
	newWriterDoc(t, r, "a\nb\nc\nd")

	res := ok(t, r, "structure", "range", Params{"start": 2, "end": 3})
	paras := res["paragraphs"].([]editor.ParagraphContent)
	require.Len(t, paras, 2)
	assert.Equal(t, "b", paras[0].Content)
	assert.Equal(t, "c", paras[1].Content)

	// end clamps to the document
	res = ok(t, r, "structure", "range", Params{"start": 3, "end": 99})
	assert.Equal(t, 2, res["count"])

	fail(t, r, "structure", "range", Params{"start": 3, "end": 2})
	fail(t, r, "structure", "range", Params{"start": 9, "end": 10})
}

func TestSelectionRoundTrip(t *testing.T) {
	r := newTestRouter(t)
	newWriterDoc(t, r, "abcdefghijklmnopqrstuvwxyz")

	res := ok(t, r, "selection", "range", Params{"start": 10, "end": 20})
	assert.Equal(t, "klmnopqrst", res["text"])

	ok(t, r, "selection", "replace", Params{"text": "XYZ"})

	res = ok(t, r, "cursor", "position", nil)
	assert.Equal(t, 13, res["position"], "cursor collapses to the end of the replacement")

	res = ok(t, r, "document", "content", nil)
	content := res["content"].(string)
	assert.Equal(t, "abcdefghijXYZuvwxyz", content)
	assert.Equal(t, "XYZ", content[10:13], "replacement occupies the interval beginning at offset 10")
}

func TestSelectionDelete_RequiresSelection(t *testing.T) {
	r := newTestRouter(t)
	newWriterDoc(t, r, "hello")

	res := fail(t, r, "selection", "delete", nil)
	assert.Contains(t, res["error"], "no text selected")

	res = fail(t, r, "selection", "replace", Params{"text": "x"})
	assert.Contains(t, res["error"], "no text selected")
}

func TestGotoPosition_Clamps(t *testing.T) {
	r := newTestRouter(t)
	newWriterDoc(t, r, "short")

	res := ok(t, r, "cursor", "goto_position", Params{"char_pos": 9999})
	assert.Equal(t, 9999, res["requested"])
	assert.Equal(t, 5, res["position"])

	fail(t, r, "cursor", "goto_position", Params{"char_pos": -1})
}

func TestCursorContext(t *testing.T) {
	r := newTestRouter(t)
	newWriterDoc(t, r, "abcdefghij")
	ok(t, r, "cursor", "goto_position", Params{"char_pos": 5})

	res := ok(t, r, "cursor", "context", Params{"chars": 3})
	assert.Equal(t, "cde", res["before"])
	assert.Equal(t, "fgh", res["after"])
	assert.Equal(t, 5, res["position"])

	// a negative window is a validation error, not an internal one
	res = fail(t, r, "cursor", "context", Params{"chars": -5})
	assert.Contains(t, res["error"], "context size must be >= 0")
	assert.NotContains(t, res["error"], "internal error")
}

func TestFind_ExcludesTrackedDeletions(t *testing.T) {
	r := newTestRouter(t)
	newWriterDoc(t, r, "this foo bar")
	ok(t, r, "track_changes", "enable", nil)

	// mark "foo" as a tracked deletion
	ok(t, r, "selection", "range", Params{"start": 5, "end": 8})
	ok(t, r, "selection", "delete", nil)

	res := ok(t, r, "search", "find", Params{"query": "foo"})
	assert.Equal(t, 0, res["count"], "tracked-deleted text must not match")
	assert.Equal(t, true, res["track_changes_active"])

	// the raw text still holds the deleted span, the visible text does not
	content := ok(t, r, "document", "content", nil)["content"].(string)
	assert.NotContains(t, content, "foo")
}

func TestFind_PlainWhenTrackingDisabled(t *testing.T) {
	r := newTestRouter(t)
	newWriterDoc(t, r, "this foo bar")

	res := ok(t, r, "search", "find", Params{"query": "foo"})
	require.Equal(t, 1, res["count"])
	assert.Equal(t, false, res["track_changes_active"])
}

func TestReplaceAll_CountsVisibleOccurrences(t *testing.T) {
	r := newTestRouter(t)
	newWriterDoc(t, r, "foo a foo b foo")
	ok(t, r, "track_changes", "enable", nil)

	// delete the middle "foo" as a tracked change: 2 visible remain
	ok(t, r, "selection", "range", Params{"start": 6, "end": 9})
	ok(t, r, "selection", "delete", nil)

	res := ok(t, r, "search", "replace_all", Params{"old": "foo", "new": "bar"})
	assert.Equal(t, 2, res["count"], "count equals prior visible occurrences")

	res = ok(t, r, "search", "find", Params{"query": "foo"})
	assert.Equal(t, 0, res["count"], "no visible occurrences remain")
}

func TestReplace_FirstVisibleOnly(t *testing.T) {
	r := newTestRouter(t)
	newWriterDoc(t, r, "one two one")

	res := ok(t, r, "search", "replace", Params{"old": "one", "new": "1"})
	assert.Equal(t, true, res["replaced"])
	assert.Equal(t, 0, res["position"])

	content := ok(t, r, "document", "content", nil)["content"].(string)
	assert.Equal(t, "1 two one", content)

	res = ok(t, r, "search", "replace", Params{"old": "absent", "new": "x"})
	assert.Equal(t, false, res["replaced"], "no match is not an error")
}

func TestAcceptAll_Idempotent(t *testing.T) {
	r := newTestRouter(t)
	newWriterDoc(t, r, "keep this text here")
	ok(t, r, "track_changes", "enable", nil)

	ok(t, r, "text", "insert", Params{"content": " added"})
	ok(t, r, "selection", "range", Params{"start": 0, "end": 4})
	ok(t, r, "selection", "delete", nil)

	res := ok(t, r, "track_changes", "accept_all", nil)
	first := res["count"].(int)
	assert.Positive(t, first)

	res = ok(t, r, "track_changes", "list", nil)
	assert.Equal(t, 0, res["count"], "list is empty after accept_all")

	res = ok(t, r, "track_changes", "accept_all", nil)
	assert.Equal(t, 0, res["count"], "second accept_all reports zero")
}

func TestTrackStatus_Booleans(t *testing.T) {
	r := newTestRouter(t)
	newWriterDoc(t, r, "")

	res := ok(t, r, "track_changes", "status", nil)
	assert.Equal(t, false, res["recording"])
	assert.Equal(t, true, res["showing"])
	assert.Equal(t, 0, res["pending_count"])

	ok(t, r, "track_changes", "enable", Params{"show": false})
	res = ok(t, r, "track_changes", "status", nil)
	assert.Equal(t, true, res["recording"])
	assert.Equal(t, false, res["showing"])

	ok(t, r, "track_changes", "disable", nil)
	res = ok(t, r, "track_changes", "status", nil)
	assert.Equal(t, false, res["recording"])
}

func TestTrackList_ReportsRevisions(t *testing.T) {
	r := newTestRouter(t)
	newWriterDoc(t, r, "base")
	ok(t, r, "track_changes", "enable", nil)
	ok(t, r, "text", "insert", Params{"content": " more", "author": "Reviewer"})

	res := ok(t, r, "track_changes", "list", nil)
	changes := res["changes"].([]editor.RevisionInfo)
	require.Len(t, changes, 1)
	assert.Equal(t, "insertion", changes[0].Kind)
	assert.Equal(t, " more", changes[0].Text)
	assert.Equal(t, "Reviewer", changes[0].Author)
	assert.Equal(t, 0, changes[0].Index)

	res = fail(t, r, "track_changes", "accept", Params{"index": 5})
	assert.Contains(t, res["error"], "out of range")
}

func TestTrackPreview(t *testing.T) {
	r := newTestRouter(t)
	newWriterDoc(t, r, "alpha beta gamma")

	res := ok(t, r, "track_changes", "preview", nil)
	assert.Equal(t, false, res["changed"], "no pending changes, empty diff")

	ok(t, r, "track_changes", "enable", nil)
	ok(t, r, "selection", "range", Params{"start": 6, "end": 11})
	ok(t, r, "selection", "delete", nil)

	res = ok(t, r, "track_changes", "preview", nil)
	assert.Equal(t, true, res["changed"])
	assert.Contains(t, res["diff"], "beta")
	assert.Equal(t, 1, res["pending_count"])
}

func TestComments(t *testing.T) {
	r := newTestRouter(t)
	newWriterDoc(t, r, "paragraph under review")

	res := ok(t, r, "comments", "list", nil)
	assert.Equal(t, 0, res["count"])

	ok(t, r, "comments", "add", Params{"text": "needs a citation", "author": "Reviewer"})

	res = ok(t, r, "comments", "list", nil)
	require.Equal(t, 1, res["count"])
	comments := res["comments"].([]editor.Comment)
	assert.Equal(t, "Reviewer", comments[0].Author)
	assert.Equal(t, "needs a citation", comments[0].Text)
	assert.Equal(t, "paragraph under review", comments[0].AnchorText)
}

func TestSave_RequiresLocation(t *testing.T) {
	r := newTestRouter(t)
	newWriterDoc(t, r, "unsaved")

	res := fail(t, r, "save", "save", nil)
	assert.Contains(t, res["error"], "no location")
}

func TestEnvelopeInvariant(t *testing.T) {
	r := newTestRouter(t)
	newWriterDoc(t, r, "text")

	success := ok(t, r, "structure", "count", nil)
	_, hasError := success["error"]
	assert.False(t, hasError, "success envelope carries no error")

	failure := fail(t, r, "structure", "paragraph", Params{"n": 99})
	assert.NotEmpty(t, failure["error"])
}

func TestTextInsert_AtPosition(t *testing.T) {
	r := newTestRouter(t)
	newWriterDoc(t, r, "helloworld")

	res := ok(t, r, "text", "insert", Params{"content": " ", "position": 5})
	assert.Equal(t, 6, res["position"])

	content := ok(t, r, "document", "content", nil)["content"].(string)
	assert.Equal(t, "hello world", content)
}

func TestTextFormat(t *testing.T) {
	r := newTestRouter(t)
	newWriterDoc(t, r, "make this bold")

	res := fail(t, r, "text", "format", Params{"bold": true})
	assert.Contains(t, res["error"], "no text selected")

	ok(t, r, "selection", "range", Params{"start": 10, "end": 14})
	res = ok(t, r, "text", "format", Params{"bold": true, "font_size": 14.0})
	applied := res["applied"].([]string)
	assert.ElementsMatch(t, []string{"bold", "font_size"}, applied)
}

func TestJSONNumbersAccepted(t *testing.T) {
	// Params decoded from JSON carry float64 numbers.
	r := newTestRouter(t)
	newWriterDoc(t, r, "a\nb\nc")

	res := ok(t, r, "structure", "paragraph", Params{"n": float64(2)})
	assert.Equal(t, "b", res["content"])
}

func TestDispatch_ErrorMessagesNameValidRanges(t *testing.T) {
	r := newTestRouter(t)
	newWriterDoc(t, r, strings.Repeat("p\n", 4)+"p")

	res := fail(t, r, "structure", "paragraph", Params{"n": 12})
	assert.Contains(t, res["error"], "valid range: 1-5")
}
