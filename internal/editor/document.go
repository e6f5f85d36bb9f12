// document.go implements the writer document model: plain-text paragraphs,
// the view cursor, the selection, and the structure/navigation operations.
//
// The raw text projection is a single string with paragraphs joined by
// "\n"; styles is kept parallel with one entry per paragraph. Character
// offsets are 0-based into the raw projection, paragraph numbers 1-based.
// While revision recording is enabled the raw projection also contains
// text covered by pending tracked deletions; the visible projection (see
// internal/redline) excludes it.

package editor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jpl-au/writerd/internal/redline"
)

const defaultStyle = "Default"

// outlineTextLimit caps heading text in outline entries, matching the
// original tool contract.
const outlineTextLimit = 200

// Document is a single open document. Only writer documents carry text;
// calc/impress/draw documents reject text operations with
// ErrUnsupportedDocType.
type Document struct {
	id       int
	title    string
	typ      DocType
	location string
	modified bool

	text   string   // raw projection, paragraphs joined by "\n"
	styles []string // paragraph styles, parallel to paragraphs

	cursor int
	hasSel bool
	sel    redline.Span

	recording bool
	showing   bool
	revisions []*Revision

	comments []Comment
	runs     []formatRun
}

// Info describes a document for the document.info and document.list
// operations. Field names follow the wire contract.
type Info struct {
	Title        string       `json:"title"`
	URL          string       `json:"url"`
	Modified     bool         `json:"modified"`
	Type         string       `json:"type"`
	HasSelection bool         `json:"has_selection"`
	WordCount    int          `json:"word_count"`
	CharCount    int          `json:"character_count"`
	TrackChanges *TrackStatus `json:"track_changes,omitempty"`
}

// TrackStatus reports the two revision-tracking booleans and the number of
// pending revisions.
type TrackStatus struct {
	Recording    bool `json:"recording"`
	Showing      bool `json:"showing"`
	PendingCount int  `json:"pending_count"`
}

// ParagraphContent is the result of structure.paragraph and
// structure.range. VisibleContent is populated only when revision
// recording is enabled.
type ParagraphContent struct {
	Number         int    `json:"number"`
	Content        string `json:"content"`
	VisibleContent string `json:"visible_content,omitempty"`
}

// OutlineEntry is one heading in the document outline.
type OutlineEntry struct {
	Paragraph int    `json:"paragraph"`
	Level     int    `json:"level"`
	Text      string `json:"text"`
}

// ParagraphInfo exposes a paragraph's text and style for export.
type ParagraphInfo struct {
	Text  string
	Style string
}

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// Type returns the document type.
func (d *Document) Type() DocType { return d.typ }

// Location returns the file path the document was loaded from or last
// saved to, or "" if it has never been saved.
func (d *Document) Location() string { return d.location }

// Modified reports whether the document has unsaved changes.
func (d *Document) Modified() bool { return d.modified }

// Text returns the raw plain-text projection, including any text covered
// by pending tracked deletions.
func (d *Document) Text() string {
	return d.text
}

// VisibleText returns the plain-text projection with pending tracked
// deletions excised. This is the document's logical current content, and
// equals what the text would become if every pending change were accepted.
func (d *Document) VisibleText() string {
	return redline.Project(d.text, d.deletionSpansAll()).Visible
}

// Info returns document metadata. Writer documents include word/character
// counts and revision-tracking status.
func (d *Document) Info() Info {
	info := Info{
		Title:        d.title,
		URL:          d.location,
		Modified:     d.modified,
		Type:         string(d.typ),
		HasSelection: d.hasSel,
	}
	if d.typ == Writer {
		info.WordCount = len(strings.Fields(d.text))
		info.CharCount = len(d.text)
		st := d.TrackStatus()
		info.TrackChanges = &st
	}
	return info
}

// requireWriter guards text operations against non-writer documents.
func (d *Document) requireWriter(op string) error {
	if d.typ != Writer {
		return fmt.Errorf("%s not supported for %s documents: %w", op, d.typ, ErrUnsupportedDocType)
	}
	return nil
}

// paragraphs returns the paragraph texts. An empty document has one empty
// paragraph.
func (d *Document) paragraphs() []string {
	return strings.Split(d.text, "\n")
}

// ParagraphCount returns the number of paragraphs.
func (d *Document) ParagraphCount() int {
	return strings.Count(d.text, "\n") + 1
}

// paragraphBounds returns the raw [start, end) span of 0-based paragraph
// i, excluding the trailing paragraph break.
func (d *Document) paragraphBounds(i int) redline.Span {
	start := 0
	for n := 0; n < i; n++ {
		start = strings.IndexByte(d.text[start:], '\n') + start + 1
	}
	end := strings.IndexByte(d.text[start:], '\n')
	if end < 0 {
		end = len(d.text)
	} else {
		end += start
	}
	return redline.Span{Start: start, End: end}
}

// paragraphAt returns the 0-based paragraph index containing raw offset pos.
func (d *Document) paragraphAt(pos int) int {
	return strings.Count(d.text[:pos], "\n")
}

// checkParagraph validates a 1-based paragraph number.
func (d *Document) checkParagraph(n int) error {
	if count := d.ParagraphCount(); n < 1 || n > count {
		return fmt.Errorf("paragraph %d out of range, valid range: 1-%d: %w", n, count, ErrParagraphOutOfRange)
	}
	return nil
}

// Paragraph returns the content of paragraph n (1-based). When revision
// recording is enabled the result also carries the visible content with
// tracked deletions excised.
func (d *Document) Paragraph(n int) (ParagraphContent, error) {
	if err := d.requireWriter("paragraph access"); err != nil {
		return ParagraphContent{}, err
	}
	if err := d.checkParagraph(n); err != nil {
		return ParagraphContent{}, err
	}

	b := d.paragraphBounds(n - 1)
	pc := ParagraphContent{Number: n, Content: d.text[b.Start:b.End]}
	if d.recording {
		proj := redline.Project(pc.Content, d.DeletionSpans(n))
		pc.VisibleContent = proj.Visible
	}
	return pc, nil
}

// ParagraphRange returns paragraphs start..end inclusive (1-based). The
// range must be well formed and overlap the document.
func (d *Document) ParagraphRange(start, end int) ([]ParagraphContent, error) {
	if err := d.requireWriter("paragraph access"); err != nil {
		return nil, err
	}
	if start < 1 {
		return nil, fmt.Errorf("start paragraph must be >= 1: %w", ErrParagraphOutOfRange)
	}
	if end < start {
		return nil, fmt.Errorf("end paragraph must be >= start paragraph: %w", ErrInvalidRange)
	}

	count := d.ParagraphCount()
	if start > count {
		return nil, fmt.Errorf("range %d-%d out of bounds, document has %d paragraphs: %w", start, end, count, ErrParagraphOutOfRange)
	}
	if end > count {
		end = count
	}

	paras := d.paragraphs()
	result := make([]ParagraphContent, 0, end-start+1)
	for n := start; n <= end; n++ {
		result = append(result, ParagraphContent{Number: n, Content: paras[n-1]})
	}
	return result, nil
}

// Outline returns the document's headings with paragraph numbers and
// levels. A paragraph is a heading when its style is "Heading N".
func (d *Document) Outline() ([]OutlineEntry, error) {
	if err := d.requireWriter("document outline"); err != nil {
		return nil, err
	}

	var outline []OutlineEntry
	paras := d.paragraphs()
	for i, style := range d.styles {
		level, ok := headingLevel(style)
		if !ok {
			continue
		}
		text := paras[i]
		if len(text) > outlineTextLimit {
			text = text[:outlineTextLimit]
		}
		outline = append(outline, OutlineEntry{Paragraph: i + 1, Level: level, Text: text})
	}
	return outline, nil
}

// headingLevel parses a "Heading N" style name. A bare "Heading" style is
// level 1.
func headingLevel(style string) (int, bool) {
	if !strings.HasPrefix(style, "Heading") {
		return 0, false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(style, "Heading"))
	if rest == "" {
		return 1, true
	}
	level := 0
	for _, c := range rest {
		if c < '0' || c > '9' {
			return 1, true
		}
		level = level*10 + int(c-'0')
	}
	if level < 1 {
		level = 1
	}
	return level, true
}

// SetParagraphStyle sets the style of paragraph n (1-based). Styles are a
// session primitive: the tool surface reads them (structure.outline) but
// assigning them is left to the host.
func (d *Document) SetParagraphStyle(n int, style string) error {
	if err := d.requireWriter("paragraph style"); err != nil {
		return err
	}
	if err := d.checkParagraph(n); err != nil {
		return err
	}
	d.styles[n-1] = style
	return nil
}

// Paragraphs returns text and style for every paragraph, for export.
func (d *Document) Paragraphs() []ParagraphInfo {
	paras := d.paragraphs()
	result := make([]ParagraphInfo, len(paras))
	for i, p := range paras {
		result[i] = ParagraphInfo{Text: p, Style: d.styles[i]}
	}
	return result
}

// ---- Cursor navigation ----

// GotoParagraph moves the view cursor to the start of paragraph n and
// collapses any selection.
func (d *Document) GotoParagraph(n int) error {
	if err := d.requireWriter("cursor navigation"); err != nil {
		return err
	}
	if err := d.checkParagraph(n); err != nil {
		return err
	}
	d.cursor = d.paragraphBounds(n - 1).Start
	d.hasSel = false
	return nil
}

// GotoPosition moves the view cursor to a character position, clamped to
// the document end, and returns the position actually reached.
func (d *Document) GotoPosition(pos int) (int, error) {
	if err := d.requireWriter("cursor navigation"); err != nil {
		return 0, err
	}
	if pos < 0 {
		return 0, fmt.Errorf("character position must be >= 0: %w", ErrInvalidRange)
	}
	if pos > len(d.text) {
		pos = len(d.text)
	}
	d.cursor = pos
	d.hasSel = false
	return pos, nil
}

// CursorPosition returns the cursor's character position and the 1-based
// paragraph containing it.
func (d *Document) CursorPosition() (pos, paragraph int, err error) {
	if err := d.requireWriter("cursor position"); err != nil {
		return 0, 0, err
	}
	return d.cursor, d.paragraphAt(d.cursor) + 1, nil
}

// Context returns up to chars characters before and after the cursor,
// along with the cursor position.
func (d *Document) Context(chars int) (before, after string, pos int, err error) {
	if err := d.requireWriter("cursor context"); err != nil {
		return "", "", 0, err
	}
	if chars < 0 {
		return "", "", 0, fmt.Errorf("context size must be >= 0: %w", ErrInvalidRange)
	}
	before = d.text[:d.cursor]
	if len(before) > chars {
		before = before[len(before)-chars:]
	}
	after = d.text[d.cursor:]
	if len(after) > chars {
		after = after[:chars]
	}
	return before, after, d.cursor, nil
}

// ---- Selection ----

// SelectParagraph selects the whole of paragraph n and returns its text.
func (d *Document) SelectParagraph(n int) (string, error) {
	if err := d.requireWriter("paragraph selection"); err != nil {
		return "", err
	}
	if err := d.checkParagraph(n); err != nil {
		return "", err
	}
	b := d.paragraphBounds(n - 1)
	d.sel = b
	d.hasSel = true
	d.cursor = b.End
	return d.text[b.Start:b.End], nil
}

// SelectRange selects the raw character range [start, end), clamped to the
// document end, and returns the selected text.
func (d *Document) SelectRange(start, end int) (string, error) {
	if err := d.requireWriter("text range selection"); err != nil {
		return "", err
	}
	if start < 0 {
		return "", fmt.Errorf("start position must be >= 0: %w", ErrInvalidRange)
	}
	if end < start {
		return "", fmt.Errorf("end position must be >= start position: %w", ErrInvalidRange)
	}
	if start > len(d.text) {
		start = len(d.text)
	}
	if end > len(d.text) {
		end = len(d.text)
	}
	d.sel = redline.Span{Start: start, End: end}
	d.hasSel = true
	d.cursor = end
	return d.text[start:end], nil
}

// Selection returns the current selection span and text. ok is false when
// nothing is selected.
func (d *Document) Selection() (span redline.Span, text string, ok bool) {
	if !d.hasSel {
		return redline.Span{}, "", false
	}
	return d.sel, d.text[d.sel.Start:d.sel.End], true
}

// DeleteSelection removes the selected text and returns it. While
// recording, the text stays in the raw projection and a deletion revision
// is added instead.
func (d *Document) DeleteSelection(author string) (string, error) {
	if err := d.requireWriter("delete selection"); err != nil {
		return "", err
	}
	if !d.hasSel {
		return "", ErrNoSelection
	}

	sel := d.sel
	deleted := d.text[sel.Start:sel.End]
	d.hasSel = false

	if d.recording {
		d.addDeletion(sel, author)
		d.cursor = sel.Start
		d.modified = true
		return deleted, nil
	}

	d.removeRaw(sel.Start, sel.End)
	d.cursor = sel.Start
	return deleted, nil
}

// ReplaceSelection replaces the selected text and returns the old text.
// While recording, the old text is marked as a pending deletion and the
// new text is inserted after it as a pending insertion.
func (d *Document) ReplaceSelection(text, author string) (string, error) {
	if err := d.requireWriter("replace selection"); err != nil {
		return "", err
	}
	if !d.hasSel {
		return "", ErrNoSelection
	}

	sel := d.sel
	old := d.text[sel.Start:sel.End]
	d.hasSel = false

	if d.recording {
		d.addDeletion(sel, author)
		d.insertRaw(sel.End, text)
		d.addInsertion(redline.Span{Start: sel.End, End: sel.End + len(text)}, author)
		d.cursor = sel.End + len(text)
	} else {
		d.removeRaw(sel.Start, sel.End)
		d.insertRaw(sel.Start, text)
		d.cursor = sel.Start + len(text)
	}
	d.modified = true
	return old, nil
}

// InsertText inserts text at the given position, or at the cursor when
// pos is nil. The cursor moves to the end of the inserted text.
func (d *Document) InsertText(text string, pos *int, author string) error {
	if err := d.requireWriter("text insertion"); err != nil {
		return err
	}

	at := d.cursor
	if pos != nil {
		at = *pos
		if at < 0 {
			return fmt.Errorf("position must be >= 0: %w", ErrInvalidRange)
		}
		if at > len(d.text) {
			at = len(d.text)
		}
	}

	d.insertRaw(at, text)
	if d.recording && text != "" {
		d.addInsertion(redline.Span{Start: at, End: at + len(text)}, author)
	}
	d.cursor = at + len(text)
	return nil
}

// ---- Save ----

// Save writes the plain-text projection. With a path, the document is
// saved there and the path becomes its location. Without one, the document
// is saved to its current location; a document that has never been saved
// fails with ErrNoLocation.
func (d *Document) Save(path string) error {
	if err := d.requireWriter("save"); err != nil {
		return err
	}
	if path == "" {
		if d.location == "" {
			return ErrNoLocation
		}
		path = d.location
	}
	if err := writeFile(path, []byte(d.text+"\n")); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	d.location = path
	d.modified = false
	return nil
}

// ---- Raw mutation primitives ----
//
// All structural edits funnel through insertRaw/removeRaw so that the
// cursor, selection, revisions, comments and formatting runs stay
// consistent with the text.

func (d *Document) insertRaw(pos int, s string) {
	if s == "" {
		return
	}
	if k := strings.Count(s, "\n"); k > 0 {
		pi := d.paragraphAt(pos)
		ins := make([]string, k)
		for i := range ins {
			ins[i] = d.styles[pi]
		}
		d.styles = slices.Insert(d.styles, pi+1, ins...)
	}
	d.text = d.text[:pos] + s + d.text[pos:]

	l := len(s)
	d.cursor = shiftPointInsert(d.cursor, pos, l)
	if d.hasSel {
		d.sel = shiftSpanInsert(d.sel, pos, l)
	}
	for _, r := range d.revisions {
		r.span = shiftSpanInsert(r.span, pos, l)
	}
	for i := range d.comments {
		d.comments[i].position = shiftPointInsert(d.comments[i].position, pos, l)
	}
	for i := range d.runs {
		d.runs[i].span = shiftSpanInsert(d.runs[i].span, pos, l)
	}
	d.modified = true
}

func (d *Document) removeRaw(start, end int) {
	if start >= end {
		return
	}
	if k := strings.Count(d.text[start:end], "\n"); k > 0 {
		pi := d.paragraphAt(start)
		d.styles = slices.Delete(d.styles, pi+1, pi+1+k)
	}
	d.text = d.text[:start] + d.text[end:]

	d.cursor = shiftPointRemove(d.cursor, start, end)
	if d.hasSel {
		d.sel = shiftSpanRemove(d.sel, start, end)
		if d.sel.Len() == 0 {
			d.hasSel = false
		}
	}
	kept := d.revisions[:0]
	for _, r := range d.revisions {
		r.span = shiftSpanRemove(r.span, start, end)
		if r.span.Len() > 0 {
			kept = append(kept, r)
		}
	}
	d.revisions = kept
	for i := range d.comments {
		d.comments[i].position = shiftPointRemove(d.comments[i].position, start, end)
	}
	keptRuns := d.runs[:0]
	for _, run := range d.runs {
		run.span = shiftSpanRemove(run.span, start, end)
		if run.span.Len() > 0 {
			keptRuns = append(keptRuns, run)
		}
	}
	d.runs = keptRuns
	d.modified = true
}

// shiftPointInsert adjusts a point offset for an insertion of l bytes at pos.
func shiftPointInsert(p, pos, l int) int {
	if p >= pos {
		return p + l
	}
	return p
}

// shiftSpanInsert adjusts a span for an insertion of l bytes at pos. An
// insertion at a span's end does not extend it; one strictly inside does.
func shiftSpanInsert(s redline.Span, pos, l int) redline.Span {
	if s.Start >= pos {
		s.Start += l
		s.End += l
	} else if s.End > pos {
		s.End += l
	}
	return s
}

// shiftPointRemove adjusts a point offset for removal of [start, end).
func shiftPointRemove(p, start, end int) int {
	if p >= end {
		return p - (end - start)
	}
	if p > start {
		return start
	}
	return p
}

// shiftSpanRemove adjusts a span for removal of [start, end), clamping the
// overlap. The resulting span may be empty; callers drop those.
func shiftSpanRemove(s redline.Span, start, end int) redline.Span {
	s.Start = shiftPointRemove(s.Start, start, end)
	s.End = shiftPointRemove(s.End, start, end)
	return s
}
