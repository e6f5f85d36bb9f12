// Package search implements track-changes-aware text search and replace.
//
// Matching runs over the visible projection of each paragraph (raw text
// with pending tracked deletions excised, see internal/redline), so a
// query never matches inside text that is no longer part of the
// document's logical content — and does match logical content that a
// pending deletion has split apart in the raw text. Match positions are
// reported in raw-document coordinates so callers can navigate a cursor
// to them.
//
// The package operates on a narrow Document interface rather than the
// concrete editor type, so the scan and replace logic can be tested
// against fixtures.
package search

import (
	"errors"
	"strings"

	"github.com/jpl-au/writerd/internal/redline"
)

// ErrEmptyQuery is returned when the search string is empty.
var ErrEmptyQuery = errors.New("search query must not be empty")

// Document is the slice of the editor surface that search needs.
type Document interface {
	// ParagraphCount returns the number of paragraphs.
	ParagraphCount() int
	// RawParagraph returns the raw text of paragraph n (1-based).
	RawParagraph(n int) string
	// ParagraphStart returns the raw document offset of paragraph n.
	ParagraphStart(n int) int
	// DeletionSpans returns pending-deletion spans for paragraph n in
	// paragraph-local coordinates; empty when tracking is inactive.
	DeletionSpans(n int) []redline.Span
	// TrackChangesActive reports whether pending deletions are honoured.
	TrackChangesActive() bool
	// ReplaceMatch replaces one visible match, given its raw segments in
	// ascending order, and returns the raw offset just past the
	// replacement text.
	ReplaceMatch(segments []redline.Span, text, author string) (int, error)
}

// Match is one visible occurrence of a query.
type Match struct {
	// Position is the raw-document offset of the match start.
	Position int `json:"position"`
	// Text is the matched text (equal to the query for plain search).
	Text string `json:"text"`
	// Paragraph is the 1-based paragraph containing the match start.
	Paragraph int `json:"paragraph"`
}

// ReplaceResult reports the outcome of a single replacement.
type ReplaceResult struct {
	Replaced bool `json:"replaced"`
	Position int  `json:"position,omitempty"`
}

// Find returns every visible occurrence of query, in document order.
// Queries do not match across paragraph breaks.
func Find(doc Document, query string) ([]Match, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}

	var matches []Match
	for n := 1; n <= doc.ParagraphCount(); n++ {
		proj := redline.Project(doc.RawParagraph(n), doc.DeletionSpans(n))
		base := doc.ParagraphStart(n)
		from := 0
		for {
			i := strings.Index(proj.Visible[from:], query)
			if i < 0 {
				break
			}
			vi := from + i
			matches = append(matches, Match{
				Position:  base + proj.Raw(vi),
				Text:      query,
				Paragraph: n,
			})
			from = vi + len(query)
		}
	}
	return matches, nil
}

// Replace replaces the first visible occurrence of old with new. A
// document with no visible occurrence reports Replaced=false without
// error, matching the tool contract.
func Replace(doc Document, old, new, author string) (ReplaceResult, error) {
	if old == "" {
		return ReplaceResult{}, ErrEmptyQuery
	}

	m, segs, ok := findFrom(doc, old, 0)
	if !ok {
		return ReplaceResult{}, nil
	}
	if _, err := doc.ReplaceMatch(segs, new, author); err != nil {
		return ReplaceResult{}, err
	}
	return ReplaceResult{Replaced: true, Position: m.Position}, nil
}

// ReplaceAll replaces every visible occurrence of old with new and
// returns the number of replacements performed, which equals the number
// of visible occurrences before the call. Scanning resumes after each
// replacement's inserted text, so a new value containing old does not
// loop.
func ReplaceAll(doc Document, old, new, author string) (int, error) {
	if old == "" {
		return 0, ErrEmptyQuery
	}

	count := 0
	resume := 0
	for {
		_, segs, ok := findFrom(doc, old, resume)
		if !ok {
			return count, nil
		}
		next, err := doc.ReplaceMatch(segs, new, author)
		if err != nil {
			return count, err
		}
		resume = next
		count++
	}
}

// findFrom locates the first visible match whose raw start offset is at
// least resume, returning the match and its raw segments.
func findFrom(doc Document, query string, resume int) (Match, []redline.Span, bool) {
	for n := 1; n <= doc.ParagraphCount(); n++ {
		base := doc.ParagraphStart(n)
		raw := doc.RawParagraph(n)
		if base+len(raw) < resume {
			continue
		}
		proj := redline.Project(raw, doc.DeletionSpans(n))
		from := 0
		for {
			i := strings.Index(proj.Visible[from:], query)
			if i < 0 {
				break
			}
			vi := from + i
			pos := base + proj.Raw(vi)
			if pos >= resume {
				segs := proj.Segments(vi, vi+len(query))
				abs := make([]redline.Span, len(segs))
				for j, s := range segs {
					abs[j] = redline.Span{Start: base + s.Start, End: base + s.End}
				}
				return Match{Position: pos, Text: query, Paragraph: n}, abs, true
			}
			from = vi + len(query)
		}
	}
	return Match{}, nil, false
}
