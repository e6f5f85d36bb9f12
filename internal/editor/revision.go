// revision.go implements revision tracking (track changes).
//
// Tracking state is two independent booleans: recording (new edits become
// revisions) and showing (revisions are rendered visibly). All four
// combinations are legal. Revisions are positionally ordered by their raw
// span; accept/reject address them by current index, and any accept or
// reject invalidates the indices of later revisions.

package editor

import (
	"fmt"
	"sort"
	"time"

	"github.com/jpl-au/writerd/internal/redline"
)

// RevisionKind classifies a tracked change.
type RevisionKind string

const (
	Insertion  RevisionKind = "insertion"
	Deletion   RevisionKind = "deletion"
	Formatting RevisionKind = "formatting"
)

// revisionTextLimit caps revision text in listings, matching the original
// tool contract.
const revisionTextLimit = 500

// Revision is one pending tracked change. The span covers the affected
// raw text: the inserted text for insertions, the still-present deleted
// text for deletions, the reformatted text for formatting changes.
type Revision struct {
	Kind   RevisionKind
	Author string
	Time   time.Time
	span   redline.Span
}

// RevisionInfo is the wire-facing view of a revision.
type RevisionInfo struct {
	Index  int    `json:"index"`
	Kind   string `json:"type"`
	Text   string `json:"text"`
	Author string `json:"author"`
	Date   string `json:"date"`
}

// SetTracking sets the recording and showing flags.
func (d *Document) SetTracking(recording, showing bool) error {
	if err := d.requireWriter("track changes"); err != nil {
		return err
	}
	d.recording = recording
	d.showing = showing
	return nil
}

// TrackStatus returns the tracking flags and pending revision count.
func (d *Document) TrackStatus() TrackStatus {
	return TrackStatus{
		Recording:    d.recording,
		Showing:      d.showing,
		PendingCount: len(d.revisions),
	}
}

// TrackChangesActive reports whether search operations must honour
// pending deletions, which is the case while recording or showing.
func (d *Document) TrackChangesActive() bool {
	return d.recording || d.showing
}

// Recording reports whether edits are currently recorded as revisions.
func (d *Document) Recording() bool { return d.recording }

// sortRevisions keeps the positional order by raw span.
func (d *Document) sortRevisions() {
	sort.SliceStable(d.revisions, func(i, j int) bool {
		if d.revisions[i].span.Start != d.revisions[j].span.Start {
			return d.revisions[i].span.Start < d.revisions[j].span.Start
		}
		return d.revisions[i].span.End < d.revisions[j].span.End
	})
}

// addInsertion records an insertion revision. Consecutive insertions by
// the same author are merged, so typing does not produce one revision per
// call.
func (d *Document) addInsertion(span redline.Span, author string) {
	for _, r := range d.revisions {
		if r.Kind == Insertion && r.Author == author && r.span.End == span.Start {
			r.span.End = span.End
			r.Time = time.Now()
			d.sortRevisions()
			return
		}
	}
	d.revisions = append(d.revisions, &Revision{Kind: Insertion, Author: author, Time: time.Now(), span: span})
	d.sortRevisions()
}

// addDeletion records a deletion revision over still-present text.
func (d *Document) addDeletion(span redline.Span, author string) {
	if span.Len() == 0 {
		return
	}
	d.revisions = append(d.revisions, &Revision{Kind: Deletion, Author: author, Time: time.Now(), span: span})
	d.sortRevisions()
}

// addFormatting records a formatting revision. Formatting revisions carry
// no undo data; accept and reject both just retire them.
func (d *Document) addFormatting(span redline.Span, author string) {
	if span.Len() == 0 {
		return
	}
	d.revisions = append(d.revisions, &Revision{Kind: Formatting, Author: author, Time: time.Now(), span: span})
	d.sortRevisions()
}

// Revisions lists pending revisions in positional order.
func (d *Document) Revisions() ([]RevisionInfo, error) {
	if err := d.requireWriter("track changes"); err != nil {
		return nil, err
	}

	infos := make([]RevisionInfo, len(d.revisions))
	for i, r := range d.revisions {
		text := d.text[r.span.Start:r.span.End]
		if len(text) > revisionTextLimit {
			text = text[:revisionTextLimit]
		}
		infos[i] = RevisionInfo{
			Index:  i,
			Kind:   string(r.Kind),
			Text:   text,
			Author: r.Author,
			Date:   r.Time.Format(time.RFC3339),
		}
	}
	return infos, nil
}

// checkRevisionIndex validates a positional revision index.
func (d *Document) checkRevisionIndex(index int) error {
	if len(d.revisions) == 0 {
		return fmt.Errorf("no tracked changes in document: %w", ErrRevisionOutOfRange)
	}
	if index < 0 || index >= len(d.revisions) {
		return fmt.Errorf("index %d out of range, valid range: 0-%d: %w", index, len(d.revisions)-1, ErrRevisionOutOfRange)
	}
	return nil
}

// Accept makes the revision at index permanent: insertions keep their
// text, deletions remove theirs. Later indices shift down by one.
func (d *Document) Accept(index int) error {
	if err := d.requireWriter("track changes"); err != nil {
		return err
	}
	if err := d.checkRevisionIndex(index); err != nil {
		return err
	}

	r := d.revisions[index]
	d.revisions = append(d.revisions[:index], d.revisions[index+1:]...)
	if r.Kind == Deletion {
		d.removeRaw(r.span.Start, r.span.End)
	}
	d.modified = true
	return nil
}

// Reject undoes the revision at index: insertions lose their text,
// deletions keep theirs. Later indices shift down by one.
func (d *Document) Reject(index int) error {
	if err := d.requireWriter("track changes"); err != nil {
		return err
	}
	if err := d.checkRevisionIndex(index); err != nil {
		return err
	}

	r := d.revisions[index]
	d.revisions = append(d.revisions[:index], d.revisions[index+1:]...)
	if r.Kind == Insertion {
		d.removeRaw(r.span.Start, r.span.End)
	}
	d.modified = true
	return nil
}

// AcceptAll accepts every pending revision, highest index first so that
// positional indices stay valid, and returns the number accepted. A second
// call reports zero.
func (d *Document) AcceptAll() (int, error) {
	if err := d.requireWriter("track changes"); err != nil {
		return 0, err
	}
	count := 0
	for len(d.revisions) > 0 {
		if err := d.Accept(len(d.revisions) - 1); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// RejectAll rejects every pending revision, highest index first, and
// returns the number rejected.
func (d *Document) RejectAll() (int, error) {
	if err := d.requireWriter("track changes"); err != nil {
		return 0, err
	}
	count := 0
	for len(d.revisions) > 0 {
		if err := d.Reject(len(d.revisions) - 1); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// deletionSpansAll returns every deletion revision's span in raw document
// coordinates.
func (d *Document) deletionSpansAll() []redline.Span {
	var spans []redline.Span
	for _, r := range d.revisions {
		if r.Kind == Deletion {
			spans = append(spans, r.span)
		}
	}
	return spans
}

// DeletionSpans returns the pending-deletion spans intersecting paragraph
// n (1-based), in paragraph-local coordinates. When tracking is inactive
// the list is empty and search reduces to a plain substring scan.
func (d *Document) DeletionSpans(n int) []redline.Span {
	if !d.TrackChangesActive() {
		return nil
	}
	b := d.paragraphBounds(n - 1)
	var spans []redline.Span
	for _, r := range d.revisions {
		if r.Kind != Deletion {
			continue
		}
		start, end := r.span.Start, r.span.End
		if end <= b.Start || start >= b.End {
			continue
		}
		if start < b.Start {
			start = b.Start
		}
		if end > b.End {
			end = b.End
		}
		spans = append(spans, redline.Span{Start: start - b.Start, End: end - b.Start})
	}
	return spans
}

// RawParagraph returns the raw text of paragraph n (1-based), for search.
func (d *Document) RawParagraph(n int) string {
	b := d.paragraphBounds(n - 1)
	return d.text[b.Start:b.End]
}

// ParagraphStart returns the raw document offset of paragraph n (1-based).
func (d *Document) ParagraphStart(n int) int {
	return d.paragraphBounds(n - 1).Start
}

// ReplaceMatch replaces the raw segments of one visible match with text.
// Segments are absolute raw spans in ascending order, as produced by
// redline.Projection.Segments offset by the paragraph start. It returns
// the raw offset just past the inserted text, which callers use to resume
// scanning.
//
// While recording, the matched text is marked deleted and the replacement
// inserted after it; otherwise the segments are removed in place.
func (d *Document) ReplaceMatch(segments []redline.Span, text, author string) (int, error) {
	if err := d.requireWriter("find and replace"); err != nil {
		return 0, err
	}
	if len(segments) == 0 {
		return 0, fmt.Errorf("empty match: %w", ErrInvalidRange)
	}

	if d.recording {
		for _, seg := range segments {
			d.addDeletion(seg, author)
		}
		at := segments[len(segments)-1].End
		d.insertRaw(at, text)
		if text != "" {
			d.addInsertion(redline.Span{Start: at, End: at + len(text)}, author)
		}
		d.cursor = at + len(text)
		d.modified = true
		return at + len(text), nil
	}

	for i := len(segments) - 1; i >= 0; i-- {
		d.removeRaw(segments[i].Start, segments[i].End)
	}
	at := segments[0].Start
	d.insertRaw(at, text)
	d.cursor = at + len(text)
	d.modified = true
	return at + len(text), nil
}
