// Package redline provides the visible-text projection used by
// track-changes-aware operations.
//
// A paragraph's raw text may contain spans that are pending tracked
// deletions. Such text is still physically present in the document but is
// not part of its logical content. Project computes the visible text (raw
// text with deletion spans excised) together with an offset map from
// visible coordinates back to raw coordinates, so that callers can report
// match positions in raw-document space and navigate a cursor there.
//
// Everything in this package is pure: no document handle, no session
// state. The editor supplies raw text and deletion spans; this package
// only does coordinate arithmetic.
package redline

import "sort"

// Span is a half-open [Start, End) byte range.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Normalise clamps spans to [0, length], drops empty spans, sorts by start,
// and merges overlapping or adjacent spans. The input slice is not modified.
func Normalise(spans []Span, length int) []Span {
	clamped := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Start < 0 {
			s.Start = 0
		}
		if s.End > length {
			s.End = length
		}
		if s.Start >= s.End {
			continue
		}
		clamped = append(clamped, s)
	}
	sort.Slice(clamped, func(i, j int) bool { return clamped[i].Start < clamped[j].Start })

	var merged []Span
	for _, s := range clamped {
		if n := len(merged); n > 0 && s.Start <= merged[n-1].End {
			if s.End > merged[n-1].End {
				merged[n-1].End = s.End
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// Projection is the visible rendering of a raw string with deletion spans
// excised, plus the visible-to-raw offset map.
type Projection struct {
	// Visible is the raw text with every deletion span removed.
	Visible string

	// raw[i] is the raw offset of visible byte i. len(raw) == len(Visible)+1;
	// the final entry is the raw offset one past the last visible byte, so
	// that the end of a match at the end of the text still maps cleanly.
	raw []int
}

// Project computes the visible projection of raw given its deletion spans.
// Spans are normalised first, so callers may pass them unsorted and
// overlapping.
func Project(raw string, deletions []Span) Projection {
	dels := Normalise(deletions, len(raw))

	visible := make([]byte, 0, len(raw))
	offsets := make([]int, 0, len(raw)+1)

	next := 0 // index into dels
	for i := 0; i < len(raw); i++ {
		for next < len(dels) && i >= dels[next].End {
			next++
		}
		if next < len(dels) && i >= dels[next].Start {
			continue // inside a deletion span
		}
		visible = append(visible, raw[i])
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(raw))

	return Projection{Visible: string(visible), raw: offsets}
}

// Raw maps a visible offset to the corresponding raw offset.
// Valid for 0 <= visible <= len(p.Visible); the end offset maps to the raw
// length. Out-of-range offsets are clamped.
func (p Projection) Raw(visible int) int {
	if len(p.raw) == 0 {
		return 0
	}
	if visible < 0 {
		visible = 0
	}
	if visible >= len(p.raw) {
		visible = len(p.raw) - 1
	}
	return p.raw[visible]
}

// Segments returns the raw spans covering the visible range [start, end).
// A visible range that straddles a deletion span produces one segment per
// contiguous raw run, in raw order. An empty or inverted range yields nil.
func (p Projection) Segments(start, end int) []Span {
	if start < 0 {
		start = 0
	}
	if end > len(p.Visible) {
		end = len(p.Visible)
	}
	if start >= end {
		return nil
	}

	var segs []Span
	cur := Span{Start: p.raw[start], End: p.raw[start] + 1}
	for i := start + 1; i < end; i++ {
		r := p.raw[i]
		if r == cur.End {
			cur.End = r + 1
			continue
		}
		segs = append(segs, cur)
		cur = Span{Start: r, End: r + 1}
	}
	return append(segs, cur)
}
