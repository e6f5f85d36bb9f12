// format.go implements character formatting. Formatting is stored as an
// ordered list of runs; later runs override earlier ones, so reading the
// effective format at a position folds the runs in application order.

package editor

import (
	"github.com/jpl-au/writerd/internal/redline"
)

// CharFormat holds character attributes. Pointer fields distinguish "not
// set by this run" (nil) from an explicit value, so a run that only sets
// bold does not clear an earlier italic run.
type CharFormat struct {
	Bold      *bool
	Italic    *bool
	Underline *bool
	FontSize  *float64
	FontName  *string
}

// IsZero reports whether no attribute is set.
func (f CharFormat) IsZero() bool {
	return f.Bold == nil && f.Italic == nil && f.Underline == nil && f.FontSize == nil && f.FontName == nil
}

type formatRun struct {
	span   redline.Span
	format CharFormat
}

// Format applies character attributes to the current selection. While
// recording, the edit is tracked as a formatting revision.
func (d *Document) Format(f CharFormat, author string) error {
	if err := d.requireWriter("text formatting"); err != nil {
		return err
	}
	if !d.hasSel {
		return ErrNoSelection
	}
	if f.IsZero() {
		return nil
	}

	d.runs = append(d.runs, formatRun{span: d.sel, format: f})
	if d.recording {
		d.addFormatting(d.sel, author)
	}
	d.modified = true
	return nil
}

// FormatAt returns the effective character format at a raw offset,
// folding all runs covering it in application order.
func (d *Document) FormatAt(pos int) CharFormat {
	var out CharFormat
	for _, run := range d.runs {
		if pos < run.span.Start || pos >= run.span.End {
			continue
		}
		if run.format.Bold != nil {
			out.Bold = run.format.Bold
		}
		if run.format.Italic != nil {
			out.Italic = run.format.Italic
		}
		if run.format.Underline != nil {
			out.Underline = run.format.Underline
		}
		if run.format.FontSize != nil {
			out.FontSize = run.format.FontSize
		}
		if run.format.FontName != nil {
			out.FontName = run.format.FontName
		}
	}
	return out
}
