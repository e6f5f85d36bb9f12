// Package export renders a document to a different file format. It
// mirrors a word processor's export filter map: the caller names a
// format, the package picks the writer. Export never changes the
// document's save location.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for formats outside the filter map.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ErrExists is returned when the target file exists and overwrite is off.
var ErrExists = errors.New("target file already exists")

// Format is an export target format.
type Format string

const (
	PDF  Format = "pdf"
	DOCX Format = "docx"
	ODT  Format = "odt"
	HTML Format = "html"
	TXT  Format = "txt"
)

// Formats lists the accepted formats in the order they are advertised.
func Formats() []Format {
	return []Format{PDF, DOCX, ODT, HTML, TXT}
}

// Parse validates an export_format parameter, case-insensitively.
func Parse(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	switch f {
	case PDF, DOCX, ODT, HTML, TXT:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (valid: pdf, docx, odt, html, txt)", ErrUnsupportedFormat, s)
}

// Document is the content handed to a writer: title plus styled
// paragraphs.
type Document struct {
	Title      string
	Paragraphs []Paragraph
}

// Paragraph is one paragraph with its style name ("Default" or
// "Heading N").
type Paragraph struct {
	Text  string
	Style string
}

// Options configures an export.
type Options struct {
	Overwrite bool
}

// Write renders doc to path in the given format. The parent directory
// must exist; an existing file fails unless Overwrite is set.
func Write(path string, format Format, doc Document, opts Options) error {
	if !opts.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	var data []byte
	var err error
	switch format {
	case TXT:
		data = renderTXT(doc)
	case HTML:
		data = renderHTML(doc)
	case PDF:
		data = renderPDF(doc)
	case DOCX:
		data, err = renderDOCX(doc)
	case ODT:
		data, err = renderODT(doc)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("export to %s: %w", filepath.Base(path), err)
	}
	return nil
}

// renderTXT writes the plain-text projection, one line per paragraph.
func renderTXT(doc Document) []byte {
	var b strings.Builder
	for _, p := range doc.Paragraphs {
		b.WriteString(p.Text)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
