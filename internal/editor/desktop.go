// Package editor implements the in-process word-processor session: a
// desktop holding open documents, and a writer document model with
// paragraphs, a view cursor, a selection, tracked revisions, comments and
// character formatting.
//
// The desktop is the session context object. Every operation goes through
// an explicit *Desktop (or a *Document obtained from it); there is no
// package-level ambient state. Cursor and selection are re-read from the
// document on every call rather than cached by callers.
package editor

import (
	"fmt"
	"os"
	"strings"
)

// DocType identifies the kind of document. Only writer documents carry a
// text model; the other types exist so that creating them and probing
// session state still works, but text operations reject them.
type DocType string

const (
	Writer  DocType = "writer"
	Calc    DocType = "calc"
	Impress DocType = "impress"
	Draw    DocType = "draw"
)

// ParseDocType validates a doc_type parameter. An empty string defaults to
// writer, matching the original tool contract.
func ParseDocType(s string) (DocType, error) {
	switch DocType(s) {
	case "":
		return Writer, nil
	case Writer, Calc, Impress, Draw:
		return DocType(s), nil
	}
	return "", fmt.Errorf("unknown doc_type %q: valid types are writer, calc, impress, draw", s)
}

// Desktop manages the set of open documents and the currently active one.
// It is the root of all session state.
type Desktop struct {
	docs    []*Document
	current int // index into docs, -1 when none
	nextID  int
}

// NewDesktop creates an empty session with no open documents.
func NewDesktop() *Desktop {
	return &Desktop{current: -1, nextID: 1}
}

// CreateDocument opens a new empty document of the given type and makes it
// the active document. A new writer document has exactly one empty
// paragraph.
func (d *Desktop) CreateDocument(t DocType) (*Document, error) {
	if t == "" {
		t = Writer
	}
	switch t {
	case Writer, Calc, Impress, Draw:
	default:
		return nil, fmt.Errorf("unknown doc_type %q", t)
	}

	doc := &Document{
		id:      d.nextID,
		title:   fmt.Sprintf("Untitled %d", d.nextID),
		typ:     t,
		styles:  []string{defaultStyle},
		showing: true,
	}
	d.nextID++
	d.docs = append(d.docs, doc)
	d.current = len(d.docs) - 1
	return doc, nil
}

// Open loads a plain-text file as a writer document and makes it active.
// The file path becomes the document's location, so a later save without a
// path writes back to the same file.
func (d *Desktop) Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}

	doc, err := d.CreateDocument(Writer)
	if err != nil {
		return nil, err
	}
	doc.text = strings.TrimSuffix(string(data), "\n")
	doc.styles = make([]string, strings.Count(doc.text, "\n")+1)
	for i := range doc.styles {
		doc.styles[i] = defaultStyle
	}
	doc.title = path
	doc.location = path
	doc.modified = false
	return doc, nil
}

// Current returns the active document, or ErrNoDocument when the session
// has none open.
func (d *Desktop) Current() (*Document, error) {
	if d.current < 0 || d.current >= len(d.docs) {
		return nil, ErrNoDocument
	}
	return d.docs[d.current], nil
}

// Documents returns all open documents in opening order.
func (d *Desktop) Documents() []*Document {
	return d.docs
}

// HasDocument reports whether any document is open.
func (d *Desktop) HasDocument() bool {
	return d.current >= 0 && d.current < len(d.docs)
}

// writeFile writes document content to disk. Split out so document.go does
// not depend on os directly beyond this one seam.
func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}
