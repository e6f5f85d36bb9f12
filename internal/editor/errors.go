// errors.go defines sentinel errors for editor failures.
//
// These are used with errors.Is() across the action router, which maps
// them onto the wire-level error envelope. Detailed messages are provided
// by wrapping with fmt.Errorf in the methods that return them.

package editor

import "errors"

var (
	// ErrNoDocument is returned when no document session is active.
	ErrNoDocument = errors.New("no document available")
	// ErrParagraphOutOfRange is returned for paragraph numbers outside [1, count].
	ErrParagraphOutOfRange = errors.New("paragraph out of range")
	// ErrNoSelection is returned by selection operations when nothing is selected.
	ErrNoSelection = errors.New("no text selected")
	// ErrUnsupportedDocType is returned for text operations on non-writer documents.
	ErrUnsupportedDocType = errors.New("operation not supported for document type")
	// ErrNoLocation is returned when saving a document that has never been saved
	// and no file path was given.
	ErrNoLocation = errors.New("document has no location, specify file_path")
	// ErrRevisionOutOfRange is returned for revision indices outside [0, count).
	ErrRevisionOutOfRange = errors.New("revision index out of range")
	// ErrInvalidRange is returned for inverted or negative character ranges.
	ErrInvalidRange = errors.New("invalid range")
)
