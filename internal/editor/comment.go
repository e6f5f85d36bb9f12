// comment.go implements document comments (annotations). A comment is
// anchored at a character position; the anchor text is a snapshot of the
// surrounding paragraph taken when the comment is added.

package editor

import (
	"time"
)

// anchorTextLimit caps the anchor snapshot, matching the original tool
// contract.
const anchorTextLimit = 100

// Comment is an annotation anchored in the document.
type Comment struct {
	Author     string `json:"author"`
	Text       string `json:"content"`
	Date       string `json:"date"`
	AnchorText string `json:"anchor_text,omitempty"`

	position int
}

// Comments returns all comments in the order they were added.
func (d *Document) Comments() ([]Comment, error) {
	if err := d.requireWriter("comments"); err != nil {
		return nil, err
	}
	return d.comments, nil
}

// AddComment anchors a comment at the current cursor position.
func (d *Document) AddComment(text, author string) error {
	if err := d.requireWriter("comments"); err != nil {
		return err
	}

	b := d.paragraphBounds(d.paragraphAt(d.cursor))
	anchor := d.text[b.Start:b.End]
	if len(anchor) > anchorTextLimit {
		anchor = anchor[:anchorTextLimit]
	}

	d.comments = append(d.comments, Comment{
		Author:     author,
		Text:       text,
		Date:       time.Now().Format(time.RFC3339),
		AnchorText: anchor,
		position:   d.cursor,
	})
	d.modified = true
	return nil
}
