// text.go implements the text tool: insertion at the cursor or a given
// position, and character formatting of the selection.

package action

import "github.com/jpl-au/writerd/internal/editor"

func textInsert(r *Router, p Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}
	content, err := p.String("content")
	if err != nil {
		return nil, err
	}
	pos, err := p.OptionalInt("position")
	if err != nil {
		return nil, err
	}

	if err := doc.InsertText(content, pos, r.authorFor(p)); err != nil {
		return nil, err
	}
	after, _, err := doc.CursorPosition()
	if err != nil {
		return nil, err
	}
	return Result{"position": after, "length": len(content)}, nil
}

func textFormat(r *Router, p Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}

	f := editor.CharFormat{
		Bold:      p.OptionalBool("bold"),
		Italic:    p.OptionalBool("italic"),
		Underline: p.OptionalBool("underline"),
		FontSize:  p.OptionalFloat("font_size"),
		FontName:  p.OptionalString("font_name"),
	}

	if err := doc.Format(f, r.authorFor(p)); err != nil {
		return nil, err
	}

	var applied []string
	if f.Bold != nil {
		applied = append(applied, "bold")
	}
	if f.Italic != nil {
		applied = append(applied, "italic")
	}
	if f.Underline != nil {
		applied = append(applied, "underline")
	}
	if f.FontSize != nil {
		applied = append(applied, "font_size")
	}
	if f.FontName != nil {
		applied = append(applied, "font_name")
	}
	if applied == nil {
		applied = []string{}
	}
	return Result{"applied": applied}, nil
}
