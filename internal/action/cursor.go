// cursor.go implements the cursor tool: view-cursor navigation and
// inspection. Cursor state is read back from the document after every
// move rather than echoed from the request.

package action

func cursorGotoParagraph(r *Router, p Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}
	n, err := p.Int("n")
	if err != nil {
		return nil, err
	}

	if err := doc.GotoParagraph(n); err != nil {
		return nil, err
	}
	pos, _, err := doc.CursorPosition()
	if err != nil {
		return nil, err
	}
	return Result{"paragraph": n, "position": pos}, nil
}

func cursorGotoPosition(r *Router, p Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}
	charPos, err := p.Int("char_pos")
	if err != nil {
		return nil, err
	}

	actual, err := doc.GotoPosition(charPos)
	if err != nil {
		return nil, err
	}
	return Result{"requested": charPos, "position": actual}, nil
}

func cursorPosition(r *Router, _ Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}

	pos, paragraph, err := doc.CursorPosition()
	if err != nil {
		return nil, err
	}
	return Result{"position": pos, "paragraph": paragraph}, nil
}

func cursorContext(r *Router, p Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}
	chars := p.IntDefault("chars", r.contextChars())

	before, after, pos, err := doc.Context(chars)
	if err != nil {
		return nil, err
	}
	return Result{"before": before, "after": after, "position": pos}, nil
}
