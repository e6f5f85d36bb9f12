// selection.go implements the selection tool. A selection is set by
// paragraph or character range and then consumed by delete/replace;
// handlers re-read the selection from the document, never from earlier
// responses.

package action

func selectionParagraph(r *Router, p Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}
	n, err := p.Int("n")
	if err != nil {
		return nil, err
	}

	text, err := doc.SelectParagraph(n)
	if err != nil {
		return nil, err
	}
	return Result{"paragraph": n, "text": text, "length": len(text)}, nil
}

func selectionRange(r *Router, p Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}
	start, err := p.Int("start")
	if err != nil {
		return nil, err
	}
	end, err := p.Int("end")
	if err != nil {
		return nil, err
	}

	text, err := doc.SelectRange(start, end)
	if err != nil {
		return nil, err
	}
	span, _, _ := doc.Selection()
	return Result{"start": span.Start, "end": span.End, "text": text}, nil
}

func selectionDelete(r *Router, p Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}

	deleted, err := doc.DeleteSelection(r.authorFor(p))
	if err != nil {
		return nil, err
	}
	return Result{"deleted": deleted, "length": len(deleted)}, nil
}

func selectionReplace(r *Router, p Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}
	text, err := p.String("text")
	if err != nil {
		return nil, err
	}

	old, err := doc.ReplaceSelection(text, r.authorFor(p))
	if err != nil {
		return nil, err
	}
	return Result{"old_text": old, "new_text": text}, nil
}
