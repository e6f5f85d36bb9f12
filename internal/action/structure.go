// structure.go implements the structure tool: read-only access to the
// document's paragraph structure and outline.

package action

import "github.com/jpl-au/writerd/internal/editor"

func structureOutline(r *Router, _ Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}

	outline, err := doc.Outline()
	if err != nil {
		return nil, err
	}
	if outline == nil {
		outline = []editor.OutlineEntry{}
	}
	return Result{"outline": outline, "count": len(outline)}, nil
}

func structureParagraph(r *Router, p Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}
	n, err := p.Int("n")
	if err != nil {
		return nil, err
	}

	pc, err := doc.Paragraph(n)
	if err != nil {
		return nil, err
	}

	res := Result{"number": pc.Number, "content": pc.Content}
	if pc.VisibleContent != "" || doc.Recording() {
		res["visible_content"] = pc.VisibleContent
	}
	return res, nil
}

func structureRange(r *Router, p Params) (Result, error) {
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

	paras, err := doc.ParagraphRange(start, end)
	if err != nil {
		return nil, err
	}
	return Result{"paragraphs": paras, "count": len(paras)}, nil
}

func structureCount(r *Router, _ Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}
	if err := requireWriter(doc, "paragraph count"); err != nil {
		return nil, err
	}
	return Result{"count": doc.ParagraphCount()}, nil
}
