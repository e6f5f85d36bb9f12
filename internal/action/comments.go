// comments.go implements the comments tool.

package action

import "github.com/jpl-au/writerd/internal/editor"

func commentsList(r *Router, _ Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}

	comments, err := doc.Comments()
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []editor.Comment{}
	}
	return Result{"comments": comments, "count": len(comments)}, nil
}

func commentsAdd(r *Router, p Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}
	text, err := p.String("text")
	if err != nil {
		return nil, err
	}
	author := r.authorFor(p)

	if err := doc.AddComment(text, author); err != nil {
		return nil, err
	}
	return Result{"author": author, "text": text}, nil
}
