// document.go implements the document tool: session-level operations on
// the set of open documents.

package action

import (
	"github.com/jpl-au/writerd/internal/editor"
	"github.com/jpl-au/writerd/internal/version"
)

func documentCreate(r *Router, p Params) (Result, error) {
	t, err := editor.ParseDocType(p.StringDefault("doc_type", ""))
	if err != nil {
		return nil, err
	}

	doc, err := r.desk.CreateDocument(t)
	if err != nil {
		return nil, err
	}
	if t == editor.Writer && r.cfg != nil && r.cfg.TrackRecord() {
		_ = doc.SetTracking(true, true)
	}

	return Result{
		"title":    doc.Title(),
		"doc_type": string(doc.Type()),
	}, nil
}

func documentInfo(r *Router, _ Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}

	info := doc.Info()
	res := Result{
		"title":           info.Title,
		"url":             info.URL,
		"modified":        info.Modified,
		"type":            info.Type,
		"has_selection":   info.HasSelection,
		"word_count":      info.WordCount,
		"character_count": info.CharCount,
	}
	if info.TrackChanges != nil {
		res["track_changes"] = *info.TrackChanges
	}
	return res, nil
}

func documentList(r *Router, _ Params) (Result, error) {
	current, _ := r.desk.Current()

	docs := r.desk.Documents()
	entries := make([]Result, len(docs))
	for i, doc := range docs {
		entries[i] = Result{
			"title":    doc.Title(),
			"type":     string(doc.Type()),
			"modified": doc.Modified(),
			"current":  doc == current,
		}
	}
	return Result{"documents": entries, "count": len(entries)}, nil
}

func documentContent(r *Router, _ Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}
	if err := requireWriter(doc, "document content"); err != nil {
		return nil, err
	}

	content := doc.VisibleText()
	return Result{"content": content, "length": len(content)}, nil
}

// documentStatus is the health probe: it succeeds with or without an
// open document.
func documentStatus(r *Router, _ Params) (Result, error) {
	return Result{
		"server_version": version.Short(),
		"document_open":  r.desk.HasDocument(),
		"document_count": len(r.desk.Documents()),
	}, nil
}
