// save.go implements the save tool: writing the document to its
// location and exporting to other formats. Export never changes the
// document's save location.

package action

import (
	"github.com/jpl-au/writerd/internal/export"
)

func saveSave(r *Router, p Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}
	path := p.StringDefault("file_path", "")

	if err := doc.Save(path); err != nil {
		return nil, err
	}
	return Result{"file_path": doc.Location()}, nil
}

func saveExport(r *Router, p Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}
	if err := requireWriter(doc, "export"); err != nil {
		return nil, err
	}
	path, err := p.String("file_path")
	if err != nil {
		return nil, err
	}
	format, err := export.Parse(p.StringDefault("export_format", "pdf"))
	if err != nil {
		return nil, err
	}

	paras := doc.Paragraphs()
	out := export.Document{Title: doc.Title(), Paragraphs: make([]export.Paragraph, len(paras))}
	for i, para := range paras {
		out.Paragraphs[i] = export.Paragraph{Text: para.Text, Style: para.Style}
	}

	opts := export.Options{}
	if r.cfg != nil {
		opts.Overwrite = r.cfg.ExportOverwrite()
	}
	if err := export.Write(path, format, out, opts); err != nil {
		return nil, err
	}
	return Result{"file_path": path, "export_format": string(format)}, nil
}
