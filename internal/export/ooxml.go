// ooxml.go renders the docx and odt exports. Both formats are zip
// containers of XML parts; these writers emit the minimal valid package
// for styled text content.

package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>
`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>
`

func renderDOCX(doc Document) ([]byte, error) {
	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range doc.Paragraphs {
		body.WriteString("<w:p>")
		if level, ok := headingLevel(p.Style); ok {
			fmt.Fprintf(&body, `<w:pPr><w:pStyle w:val="Heading%d"/></w:pPr>`, level)
		}
		fmt.Fprintf(&body, `<w:r><w:t xml:space="preserve">%s</w:t></w:r>`, xmlEscape(p.Text))
		body.WriteString("</w:p>")
	}
	body.WriteString(`</w:body></w:document>`)

	return zipParts([]zipPart{
		{name: "[Content_Types].xml", data: docxContentTypes},
		{name: "_rels/.rels", data: docxRels},
		{name: "word/document.xml", data: body.String()},
	})
}

const odtManifest = `<?xml version="1.0" encoding="UTF-8"?>
<manifest:manifest xmlns:manifest="urn:oasis:names:tc:opendocument:xmlns:manifest:1.0" manifest:version="1.2">
<manifest:file-entry manifest:full-path="/" manifest:media-type="application/vnd.oasis.opendocument.text"/>
<manifest:file-entry manifest:full-path="content.xml" manifest:media-type="text/xml"/>
</manifest:manifest>
`

func renderODT(doc Document) ([]byte, error) {
	var content strings.Builder
	content.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	content.WriteString(`<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0" office:version="1.2"><office:body><office:text>`)
	for _, p := range doc.Paragraphs {
		if level, ok := headingLevel(p.Style); ok {
			fmt.Fprintf(&content, `<text:h text:outline-level="%d">%s</text:h>`, level, xmlEscape(p.Text))
		} else {
			fmt.Fprintf(&content, `<text:p>%s</text:p>`, xmlEscape(p.Text))
		}
	}
	content.WriteString(`</office:text></office:body></office:document-content>`)

	// The mimetype entry must come first and be stored uncompressed for
	// the container to be recognised.
	return zipParts([]zipPart{
		{name: "mimetype", data: "application/vnd.oasis.opendocument.text", stored: true},
		{name: "META-INF/manifest.xml", data: odtManifest},
		{name: "content.xml", data: content.String()},
	})
}

type zipPart struct {
	name   string
	data   string
	stored bool // no compression
}

func zipParts(parts []zipPart) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		hdr := &zip.FileHeader{Name: p.name, Method: zip.Deflate}
		if p.stored {
			hdr.Method = zip.Store
		}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(p.data)); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
