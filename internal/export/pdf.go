// pdf.go renders a minimal text-only PDF: one content stream drawing
// each paragraph as a line of Helvetica, headings in a larger size.
// The writer builds the cross-reference table by hand.

package export

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	pdfPageWidth  = 595 // A4 points
	pdfPageHeight = 842
	pdfMargin     = 72
	pdfBodySize   = 11
	pdfLeading    = 14
)

func renderPDF(doc Document) []byte {
	streams := pdfContentStreams(doc)

	// Objects: 1 catalog, 2 pages, then per page [page, contents], then
	// the shared font object last.
	pageCount := len(streams)
	fontObj := 3 + 2*pageCount

	var kids []string
	for i := 0; i < pageCount; i++ {
		kids = append(kids, fmt.Sprintf("%d 0 R", 3+2*i))
	}

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pageCount),
	}
	for i, stream := range streams {
		pageObj := 3 + 2*i
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Contents %d 0 R /Resources << /Font << /F1 %d 0 R >> >> >>",
				pdfPageWidth, pdfPageHeight, pageObj+1, fontObj),
			fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", len(stream), stream),
		)
	}
	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

// pdfContentStreams lays paragraphs onto pages, one stream per page.
func pdfContentStreams(doc Document) []string {
	var streams []string
	var b strings.Builder
	y := pdfPageHeight - pdfMargin

	flush := func() {
		if b.Len() > 0 {
			streams = append(streams, b.String())
			b.Reset()
		}
		y = pdfPageHeight - pdfMargin
	}

	for _, p := range doc.Paragraphs {
		size := pdfBodySize
		if level, ok := headingLevel(p.Style); ok {
			size = 18 - 2*level
			if size < pdfBodySize {
				size = pdfBodySize
			}
		}
		leading := pdfLeading
		if size > pdfBodySize {
			leading = size + 4
		}
		if y-leading < pdfMargin {
			flush()
		}
		y -= leading
		fmt.Fprintf(&b, "BT /F1 %d Tf %d %d Td (%s) Tj ET\n", size, pdfMargin, y, pdfEscape(p.Text))
	}
	flush()

	if len(streams) == 0 {
		streams = append(streams, "")
	}
	return streams
}

// pdfEscape escapes a string for a PDF literal. Bytes outside the
// printable ASCII range are written as octal escapes.
func pdfEscape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '(' || c == ')' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c < 0x20 || c > 0x7e:
			fmt.Fprintf(&b, "\\%03o", c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
