// html.go renders the HTML export. Headings map to h1-h6 by style level;
// everything else becomes a paragraph element.

package export

import (
	"fmt"
	"html"
	"strings"
)

func renderHTML(doc Document) []byte {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	fmt.Fprintf(&b, "<meta charset=\"utf-8\">\n<title>%s</title>\n", html.EscapeString(doc.Title))
	b.WriteString("</head>\n<body>\n")

	for _, p := range doc.Paragraphs {
		tag := "p"
		if level, ok := headingLevel(p.Style); ok {
			if level > 6 {
				level = 6
			}
			tag = fmt.Sprintf("h%d", level)
		}
		fmt.Fprintf(&b, "<%s>%s</%s>\n", tag, html.EscapeString(p.Text), tag)
	}

	b.WriteString("</body>\n</html>\n")
	return []byte(b.String())
}

// headingLevel parses a "Heading N" style name.
func headingLevel(style string) (int, bool) {
	if !strings.HasPrefix(style, "Heading") {
		return 0, false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(style, "Heading"))
	if rest == "" {
		return 1, true
	}
	level := 0
	for _, c := range rest {
		if c < '0' || c > '9' {
			return 1, true
		}
		level = level*10 + int(c-'0')
	}
	if level < 1 {
		level = 1
	}
	return level, true
}
