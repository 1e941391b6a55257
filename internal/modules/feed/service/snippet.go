package service

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var blockElements = map[string]struct{}{
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"br": {}, "p": {}, "ul": {}, "ol": {}, "li": {},
	"blockquote": {}, "section": {}, "table": {}, "tr": {}, "div": {},
}

var skippedElements = map[string]struct{}{
	"script": {}, "style": {}, "#comment": {},
}

// Snippet turns an HTML fragment into plain text. Block-level elements are
// separated by newlines, entities are decoded and surrounding whitespace is trimmed.
func Snippet(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return strings.TrimSpace(raw)
	}

	var b strings.Builder
	writeText(&b, doc.Find("body"))

	return strings.TrimSpace(b.String())
}

func writeText(b *strings.Builder, s *goquery.Selection) {
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		name := goquery.NodeName(child)

		if _, ok := skippedElements[name]; ok {
			return
		}

		if name == "#text" {
			b.WriteString(child.Text())
			return
		}

		if _, ok := blockElements[name]; ok {
			lineBreak(b)
			writeText(b, child)
			lineBreak(b)
			return
		}

		writeText(b, child)
	})
}

func lineBreak(b *strings.Builder) {
	if b.Len() == 0 || strings.HasSuffix(b.String(), "\n") {
		return
	}
	b.WriteByte('\n')
}
