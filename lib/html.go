package lib

import (
	"bytes"
	"io"

	"golang.org/x/net/html"
)

var disallowedNodes = map[string]struct{}{
	"area":     {},
	"audio":    {},
	"head":     {},
	"link":     {},
	"meta":     {},
	"noscript": {},
	"script":   {},
	"source":   {},
	"style":    {},
	"input":    {},
	"textarea": {},
	"title":    {},
	"video":    {},
}

var nonBreakingNodes = map[string]struct{}{
	"span":   {},
	"sub":    {},
	"sup":    {},
	"b":      {},
	"del":    {},
	"em":     {},
	"i":      {},
	"ins":    {},
	"mark":   {},
	"q":      {},
	"s":      {},
	"strike": {},
	"strong": {},
	"u":      {},
	"big":    {},
	"small":  {},
	"a":      {},
}

// voidNodes never have an end tag, so they must not open a disallowed subtree.
var voidNodes = map[string]struct{}{
	"area":   {},
	"base":   {},
	"br":     {},
	"col":    {},
	"embed":  {},
	"hr":     {},
	"img":    {},
	"input":  {},
	"link":   {},
	"meta":   {},
	"source": {},
	"track":  {},
	"wbr":    {},
}

// HtmlToText extracts the visible text of an html document. Text under
// disallowed nodes (scripts, styles, media, ...) is dropped, and a line break is
// written whenever a block level element ends or a <br> is found. Inline
// elements such as <b> or <a> do not break the text.
func HtmlToText(r io.Reader) (string, error) {
	htmlTokenizer := html.NewTokenizer(r)
	var buf bytes.Buffer
	var disallowedDepth int

	newline := func() {
		if buf.Len() > 0 && buf.Bytes()[buf.Len()-1] != '\n' {
			buf.WriteByte('\n')
		}
	}

	for {
		switch htmlTokenizer.Next() {
		case html.ErrorToken:
			if err := htmlTokenizer.Err(); err != io.EOF {
				return "", err
			}
			newline()
			return buf.String(), nil
		case html.TextToken:
			// Must read this first. Other read methods mutate the current token.
			text := htmlTokenizer.Text()
			if disallowedDepth == 0 {
				buf.Write(text)
			}
		case html.StartTagToken:
			tn, _ := htmlTokenizer.TagName()
			name := string(tn)
			if _, ok := voidNodes[name]; ok {
				if disallowedDepth == 0 && name == "br" {
					buf.WriteByte('\n')
				}
				continue
			}
			if _, ok := disallowedNodes[name]; ok || disallowedDepth > 0 {
				disallowedDepth++
			}
		case html.EndTagToken:
			tn, _ := htmlTokenizer.TagName()
			if disallowedDepth > 0 {
				disallowedDepth--
				continue
			}
			if _, ok := nonBreakingNodes[string(tn)]; !ok {
				newline()
			}
		case html.SelfClosingTagToken:
			tn, _ := htmlTokenizer.TagName()
			if disallowedDepth == 0 && string(tn) == "br" {
				buf.WriteByte('\n')
			}
		}
	}
}
