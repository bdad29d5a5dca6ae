// Package htmltext converts upstream rich-text fragments to plain text.
package htmltext

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Tags whose closing marks the end of a text block.
var blockTags = map[string]bool{
	"p": true, "div": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

var (
	reNewlines     = regexp.MustCompile(`\n+`)
	reSpaces       = regexp.MustCompile(`[ \t]+`)
	reSpacedBreaks = regexp.MustCompile(` *\n *`)
)

// Strip removes markup from an HTML fragment and returns its display text.
// Script and style contents are dropped entirely; <br> and block elements
// become line breaks; runs of whitespace collapse.
func Strip(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	skip := 0

	for {
		switch tt := z.Next(); tt {
		case html.ErrorToken:
			// io.EOF for a fragment; anything else still yields the text
			// collected so far.
			return normalize(b.String())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch tag := string(name); {
			case tag == "script" || tag == "style":
				if tt == html.StartTagToken {
					skip++
				}
			case tag == "br":
				b.WriteByte('\n')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch tag := string(name); {
			case tag == "script" || tag == "style":
				if skip > 0 {
					skip--
				}
			case blockTags[tag]:
				b.WriteByte('\n')
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func normalize(text string) string {
	text = strings.TrimSpace(text)
	text = reNewlines.ReplaceAllString(text, "\n")
	text = reSpaces.ReplaceAllString(text, " ")
	text = reSpacedBreaks.ReplaceAllString(text, "\n")
	return text
}
