package condense

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

var (
	lineBreaks = regexp.MustCompile(`[\t\n\r]+`)
	spaceRuns  = regexp.MustCompile(` {2,}`)
)

// normalizeWhitespace collapses tab, newline and carriage-return runs to one
// space, then runs of spaces to one, in every text node independently.
func normalizeWhitespace(doc *html.Node) {
	eachTextNode(doc, func(t *html.Node) {
		t.Data = spaceRuns.ReplaceAllString(lineBreaks.ReplaceAllString(t.Data, " "), " ")
	})
}

// cleanTextNodes shrinks blank text nodes longer than one character to a
// single space, keeping the gap between inline elements.
func cleanTextNodes(doc *html.Node) {
	eachTextNode(doc, func(t *html.Node) {
		if strings.TrimSpace(t.Data) == "" && utf8.RuneCountInString(t.Data) > 1 {
			t.Data = " "
		}
	})
}
