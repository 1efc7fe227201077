package condense

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// mdRule builds the markdown replacement for element n. text is the
// concatenated, already rewritten text of n's descendants.
type mdRule func(n *html.Node, text string) string

var markdownRules = map[string]mdRule{
	"strong":     wrapText("**"),
	"b":          wrapText("**"),
	"em":         wrapText("*"),
	"i":          wrapText("*"),
	"del":        wrapText("~~"),
	"s":          wrapText("~~"),
	"strike":     wrapText("~~"),
	"code":       wrapText("`"),
	"a":          mdLink,
	"img":        mdImage,
	"pre":        mdCodeBlock,
	"h1":         mdHeading(1),
	"h2":         mdHeading(2),
	"h3":         mdHeading(3),
	"h4":         mdHeading(4),
	"h5":         mdHeading(5),
	"h6":         mdHeading(6),
	"blockquote": mdBlockquote,
	"ul":         mdList(false),
	"ol":         mdList(true),
	"hr":         func(*html.Node, string) string { return "\n---\n" },
	"br":         func(*html.Node, string) string { return "\n" },
}

// rewriteMarkdown collapses every matched element into a single text node,
// children first. Unmatched elements stay as markup.
func (p *pipeline) rewriteMarkdown(n *html.Node) {
	for _, c := range childNodes(n) {
		p.rewriteMarkdown(c)
	}
	if n.Type != html.ElementNode || n.Parent == nil {
		return
	}

	tag := tagName(n)
	rule, ok := markdownRules[tag]
	if !ok {
		return
	}
	// Inline code inside <pre> is left for the block template.
	if tag == "code" && n.Parent.Type == html.ElementNode && tagName(n.Parent) == "pre" {
		return
	}

	replaceWithText(n, rule(n, textContent(n)))
	p.stats.MarkdownRewrites++
}

func wrapText(marker string) mdRule {
	return func(_ *html.Node, text string) string {
		return marker + text + marker
	}
}

func mdLink(n *html.Node, text string) string {
	href, _ := getAttr(n, "href")
	return "[" + text + "](" + href + ")"
}

func mdImage(n *html.Node, _ string) string {
	alt, _ := getAttr(n, "alt")
	src, _ := getAttr(n, "src")
	return "![" + alt + "](" + src + ")"
}

func mdCodeBlock(n *html.Node, text string) string {
	if c := n.FirstChild; c != nil && c.NextSibling == nil &&
		c.Type == html.ElementNode && tagName(c) == "code" {
		text = textContent(c)
	}
	return "\n```\n" + text + "\n```\n"
}

func mdHeading(level int) mdRule {
	prefix := strings.Repeat("#", level) + " "
	return func(_ *html.Node, text string) string {
		return "\n" + prefix + text + "\n"
	}
}

func mdBlockquote(_ *html.Node, text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}

// mdList renders the direct <li> children of a list, one item per line.
func mdList(ordered bool) mdRule {
	return func(n *html.Node, _ string) string {
		var items []string
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || tagName(c) != "li" {
				continue
			}
			marker := "-"
			if ordered {
				marker = strconv.Itoa(len(items)+1) + "."
			}
			items = append(items, marker+" "+strings.TrimSpace(textContent(c)))
		}
		return strings.Join(items, "\n") + "\n"
	}
}
