package condense

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/net/html"
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;")
)

// rawTextTags hold text that is written without escaping.
var rawTextTags = newTagSet("script", "style", "xmp", "iframe", "noembed", "noframes", "plaintext")

// render serializes n as HTML. Text escapes only &, < and >, so quotes and
// apostrophes reach the reader as typed; void elements are self-closed.
func render(w io.Writer, n *html.Node) error {
	bw := bufio.NewWriter(w)
	renderNode(bw, n, false)
	return bw.Flush()
}

func renderNode(w *bufio.Writer, n *html.Node, raw bool) {
	switch n.Type {
	case html.DocumentNode:
		renderChildren(w, n, false)

	case html.DoctypeNode:
		w.WriteString("<!DOCTYPE ")
		w.WriteString(n.Data)
		w.WriteString(">")

	case html.CommentNode:
		w.WriteString("<!--")
		w.WriteString(n.Data)
		w.WriteString("-->")

	case html.TextNode:
		if raw {
			w.WriteString(n.Data)
			return
		}
		textEscaper.WriteString(w, n.Data)

	case html.ElementNode:
		tag := tagName(n)
		w.WriteByte('<')
		w.WriteString(tag)
		for _, a := range n.Attr {
			w.WriteByte(' ')
			if a.Namespace != "" {
				w.WriteString(a.Namespace)
				w.WriteByte(':')
			}
			w.WriteString(a.Key)
			w.WriteString(`="`)
			attrEscaper.WriteString(w, a.Val)
			w.WriteByte('"')
		}
		if voidTags.has(tag) {
			w.WriteString("/>")
			return
		}
		w.WriteByte('>')
		renderChildren(w, n, rawTextTags.has(tag))
		w.WriteString("</")
		w.WriteString(tag)
		w.WriteByte('>')
	}
}

func renderChildren(w *bufio.Writer, n *html.Node, raw bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		renderNode(w, c, raw)
	}
}
