package condense

import (
	"strings"

	"golang.org/x/net/html"
)

// childNodes returns a snapshot of n's children. Passes iterate the snapshot
// so they can remove or splice children without skipping siblings.
func childNodes(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// detach removes n from its parent, if it has one.
func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// unwrap replaces n with its children, in order. n's attributes are lost.
func unwrap(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
	}
	parent.RemoveChild(n)
}

// replaceWithText swaps n for a text node holding text.
func replaceWithText(n *html.Node, text string) {
	parent := n.Parent
	if parent == nil {
		return
	}
	parent.InsertBefore(&html.Node{Type: html.TextNode, Data: text}, n)
	parent.RemoveChild(n)
}

// findFirstElement returns the first element named tag below n in document order.
func findFirstElement(n *html.Node, tag string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && strings.EqualFold(c.Data, tag) {
			return c
		}
		if found := findFirstElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// eachTextNode calls fn for every text node below n.
func eachTextNode(n *html.Node, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			fn(c)
			continue
		}
		eachTextNode(c, fn)
	}
}

// textContent concatenates the text of every text node below n.
func textContent(n *html.Node) string {
	var sb strings.Builder
	eachTextNode(n, func(t *html.Node) {
		sb.WriteString(t.Data)
	})
	return sb.String()
}

// isMeaningful reports whether n carries content: non-blank text, an
// intrinsically meaningful void element, or any meaningful descendant.
func isMeaningful(n *html.Node) bool {
	switch n.Type {
	case html.TextNode:
		return strings.TrimSpace(n.Data) != ""
	case html.ElementNode:
		if meaningfulVoidTags.has(tagName(n)) {
			return true
		}
		return hasMeaningfulChild(n)
	}
	return false
}

func hasMeaningfulChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isMeaningful(c) {
			return true
		}
	}
	return false
}
