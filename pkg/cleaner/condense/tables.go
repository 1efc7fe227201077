package condense

import (
	"strings"

	"golang.org/x/net/html"
)

// tagSet is a case-insensitive set of tag or attribute names.
type tagSet map[string]struct{}

func newTagSet(names ...string) tagSet {
	s := make(tagSet, len(names))
	for _, name := range names {
		s[strings.ToLower(name)] = struct{}{}
	}
	return s
}

func (s tagSet) has(name string) bool {
	_, ok := s[strings.ToLower(name)]
	return ok
}

var (
	// removeTags are dropped together with everything inside them.
	removeTags = newTagSet(
		"script", "style", "noscript", "template",
		"svg", "canvas", "iframe", "frame", "frameset",
		"object", "embed", "applet", "param",
		"link", "base",
	)

	// unwrapTags are presentational wrappers replaced by their children.
	unwrapTags = newTagSet(
		"span", "div", "font", "center", "small", "big", "u", "tt", "nobr",
		"ins", "mark", "picture", "hgroup",
		"strong", "b", "em", "i", "code", "del", "s", "strike",
	)

	// markdownPreserveTags survive pruning when markdown is on so the
	// rewriter can still convert them.
	markdownPreserveTags = newTagSet(
		"strong", "b", "em", "i", "code", "del", "s", "strike",
	)

	// keepTags are structural or semantic elements kept as markup.
	keepTags = newTagSet(
		"html", "head", "body", "title", "meta",
		"main", "article", "section", "header", "nav", "footer", "aside", "dialog", "address",
		"p", "h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "dl", "dt", "dd", "menu",
		"table", "caption", "thead", "tbody", "tfoot", "tr", "th", "td", "colgroup", "col",
		"blockquote", "q", "cite", "pre", "kbd", "samp", "var", "abbr", "dfn", "time",
		"sub", "sup", "bdi", "bdo", "ruby", "rt", "rp", "data",
		"a", "img", "figure", "figcaption", "video", "audio", "source", "track", "br", "hr",
		"form", "fieldset", "legend", "label", "input", "textarea", "select", "option", "optgroup",
		"button", "output", "progress", "meter", "details", "summary",
	)

	// contentAttributes are the attributes worth keeping on any element.
	contentAttributes = newTagSet(
		"href", "src", "srcset", "sizes", "alt", "title", "lang", "dir",
		"datetime", "cite", "colspan", "rowspan", "headers", "scope", "abbr",
		"type", "value", "name", "content", "property", "charset", "http-equiv",
		"rel", "hreflang", "role", "for", "label", "placeholder",
		"checked", "selected", "disabled", "start", "reversed", "open",
		"controls", "poster", "action", "method",
	)

	chromeTags  = newTagSet("header", "nav", "footer", "aside", "dialog")
	chromeRoles = newTagSet("banner", "navigation", "complementary", "contentinfo", "search")

	// voidTags never have children and are skipped by the empty sweep.
	voidTags = newTagSet(
		"area", "base", "br", "col", "embed", "hr", "img", "input", "keygen",
		"link", "meta", "param", "source", "track", "wbr",
	)

	// headStructuralTags are never removed for being empty.
	headStructuralTags = newTagSet("html", "head", "body")

	// meaningfulVoidTags count as content without any text.
	meaningfulVoidTags = newTagSet("img", "input", "br", "hr", "video", "audio", "source", "track")

	usefulMetaNames = newTagSet("description", "author", "keywords", "robots", "viewport")
)

// wellKnownContentIDs are tried in order when no main region is marked.
var wellKnownContentIDs = []string{"main-content", "content", "main", "page-content", "site-content"}

// isUnwrapTag reports whether tag belongs to the effective unwrap set: the
// unwrap table minus the markdown-preserved tags when markdown is on.
func isUnwrapTag(tag string, markdown bool) bool {
	if !unwrapTags.has(tag) {
		return false
	}
	return !markdown || !markdownPreserveTags.has(tag)
}

// tagName returns the lowercased element name of n.
func tagName(n *html.Node) string {
	return strings.ToLower(n.Data)
}

// getAttr returns the value of the named attribute and whether it exists.
func getAttr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

// isChrome reports whether n is a boilerplate region by tag or ARIA role.
func isChrome(n *html.Node) bool {
	if chromeTags.has(tagName(n)) {
		return true
	}
	role, ok := getAttr(n, "role")
	return ok && chromeRoles.has(strings.TrimSpace(role))
}

// isMainRegion reports whether n is an explicit main content region.
func isMainRegion(n *html.Node) bool {
	if tagName(n) == "main" {
		return true
	}
	role, ok := getAttr(n, "role")
	return ok && strings.EqualFold(strings.TrimSpace(role), "main")
}
