package condense

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// eventHandlerPattern matches onclick, onload and the rest.
var eventHandlerPattern = regexp.MustCompile(`(?i)^on.+`)

// sanitizeAttributes rebuilds n's attribute list, dropping every attribute
// keepAttribute rejects. It returns the number of attributes removed.
func sanitizeAttributes(n *html.Node, cfg Config) int {
	kept := n.Attr[:0]
	removed := 0
	for _, a := range n.Attr {
		if keepAttribute(a.Key, cfg) {
			kept = append(kept, a)
			continue
		}
		removed++
	}
	n.Attr = kept
	return removed
}

// keepAttribute decides a single attribute on its own name.
func keepAttribute(key string, cfg Config) bool {
	name := strings.ToLower(key)
	switch {
	case eventHandlerPattern.MatchString(name):
		return false
	case name == "style":
		return false
	case name == "class":
		return cfg.KeepClasses
	case name == "id":
		return cfg.KeepIDs
	case strings.HasPrefix(name, "data-"):
		return cfg.KeepDataAttributes
	}
	return contentAttributes.has(name)
}

// isUsefulMeta reports whether a meta element carries metadata worth keeping.
func isUsefulMeta(n *html.Node) bool {
	if name, ok := getAttr(n, "name"); ok {
		name = strings.ToLower(name)
		if usefulMetaNames.has(name) || strings.HasPrefix(name, "twitter:") {
			return true
		}
	}
	if prop, ok := getAttr(n, "property"); ok && strings.HasPrefix(strings.ToLower(prop), "og:") {
		return true
	}
	if _, ok := getAttr(n, "charset"); ok {
		return true
	}
	equiv, ok := getAttr(n, "http-equiv")
	return ok && strings.EqualFold(equiv, "content-type")
}

// isAlternateLink reports whether a link element is rel=canonical or
// rel=alternate, the only links kept.
func isAlternateLink(n *html.Node) bool {
	rel, ok := getAttr(n, "rel")
	if !ok {
		return false
	}
	rel = strings.ToLower(strings.TrimSpace(rel))
	return rel == "canonical" || rel == "alternate"
}
