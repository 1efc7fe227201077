package condense

import (
	"strings"

	"golang.org/x/net/html"
)

// hiddenStyleMarkers are matched as plain substrings of the raw style text.
// Reformatted declarations such as "display : none" are not detected.
var hiddenStyleMarkers = []string{
	"display:none",
	"display: none",
	"visibility:hidden",
	"visibility: hidden",
}

// isHidden reports whether n is hidden by attribute or inline style.
func isHidden(n *html.Node, cfg Config) bool {
	if _, ok := getAttr(n, "hidden"); ok {
		return true
	}
	if !cfg.KeepAriaHidden {
		if v, ok := getAttr(n, "aria-hidden"); ok && v == "true" {
			return true
		}
	}
	style, ok := getAttr(n, "style")
	if !ok {
		return false
	}
	for _, marker := range hiddenStyleMarkers {
		if strings.Contains(style, marker) {
			return true
		}
	}
	return false
}
