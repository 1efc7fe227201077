package condense

import (
	"golang.org/x/net/html"
)

// pipeline carries the per-call state shared by the transformation passes.
type pipeline struct {
	cfg   Config
	stats *Stats
}

func (p *pipeline) remove(n *html.Node, tag string) {
	p.stats.RecordRemoval(tag)
	detach(n)
}

// prune decides n bottom-up: its children are fully processed before n is
// kept, unwrapped or removed.
func (p *pipeline) prune(n *html.Node) {
	switch n.Type {
	case html.CommentNode:
		p.remove(n, "#comment")
		return
	case html.DocumentNode:
		for _, c := range childNodes(n) {
			p.prune(c)
		}
		return
	case html.ElementNode:
	default:
		return
	}

	tag := tagName(n)

	if removeTags.has(tag) {
		if tag == "link" && isAlternateLink(n) {
			p.stats.AttributesRemoved += sanitizeAttributes(n, p.cfg)
			return
		}
		p.remove(n, tag)
		return
	}

	if isHidden(n, p.cfg) {
		p.stats.HiddenElementRemovals++
		p.remove(n, tag)
		return
	}

	if tag == "meta" && !isUsefulMeta(n) {
		p.remove(n, tag)
		return
	}

	for _, c := range childNodes(n) {
		p.prune(c)
	}
	p.stats.AttributesRemoved += sanitizeAttributes(n, p.cfg)

	if keepTags.has(tag) {
		return
	}

	// After sanitizing, any remaining attribute is one worth keeping, so an
	// element with attributes is never unwrapped.
	if isUnwrapTag(tag, p.cfg.Markdown) && len(n.Attr) == 0 {
		p.stats.ElementsUnwrapped++
		unwrap(n)
		return
	}

	if !isMeaningful(n) {
		p.remove(n, tag)
	}
	// Unknown tags with real content are kept as they are.
}

// sweepEmpty removes elements left without meaningful content once their
// children were pruned. Void and document-structure elements are exempt.
func (p *pipeline) sweepEmpty(n *html.Node) {
	for _, c := range childNodes(n) {
		p.sweepEmpty(c)
	}
	if n.Type != html.ElementNode {
		return
	}
	tag := tagName(n)
	if voidTags.has(tag) || headStructuralTags.has(tag) {
		return
	}
	if !isMeaningful(n) {
		p.stats.EmptyElementRemovals++
		p.remove(n, tag)
	}
}
