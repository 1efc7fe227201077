package condense

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// stripChrome removes boilerplate regions at any depth. Unless the page marks
// an explicit main region, the document is then narrowed to the first
// fallback content element found.
func (p *pipeline) stripChrome(doc *html.Node) {
	p.removeChrome(doc)

	gq := goquery.NewDocumentFromNode(doc)
	hasMain := gq.Find("*").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return isMainRegion(s.Nodes[0])
	}).Length() > 0
	if hasMain {
		return
	}

	target := findPrimaryContent(gq)
	if target == nil {
		return
	}

	detach(target)
	for c := doc.FirstChild; c != nil; c = doc.FirstChild {
		doc.RemoveChild(c)
	}
	doc.AppendChild(target)
	p.stats.MainContentIsolated = true
}

func (p *pipeline) removeChrome(n *html.Node) {
	for _, c := range childNodes(n) {
		if c.Type == html.ElementNode && isChrome(c) {
			p.stats.ChromeRemovals++
			p.remove(c, tagName(c))
			continue
		}
		p.removeChrome(c)
	}
}

// findPrimaryContent tries, in order: the first article, the target of a
// skip-to-content link, then the well-known content ids. First match wins.
func findPrimaryContent(doc *goquery.Document) *html.Node {
	if article := doc.Find("article").First(); article.Length() > 0 {
		return article.Nodes[0]
	}
	if target := skipLinkTarget(doc); target != nil {
		return target
	}
	for _, id := range wellKnownContentIDs {
		if n := findByID(doc, id); n != nil {
			return n
		}
	}
	return nil
}

// skipLinkTarget resolves the first fragment link whose text mentions "skip".
func skipLinkTarget(doc *goquery.Document) *html.Node {
	link := doc.Find(`a[href^="#"]`).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(strings.ToLower(s.Text()), "skip")
	}).First()
	if link.Length() == 0 {
		return nil
	}
	id := strings.TrimPrefix(link.AttrOr("href", ""), "#")
	if id == "" {
		return nil
	}
	return findByID(doc, id)
}

// findByID compares id values directly so arbitrary ids never have to be
// compiled as selectors.
func findByID(doc *goquery.Document, id string) *html.Node {
	match := doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.AttrOr("id", "") == id
	}).First()
	if match.Length() == 0 {
		return nil
	}
	return match.Nodes[0]
}
