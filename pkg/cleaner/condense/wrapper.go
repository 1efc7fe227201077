package condense

import (
	"golang.org/x/net/html"
)

// removeDocumentWrapper drops <head>, then unwraps <body> and <html>.
// Fragments without <html> are left alone.
func (p *pipeline) removeDocumentWrapper(doc *html.Node) {
	root := findFirstElement(doc, "html")
	if root == nil {
		return
	}
	if head := findFirstElement(root, "head"); head != nil {
		detach(head)
	}
	if body := findFirstElement(root, "body"); body != nil {
		unwrap(body)
	}
	unwrap(root)
}
