package condense

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Frontmatter is the page metadata read from <head> before the document is
// mutated. Empty fields were not found.
type Frontmatter struct {
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
	Image       string `json:"image,omitempty" yaml:"image,omitempty"`
}

// IsEmpty reports whether no field was captured.
func (f Frontmatter) IsEmpty() bool {
	return f.Title == "" && f.Description == "" && f.URL == "" && f.Image == ""
}

// extractFrontmatter reads title, description, url and image from the first
// <head>. It must run before pruning, which strips the attributes it reads.
func extractFrontmatter(doc *goquery.Document) Frontmatter {
	var fm Frontmatter

	head := doc.Find("head").First()
	if head.Length() == 0 {
		return fm
	}

	fm.Title = strings.TrimSpace(head.Find("title").First().Text())

	head.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !attrEquals(s, "name", "description") {
			return true
		}
		content := strings.TrimSpace(s.AttrOr("content", ""))
		if content == "" {
			return true
		}
		fm.Description = content
		return false
	})

	// Canonical link wins outright; og:url is only consulted without one.
	if canonical := firstWithAttr(head.Find("link"), "rel", "canonical"); canonical != nil {
		fm.URL = strings.TrimSpace(canonical.AttrOr("href", ""))
	}
	if fm.URL == "" {
		if ogURL := firstWithAttr(head.Find("meta"), "property", "og:url"); ogURL != nil {
			fm.URL = strings.TrimSpace(ogURL.AttrOr("content", ""))
		}
	}

	if ogImage := firstWithAttr(head.Find("meta"), "property", "og:image"); ogImage != nil {
		fm.Image = strings.TrimSpace(ogImage.AttrOr("content", ""))
	}

	return fm
}

// firstWithAttr returns the first element of sel whose attr equals value.
func firstWithAttr(sel *goquery.Selection, attr, value string) *goquery.Selection {
	match := sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return attrEquals(s, attr, value)
	}).First()
	if match.Length() == 0 {
		return nil
	}
	return match
}

func attrEquals(s *goquery.Selection, attr, value string) bool {
	v, ok := s.Attr(attr)
	return ok && strings.EqualFold(strings.TrimSpace(v), value)
}

// yamlSpecials force a frontmatter value to be double-quoted.
var yamlSpecials = []string{": ", "\n", `"`, "'", "[", "]", "{", "}", "#", "&", "*", "!", "|", ">", "%", "@", "`"}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func frontmatterValue(v string) string {
	for _, special := range yamlSpecials {
		if strings.Contains(v, special) {
			return `"` + quoteEscaper.Replace(v) + `"`
		}
	}
	return v
}

// String renders the block delimited by --- lines, fields in fixed order.
// It returns "" when nothing was captured.
func (f Frontmatter) String() string {
	if f.IsEmpty() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	fields := []struct{ key, value string }{
		{"title", f.Title},
		{"description", f.Description},
		{"url", f.URL},
		{"image", f.Image},
	}
	for _, field := range fields {
		if field.value == "" {
			continue
		}
		sb.WriteString(field.key)
		sb.WriteString(": ")
		sb.WriteString(frontmatterValue(field.value))
		sb.WriteString("\n")
	}
	sb.WriteString("---")
	return sb.String()
}
