package condense

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a\n\tb", "a b"},
		{"a    b", "a b"},
		{"a \n  b", "a b"},
		{"\r\n", " "},
		{"x", "x"},
	}

	for _, tt := range tests {
		doc := &html.Node{Type: html.DocumentNode}
		doc.AppendChild(&html.Node{Type: html.TextNode, Data: tt.in})
		normalizeWhitespace(doc)
		if got := doc.FirstChild.Data; got != tt.want {
			t.Errorf("normalizeWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanTextNodes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"   ", " "},
		{" ", " "},
		{"", ""},
		{" a ", " a "},
		{"  ", " "},
	}

	for _, tt := range tests {
		doc := &html.Node{Type: html.DocumentNode}
		doc.AppendChild(&html.Node{Type: html.TextNode, Data: tt.in})
		cleanTextNodes(doc)
		if got := doc.FirstChild.Data; got != tt.want {
			t.Errorf("cleanTextNodes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "void elements self-close",
			html: `<p>a<br>b</p><hr>`,
			want: `<html><head></head><body><p>a<br/>b</p><hr/></body></html>`,
		},
		{
			name: "text escapes only markup characters",
			html: `<p>"q" 'a' &lt;b&gt; &amp;</p>`,
			want: `<html><head></head><body><p>"q" 'a' &lt;b&gt; &amp;</p></body></html>`,
		},
		{
			name: "attribute quotes are escaped",
			html: `<a title='say "hi"' href="/a?b=1&amp;c=2">x</a>`,
			want: `<html><head></head><body><a title="say &quot;hi&quot;" href="/a?b=1&amp;c=2">x</a></body></html>`,
		},
		{
			name: "raw text is not escaped",
			html: `<script>if (a < b && c) {}</script>`,
			want: `<html><head><script>if (a < b && c) {}</script></head><body></body></html>`,
		},
		{
			name: "doctype",
			html: `<!DOCTYPE html><p>x</p>`,
			want: `<!DOCTYPE html><html><head></head><body><p>x</p></body></html>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := html.Parse(strings.NewReader(tt.html))
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			var sb strings.Builder
			if err := render(&sb, doc); err != nil {
				t.Fatalf("render failed: %v", err)
			}
			if got := sb.String(); got != tt.want {
				t.Errorf("render() = %q, want %q", got, tt.want)
			}
		})
	}
}
