package condense

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("nil config uses default", func(t *testing.T) {
		c := New(nil)
		if c == nil {
			t.Fatal("expected non-nil cleaner")
		}
		cfg := c.Config()
		if !cfg.KeepIDs {
			t.Error("expected KeepIDs to be true by default")
		}
		if !cfg.Markdown {
			t.Error("expected Markdown to be true by default")
		}
	})

	t.Run("config is copied", func(t *testing.T) {
		cfg := DefaultConfig()
		c := New(cfg)
		cfg.Markdown = false
		if !c.Config().Markdown {
			t.Error("expected cleaner config to be unaffected by later changes")
		}
	})
}

func TestName(t *testing.T) {
	c := New(nil)
	if c.Name() != "condense" {
		t.Errorf("expected name 'condense', got '%s'", c.Name())
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		config   *Config
		contains []string
		excludes []string
	}{
		{
			name:     "removes script tags",
			html:     `<div><p>Hello</p><script>alert(1)</script></div>`,
			contains: []string{"Hello"},
			excludes: []string{"script", "alert"},
		},
		{
			name: "removes non-content elements",
			html: `<html><head><style>.a{color:red}</style></head><body>
				<noscript>Enable JS</noscript><svg><path d="M0 0"></path></svg>
				<iframe src="ad.html"></iframe><template><p>tpl</p></template>
				<!-- tracking comment --><p>Body</p></body></html>`,
			contains: []string{"Body"},
			excludes: []string{"<style", "<noscript", "<svg", "<iframe", "<template", "<!--", "tracking comment", "Enable JS", "ad.html"},
		},
		{
			name:     "strips event handlers and inline styles",
			html:     `<p onclick="steal()" onMouseOver="x()" style="color:red">Text</p>`,
			config:   PresetMarkup(),
			contains: []string{"<p>Text</p>"},
			excludes: []string{"onclick", "onmouseover", "style=", "steal"},
		},
		{
			name:     "removes hidden elements",
			html:     `<div hidden>Hidden</div><p style="display:none">Gone</p><p>Visible</p>`,
			contains: []string{"Visible"},
			excludes: []string{"Hidden", "Gone"},
		},
		{
			name:     "keeps unknown elements with content",
			html:     `<custom-card>Card text</custom-card>`,
			config:   PresetMarkup(),
			contains: []string{"<custom-card>Card text</custom-card>"},
		},
		{
			name:     "core removes chrome",
			html:     `<header><nav><a href="/">Home</a></nav></header><main><p>Content</p></main>`,
			config:   PresetCore(),
			contains: []string{"Content"},
			excludes: []string{"<nav", "<header", "Home"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.config)
			result, err := c.Clean(tt.html)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for _, s := range tt.contains {
				if !strings.Contains(result, s) {
					t.Errorf("expected output to contain %q, got: %s", s, result)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(result, s) {
					t.Errorf("expected output to not contain %q, got: %s", s, result)
				}
			}
		})
	}
}

func TestCondense_Exact(t *testing.T) {
	tests := []struct {
		name   string
		html   string
		config *Config
		want   string
	}{
		{
			name:   "link keeps href and drops class",
			html:   `<a href="/about" class="x">About</a>`,
			config: PresetMarkup(),
			want:   `<a href="/about">About</a>`,
		},
		{
			name: "image becomes markdown",
			html: `<img src="/p.jpg" alt="A photo">`,
			want: `![A photo](/p.jpg)`,
		},
		{
			name: "unordered list becomes markdown",
			html: `<ul><li>First</li><li>Second</li></ul>`,
			want: "- First\n- Second",
		},
		{
			name: "title with colon is quoted",
			html: `<html><head><title>Part 1: The Beginning</title></head><body><p>Hi</p></body></html>`,
			want: "---\ntitle: \"Part 1: The Beginning\"\n---\n<p>Hi</p>",
		},
		{
			name:   "main region is authoritative",
			html:   `<header><nav><a href="/">Home</a></nav></header><main><p>Content</p></main>`,
			config: PresetCore(),
			want:   `<main><p>Content</p></main>`,
		},
		{
			name: "doctype is stripped",
			html: `<!DOCTYPE html><html><body><p>Doc</p></body></html>`,
			want: `<p>Doc</p>`,
		},
		{
			name: "quotes are not entity encoded",
			html: `<p>It's "fine" &amp; safe</p>`,
			want: `<p>It's "fine" &amp; safe</p>`,
		},
		{
			name: "runs of three or more newlines collapse",
			html: `<p>x<br><br><br>y</p>`,
			want: "<p>x\ny</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Condense(tt.html, tt.config)
			if got != tt.want {
				t.Errorf("Condense() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCondense_KeepFlags(t *testing.T) {
	html := `<p class="c" id="i" data-x="1">T</p>`

	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"defaults keep id only", func(*Config) {}, `<p id="i">T</p>`},
		{"keep classes", func(c *Config) { c.KeepClasses = true }, `<p class="c" id="i">T</p>`},
		{"drop ids", func(c *Config) { c.KeepIDs = false }, `<p>T</p>`},
		{"keep data attributes", func(c *Config) { c.KeepDataAttributes = true }, `<p id="i" data-x="1">T</p>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := PresetMarkup()
			tt.modify(cfg)
			if got := Condense(html, cfg); got != tt.want {
				t.Errorf("Condense() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCondense_Idempotent(t *testing.T) {
	inputs := []string{
		`<html><body><div class="x"><p>Hello <b>world</b></p><ul><li>a</li></ul></div></body></html>`,
		`<section id="s"><h2>Head</h2><p>Para <a href="/x" onclick="y()">link</a></p></section>`,
	}

	for _, input := range inputs {
		first := Condense(input, PresetMarkup())
		second := Condense(first, PresetMarkup())
		if second != first {
			t.Errorf("second pass changed output:\nfirst:  %q\nsecond: %q", first, second)
		}
	}
}

func TestCondense_CoreNeverLeavesChrome(t *testing.T) {
	html := `<header>Site</header>
		<div role="banner">Banner</div>
		<nav>Menu</nav>
		<section role="search"><input type="search"></section>
		<main>
			<p>Story</p>
			<aside>Related</aside>
			<div role="complementary">Extra</div>
			<dialog open>Cookies</dialog>
		</main>
		<div role="contentinfo">Legal</div>
		<footer>Footer</footer>`

	for _, markdown := range []bool{true, false} {
		cfg := PresetCore()
		cfg.Markdown = markdown
		got := Condense(html, cfg)

		if !strings.Contains(got, "Story") {
			t.Errorf("markdown=%v: expected main content, got %q", markdown, got)
		}
		for _, banned := range []string{"<header", "<nav", "<footer", "<aside", "<dialog",
			`role="banner"`, `role="navigation"`, `role="complementary"`, `role="contentinfo"`, `role="search"`} {
			if strings.Contains(got, banned) {
				t.Errorf("markdown=%v: expected no %q, got %q", markdown, banned, got)
			}
		}
	}
}

func TestCleanWithStats(t *testing.T) {
	t.Run("returns stats with input/output bytes", func(t *testing.T) {
		html := `<html><body><script>x</script><p>Hello</p></body></html>`
		result := New(nil).CleanWithStats(html)

		if result.Stats == nil {
			t.Fatal("expected stats to be non-nil")
		}
		if result.Stats.InputBytes != len(html) {
			t.Errorf("expected input bytes %d, got %d", len(html), result.Stats.InputBytes)
		}
		if result.Stats.OutputBytes != len(result.Content) {
			t.Errorf("expected output bytes %d, got %d", len(result.Content), result.Stats.OutputBytes)
		}
		if result.Stats.OutputBytes >= result.Stats.InputBytes {
			t.Errorf("expected output bytes < input bytes")
		}
	})

	t.Run("tracks elements removed", func(t *testing.T) {
		html := `<html><body><script>x</script><script>y</script><p>Keep</p></body></html>`
		result := New(nil).CleanWithStats(html)

		if result.Stats.ElementsRemoved["script"] != 2 {
			t.Errorf("expected 2 scripts removed, got %d", result.Stats.ElementsRemoved["script"])
		}
	})

	t.Run("tracks unwraps and markdown rewrites", func(t *testing.T) {
		html := `<div><span>a</span><p><strong>b</strong></p></div>`
		result := New(nil).CleanWithStats(html)

		if result.Stats.ElementsUnwrapped != 2 {
			t.Errorf("expected 2 unwrapped elements, got %d", result.Stats.ElementsUnwrapped)
		}
		if result.Stats.MarkdownRewrites != 1 {
			t.Errorf("expected 1 markdown rewrite, got %d", result.Stats.MarkdownRewrites)
		}
	})

	t.Run("exposes frontmatter", func(t *testing.T) {
		html := `<html><head><title>T</title><meta property="og:image" content="/i.png"></head><body><p>b</p></body></html>`
		result := New(nil).CleanWithStats(html)

		if result.Frontmatter.Title != "T" {
			t.Errorf("expected title 'T', got %q", result.Frontmatter.Title)
		}
		if result.Frontmatter.Image != "/i.png" {
			t.Errorf("expected image '/i.png', got %q", result.Frontmatter.Image)
		}
		if result.HasWarnings() {
			t.Errorf("expected no warnings, got %v", result.Warnings)
		}
	})
}
