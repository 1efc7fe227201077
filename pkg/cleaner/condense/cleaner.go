package condense

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jmylchreest/condense/internal/logger"
)

// Cleaner condenses HTML for agent consumption.
// It implements the cleaner.Cleaner interface and is safe for concurrent use:
// every call owns its own document tree.
type Cleaner struct {
	config Config
}

// New creates a new Cleaner with the given configuration.
// If config is nil, DefaultConfig() is used. The configuration is copied.
func New(config *Config) *Cleaner {
	if config == nil {
		config = DefaultConfig()
	}
	return &Cleaner{
		config: *config,
	}
}

// Name returns the cleaner name for logging.
func (c *Cleaner) Name() string {
	return "condense"
}

// Config returns a copy of the cleaner's configuration.
func (c *Cleaner) Config() Config {
	return c.config
}

// Condense is shorthand for New(config).Clean(input) without the error.
func Condense(input string, config *Config) string {
	return New(config).CleanWithStats(input).Content
}

// Clean condenses the input HTML.
// This method implements the cleaner.Cleaner interface.
func (c *Cleaner) Clean(input string) (string, error) {
	result := c.CleanWithStats(input)
	// Parse failures degrade to the original content; they are reported as
	// warnings rather than errors.
	return result.Content, nil
}

var (
	doctypePattern    = regexp.MustCompile(`(?i)<!doctype[^>]*>`)
	newlineRunPattern = regexp.MustCompile(`\n{3,}`)
)

// CleanWithStats runs the full pipeline once and returns detailed stats.
func (c *Cleaner) CleanWithStats(input string) *Result {
	startTime := time.Now()
	result := &Result{
		Stats: NewStats(),
	}
	result.Stats.InputBytes = len(input)

	// Parse HTML
	parseStart := time.Now()
	doc, err := html.Parse(strings.NewReader(input))
	result.Stats.ParseDuration = time.Since(parseStart)

	if err != nil {
		// Graceful degradation: return original content with warning
		result.Content = input
		result.AddWarning("parse", "HTML parse failed, returning original", err.Error())
		result.Stats.OutputBytes = len(input)
		result.Stats.TotalDuration = time.Since(startTime)
		logger.Warn("condense parse failed", "error", err)
		return result
	}

	// Head metadata is read before any pass deletes the attributes it needs.
	result.Frontmatter = extractFrontmatter(goquery.NewDocumentFromNode(doc))

	transformStart := time.Now()
	c.transform(doc, result.Stats)
	result.Stats.TransformDuration = time.Since(transformStart)

	outputStart := time.Now()
	output, err := c.generateOutput(doc, result.Frontmatter)
	result.Stats.OutputDuration = time.Since(outputStart)

	if err != nil {
		result.Content = input
		result.AddWarning("output", "Output generation failed, returning original", err.Error())
		result.Stats.OutputBytes = len(input)
	} else {
		result.Content = output
		result.Stats.OutputBytes = len(output)
	}

	result.Stats.TotalDuration = time.Since(startTime)
	logger.Debug("condense complete",
		"input_bytes", result.Stats.InputBytes,
		"output_bytes", result.Stats.OutputBytes,
		"removed", result.Stats.TotalElementsRemoved(),
		"duration", result.Stats.TotalDuration)

	return result
}

// transform applies every pass to the document, in order. Each pass leaves
// parent and sibling links consistent for the next one.
func (c *Cleaner) transform(doc *html.Node, stats *Stats) {
	p := &pipeline{cfg: c.config, stats: stats}

	for _, n := range childNodes(doc) {
		p.prune(n)
	}
	p.sweepEmpty(doc)
	logger.Debug("condense pass complete", "pass", "prune")

	p.removeDocumentWrapper(doc)

	if c.config.Core {
		p.stripChrome(doc)
		logger.Debug("condense pass complete", "pass", "chrome",
			"removed", stats.ChromeRemovals, "isolated", stats.MainContentIsolated)
	}

	normalizeWhitespace(doc)
	cleanTextNodes(doc)

	if c.config.Markdown {
		p.rewriteMarkdown(doc)
		logger.Debug("condense pass complete", "pass", "markdown", "rewrites", stats.MarkdownRewrites)
	}

	countElements(doc, stats)
}

func countElements(n *html.Node, stats *Stats) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			stats.ElementsKept++
		}
		countElements(c, stats)
	}
}

// generateOutput serializes the tree and applies the text post-processing.
func (c *Cleaner) generateOutput(doc *html.Node, fm Frontmatter) (string, error) {
	var sb strings.Builder
	if err := render(&sb, doc); err != nil {
		return "", err
	}
	out := sb.String()

	// The serializer escapes the blockquote marker.
	if c.config.Markdown {
		out = strings.ReplaceAll(out, "&gt; ", "> ")
	}
	out = doctypePattern.ReplaceAllString(out, "")
	out = newlineRunPattern.ReplaceAllString(out, "\n")
	out = strings.TrimSpace(out)

	if block := fm.String(); block != "" {
		out = block + "\n" + out
	}
	return out, nil
}
