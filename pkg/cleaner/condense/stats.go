package condense

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Stats captures what a condense call did to the document.
type Stats struct {
	// Size metrics
	InputBytes  int `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int `json:"output_bytes" yaml:"output_bytes"`

	// Element counts
	ElementsRemoved   map[string]int `json:"elements_removed" yaml:"elements_removed"` // tag -> count
	ElementsUnwrapped int            `json:"elements_unwrapped" yaml:"elements_unwrapped"`
	ElementsKept      int            `json:"elements_kept" yaml:"elements_kept"`

	// Attribute cleaning
	AttributesRemoved int `json:"attributes_removed" yaml:"attributes_removed"`

	// Removal reasons
	HiddenElementRemovals int `json:"hidden_element_removals" yaml:"hidden_element_removals"`
	EmptyElementRemovals  int `json:"empty_element_removals" yaml:"empty_element_removals"`
	ChromeRemovals        int `json:"chrome_removals" yaml:"chrome_removals"`

	// MainContentIsolated is set when the chrome pass replaced the document
	// with a single fallback content element.
	MainContentIsolated bool `json:"main_content_isolated" yaml:"main_content_isolated"`

	// MarkdownRewrites counts elements collapsed into markdown text.
	MarkdownRewrites int `json:"markdown_rewrites" yaml:"markdown_rewrites"`

	// Timing
	ParseDuration     time.Duration `json:"parse_duration_ns" yaml:"parse_duration_ns"`
	TransformDuration time.Duration `json:"transform_duration_ns" yaml:"transform_duration_ns"`
	OutputDuration    time.Duration `json:"output_duration_ns" yaml:"output_duration_ns"`
	TotalDuration     time.Duration `json:"total_duration_ns" yaml:"total_duration_ns"`
}

// NewStats creates a new Stats instance with initialized maps.
func NewStats() *Stats {
	return &Stats{
		ElementsRemoved: make(map[string]int),
	}
}

// ReductionPercent returns the percentage reduction in size.
func (s *Stats) ReductionPercent() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.InputBytes-s.OutputBytes) / float64(s.InputBytes) * 100
}

// TotalElementsRemoved returns the sum of all removed elements.
func (s *Stats) TotalElementsRemoved() int {
	total := 0
	for _, count := range s.ElementsRemoved {
		total += count
	}
	return total
}

// RecordRemoval records that an element was removed.
func (s *Stats) RecordRemoval(tag string) {
	s.ElementsRemoved[strings.ToLower(tag)]++
}

// String returns a human-readable summary of the stats.
func (s *Stats) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Size: %d -> %d bytes (%.1f%% reduction)\n",
		s.InputBytes, s.OutputBytes, s.ReductionPercent()))

	sb.WriteString(fmt.Sprintf("Elements: %d removed, %d unwrapped, %d kept\n",
		s.TotalElementsRemoved(), s.ElementsUnwrapped, s.ElementsKept))

	if len(s.ElementsRemoved) > 0 {
		tags := make([]string, 0, len(s.ElementsRemoved))
		for tag := range s.ElementsRemoved {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		parts := make([]string, 0, len(tags))
		for _, tag := range tags {
			parts = append(parts, fmt.Sprintf("%s=%d", tag, s.ElementsRemoved[tag]))
		}
		sb.WriteString("Removed by tag: ")
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString("\n")
	}

	if s.AttributesRemoved > 0 {
		sb.WriteString(fmt.Sprintf("Attributes removed: %d\n", s.AttributesRemoved))
	}

	if s.HiddenElementRemovals > 0 {
		sb.WriteString(fmt.Sprintf("Hidden element removals: %d\n", s.HiddenElementRemovals))
	}

	if s.EmptyElementRemovals > 0 {
		sb.WriteString(fmt.Sprintf("Empty element removals: %d\n", s.EmptyElementRemovals))
	}

	if s.ChromeRemovals > 0 || s.MainContentIsolated {
		sb.WriteString(fmt.Sprintf("Chrome removals: %d (main content isolated: %t)\n",
			s.ChromeRemovals, s.MainContentIsolated))
	}

	if s.MarkdownRewrites > 0 {
		sb.WriteString(fmt.Sprintf("Markdown rewrites: %d\n", s.MarkdownRewrites))
	}

	sb.WriteString(fmt.Sprintf("Timing: parse=%v, transform=%v, output=%v, total=%v\n",
		s.ParseDuration.Round(time.Millisecond),
		s.TransformDuration.Round(time.Millisecond),
		s.OutputDuration.Round(time.Millisecond),
		s.TotalDuration.Round(time.Millisecond)))

	return sb.String()
}

// Warning represents a non-fatal issue encountered during condensing.
type Warning struct {
	Phase   string `json:"phase" yaml:"phase"`     // "parse", "output"
	Message string `json:"message" yaml:"message"` // Human-readable description
	Context string `json:"context" yaml:"context"` // Underlying error text
}

// String returns a formatted warning message.
func (w Warning) String() string {
	if w.Context != "" {
		return fmt.Sprintf("[%s] %s (context: %s)", w.Phase, w.Message, w.Context)
	}
	return fmt.Sprintf("[%s] %s", w.Phase, w.Message)
}

// Result contains the output of a condense call.
type Result struct {
	// Content is the condensed output. On parse errors, this contains the original input.
	Content string `json:"content" yaml:"content"`

	// Frontmatter holds the head metadata captured before any mutation.
	Frontmatter Frontmatter `json:"frontmatter" yaml:"frontmatter"`

	// Stats contains metrics about what was done.
	Stats *Stats `json:"stats" yaml:"stats"`

	// Warnings contains non-fatal issues encountered.
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// AddWarning adds a warning to the result.
func (r *Result) AddWarning(phase, message, context string) {
	r.Warnings = append(r.Warnings, Warning{
		Phase:   phase,
		Message: message,
		Context: context,
	})
}

// HasWarnings returns true if any warnings were recorded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}
