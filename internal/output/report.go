package output

import (
	"time"

	"github.com/jmylchreest/condense/pkg/cleaner/condense"
)

// Report describes one condense run over one input.
type Report struct {
	Source      string                `json:"source" yaml:"source"`
	Cleaner     string                `json:"cleaner" yaml:"cleaner"`
	Passes      int                   `json:"passes,omitempty" yaml:"passes,omitempty"`
	Config      *condense.Config      `json:"config,omitempty" yaml:"config,omitempty"`
	Frontmatter *condense.Frontmatter `json:"frontmatter,omitempty" yaml:"frontmatter,omitempty"`
	Stats       ReportStats           `json:"stats" yaml:"stats"`
	Warnings    []string              `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// ReportStats flattens condense.Stats for serialization. Durations are
// milliseconds so JSON and YAML agree.
type ReportStats struct {
	InputBytes          int            `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes         int            `json:"output_bytes" yaml:"output_bytes"`
	ReductionPercent    float64        `json:"reduction_percent" yaml:"reduction_percent"`
	ElementsRemoved     map[string]int `json:"elements_removed,omitempty" yaml:"elements_removed,omitempty"`
	ElementsUnwrapped   int            `json:"elements_unwrapped" yaml:"elements_unwrapped"`
	ElementsKept        int            `json:"elements_kept" yaml:"elements_kept"`
	AttributesRemoved   int            `json:"attributes_removed" yaml:"attributes_removed"`
	HiddenRemoved       int            `json:"hidden_removed" yaml:"hidden_removed"`
	EmptyRemoved        int            `json:"empty_removed" yaml:"empty_removed"`
	ChromeRemoved       int            `json:"chrome_removed" yaml:"chrome_removed"`
	MainContentIsolated bool           `json:"main_content_isolated" yaml:"main_content_isolated"`
	MarkdownRewrites    int            `json:"markdown_rewrites" yaml:"markdown_rewrites"`
	DurationMS          float64        `json:"duration_ms" yaml:"duration_ms"`
}

// NewReport builds a report for a condense result. Baseline cleaners without
// stats pass a nil result and fill sizes through Sized.
func NewReport(source, cleaner string, cfg *condense.Config, result *condense.Result) Report {
	r := Report{
		Source:  source,
		Cleaner: cleaner,
		Config:  cfg,
	}
	if result == nil {
		return r
	}

	if !result.Frontmatter.IsEmpty() {
		fm := result.Frontmatter
		r.Frontmatter = &fm
	}
	for _, w := range result.Warnings {
		r.Warnings = append(r.Warnings, w.String())
	}

	s := result.Stats
	if s == nil {
		return r
	}
	r.Stats = ReportStats{
		InputBytes:          s.InputBytes,
		OutputBytes:         s.OutputBytes,
		ReductionPercent:    s.ReductionPercent(),
		ElementsUnwrapped:   s.ElementsUnwrapped,
		ElementsKept:        s.ElementsKept,
		AttributesRemoved:   s.AttributesRemoved,
		HiddenRemoved:       s.HiddenElementRemovals,
		EmptyRemoved:        s.EmptyElementRemovals,
		ChromeRemoved:       s.ChromeRemovals,
		MainContentIsolated: s.MainContentIsolated,
		MarkdownRewrites:    s.MarkdownRewrites,
		DurationMS:          milliseconds(s.TotalDuration),
	}
	if len(s.ElementsRemoved) > 0 {
		r.Stats.ElementsRemoved = make(map[string]int, len(s.ElementsRemoved))
		for tag, n := range s.ElementsRemoved {
			r.Stats.ElementsRemoved[tag] = n
		}
	}
	return r
}

// Sized records input and output sizes and the elapsed time for cleaners that
// do not report their own stats.
func (r Report) Sized(inputBytes, outputBytes int, elapsed time.Duration) Report {
	r.Stats.InputBytes = inputBytes
	r.Stats.OutputBytes = outputBytes
	if inputBytes > 0 {
		r.Stats.ReductionPercent = float64(inputBytes-outputBytes) / float64(inputBytes) * 100
	}
	r.Stats.DurationMS = milliseconds(elapsed)
	return r
}

func milliseconds(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
