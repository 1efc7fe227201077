package output

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// TextWriter writes a human-readable summary per report.
type TextWriter struct {
	w *bufio.Writer
}

// NewTextWriter creates a text writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w)}
}

// Write writes a single report summary.
func (w *TextWriter) Write(r Report) error {
	s := r.Stats

	fmt.Fprintf(w.w, "%s [%s]\n", r.Source, r.Cleaner)
	fmt.Fprintf(w.w, "  size:     %s -> %s (%.1f%% reduction)\n",
		humanize.Bytes(uint64(s.InputBytes)), humanize.Bytes(uint64(s.OutputBytes)), s.ReductionPercent)
	if s.ElementsKept > 0 || len(s.ElementsRemoved) > 0 {
		fmt.Fprintf(w.w, "  elements: %s kept, %s unwrapped, %s removed\n",
			humanize.Comma(int64(s.ElementsKept)), humanize.Comma(int64(s.ElementsUnwrapped)),
			humanize.Comma(int64(totalRemoved(s.ElementsRemoved))))
	}
	if len(s.ElementsRemoved) > 0 {
		fmt.Fprintf(w.w, "  removed:  %s\n", formatRemoved(s.ElementsRemoved))
	}
	if s.ChromeRemoved > 0 || s.MainContentIsolated {
		fmt.Fprintf(w.w, "  chrome:   %d removed, main content isolated: %t\n", s.ChromeRemoved, s.MainContentIsolated)
	}
	if s.MarkdownRewrites > 0 {
		fmt.Fprintf(w.w, "  markdown: %d rewrites\n", s.MarkdownRewrites)
	}
	if r.Passes > 1 {
		fmt.Fprintf(w.w, "  passes:   %d\n", r.Passes)
	}
	fmt.Fprintf(w.w, "  time:     %.2fms\n", s.DurationMS)
	for _, warning := range r.Warnings {
		fmt.Fprintf(w.w, "  warning:  %s\n", warning)
	}
	return w.w.Flush()
}

// WriteAll writes several report summaries.
func (w *TextWriter) WriteAll(rs []Report) error {
	for _, r := range rs {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the buffer.
func (w *TextWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *TextWriter) Close() error {
	return w.Flush()
}

func totalRemoved(removed map[string]int) int {
	total := 0
	for _, n := range removed {
		total += n
	}
	return total
}

// formatRemoved lists tag counts, most removed first, ties by name.
func formatRemoved(removed map[string]int) string {
	tags := make([]string, 0, len(removed))
	for tag := range removed {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if removed[tags[i]] != removed[tags[j]] {
			return removed[tags[i]] > removed[tags[j]]
		}
		return tags[i] < tags[j]
	})

	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = fmt.Sprintf("%s=%d", tag, removed[tag])
	}
	return strings.Join(parts, " ")
}
