package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/condense/internal/logger"
	"github.com/jmylchreest/condense/internal/output"
	"github.com/jmylchreest/condense/pkg/cleaner"
	"github.com/jmylchreest/condense/pkg/fetcher"
)

func newCleanCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [file|url|-]...",
		Short: "Condense HTML from files, URLs or stdin",
		Long: `Clean condenses each source in turn and writes the results to stdout or
--output, separated by a blank line. With no source, stdin is read.

Examples:
  condense clean page.html
  condense clean --markdown=false --keep-classes page.html
  condense clean --core --fetch-mode dynamic https://example.com/app
  condense clean --passes 2 --stats -o out.txt a.html b.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadCleanOptions(v)
			if err != nil {
				return err
			}
			return runClean(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.Bool("keep-data-attributes", false, "keep data-* attributes")
	flags.Bool("keep-ids", true, "keep id attributes")
	flags.Bool("keep-classes", false, "keep class attributes")
	flags.Bool("keep-aria-hidden", false, `keep elements marked aria-hidden="true"`)
	flags.Bool("markdown", true, "rewrite emphasis, links, images, code, headings, quotes and lists as markdown")
	flags.Bool("core", false, "strip page chrome and isolate the main content")
	flags.Bool("raw", false, "skip condensing and write the fetched HTML as is")
	flags.Int("passes", 1, "number of condense passes; all but the last run without markdown")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.Bool("stats", false, "write a stats report to stderr")
	flags.String("stats-format", "text", "stats report format: "+statsFormats())

	bindFlags(v, flags, map[string]string{
		"keep_data_attributes": "keep-data-attributes",
		"keep_ids":             "keep-ids",
		"keep_classes":         "keep-classes",
		"keep_aria_hidden":     "keep-aria-hidden",
		"markdown":             "markdown",
		"core":                 "core",
		"raw":                  "raw",
		"passes":               "passes",
		"output":               "output",
		"stats":                "stats",
		"stats_format":         "stats-format",
	})
	return cmd
}

func runClean(cmd *cobra.Command, sources []string, opts cleanOptions) error {
	if len(sources) == 0 {
		sources = []string{fetcher.StdinSource}
	}

	cfg := opts.condenseConfig()
	var c cleaner.Cleaner = cleaner.NewCondense(cfg, opts.Passes)
	if opts.Raw {
		c = cleaner.NewNoop()
	}
	logger.DebugContext(cmd.Context(), "clean starting", "sources", len(sources), "cleaner", c.Name(), "config", *cfg)

	f := opts.newFetcher()
	defer f.Close()

	out, closeOut, err := openOutput(cmd, opts.Output)
	if err != nil {
		return err
	}
	defer closeOut()

	bw := bufio.NewWriter(out)
	reports := make([]output.Report, 0, len(sources))
	for i, source := range sources {
		page, err := fetcher.Load(cmd.Context(), source, cmd.InOrStdin(), f, opts.fetchRequest())
		if err != nil {
			return err
		}
		if err := opts.checkSize(source, len(page.HTML)); err != nil {
			return err
		}

		text, report, err := condenseOne(c, page.HTML)
		if err != nil {
			return fmt.Errorf("clean %s: %w", source, err)
		}
		report.Source = page.URL
		report.Passes = opts.Passes
		if !opts.Raw {
			report.Config = cfg
		}
		reports = append(reports, report)

		if i > 0 {
			bw.WriteString("\n")
		}
		bw.WriteString(text)
		bw.WriteString("\n")

		log := logger.With("source", page.URL)
		for _, w := range report.Warnings {
			log.WarnContext(cmd.Context(), "condense warning", "warning", w)
		}
		log.InfoContext(cmd.Context(), "condensed",
			"input_bytes", report.Stats.InputBytes, "output_bytes", report.Stats.OutputBytes)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if !opts.Stats {
		return nil
	}
	w, err := output.NewWriter(cmd.ErrOrStderr(), output.Format(opts.StatsFormat))
	if err != nil {
		return err
	}
	if err := w.WriteAll(reports); err != nil {
		return err
	}
	return w.Close()
}

// condenseOne runs c over html, taking detailed stats when c reports them.
func condenseOne(c cleaner.Cleaner, html string) (string, output.Report, error) {
	if sc, ok := c.(cleaner.StatsCleaner); ok {
		result := sc.CleanWithStats(html)
		return result.Content, output.NewReport("", c.Name(), nil, result), nil
	}

	start := time.Now()
	text, err := c.Clean(html)
	if err != nil {
		return "", output.Report{}, err
	}
	report := output.NewReport("", c.Name(), nil, nil).Sized(len(html), len(text), time.Since(start))
	return text, report, nil
}

// openOutput returns the command's stdout, or the named file.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(path) //#nosec G304 -- CLI tool writes to user-specified output file
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			logger.ErrorContext(cmd.Context(), "closing output failed", "path", path, "error", err)
		}
	}, nil
}
