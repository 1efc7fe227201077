package commands

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/condense/internal/output"
	"github.com/jmylchreest/condense/pkg/cleaner"
	"github.com/jmylchreest/condense/pkg/fetcher"
)

func newCompareCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <file|url|->",
		Short: "Compare every cleaner on one input",
		Long: `Compare runs each registered cleaner (noop, the full markdown conversion and
the condense presets) over the same input and reports output size, reduction
and time.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadFetchOptions(v)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			if err := validateOptions(struct {
				Format string `flag:"format" validate:"oneof=text json jsonl yaml"`
			}{format}); err != nil {
				return err
			}
			return runCompare(cmd, args[0], opts, output.Format(format))
		},
	}
	cmd.Flags().String("format", "text", "report format: "+statsFormats())
	return cmd
}

func runCompare(cmd *cobra.Command, source string, opts fetchOptions, format output.Format) error {
	f := opts.newFetcher()
	defer f.Close()

	page, err := fetcher.Load(cmd.Context(), source, cmd.InOrStdin(), f, opts.fetchRequest())
	if err != nil {
		return err
	}
	if err := opts.checkSize(source, len(page.HTML)); err != nil {
		return err
	}

	reports := make([]output.Report, 0, len(cleaner.Names()))
	errs := make(map[string]error)
	for _, name := range cleaner.Names() {
		c, err := cleaner.ByName(name)
		if err != nil {
			return err
		}
		start := time.Now()
		text, err := c.Clean(page.HTML)
		elapsed := time.Since(start)
		if err != nil {
			errs[name] = err
		}
		reports = append(reports, output.NewReport(page.URL, name, nil, nil).Sized(len(page.HTML), len(text), elapsed))
	}

	if format != output.FormatText {
		w, err := output.NewWriter(cmd.OutOrStdout(), format)
		if err != nil {
			return err
		}
		if err := w.WriteAll(reports); err != nil {
			return err
		}
		return w.Close()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Input: %s (%s)\n\n", page.URL, humanize.Bytes(uint64(len(page.HTML))))
	fmt.Fprintf(out, "%-20s %10s %8s %10s\n", "Cleaner", "Output", "Reduce%", "Time")
	fmt.Fprintf(out, "%-20s %10s %8s %10s\n", "-------", "------", "-------", "----")
	for _, r := range reports {
		if err, failed := errs[r.Cleaner]; failed {
			fmt.Fprintf(out, "%-20s %10s %8s %10s (error: %v)\n", r.Cleaner, "ERROR", "-", "-", err)
			continue
		}
		fmt.Fprintf(out, "%-20s %10s %7.1f%% %9.1fms\n",
			r.Cleaner, humanize.Bytes(uint64(r.Stats.OutputBytes)), r.Stats.ReductionPercent, r.Stats.DurationMS)
	}
	return nil
}
