package commands

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jmylchreest/condense/internal/output"
	"github.com/jmylchreest/condense/pkg/cleaner/condense"
	"github.com/jmylchreest/condense/pkg/fetcher"
)

// fetchOptions are the persistent fetch settings shared by clean and compare.
type fetchOptions struct {
	Mode         string        `flag:"fetch-mode" validate:"oneof=static dynamic"`
	Timeout      time.Duration `flag:"timeout" validate:"min=1ms"`
	UserAgent    string        `flag:"user-agent"`
	WaitFor      string        `flag:"wait-for"`
	Wait         time.Duration `flag:"wait" validate:"min=0s"`
	Headers      []string      `flag:"header" validate:"dive,contains=:"`
	MaxInputSize string        `flag:"max-input-size" validate:"required"`

	maxInputBytes uint64
}

// cleanOptions are the settings of the clean command.
type cleanOptions struct {
	fetchOptions

	KeepDataAttributes bool
	KeepIDs            bool
	KeepClasses        bool
	KeepAriaHidden     bool
	Markdown           bool
	Core               bool
	Raw                bool

	Passes      int    `flag:"passes" validate:"min=1,max=10"`
	Output      string `flag:"output"`
	Stats       bool
	StatsFormat string `flag:"stats-format" validate:"oneof=text json jsonl yaml"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report flag names rather than Go field names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name := field.Tag.Get("flag"); name != "" {
			return "--" + name
		}
		return field.Name
	})
	return v
}

func loadFetchOptions(v *viper.Viper) (fetchOptions, error) {
	opts := fetchOptions{
		Mode:         strings.ToLower(v.GetString("fetch_mode")),
		Timeout:      v.GetDuration("timeout"),
		UserAgent:    v.GetString("user_agent"),
		WaitFor:      v.GetString("wait_for"),
		Wait:         v.GetDuration("wait"),
		Headers:      v.GetStringSlice("headers"),
		MaxInputSize: strings.TrimSpace(v.GetString("max_input_size")),
	}
	if err := validateOptions(opts); err != nil {
		return opts, err
	}
	return opts, opts.parseSize()
}

func (o *fetchOptions) parseSize() error {
	if o.MaxInputSize == "0" {
		return nil
	}
	n, err := humanize.ParseBytes(o.MaxInputSize)
	if err != nil {
		return fmt.Errorf("invalid --max-input-size %q: %w", o.MaxInputSize, err)
	}
	o.maxInputBytes = n
	return nil
}

func loadCleanOptions(v *viper.Viper) (cleanOptions, error) {
	opts := cleanOptions{
		KeepDataAttributes: v.GetBool("keep_data_attributes"),
		KeepIDs:            v.GetBool("keep_ids"),
		KeepClasses:        v.GetBool("keep_classes"),
		KeepAriaHidden:     v.GetBool("keep_aria_hidden"),
		Markdown:           v.GetBool("markdown"),
		Core:               v.GetBool("core"),
		Raw:                v.GetBool("raw"),
		Passes:             v.GetInt("passes"),
		Output:             v.GetString("output"),
		Stats:              v.GetBool("stats"),
		StatsFormat:        strings.ToLower(v.GetString("stats_format")),
	}

	fetchOpts, err := loadFetchOptions(v)
	if err != nil {
		return opts, err
	}
	opts.fetchOptions = fetchOpts

	return opts, validateOptions(opts)
}

// condenseConfig maps the flags onto the library configuration.
func (o cleanOptions) condenseConfig() *condense.Config {
	return &condense.Config{
		KeepDataAttributes: o.KeepDataAttributes,
		KeepIDs:            o.KeepIDs,
		KeepClasses:        o.KeepClasses,
		KeepAriaHidden:     o.KeepAriaHidden,
		Markdown:           o.Markdown,
		Core:               o.Core,
	}
}

// fetchRequest builds per-call fetcher options.
func (o fetchOptions) fetchRequest() fetcher.Options {
	req := fetcher.Options{
		UserAgent:       o.UserAgent,
		Timeout:         o.Timeout,
		WaitForSelector: o.WaitFor,
		WaitDuration:    o.Wait,
	}
	if len(o.Headers) > 0 {
		req.Headers = make(map[string]string, len(o.Headers))
		for _, h := range o.Headers {
			name, value, _ := strings.Cut(h, ":")
			req.Headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
		}
	}
	return req
}

// newFetcher returns the fetcher selected by --fetch-mode.
func (o fetchOptions) newFetcher() fetcher.Fetcher {
	if o.Mode == "dynamic" {
		return fetcher.NewDynamic(fetcher.DynamicConfig{
			UserAgent: o.UserAgent,
			Timeout:   o.Timeout,
		})
	}
	return fetcher.NewStatic(fetcher.StaticConfig{
		UserAgent: o.UserAgent,
		Timeout:   o.Timeout,
	})
}

// checkSize enforces --max-input-size.
func (o fetchOptions) checkSize(source string, size int) error {
	if o.maxInputBytes == 0 || uint64(size) <= o.maxInputBytes {
		return nil
	}
	return fmt.Errorf("%s is %s, above --max-input-size %s",
		source, humanize.Bytes(uint64(size)), humanize.Bytes(o.maxInputBytes))
}

// validateOptions runs the struct tags and flattens failures into one error.
func validateOptions(opts any) error {
	err := validate.Struct(opts)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatValidationError(e))
	}
	return fmt.Errorf("invalid options: %s", strings.Join(msgs, "; "))
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", e.Field(), e.Param(), e.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	case "contains":
		return fmt.Sprintf("%s must look like \"Name: value\", got %q", e.Field(), e.Value())
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	}
	return fmt.Sprintf("%s failed %s validation", e.Field(), e.Tag())
}

// statsFormats is the --stats-format help text.
func statsFormats() string {
	names := make([]string, len(output.Formats))
	for i, f := range output.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// bindFlags binds each viper key to the named flag.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		_ = v.BindPFlag(key, fs.Lookup(name))
	}
}
