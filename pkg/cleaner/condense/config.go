// Package condense turns arbitrary HTML into a compact representation for
// text-oriented agents. It strips non-content markup (scripts, styles,
// tracking wrappers, hidden elements), keeps the document structure,
// optionally rewrites semantic tags as inline markdown, and can isolate the
// page's primary content region.
package condense

// Config controls a single condense call. The zero value is not the default:
// use DefaultConfig, which keeps ids and enables markdown.
type Config struct {
	// KeepDataAttributes keeps data-* attributes.
	KeepDataAttributes bool `json:"keep_data_attributes" yaml:"keep_data_attributes" mapstructure:"keep_data_attributes"`

	// KeepIDs keeps id attributes. Unlike the other keep flags it defaults to
	// true, so fragment links and well-known content ids stay resolvable.
	KeepIDs bool `json:"keep_ids" yaml:"keep_ids" mapstructure:"keep_ids"`

	// KeepClasses keeps class attributes.
	KeepClasses bool `json:"keep_classes" yaml:"keep_classes" mapstructure:"keep_classes"`

	// KeepAriaHidden keeps elements marked aria-hidden="true".
	KeepAriaHidden bool `json:"keep_aria_hidden" yaml:"keep_aria_hidden" mapstructure:"keep_aria_hidden"`

	// Markdown rewrites emphasis, links, images, code, headings, quotes,
	// lists and rules as markdown text. Defaults to true.
	Markdown bool `json:"markdown" yaml:"markdown" mapstructure:"markdown"`

	// Core strips page chrome (header, nav, footer, aside, dialog and their
	// ARIA roles) and, when no main region is marked, isolates the primary
	// content element.
	Core bool `json:"core" yaml:"core" mapstructure:"core"`
}

// DefaultConfig returns the default configuration: ids kept, markdown on,
// everything else off.
func DefaultConfig() *Config {
	return &Config{
		KeepIDs:  true,
		Markdown: true,
	}
}

// PresetMarkup returns the default configuration with markdown rewriting
// disabled, so the output stays well-formed markup that can be fed back in.
func PresetMarkup() *Config {
	cfg := DefaultConfig()
	cfg.Markdown = false
	return cfg
}

// PresetCore returns the default configuration with chrome stripping and
// main-content isolation enabled.
func PresetCore() *Config {
	cfg := DefaultConfig()
	cfg.Core = true
	return cfg
}
