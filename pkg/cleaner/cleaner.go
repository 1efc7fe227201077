// Package cleaner defines the Cleaner interface shared by the condense
// cleaner, its baselines and the compositions the CLI builds from them.
package cleaner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jmylchreest/condense/pkg/cleaner/condense"
)

// Cleaner transforms HTML into a smaller representation for an agent.
type Cleaner interface {
	// Clean transforms the input HTML. The output format depends on the
	// implementation.
	Clean(html string) (string, error)

	// Name returns the cleaner type for logging and reports.
	Name() string
}

// StatsCleaner is implemented by cleaners that report per-call statistics.
type StatsCleaner interface {
	Cleaner
	CleanWithStats(html string) *condense.Result
}

var (
	_ StatsCleaner = (*condense.Cleaner)(nil)
	_ Cleaner      = (*ChainCleaner)(nil)
	_ Cleaner      = (*NoopCleaner)(nil)
	_ Cleaner      = (*MarkdownCleaner)(nil)
)

// NewCondense returns a cleaner that runs condense passes times. Every pass
// but the last runs with markdown disabled so the intermediate output is
// still markup the next pass can parse. passes below 2 yield the plain
// condense cleaner.
func NewCondense(cfg *condense.Config, passes int) Cleaner {
	if cfg == nil {
		cfg = condense.DefaultConfig()
	}
	if passes < 2 {
		return condense.New(cfg)
	}

	last := condense.New(cfg)
	intermediate := last.Config()
	intermediate.Markdown = false

	stages := make([]Cleaner, 0, passes)
	for i := 0; i < passes-1; i++ {
		stages = append(stages, condense.New(&intermediate))
	}
	stages = append(stages, last)
	return NewChain(stages...)
}

// registry maps the names accepted by --cleaner and compare to constructors.
var registry = map[string]func() Cleaner{
	"noop":            func() Cleaner { return NewNoop() },
	"markdown":        func() Cleaner { return NewMarkdown() },
	"condense":        func() Cleaner { return condense.New(nil) },
	"condense-markup": func() Cleaner { return condense.New(condense.PresetMarkup()) },
	"condense-core":   func() Cleaner { return condense.New(condense.PresetCore()) },
	"condense->markdown": func() Cleaner {
		return NewChain(condense.New(condense.PresetMarkup()), NewMarkdown())
	},
}

// Names returns the registered cleaner names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName returns a fresh instance of the named cleaner.
func ByName(name string) (Cleaner, error) {
	ctor, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown cleaner %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return ctor(), nil
}
