package cleaner

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/condense/internal/logger"
)

// ChainCleaner applies multiple cleaners in sequence.
type ChainCleaner struct {
	cleaners []Cleaner
}

// NewChain creates a cleaner that applies cleaners in the order given.
//
// Example:
//
//	chain := cleaner.NewChain(
//	    condense.New(condense.PresetMarkup()),
//	    cleaner.NewMarkdown(),
//	)
func NewChain(cleaners ...Cleaner) *ChainCleaner {
	return &ChainCleaner{
		cleaners: cleaners,
	}
}

// Clean feeds each stage's output to the next. The first failing stage
// aborts the chain.
func (c *ChainCleaner) Clean(content string) (string, error) {
	for i, stage := range c.cleaners {
		before := len(content)
		out, err := stage.Clean(content)
		if err != nil {
			return "", fmt.Errorf("chain stage %d (%s): %w", i+1, stage.Name(), err)
		}
		logger.Debug("chain stage complete", "stage", i+1, "cleaner", stage.Name(),
			"input_bytes", before, "output_bytes", len(out))
		content = out
	}
	return content, nil
}

// Len returns the number of stages.
func (c *ChainCleaner) Len() int {
	return len(c.cleaners)
}

// Name returns the names of all chained cleaners.
func (c *ChainCleaner) Name() string {
	names := make([]string, len(c.cleaners))
	for i, stage := range c.cleaners {
		names[i] = stage.Name()
	}
	return "chain(" + strings.Join(names, "->") + ")"
}
