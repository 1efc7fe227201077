// Package commands implements the condense CLI.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/condense/internal/logger"
)

// EnvPrefix prefixes every environment variable the CLI reads, e.g.
// CONDENSE_FETCH_MODE or CONDENSE_KEEP_CLASSES.
const EnvPrefix = "CONDENSE"

// NewRootCmd builds the command tree. Each tree owns its viper instance.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "condense",
		Short: "Shrink HTML into a compact form for agents",
		Long: `Condense strips scripts, styles, tracking wrappers and hidden elements from
HTML, keeps the document structure, and optionally rewrites semantic tags as
inline markdown so a language model reads the page in far fewer tokens.

Examples:
  # Clean a local file
  condense clean page.html

  # Fetch a page and keep only its main content
  condense clean --core https://example.com/article

  # Pipe HTML through, keep classes, print stats as YAML
  curl -s https://example.com | condense clean --keep-classes --stats --stats-format yaml

  # Compare condense against the full markdown conversion
  condense compare https://example.com`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(v); err != nil {
				return err
			}
			return logger.Init(logger.Options{
				Debug:  v.GetBool("debug"),
				Quiet:  v.GetBool("quiet"),
				JSON:   v.GetBool("json_logs"),
				Level:  v.GetString("log_level"),
				Output: cmd.ErrOrStderr(),
			})
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default $HOME/.condense.yaml)")
	pf.Bool("debug", false, "enable debug logging")
	pf.BoolP("quiet", "q", false, "only log errors")
	pf.Bool("json-logs", false, "log as JSON")
	pf.String("log-level", "", "log level: debug, info, warn, error (overrides --debug and --quiet)")

	// Fetch settings apply to every command that accepts a URL.
	pf.String("fetch-mode", "static", "fetch mode for URLs: static, dynamic")
	pf.Duration("timeout", 30*time.Second, "fetch timeout")
	pf.String("user-agent", "", "user agent for fetches")
	pf.String("wait-for", "", "CSS selector to wait for (dynamic mode)")
	pf.Duration("wait", 0, "extra wait after page load (dynamic mode)")
	pf.StringArrayP("header", "H", nil, `extra request header "Name: value" (repeatable)`)
	pf.String("max-input-size", "0", "refuse inputs larger than this (e.g. 5MB, 0=unlimited)")

	bindFlags(v, pf, map[string]string{
		"config":         "config",
		"debug":          "debug",
		"quiet":          "quiet",
		"json_logs":      "json-logs",
		"log_level":      "log-level",
		"fetch_mode":     "fetch-mode",
		"timeout":        "timeout",
		"user_agent":     "user-agent",
		"wait_for":       "wait-for",
		"wait":           "wait",
		"headers":        "header",
		"max_input_size": "max-input-size",
	})

	rootCmd.AddCommand(
		newCleanCmd(v),
		newCompareCmd(v),
		newVersionCmd(),
	)
	return rootCmd
}

// initConfig wires environment variables and the optional config file into
// v. A missing default config file is not an error; a missing explicit one is.
func initConfig(v *viper.Viper) error {
	if cfgFile := v.GetString("config"); cfgFile != "" {
		if _, err := os.Stat(cfgFile); err != nil {
			return fmt.Errorf("config file: %w", err)
		}
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(".condense")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	logger.Debug("config loaded", "file", v.ConfigFileUsed())
	return nil
}

// Execute runs the CLI with SIGINT/SIGTERM cancelling in-flight fetches.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
