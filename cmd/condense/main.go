// Package main is the entry point for the condense CLI.
package main

import (
	"os"

	"github.com/jmylchreest/condense/cmd/condense/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
