// Package main is the entry point for the scales CLI.
//
// Usage:
//
//	scales [flags] <command> [args]
//
// Commands:
//
//	generate  - Typeset practice sheets for one or more keys
//	notes     - Print the note sequence of a scale
//	relative  - Print the relative minor of major keys
//	compose   - Join two rendered pages side by side
//	config    - Create or show a settings file
//
// For interactive mode, use: scales-tui
package main

import (
	"fmt"
	"os"

	"github.com/handiism/scale-sheets/cmd/scales/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, commands.FormatError(err))
		os.Exit(1)
	}
}
