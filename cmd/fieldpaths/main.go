// Package main provides the CLI entrypoint for fieldpaths.
//
// fieldpaths lists the leaf field paths of structured types:
//   - analyze: Go types loaded from packages (AST + go/types)
//   - describe: types declared in a YAML description file
//   - gen: Go constants for the leaf paths of loaded types
//   - conventions: the rename_all naming conventions
//   - config: the effective configuration
package main

import (
	"os"

	"fieldpaths/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
