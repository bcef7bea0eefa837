// Package main provides the entry point for the pfsearch CLI.
package main

import (
	"os"

	"github.com/finderlab/pfsearch/cmd/pfsearch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
