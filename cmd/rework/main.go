// Package main provides rework, a tracker that moves hardware units through
// test and repair by patching the metadata block of per-unit markdown
// sheets.
package main

import (
	"os"
	"strings"

	"rework/internal/cli"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	os.Exit(cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args, env))
}
