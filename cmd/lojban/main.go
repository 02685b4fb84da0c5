// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

// Package main is the entry point for the lojban reasoning CLI.
package main

import (
	"log/slog"
	"os"

	"github.com/lojban-nesy/lojbanesy/pkg/errutil"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		code := exitCodeFor(err)
		// Input errors were already rendered to stdout via
		// diagnostic.Render by the subcommand that produced them;
		// only internal errors need a second, structured line here.
		if code == exitInternal {
			errutil.LogError(slog.Default(), "lojban command failed", err)
		}
		return code
	}
	return 0
}
