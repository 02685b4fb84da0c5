// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/lojban-nesy/lojbanesy/internal/orchestrator"
)

// newVersionCmd creates the version subcommand.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build and schema version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Printf("lojban %s (commit %s, built %s)\n", version, commit, date)
			cmd.Printf("schema version: %s\n", orchestrator.SchemaVersion)
			return nil
		},
	}
}
