// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lojban-nesy/lojbanesy/internal/diagnostic"
	"github.com/lojban-nesy/lojbanesy/internal/orchestrator"
	"github.com/lojban-nesy/lojbanesy/internal/reasoning"
)

// queryConfig holds configuration for the query command.
type queryConfig struct {
	oraclePath string
	explain    bool
}

// newQueryCmd creates the one-shot query subcommand.
func newQueryCmd() *cobra.Command {
	cfg := &queryConfig{}

	cmd := &cobra.Command{
		Use:   "query <sentence>",
		Short: "Query the reasoning database for a Lojban sentence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, cfg, args[0])
		},
	}
	cmd.Flags().StringVar(&cfg.oraclePath, "oracle", "", "path to an external predicate-weighting oracle plugin binary")
	cmd.Flags().BoolVar(&cfg.explain, "explain", false, "print the derivation chain backing the verdict")
	return cmd
}

func runQuery(cmd *cobra.Command, cfg *queryConfig, sentence string) error {
	setupLogging()

	pcfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	orch := orchestrator.New(pcfg, nil)
	defer func() { _ = orch.Close(context.Background()) }()

	if cfg.oraclePath != "" {
		if err := orch.EnableOracle(cfg.oraclePath); err != nil {
			return internalError(fmt.Errorf("enable oracle: %w", err))
		}
	}

	result, diags := orch.Execute(context.Background(), sentence, orchestrator.ModeQuery)
	if len(diags) > 0 {
		cmd.Println(strings.TrimRight(diagnostic.Render(sentence, diags), "\n"))
	}
	if diagnostic.HasErrors(diags) {
		return inputError(fmt.Errorf("query failed"))
	}
	cmd.Println(verdictGlyph(result.Verdict))

	if cfg.explain {
		proof, _ := orch.Explain(context.Background(), sentence)
		printProof(cmd, proof)
	}
	return nil
}

// verdictGlyph matches spec.md §7's "successful query prints yes/no/?".
func verdictGlyph(v reasoning.Verdict) string {
	switch v {
	case reasoning.Entailed:
		return "yes"
	case reasoning.NotEntailed:
		return "no"
	default:
		return "?"
	}
}
