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
)

// assertConfig holds configuration for the assert command.
type assertConfig struct {
	oraclePath string
}

// newAssertCmd creates the one-shot assert subcommand.
func newAssertCmd() *cobra.Command {
	cfg := &assertConfig{}

	cmd := &cobra.Command{
		Use:   "assert <sentence>",
		Short: "Assert a Lojban sentence into the reasoning database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssert(cmd, cfg, args[0])
		},
	}
	cmd.Flags().StringVar(&cfg.oraclePath, "oracle", "", "path to an external predicate-weighting oracle plugin binary")
	return cmd
}

func runAssert(cmd *cobra.Command, cfg *assertConfig, sentence string) error {
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

	_, diags := orch.Execute(context.Background(), sentence, orchestrator.ModeAssert)
	if len(diags) > 0 {
		cmd.Println(strings.TrimRight(diagnostic.Render(sentence, diags), "\n"))
	}
	if diagnostic.HasErrors(diags) {
		return inputError(fmt.Errorf("assert failed"))
	}
	cmd.Println("ok")
	return nil
}
