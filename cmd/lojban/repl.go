// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	"github.com/lojban-nesy/lojbanesy/internal/ast"
	"github.com/lojban-nesy/lojbanesy/internal/diagnostic"
	"github.com/lojban-nesy/lojbanesy/internal/lexer"
	"github.com/lojban-nesy/lojbanesy/internal/lir"
	"github.com/lojban-nesy/lojbanesy/internal/lirtext"
	"github.com/lojban-nesy/lojbanesy/internal/observability"
	"github.com/lojban-nesy/lojbanesy/internal/orchestrator"
	"github.com/lojban-nesy/lojbanesy/internal/parser"
	"github.com/lojban-nesy/lojbanesy/internal/reasoning"
	"github.com/lojban-nesy/lojbanesy/internal/semantics"
)

// replConfig holds configuration for the repl command.
type replConfig struct {
	oraclePath  string
	metricsAddr string
}

// newReplCmd creates the interactive repl subcommand: spec.md §6's
// line-based REPL grammar. Line editing and history are explicitly out
// of scope (SPEC_FULL.md §A.4), so this reads from bufio.Scanner on
// stdin with no readline library.
func newReplCmd() *cobra.Command {
	cfg := &replConfig{}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive assert/query session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRepl(cmd, cfg)
		},
	}
	cmd.Flags().StringVar(&cfg.oraclePath, "oracle", "", "path to an external predicate-weighting oracle plugin binary")
	cmd.Flags().StringVar(&cfg.metricsAddr, "metrics-addr", "", "serve /metrics and /healthz on this address (disabled if empty)")
	return cmd
}

func runRepl(cmd *cobra.Command, cfg *replConfig) error {
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

	if cfg.metricsAddr != "" {
		obsServer := observability.NewServer(cfg.metricsAddr, func() bool { return true })
		if err := obsServer.Start(); err != nil {
			return internalError(fmt.Errorf("start observability server: %w", err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = obsServer.Stop(ctx)
		}()
	}

	ctx := context.Background()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if handleReplLine(cmd, orch, ctx, line) {
			return nil
		}
	}
	return nil
}

// handleReplLine processes one REPL line per spec.md §6's command
// grammar, returning true if the session should end (:quit).
func handleReplLine(cmd *cobra.Command, orch *orchestrator.Orchestrator, ctx context.Context, line string) bool {
	switch {
	case line == ":quit":
		return true
	case line == ":clear":
		orch.Clear()
		cmd.Println("ok")
	case strings.HasPrefix(line, ":facts"):
		pattern := strings.TrimSpace(strings.TrimPrefix(line, ":facts"))
		printFacts(cmd, orch, pattern)
	case strings.HasPrefix(line, ":ast"):
		printASTDump(cmd, strings.TrimSpace(strings.TrimPrefix(line, ":ast")))
	case strings.HasPrefix(line, ":ir"):
		printIRDump(cmd, strings.TrimSpace(strings.TrimPrefix(line, ":ir")))
	case strings.HasPrefix(line, ":explain"):
		sentence := strings.TrimSpace(strings.TrimPrefix(line, ":explain"))
		proof, diags := orch.Explain(ctx, sentence)
		printReplDiagnostics(cmd, sentence, diags)
		printProof(cmd, proof)
	case strings.HasPrefix(line, "?"):
		runReplExecute(cmd, orch, ctx, strings.TrimPrefix(line, "?"), orchestrator.ModeQuery)
	case strings.HasPrefix(line, ":query"):
		runReplExecute(cmd, orch, ctx, strings.TrimPrefix(line, ":query"), orchestrator.ModeQuery)
	default:
		runReplExecute(cmd, orch, ctx, line, orchestrator.ModeAssert)
	}
	return false
}

func runReplExecute(cmd *cobra.Command, orch *orchestrator.Orchestrator, ctx context.Context, sentence string, mode orchestrator.Mode) {
	sentence = strings.TrimSpace(sentence)
	result, diags := orch.Execute(ctx, sentence, mode)
	printReplDiagnostics(cmd, sentence, diags)
	if diagnostic.HasErrors(diags) {
		return
	}
	if mode == orchestrator.ModeQuery {
		cmd.Println(verdictGlyph(result.Verdict))
		return
	}
	cmd.Println("ok")
}

func printReplDiagnostics(cmd *cobra.Command, sentence string, diags []diagnostic.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	cmd.Println(strings.TrimRight(diagnostic.Render(sentence, diags), "\n"))
}

// printFacts implements the :facts [glob] debug dump, filtering
// asserted facts by an optional glob over their predicate symbol.
func printFacts(cmd *cobra.Command, orch *orchestrator.Orchestrator, pattern string) {
	var matcher glob.Glob
	if pattern != "" {
		g, err := glob.Compile(pattern)
		if err != nil {
			cmd.Printf("invalid glob %q: %v\n", pattern, err)
			return
		}
		matcher = g
	}
	for _, a := range orch.Engine().Facts() {
		if matcher != nil && !matcher.Match(a.Predicate) {
			continue
		}
		cmd.Println(lirtext.FormatFormula(a))
	}
}

// printASTDump reparses sentence standalone (the orchestrator doesn't
// expose its intermediate arena) and renders its parse tree for the
// :ast debug dump.
func printASTDump(cmd *cobra.Command, sentence string) {
	arena, sentenceID, ok := parseStandalone(cmd, sentence)
	if !ok {
		return
	}
	cmd.Println(strings.TrimRight(dumpAST(arena, sentenceID), "\n"))
}

// printIRDump reparses and compiles sentence through a throwaway
// compiler (a fresh discourse context, independent of the session's
// orchestrator) and renders the resulting LIR as lirtext's surface
// s-expression syntax for the :ir debug dump.
func printIRDump(cmd *cobra.Command, sentence string) {
	arena, sentenceID, ok := parseStandalone(cmd, sentence)
	if !ok {
		return
	}
	formula, diags := semantics.New(nil, nil).Compile(arena, sentenceID)
	printReplDiagnostics(cmd, sentence, diags)
	cmd.Println(lirtext.FormatFormula(formula))
}

func parseStandalone(cmd *cobra.Command, sentence string) (*ast.Arena, ast.NodeID, bool) {
	toks, diags := lexer.Tokenize(sentence)
	if diagnostic.HasErrors(diags) {
		printReplDiagnostics(cmd, sentence, diags)
		return nil, 0, false
	}
	parsed := parser.Parse(toks, 256)
	printReplDiagnostics(cmd, sentence, parsed.Diagnostics)
	if len(parsed.Sentences) == 0 {
		cmd.Println("no complete sentence")
		return nil, 0, false
	}
	return parsed.Arena, parsed.Sentences[0], true
}

func printProof(cmd *cobra.Command, proof reasoning.Proof) {
	cmd.Printf("verdict: %s\n", proof.Verdict)
	for i, step := range proof.Steps {
		cmd.Printf("  %d. %s <- %s\n", i+1, lirtext.FormatFormula(step.Conclusion), formatAntecedents(step.Antecedents))
	}
}

func formatAntecedents(fs []lir.Formula) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = lirtext.FormatFormula(f)
	}
	return strings.Join(parts, ", ")
}
