// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

// Package orchestrator composes the tokenizer, parser, semantic
// compiler, and reasoning core into the single entry point a CLI or
// embedder drives: feed it one sentence of source, get back the
// pipeline's outcome and every diagnostic any stage raised along the
// way.
//
// The AST-to-logic handoff runs through internal/wasmhost's component
// boundary rather than a direct function call, so the same Orchestrator
// composes the pipeline identically whether the semantics stage is
// linked in-process (the only mode available without a compiled guest
// module) or loaded from a WASM component later: Execute never knows
// which backs ComponentSemantics.
package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/lojban-nesy/lojbanesy/internal/ast"
	"github.com/lojban-nesy/lojbanesy/internal/config"
	"github.com/lojban-nesy/lojbanesy/internal/diagnostic"
	"github.com/lojban-nesy/lojbanesy/internal/lexer"
	"github.com/lojban-nesy/lojbanesy/internal/lir"
	"github.com/lojban-nesy/lojbanesy/internal/metrics"
	"github.com/lojban-nesy/lojbanesy/internal/oracle"
	"github.com/lojban-nesy/lojbanesy/internal/parser"
	"github.com/lojban-nesy/lojbanesy/internal/predicate"
	"github.com/lojban-nesy/lojbanesy/internal/reasoning"
	"github.com/lojban-nesy/lojbanesy/internal/semantics"
	"github.com/lojban-nesy/lojbanesy/internal/wasmhost"
)

// SchemaVersion stamps ExecutionResult, echoing wasmhost's own schema
// version since an ExecutionResult's Formula crossed that boundary.
const SchemaVersion = wasmhost.CurrentSchemaVersion

// Mode selects what Execute does with the sentence it compiles.
type Mode uint8

const (
	// ModeAssert adds the compiled formula to the reasoning core as a
	// new fact or rule.
	ModeAssert Mode = iota
	// ModeQuery evaluates the compiled formula against the reasoning
	// core's current facts and rules without asserting it.
	ModeQuery
)

func (m Mode) verb() string {
	if m == ModeQuery {
		return "query"
	}
	return "assert"
}

// ExecutionResult is everything one Execute call produced.
type ExecutionResult struct {
	SchemaVersion string
	Mode          Mode
	Formula       lir.Formula
	Verdict       reasoning.Verdict // meaningful only when Mode == ModeQuery
}

// Orchestrator holds the long-lived session state — the predicate
// dictionary, discourse context, and reasoning engine — that a sequence
// of Execute calls accumulates into. One Orchestrator corresponds to
// one REPL session; Execute serializes concurrent callers onto it.
type Orchestrator struct {
	mu sync.Mutex

	cfg        config.Config
	compiler   *semantics.Compiler
	engine     *reasoning.Engine
	host       *wasmhost.Host
	tracer     trace.Tracer
	oracleHost *oracle.Host
	compDiags  []diagnostic.Diagnostic // side channel compileViaBuffer fills per call
}

// New constructs an Orchestrator from cfg, wiring a fresh predicate
// dictionary, discourse context, and reasoning engine, and registering
// the in-process semantic compiler as the wasmhost semantics
// component's local fallback. tracer may be nil, in which case spans
// are opened against a no-op tracer.
func New(cfg config.Config, tracer trace.Tracer) *Orchestrator {
	if tracer == nil {
		tracer = trace.NewNoopTracerProvider().Tracer("orchestrator")
	}

	o := &Orchestrator{
		cfg:      cfg,
		compiler: semantics.New(predicate.Default(), semantics.NewDiscourse()),
		engine:   reasoning.New(cfg.MaxSaturationSteps),
		host:     wasmhost.NewHost(),
		tracer:   tracer,
	}
	o.host.RegisterLocal(wasmhost.ComponentSemantics, o.compileViaBuffer)
	return o
}

// compileViaBuffer is the local fallback backing the semantics
// component: it decodes an AstBuffer payload, compiles the named
// sentence against this Orchestrator's discourse state, and re-encodes
// the result as a LogicBuffer payload. Compile diagnostics are stashed
// on compDiags for Execute to collect once Call returns — the same kind
// of side-channel a cross-language FFI boundary would need its own
// wire encoding for, simplified here since both sides of the boundary
// are this same process.
func (o *Orchestrator) compileViaBuffer(_ context.Context, payload []byte) ([]byte, error) {
	arena, sentenceID, err := wasmhost.DecodeAst(wasmhost.AstBuffer{SchemaVersion: wasmhost.CurrentSchemaVersion, Payload: payload})
	if err != nil {
		return nil, err
	}
	formula, diags := o.compiler.Compile(arena, sentenceID)
	o.compDiags = append(o.compDiags, diags...)
	return wasmhost.EncodeLogic(formula).Payload, nil
}

// Clear resets the reasoning engine and discourse context, matching a
// REPL's :clear command: subsequent Execute calls start from an empty
// fact base with no anaphoric history.
func (o *Orchestrator) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.engine.Clear()
	o.compiler.Discourse().Reset()
}

// Engine exposes the reasoning engine directly, for a REPL's :facts
// dump or similar introspection that doesn't belong on this type.
func (o *Orchestrator) Engine() *reasoning.Engine { return o.engine }

// EnableOracle launches the external predicate-weighting oracle binary
// at execPath and wires it into the semantic compiler so subsequent
// Execute calls annotate unrecognized-predicate diagnostics with the
// oracle's confidence weight. Disabled (the default) unless called.
func (o *Orchestrator) EnableOracle(execPath string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	host, err := oracle.NewHost(execPath)
	if err != nil {
		return err
	}
	o.oracleHost = host
	o.compiler.SetOracle(host.Scorer())
	return nil
}

// Close releases the Orchestrator's wasmhost.Host and, if EnableOracle
// was called, terminates the oracle plugin process. Once Close
// returns, Execute must not be called again.
func (o *Orchestrator) Close(ctx context.Context) error {
	if o.oracleHost != nil {
		o.oracleHost.Close()
	}
	return o.host.Close(ctx)
}

// Execute tokenizes, parses, and compiles input, then either asserts or
// queries the resulting formula against the reasoning core depending on
// mode. It returns an ExecutionResult plus every diagnostic any stage
// raised; Execute degrades gracefully rather than aborting, so a
// non-empty diagnostics slice doesn't necessarily mean Formula is nil —
// check diagnostic.HasErrors for that.
//
// Only the first sentence in input is asserted or queried; source
// containing multiple .i-separated sentences should be split by the
// caller (one REPL line is one sentence) before calling Execute.
func (o *Orchestrator) Execute(ctx context.Context, input string, mode Mode) (ExecutionResult, []diagnostic.Diagnostic) {
	o.mu.Lock()
	defer o.mu.Unlock()

	result := ExecutionResult{SchemaVersion: SchemaVersion, Mode: mode}
	var diags []diagnostic.Diagnostic

	ctx, execSpan := o.tracer.Start(ctx, "orchestrator.execute")
	defer execSpan.End()

	_, tokenizeSpan := o.tracer.Start(ctx, "orchestrator.tokenize")
	tokenizeStart := stageNow()
	toks, lexDiags := lexer.Tokenize(input)
	metrics.ObserveStageDuration(metrics.StageTokenize, stageNow().Sub(tokenizeStart))
	recordParseDiagnostics(lexDiags)
	diags = append(diags, lexDiags...)
	tokenizeSpan.End()

	_, parseSpan := o.tracer.Start(ctx, "orchestrator.parse")
	parseStart := stageNow()
	parsed := parser.Parse(toks, o.cfg.MaxParseDepth)
	metrics.ObserveStageDuration(metrics.StageParse, stageNow().Sub(parseStart))
	recordParseDiagnostics(parsed.Diagnostics)
	diags = append(diags, parsed.Diagnostics...)
	parseSpan.End()

	if len(parsed.Sentences) == 0 {
		diags = append(diags, diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     diagnostic.CodeParseUnexpectedToken,
			Message:  "no complete sentence to " + mode.verb(),
		})
		return result, diags
	}

	formula, semDiags, err := o.compileViaHost(ctx, parsed.Arena, parsed.Sentences[0])
	diags = append(diags, semDiags...)
	if err != nil {
		diags = append(diags, diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     diagnostic.CodeSemUnknownPredicate,
			Message:  fmt.Sprintf("semantics component call failed: %v", err),
		})
		return result, diags
	}
	result.Formula = formula

	_, reasoningSpan := o.tracer.Start(ctx, "orchestrator.reasoning")
	defer reasoningSpan.End()
	reasoningStart := stageNow()
	switch mode {
	case ModeAssert:
		o.engine.Assert(formula)
		outcome := "ok"
		if diagnostic.HasErrors(diags) {
			outcome = "diagnostic"
		}
		metrics.RecordAssert(outcome)
	case ModeQuery:
		verdict, queryDiags := o.engine.Query(formula)
		diags = append(diags, queryDiags...)
		result.Verdict = verdict
		metrics.RecordQuery(verdict.String())
	}
	metrics.ObserveStageDuration(metrics.StageReasoning, stageNow().Sub(reasoningStart))

	if o.cfg.StrictMode {
		diags = promoteWarningsToErrors(diags)
	}
	return result, diags
}

// Explain compiles input the same way Execute does and asks the
// reasoning engine to justify its verdict step by step, for a REPL's
// :explain command.
func (o *Orchestrator) Explain(ctx context.Context, input string) (reasoning.Proof, []diagnostic.Diagnostic) {
	o.mu.Lock()
	defer o.mu.Unlock()

	toks, diags := lexer.Tokenize(input)
	parsed := parser.Parse(toks, o.cfg.MaxParseDepth)
	diags = append(diags, parsed.Diagnostics...)
	if len(parsed.Sentences) == 0 {
		return reasoning.Proof{}, append(diags, diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     diagnostic.CodeParseUnexpectedToken,
			Message:  "no complete sentence to explain",
		})
	}

	formula, semDiags, err := o.compileViaHost(ctx, parsed.Arena, parsed.Sentences[0])
	diags = append(diags, semDiags...)
	if err != nil {
		return reasoning.Proof{}, append(diags, diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     diagnostic.CodeSemUnknownPredicate,
			Message:  fmt.Sprintf("semantics component call failed: %v", err),
		})
	}
	return o.engine.Explain(formula), diags
}

// compileViaHost marshals arena/sentenceID across the wasmhost
// component boundary to the registered semantics component (the
// in-process fallback unless a guest module has since been loaded) and
// unmarshals the resulting formula, draining the diagnostics the
// fallback stashed for this call.
func (o *Orchestrator) compileViaHost(ctx context.Context, arena *ast.Arena, sentenceID ast.NodeID) (lir.Formula, []diagnostic.Diagnostic, error) {
	astBuf, err := wasmhost.EncodeAst(arena, sentenceID)
	if err != nil {
		return nil, nil, err
	}

	o.compDiags = nil
	outPayload, err := o.host.Call(ctx, wasmhost.ComponentSemantics, astBuf.Payload)
	diags := o.compDiags
	o.compDiags = nil
	if err != nil {
		return nil, diags, err
	}

	formula, err := wasmhost.DecodeLogic(wasmhost.LogicBuffer{SchemaVersion: wasmhost.CurrentSchemaVersion, Payload: outPayload})
	if err != nil {
		return nil, diags, err
	}
	return formula, diags, nil
}

func recordParseDiagnostics(diags []diagnostic.Diagnostic) {
	for _, d := range diags {
		metrics.RecordParseDiagnostic(d.Code)
	}
}

func promoteWarningsToErrors(diags []diagnostic.Diagnostic) []diagnostic.Diagnostic {
	out := make([]diagnostic.Diagnostic, len(diags))
	for i, d := range diags {
		if d.Severity == diagnostic.SeverityWarning {
			d.Severity = diagnostic.SeverityError
		}
		out[i] = d
	}
	return out
}

// stageNow is time.Now wrapped so the only direct call in this package
// is this one line, kept separate from the pipeline logic it times.
func stageNow() time.Time { return time.Now() }
