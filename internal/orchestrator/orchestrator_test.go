// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojban-nesy/lojbanesy/internal/config"
	"github.com/lojban-nesy/lojbanesy/internal/diagnostic"
	"github.com/lojban-nesy/lojbanesy/internal/lir"
	"github.com/lojban-nesy/lojbanesy/internal/reasoning"
)

func TestExecuteAssertThenQueryEntailed(t *testing.T) {
	o := New(config.Default(), nil)

	_, diags := o.Execute(context.Background(), "la djan klama le zarci", ModeAssert)
	assert.False(t, diagnostic.HasErrors(diags))

	result, diags := o.Execute(context.Background(), "la djan klama le zarci", ModeQuery)
	assert.False(t, diagnostic.HasErrors(diags))
	assert.Equal(t, reasoning.Entailed, result.Verdict)
}

func TestExecuteQueryUndeterminedWithoutAssert(t *testing.T) {
	o := New(config.Default(), nil)

	result, _ := o.Execute(context.Background(), "la djan klama le zarci", ModeQuery)
	assert.Equal(t, reasoning.Undetermined, result.Verdict)
}

func TestExecuteStampsSchemaVersion(t *testing.T) {
	o := New(config.Default(), nil)

	result, _ := o.Execute(context.Background(), "la djan klama le zarci", ModeAssert)
	assert.Equal(t, SchemaVersion, result.SchemaVersion)
}

func TestExecuteEmptyInputReportsDiagnostic(t *testing.T) {
	o := New(config.Default(), nil)

	_, diags := o.Execute(context.Background(), "", ModeAssert)
	require.NotEmpty(t, diags)
	assert.True(t, diagnostic.HasErrors(diags))
}

func TestExecuteReturnsCompiledFormula(t *testing.T) {
	o := New(config.Default(), nil)

	result, _ := o.Execute(context.Background(), "la djan klama le zarci", ModeAssert)
	atom, ok := result.Formula.(lir.Atom)
	require.True(t, ok)
	assert.Equal(t, "klama", atom.Predicate)
}

func TestClearResetsFactsAndDiscourse(t *testing.T) {
	o := New(config.Default(), nil)

	_, _ = o.Execute(context.Background(), "la djan klama le zarci", ModeAssert)
	o.Clear()

	result, _ := o.Execute(context.Background(), "la djan klama le zarci", ModeQuery)
	assert.Equal(t, reasoning.Undetermined, result.Verdict)
	assert.Empty(t, o.Engine().Facts())
}

func TestExplainReturnsAssertedAxiomStep(t *testing.T) {
	o := New(config.Default(), nil)

	_, _ = o.Execute(context.Background(), "la djan klama le zarci", ModeAssert)
	proof, diags := o.Explain(context.Background(), "la djan klama le zarci")

	assert.False(t, diagnostic.HasErrors(diags))
	assert.Equal(t, reasoning.Entailed, proof.Verdict)
	require.NotEmpty(t, proof.Steps)
}

func TestStrictModePromotesWarningsToErrors(t *testing.T) {
	cfg := config.Default()
	cfg.StrictMode = true
	o := New(cfg, nil)

	_, diags := o.Execute(context.Background(), "la djan broda le zarci", ModeAssert)
	require.NotEmpty(t, diags)
	assert.True(t, diagnostic.HasErrors(diags))
}

func TestEngineFactsReflectsAssertedAtoms(t *testing.T) {
	o := New(config.Default(), nil)

	_, _ = o.Execute(context.Background(), "la djan klama le zarci", ModeAssert)
	facts := o.Engine().Facts()
	require.Len(t, facts, 1)
	assert.Equal(t, "klama", facts[0].Predicate)
}
