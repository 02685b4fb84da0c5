// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package wasmhost

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojban-nesy/lojbanesy/internal/ast"
	"github.com/lojban-nesy/lojbanesy/internal/lir"
)

func TestCallDispatchesToLocalFallback(t *testing.T) {
	h := NewHost()
	h.RegisterLocal(ComponentParser, func(_ context.Context, payload []byte) ([]byte, error) {
		return append([]byte("echo:"), payload...), nil
	})

	out, err := h.Call(context.Background(), ComponentParser, []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "echo:hello", string(out))
}

func TestCallReturnsNotFoundWithNoFallback(t *testing.T) {
	h := NewHost()
	_, err := h.Call(context.Background(), ComponentReasoning, []byte("x"))
	assert.ErrorIs(t, err, ErrComponentNotFound)
}

func TestCallAfterCloseFails(t *testing.T) {
	h := NewHost()
	h.RegisterLocal(ComponentParser, func(_ context.Context, payload []byte) ([]byte, error) { return payload, nil })
	require.NoError(t, h.Close(context.Background()))

	_, err := h.Call(context.Background(), ComponentParser, []byte("x"))
	assert.ErrorIs(t, err, ErrHostClosed)
}

func TestLoadComponentRejectsIncompatibleSchemaVersion(t *testing.T) {
	h := NewHost()
	err := h.LoadComponent(context.Background(), ComponentSemantics, "2.0.0", []byte{})
	assert.ErrorIs(t, err, ErrSchemaIncompatible)
}

func TestEncodeDecodeAstRoundTrips(t *testing.T) {
	arena := ast.NewArena()
	selbriID := arena.NewSelbri(ast.Selbri{Kind: ast.SelbriSimple, PredicateText: "klama"})
	predID := arena.NewPredication(ast.Predication{Selbri: selbriID})
	sentID := arena.NewSentence(ast.Sentence{Predication: predID})

	buf, err := EncodeAst(arena, sentID)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, buf.SchemaVersion)

	rebuilt, gotSentence, err := DecodeAst(buf)
	require.NoError(t, err)
	assert.Equal(t, sentID, gotSentence)
	assert.Equal(t, arena.Selbri(selbriID), rebuilt.Selbri(selbriID))
}

func TestEncodeDecodeLogicRoundTrips(t *testing.T) {
	f := lir.Atom{Predicate: "mlatu", Args: []lir.Term{lir.Const{Name: "djan"}}}
	buf := EncodeLogic(f)
	assert.Equal(t, CurrentSchemaVersion, buf.SchemaVersion)

	decoded, err := DecodeLogic(buf)
	require.NoError(t, err)
	assert.True(t, lir.FormulaEqual(f, decoded))
}
