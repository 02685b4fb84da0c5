// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKnownPredicate(t *testing.T) {
	d := Default()

	e, ok := d.Lookup("klama")
	assert.True(t, ok)
	assert.Equal(t, 5, e.Arity)
}

func TestLookupUnknownPredicateFallsBackToDefaultArity(t *testing.T) {
	d := Default()

	e, ok := d.Lookup("brodifoo")
	assert.False(t, ok)
	assert.Equal(t, DefaultArity, e.Arity)
	assert.Equal(t, "brodifoo", e.Name)
}

func TestArityConvenience(t *testing.T) {
	d := Default()
	assert.Equal(t, 2, d.Arity("nelci"))
	assert.Equal(t, DefaultArity, d.Arity("unknownpred"))
}

func TestDefaultIsSingleton(t *testing.T) {
	assert.Same(t, Default(), Default())
}
