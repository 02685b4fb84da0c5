// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package lir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTermEqual(t *testing.T) {
	assert.True(t, TermEqual(Const{Name: "djan"}, Const{Name: "djan"}))
	assert.False(t, TermEqual(Const{Name: "djan"}, Const{Name: "meris"}))
	assert.True(t, TermEqual(Unspecified{}, Unspecified{}))
	assert.False(t, TermEqual(Var{Name: "x"}, Const{Name: "x"}))
}

func TestFormulaEqualAtom(t *testing.T) {
	a := Atom{Predicate: "klama", Args: []Term{Const{Name: "djan"}, Var{Name: "x"}}}
	b := Atom{Predicate: "klama", Args: []Term{Const{Name: "djan"}, Var{Name: "x"}}}
	c := Atom{Predicate: "klama", Args: []Term{Const{Name: "djan"}, Var{Name: "y"}}}

	assert.True(t, FormulaEqual(a, b))
	assert.False(t, FormulaEqual(a, c))
}

func TestFormulaEqualNested(t *testing.T) {
	p := Atom{Predicate: "mlatu", Args: []Term{Var{Name: "x"}}}
	q := Atom{Predicate: "blanu", Args: []Term{Var{Name: "x"}}}

	f1 := Forall{Var: "x", Body: Implies{Antecedent: p, Consequent: q}}
	f2 := Forall{Var: "x", Body: Implies{Antecedent: p, Consequent: q}}
	assert.True(t, FormulaEqual(f1, f2))
}

func TestFreeVarsDropsQuantified(t *testing.T) {
	p := Atom{Predicate: "mlatu", Args: []Term{Var{Name: "x"}}}
	f := Forall{Var: "x", Body: p}

	free := FreeVars(f)
	assert.Empty(t, free)
}

func TestFreeVarsCollectsAcrossConnectives(t *testing.T) {
	p := Atom{Predicate: "mlatu", Args: []Term{Var{Name: "x"}}}
	q := Atom{Predicate: "blanu", Args: []Term{Var{Name: "y"}}}
	f := And{Conjuncts: []Formula{p, q}}

	free := FreeVars(f)
	assert.True(t, free["x"])
	assert.True(t, free["y"])
}

func TestStringers(t *testing.T) {
	a := Atom{Predicate: "klama", Args: []Term{Const{Name: "djan"}}}
	assert.Equal(t, "klama(djan)", a.String())

	n := Not{Operand: a}
	assert.Equal(t, "~klama(djan)", n.String())
}
