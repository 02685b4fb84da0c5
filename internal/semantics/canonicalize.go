// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package semantics

import "github.com/lojban-nesy/lojbanesy/internal/lir"

// canonicalize flattens nested And/Or of the same connective and drops
// quantifiers that bind no free occurrence of their variable, keeping
// invariant L2 (no degenerate n-ary connectives) and L3 (no vacuous
// quantifiers) intact on compiler output.
func canonicalize(f lir.Formula) lir.Formula {
	switch x := f.(type) {
	case lir.And:
		flat := flattenAnd(x)
		if len(flat) == 1 {
			return flat[0]
		}
		return lir.And{Conjuncts: flat}
	case lir.Or:
		flat := flattenOr(x)
		if len(flat) == 1 {
			return flat[0]
		}
		return lir.Or{Disjuncts: flat}
	case lir.Not:
		return lir.Not{Operand: canonicalize(x.Operand)}
	case lir.Implies:
		return lir.Implies{Antecedent: canonicalize(x.Antecedent), Consequent: canonicalize(x.Consequent)}
	case lir.Iff:
		return lir.Iff{Left: canonicalize(x.Left), Right: canonicalize(x.Right)}
	case lir.Forall:
		body := canonicalize(x.Body)
		if !lir.FreeVars(body)[x.Var] {
			return body
		}
		return lir.Forall{Var: x.Var, Body: body}
	case lir.Exists:
		body := canonicalize(x.Body)
		if !lir.FreeVars(body)[x.Var] {
			return body
		}
		return lir.Exists{Var: x.Var, Body: body}
	case lir.AbstractionRef:
		return lir.AbstractionRef{ID: x.ID, Body: canonicalize(x.Body)}
	default:
		return f
	}
}

func flattenAnd(a lir.And) []lir.Formula {
	var out []lir.Formula
	for _, c := range a.Conjuncts {
		cc := canonicalize(c)
		if nested, ok := cc.(lir.And); ok {
			out = append(out, nested.Conjuncts...)
		} else {
			out = append(out, cc)
		}
	}
	return out
}

func flattenOr(o lir.Or) []lir.Formula {
	var out []lir.Formula
	for _, d := range o.Disjuncts {
		dd := canonicalize(d)
		if nested, ok := dd.(lir.Or); ok {
			out = append(out, nested.Disjuncts...)
		} else {
			out = append(out, dd)
		}
	}
	return out
}
