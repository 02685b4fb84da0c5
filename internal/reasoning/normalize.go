// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package reasoning

import "github.com/lojban-nesy/lojbanesy/internal/lir"

// normalize applies the engine's fixed Boolean-identity rule schedule
// before a formula is asserted or evaluated: double-negation
// elimination and De Morgan's laws push negation down to atoms, so the
// rest of the engine only ever has to deal with negated atoms rather
// than arbitrarily deep negated compounds.
func normalize(f lir.Formula) lir.Formula {
	switch x := f.(type) {
	case lir.Not:
		return normalizeNot(x.Operand)
	case lir.And:
		cs := make([]lir.Formula, len(x.Conjuncts))
		for i, c := range x.Conjuncts {
			cs[i] = normalize(c)
		}
		return lir.And{Conjuncts: cs}
	case lir.Or:
		ds := make([]lir.Formula, len(x.Disjuncts))
		for i, d := range x.Disjuncts {
			ds[i] = normalize(d)
		}
		return lir.Or{Disjuncts: ds}
	case lir.Implies:
		return lir.Implies{Antecedent: normalize(x.Antecedent), Consequent: normalize(x.Consequent)}
	case lir.Iff:
		return lir.Iff{Left: normalize(x.Left), Right: normalize(x.Right)}
	case lir.Forall:
		return lir.Forall{Var: x.Var, Body: normalize(x.Body)}
	case lir.Exists:
		return lir.Exists{Var: x.Var, Body: normalize(x.Body)}
	case lir.AbstractionRef:
		return lir.AbstractionRef{ID: x.ID, Body: normalize(x.Body)}
	default:
		return f
	}
}

// normalizeNot implements double-negation elimination and De Morgan's
// laws for the operand of a Not, recursing so nested negations collapse
// in one pass.
func normalizeNot(operand lir.Formula) lir.Formula {
	switch x := operand.(type) {
	case lir.Not:
		return normalize(x.Operand)
	case lir.And:
		ds := make([]lir.Formula, len(x.Conjuncts))
		for i, c := range x.Conjuncts {
			ds[i] = normalizeNot(c)
		}
		return lir.Or{Disjuncts: ds}
	case lir.Or:
		cs := make([]lir.Formula, len(x.Disjuncts))
		for i, d := range x.Disjuncts {
			cs[i] = normalizeNot(d)
		}
		return lir.And{Conjuncts: cs}
	default:
		return lir.Not{Operand: normalize(operand)}
	}
}
