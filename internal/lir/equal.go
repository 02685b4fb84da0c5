// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package lir

// TermEqual reports structural equality of two terms.
func TermEqual(a, b Term) bool {
	switch x := a.(type) {
	case Const:
		y, ok := b.(Const)
		return ok && x.Name == y.Name
	case Var:
		y, ok := b.(Var)
		return ok && x.Name == y.Name
	case SkolemConst:
		y, ok := b.(SkolemConst)
		return ok && x.ID == y.ID
	case Unspecified:
		_, ok := b.(Unspecified)
		return ok
	case AbstractionTerm:
		y, ok := b.(AbstractionTerm)
		return ok && x.ID == y.ID
	}
	return false
}

// FormulaEqual reports structural equality of two formulas.
func FormulaEqual(a, b Formula) bool {
	switch x := a.(type) {
	case Atom:
		y, ok := b.(Atom)
		if !ok || x.Predicate != y.Predicate || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !TermEqual(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case And:
		y, ok := b.(And)
		return ok && formulaSliceEqual(x.Conjuncts, y.Conjuncts)
	case Or:
		y, ok := b.(Or)
		return ok && formulaSliceEqual(x.Disjuncts, y.Disjuncts)
	case Not:
		y, ok := b.(Not)
		return ok && FormulaEqual(x.Operand, y.Operand)
	case Implies:
		y, ok := b.(Implies)
		return ok && FormulaEqual(x.Antecedent, y.Antecedent) && FormulaEqual(x.Consequent, y.Consequent)
	case Iff:
		y, ok := b.(Iff)
		return ok && FormulaEqual(x.Left, y.Left) && FormulaEqual(x.Right, y.Right)
	case Forall:
		y, ok := b.(Forall)
		return ok && x.Var == y.Var && FormulaEqual(x.Body, y.Body)
	case Exists:
		y, ok := b.(Exists)
		return ok && x.Var == y.Var && FormulaEqual(x.Body, y.Body)
	case Eq:
		y, ok := b.(Eq)
		return ok && TermEqual(x.Left, y.Left) && TermEqual(x.Right, y.Right)
	case AbstractionRef:
		y, ok := b.(AbstractionRef)
		return ok && x.ID == y.ID && FormulaEqual(x.Body, y.Body)
	}
	return false
}

func formulaSliceEqual(a, b []Formula) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !FormulaEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// FreeVars returns the set of variable names free in f.
func FreeVars(f Formula) map[string]bool {
	out := make(map[string]bool)
	collectFree(f, out)
	return out
}

func collectFree(f Formula, out map[string]bool) {
	switch x := f.(type) {
	case Atom:
		for _, t := range x.Args {
			if v, ok := t.(Var); ok {
				out[v.Name] = true
			}
		}
	case And:
		for _, c := range x.Conjuncts {
			collectFree(c, out)
		}
	case Or:
		for _, d := range x.Disjuncts {
			collectFree(d, out)
		}
	case Not:
		collectFree(x.Operand, out)
	case Implies:
		collectFree(x.Antecedent, out)
		collectFree(x.Consequent, out)
	case Iff:
		collectFree(x.Left, out)
		collectFree(x.Right, out)
	case Forall:
		inner := make(map[string]bool)
		collectFree(x.Body, inner)
		delete(inner, x.Var)
		for k := range inner {
			out[k] = true
		}
	case Exists:
		inner := make(map[string]bool)
		collectFree(x.Body, inner)
		delete(inner, x.Var)
		for k := range inner {
			out[k] = true
		}
	case Eq:
		if v, ok := x.Left.(Var); ok {
			out[v.Name] = true
		}
		if v, ok := x.Right.(Var); ok {
			out[v.Name] = true
		}
	case AbstractionRef:
		collectFree(x.Body, out)
	}
}
