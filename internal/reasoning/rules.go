// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package reasoning

import "github.com/lojban-nesy/lojbanesy/internal/lir"

// rule is a universally-quantified Horn-like clause: if every
// antecedent atom matches some fact (under one consistent variable
// substitution), consequent is derivable. Antecedents beyond a single
// atom support conjunctive rule bodies; Or/Not antecedents are rejected
// at rule-construction time and degrade to an empty (always-fires)
// antecedent list, matching the engine's "never panic" discipline.
type rule struct {
	antecedents []lir.Atom
	consequent  lir.Formula
}

// ruleFromImplies flattens an Implies's antecedent into a conjunction of
// atoms usable for forward-chaining matching.
func ruleFromImplies(im lir.Implies) rule {
	return rule{antecedents: flattenToAtoms(im.Antecedent), consequent: im.Consequent}
}

// unitResolutionRules turns an asserted disjunction into unit-resolution
// rules: for each disjunct, its negation as antecedent for the rest as a
// consequent (disjunctive syllogism), covering the common two-disjunct
// case the spec's rule schedule names explicitly.
func unitResolutionRules(or lir.Or) []rule {
	var rules []rule
	for i, d := range or.Disjuncts {
		atom, ok := d.(lir.Atom)
		if !ok {
			continue
		}
		var rest []lir.Formula
		for j, other := range or.Disjuncts {
			if j != i {
				rest = append(rest, other)
			}
		}
		if len(rest) == 0 {
			continue
		}
		var consequent lir.Formula = rest[0]
		if len(rest) > 1 {
			consequent = lir.Or{Disjuncts: rest}
		}
		rules = append(rules, rule{
			antecedents: []lir.Atom{negatedMarker(atom)},
			consequent:  consequent,
		})
	}
	return rules
}

// negatedMarker tags an atom as needing to be matched against the
// negatives set rather than the facts set, using a reserved predicate
// prefix so the matcher can recognize it without a separate Atom field.
func negatedMarker(a lir.Atom) lir.Atom {
	return lir.Atom{Predicate: "~" + a.Predicate, Args: a.Args}
}

func isNegatedMarker(a lir.Atom) (lir.Atom, bool) {
	if len(a.Predicate) > 0 && a.Predicate[0] == '~' {
		return lir.Atom{Predicate: a.Predicate[1:], Args: a.Args}, true
	}
	return lir.Atom{}, false
}

func flattenToAtoms(f lir.Formula) []lir.Atom {
	switch x := f.(type) {
	case lir.Atom:
		return []lir.Atom{x}
	case lir.And:
		var out []lir.Atom
		for _, c := range x.Conjuncts {
			out = append(out, flattenToAtoms(c)...)
		}
		return out
	}
	return nil
}

// substitution maps variable names to terms.
type substitution map[string]lir.Term

// matchAntecedents returns every substitution that simultaneously
// satisfies all of r's antecedents against the engine's current facts.
// It's a small nested-loop join adequate for the fact volumes this
// reasoning core is scoped to (single-session, in-memory, §5's
// explicit Non-goal on large-scale persistence).
func (e *Engine) matchAntecedents(r rule) []substitution {
	subs := []substitution{{}}
	for _, ant := range r.antecedents {
		var next []substitution
		for _, sub := range subs {
			next = append(next, e.matchOneAtom(ant, sub)...)
		}
		subs = next
		if len(subs) == 0 {
			return nil
		}
	}
	return subs
}

func (e *Engine) matchOneAtom(ant lir.Atom, base substitution) []substitution {
	if plain, negated := isNegatedMarker(ant); negated {
		// Disjunctive-syllogism antecedents are only matched once fully
		// ground; a still-variable negated antecedent is a pattern this
		// simplified matcher does not resolve and simply never fires.
		instantiated := instantiateAtom(plain, base)
		if hasFreeVars(instantiated) {
			return nil
		}
		if e.negativeMatches(instantiated) {
			return []substitution{base}
		}
		return nil
	}

	var out []substitution
	for _, factAtom := range e.facts {
		if factAtom.Predicate != ant.Predicate || len(factAtom.Args) != len(ant.Args) {
			continue
		}
		if sub, ok := e.unify(ant, factAtom, base); ok {
			out = append(out, sub)
		}
	}
	return out
}

// unify attempts to extend base so that instantiating pattern's
// variables (per base and the new bindings) makes it equal to ground,
// under the engine's congruence closure.
func (e *Engine) unify(pattern, ground lir.Atom, base substitution) (substitution, bool) {
	sub := cloneSub(base)
	for i, pa := range pattern.Args {
		ga := ground.Args[i]
		if v, ok := pa.(lir.Var); ok {
			if bound, ok := sub[v.Name]; ok {
				if !termsCompatible(bound, ga) && !e.eq.equal(bound, ga) {
					return nil, false
				}
				continue
			}
			sub[v.Name] = ga
			continue
		}
		if !termsCompatible(pa, ga) && !e.eq.equal(pa, ga) {
			return nil, false
		}
	}
	return sub, true
}

func termsCompatible(a, b lir.Term) bool {
	if _, ok := a.(lir.Unspecified); ok {
		return true
	}
	if _, ok := b.(lir.Unspecified); ok {
		return true
	}
	return lir.TermEqual(a, b)
}

func cloneSub(s substitution) substitution {
	out := make(substitution, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// instantiate replaces every Var in f with its binding in sub, leaving
// unbound variables untouched (so a Forall-quantified consequent not
// covered by the antecedents still substitutes what it can).
func instantiate(f lir.Formula, sub substitution) lir.Formula {
	switch x := f.(type) {
	case lir.Atom:
		return instantiateAtom(x, sub)
	case lir.Not:
		return lir.Not{Operand: instantiate(x.Operand, sub)}
	case lir.And:
		cs := make([]lir.Formula, len(x.Conjuncts))
		for i, c := range x.Conjuncts {
			cs[i] = instantiate(c, sub)
		}
		return lir.And{Conjuncts: cs}
	case lir.Or:
		ds := make([]lir.Formula, len(x.Disjuncts))
		for i, d := range x.Disjuncts {
			ds[i] = instantiate(d, sub)
		}
		return lir.Or{Disjuncts: ds}
	}
	return f
}

func instantiateAtom(a lir.Atom, sub substitution) lir.Atom {
	args := make([]lir.Term, len(a.Args))
	for i, arg := range a.Args {
		if v, ok := arg.(lir.Var); ok {
			if bound, ok := sub[v.Name]; ok {
				args[i] = bound
				continue
			}
		}
		args[i] = arg
	}
	return lir.Atom{Predicate: a.Predicate, Args: args}
}

func hasFreeVars(a lir.Atom) bool {
	for _, arg := range a.Args {
		if _, ok := arg.(lir.Var); ok {
			return true
		}
	}
	return false
}

// matchesPattern reports whether pattern (which may contain Vars,
// treated as wildcards here since this path only needs existence, not
// bindings) matches ground under the engine's congruence closure.
func matchesPattern(eq *congruence, pattern, ground []lir.Term) bool {
	for i, p := range pattern {
		if _, ok := p.(lir.Var); ok {
			continue
		}
		if !termsCompatible(p, ground[i]) && !eq.equal(p, ground[i]) {
			return false
		}
	}
	return true
}

// substituteVar replaces every free occurrence of name in f with term.
func substituteVar(f lir.Formula, name string, term lir.Term) lir.Formula {
	switch x := f.(type) {
	case lir.Atom:
		args := make([]lir.Term, len(x.Args))
		for i, a := range x.Args {
			if v, ok := a.(lir.Var); ok && v.Name == name {
				args[i] = term
			} else {
				args[i] = a
			}
		}
		return lir.Atom{Predicate: x.Predicate, Args: args}
	case lir.Not:
		return lir.Not{Operand: substituteVar(x.Operand, name, term)}
	case lir.And:
		cs := make([]lir.Formula, len(x.Conjuncts))
		for i, c := range x.Conjuncts {
			cs[i] = substituteVar(c, name, term)
		}
		return lir.And{Conjuncts: cs}
	case lir.Or:
		ds := make([]lir.Formula, len(x.Disjuncts))
		for i, d := range x.Disjuncts {
			ds[i] = substituteVar(d, name, term)
		}
		return lir.Or{Disjuncts: ds}
	case lir.Implies:
		return lir.Implies{Antecedent: substituteVar(x.Antecedent, name, term), Consequent: substituteVar(x.Consequent, name, term)}
	case lir.Iff:
		return lir.Iff{Left: substituteVar(x.Left, name, term), Right: substituteVar(x.Right, name, term)}
	case lir.Forall:
		if x.Var == name {
			return x
		}
		return lir.Forall{Var: x.Var, Body: substituteVar(x.Body, name, term)}
	case lir.Exists:
		if x.Var == name {
			return x
		}
		return lir.Exists{Var: x.Var, Body: substituteVar(x.Body, name, term)}
	case lir.Eq:
		return lir.Eq{Left: substituteTerm(x.Left, name, term), Right: substituteTerm(x.Right, name, term)}
	case lir.AbstractionRef:
		return lir.AbstractionRef{ID: x.ID, Body: substituteVar(x.Body, name, term)}
	}
	return f
}

func substituteTerm(t lir.Term, name string, with lir.Term) lir.Term {
	if v, ok := t.(lir.Var); ok && v.Name == name {
		return with
	}
	return t
}

// factKey produces a deduplication key for a ground (or pattern) atom.
func factKey(a lir.Atom) string {
	key := a.Predicate
	for _, arg := range a.Args {
		key += "|" + termKey(arg)
	}
	return key
}
