// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

// Package reasoning implements the assert/query/clear reasoning core: a
// bounded equality-saturation engine over ground and universally
// quantified LIR formulas.
//
// Facts and rules live in a single shared store guarded by one mutex —
// asserts and queries are serialized, matching the spec's requirement
// that reasoning be deterministic and that a query never observes a
// partially applied assert. Equality is tracked with a union-find
// congruence closure (a minimal e-graph: one equivalence class per
// known-equal constant, consulted afresh at every fact lookup) rather
// than a full rewrite-rule e-graph. Place permutations (se/te/ve/xe) are
// resolved by the semantic compiler; the engine has no permutation rule.
package reasoning

import (
	"sync"

	"github.com/lojban-nesy/lojbanesy/internal/diagnostic"
	"github.com/lojban-nesy/lojbanesy/internal/lir"
)

// DefaultMaxSteps bounds one saturation run absent an explicit override.
const DefaultMaxSteps = 100

// Verdict is a query's three-valued outcome.
type Verdict uint8

const (
	// Undetermined means neither the query nor its negation was
	// derived, whether saturation reached a fixpoint or ran out of its
	// step budget. A query that is merely unproven is not NotEntailed.
	Undetermined Verdict = iota
	// Entailed means the query formula was derived from the asserted
	// facts and rules.
	Entailed
	// NotEntailed means the query's negation was derived.
	NotEntailed
)

func (v Verdict) String() string {
	switch v {
	case Entailed:
		return "entailed"
	case NotEntailed:
		return "not-entailed"
	default:
		return "undetermined"
	}
}

// Engine is the reasoning core: a single process-wide instance per
// session, holding ground facts, rules, and the congruence closure.
type Engine struct {
	mu        sync.Mutex
	facts     map[string]lir.Atom // literal key -> ground atom
	negatives map[string]lir.Atom // literal key -> negated atom
	rules     []rule
	eq        *congruence
	maxSteps  int
	// applications counts rule firings across this engine's lifetime,
	// until the next Clear.
	applications int
}

// New constructs an empty Engine. maxSteps <= 0 uses DefaultMaxSteps.
func New(maxSteps int) *Engine {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &Engine{
		facts:     make(map[string]lir.Atom),
		negatives: make(map[string]lir.Atom),
		eq:        newCongruence(),
		maxSteps:  maxSteps,
	}
}

// Clear resets the engine to empty, as required on a session's explicit
// reset alongside the discourse context.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.facts = make(map[string]lir.Atom)
	e.negatives = make(map[string]lir.Atom)
	e.rules = nil
	e.eq = newCongruence()
	e.applications = 0
}

// Facts returns every ground atom currently asserted as a positive
// fact, in no particular order, for a REPL's :facts debug dump. Callers
// needing a :facts <glob> filter apply it themselves over Atom.Predicate.
func (e *Engine) Facts() []lir.Atom {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]lir.Atom, 0, len(e.facts))
	for _, a := range e.facts {
		out = append(out, a)
	}
	return out
}

// Assert adds formula to the knowledge base, decomposing Boolean
// structure (conjunctions, double negation, De Morgan, biconditionals)
// and Skolemizing any existential quantifier encountered, per the fixed
// rule schedule.
func (e *Engine) Assert(formula lir.Formula) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.assertNormalized(normalize(formula))
}

func (e *Engine) assertNormalized(f lir.Formula) {
	switch x := f.(type) {
	case lir.And:
		for _, c := range x.Conjuncts {
			e.assertNormalized(c)
		}
	case lir.Forall:
		e.assertNormalized(x.Body)
	case lir.Exists:
		// Assertion-time Skolemization: replace the bound variable with
		// a fresh constant standing for "some witness", per invariant
		// that asserted existentials commit to a concrete referent.
		sk := e.eq.freshSkolem()
		e.assertNormalized(substituteVar(x.Body, x.Var, sk))
	case lir.Eq:
		e.eq.union(x.Left, x.Right)
	case lir.Atom:
		e.eq.observe(x)
		e.facts[factKey(x)] = x
	case lir.Not:
		if atom, ok := x.Operand.(lir.Atom); ok {
			e.eq.observe(atom)
			e.negatives[factKey(atom)] = atom
			return
		}
		// Not(Not(x)) and De Morgan forms are already eliminated by
		// normalize; anything else (Not(Implies), Not(Forall)...)
		// degrades to a no-op fact rather than a panic.
	case lir.Implies:
		e.rules = append(e.rules, ruleFromImplies(x))
	case lir.Iff:
		e.rules = append(e.rules, ruleFromImplies(lir.Implies{Antecedent: x.Left, Consequent: x.Right}))
		e.rules = append(e.rules, ruleFromImplies(lir.Implies{Antecedent: x.Right, Consequent: x.Left}))
	case lir.Or:
		e.rules = append(e.rules, unitResolutionRules(x)...)
	case lir.AbstractionRef:
		e.assertNormalized(x.Body)
	}
}

// Query evaluates formula against the current knowledge base, running
// bounded forward-chaining saturation first. It returns the verdict
// plus any diagnostics (budget exhaustion).
func (e *Engine) Query(formula lir.Formula) (Verdict, []diagnostic.Diagnostic) {
	e.mu.Lock()
	defer e.mu.Unlock()

	exhausted := e.saturate()
	v := e.evaluate(normalize(formula))

	var diags []diagnostic.Diagnostic
	if v == Undetermined && exhausted {
		diags = append(diags, diagnostic.Diagnostic{
			Severity: diagnostic.SeverityWarning,
			Code:     diagnostic.CodeReasonBudgetExhausted,
			Message:  "saturation step budget exhausted before a verdict was reached",
		})
	}
	return v, diags
}

// saturate runs forward chaining to a fixpoint or until maxSteps rule
// firings have happened, whichever comes first. It returns true if the
// step budget was the reason saturation stopped (as opposed to reaching
// a genuine fixpoint).
func (e *Engine) saturate() bool {
	steps := 0
	for steps < e.maxSteps {
		progressed := false
		for _, r := range e.rules {
			for _, sub := range e.matchAntecedents(r) {
				consequent := instantiate(r.consequent, sub)
				if atom, ok := consequent.(lir.Atom); ok {
					e.eq.observe(atom)
					key := factKey(atom)
					if _, exists := e.facts[key]; !exists && !e.factMatches(atom) {
						e.facts[key] = atom
						progressed = true
					}
				}
				e.applications++
				steps++
				if steps >= e.maxSteps {
					return true
				}
			}
		}
		if !progressed {
			return false
		}
	}
	return true
}

// evaluate answers formula purely by lookup against the (already
// saturated) fact/negative sets, recursing through Boolean structure.
func (e *Engine) evaluate(f lir.Formula) Verdict {
	switch x := f.(type) {
	case lir.Atom:
		if !hasFreeVars(x) {
			if e.factMatches(x) {
				return Entailed
			}
			if e.negativeMatches(x) {
				return NotEntailed
			}
			return Undetermined
		}
		if v, ok := e.matchExistentialAtom(x); ok {
			return v
		}
		return Undetermined
	case lir.Not:
		switch e.evaluate(x.Operand) {
		case Entailed:
			return NotEntailed
		case NotEntailed:
			return Entailed
		default:
			return Undetermined
		}
	case lir.And:
		return e.evaluateAll(x.Conjuncts, true)
	case lir.Or:
		return e.evaluateAll(x.Disjuncts, false)
	case lir.Exists:
		return e.evaluateQuantified(x.Var, x.Body)
	case lir.Forall:
		return e.evaluateQuantified(x.Var, x.Body)
	case lir.Eq:
		if e.eq.equal(x.Left, x.Right) {
			return Entailed
		}
		return Undetermined
	}
	return Undetermined
}

// evaluateAll combines n sub-verdicts with AND (all must be Entailed)
// or OR (any Entailed suffices) semantics.
func (e *Engine) evaluateAll(fs []lir.Formula, isAnd bool) Verdict {
	sawUndetermined := false
	for _, f := range fs {
		v := e.evaluate(f)
		if isAnd {
			if v == NotEntailed {
				return NotEntailed
			}
			if v == Undetermined {
				sawUndetermined = true
			}
		} else {
			if v == Entailed {
				return Entailed
			}
			if v == Undetermined {
				sawUndetermined = true
			}
		}
	}
	if sawUndetermined {
		return Undetermined
	}
	if isAnd {
		return Entailed
	}
	return NotEntailed
}

// evaluateQuantified answers an Exists/Forall query by trying every
// constant mentioned anywhere in the fact base as a witness/counterexample.
func (e *Engine) evaluateQuantified(v string, body lir.Formula) Verdict {
	constants := e.eq.knownConstants()
	sawUndetermined := false
	anyEntailed := false
	allEntailed := true
	for _, c := range constants {
		verdict := e.evaluate(substituteVar(body, v, c))
		switch verdict {
		case Entailed:
			anyEntailed = true
		case NotEntailed:
			allEntailed = false
		default:
			sawUndetermined = true
			allEntailed = false
		}
	}
	if anyEntailed {
		return Entailed
	}
	if len(constants) > 0 && allEntailed {
		return Entailed
	}
	if sawUndetermined || len(constants) == 0 {
		return Undetermined
	}
	return NotEntailed
}

// factMatches reports whether ground is entailed by the fact set,
// either literally or via the congruence closure over asserted
// equalities (checked independent of assertion order).
func (e *Engine) factMatches(ground lir.Atom) bool {
	if _, ok := e.facts[factKey(ground)]; ok {
		return true
	}
	for _, fact := range e.facts {
		if atomsCongruent(e.eq, fact, ground) {
			return true
		}
	}
	return false
}

// negativeMatches is factMatches's counterpart over explicitly asserted
// negations.
func (e *Engine) negativeMatches(ground lir.Atom) bool {
	if _, ok := e.negatives[factKey(ground)]; ok {
		return true
	}
	for _, neg := range e.negatives {
		if atomsCongruent(e.eq, neg, ground) {
			return true
		}
	}
	return false
}

func atomsCongruent(eq *congruence, a, b lir.Atom) bool {
	if a.Predicate != b.Predicate || len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if !eq.equal(a.Args[i], b.Args[i]) {
			return false
		}
	}
	return true
}

// matchExistentialAtom handles an atom containing Var terms queried
// directly (without an explicit Exists wrapper) by treating any free
// variable as implicitly existential, matching common usage like
// querying "klama(da, le-zarci-skolem, ...)".
func (e *Engine) matchExistentialAtom(query lir.Atom) (Verdict, bool) {
	hasVar := false
	for _, a := range query.Args {
		if _, ok := a.(lir.Var); ok {
			hasVar = true
			break
		}
	}
	if !hasVar {
		return Undetermined, false
	}
	for _, atom := range e.facts {
		if atom.Predicate != query.Predicate || len(atom.Args) != len(query.Args) {
			continue
		}
		if matchesPattern(e.eq, query.Args, atom.Args) {
			return Entailed, true
		}
	}
	return Undetermined, false
}
