// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package reasoning

import "github.com/lojban-nesy/lojbanesy/internal/lir"

// Step is one derivation step in a Proof: a ground fact together with
// the rule antecedents (if any) that produced it. A Step with no
// Antecedents is an asserted axiom rather than a derived fact.
type Step struct {
	Conclusion  lir.Formula
	Antecedents []lir.Formula
}

// Proof is the derivation internal/orchestrator and the REPL's
// :explain-style query surface use to justify a query's verdict, rather
// than handing back an opaque true/false.
type Proof struct {
	Verdict Verdict
	Steps   []Step
}

// Explain answers formula the same way Query does, but additionally
// walks the saturated fact set backward from the queried atom to the
// asserted facts and rule firings that justify it. Explain reruns
// saturation (cheap: the engine is already saturated after any prior
// Query in the same session) so it can be called standalone.
func (e *Engine) Explain(formula lir.Formula) Proof {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.saturate()
	f := normalize(formula)
	verdict := e.evaluate(f)

	proof := Proof{Verdict: verdict}
	if atom, ok := f.(lir.Atom); ok {
		proof.Steps = e.explainAtom(atom, make(map[string]bool))
	}
	return proof
}

// explainAtom finds one rule application (if any) whose consequent
// produced atom, and recurses into its antecedents. visited guards
// against cycling on a fact that was its own antecedent transitively.
func (e *Engine) explainAtom(atom lir.Atom, visited map[string]bool) []Step {
	key := factKey(atom)
	if visited[key] {
		return nil
	}
	visited[key] = true

	for _, r := range e.rules {
		consequentAtom, ok := r.consequent.(lir.Atom)
		if !ok {
			continue
		}
		for _, sub := range e.matchAntecedents(r) {
			if !atomsCongruent(e.eq, instantiateAtom(consequentAtom, sub), atom) {
				continue
			}
			var antecedentFormulas []lir.Formula
			var nested []Step
			for _, ant := range r.antecedents {
				inst := instantiateAtom(ant, sub)
				antecedentFormulas = append(antecedentFormulas, inst)
				nested = append(nested, e.explainAtom(inst, visited)...)
			}
			steps := append(nested, Step{Conclusion: atom, Antecedents: antecedentFormulas})
			return steps
		}
	}
	// No rule produced it: either it's an asserted axiom or unknown.
	return []Step{{Conclusion: atom}}
}
