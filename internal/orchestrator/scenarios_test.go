// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package orchestrator

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/lojban-nesy/lojbanesy/internal/config"
	"github.com/lojban-nesy/lojbanesy/internal/diagnostic"
	"github.com/lojban-nesy/lojbanesy/internal/lir"
	"github.com/lojban-nesy/lojbanesy/internal/reasoning"
)

// TestScenarios runs the end-to-end behavioral suite below through the
// ginkgo runner, the way the rest of this module's integration-style
// suites are driven.
func TestScenarios(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Orchestrator Scenario Suite")
}

// assertOK executes input in ModeAssert and requires no error
// diagnostics (warnings, e.g. an unrecognized predicate, are fine).
func assertOK(o *Orchestrator, input string) ExecutionResult {
	result, diags := o.Execute(context.Background(), input, ModeAssert)
	Expect(diagnostic.HasErrors(diags)).To(BeFalse(), "unexpected error diagnostics for %q: %v", input, diags)
	return result
}

func queryVerdict(o *Orchestrator, input string) reasoning.Verdict {
	result, diags := o.Execute(context.Background(), input, ModeQuery)
	Expect(diagnostic.HasErrors(diags)).To(BeFalse(), "unexpected error diagnostics for %q: %v", input, diags)
	return result.Verdict
}

// findAtom walks a (possibly And-conjoined) formula looking for the
// first Atom whose predicate matches name, the way a reader would
// inspect a compiled bridi's shape without caring about conjunct order.
func findAtom(f lir.Formula, name string) (lir.Atom, bool) {
	switch x := f.(type) {
	case lir.Atom:
		if x.Predicate == name {
			return x, true
		}
	case lir.And:
		for _, c := range x.Conjuncts {
			if a, ok := findAtom(c, name); ok {
				return a, true
			}
		}
	case lir.Not:
		return findAtom(x.Operand, name)
	}
	return lir.Atom{}, false
}

var _ = Describe("Orchestrator scenarios", func() {
	var o *Orchestrator

	BeforeEach(func() {
		o = New(config.Default(), nil)
	})

	// Scenario 1: simple assertion and query.
	Describe("simple assertion and query", func() {
		It("entails a fact it was just told", func() {
			assertOK(o, "mi prami do")
			Expect(queryVerdict(o, "mi prami do")).To(Equal(reasoning.Entailed))
		})
	})

	// Scenario 2: place permutation via se.
	Describe("place permutation", func() {
		It("entails the converted bridi naming the same relationship", func() {
			assertOK(o, "mi prami do")
			Expect(queryVerdict(o, "do se prami mi")).To(Equal(reasoning.Entailed))
		})
	})

	// Scenario 3: selbri-level negation ("na" between the leading sumti
	// and the selbri, not at the sentence start). This is the exact
	// placement a previous pass of this parser failed to recognize.
	Describe("selbri-level negation", func() {
		It("negates only the asserted bridi, not its affirmative counterpart", func() {
			assertOK(o, "mi na prami do")
			Expect(queryVerdict(o, "mi prami do")).To(Equal(reasoning.NotEntailed))
			Expect(queryVerdict(o, "mi na prami do")).To(Equal(reasoning.Entailed))
		})
	})

	// Scenario 4: description with existential import. A description
	// mints a fresh Skolem constant on every compile, so re-querying the
	// identical source text would compare two independently-witnessed
	// constants rather than testing what was actually asserted; querying
	// with a bound variable exercises the same existential-match path
	// without that false negative.
	Describe("description with existential import", func() {
		It("entails a bound-variable query over the witnessed individual", func() {
			assertOK(o, "lo gerku cu blabi")
			Expect(queryVerdict(o, "da blabi")).To(Equal(reasoning.Entailed))
		})

		It("forgets the witness after a clear", func() {
			assertOK(o, "lo gerku cu blabi")
			o.Clear()
			Expect(queryVerdict(o, "da blabi")).To(Equal(reasoning.Undetermined))
		})
	})

	// Scenario 5: relative clause qualifying a description.
	Describe("relative clause", func() {
		It("entails both the description's own claim and the clause's claim", func() {
			assertOK(o, "lo gerku poi barda cu blabi")
			Expect(queryVerdict(o, "da blabi")).To(Equal(reasoning.Entailed))
			Expect(queryVerdict(o, "da barda")).To(Equal(reasoning.Entailed))
		})
	})

	// Scenario 6: metalinguistic quoting. "si" is ordinarily the erasure
	// cmavo, but zo-quoting must preserve it as a literal word.
	Describe("metalinguistic quoting", func() {
		It("keeps the quoted word as a literal argument, not an erasure", func() {
			result := assertOK(o, "zo si cu lojbo valsi")
			atom, ok := findAtom(result.Formula, "lojbo_valsi")
			Expect(ok).To(BeTrue(), "expected a lojbo_valsi atom in %v", result.Formula)
			Expect(atom.Args).NotTo(BeEmpty())
			Expect(atom.Args[0]).To(Equal(lir.Const{Name: "si"}))
		})
	})

	// Scenario 7 (supplemental): connected selbri and connected sumti.
	Describe("connected selbri", func() {
		It("asserts each branch of a je-connected selbri as its own fact", func() {
			assertOK(o, "mi prami je nelci do")
			Expect(queryVerdict(o, "mi prami do")).To(Equal(reasoning.Entailed))
			Expect(queryVerdict(o, "mi nelci do")).To(Equal(reasoning.Entailed))
		})
	})

	Describe("connected sumti", func() {
		It("asserts each branch of an .e-connected sumti as its own fact", func() {
			assertOK(o, "mi prami do .e la djan")
			Expect(queryVerdict(o, "mi prami do")).To(Equal(reasoning.Entailed))
			Expect(queryVerdict(o, "mi prami la djan")).To(Equal(reasoning.Entailed))
		})
	})

	// Scenario 8 (supplemental): quantifiers and bound arguments.
	Describe("prenex quantifiers", func() {
		It("entails a bare query matching a universally asserted pattern", func() {
			assertOK(o, "ro da zo'u da gerku")
			Expect(queryVerdict(o, "da gerku")).To(Equal(reasoning.Entailed))
		})

		It("parses a bare quantified description without error", func() {
			assertOK(o, "ro gerku cu blabi")
		})

		It("treats a no-quantified prenex assertion as a graceful no-op", func() {
			assertOK(o, "no da zo'u da mlatu")
			Expect(queryVerdict(o, "da mlatu")).To(Equal(reasoning.Undetermined))
		})
	})

	Describe("bound arguments", func() {
		It("fills places 2..N from be/bei terms before any trailing terms", func() {
			result := assertOK(o, "mi klama be le zarci bei le purdi")
			atom, ok := findAtom(result.Formula, "klama")
			Expect(ok).To(BeTrue(), "expected a klama atom in %v", result.Formula)
			Expect(atom.Args).To(HaveLen(5))
			Expect(atom.Args[0]).To(Equal(lir.Const{Name: "mi"}))
			Expect(atom.Args[1]).To(BeAssignableToTypeOf(lir.SkolemConst{}))
			Expect(atom.Args[2]).To(BeAssignableToTypeOf(lir.SkolemConst{}))
			Expect(atom.Args[1]).NotTo(Equal(atom.Args[2]))
		})
	})
})
