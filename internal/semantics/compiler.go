// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package semantics

import (
	"context"
	"fmt"
	"sort"

	"github.com/lojban-nesy/lojbanesy/internal/ast"
	"github.com/lojban-nesy/lojbanesy/internal/diagnostic"
	"github.com/lojban-nesy/lojbanesy/internal/lir"
	"github.com/lojban-nesy/lojbanesy/internal/oracle"
	"github.com/lojban-nesy/lojbanesy/internal/predicate"
)

// Compiler translates parsed AST sentences into LIR formulas, threading
// a Discourse context across calls within one session.
type Compiler struct {
	dict      *predicate.Dictionary
	discourse *Discourse
	oracle    oracle.Scorer
}

// New constructs a Compiler backed by dict and discourse. Passing nil
// for either uses the package defaults (predicate.Default(), a fresh
// Discourse).
func New(dict *predicate.Dictionary, discourse *Discourse) *Compiler {
	if dict == nil {
		dict = predicate.Default()
	}
	if discourse == nil {
		discourse = NewDiscourse()
	}
	return &Compiler{dict: dict, discourse: discourse}
}

// Discourse exposes the compiler's discourse context, e.g. for a
// session-level :clear.
func (c *Compiler) Discourse() *Discourse { return c.discourse }

// SetOracle wires an optional external predicate-weighting oracle: when
// set, an unrecognized predicate's diagnostic is annotated with the
// oracle's confidence weight for the guessed arity instead of relying
// on the default arity alone. A nil oracle (the default) leaves
// unknown-predicate handling unchanged.
func (c *Compiler) SetOracle(s oracle.Scorer) { c.oracle = s }

// Compile translates a single parsed sentence into LIR, returning any
// diagnostics raised (unknown predicates, unresolved anaphora) alongside
// the formula. Compile never fails outright: every sentence compiles to
// some formula, degrading gracefully per diagnostic.
func (c *Compiler) Compile(arena *ast.Arena, sentenceID ast.NodeID) (lir.Formula, []diagnostic.Diagnostic) {
	sent := arena.Sentence(sentenceID)

	var diags []diagnostic.Diagnostic
	core, extra := c.translatePredication(arena, sent.Predication, &diags)

	all := append([]lir.Formula{core}, extra...)
	formula := conjoin(all)

	for i := len(sent.Prenex) - 1; i >= 0; i-- {
		v := arena.Sumti(sent.Prenex[i])
		switch v.Quantifier {
		case "ro":
			formula = lir.Forall{Var: v.Text, Body: formula}
		case "no":
			formula = lir.Not{Operand: lir.Exists{Var: v.Text, Body: formula}}
		default: // "su'o" or unmarked: existential, invariant I4's default
			formula = lir.Exists{Var: v.Text, Body: formula}
		}
	}

	formula = canonicalize(formula)
	c.discourse.RecordPredication(formula)
	return formula, diags
}

func conjoin(fs []lir.Formula) lir.Formula {
	if len(fs) == 1 {
		return fs[0]
	}
	return lir.And{Conjuncts: fs}
}

// translatePredication returns the core formula for pred, plus any extra
// conjuncts description/abstraction desugaring produced. It dispatches
// to the connective-aware paths before falling through to buildCore for
// the common case of a single selbri over a fixed argument list.
func (c *Compiler) translatePredication(arena *ast.Arena, predID ast.NodeID, diags *[]diagnostic.Diagnostic) (lir.Formula, []lir.Formula) {
	pred := arena.Predication(predID)
	selbri := arena.Selbri(pred.Selbri)

	if selbri.Kind == ast.SelbriConnected {
		return c.translateConnectedSelbri(arena, pred, selbri, diags)
	}

	if place, conn, ok := c.findConnectedSumti(arena, pred); ok {
		return c.translateConnectedSumti(arena, pred, selbri, place, conn, diags)
	}

	return c.buildCore(arena, pred, selbri, diags)
}

// translateConnectedSelbri builds two atoms against the same terms, one
// per branch of a je/ja/jo/ju-connected selbri, and combines them per
// the connective (§4.3 step 4: connected selbri).
func (c *Compiler) translateConnectedSelbri(arena *ast.Arena, pred ast.Predication, selbri ast.Selbri, diags *[]diagnostic.Diagnostic) (lir.Formula, []lir.Formula) {
	leftCore, leftExtra := c.buildCore(arena, pred, arena.Selbri(selbri.Modifier), diags)
	rightCore, rightExtra := c.buildCore(arena, pred, arena.Selbri(selbri.Head), diags)
	core := combineConnective(selbri.ConnectiveText, leftCore, rightCore)
	return core, append(leftExtra, rightExtra...)
}

// findConnectedSumti scans pred's filled places in ascending (sorted,
// deterministic) place-number order for the first SumtiConnected node.
// At most one connected sumti per predication is supported; any others
// are left for a later revision.
func (c *Compiler) findConnectedSumti(arena *ast.Arena, pred ast.Predication) (int, ast.Sumti, bool) {
	placeNums := make([]int, 0, len(pred.Places))
	for p := range pred.Places {
		placeNums = append(placeNums, p)
	}
	sort.Ints(placeNums)
	for _, p := range placeNums {
		s := arena.Sumti(pred.Places[p])
		if s.Kind == ast.SumtiConnected {
			return p, s, true
		}
	}
	return 0, ast.Sumti{}, false
}

// translateConnectedSumti builds two atoms, one with place filled by the
// connected sumti's left branch and one with its right branch, and
// combines them per the connective.
func (c *Compiler) translateConnectedSumti(arena *ast.Arena, pred ast.Predication, selbri ast.Selbri, place int, conn ast.Sumti, diags *[]diagnostic.Diagnostic) (lir.Formula, []lir.Formula) {
	leftPred := pred
	leftPred.Places = clonePlaces(pred.Places)
	leftPred.Places[place] = conn.ConnectiveLeft

	rightPred := pred
	rightPred.Places = clonePlaces(pred.Places)
	rightPred.Places[place] = conn.ConnectiveRight

	leftCore, leftExtra := c.buildCore(arena, leftPred, selbri, diags)
	rightCore, rightExtra := c.buildCore(arena, rightPred, selbri, diags)
	core := combineConnective(conn.Connective, leftCore, rightCore)
	return core, append(leftExtra, rightExtra...)
}

func clonePlaces(m map[int]ast.NodeID) map[int]ast.NodeID {
	out := make(map[int]ast.NodeID, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// combineConnective maps a logical-connective cmavo to its LIR
// combinator: je/.e conjunction, ja/.a disjunction, jo/.o biconditional,
// ju/.u exclusive-or (biconditional's negation).
func combineConnective(text string, left, right lir.Formula) lir.Formula {
	switch text {
	case "ja", ".a":
		return lir.Or{Disjuncts: []lir.Formula{left, right}}
	case "jo", ".o":
		return lir.Iff{Left: left, Right: right}
	case "ju", ".u":
		return lir.Not{Operand: lir.Iff{Left: left, Right: right}}
	default: // "je", ".e"
		return lir.And{Conjuncts: []lir.Formula{left, right}}
	}
}

// buildCore translates one (pred, selbri) pair into an atom (or its
// negation), filling argument places from pred.Places and, if selbri
// carries bound arguments (be/bei), from those too.
func (c *Compiler) buildCore(arena *ast.Arena, pred ast.Predication, selbri ast.Selbri, diags *[]diagnostic.Diagnostic) (lir.Formula, []lir.Formula) {
	name, perms, negated, boundArgs := c.resolveSelbriName(arena, selbri)

	entry, known := c.dict.Lookup(name)
	if !known {
		msg := "unrecognized predicate " + name + ", assuming arity " + itoa(entry.Arity)
		if c.oracle != nil {
			if weight, err := c.oracle.ScorePredicate(context.Background(), name, argTexts(arena, pred)); err == nil {
				msg = fmt.Sprintf("%s (oracle confidence %.2f)", msg, weight)
			}
		}
		*diags = append(*diags, diagnostic.Diagnostic{
			Severity: diagnostic.SeverityWarning,
			Span:     pred.Span,
			Code:     diagnostic.CodeSemUnknownPredicate,
			Message:  msg,
		})
	}

	maxPlace := entry.Arity
	for p := range pred.Places {
		if p > maxPlace {
			maxPlace = p
		}
	}
	for i := range boundArgs {
		if pos := 2 + i; pos > maxPlace {
			maxPlace = pos
		}
	}

	args := make([]lir.Term, maxPlace)
	for i := range args {
		args[i] = lir.Unspecified{}
	}

	var extra []lir.Formula
	for place, sumtiID := range pred.Places {
		term, conjuncts := c.translateSumti(arena, sumtiID, diags)
		if place-1 >= 0 && place-1 < len(args) {
			args[place-1] = term
		}
		extra = append(extra, conjuncts...)
	}

	// be/bei bound arguments fill positions 2..N (index 1..); the outer
	// terms still supply position 1.
	for i, boundID := range boundArgs {
		term, conjuncts := c.translateSumti(arena, boundID, diags)
		if pos := 1 + i; pos >= 0 && pos < len(args) {
			args[pos] = term
		}
		extra = append(extra, conjuncts...)
	}

	for _, p := range perms {
		if p >= 1 && p < len(args) {
			args[0], args[p] = args[p], args[0]
		}
	}

	var core lir.Formula = lir.Atom{Predicate: name, Args: args}
	if pred.Negated != negated { // two "na"s cancel
		core = lir.Not{Operand: core}
	}
	return core, extra
}

// resolveSelbriName flattens a (possibly tanru/permuted/grouped/negated/
// bind-args) selbri into a single compound predicate name, its
// place-permutation operators (outermost first), whether it carries a
// selbri-level negation, and any be/bei-bound arguments.
func (c *Compiler) resolveSelbriName(arena *ast.Arena, s ast.Selbri) (name string, perms []int, negated bool, boundArgs []ast.NodeID) {
	switch s.Kind {
	case ast.SelbriSimple:
		return s.PredicateText, nil, false, nil
	case ast.SelbriTanru:
		modName, modPerms, modNeg, modBound := c.resolveSelbriName(arena, arena.Selbri(s.Modifier))
		headName, headPerms, headNeg, headBound := c.resolveSelbriName(arena, arena.Selbri(s.Head))
		bound := headBound
		if bound == nil {
			bound = modBound
		}
		return modName + "_" + headName, append(modPerms, headPerms...), modNeg != headNeg, bound
	case ast.SelbriPermuted:
		innerName, innerPerms, innerNeg, innerBound := c.resolveSelbriName(arena, arena.Selbri(s.Inner))
		return innerName, append([]int{s.Permutation}, innerPerms...), innerNeg, innerBound
	case ast.SelbriGrouped:
		return c.resolveSelbriName(arena, arena.Selbri(s.Inner))
	case ast.SelbriNegated:
		innerName, innerPerms, innerNeg, innerBound := c.resolveSelbriName(arena, arena.Selbri(s.Inner))
		return innerName, innerPerms, !innerNeg, innerBound
	case ast.SelbriBindArgs:
		innerName, innerPerms, innerNeg, innerBound := c.resolveSelbriName(arena, arena.Selbri(s.Inner))
		bound := s.BoundArgs
		if bound == nil {
			bound = innerBound
		}
		return innerName, innerPerms, innerNeg, bound
	}
	return "", nil, false, nil
}

// translateSumti returns the Term a sumti node denotes, plus any extra
// top-level conjuncts its translation needed (description/abstraction
// desugaring, relative-clause predications).
func (c *Compiler) translateSumti(arena *ast.Arena, sumtiID ast.NodeID, diags *[]diagnostic.Diagnostic) (lir.Term, []lir.Formula) {
	s := arena.Sumti(sumtiID)

	var term lir.Term
	var extra []lir.Formula

	switch s.Kind {
	case ast.SumtiName, ast.SumtiPronoun:
		term = c.discourse.BindName(s.Text)

	case ast.SumtiVariable:
		term = lir.Var{Name: s.Text}

	case ast.SumtiUnspecified:
		term = lir.Unspecified{}

	case ast.SumtiQuotedWord, ast.SumtiQuotedText:
		term = lir.Const{Name: s.Text}

	case ast.SumtiAnaphor:
		if s.Text == "go'i" {
			if f, ok := c.discourse.LastPredication(); ok {
				id := c.discourse.FreshAbstractionID()
				term = lir.AbstractionTerm{ID: id}
				extra = append(extra, lir.AbstractionRef{ID: id, Body: f})
				break
			}
		} else if t, ok := c.discourse.LastSumti(); ok {
			term = t
			break
		}
		*diags = append(*diags, diagnostic.Diagnostic{
			Severity: diagnostic.SeverityWarning,
			Span:     s.Span,
			Code:     diagnostic.CodeSemUnresolvedAnaphor,
			Message:  "no prior referent for " + s.Text,
		})
		term = lir.Unspecified{}

	case ast.SumtiDescription:
		skolem := c.discourse.FreshSkolem()
		term = skolem
		inner := arena.Selbri(s.Inner)
		name, perms, _, _ := c.resolveSelbriName(arena, inner)
		_ = perms
		extra = append(extra, lir.Atom{Predicate: name, Args: []lir.Term{skolem}})
		for _, relID := range s.RelativeClauses {
			rel := arena.RelativeClause(relID)
			relFormula, relExtra := c.translatePredication(arena, rel.Predication, diags)
			relFormula = substituteFirstUnspecified(relFormula, skolem)
			extra = append(extra, relFormula)
			extra = append(extra, relExtra...)
		}

	case ast.SumtiAbstraction:
		body := arena.Sentence(s.Body)
		bodyFormula, bodyExtra := c.translatePredication(arena, body.Predication, diags)
		bodyFormula = conjoin(append([]lir.Formula{bodyFormula}, bodyExtra...))
		id := c.discourse.FreshAbstractionID()
		term = lir.AbstractionTerm{ID: id}
		extra = append(extra, lir.AbstractionRef{ID: id, Body: bodyFormula})

	default:
		term = lir.Unspecified{}
	}

	c.discourse.RecordSumti(term)
	return term, extra
}

// substituteFirstUnspecified replaces the first Unspecified argument
// found in a relative-clause atom with the sumti being qualified: "le
// mlatu poi blanu" means the skolemized cat itself fills poi's bridi's
// elided x1.
func substituteFirstUnspecified(f lir.Formula, with lir.Term) lir.Formula {
	if not, ok := f.(lir.Not); ok {
		return lir.Not{Operand: substituteFirstUnspecified(not.Operand, with)}
	}
	atom, ok := f.(lir.Atom)
	if !ok {
		return f
	}
	args := make([]lir.Term, len(atom.Args))
	copy(args, atom.Args)
	replaced := false
	for i, a := range args {
		if _, isUnspec := a.(lir.Unspecified); isUnspec && !replaced {
			args[i] = with
			replaced = true
		}
	}
	if !replaced && len(args) > 0 {
		args[0] = with
	}
	return lir.Atom{Predicate: atom.Predicate, Args: args}
}

// argTexts collects the surface text of pred's filled argument places,
// in place order, for an oracle call's args parameter.
func argTexts(arena *ast.Arena, pred ast.Predication) []string {
	if len(pred.Places) == 0 {
		return nil
	}
	texts := make([]string, 0, len(pred.Places))
	for _, sumtiID := range pred.Places {
		texts = append(texts, arena.Sumti(sumtiID).Text)
	}
	return texts
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	if neg {
		b = append([]byte{'-'}, b...)
	}
	return string(b)
}

