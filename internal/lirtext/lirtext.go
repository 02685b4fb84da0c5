// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

// Package lirtext defines a prefix s-expression surface syntax for LIR
// formulas and a participle-built parser/printer pair for it, used by
// the REPL's :ir dump and by round-trip tests that need a textual LIR
// fixture format independent of the semantic compiler.
package lirtext

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/lojban-nesy/lojbanesy/internal/lir"
)

// sexprLexer tokenizes the LIR surface syntax. Order matters: the
// Skolem and Abstract patterns must precede Ident since they share its
// character class.
var sexprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Var", Pattern: `\?[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Skolem", Pattern: `sk[0-9]+\b`},
	{Name: "Abstract", Pattern: `#[a-zA-Z0-9_]+`},
	{Name: "Underscore", Pattern: `_`},
	{Name: "Ident", Pattern: `[a-zA-Z][a-zA-Z0-9'_-]*`},
	{Name: "Punct", Pattern: `[()]`},
	{Name: "whitespace", Pattern: `\s+`},
})

// Formula is the parsed surface form of a lir.Formula. Exactly one
// field is non-nil, naming the matched alternative.
type Formula struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Atom    *AtomNode      `parser:"  '(' 'atom' @@ ')'" json:"atom,omitempty"`
	And     *FormulaList   `parser:"| '(' 'and' @@ ')'" json:"and,omitempty"`
	Or      *FormulaList   `parser:"| '(' 'or' @@ ')'" json:"or,omitempty"`
	Not     *Formula       `parser:"| '(' 'not' @@ ')'" json:"not,omitempty"`
	Implies *BinFormula    `parser:"| '(' 'implies' @@ ')'" json:"implies,omitempty"`
	Iff     *BinFormula    `parser:"| '(' 'iff' @@ ')'" json:"iff,omitempty"`
	Forall  *Quantifier    `parser:"| '(' 'forall' @@ ')'" json:"forall,omitempty"`
	Exists  *Quantifier    `parser:"| '(' 'exists' @@ ')'" json:"exists,omitempty"`
	Eq      *EqNode        `parser:"| '(' 'eq' @@ ')'" json:"eq,omitempty"`
	Abs     *AbsNode       `parser:"| '(' 'abs' @@ ')'" json:"abs,omitempty"`
}

// AtomNode is a predicate applied to zero or more terms.
type AtomNode struct {
	Pos       lexer.Position `parser:"" json:"-"`
	Predicate string         `parser:"@Ident" json:"predicate"`
	Args      []*Term        `parser:"@@*" json:"args,omitempty"`
}

// FormulaList backs and/or, which both take one or more operands.
type FormulaList struct {
	Pos   lexer.Position `parser:"" json:"-"`
	First *Formula       `parser:"@@" json:"first"`
	Rest  []*Formula     `parser:"@@*" json:"rest,omitempty"`
}

func (l *FormulaList) all() []*Formula {
	return append([]*Formula{l.First}, l.Rest...)
}

// BinFormula backs implies/iff, each exactly two operands.
type BinFormula struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Left  *Formula       `parser:"@@" json:"left"`
	Right *Formula       `parser:"@@" json:"right"`
}

// Quantifier backs forall/exists: a bound variable and a body formula.
type Quantifier struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Var  string         `parser:"@Var" json:"var"`
	Body *Formula       `parser:"@@" json:"body"`
}

// EqNode backs eq: two terms asserted or queried as equal.
type EqNode struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Left  *Term          `parser:"@@" json:"left"`
	Right *Term          `parser:"@@" json:"right"`
}

// AbsNode backs abs: a reified-proposition ID and its body formula.
type AbsNode struct {
	Pos  lexer.Position `parser:"" json:"-"`
	ID   string         `parser:"@Ident" json:"id"`
	Body *Formula       `parser:"@@" json:"body"`
}

// Term is the surface form of a lir.Term. Exactly one field is set.
type Term struct {
	Pos         lexer.Position `parser:"" json:"-"`
	Var         string         `parser:"  @Var" json:"var,omitempty"`
	Skolem      string         `parser:"| @Skolem" json:"skolem,omitempty"`
	Abstraction string         `parser:"| @Abstract" json:"abstraction,omitempty"`
	Unspecified bool           `parser:"| @Underscore" json:"unspecified,omitempty"`
	Const       string         `parser:"| @Ident" json:"const,omitempty"`
}

var parser = participle.MustBuild[Formula](
	participle.Lexer(sexprLexer),
	participle.UseLookahead(participle.MaxLookahead),
)

// ParseFormula parses src as a LIR surface formula and converts it to
// the internal/lir representation.
func ParseFormula(src string) (lir.Formula, error) {
	surface, err := parser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("parse lir text: %w", err)
	}
	return toLIRFormula(surface), nil
}

// FormatFormula renders f as its surface s-expression text, the
// inverse of ParseFormula.
func FormatFormula(f lir.Formula) string {
	return fromLIRFormula(f).String()
}

// --- surface -> lir.Formula/lir.Term ---

func toLIRFormula(f *Formula) lir.Formula {
	switch {
	case f.Atom != nil:
		return lir.Atom{Predicate: f.Atom.Predicate, Args: toLIRTerms(f.Atom.Args)}
	case f.And != nil:
		return lir.And{Conjuncts: toLIRFormulas(f.And.all())}
	case f.Or != nil:
		return lir.Or{Disjuncts: toLIRFormulas(f.Or.all())}
	case f.Not != nil:
		return lir.Not{Operand: toLIRFormula(f.Not)}
	case f.Implies != nil:
		return lir.Implies{Antecedent: toLIRFormula(f.Implies.Left), Consequent: toLIRFormula(f.Implies.Right)}
	case f.Iff != nil:
		return lir.Iff{Left: toLIRFormula(f.Iff.Left), Right: toLIRFormula(f.Iff.Right)}
	case f.Forall != nil:
		return lir.Forall{Var: strings.TrimPrefix(f.Forall.Var, "?"), Body: toLIRFormula(f.Forall.Body)}
	case f.Exists != nil:
		return lir.Exists{Var: strings.TrimPrefix(f.Exists.Var, "?"), Body: toLIRFormula(f.Exists.Body)}
	case f.Eq != nil:
		return lir.Eq{Left: toLIRTerm(f.Eq.Left), Right: toLIRTerm(f.Eq.Right)}
	case f.Abs != nil:
		return lir.AbstractionRef{ID: f.Abs.ID, Body: toLIRFormula(f.Abs.Body)}
	}
	return lir.And{}
}

func toLIRFormulas(fs []*Formula) []lir.Formula {
	out := make([]lir.Formula, len(fs))
	for i, f := range fs {
		out[i] = toLIRFormula(f)
	}
	return out
}

func toLIRTerm(t *Term) lir.Term {
	switch {
	case t.Var != "":
		return lir.Var{Name: strings.TrimPrefix(t.Var, "?")}
	case t.Skolem != "":
		n, _ := strconv.Atoi(strings.TrimPrefix(t.Skolem, "sk"))
		return lir.SkolemConst{ID: n}
	case t.Abstraction != "":
		return lir.AbstractionTerm{ID: strings.TrimPrefix(t.Abstraction, "#")}
	case t.Unspecified:
		return lir.Unspecified{}
	default:
		return lir.Const{Name: t.Const}
	}
}

func toLIRTerms(ts []*Term) []lir.Term {
	out := make([]lir.Term, len(ts))
	for i, t := range ts {
		out[i] = toLIRTerm(t)
	}
	return out
}

// --- lir.Formula/lir.Term -> surface ---

func fromLIRFormula(f lir.Formula) *Formula {
	switch x := f.(type) {
	case lir.Atom:
		return &Formula{Atom: &AtomNode{Predicate: x.Predicate, Args: fromLIRTerms(x.Args)}}
	case lir.And:
		return &Formula{And: fromLIRFormulaList(x.Conjuncts)}
	case lir.Or:
		return &Formula{Or: fromLIRFormulaList(x.Disjuncts)}
	case lir.Not:
		return &Formula{Not: fromLIRFormula(x.Operand)}
	case lir.Implies:
		return &Formula{Implies: &BinFormula{Left: fromLIRFormula(x.Antecedent), Right: fromLIRFormula(x.Consequent)}}
	case lir.Iff:
		return &Formula{Iff: &BinFormula{Left: fromLIRFormula(x.Left), Right: fromLIRFormula(x.Right)}}
	case lir.Forall:
		return &Formula{Forall: &Quantifier{Var: "?" + x.Var, Body: fromLIRFormula(x.Body)}}
	case lir.Exists:
		return &Formula{Exists: &Quantifier{Var: "?" + x.Var, Body: fromLIRFormula(x.Body)}}
	case lir.Eq:
		return &Formula{Eq: &EqNode{Left: fromLIRTerm(x.Left), Right: fromLIRTerm(x.Right)}}
	case lir.AbstractionRef:
		return &Formula{Abs: &AbsNode{ID: x.ID, Body: fromLIRFormula(x.Body)}}
	}
	return &Formula{And: &FormulaList{First: &Formula{}}}
}

func fromLIRFormulaList(fs []lir.Formula) *FormulaList {
	if len(fs) == 0 {
		return &FormulaList{First: &Formula{}}
	}
	surface := make([]*Formula, len(fs))
	for i, f := range fs {
		surface[i] = fromLIRFormula(f)
	}
	return &FormulaList{First: surface[0], Rest: surface[1:]}
}

func fromLIRTerm(t lir.Term) *Term {
	switch x := t.(type) {
	case lir.Var:
		return &Term{Var: "?" + x.Name}
	case lir.SkolemConst:
		return &Term{Skolem: "sk" + strconv.Itoa(x.ID)}
	case lir.AbstractionTerm:
		return &Term{Abstraction: "#" + x.ID}
	case lir.Unspecified:
		return &Term{Unspecified: true}
	case lir.Const:
		return &Term{Const: x.Name}
	}
	return &Term{Unspecified: true}
}

func fromLIRTerms(ts []lir.Term) []*Term {
	out := make([]*Term, len(ts))
	for i, t := range ts {
		out[i] = fromLIRTerm(t)
	}
	return out
}

// --- String() rendering, mirroring the parsed surface shape back to text ---

func (f *Formula) String() string {
	switch {
	case f.Atom != nil:
		return f.Atom.String()
	case f.And != nil:
		return "(and " + f.And.String() + ")"
	case f.Or != nil:
		return "(or " + f.Or.String() + ")"
	case f.Not != nil:
		return "(not " + f.Not.String() + ")"
	case f.Implies != nil:
		return "(implies " + f.Implies.Left.String() + " " + f.Implies.Right.String() + ")"
	case f.Iff != nil:
		return "(iff " + f.Iff.Left.String() + " " + f.Iff.Right.String() + ")"
	case f.Forall != nil:
		return "(forall " + f.Forall.Var + " " + f.Forall.Body.String() + ")"
	case f.Exists != nil:
		return "(exists " + f.Exists.Var + " " + f.Exists.Body.String() + ")"
	case f.Eq != nil:
		return "(eq " + f.Eq.Left.String() + " " + f.Eq.Right.String() + ")"
	case f.Abs != nil:
		return "(abs " + f.Abs.ID + " " + f.Abs.Body.String() + ")"
	default:
		return "(and)"
	}
}

func (a *AtomNode) String() string {
	parts := make([]string, 0, len(a.Args)+2)
	parts = append(parts, "(atom", a.Predicate)
	for _, arg := range a.Args {
		parts = append(parts, arg.String())
	}
	return strings.Join(parts, " ") + ")"
}

func (l *FormulaList) String() string {
	parts := make([]string, 0, len(l.Rest)+1)
	parts = append(parts, l.First.String())
	for _, f := range l.Rest {
		parts = append(parts, f.String())
	}
	return strings.Join(parts, " ")
}

func (t *Term) String() string {
	switch {
	case t.Var != "":
		return t.Var
	case t.Skolem != "":
		return t.Skolem
	case t.Abstraction != "":
		return t.Abstraction
	case t.Unspecified:
		return "_"
	default:
		return t.Const
	}
}
