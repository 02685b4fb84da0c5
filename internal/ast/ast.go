// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

// Package ast defines the arena-allocated syntax tree produced by the
// parser and consumed by the semantic compiler.
//
// Nodes are addressed by dense integer IDs into an Arena rather than by
// pointer, so a parsed tree is a flat, relocatable value: it can cross
// the wasmhost component boundary as plain buffers with no embedded
// pointers to fix up.
package ast

import "github.com/lojban-nesy/lojbanesy/internal/token"

// NodeID indexes into an Arena. The zero value means "absent" and is
// never a valid node.
type NodeID int32

// Arena owns every node produced while parsing one input. Arenas are not
// safe for concurrent writes; the parser that builds one owns it
// exclusively until parsing finishes.
type Arena struct {
	sentences       []Sentence
	predications    []Predication
	selbri          []Selbri
	sumti           []Sumti
	relativeClauses []RelativeClause
}

// NewArena constructs an empty Arena.
func NewArena() *Arena { return &Arena{} }

func (a *Arena) addSentence(s Sentence) NodeID {
	a.sentences = append(a.sentences, s)
	return NodeID(len(a.sentences))
}

func (a *Arena) addPredication(p Predication) NodeID {
	a.predications = append(a.predications, p)
	return NodeID(len(a.predications))
}

func (a *Arena) addSelbri(s Selbri) NodeID {
	a.selbri = append(a.selbri, s)
	return NodeID(len(a.selbri))
}

func (a *Arena) addSumti(s Sumti) NodeID {
	a.sumti = append(a.sumti, s)
	return NodeID(len(a.sumti))
}

func (a *Arena) addRelativeClause(r RelativeClause) NodeID {
	a.relativeClauses = append(a.relativeClauses, r)
	return NodeID(len(a.relativeClauses))
}

// Sentence returns the Sentence stored at id.
func (a *Arena) Sentence(id NodeID) Sentence { return a.sentences[id-1] }

// Predication returns the Predication stored at id.
func (a *Arena) Predication(id NodeID) Predication { return a.predications[id-1] }

// Selbri returns the Selbri stored at id.
func (a *Arena) Selbri(id NodeID) Selbri { return a.selbri[id-1] }

// Sumti returns the Sumti stored at id.
func (a *Arena) Sumti(id NodeID) Sumti { return a.sumti[id-1] }

// RelativeClause returns the RelativeClause stored at id.
func (a *Arena) RelativeClause(id NodeID) RelativeClause { return a.relativeClauses[id-1] }

// Sentence is one top-level unit between sentence separators: an
// optional prenex (quantifier prefix, invariant I4) followed by exactly
// one predication.
//
// Invariant I4: every bound variable referenced in the predication
// either appears in Prenex or is bound locally by an abstraction.
type Sentence struct {
	Prenex      []NodeID // Sumti (bound-variable) ids quantified before zo'u
	Predication NodeID
	Span        token.Span
}

// Predication is a bridi: a selbri applied to a set of sumti in argument
// places, with optional bridi-level negation.
//
// Invariant I1: every sumti place is either filled explicitly, filled by
// the implicit zo'e, or omitted only when trailing and elidable.
type Predication struct {
	Negated bool // bridi-level "na"
	Selbri  NodeID
	// Places maps 1-based argument place number to a Sumti id. Absent
	// places are implicitly zo'e (invariant I1) and are not present in
	// this map.
	Places map[int]NodeID
	// TenseTags holds tense/modal cmavo (pu/ca/ba/...) encountered among
	// this predication's terms, in surface order. They are opaque to the
	// semantic compiler: recorded for round-tripping, not reasoned over.
	TenseTags []string
	Span      token.Span
}

// SelbriKind distinguishes the selbri node variants.
type SelbriKind uint8

const (
	// SelbriSimple is a single predicate word (root or compound).
	SelbriSimple SelbriKind = iota
	// SelbriTanru is a left-associative compound of two selbri.
	SelbriTanru
	// SelbriPermuted wraps an inner selbri with a place-permutation
	// prefix (se/te/ve/xe).
	SelbriPermuted
	// SelbriGrouped wraps an inner selbri that was explicitly grouped
	// with ke...ke'e, overriding default left-associativity.
	SelbriGrouped
	// SelbriNegated wraps an inner selbri with a leading "na", negating
	// the bridi at the selbri level rather than the predication level.
	SelbriNegated
	// SelbriConnected joins two selbri with a logical connective
	// (je/ja/jo/ju), each implicitly sharing the predication's terms.
	SelbriConnected
	// SelbriBindArgs attaches bound arguments (be/bei/be'o) to a base
	// selbri, filling places 2..N before any terms outside the selbri.
	SelbriBindArgs
)

// Selbri is the predicate part of a bridi.
//
// Invariant I2: a SelbriTanru's Modifier and Head are themselves valid
// Selbri nodes, recursively, with no cycles (guaranteed by arena
// append-only construction).
type Selbri struct {
	Kind SelbriKind
	// PredicateText is set for SelbriSimple: the root or compound
	// predicate's surface text, later resolved against the predicate
	// dictionary.
	PredicateText string
	// Modifier, Head are set for SelbriTanru: modifier place joins head.
	Modifier NodeID
	Head     NodeID
	// Permutation is set for SelbriPermuted: 1 for se, 2 for te, 3 for
	// ve, 4 for xe, the 0-based argument index swapped with x1 (se
	// swaps x1 and x2).
	Permutation int
	Inner       NodeID // SelbriPermuted, SelbriGrouped, SelbriNegated
	// ConnectiveText is set for SelbriConnected: "je", "ja", "jo", or
	// "ju". Modifier and Head hold the left and right selbri.
	ConnectiveText string
	// BoundArgs is set for SelbriBindArgs: the terms bound by be/bei,
	// filling places 2..N of the base selbri in Inner.
	BoundArgs []NodeID
	Span      token.Span
}

// SumtiKind distinguishes the sumti node variants.
type SumtiKind uint8

const (
	// SumtiName is a cmevla (proper name) reference.
	SumtiName SumtiKind = iota
	// SumtiPronoun is a ko'a-series or mi/do-series pro-sumti.
	SumtiPronoun
	// SumtiDescription is a le/lo/le'e/lo'e-introduced description.
	SumtiDescription
	// SumtiVariable is a da/de/di-series bound variable.
	SumtiVariable
	// SumtiAnaphor is ri (last sumti) or go'i (last predication).
	SumtiAnaphor
	// SumtiUnspecified is zo'e.
	SumtiUnspecified
	// SumtiAbstraction is a nu/du'u/ka-introduced abstraction wrapping
	// an embedded Sentence.
	SumtiAbstraction
	// SumtiQuotedWord is a zo-quoted metalinguistic atom.
	SumtiQuotedWord
	// SumtiQuotedText is a zoi-delimited opaque payload.
	SumtiQuotedText
	// SumtiConnected is two sumti joined by a logical connective
	// (.e/.a/.o/.u or je/ja/jo/ju), each filling the same argument place.
	SumtiConnected
)

// Sumti is an argument-position node.
//
// Invariant I3: a SumtiDescription's RelativeClauses, if any, each
// reference only variables bound by the enclosing Sentence's prenex or
// by an outer abstraction — checked by the semantic compiler, not the
// parser, since it requires discourse context.
type Sumti struct {
	Kind SumtiKind
	Text string // name/pronoun/variable/quoted-word surface text
	// Descriptor is set for SumtiDescription: "le", "lo", "le'e", "lo'e".
	Descriptor string
	// Inner is set for SumtiDescription: the described Selbri.
	Inner NodeID
	// RelativeClauses qualify a SumtiDescription or SumtiName.
	RelativeClauses []NodeID
	// Abstractor is set for SumtiAbstraction: "nu", "du'u", "ka", etc.
	Abstractor string
	// Body is set for SumtiAbstraction: the embedded Sentence.
	Body NodeID
	// Delimiter is set for SumtiQuotedText: the zoi delimiter word.
	Delimiter string
	// Quantifier is set for SumtiVariable (prenex binding) and
	// SumtiDescription (bare quantified description): "ro", "su'o",
	// "no", or "" when unmarked (existential by default, invariant I4).
	Quantifier string
	// Connective, ConnectiveLeft, ConnectiveRight are set for
	// SumtiConnected.
	Connective      string
	ConnectiveLeft  NodeID
	ConnectiveRight NodeID
	Span            token.Span
}

// RelativeKind distinguishes restrictive (poi) from incidental (noi)
// relative clauses.
type RelativeKind uint8

const (
	// RelativeRestrictive is poi.
	RelativeRestrictive RelativeKind = iota
	// RelativeIncidental is noi.
	RelativeIncidental
)

// RelativeClause attaches a predication to a sumti, binding a fresh
// variable to the qualified sumti's referent.
type RelativeClause struct {
	Kind        RelativeKind
	Predication NodeID
	Span        token.Span
}

// NewSentence appends a Sentence node and returns its ID.
func (a *Arena) NewSentence(s Sentence) NodeID { return a.addSentence(s) }

// NewPredication appends a Predication node and returns its ID.
func (a *Arena) NewPredication(p Predication) NodeID { return a.addPredication(p) }

// NewSelbri appends a Selbri node and returns its ID.
func (a *Arena) NewSelbri(s Selbri) NodeID { return a.addSelbri(s) }

// NewSumti appends a Sumti node and returns its ID.
func (a *Arena) NewSumti(s Sumti) NodeID { return a.addSumti(s) }

// NewRelativeClause appends a RelativeClause node and returns its ID.
func (a *Arena) NewRelativeClause(r RelativeClause) NodeID { return a.addRelativeClause(r) }

// Snapshot exports a's node slices as a flat, gob-encodable value with
// no unexported fields, for the wasmhost component boundary to move an
// Arena across a buffer with no pointers to fix up.
type Snapshot struct {
	Sentences       []Sentence
	Predications    []Predication
	Selbri          []Selbri
	Sumti           []Sumti
	RelativeClauses []RelativeClause
}

// Snapshot captures a's current contents. The Arena remains usable
// (and append-only) after Snapshot returns.
func (a *Arena) Snapshot() Snapshot {
	return Snapshot{
		Sentences:       append([]Sentence(nil), a.sentences...),
		Predications:    append([]Predication(nil), a.predications...),
		Selbri:          append([]Selbri(nil), a.selbri...),
		Sumti:           append([]Sumti(nil), a.sumti...),
		RelativeClauses: append([]RelativeClause(nil), a.relativeClauses...),
	}
}

// FromSnapshot rebuilds an Arena from a Snapshot, the inverse of
// Arena.Snapshot.
func FromSnapshot(s Snapshot) *Arena {
	return &Arena{
		sentences:       s.Sentences,
		predications:    s.Predications,
		selbri:          s.Selbri,
		sumti:           s.Sumti,
		relativeClauses: s.RelativeClauses,
	}
}
