// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

// Package token defines the lexical token vocabulary shared by the
// tokenizer, parser, and diagnostic renderer.
package token

import "fmt"

// Span identifies a half-open byte range [Start, End) in the original
// source text, plus the 1-based line/column of Start for diagnostics.
type Span struct {
	Start, End int
	Line, Col  int
}

// String renders a span the way the diagnostic renderer expects, e.g.
// "3:12".
func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Line, s.Col)
}

// Kind enumerates the lexical categories a token can carry.
type Kind uint8

const (
	// KindEOF marks end of input.
	KindEOF Kind = iota
	// KindRootPredicate is a gismu-shaped word (CVCCV / CCVCV).
	KindRootPredicate
	// KindCompoundPredicate is a lujvo or zei-glued compound.
	KindCompoundPredicate
	// KindName is a cmevla (name), conventionally consonant-final.
	KindName
	// KindPronoun covers ko'a-series pro-sumti.
	KindPronoun
	// KindDescriptor covers le/lo/le'e/lo'e-family descriptors.
	KindDescriptor
	// KindQuantifier covers numeric and logical quantifiers (su'o, ro...).
	KindQuantifier
	// KindNumeric is a bare digit-string (PA cmavo).
	KindNumeric
	// KindLogicalConnective covers .e/.a/.o/.u-family connectives.
	KindLogicalConnective
	// KindNegator is the bridi negator "na" or prenex "naku".
	KindNegator
	// KindTenseModal covers tense/aspect/modal cmavo treated as opaque markers.
	KindTenseModal
	// KindPlaceTag covers fa/fe/fi/fo/fu place-structure tags.
	KindPlaceTag
	// KindSelbriSeparator is "cu".
	KindSelbriSeparator
	// KindSentenceSeparator is ".i".
	KindSentenceSeparator
	// KindTerminator covers elidable terminators (ku, kei, vau, ge'u...).
	KindTerminator
	// KindPrenexMarker is "zo'u".
	KindPrenexMarker
	// KindMetalinguisticQuote is a zo-quoted single word.
	KindMetalinguisticQuote
	// KindOpaqueQuote is a zoi-delimited opaque payload.
	KindOpaqueQuote
	// KindAbstractor covers nu/du'u/ka-family abstractors.
	KindAbstractor
	// KindRelativeIntroducer covers poi/noi.
	KindRelativeIntroducer
	// KindBindArgument covers be/bei/be'o.
	KindBindArgument
	// KindGroupOpen is "ke".
	KindGroupOpen
	// KindGroupClose is "ke'e".
	KindGroupClose
	// KindBoundVariable covers da/de/di-family bound variables.
	KindBoundVariable
	// KindAnaphor covers ri/go'i-family anaphors.
	KindAnaphor
	// KindUnspecified is "zo'e".
	KindUnspecified
	// KindConversion covers se/te/ve/xe place-permutation operators.
	KindConversion
)

var kindNames = map[Kind]string{
	KindEOF:                 "EOF",
	KindRootPredicate:       "ROOT_PREDICATE",
	KindCompoundPredicate:   "COMPOUND_PREDICATE",
	KindName:                "NAME",
	KindPronoun:             "PRONOUN",
	KindDescriptor:          "DESCRIPTOR",
	KindQuantifier:          "QUANTIFIER",
	KindNumeric:             "NUMERIC",
	KindLogicalConnective:   "LOGICAL_CONNECTIVE",
	KindNegator:             "NEGATOR",
	KindTenseModal:          "TENSE_MODAL",
	KindPlaceTag:            "PLACE_TAG",
	KindSelbriSeparator:     "SELBRI_SEPARATOR",
	KindSentenceSeparator:   "SENTENCE_SEPARATOR",
	KindTerminator:          "TERMINATOR",
	KindPrenexMarker:        "PRENEX_MARKER",
	KindMetalinguisticQuote: "METALINGUISTIC_QUOTE",
	KindOpaqueQuote:         "OPAQUE_QUOTE",
	KindAbstractor:          "ABSTRACTOR",
	KindRelativeIntroducer:  "RELATIVE_INTRODUCER",
	KindBindArgument:        "BIND_ARGUMENT",
	KindGroupOpen:           "GROUP_OPEN",
	KindGroupClose:          "GROUP_CLOSE",
	KindBoundVariable:       "BOUND_VARIABLE",
	KindAnaphor:             "ANAPHOR",
	KindUnspecified:         "UNSPECIFIED",
	KindConversion:          "CONVERSION",
}

// String implements fmt.Stringer for diagnostic output.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Token is one lexical unit produced by the tokenizer.
type Token struct {
	Kind Kind
	Span Span
	// Text is the token's surface text after preprocessing (zei-gluing,
	// erasure already applied).
	Text string
	// Payload carries kind-specific auxiliary data: for KindOpaqueQuote,
	// the delimiter word; otherwise empty.
	Payload string
}

// String renders a token for debug dumps (":ast"/":ir" REPL commands).
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Text, t.Span)
}
