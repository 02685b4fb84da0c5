// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package lexer

import "github.com/lojban-nesy/lojbanesy/internal/token"

// cmavoTable maps a cmavo's exact surface form to the lexical Kind it
// introduces. Lookup is by the exact surface text; the scanner does not
// normalize apostrophes, so only ' (U+0027) forms match. This table
// only needs the function words the spec's grammar actually dispatches on; anything it doesn't recognize falls
// through to the gismu/lujvo/name shape classifier.
var cmavoTable = map[string]token.Kind{
	"cu": token.KindSelbriSeparator,

	".i": token.KindSentenceSeparator,

	"ku":   token.KindTerminator,
	"kei":  token.KindTerminator,
	"vau":  token.KindTerminator,
	"ge'u": token.KindTerminator,
	"lo'u": token.KindTerminator,
	"le'u": token.KindTerminator,

	"zo'u": token.KindPrenexMarker,

	"na":   token.KindNegator,
	"naku": token.KindNegator,

	"fa": token.KindPlaceTag,
	"fe": token.KindPlaceTag,
	"fi": token.KindPlaceTag,
	"fo": token.KindPlaceTag,
	"fu": token.KindPlaceTag,

	"zo":  token.KindMetalinguisticQuote,
	"zoi": token.KindOpaqueQuote,
	"zei": token.KindTenseModal, // glue operator, consumed by preprocessor
	"si":  token.KindTenseModal, // erasure operator, consumed by preprocessor
	"sa":  token.KindTenseModal,
	"su":  token.KindTenseModal,

	"nu":    token.KindAbstractor,
	"du'u":  token.KindAbstractor,
	"ka":    token.KindAbstractor,
	"ni'i":  token.KindAbstractor,
	"si'o":  token.KindAbstractor,

	"poi": token.KindRelativeIntroducer,
	"noi": token.KindRelativeIntroducer,

	"be":   token.KindBindArgument,
	"bei":  token.KindBindArgument,
	"be'o": token.KindBindArgument,

	"ke":   token.KindGroupOpen,
	"ke'e": token.KindGroupClose,

	"da": token.KindBoundVariable,
	"de": token.KindBoundVariable,
	"di": token.KindBoundVariable,

	"ri":   token.KindAnaphor,
	"go'i": token.KindAnaphor,

	"zo'e": token.KindUnspecified,

	"le":   token.KindDescriptor,
	"lo":   token.KindDescriptor,
	"le'e": token.KindDescriptor,
	"lo'e": token.KindDescriptor,
	"la":   token.KindDescriptor,

	"su'o": token.KindQuantifier,
	"ro":   token.KindQuantifier,
	"su'omei": token.KindQuantifier,
	"no":   token.KindQuantifier,

	".e": token.KindLogicalConnective,
	".a": token.KindLogicalConnective,
	".o": token.KindLogicalConnective,
	".u": token.KindLogicalConnective,
	"je": token.KindLogicalConnective,
	"ja": token.KindLogicalConnective,
	"jo": token.KindLogicalConnective,
	"ju": token.KindLogicalConnective,

	"se": token.KindConversion,
	"te": token.KindConversion,
	"ve": token.KindConversion,
	"xe": token.KindConversion,

	"pu": token.KindTenseModal,
	"ca": token.KindTenseModal,
	"ba": token.KindTenseModal,
	"bo": token.KindTenseModal,
}

// pronounTable covers the ko'a-series pro-sumti distinct from bound
// variables (da/de/di) and anaphors (ri/go'i).
var pronounTable = map[string]bool{
	"ko'a": true, "ko'e": true, "ko'i": true, "ko'o": true, "ko'u": true,
	"fo'a": true, "fo'e": true, "fo'i": true, "fo'o": true, "fo'u": true,
	"mi": true, "do": true, "ti": true, "ta": true, "tu": true,
}

func init() {
	for p := range pronounTable {
		cmavoTable[p] = token.KindPronoun
	}
}

// isDigitWord reports whether w is a bare PA numeral string.
func isDigitWord(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
