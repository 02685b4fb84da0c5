// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojban-nesy/lojbanesy/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestTokenizeSimpleBridi(t *testing.T) {
	toks, diags := Tokenize("mi klama le zarci")
	require.Empty(t, diags)

	require.Len(t, toks, 5) // mi, klama, le, zarci, EOF
	assert.Equal(t, token.KindPronoun, toks[0].Kind)
	assert.Equal(t, token.KindRootPredicate, toks[1].Kind)
	assert.Equal(t, token.KindDescriptor, toks[2].Kind)
	assert.Equal(t, token.KindEOF, toks[4].Kind)
}

func TestTokenizeRecognizesName(t *testing.T) {
	toks, _ := Tokenize("la djan cusku")
	assert.Equal(t, token.KindDescriptor, toks[0].Kind)
	assert.Equal(t, token.KindName, toks[1].Kind)
}

func TestTokenizeZoQuotesNextWordVerbatim(t *testing.T) {
	toks, diags := Tokenize("zo blanu cusku")
	require.Empty(t, diags)
	require.GreaterOrEqual(t, len(toks), 2)
	assert.Equal(t, token.KindMetalinguisticQuote, toks[0].Kind)
	assert.Equal(t, "blanu", toks[0].Text)
	assert.Equal(t, token.KindRootPredicate, toks[1].Kind) // cusku
}

func TestTokenizeZoiCapturesRawTextUntilDelimiterRecurs(t *testing.T) {
	toks, diags := Tokenize("zoi gy. this is arbitrary !! text gy.")
	require.Empty(t, diags)
	require.Len(t, toks, 2) // opaque quote, EOF
	assert.Equal(t, token.KindOpaqueQuote, toks[0].Kind)
	assert.Contains(t, toks[0].Text, "arbitrary")
}

func TestTokenizeZoiUnclosedIsDiagnosed(t *testing.T) {
	_, diags := Tokenize("zoi gy. unterminated text")
	require.NotEmpty(t, diags)
	assert.Equal(t, "LEX_UNCLOSED_QUOTE", diags[0].Code)
}

func TestTokenizeZeiGluesAdjacentWords(t *testing.T) {
	toks, diags := Tokenize("mi blanu zei zdani")
	require.Empty(t, diags)
	require.Len(t, toks, 3) // mi, glued compound, EOF
	assert.Equal(t, token.KindCompoundPredicate, toks[1].Kind)
	assert.Equal(t, "blanuzeizdani", toks[1].Text)
}

func TestTokenizeSiErasesPreviousToken(t *testing.T) {
	toks, diags := Tokenize("mi klama si bajra")
	require.Empty(t, diags)
	require.Len(t, toks, 3) // mi, bajra, EOF
	assert.Equal(t, "mi", toks[0].Text)
	assert.Equal(t, "bajra", toks[1].Text)
}

func TestTokenizeSiRequiresThreeForZoQuotedToken(t *testing.T) {
	toks, _ := Tokenize("zo blanu si bajra")
	// one "si" is not enough to erase a zo-quoted token
	require.Len(t, toks, 3) // quote, bajra, EOF
	assert.Equal(t, token.KindMetalinguisticQuote, toks[0].Kind)

	toks2, _ := Tokenize("zo blanu si si si bajra")
	require.Len(t, toks2, 2) // bajra, EOF
	assert.Equal(t, "bajra", toks2[0].Text)
}

func TestTokenizeSuClearsCurrentSentence(t *testing.T) {
	toks, _ := Tokenize("mi klama .i do bajra su vecnu")
	// su erases back through the start of the current sentence but
	// keeps the earlier completed sentence.
	var texts []string
	for _, tk := range toks {
		texts = append(texts, tk.Text)
	}
	assert.Contains(t, texts, "mi")
	assert.Contains(t, texts, "klama")
	assert.Contains(t, texts, "vecnu")
	assert.NotContains(t, texts, "bajra")
}

func TestTokenizeInvalidUTF8(t *testing.T) {
	_, diags := Tokenize("mi klama \xff\xfe")
	require.NotEmpty(t, diags)
	assert.Equal(t, "LEX_INVALID_UTF8", diags[0].Code)
}

func TestTokenizeSpanTracksLineAndColumn(t *testing.T) {
	toks, _ := Tokenize("mi klama\nle zarci")
	// "le" starts the second line.
	var le token.Token
	for _, tk := range toks {
		if tk.Text == "le" {
			le = tk
		}
	}
	assert.Equal(t, 2, le.Span.Line)
	assert.Equal(t, 1, le.Span.Col)
}
