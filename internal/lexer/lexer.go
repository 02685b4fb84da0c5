// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

// Package lexer turns raw Lojban source text into a token stream.
//
// Tokenizing happens in two passes over the same left-to-right cursor:
// a raw word scan (whitespace splitting with span tracking), followed by
// a single preprocessing pass that resolves the metalinguistic operators
// (zo quoting, zoi delimited quoting, zei gluing, si/sa/su erasure)
// before word-shape classification assigns a final Kind to everything
// that survives. The whole thing runs in one left-to-right sweep with
// O(1) amortized splice erasure: si/sa/su only ever pop from the tail of
// the already-built token slice.
package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/lojban-nesy/lojbanesy/internal/diagnostic"
	"github.com/lojban-nesy/lojbanesy/internal/token"
)

// rawWord is one whitespace-delimited unit of source text together with
// its byte/line/col span.
type rawWord struct {
	text string
	span token.Span
}

// Tokenize scans src and returns the resolved token stream plus any
// diagnostics raised along the way. Tokenize never panics; malformed
// input is reported as a diagnostic. A word of no recognized shape is
// still emitted as a compound-predicate token, a zei or sa with nothing
// to act on is skipped, and source that is not valid UTF-8 yields no
// tokens other than EOF.
func Tokenize(src string) ([]token.Token, []diagnostic.Diagnostic) {
	words, diags := scanRawWords(src)
	toks, moreDiags := process(src, words)
	diags = append(diags, moreDiags...)
	toks = append(toks, token.Token{Kind: token.KindEOF, Span: eofSpan(src)})
	return toks, diags
}

func eofSpan(src string) token.Span {
	line, col := 1, 1
	for _, r := range src {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return token.Span{Start: len(src), End: len(src), Line: line, Col: col}
}

// scanRawWords splits src on Unicode whitespace, validating UTF-8 and
// recording a Span per word.
func scanRawWords(src string) ([]rawWord, []diagnostic.Diagnostic) {
	var (
		words []rawWord
		diags []diagnostic.Diagnostic
	)

	if !utf8.ValidString(src) {
		diags = append(diags, diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Span:     token.Span{Line: 1, Col: 1},
			Code:     diagnostic.CodeLexInvalidUTF8,
			Message:  "source is not valid UTF-8",
		})
		return nil, diags
	}

	line, col := 1, 1
	wordStart := -1
	wordStartLine, wordStartCol := 1, 1
	byteIdx := 0

	flush := func(end int) {
		if wordStart < 0 {
			return
		}
		words = append(words, rawWord{
			text: src[wordStart:end],
			span: token.Span{Start: wordStart, End: end, Line: wordStartLine, Col: wordStartCol},
		})
		wordStart = -1
	}

	for _, r := range src {
		size := utf8.RuneLen(r)
		if unicode.IsSpace(r) {
			flush(byteIdx)
			if r == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		} else {
			if wordStart < 0 {
				wordStart = byteIdx
				wordStartLine, wordStartCol = line, col
			}
			col++
		}
		byteIdx += size
	}
	flush(byteIdx)

	return words, diags
}

// emitted records one token already placed in the output, plus whether it
// came from a "zo" quote (which costs three "si" to erase instead of one).
type emitted struct {
	tok        token.Token
	fromZoQuote bool
}

func process(src string, words []rawWord) ([]token.Token, []diagnostic.Diagnostic) {
	var (
		out   []emitted
		diags []diagnostic.Diagnostic
		siRun int // consecutive si's applied so far toward erasing the current tail token
	)

	resetSiRun := func() { siRun = 0 }

	i := 0
	for i < len(words) {
		w := words[i]
		lower := w.text

		switch lower {
		case "zo":
			resetSiRun()
			if i+1 >= len(words) {
				diags = append(diags, errAt(diagnostic.CodeLexUnclosedQuote, w.span, "zo has no following word to quote"))
				i++
				continue
			}
			quoted := words[i+1]
			out = append(out, emitted{
				tok: token.Token{
					Kind: token.KindMetalinguisticQuote,
					Span: token.Span{Start: w.span.Start, End: quoted.span.End, Line: w.span.Line, Col: w.span.Col},
					Text: quoted.text,
				},
				fromZoQuote: true,
			})
			i += 2
			continue

		case "zoi":
			resetSiRun()
			if i+1 >= len(words) {
				diags = append(diags, errAt(diagnostic.CodeLexUnclosedQuote, w.span, "zoi has no delimiter word"))
				i++
				continue
			}
			delim := words[i+1]
			closeIdx := -1
			for j := i + 2; j < len(words); j++ {
				if words[j].text == delim.text {
					closeIdx = j
					break
				}
			}
			if closeIdx < 0 {
				diags = append(diags, errAt(diagnostic.CodeLexUnclosedQuote, w.span,
					"zoi delimiter "+delim.text+" is never closed"))
				i = len(words)
				continue
			}
			contentStart := delim.span.End
			contentEnd := words[closeIdx].span.Start
			content := ""
			if contentEnd > contentStart {
				content = src[contentStart:contentEnd]
			}
			out = append(out, emitted{tok: token.Token{
				Kind:    token.KindOpaqueQuote,
				Span:    token.Span{Start: w.span.Start, End: words[closeIdx].span.End, Line: w.span.Line, Col: w.span.Col},
				Text:    content,
				Payload: delim.text,
			}})
			i = closeIdx + 1
			continue

		case "zei":
			resetSiRun()
			if len(out) == 0 || i+1 >= len(words) {
				diags = append(diags, errAt(diagnostic.CodeLexInvalidWord, w.span, "zei needs a word on each side"))
				i++
				continue
			}
			prev := out[len(out)-1]
			next := words[i+1]
			glued := prev.tok.Text + "zei" + next.text
			out[len(out)-1] = emitted{tok: token.Token{
				Kind: token.KindCompoundPredicate,
				Span: token.Span{Start: prev.tok.Span.Start, End: next.span.End, Line: prev.tok.Span.Line, Col: prev.tok.Span.Col},
				Text: glued,
			}}
			i += 2
			continue

		case "si":
			need := 1
			if len(out) > 0 && out[len(out)-1].fromZoQuote {
				need = 3
			}
			siRun++
			if siRun >= need && len(out) > 0 {
				out = out[:len(out)-1]
				siRun = 0
			}
			i++
			continue

		case "sa":
			resetSiRun()
			if i+1 >= len(words) {
				diags = append(diags, errAt(diagnostic.CodeLexInvalidWord, w.span, "sa has no target word"))
				i++
				continue
			}
			target := words[i+1].text
			cut := -1
			for j := len(out) - 1; j >= 0; j-- {
				if out[j].tok.Text == target {
					cut = j
					break
				}
			}
			if cut >= 0 {
				out = out[:cut]
			}
			i += 2
			continue

		case "su":
			resetSiRun()
			cut := 0
			for j := len(out) - 1; j >= 0; j-- {
				if out[j].tok.Kind == token.KindSentenceSeparator {
					cut = j
					break
				}
			}
			out = out[:cut]
			i++
			continue
		}

		resetSiRun()
		tok, diag := classify(w)
		out = append(out, emitted{tok: tok})
		if diag != nil {
			diags = append(diags, *diag)
		}
		i++
	}

	toks := make([]token.Token, 0, len(out))
	for _, e := range out {
		toks = append(toks, e.tok)
	}
	return toks, diags
}

// classify assigns a Kind to a raw word that survived metalinguistic
// processing, preferring cmavo function words, then proper names, then
// root predicates, then compound predicates — the precedence order the
// spec's grammar relies on to disambiguate shape collisions.
func classify(w rawWord) (token.Token, *diagnostic.Diagnostic) {
	if isDigitWord(w.text) {
		return token.Token{Kind: token.KindNumeric, Span: w.span, Text: w.text}, nil
	}
	if kind, ok := cmavoTable[w.text]; ok {
		return token.Token{Kind: kind, Span: w.span, Text: w.text}, nil
	}

	shape := classifyShape(w.text)
	switch {
	case shape.isName:
		return token.Token{Kind: token.KindName, Span: w.span, Text: w.text}, nil
	case shape.isGismu:
		return token.Token{Kind: token.KindRootPredicate, Span: w.span, Text: w.text}, nil
	case shape.endsVowel:
		return token.Token{Kind: token.KindCompoundPredicate, Span: w.span, Text: w.text}, nil
	default:
		d := errAt(diagnostic.CodeLexInvalidWord, w.span, "word "+w.text+" does not match any recognized shape")
		return token.Token{Kind: token.KindCompoundPredicate, Span: w.span, Text: w.text}, &d
	}
}

func errAt(code string, span token.Span, msg string) diagnostic.Diagnostic {
	return diagnostic.Diagnostic{
		Severity: diagnostic.SeverityWarning,
		Span:     span,
		Code:     code,
		Message:  msg,
	}
}
