// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

// Package parser hand-rolls a recursive-descent parser from the token
// stream produced by internal/lexer into the arena-allocated tree
// defined by internal/ast.
//
// The grammar is deliberately not expressed with a combinator library:
// elidable terminators (ku, kei, vau, ke'e...) are recovered by trying to
// continue without them before falling back to inserting a diagnostic,
// which needs the kind of ad hoc lookahead a hand-written descent gives
// easy control over.
package parser

import (
	"github.com/lojban-nesy/lojbanesy/internal/ast"
	"github.com/lojban-nesy/lojbanesy/internal/diagnostic"
	"github.com/lojban-nesy/lojbanesy/internal/token"
)

// DefaultMaxDepth bounds selbri/sumti recursion absent an explicit
// config override.
const DefaultMaxDepth = 256

// Result holds everything one Parse call produced.
type Result struct {
	Arena       *ast.Arena
	Sentences   []ast.NodeID
	Diagnostics []diagnostic.Diagnostic
}

// Parse builds an AST from toks. maxDepth bounds recursive descent into
// nested selbri/sumti structures; 0 uses DefaultMaxDepth.
func Parse(toks []token.Token, maxDepth int) Result {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	p := &parser{
		toks:     toks,
		arena:    ast.NewArena(),
		maxDepth: maxDepth,
	}
	p.parseText()
	return Result{Arena: p.arena, Sentences: p.sentences, Diagnostics: p.diags}
}

type parser struct {
	toks      []token.Token
	pos       int
	arena     *ast.Arena
	sentences []ast.NodeID
	diags     []diagnostic.Diagnostic
	maxDepth  int
	depth     int
}

func (p *parser) peek() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.KindEOF}
	}
	return p.toks[p.pos]
}

func (p *parser) peekAt(offset int) token.Token {
	idx := p.pos + offset
	if idx >= len(p.toks) {
		return token.Token{Kind: token.KindEOF}
	}
	return p.toks[idx]
}

func (p *parser) advance() token.Token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) at(k token.Kind) bool { return p.peek().Kind == k }

func (p *parser) eat(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

func (p *parser) errorf(code string, span token.Span, msg string) {
	p.diags = append(p.diags, diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Span:     span,
		Code:     code,
		Message:  msg,
	})
}

func (p *parser) enter() bool {
	p.depth++
	if p.depth > p.maxDepth {
		p.errorf(diagnostic.CodeParseDepthExceeded, p.peek().Span, "maximum parse depth exceeded")
		return false
	}
	return true
}

func (p *parser) leave() { p.depth-- }

// parseText parses a sequence of sentences separated by ".i". When a
// sentence attempt consumes no tokens, the offending token is skipped
// and parsing resumes from the next one, so later sentences still get a
// chance to parse.
func (p *parser) parseText() {
	for !p.at(token.KindEOF) {
		start := p.pos
		id, ok := p.parseSentence()
		if ok {
			p.sentences = append(p.sentences, id)
		}
		if p.pos == start {
			// Nothing consumed: avoid an infinite loop by skipping the
			// offending token.
			p.advance()
		}
		// ".i" is elidable between sentences; if absent we simply let
		// the next iteration try to parse another sentence from here.
		p.eat(token.KindSentenceSeparator)
	}
}

func (p *parser) parseSentence() (ast.NodeID, bool) {
	if !p.enter() {
		defer p.leave()
		return 0, false
	}
	defer p.leave()

	span := p.peek().Span
	var prenex []ast.NodeID
	if p.at(token.KindBoundVariable) || p.at(token.KindQuantifier) {
		save := p.pos
		for p.at(token.KindBoundVariable) || p.at(token.KindQuantifier) {
			quant := ""
			if p.at(token.KindQuantifier) {
				quant = p.advance().Text
			}
			if !p.at(token.KindBoundVariable) {
				break
			}
			t := p.advance()
			id := p.arena.NewSumti(ast.Sumti{Kind: ast.SumtiVariable, Text: t.Text, Quantifier: quant, Span: t.Span})
			prenex = append(prenex, id)
		}
		if _, ok := p.eat(token.KindPrenexMarker); !ok {
			// Not actually a prenex (bound variables used as ordinary
			// sumti instead); rewind.
			p.pos = save
			prenex = nil
		}
	}

	pred, ok := p.parsePredication()
	if !ok {
		return 0, false
	}
	id := p.arena.NewSentence(ast.Sentence{Prenex: prenex, Predication: pred, Span: span})
	return id, true
}

func (p *parser) parsePredication() (ast.NodeID, bool) {
	if !p.enter() {
		defer p.leave()
		return 0, false
	}
	defer p.leave()

	span := p.peek().Span
	negated := false
	if p.at(token.KindNegator) {
		p.advance()
		negated = true
	}

	places := make(map[int]ast.NodeID)
	nextPlace := 1
	var tenseTags []string

	leading := p.parseSumtiSequence(&places, &nextPlace, &tenseTags)
	_ = leading

	if _, ok := p.eat(token.KindSelbriSeparator); !ok {
		// cu is elidable when no leading sumti was present.
	}

	selbri, ok := p.parseSelbri()
	if !ok {
		p.errorf(diagnostic.CodeParseUnexpectedToken, p.peek().Span, "expected a selbri")
		return 0, false
	}

	p.parseSumtiSequence(&places, &nextPlace, &tenseTags)

	p.eat(token.KindTerminator) // vau, elidable

	id := p.arena.NewPredication(ast.Predication{
		Negated:   negated,
		Selbri:    selbri,
		Places:    places,
		TenseTags: tenseTags,
		Span:      span,
	})
	return id, true
}

// parseSumtiSequence parses zero or more terms: sumti (each optionally
// preceded by a place tag that overrides the default monotonically
// increasing place assignment) interleaved with tense/modal tags, which
// are recorded on tags rather than assigned a place.
func (p *parser) parseSumtiSequence(places *map[int]ast.NodeID, nextPlace *int, tags *[]string) int {
	count := 0
	for {
		if p.at(token.KindTenseModal) {
			t := p.advance()
			*tags = append(*tags, t.Text)
			continue
		}
		place := *nextPlace
		if p.at(token.KindPlaceTag) {
			tag := p.advance()
			place = placeTagNumber(tag.Text)
			*nextPlace = place
		}
		if !startsSumti(p.peek().Kind) {
			break
		}
		s, ok := p.parseSumtiConnected()
		if !ok {
			break
		}
		(*places)[place] = s
		*nextPlace = place + 1
		count++
	}
	return count
}

func placeTagNumber(tag string) int {
	switch tag {
	case "fa":
		return 1
	case "fe":
		return 2
	case "fi":
		return 3
	case "fo":
		return 4
	case "fu":
		return 5
	}
	return 1
}

func startsSumti(k token.Kind) bool {
	switch k {
	case token.KindName, token.KindPronoun, token.KindDescriptor, token.KindBoundVariable,
		token.KindAnaphor, token.KindUnspecified, token.KindAbstractor,
		token.KindMetalinguisticQuote, token.KindOpaqueQuote, token.KindQuantifier:
		return true
	}
	return false
}

// parseSumtiConnected parses a sumti optionally followed by a logical
// connective (.e/.a/.o/.u, je/ja/jo/ju) and a second sumti, producing a
// SumtiConnected node. At most one connective level is recognized per
// sumti, matching the one-connected-sumti-per-predication scope the
// semantic compiler supports.
func (p *parser) parseSumtiConnected() (ast.NodeID, bool) {
	left, ok := p.parseSumti()
	if !ok {
		return 0, false
	}
	if p.at(token.KindLogicalConnective) {
		conn := p.advance()
		right, ok := p.parseSumti()
		if !ok {
			p.errorf(diagnostic.CodeParseUnexpectedToken, p.peek().Span, "expected a sumti after connective")
			return left, true
		}
		return p.arena.NewSumti(ast.Sumti{
			Kind: ast.SumtiConnected, Connective: conn.Text,
			ConnectiveLeft: left, ConnectiveRight: right, Span: conn.Span,
		}), true
	}
	return left, true
}

func (p *parser) parseSumti() (ast.NodeID, bool) {
	if !p.enter() {
		defer p.leave()
		return 0, false
	}
	defer p.leave()

	t := p.peek()
	switch t.Kind {
	case token.KindName:
		p.advance()
		rels := p.parseRelativeClauses()
		return p.arena.NewSumti(ast.Sumti{Kind: ast.SumtiName, Text: t.Text, RelativeClauses: rels, Span: t.Span}), true

	case token.KindPronoun:
		p.advance()
		return p.arena.NewSumti(ast.Sumti{Kind: ast.SumtiPronoun, Text: t.Text, Span: t.Span}), true

	case token.KindBoundVariable:
		p.advance()
		return p.arena.NewSumti(ast.Sumti{Kind: ast.SumtiVariable, Text: t.Text, Span: t.Span}), true

	case token.KindAnaphor:
		p.advance()
		return p.arena.NewSumti(ast.Sumti{Kind: ast.SumtiAnaphor, Text: t.Text, Span: t.Span}), true

	case token.KindUnspecified:
		p.advance()
		return p.arena.NewSumti(ast.Sumti{Kind: ast.SumtiUnspecified, Text: t.Text, Span: t.Span}), true

	case token.KindMetalinguisticQuote:
		p.advance()
		return p.arena.NewSumti(ast.Sumti{Kind: ast.SumtiQuotedWord, Text: t.Text, Span: t.Span}), true

	case token.KindOpaqueQuote:
		p.advance()
		return p.arena.NewSumti(ast.Sumti{Kind: ast.SumtiQuotedText, Text: t.Text, Delimiter: t.Payload, Span: t.Span}), true

	case token.KindDescriptor:
		p.advance()
		if t.Text == "la" && p.at(token.KindName) {
			name := p.advance()
			rels := p.parseRelativeClauses()
			p.eat(token.KindTerminator) // ku, elidable
			return p.arena.NewSumti(ast.Sumti{Kind: ast.SumtiName, Text: name.Text, RelativeClauses: rels, Span: t.Span}), true
		}
		selbri, ok := p.parseSelbri()
		if !ok {
			p.errorf(diagnostic.CodeParseUnexpectedToken, p.peek().Span, "expected a selbri after descriptor")
			return 0, false
		}
		rels := p.parseRelativeClauses()
		p.eat(token.KindTerminator) // ku, elidable
		return p.arena.NewSumti(ast.Sumti{
			Kind: ast.SumtiDescription, Descriptor: t.Text, Inner: selbri,
			RelativeClauses: rels, Span: t.Span,
		}), true

	case token.KindAbstractor:
		p.advance()
		body, ok := p.parseSentence()
		if !ok {
			p.errorf(diagnostic.CodeParseUnexpectedToken, p.peek().Span, "expected a sentence inside abstraction")
			return 0, false
		}
		p.eat(token.KindTerminator) // kei, elidable
		return p.arena.NewSumti(ast.Sumti{Kind: ast.SumtiAbstraction, Abstractor: t.Text, Body: body, Span: t.Span}), true

	case token.KindQuantifier:
		p.advance()
		selbri, ok := p.parseSelbri()
		if !ok {
			p.errorf(diagnostic.CodeParseUnexpectedToken, p.peek().Span, "expected a selbri after quantifier")
			return 0, false
		}
		rels := p.parseRelativeClauses()
		return p.arena.NewSumti(ast.Sumti{
			Kind: ast.SumtiDescription, Quantifier: t.Text, Inner: selbri,
			RelativeClauses: rels, Span: t.Span,
		}), true
	}

	p.errorf(diagnostic.CodeParseUnexpectedToken, t.Span, "expected a sumti, found "+t.Kind.String())
	return 0, false
}

func (p *parser) parseRelativeClauses() []ast.NodeID {
	var out []ast.NodeID
	for p.at(token.KindRelativeIntroducer) {
		intro := p.advance()
		kind := ast.RelativeRestrictive
		if intro.Text == "noi" {
			kind = ast.RelativeIncidental
		}
		pred, ok := p.parsePredication()
		if !ok {
			break
		}
		p.eat(token.KindTerminator) // ku'o, elidable
		out = append(out, p.arena.NewRelativeClause(ast.RelativeClause{Kind: kind, Predication: pred, Span: intro.Span}))
	}
	return out
}

// parseSelbri parses a tanru: a left-associative chain of selbri units.
func (p *parser) parseSelbri() (ast.NodeID, bool) {
	if !p.enter() {
		defer p.leave()
		return 0, false
	}
	defer p.leave()

	head, ok := p.parseSelbriUnit()
	if !ok {
		return 0, false
	}
	for startsSelbriUnit(p.peek().Kind) {
		span := p.peek().Span
		next, ok := p.parseSelbriUnit()
		if !ok {
			break
		}
		head = p.arena.NewSelbri(ast.Selbri{Kind: ast.SelbriTanru, Modifier: head, Head: next, Span: span})
	}
	if p.at(token.KindLogicalConnective) {
		conn := p.advance()
		right, ok := p.parseSelbri()
		if !ok {
			p.errorf(diagnostic.CodeParseUnexpectedToken, p.peek().Span, "expected a selbri after connective")
			return head, true
		}
		head = p.arena.NewSelbri(ast.Selbri{
			Kind: ast.SelbriConnected, ConnectiveText: conn.Text, Modifier: head, Head: right, Span: conn.Span,
		})
	}
	return head, true
}

func startsSelbriUnit(k token.Kind) bool {
	switch k {
	case token.KindRootPredicate, token.KindCompoundPredicate, token.KindConversion, token.KindGroupOpen, token.KindNegator:
		return true
	}
	return false
}

func (p *parser) parseSelbriUnit() (ast.NodeID, bool) {
	if !p.enter() {
		defer p.leave()
		return 0, false
	}
	defer p.leave()

	t := p.peek()
	switch t.Kind {
	case token.KindRootPredicate, token.KindCompoundPredicate:
		p.advance()
		unit := p.arena.NewSelbri(ast.Selbri{Kind: ast.SelbriSimple, PredicateText: t.Text, Span: t.Span})
		return p.parseBindArgsSuffix(unit, t.Span), true

	case token.KindNegator:
		p.advance()
		inner, ok := p.parseSelbriUnit()
		if !ok {
			return 0, false
		}
		return p.arena.NewSelbri(ast.Selbri{Kind: ast.SelbriNegated, Inner: inner, Span: t.Span}), true

	case token.KindConversion:
		p.advance()
		inner, ok := p.parseSelbriUnit()
		if !ok {
			return 0, false
		}
		unit := p.arena.NewSelbri(ast.Selbri{
			Kind: ast.SelbriPermuted, Permutation: conversionNumber(t.Text), Inner: inner, Span: t.Span,
		})
		return p.parseBindArgsSuffix(unit, t.Span), true

	case token.KindGroupOpen:
		p.advance()
		inner, ok := p.parseSelbri()
		if !ok {
			return 0, false
		}
		if _, ok := p.eat(token.KindGroupClose); !ok {
			p.errorf(diagnostic.CodeParseUnterminated, p.peek().Span, "expected ke'e to close ke group")
		}
		unit := p.arena.NewSelbri(ast.Selbri{Kind: ast.SelbriGrouped, Inner: inner, Span: t.Span})
		return p.parseBindArgsSuffix(unit, t.Span), true
	}

	p.errorf(diagnostic.CodeParseUnexpectedToken, t.Span, "expected a selbri unit, found "+t.Kind.String())
	return 0, false
}

// parseBindArgsSuffix recognizes a trailing "be term (bei term)* [be'o]"
// production and wraps base in a SelbriBindArgs node. If no "be" follows,
// base is returned unchanged.
func (p *parser) parseBindArgsSuffix(base ast.NodeID, baseSpan token.Span) ast.NodeID {
	if !(p.at(token.KindBindArgument) && p.peek().Text == "be") {
		return base
	}
	p.advance()

	var bound []ast.NodeID
	if term, ok := p.parseSumtiConnected(); ok {
		bound = append(bound, term)
	}
	for p.at(token.KindBindArgument) && p.peek().Text == "bei" {
		p.advance()
		term, ok := p.parseSumtiConnected()
		if !ok {
			break
		}
		bound = append(bound, term)
	}
	if p.at(token.KindBindArgument) && p.peek().Text == "be'o" {
		p.advance()
	}

	return p.arena.NewSelbri(ast.Selbri{Kind: ast.SelbriBindArgs, Inner: base, BoundArgs: bound, Span: baseSpan})
}

func conversionNumber(tag string) int {
	switch tag {
	case "se":
		return 1
	case "te":
		return 2
	case "ve":
		return 3
	case "xe":
		return 4
	}
	return 1
}
