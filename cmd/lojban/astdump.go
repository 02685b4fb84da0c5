// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package main

import (
	"fmt"
	"strings"

	"github.com/lojban-nesy/lojbanesy/internal/ast"
)

// dumpAST renders sentenceID as an indented tree, for the REPL's :ast
// debug dump — a plain recursive walk over the arena rather than a
// generic reflection-based dumper, since the node union is small and
// fixed (spec.md §4.2's five node kinds).
func dumpAST(arena *ast.Arena, sentenceID ast.NodeID) string {
	var b strings.Builder
	dumpSentence(&b, arena, sentenceID, 0)
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func dumpSentence(b *strings.Builder, arena *ast.Arena, id ast.NodeID, depth int) {
	s := arena.Sentence(id)
	indent(b, depth)
	fmt.Fprintf(b, "Sentence prenex=%d\n", len(s.Prenex))
	for _, v := range s.Prenex {
		indent(b, depth+1)
		fmt.Fprintf(b, "bound %s\n", arena.Sumti(v).Text)
	}
	dumpPredication(b, arena, s.Predication, depth+1)
}

func dumpPredication(b *strings.Builder, arena *ast.Arena, id ast.NodeID, depth int) {
	p := arena.Predication(id)
	indent(b, depth)
	fmt.Fprintf(b, "Predication negated=%v\n", p.Negated)
	dumpSelbri(b, arena, p.Selbri, depth+1)
	for place := 1; place <= len(p.Places)+1; place++ {
		sumtiID, ok := p.Places[place]
		if !ok {
			continue
		}
		indent(b, depth+1)
		fmt.Fprintf(b, "place %d:\n", place)
		dumpSumti(b, arena, sumtiID, depth+2)
	}
}

func dumpSelbri(b *strings.Builder, arena *ast.Arena, id ast.NodeID, depth int) {
	s := arena.Selbri(id)
	indent(b, depth)
	switch s.Kind {
	case ast.SelbriSimple:
		fmt.Fprintf(b, "Selbri %q\n", s.PredicateText)
	case ast.SelbriTanru:
		b.WriteString("Tanru\n")
		dumpSelbri(b, arena, s.Modifier, depth+1)
		dumpSelbri(b, arena, s.Head, depth+1)
	case ast.SelbriPermuted:
		fmt.Fprintf(b, "Permuted place=%d\n", s.Permutation)
		dumpSelbri(b, arena, s.Inner, depth+1)
	case ast.SelbriGrouped:
		b.WriteString("Grouped\n")
		dumpSelbri(b, arena, s.Inner, depth+1)
	}
}

func dumpSumti(b *strings.Builder, arena *ast.Arena, id ast.NodeID, depth int) {
	s := arena.Sumti(id)
	indent(b, depth)
	switch s.Kind {
	case ast.SumtiDescription:
		fmt.Fprintf(b, "Description %s\n", s.Descriptor)
		dumpSelbri(b, arena, s.Inner, depth+1)
		for _, relID := range s.RelativeClauses {
			rel := arena.RelativeClause(relID)
			indent(b, depth+1)
			fmt.Fprintf(b, "RelativeClause kind=%d\n", rel.Kind)
			dumpPredication(b, arena, rel.Predication, depth+2)
		}
	case ast.SumtiAbstraction:
		fmt.Fprintf(b, "Abstraction %s\n", s.Abstractor)
		dumpSentence(b, arena, s.Body, depth+1)
	default:
		fmt.Fprintf(b, "Sumti kind=%d text=%q\n", s.Kind, s.Text)
	}
}
