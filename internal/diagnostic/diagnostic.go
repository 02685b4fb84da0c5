// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

// Package diagnostic defines the pipeline-wide diagnostic record and a
// Go-compiler-style span-anchored renderer for presenting diagnostics
// against their originating source text.
package diagnostic

import (
	"fmt"
	"strings"

	"github.com/lojban-nesy/lojbanesy/internal/token"
)

// Severity classifies a diagnostic's impact on the pipeline's ability to
// continue.
type Severity uint8

const (
	// SeverityError means the stage that produced it could not complete
	// the affected unit of work (a sentence, a bridi).
	SeverityError Severity = iota
	// SeverityWarning means the stage degraded gracefully (e.g. fell
	// back to a default arity) but completed.
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Code taxonomy. Each stage owns a prefix so a code alone identifies
// which component raised it.
const (
	CodeLexUnclosedQuote   = "LEX_UNCLOSED_QUOTE"
	CodeLexMismatchedDelim = "LEX_MISMATCHED_DELIM"
	CodeLexInvalidWord     = "LEX_INVALID_WORD"
	CodeLexInvalidUTF8     = "LEX_INVALID_UTF8"

	CodeParseUnexpectedToken = "PARSE_UNEXPECTED_TOKEN"
	CodeParseDepthExceeded   = "PARSE_DEPTH_EXCEEDED"
	CodeParseUnterminated    = "PARSE_UNTERMINATED"

	CodeSemUnknownPredicate  = "SEM_UNKNOWN_PREDICATE"
	CodeSemUnresolvedAnaphor = "SEM_UNRESOLVED_ANAPHOR"

	CodeReasonBudgetExhausted = "REASON_BUDGET_EXHAUSTED"
	CodeReasonMalformed       = "REASON_MALFORMED"

	CodeInternal = "INTERNAL"
)

// Diagnostic is a single pipeline finding anchored to a source span.
type Diagnostic struct {
	Severity Severity
	Span     token.Span
	Code     string
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s [%s] at %s", d.Severity, d.Message, d.Code, d.Span)
}

// Render formats diagnostics against src in a Go-compiler-style layout:
// one source line per diagnostic with a caret under the offending
// column, preceded by the message and code. Line numbers are 1-based and
// match Span.Line.
func Render(src string, diags []Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}
	lines := strings.Split(src, "\n")

	var b strings.Builder
	for i, d := range diags {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s [%s]\n", d.Severity, d.Message, d.Code)

		lineIdx := d.Span.Line - 1
		if lineIdx >= 0 && lineIdx < len(lines) {
			srcLine := lines[lineIdx]
			fmt.Fprintf(&b, "  %d | %s\n", d.Span.Line, srcLine)

			gutter := len(fmt.Sprintf("  %d | ", d.Span.Line))
			col := d.Span.Col
			if col < 1 {
				col = 1
			}
			b.WriteString(strings.Repeat(" ", gutter+col-1))
			b.WriteString("^")
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// HasErrors reports whether any diagnostic in diags is SeverityError.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
