// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lojban-nesy/lojbanesy/internal/token"
)

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, "", Render("mi klama", nil))
}

func TestRenderPointsAtColumn(t *testing.T) {
	src := "mi klama le zarci"
	diags := []Diagnostic{
		{
			Severity: SeverityError,
			Span:     token.Span{Line: 1, Col: 4},
			Code:     CodeParseUnexpectedToken,
			Message:  "unexpected token",
		},
	}

	out := Render(src, diags)
	assert.Contains(t, out, "PARSE_UNEXPECTED_TOKEN")
	assert.Contains(t, out, "mi klama le zarci")
	assert.Contains(t, out, "^")
}

func TestHasErrors(t *testing.T) {
	assert.False(t, HasErrors(nil))
	assert.False(t, HasErrors([]Diagnostic{{Severity: SeverityWarning}}))
	assert.True(t, HasErrors([]Diagnostic{{Severity: SeverityWarning}, {Severity: SeverityError}}))
}
