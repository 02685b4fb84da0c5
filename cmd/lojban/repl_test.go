// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplAssertThenQueryEntailed(t *testing.T) {
	root := NewRootCmd()
	root.SetArgs([]string{"repl"})
	root.SetIn(strings.NewReader("la djan klama le zarci\n?la djan klama le zarci\n:quit\n"))
	out := new(bytes.Buffer)
	root.SetOut(out)

	require.NoError(t, root.Execute())
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "ok", lines[0])
	assert.Equal(t, "yes", lines[len(lines)-1])
}

func TestReplClearResetsFacts(t *testing.T) {
	root := NewRootCmd()
	root.SetArgs([]string{"repl"})
	root.SetIn(strings.NewReader("la djan klama le zarci\n:clear\n?la djan klama le zarci\n:quit\n"))
	out := new(bytes.Buffer)
	root.SetOut(out)

	require.NoError(t, root.Execute())
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, "?", lines[len(lines)-1])
}

func TestReplFactsGlobFiltersByPredicate(t *testing.T) {
	root := NewRootCmd()
	root.SetArgs([]string{"repl"})
	root.SetIn(strings.NewReader("la djan klama le zarci\n:facts klam*\n:facts nomatch*\n:quit\n"))
	out := new(bytes.Buffer)
	root.SetOut(out)

	require.NoError(t, root.Execute())
	output := out.String()
	assert.Contains(t, output, "(atom klama")
}

func TestReplASTDumpRendersTree(t *testing.T) {
	root := NewRootCmd()
	root.SetArgs([]string{"repl"})
	root.SetIn(strings.NewReader(":ast la djan klama le zarci\n:quit\n"))
	out := new(bytes.Buffer)
	root.SetOut(out)

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Predication")
}

func TestReplMetricsAddrStartsAndStopsCleanly(t *testing.T) {
	root := NewRootCmd()
	root.SetArgs([]string{"repl", "--metrics-addr", "127.0.0.1:0"})
	root.SetIn(strings.NewReader("la djan klama le zarci\n:quit\n"))
	out := new(bytes.Buffer)
	root.SetOut(out)

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "ok")
}

func TestReplMetricsAddrRejectsUnparsableAddr(t *testing.T) {
	root := NewRootCmd()
	root.SetArgs([]string{"repl", "--metrics-addr", "not-a-valid-address"})
	root.SetIn(strings.NewReader(":quit\n"))
	out := new(bytes.Buffer)
	root.SetOut(out)

	err := root.Execute()
	assert.Error(t, err)
	assert.Equal(t, exitInternal, exitCodeFor(err))
}
