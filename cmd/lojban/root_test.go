// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdRegistersSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	names := make(map[string]bool)
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["repl"])
	assert.True(t, names["assert"])
	assert.True(t, names["query"])
	assert.True(t, names["version"])
}

func TestVersionCmdPrintsSchemaVersion(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"version"})
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "schema version:")
}

func TestExitCodeForUntaggedErrorIsInternal(t *testing.T) {
	assert.Equal(t, exitInternal, exitCodeFor(errors.New("boom")))
}

func TestExitCodeForInputError(t *testing.T) {
	assert.Equal(t, exitInput, exitCodeFor(inputError(errors.New("bad sentence"))))
}

func TestExitCodeForWrappedCliError(t *testing.T) {
	wrapped := errWrap{inputError(errors.New("bad sentence"))}
	assert.Equal(t, exitInput, exitCodeFor(wrapped))
}

// errWrap is a minimal Unwrap-supporting error for TestExitCodeForWrappedCliError.
type errWrap struct{ err error }

func (e errWrap) Error() string { return e.err.Error() }
func (e errWrap) Unwrap() error { return e.err }
