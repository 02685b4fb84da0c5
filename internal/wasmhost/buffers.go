// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package wasmhost

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/lojban-nesy/lojbanesy/internal/ast"
	"github.com/lojban-nesy/lojbanesy/internal/lir"
	"github.com/lojban-nesy/lojbanesy/internal/lirtext"
)

// astWireFormat is the gob-encoded payload shape for an AstBuffer: an
// arena snapshot plus the sentence node the receiving component should
// compile.
type astWireFormat struct {
	Snapshot ast.Snapshot
	Sentence ast.NodeID
}

// EncodeAst serializes one sentence's arena snapshot into an AstBuffer
// stamped with the boundary's current schema version.
func EncodeAst(arena *ast.Arena, sentence ast.NodeID) (AstBuffer, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(astWireFormat{Snapshot: arena.Snapshot(), Sentence: sentence}); err != nil {
		return AstBuffer{}, fmt.Errorf("wasmhost: encode ast buffer: %w", err)
	}
	return AstBuffer{SchemaVersion: CurrentSchemaVersion, Payload: buf.Bytes()}, nil
}

// DecodeAst reconstructs the arena and sentence node from an AstBuffer
// produced by EncodeAst.
func DecodeAst(b AstBuffer) (*ast.Arena, ast.NodeID, error) {
	var wire astWireFormat
	if err := gob.NewDecoder(bytes.NewReader(b.Payload)).Decode(&wire); err != nil {
		return nil, 0, fmt.Errorf("wasmhost: decode ast buffer: %w", err)
	}
	return ast.FromSnapshot(wire.Snapshot), wire.Sentence, nil
}

// EncodeLogic serializes a LIR formula into a LogicBuffer using
// internal/lirtext's surface syntax as the wire text.
func EncodeLogic(f lir.Formula) LogicBuffer {
	return LogicBuffer{SchemaVersion: CurrentSchemaVersion, Payload: []byte(lirtext.FormatFormula(f))}
}

// DecodeLogic parses a LogicBuffer's payload back into a LIR formula.
func DecodeLogic(b LogicBuffer) (lir.Formula, error) {
	f, err := lirtext.ParseFormula(string(b.Payload))
	if err != nil {
		return nil, fmt.Errorf("wasmhost: decode logic buffer: %w", err)
	}
	return f, nil
}
