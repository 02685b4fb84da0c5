// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

// Package wasmhost hosts the pipeline's parser, semantics, and
// reasoning stages as independently replaceable components behind a
// typed flat-buffer boundary, adapted from the teacher's wazero-based
// WASM plugin host. A component may be backed by a compiled WASM
// module (cross-process, cross-language) or, absent one, by an
// in-process Go fallback registered at startup — the orchestrator
// composes whichever is available under the same interface, so the
// pipeline runs identically whether a stage is loaded as a guest
// module or linked directly into this binary.
package wasmhost

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// Component names the three stages composable across the boundary.
type Component string

const (
	ComponentParser    Component = "parser"
	ComponentSemantics Component = "semantics"
	ComponentReasoning Component = "reasoning"
)

// CurrentSchemaVersion is the boundary's own version: the shape of
// AstBuffer/LogicBuffer as defined in this package. A module declaring
// an incompatible schema version is refused at load time.
const CurrentSchemaVersion = "1.0.0"

// SchemaConstraint is CurrentSchemaVersion parsed as a semver version.
// LoadComponent accepts a guest module whose declared schema version
// has the same major version as this one.
var SchemaConstraint = semver.MustParse(CurrentSchemaVersion)

// ErrHostClosed is returned when operations are attempted on a closed Host.
var ErrHostClosed = fmt.Errorf("wasmhost: host is closed")

// ErrSchemaIncompatible is returned when a guest module's declared
// schema version isn't compatible with CurrentSchemaVersion.
var ErrSchemaIncompatible = fmt.Errorf("wasmhost: incompatible schema version")

// ErrComponentNotFound is returned when neither a WASM module nor a
// local fallback is registered for a requested component.
var ErrComponentNotFound = fmt.Errorf("wasmhost: component not loaded")

// AstBuffer is the flat, pointer-free value that crosses the boundary
// between the parser component and the semantics component: a
// serialized ast.Arena snapshot plus the sentence node to compile.
type AstBuffer struct {
	SchemaVersion string
	Payload       []byte
}

// LogicBuffer is the flat value that crosses the boundary between the
// semantics component and the reasoning component: a serialized LIR
// formula (via internal/lirtext's s-expression encoding).
type LogicBuffer struct {
	SchemaVersion string
	Payload       []byte
}

// LocalFunc is an in-process fallback for a component: it receives the
// raw payload bytes of the caller's buffer and returns the raw payload
// bytes of the result, exactly the contract a WASM guest export would
// fulfil across the linear-memory boundary.
type LocalFunc func(ctx context.Context, payload []byte) ([]byte, error)

type guestModule struct {
	schemaVersion string
	module        api.Module
}

// Host manages the three pipeline components, wazero-hosted or local.
type Host struct {
	mu      sync.RWMutex
	closed  bool
	runtime wazero.Runtime
	guests  map[Component]guestModule
	locals  map[Component]LocalFunc
}

// NewHost constructs an empty Host. The wazero runtime is created
// lazily on the first LoadComponent call.
func NewHost() *Host {
	return &Host{
		guests: make(map[Component]guestModule),
		locals: make(map[Component]LocalFunc),
	}
}

// RegisterLocal wires an in-process fallback implementation for a
// component, used whenever no WASM module is loaded for it.
func (h *Host) RegisterLocal(name Component, fn LocalFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.locals[name] = fn
}

// LoadComponent instantiates a WASM module to back name, refusing it
// if schemaVersion isn't compatible with CurrentSchemaVersion.
func (h *Host) LoadComponent(ctx context.Context, name Component, schemaVersion string, wasm []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHostClosed
	}

	declared, err := semver.NewVersion(schemaVersion)
	if err != nil {
		return fmt.Errorf("wasmhost: parse schema version %q: %w", schemaVersion, err)
	}
	if declared.Major() != SchemaConstraint.Major() {
		return fmt.Errorf("%w: component %s declares %s, host requires major version %d",
			ErrSchemaIncompatible, name, schemaVersion, SchemaConstraint.Major())
	}

	if h.runtime == nil {
		h.runtime = wazero.NewRuntime(ctx)
	}

	mod, err := h.runtime.Instantiate(ctx, wasm)
	if err != nil {
		return fmt.Errorf("wasmhost: instantiate component %s: %w", name, err)
	}

	h.guests[name] = guestModule{schemaVersion: schemaVersion, module: mod}
	slog.Debug("wasmhost: component loaded", "component", name, "schema_version", schemaVersion)
	return nil
}

// HasGuest reports whether name is backed by a loaded WASM module
// (as opposed to only a local fallback, or nothing).
func (h *Host) HasGuest(name Component) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.guests[name]
	return ok
}

// Call dispatches payload to name's guest module's exported "invoke"
// function if one is loaded, otherwise to its registered local
// fallback. It returns ErrComponentNotFound if neither is available.
func (h *Host) Call(ctx context.Context, name Component, payload []byte) ([]byte, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return nil, ErrHostClosed
	}

	if guest, ok := h.guests[name]; ok {
		return callGuestInvoke(ctx, guest.module, payload)
	}
	if fn, ok := h.locals[name]; ok {
		return fn(ctx, payload)
	}
	return nil, fmt.Errorf("%w: %s", ErrComponentNotFound, name)
}

// callGuestInvoke writes payload into the guest's linear memory, calls
// its exported "invoke" function with (ptr, len), and reads back the
// (ptr, len) result it returns — the same raw-memory calling
// convention the teacher's PluginHost.CallFunction exposes, specialized
// to a single-argument/single-result shape.
func callGuestInvoke(ctx context.Context, mod api.Module, payload []byte) ([]byte, error) {
	alloc := mod.ExportedFunction("allocate")
	invoke := mod.ExportedFunction("invoke")
	if alloc == nil || invoke == nil {
		return nil, fmt.Errorf("wasmhost: guest module missing allocate/invoke exports")
	}

	results, err := alloc.Call(ctx, uint64(len(payload)))
	if err != nil {
		return nil, fmt.Errorf("wasmhost: guest allocate failed: %w", err)
	}
	ptr := results[0]

	if !mod.Memory().Write(uint32(ptr), payload) {
		return nil, fmt.Errorf("wasmhost: guest memory write out of range")
	}

	results, err = invoke.Call(ctx, ptr, uint64(len(payload)))
	if err != nil {
		return nil, fmt.Errorf("wasmhost: guest invoke failed: %w", err)
	}
	outPtr, outLen := uint32(results[0]), uint32(results[1])

	out, ok := mod.Memory().Read(outPtr, outLen)
	if !ok {
		return nil, fmt.Errorf("wasmhost: guest memory read out of range")
	}
	return append([]byte(nil), out...), nil
}

// Close shuts down the wazero runtime and releases all guest modules.
// After Close, the Host cannot be reused; further operations return
// ErrHostClosed.
func (h *Host) Close(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	h.guests = make(map[Component]guestModule)
	if h.runtime != nil {
		rt := h.runtime
		h.runtime = nil
		if err := rt.Close(ctx); err != nil {
			return fmt.Errorf("wasmhost: close runtime: %w", err)
		}
	}
	return nil
}
