// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

// Package oracle wires an optional, out-of-process predicate-weighting
// oracle into the pipeline: a separate program, launched and supervised
// with HashiCorp's go-plugin, that scores how well a candidate
// predicate symbol fits a bridi's arguments. The semantic compiler asks
// it only about predicates missing from the static dictionary, and only
// to annotate the unknown-predicate warning with the returned weight;
// the oracle does not change the predicate name or its arity.
//
// The oracle is disabled unless a caller explicitly constructs a Host:
// nothing in the core pipeline depends on one being present.
package oracle

import (
	"context"

	hashiplug "github.com/hashicorp/go-plugin"
)

// Scorer is the narrow contract the pipeline depends on: given a
// predicate symbol and the surface text of its filled argument places,
// return a confidence weight in [0, 1] that sym is the right predicate
// for this bridi. Implementations may be local (for tests) or backed
// by a Host talking to an external process.
type Scorer interface {
	ScorePredicate(ctx context.Context, sym string, args []string) (float64, error)
}

// HandshakeConfig is the go-plugin handshake both the host and any
// oracle plugin binary must agree on: go-plugin's magic-cookie check
// plus a protocol version.
var HandshakeConfig = hashiplug.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "LOJBANESY_ORACLE_PLUGIN",
	MagicCookieValue: "predicate-weighting",
}

// pluginKey names the single plugin a Host dispenses.
const pluginKey = "oracle"

// PluginMap is the map of plugins an oracle Host can dispense.
var PluginMap = map[string]hashiplug.Plugin{
	pluginKey: &oraclePlugin{},
}
