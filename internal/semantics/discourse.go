// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

// Package semantics compiles parsed sentences into the logical
// intermediate representation, threading discourse state (anaphora,
// fresh-variable and Skolem-constant minting) across successive calls
// within one session.
package semantics

import (
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/lojban-nesy/lojbanesy/internal/lir"
)

// ringSize bounds how many recent sumti the discourse context keeps
// addressable for "ri" (a ring buffer rather than a single slot, since a
// sentence can use "ri" after several intervening sumti).
const ringSize = 8

// Discourse carries state across sentences in one session: anaphora
// resolution, fresh-variable minting, and the running Skolem-constant
// counter. A Discourse is reset wholesale on a session's :clear.
type Discourse struct {
	lastSumti       [ringSize]lir.Term
	lastSumtiCount  int
	lastPredication lir.Formula
	namedBindings   map[string]lir.Term
	freshVarCounter int
	skolemCounter   int
	abstractEntropy *ulid.MonotonicEntropy
}

// NewDiscourse constructs an empty discourse context.
func NewDiscourse() *Discourse {
	return &Discourse{
		namedBindings: make(map[string]lir.Term),
		abstractEntropy: ulid.Monotonic(
			rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
}

// Reset clears all discourse state, as required on session reset
// alongside the reasoning database.
func (d *Discourse) Reset() {
	*d = *NewDiscourse()
}

// RecordSumti pushes term onto the "ri" ring.
func (d *Discourse) RecordSumti(term lir.Term) {
	d.lastSumti[d.lastSumtiCount%ringSize] = term
	d.lastSumtiCount++
}

// LastSumti returns the most recently recorded sumti term, or (nil,
// false) if none has been recorded yet this session.
func (d *Discourse) LastSumti() (lir.Term, bool) {
	if d.lastSumtiCount == 0 {
		return nil, false
	}
	idx := (d.lastSumtiCount - 1) % ringSize
	return d.lastSumti[idx], true
}

// RecordPredication remembers formula as the referent for a later "go'i".
func (d *Discourse) RecordPredication(formula lir.Formula) {
	d.lastPredication = formula
}

// LastPredication returns the most recently recorded predication, or
// (nil, false) if none has been recorded yet.
func (d *Discourse) LastPredication() (lir.Formula, bool) {
	if d.lastPredication == nil {
		return nil, false
	}
	return d.lastPredication, true
}

// BindName memoizes the constant a cmevla resolves to, so repeated
// mentions of the same name within a session map to the same Const.
func (d *Discourse) BindName(name string) lir.Term {
	if t, ok := d.namedBindings[name]; ok {
		return t
	}
	t := lir.Const{Name: name}
	d.namedBindings[name] = t
	return t
}

// FreshVar mints a variable name guaranteed unused so far this session,
// for desugaring descriptions into existentially bound variables.
func (d *Discourse) FreshVar() string {
	d.freshVarCounter++
	return varName(d.freshVarCounter)
}

// FreshSkolem mints a new Skolem constant, used when a description or
// existential prenex variable needs a concrete witness at assertion time.
func (d *Discourse) FreshSkolem() lir.SkolemConst {
	d.skolemCounter++
	return lir.SkolemConst{ID: d.skolemCounter}
}

// FreshAbstractionID mints a ULID identifying a reified nu/du'u/ka
// proposition, unique within a session, giving AbstractionRef ids a
// total, time-sortable order useful for diagnostics.
func (d *Discourse) FreshAbstractionID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), d.abstractEntropy).String()
}

func varName(n int) string {
	const letters = "xyzwuvst"
	return string(letters[(n-1)%len(letters)]) + suffix(n)
}

func suffix(n int) string {
	idx := (n - 1) / 8
	if idx == 0 {
		return ""
	}
	digits := []byte{}
	for idx > 0 {
		digits = append([]byte{byte('0' + idx%10)}, digits...)
		idx /= 10
	}
	return string(digits)
}
