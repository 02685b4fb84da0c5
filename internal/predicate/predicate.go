// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

// Package predicate holds the static predicate dictionary: the baked-in
// table of root predicates (gismu) and their place structures, consulted
// by the semantic compiler when it resolves a selbri's argument slots.
//
// The dictionary is built once at init time from a fixed list and never
// mutated afterwards, so lookups never take a lock.
package predicate

import "sync"

// DefaultArity is assumed for any predicate not present in the dictionary.
// The semantic compiler still compiles an unknown predicate — it just
// falls back to this arity and records a diagnostic — per the spec's
// requirement that an unrecognized root predicate degrade gracefully
// rather than abort compilation.
const DefaultArity = 2

// MaxArity bounds the place structures this dictionary will ever record.
const MaxArity = 5

// Entry describes one dictionary-known predicate.
type Entry struct {
	// Name is the predicate's citation form, e.g. "klama".
	Name string
	// Arity is the number of argument places x1..xN.
	Arity int
	// Gloss is a short English place-structure summary, e.g.
	// "x1 goes to x2 from x3 via x4 using x5".
	Gloss string
}

// builtins is the fixed seed list. It is small and illustrative rather
// than exhaustive — the dictionary is meant to be baked at build time
// from a generated word list, but a hand-maintained seed covers the
// predicates the reasoning examples in spec §8 actually exercise.
var builtins = []Entry{
	{Name: "klama", Arity: 5, Gloss: "x1 goes to x2 from x3 via x4 using x5"},
	{Name: "prenu", Arity: 1, Gloss: "x1 is a person"},
	{Name: "mlatu", Arity: 1, Gloss: "x1 is a cat"},
	{Name: "gerku", Arity: 1, Gloss: "x1 is a dog"},
	{Name: "nelci", Arity: 2, Gloss: "x1 likes x2"},
	{Name: "prami", Arity: 2, Gloss: "x1 loves x2"},
	{Name: "viska", Arity: 2, Gloss: "x1 sees x2"},
	{Name: "citka", Arity: 2, Gloss: "x1 eats x2"},
	{Name: "dunda", Arity: 3, Gloss: "x1 gives x2 to x3"},
	{Name: "tavla", Arity: 4, Gloss: "x1 talks to x2 about x3 in language x4"},
	{Name: "zgana", Arity: 3, Gloss: "x1 observes x2 using x3"},
	{Name: "djuno", Arity: 3, Gloss: "x1 knows x2 about x3"},
	{Name: "krici", Arity: 2, Gloss: "x1 believes x2"},
	{Name: "xamgu", Arity: 3, Gloss: "x1 is good for x2 by standard x3"},
	{Name: "bajra", Arity: 3, Gloss: "x1 runs on x2 using limbs x3"},
	{Name: "cusku", Arity: 3, Gloss: "x1 expresses x2 to x3"},
	{Name: "bangu", Arity: 4, Gloss: "x1 is a language used by x2 for x3"},
	{Name: "ckule", Arity: 4, Gloss: "x1 is a school at x2 teaching x3 to x4"},
	{Name: "cmene", Arity: 3, Gloss: "x1 is a name of x2 used by x3"},
	{Name: "zasti", Arity: 1, Gloss: "x1 exists"},
}

// Dictionary is a read-only, perfect-hash-style lookup table of predicate
// place structures. It is backed by a plain Go map: at this dictionary's
// scale a map already behaves like a precomputed perfect hash, without
// hand-rolling minimal perfect hashing for a few dozen keys.
type Dictionary struct {
	byName map[string]Entry
}

var (
	defaultOnce sync.Once
	defaultDict *Dictionary
)

// Default returns the shared built-in dictionary, built once.
func Default() *Dictionary {
	defaultOnce.Do(func() {
		defaultDict = build(builtins)
	})
	return defaultDict
}

func build(entries []Entry) *Dictionary {
	d := &Dictionary{byName: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		d.byName[e.Name] = e
	}
	return d
}

// Lookup returns the known entry for name, or false with a synthesized
// DefaultArity entry if name is not recognized.
func (d *Dictionary) Lookup(name string) (Entry, bool) {
	e, ok := d.byName[name]
	if !ok {
		return Entry{Name: name, Arity: DefaultArity, Gloss: "(unrecognized predicate)"}, false
	}
	return e, true
}

// Arity is a convenience wrapper around Lookup for callers that only need
// the place count.
func (d *Dictionary) Arity(name string) int {
	e, _ := d.Lookup(name)
	return e.Arity
}
