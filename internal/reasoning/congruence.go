// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package reasoning

import "github.com/lojban-nesy/lojbanesy/internal/lir"

// congruence is a minimal e-graph: a union-find over term keys that
// lets the engine treat asserted Eq facts as identifying constants, so
// an atom built from either name matches facts stored under the other
// (facts keep their literal keys; equal is checked at lookup time).
type congruence struct {
	parent      map[string]string
	termByKey   map[string]lir.Term
	skolemCount int
}

func newCongruence() *congruence {
	return &congruence{
		parent:    make(map[string]string),
		termByKey: make(map[string]lir.Term),
	}
}

func termKey(t lir.Term) string {
	switch x := t.(type) {
	case lir.Const:
		return "c:" + x.Name
	case lir.Var:
		return "v:" + x.Name
	case lir.SkolemConst:
		return "s:" + itoaSmall(x.ID)
	case lir.AbstractionTerm:
		return "a:" + x.ID
	case lir.Unspecified:
		return "_"
	}
	return "?"
}

func itoaSmall(n int) string {
	if n == 0 {
		return "0"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	return string(b)
}

func (c *congruence) find(key string) string {
	if _, ok := c.parent[key]; !ok {
		c.parent[key] = key
		return key
	}
	if c.parent[key] != key {
		c.parent[key] = c.find(c.parent[key])
	}
	return c.parent[key]
}

// union merges the equivalence classes of a and b.
func (c *congruence) union(a, b lir.Term) {
	ka, kb := termKey(a), termKey(b)
	c.termByKey[ka] = a
	c.termByKey[kb] = b
	ra, rb := c.find(ka), c.find(kb)
	if ra != rb {
		c.parent[ra] = rb
	}
}

// equal reports whether a and b are in the same equivalence class.
// Terms never unioned with anything are only equal to themselves.
func (c *congruence) equal(a, b lir.Term) bool {
	if termKey(a) == termKey(b) {
		return true
	}
	return c.find(termKey(a)) == c.find(termKey(b))
}

// freshSkolem mints a constant distinct from any the engine has minted
// before, for Skolemizing an asserted existential.
func (c *congruence) freshSkolem() lir.SkolemConst {
	c.skolemCount++
	return lir.SkolemConst{ID: c.skolemCount}
}

// knownConstants returns every Const/SkolemConst term the engine has
// ever seen as an atom argument or equality operand, used to instantiate
// bounded quantifier evaluation.
func (c *congruence) knownConstants() []lir.Term {
	seen := make(map[string]bool)
	var out []lir.Term
	for k, t := range c.termByKey {
		switch t.(type) {
		case lir.Const, lir.SkolemConst:
			if !seen[k] {
				seen[k] = true
				out = append(out, t)
			}
		}
	}
	return out
}

// observe registers every constant/Skolem term mentioned in atom so
// quantifier evaluation can later enumerate it even if it was never an
// equality operand.
func (c *congruence) observe(atom lir.Atom) {
	for _, a := range atom.Args {
		switch a.(type) {
		case lir.Const, lir.SkolemConst:
			c.termByKey[termKey(a)] = a
		}
	}
}
