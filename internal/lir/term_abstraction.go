// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package lir

// AbstractionTerm is a Term standing for a reified proposition: the
// argument-position counterpart to an AbstractionRef formula. When a
// nu/du'u/ka abstraction fills an atom's argument place, the atom gets an
// AbstractionTerm naming it, and the formula carrying the abstraction's
// actual body is conjoined alongside at the enclosing sentence level.
type AbstractionTerm struct{ ID string }

func (AbstractionTerm) isTerm()          {}
func (a AbstractionTerm) String() string { return a.ID }
