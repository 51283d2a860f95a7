// Package constraint implements a bounded distributive lattice of
// typevar-range constraints: a DNF formula over atomic constraints
// "typevar T is specialized to a type in [lo, hi]",
// combined with And/Or/Negate and consulted by internal/relation's
// ConstraintSetAssignability and SubtypingAssuming(cs) modes.
//
// The Set type mirrors the shape of internal/types.T itself: a small
// closed interface with one constructor per node kind, matched with type
// switches rather than given virtual dispatch, the same discipline
// internal/types uses for the type lattice.
package constraint

import (
	"fmt"
	"strings"

	"github.com/tycore-project/tycore/internal/types"
)

// Set is a node in the constraint DNF. Every constructor in this file
// returns a Set; Top and Bottom are the lattice bounds.
type Set interface {
	String() string
	isSet()
}

type topSet struct{}

func (topSet) isSet()        {}
func (topSet) String() string { return "⊤" }

type bottomSet struct{}

func (bottomSet) isSet()        {}
func (bottomSet) String() string { return "⊥" }

// Top is the always-satisfied constraint set.
var Top Set = topSet{}

// Bottom is the never-satisfied constraint set.
var Bottom Set = bottomSet{}

// Atom is one "typevar tv specialized to a type in [Lower, Upper]"
// constraint. Lower/Upper may be nil to mean "no bound on this side,"
// i.e. Never/object respectively.
type Atom struct {
	TypeVar types.TypeVarID
	Lower   types.T
	Upper   types.T
}

func (Atom) isSet() {}
func (a Atom) String() string {
	lo, hi := "Never", "object"
	if a.Lower != nil {
		lo = a.Lower.String()
	}
	if a.Upper != nil {
		hi = a.Upper.String()
	}
	return fmt.Sprintf("(%s <: %s <: %s)", lo, a.TypeVar, hi)
}

// ConstrainTypeVar builds an atomic constraint, the DNF leaf every
// typevar comparison in the relation engine's arms 7/8 produces under
// ConstraintSetAssignability.
func ConstrainTypeVar(tv types.TypeVarID, lower, upper types.T) Set {
	return Atom{TypeVar: tv, Lower: lower, Upper: upper}
}

// And is a conjunction of two constraint sets.
type And struct{ Left, Right Set }

func (And) isSet() {}
func (a And) String() string { return "(" + a.Left.String() + " ∧ " + a.Right.String() + ")" }

// Or is a disjunction of two constraint sets (DNF: a Set is an Or-tree of
// And-trees of Atoms, possibly with Top/Bottom/Negate interspersed).
type Or struct{ Left, Right Set }

func (Or) isSet() {}
func (o Or) String() string { return "(" + o.Left.String() + " ∨ " + o.Right.String() + ")" }

// Negate is the complement of a constraint set.
type Negate struct{ Inner Set }

func (Negate) isSet() {}
func (n Negate) String() string { return "¬" + n.Inner.String() }

// AndOf folds AndSimplify over a full slice, short-circuiting to Bottom
// as soon as any operand simplifies away the whole conjunction.
func AndOf(sets ...Set) Set {
	result := Top
	for _, s := range sets {
		result = AndSimplify(result, s)
		if result == Bottom {
			return Bottom
		}
	}
	return result
}

// OrOf folds OrSimplify over a full slice.
func OrOf(sets ...Set) Set {
	result := Bottom
	for _, s := range sets {
		result = OrSimplify(result, s)
		if result == Top {
			return Top
		}
	}
	return result
}

// AndSimplify builds And(a, b) with the trivial top/bottom
// simplifications applied, keeping the lattice from growing unboundedly
// on the common "everything is Top" path.
func AndSimplify(a, b Set) Set {
	if a == Bottom || b == Bottom {
		return Bottom
	}
	if a == Top {
		return b
	}
	if b == Top {
		return a
	}
	return And{Left: a, Right: b}
}

// OrSimplify is AndSimplify's dual.
func OrSimplify(a, b Set) Set {
	if a == Top || b == Top {
		return Top
	}
	if a == Bottom {
		return b
	}
	if b == Bottom {
		return a
	}
	return Or{Left: a, Right: b}
}

// NegateOf builds Negate(s) with the trivial double-negation and
// top/bottom simplifications applied.
func NegateOf(s Set) Set {
	switch v := s.(type) {
	case topSet:
		return Bottom
	case bottomSet:
		return Top
	case Negate:
		return v.Inner
	default:
		return Negate{Inner: s}
	}
}

// Describe renders a Set as a debug string: the full s.String() form,
// not just its top-level shape.
func Describe(s Set) string {
	var b strings.Builder
	b.WriteString(s.String())
	return b.String()
}
