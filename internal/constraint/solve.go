package constraint

import "github.com/tycore-project/tycore/internal/types"

// SubtypeFunc is the plain (non-constraint-set) subtype check the solver
// delegates to for concrete, non-typevar operands — supplied by
// internal/relation so this package never imports it back.
type SubtypeFunc func(a, b types.T) bool

// Satisfiable reports whether s has at least one satisfying assignment of
// its typevars, given subtype as the ground-truth subtype test for
// atomic range bounds. Negate is handled by the textbook (but only
// locally sound) "not satisfiable of the inner set" rule; this package
// does not attempt full quantifier elimination over the DNF — a generic-
// function-inference solver is a separate collaborator, not this
// package's job.
func Satisfiable(s Set, subtype SubtypeFunc) bool {
	switch v := s.(type) {
	case topSet:
		return true
	case bottomSet:
		return false
	case Atom:
		return atomSatisfiable(v, subtype)
	case And:
		return Satisfiable(v.Left, subtype) && Satisfiable(v.Right, subtype)
	case Or:
		return Satisfiable(v.Left, subtype) || Satisfiable(v.Right, subtype)
	case Negate:
		return !Satisfiable(v.Inner, subtype)
	default:
		return false
	}
}

func atomSatisfiable(a Atom, subtype SubtypeFunc) bool {
	if a.Lower == nil || a.Upper == nil {
		return true
	}
	return subtype(a.Lower, a.Upper)
}

// ImpliesSubtypeOf returns the constraint set under which X <: Y holds
// given the constraints already recorded in cs. For
// non-typevar X and Y it delegates to subtype and returns Top/Bottom;
// for a typevar operand it narrows cs's existing range for that typevar
// by the new bound and returns the tightened set, joined with cs via And
// so earlier constraints on the same session are preserved.
func ImpliesSubtypeOf(cs Set, x, y types.T, subtype SubtypeFunc) Set {
	xv, xIsVar := x.(types.TypeVarT)
	yv, yIsVar := y.(types.TypeVarT)

	switch {
	case xIsVar && yIsVar:
		return AndSimplify(cs, AndSimplify(
			ConstrainTypeVar(xv.Bound.ID, nil, y),
			ConstrainTypeVar(yv.Bound.ID, x, nil),
		))
	case xIsVar:
		return AndSimplify(cs, ConstrainTypeVar(xv.Bound.ID, nil, y))
	case yIsVar:
		return AndSimplify(cs, ConstrainTypeVar(yv.Bound.ID, x, nil))
	default:
		if subtype(x, y) {
			return cs
		}
		return Bottom
	}
}
