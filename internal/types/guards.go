package types

import "fmt"

// PlaceID names a narrowable storage location: a variable name, an
// attribute access, or a subscript, scoped to a function/module body.
// Defined here (rather than in internal/narrow) because TypeGuardT and
// TypeIsT carry a PlaceInfo identifying which parameter they narrow.
type PlaceID struct {
	Scope string
	Path  string // e.g. "x", "x.attr", "x[0]"
}

func (p PlaceID) String() string {
	if p.Scope == "" {
		return p.Path
	}
	return p.Scope + ":" + p.Path
}

// PlaceInfo identifies which parameter of a TypeGuard/TypeIs function a
// narrowing applies to. Index -1 means "the first positional parameter"
// is implied (the common `def is_foo(x) -> TypeIs[Foo]` shape) rather
// than referencing `self`.
type PlaceInfo struct {
	ParamIndex int
}

// TypeGuardT is the return type of a TypeGuard-returning function:
// covariant in ReturnType, and its narrowing clobbers any TypeIs
// narrowing to its left in an AND chain.
type TypeGuardT struct {
	ReturnType T
	Place      PlaceInfo
}

func (t TypeGuardT) tag() tkind     { return tagTypeGuard }
func (t TypeGuardT) String() string { return fmt.Sprintf("TypeGuard[%s]", t.ReturnType) }
func (t TypeGuardT) FreeTypeVars() []TypeVarID { return freeVarsOf(t.ReturnType) }

// TypeIsT is the return type of a TypeIs-returning function: invariant
// in ReturnType.
type TypeIsT struct {
	ReturnType T
	Place      PlaceInfo
}

func (t TypeIsT) tag() tkind     { return tagTypeIs }
func (t TypeIsT) String() string { return fmt.Sprintf("TypeIs[%s]", t.ReturnType) }
func (t TypeIsT) FreeTypeVars() []TypeVarID { return freeVarsOf(t.ReturnType) }
