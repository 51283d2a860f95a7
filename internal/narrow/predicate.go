// Package narrow builds a place -> T narrowing map from a predicate (a
// boolean expression or a match-pattern arm) and the types visible at
// the point the predicate is tested.
//
// Predicate is a small closed AST, deliberately not a general-purpose
// language AST (which would carry full-language nodes — statements,
// calls, loops — when this only ever needs the handful of boolean-test
// shapes narrowing cares about). Leaf dispatch is an explicit type
// switch in leaf.go (evaluateLeaf) rather than a visitor-pattern
// interface, so that arm order stays visible in one place.
package narrow

import "github.com/tycore-project/tycore/internal/types"

// Predicate is the closed set of boolean-test shapes the narrowing
// builder understands.
type Predicate interface {
	isPredicate()
}

// Truthiness is `if x:` / `if not x:` — tested via Polarity, not a
// separate negated node.
type Truthiness struct{ Place types.PlaceID }

func (Truthiness) isPredicate() {}

// IsComparison is `x is y` / `x is not y`, modeled with Negated rather
// than two node kinds.
type IsComparison struct {
	Place    types.PlaceID
	Target   types.T // the singleton (None, a specific EnumLit, ...) compared against
	Negated  bool
}

func (IsComparison) isPredicate() {}

// EqComparison is `x == y` / `x != y`. BoolLit and IntLit targets get
// special-case treatment in leaf.go: `== True`/`== 1` narrows to the
// union of True and 1 (likewise False and 0), since bool is an int
// subclass with True == 1 and False == 0.
type EqComparison struct {
	Place   types.PlaceID
	Target  types.T
	Negated bool
}

func (EqComparison) isPredicate() {}

// MembershipTest is `x in y` / `x not in y` over a fixed container of
// literal alternatives (the only shape narrowing can say anything
// useful about).
type MembershipTest struct {
	Place       types.PlaceID
	Alternatives []types.T
	Negated     bool
}

func (MembershipTest) isPredicate() {}

// IsInstanceTest is `isinstance(x, C)` / `issubclass(x, C)`.
type IsInstanceTest struct {
	Place       types.PlaceID
	Classes     []types.ClassID // the tuple form: isinstance(x, (A, B))
	IsSubclass  bool            // true for issubclass rather than isinstance
	Negated     bool
}

func (IsInstanceTest) isPredicate() {}

// HasAttrTest is `hasattr(x, "name")`.
type HasAttrTest struct {
	Place   types.PlaceID
	Attr    string
	Negated bool
}

func (HasAttrTest) isPredicate() {}

// TypeIsCall is `type(x) is C`, narrower than isinstance (excludes
// subclasses).
type TypeIsCall struct {
	Place   types.PlaceID
	Class   types.ClassID
	Negated bool
}

func (TypeIsCall) isPredicate() {}

// GuardCall is a call to a function whose return type is TypeGuard[T] or
// TypeIs[T], applied to the argument at ReturnType.Place.
type GuardCall struct {
	ReturnType types.T // types.TypeGuardT or types.TypeIsT
	Negated    bool
}

func (GuardCall) isPredicate() {}

// And/Or/Not are the boolean-operator recursion narrowing needs;
// narrowing through them is the DNF construction in dnf.go.
type And struct{ Left, Right Predicate }

func (And) isPredicate() {}

type Or struct{ Left, Right Predicate }

func (Or) isPredicate() {}

type Not struct{ Inner Predicate }

func (Not) isPredicate() {}

// MatchPattern is one arm of a `match` statement: a pattern (class
// pattern, literal pattern, or capture) tested against Place.
type MatchPattern struct {
	Place   types.PlaceID
	Class   types.ClassID // "" for a literal/wildcard pattern
	Literal types.T       // non-nil for a literal pattern
}

func (MatchPattern) isPredicate() {}
