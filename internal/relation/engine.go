// Package relation implements the single ordered dispatch matcher for
// the three closely-related predicates over (T, T) — subtyping,
// assignability, redundancy — plus disjointness and equivalence derived
// from them, sharing one 24-arm arm order and one cycle-safe descent.
//
// The dispatcher is a three-relation lattice backed by internal/cycle's
// reusable detector, with a structural protocol/trait lookup feeding the
// ProtocolInstance structural-satisfaction arms.
package relation

import (
	"fmt"

	"github.com/tycore-project/tycore/internal/classenv"
	"github.com/tycore-project/tycore/internal/constraint"
	"github.com/tycore-project/tycore/internal/cycle"
	"github.com/tycore-project/tycore/internal/store"
	"github.com/tycore-project/tycore/internal/types"
)

// Kind names which of the three closely-related predicates a query asks
// for. Disjointness and equivalence are derived (see IsDisjointFrom,
// IsEquivalentTo below) rather than being Kinds of their own, since the
// 24-arm matcher in dispatch.go is defined only over these three.
type Kind int

const (
	Subtyping Kind = iota
	Assignability
	Redundancy
)

func (k Kind) String() string {
	switch k {
	case Subtyping:
		return "<:"
	case Assignability:
		return "⇝"
	case Redundancy:
		return "⊑"
	default:
		return "?"
	}
}

// Mode selects whether a query returns a plain boolean or threads a
// constraint.Set through typevar comparisons.
type Mode int

const (
	// ModePlain is the default: typevar comparisons resolve to a boolean
	// using the typevar's own upper bound/constraints.
	ModePlain Mode = iota
	// ModeConstraintSet: every typevar comparison becomes an atomic
	// constraint accumulated into the returned Set (ConstraintSetAssignability).
	ModeConstraintSet
	// ModeAssuming: typevar comparisons consult an externally-supplied
	// Set rather than the typevar's static bound (SubtypingAssuming(cs)).
	ModeAssuming
)

// Opts configures one top-level query.
type Opts struct {
	Mode     Mode
	Assuming constraint.Set // consulted when Mode == ModeAssuming
}

// Engine is the relation dispatcher for one analysis session. It is
// stateless apart from its Store/Classes dependencies — a fresh
// cycle.Detector is created per top-level call so concurrent queries on
// the same Engine never share a stack: one Detector per query thread.
type Engine struct {
	Store   *store.Store
	Classes *classenv.Registry
	// MaxCycleIterations bounds the fixed-point iteration inside each
	// query's cycle.Detector (config.MaxCycleIterations).
	MaxCycleIterations int
}

// New creates an Engine over store and classes.
func New(st *store.Store, classes *classenv.Registry, maxCycleIterations int) *Engine {
	return &Engine{Store: st, Classes: classes, MaxCycleIterations: maxCycleIterations}
}

// query carries the per-call state dispatch.go's arms thread through
// recursive descent: the cycle detector, the relation kind, and the
// constraint-set mode/accumulator.
type query struct {
	kind     Kind
	detector *cycle.Detector
	mode     Mode
	assuming constraint.Set
	cs       constraint.Set // accumulator for ModeConstraintSet
}

// Result is what a top-level query returns: a boolean verdict plus,
// under ModeConstraintSet, the accumulated constraint set.
type Result struct {
	Holds      bool
	Constraints constraint.Set
}

// HasRelationTo is the single entry point for subtyping, assignability,
// and redundancy queries.
func (e *Engine) HasRelationTo(lhs, rhs types.T, kind Kind, opts Opts) Result {
	q := &query{
		kind:     kind,
		detector: cycle.New(e.MaxCycleIterations),
		mode:     opts.Mode,
		assuming: opts.Assuming,
		cs:       constraint.Top,
	}
	holds := e.dispatch(lhs, rhs, q)
	return Result{Holds: holds, Constraints: q.cs}
}

// IsSubtypeOf is HasRelationTo(Subtyping) sugar for callers (and for
// internal/store's RedundancyChecker/disjointness callbacks) that only
// want the boolean.
func (e *Engine) IsSubtypeOf(a, b types.T) bool {
	return e.HasRelationTo(a, b, Subtyping, Opts{}).Holds
}

// IsAssignableTo is HasRelationTo(Assignability) sugar.
func (e *Engine) IsAssignableTo(a, b types.T) bool {
	return e.HasRelationTo(a, b, Assignability, Opts{}).Holds
}

// IsRedundant implements store.RedundancyChecker: "is a redundant given
// b is already present," i.e. a ⊑ b.
func (e *Engine) IsRedundant(a, b types.T) bool {
	if types.IsDivergent(a) || types.IsDivergent(b) {
		return false
	}
	return e.HasRelationTo(a, b, Redundancy, Opts{}).Holds
}

// IsEquivalentTo reports mutual subtyping: type equivalence is defined
// as A <: B and B <: A. In addition, an instance of an enum class with
// exactly one member is equivalent to that member's EnumLit.
func (e *Engine) IsEquivalentTo(a, b types.T) bool {
	for _, p := range [2][2]types.T{{a, b}, {b, a}} {
		if el, ok := p[0].(types.EnumLit); ok {
			if n, ok := p[1].(types.NominalInstance); ok && len(n.Args) == 0 && n.Class == el.Class && e.Classes.EnumMemberCount(el.Class) == 1 {
				return true
			}
		}
	}
	return e.IsSubtypeOf(a, b) && e.IsSubtypeOf(b, a)
}

// IsDisjointFrom reports whether a and b share no common inhabitant.
// Derived, not a dispatch Kind: disjointness between two positive
// operands reduces to "neither can be a subtype of
// a value satisfying both," approximated here (as the rest of the
// engine's disjointness uses) by the standard rule that two fully
// distinguishable shapes (distinct literals, literals or nominal
// instances whose classes are unrelated by subclassing — final or not —
// anything against Never) are disjoint, and
// otherwise defaults to "not provably disjoint" — a conservative false
// that only weakens Intersection-to-Never promotion, never soundness in
// the subtype direction.
func (e *Engine) IsDisjointFrom(a, b types.T) bool {
	d := cycle.New(e.MaxCycleIterations)
	key := cycle.Key{Left: e.Store.Intern(a), Right: e.Store.Intern(b), Relation: "disjoint"}
	return cycle.Visit(d, key, false, func() bool {
		return e.disjoint(a, b, d)
	})
}

func (e *Engine) disjoint(a, b types.T, d *cycle.Detector) bool {
	if _, ok := a.(types.Never); ok {
		return true
	}
	if _, ok := b.(types.Never); ok {
		return true
	}
	if types.IsDynamic(a) || types.IsDynamic(b) {
		return false
	}
	if u, ok := a.(types.UnionT); ok {
		for _, e2 := range u.Elements {
			if !e.disjointRec(e2, b, d) {
				return false
			}
		}
		return true
	}
	if u, ok := b.(types.UnionT); ok {
		for _, e2 := range u.Elements {
			if !e.disjointRec(a, e2, d) {
				return false
			}
		}
		return true
	}

	an, aIsNom := a.(types.NominalInstance)
	bn, bIsNom := b.(types.NominalInstance)
	if aIsNom && bIsNom {
		return !e.Classes.IsSubclass(an.Class, bn.Class) && !e.Classes.IsSubclass(bn.Class, an.Class)
	}

	if sameVariantDistinctLiteral(a, b) {
		return true
	}

	// Literals and nominal instances from unrelated class families (e.g.
	// a str literal against an int literal, or a str literal against a
	// NominalInstance(int)) are disjoint even when they aren't the same
	// literal variant: reduce both sides to their underlying class (via
	// classOf, the same reduction the structural-satisfaction arm uses)
	// and fall back to the nominal-class check above.
	ca, aok := classOf(a)
	cb, bok := classOf(b)
	if aok && bok {
		return !e.Classes.IsSubclass(ca, cb) && !e.Classes.IsSubclass(cb, ca)
	}

	// Fallback: not provably disjoint.
	return false
}

func (e *Engine) disjointRec(a, b types.T, d *cycle.Detector) bool {
	key := cycle.Key{Left: e.Store.Intern(a), Right: e.Store.Intern(b), Relation: "disjoint"}
	return cycle.Visit(d, key, false, func() bool { return e.disjoint(a, b, d) })
}

func sameVariantDistinctLiteral(a, b types.T) bool {
	switch av := a.(type) {
	case types.IntLit:
		bv, ok := b.(types.IntLit)
		return ok && av.Value != bv.Value
	case types.StrLit:
		bv, ok := b.(types.StrLit)
		return ok && av.Value != bv.Value
	case types.BoolLit:
		bv, ok := b.(types.BoolLit)
		return ok && av.Value != bv.Value
	case types.EnumLit:
		bv, ok := b.(types.EnumLit)
		return ok && (av.Class != bv.Class || av.Member != bv.Member)
	default:
		return false
	}
}

// invariantf panics with a diag.InvariantViolation-shaped message for
// dispatch states that should be unreachable given the type model's
// smart-constructor invariants (e.g. an Intersection with zero positives
// and zero negatives).
func invariantf(component, format string, args ...any) {
	panic(fmt.Sprintf("tycore invariant violated in %s: %s", component, fmt.Sprintf(format, args...)))
}
