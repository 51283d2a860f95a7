package relation

import (
	"github.com/tycore-project/tycore/internal/constraint"
	"github.com/tycore-project/tycore/internal/cycle"
	"github.com/tycore-project/tycore/internal/types"
)

// dispatch is the 24-arm matcher for subtyping, assignability, and
// redundancy. Arm order is
// semantically significant: the first arm whose guard matches wins, so
// this function is written as one long ordered if/switch chain rather
// than split across helper predicates that might get reordered by a
// future refactor.
func (e *Engine) dispatch(lhs, rhs types.T, q *query) bool {
	// Arm 1: everything is a subtype of object.
	if n, ok := rhs.(types.NominalInstance); ok && n.Class == "object" && len(n.Args) == 0 {
		return true
	}

	// Arm 2: everything satisfies a member-less (object-like) protocol.
	if p, ok := rhs.(types.ProtocolInstance); ok && p.IsObjectLike(e.Classes.MemberCount) {
		return true
	}

	// Arm 3: Never is a subtype of everything (including Never itself,
	// caught by the lhs check below); nothing else is a subtype of Never.
	if _, ok := lhs.(types.Never); ok {
		return true
	}
	if _, ok := rhs.(types.Never); ok {
		return false
	}

	// Arm 4: Divergent is assignable but never a strict subtype or
	// redundant with anything.
	if types.IsDivergent(lhs) || types.IsDivergent(rhs) {
		return q.kind == Assignability
	}

	// Arm 5: dereference TypeAliasT through the cycle detector.
	if a, ok := lhs.(types.TypeAliasT); ok {
		return e.visitPair(lhs, rhs, q, func() bool {
			return e.dispatch(e.resolveAlias(a), rhs, q)
		})
	}
	if a, ok := rhs.(types.TypeAliasT); ok {
		return e.visitPair(lhs, rhs, q, func() bool {
			return e.dispatch(lhs, e.resolveAlias(a), q)
		})
	}

	// Arm 6: Dynamic on either side.
	if types.IsDynamic(lhs) || types.IsDynamic(rhs) {
		switch q.kind {
		case Assignability:
			return true
		case Subtyping:
			return false
		default: // Redundancy
			return containsDynamicDeep(lhs) && containsDynamicDeep(rhs)
		}
	}

	// Arm 7: TypeVar on the left.
	if tv, ok := lhs.(types.TypeVarT); ok {
		return e.dispatchTypeVarLeft(tv, rhs, q)
	}

	// Arm 8: TypeVar on the right.
	if tv, ok := rhs.(types.TypeVarT); ok {
		return e.dispatchTypeVarRight(lhs, tv, q)
	}

	// Arm 9: SubclassOf is covariant in its inner class.
	if a, ok := lhs.(types.SubclassOf); ok {
		if b, ok := rhs.(types.SubclassOf); ok {
			return e.subclassInnerLE(a.Inner, b.Inner, q)
		}
	}

	// Arm 10: a class literal is a subtype of type[b] iff the class
	// itself is a subclass of b.
	if c, ok := lhs.(types.ClassLit); ok {
		if b, ok := rhs.(types.SubclassOf); ok {
			if bc, ok := b.Inner.(types.SubclassInnerClass); ok {
				return e.Classes.IsSubclass(c.Class, bc.Class)
			}
		}
	}

	// Arm 11: union on the left distributes universally.
	if u, ok := lhs.(types.UnionT); ok {
		for _, elem := range u.Elements {
			if !e.dispatch(elem, rhs, q) {
				return false
			}
		}
		return true
	}

	// Arm 12: union on the right distributes existentially.
	if u, ok := rhs.(types.UnionT); ok {
		for _, elem := range u.Elements {
			if e.dispatch(lhs, elem, q) {
				return true
			}
		}
		return false
	}

	// Arm 13: intersection on the right.
	if it, ok := rhs.(types.IntersectionT); ok {
		return e.visitPair(lhs, rhs, q, func() bool {
			return e.dispatchIntersectionRight(lhs, it, q)
		})
	}

	// Arm 14: intersection on the left holds if some positive member
	// does.
	if it, ok := lhs.(types.IntersectionT); ok {
		for _, p := range it.Positive {
			if e.dispatch(p, rhs, q) {
				return true
			}
		}
		return false
	}

	// Arm 15: protocol-to-protocol structural satisfaction.
	if p, ok := lhs.(types.ProtocolInstance); ok {
		if pq, ok := rhs.(types.ProtocolInstance); ok {
			return e.visitPair(lhs, rhs, q, func() bool {
				return e.protocolSatisfies(p.Protocol, pq.Protocol, q)
			})
		}
	}

	// Arm 16: anything-to-protocol structural satisfaction.
	if pq, ok := rhs.(types.ProtocolInstance); ok {
		return e.visitPair(lhs, rhs, q, func() bool {
			return e.structuralSatisfies(lhs, pq.Protocol, q)
		})
	}

	// Arm 17: TypedDict width-compatibility.
	if a, ok := lhs.(types.TypedDictT); ok {
		if b, ok := rhs.(types.TypedDictT); ok {
			return e.typedDictCompatible(a, b, q)
		}
	}

	// Arm 18: Callable contravariant/covariant signature matching.
	if f, ok := lhs.(types.CallableT); ok {
		if g, ok := rhs.(types.CallableT); ok {
			return e.callableCompatible(f.Signature, g.Signature, q)
		}
	}

	// Arm 19: FunctionLit identity plus specialization equivalence.
	if f1, ok := lhs.(types.FunctionLit); ok {
		if f2, ok := rhs.(types.FunctionLit); ok {
			return f1.Function == f2.Function && e.specializationEquivalent(f1.Specialization, f2.Specialization)
		}
	}

	// Arm 20: bool literal is a subtype of bool or int (bool <: int).
	if b, ok := lhs.(types.BoolLit); ok {
		if n, ok := rhs.(types.NominalInstance); ok && len(n.Args) == 0 && (n.Class == "bool" || n.Class == "int") {
			_ = b
			return true
		}
	}

	// Arm 21: str literals and LiteralString.
	if _, ok := lhs.(types.StrLit); ok {
		if _, ok := rhs.(types.LiteralString); ok {
			return true
		}
	}
	if _, ok := lhs.(types.LiteralString); ok {
		if _, ok := rhs.(types.LiteralString); ok {
			return true
		}
		return false
	}

	// Arm 22: enum literal is a subtype of a nominal instance of a
	// superclass of its enum class.
	if el, ok := lhs.(types.EnumLit); ok {
		if n, ok := rhs.(types.NominalInstance); ok {
			return e.Classes.IsSubclass(el.Class, n.Class)
		}
	}

	// Arm 23: same-variant pairs of distinct literal types are unrelated
	// (an IntLit is never a subtype of a different IntLit, etc).
	if sameVariantDistinctLiteral(lhs, rhs) {
		return false
	}

	// Arm 24: fallback.
	return e.fallback(lhs, rhs, q)
}

// fallback handles the handful of structurally-equal variant pairs not
// covered by a dedicated arm above (NominalInstance-to-NominalInstance
// nominal subtyping, an int/str/bytes literal against a non-generic
// NominalInstance of its class or a superclass, BoundMethod, etc) before
// giving up and returning false, per arm 24.
func (e *Engine) fallback(lhs, rhs types.T, q *query) bool {
	if b, ok := rhs.(types.NominalInstance); ok && len(b.Args) == 0 {
		switch lhs.(type) {
		case types.IntLit, types.StrLit, types.BytesLit:
			c, _ := classOf(lhs)
			return e.Classes.IsSubclass(c, b.Class)
		}
	}
	if a, ok := lhs.(types.NominalInstance); ok {
		if b, ok := rhs.(types.NominalInstance); ok {
			if !e.Classes.IsSubclass(a.Class, b.Class) {
				return false
			}
			return e.argsCompatible(a.Class, a.Args, b.Args, q)
		}
	}
	if a, ok := lhs.(types.NewTypeInstance); ok {
		if b, ok := rhs.(types.NewTypeInstance); ok && a.Name == b.Name {
			return true
		}
		return e.dispatch(a.Supertype, rhs, q)
	}
	if _, ok := lhs.(types.ModuleLit); ok {
		if b, ok := rhs.(types.ModuleLit); ok {
			return lhs.(types.ModuleLit).Module == b.Module
		}
	}
	if a, ok := lhs.(types.GenericAlias); ok {
		if b, ok := rhs.(types.GenericAlias); ok {
			return a.Class == b.Class && e.specializationEquivalent(a.Specialization, b.Specialization)
		}
	}
	if a, ok := lhs.(types.BoundMethod); ok {
		if b, ok := rhs.(types.BoundMethod); ok {
			return e.dispatch(a.Self, b.Self, q) && e.dispatch(a.Function, b.Function, q)
		}
	}
	if lhs.String() == rhs.String() {
		// Variants with no parametrization beyond their String() (most
		// KnownInstance/WrapperDescriptor/KnownBoundMethod kinds) are
		// equal iff their display strings match.
		return true
	}
	return false
}

// argsCompatible checks generic-argument compatibility pairwise and
// covariantly (each argument of a against the matching argument of b
// under the same relation); declared variance is not consulted. When
// one side has no arguments at all, the pair is treated as compatible;
// two non-empty argument lists of different lengths are not.
func (e *Engine) argsCompatible(class types.ClassID, aArgs, bArgs []types.T, q *query) bool {
	if len(aArgs) != len(bArgs) {
		return len(aArgs) == 0 || len(bArgs) == 0
	}
	for i := range aArgs {
		if !e.dispatch(aArgs[i], bArgs[i], q) {
			return false
		}
	}
	return true
}

func (e *Engine) specializationEquivalent(a, b []types.T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !e.IsEquivalentTo(a[i], b[i]) {
			return false
		}
	}
	return true
}

func (e *Engine) subclassInnerLE(a, b types.SubclassInner, q *query) bool {
	ac, aIsClass := a.(types.SubclassInnerClass)
	bc, bIsClass := b.(types.SubclassInnerClass)
	if aIsClass && bIsClass {
		return e.Classes.IsSubclass(ac.Class, bc.Class)
	}
	if _, bDyn := b.(types.SubclassInnerDynamic); bDyn {
		return q.kind == Assignability
	}
	return a.String() == b.String()
}

func (e *Engine) resolveAlias(a types.TypeAliasT) types.T {
	if a.Target != nil {
		return a.Target
	}
	if t, ok := e.Classes.ResolveAlias(a.Name); ok {
		return t
	}
	return types.Dynamic{Kind: types.DynUnknown}
}

// visitPair wraps a recursive descent with the cycle detector, keyed on
// the interned handles of the exact (lhs, rhs, kind) triple being
// re-entered. It wraps the TypeAlias (arm 5), intersection-on-the-right
// (arm 13) and protocol (arms 15, 16) descents; union and TypedDict
// operands are descended into without it.
func (e *Engine) visitPair(lhs, rhs types.T, q *query, thunk func() bool) bool {
	key := cycle.Key{Left: e.Store.Intern(lhs), Right: e.Store.Intern(rhs), Relation: q.kind.String()}
	initial := q.kind != Redundancy // optimistic true for subtyping/assignability, false for redundancy
	return cycle.Visit(q.detector, key, initial, thunk)
}

func (e *Engine) dispatchIntersectionRight(lhs types.T, it types.IntersectionT, q *query) bool {
	left := lhs
	if q.kind == Assignability {
		left = e.Store.BottomMaterialization(lhs)
	}
	for _, p := range it.Positive {
		if !e.dispatch(left, p, q) {
			return false
		}
	}
	for _, n := range it.Negative {
		negOperand := n
		if q.kind == Assignability {
			negOperand = e.Store.BottomMaterialization(n)
		}
		if !e.IsDisjointFrom(left, negOperand) {
			return false
		}
	}
	return true
}

func containsDynamicDeep(t types.T) bool {
	switch v := t.(type) {
	case types.Dynamic:
		return true
	case types.UnionT:
		for _, e := range v.Elements {
			if containsDynamicDeep(e) {
				return true
			}
		}
	case types.IntersectionT:
		for _, e := range append(append([]types.T{}, v.Positive...), v.Negative...) {
			if containsDynamicDeep(e) {
				return true
			}
		}
	case types.NominalInstance:
		for _, a := range v.Args {
			if containsDynamicDeep(a) {
				return true
			}
		}
	case types.ProtocolInstance:
		for _, a := range v.Args {
			if containsDynamicDeep(a) {
				return true
			}
		}
	case types.CallableT:
		if containsDynamicDeep(v.Signature.Return) {
			return true
		}
		for _, p := range v.Signature.Params {
			if containsDynamicDeep(p.Type) {
				return true
			}
		}
	}
	return false
}

// containsTypeVarPositive reports whether tv is among t's FreeTypeVars,
// the condition arms 7 and 8 fall back to for an unbounded,
// unconstrained typevar. FreeTypeVars also collects the negative members
// of an intersection, so a negated mention counts here as well.
func containsTypeVarPositive(t types.T, tv types.TypeVarID) bool {
	for _, v := range t.FreeTypeVars() {
		if v == tv {
			return true
		}
	}
	return false
}

func (e *Engine) dispatchTypeVarLeft(tv types.TypeVarT, rhs types.T, q *query) bool {
	b := tv.Bound
	if !b.Inferable && b.UpperBound != nil {
		return e.dispatch(b.UpperBound, rhs, q)
	}
	if len(b.Constraints) > 0 {
		for _, c := range b.Constraints {
			if !e.dispatch(c, rhs, q) {
				return false
			}
		}
		return true
	}
	if b.Inferable && q.kind == Assignability {
		switch q.mode {
		case ModeConstraintSet:
			q.cs = constraint.AndSimplify(q.cs, constraint.ConstrainTypeVar(b.ID, nil, rhs))
			return true
		case ModeAssuming:
			return constraint.Satisfiable(q.assuming, e.IsSubtypeOf)
		}
		return true
	}
	return containsTypeVarPositive(rhs, b.ID)
}

func (e *Engine) dispatchTypeVarRight(lhs types.T, tv types.TypeVarT, q *query) bool {
	b := tv.Bound
	if b.Inferable && q.kind == Assignability {
		upper := b.UpperBound
		if upper == nil {
			upper = types.NominalInstance{Class: "object"}
		}
		if e.dispatch(lhs, upper, q) {
			switch q.mode {
			case ModeConstraintSet:
				q.cs = constraint.AndSimplify(q.cs, constraint.ConstrainTypeVar(b.ID, lhs, nil))
			}
			return true
		}
		return false
	}
	if !b.Inferable && b.UpperBound != nil {
		return e.dispatch(lhs, b.UpperBound, q)
	}
	if len(b.Constraints) > 0 {
		for _, c := range b.Constraints {
			if e.dispatch(lhs, c, q) {
				return true
			}
		}
		return false
	}
	return containsTypeVarPositive(lhs, b.ID)
}
