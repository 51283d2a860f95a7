package relation

import (
	"github.com/tycore-project/tycore/internal/classenv"
	"github.com/tycore-project/tycore/internal/types"
)

// protocolSatisfies implements arm 15: p satisfies q iff every member of
// q has a same-named member on p whose type relates correctly given its
// declared variance.
func (e *Engine) protocolSatisfies(p, q types.ClassID, query *query) bool {
	for _, name := range e.Classes.MemberNames(q) {
		qm, _ := e.Classes.Member(q, name)
		pm, ok := e.Classes.Member(p, name)
		if !ok {
			return false
		}
		if !e.memberCompatible(pm, qm, query) {
			return false
		}
	}
	return true
}

// structuralSatisfies implements arm 16: lhs (any type, not necessarily
// a ProtocolInstance) satisfies protocol q iff attribute lookup on lhs
// resolves every one of q's members compatibly. classOf extracts the
// nominal class to look attributes up on, when lhs has one; types with
// no class identity (Dynamic is handled earlier, Union/Intersection are
// handled by their own arms before reaching here) fail structural
// satisfaction outright.
func (e *Engine) structuralSatisfies(lhs types.T, q types.ClassID, query *query) bool {
	class, ok := classOf(lhs)
	if !ok {
		return false
	}
	for _, name := range e.Classes.MemberNames(q) {
		qm, _ := e.Classes.Member(q, name)
		lm, found := e.Classes.Member(class, name)
		if !found {
			return false
		}
		if !e.memberCompatible(lm, qm, query) {
			return false
		}
	}
	return true
}

func (e *Engine) memberCompatible(have, want classenv.Member, query *query) bool {
	if want.ReadOnly {
		// Read-only (covariant) requirement: have's type must be a
		// subtype of want's type.
		return e.dispatch(have.Type, want.Type, query)
	}
	switch want.Variance {
	case types.VarianceCovariant:
		return e.dispatch(have.Type, want.Type, query)
	case types.VarianceContravariant:
		return e.dispatch(want.Type, have.Type, query)
	default: // invariant: settable members must match exactly
		return e.IsEquivalentTo(have.Type, want.Type)
	}
}

// classOf extracts the nominal class identity of t, when it has one, for
// attribute lookup in structuralSatisfies.
func classOf(t types.T) (types.ClassID, bool) {
	switch v := t.(type) {
	case types.NominalInstance:
		return v.Class, true
	case types.ProtocolInstance:
		return v.Protocol, true
	case types.EnumLit:
		return v.Class, true
	case types.BoolLit:
		return "bool", true
	case types.IntLit:
		return "int", true
	case types.StrLit, types.LiteralString:
		return "str", true
	case types.BytesLit:
		return "bytes", true
	default:
		return "", false
	}
}
