package narrow

import "github.com/tycore-project/tycore/internal/types"

// Map is the narrowing result: what each place's type becomes if the
// tested predicate evaluated truthy.
type Map map[types.PlaceID]types.T

func evaluateLeaf(p Predicate, polarity bool, ci ClassInfo) Map {
	switch v := p.(type) {
	case Truthiness:
		if polarity {
			return Map{v.Place: types.AlwaysTruthy{}}
		}
		return Map{v.Place: types.AlwaysFalsy{}}

	case IsComparison:
		neg := v.Negated
		if !polarity {
			neg = !neg
		}
		if !neg {
			return Map{v.Place: v.Target}
		}
		// `is not C` narrows to ~C: an IntersectionT with no positive
		// members and C as its sole negative member.
		return Map{v.Place: types.IntersectionT{Negative: []types.T{v.Target}}}

	case EqComparison:
		neg := v.Negated
		if !polarity {
			neg = !neg
		}
		if neg {
			// `!= v` narrows to ~v, same as negated `is`.
			return Map{v.Place: types.IntersectionT{Negative: []types.T{v.Target}}}
		}
		return Map{v.Place: eqNarrowTarget(v.Target)}

	case MembershipTest:
		neg := v.Negated
		if !polarity {
			neg = !neg
		}
		if neg {
			// `not in [a, b, c]` narrows to ~(a|b|c).
			return Map{v.Place: types.IntersectionT{Negative: []types.T{unionOfAlternatives(v.Alternatives)}}}
		}
		return Map{v.Place: unionOfAlternatives(v.Alternatives)}

	case IsInstanceTest:
		neg := v.Negated
		if !polarity {
			neg = !neg
		}
		alts := make([]types.T, 0, len(v.Classes))
		for _, c := range v.Classes {
			t, ok := ClassInfoOf(c, ci)
			if !ok {
				continue
			}
			if v.IsSubclass {
				t = types.SubclassOf{Inner: types.SubclassInnerClass{Class: c}}
			}
			alts = append(alts, t)
		}
		if len(alts) == 0 {
			return Map{}
		}
		if neg {
			// `not isinstance(x, (A, B))` narrows to ~(A|B).
			return Map{v.Place: types.IntersectionT{Negative: []types.T{unionOfAlternatives(alts)}}}
		}
		return Map{v.Place: unionOfAlternatives(alts)}

	case HasAttrTest:
		neg := v.Negated
		if !polarity {
			neg = !neg
		}
		if neg {
			return Map{}
		}
		// hasattr narrows to a synthetic single-member protocol in a full
		// implementation; lacking a registry handle here, this leaves the
		// place unconstrained rather than fabricate an ad hoc protocol
		// class id, per the same "no constraint" discipline as above.
		return Map{}

	case TypeIsCall:
		neg := v.Negated
		if !polarity {
			neg = !neg
		}
		if neg {
			return Map{}
		}
		return Map{v.Place: types.NominalInstance{Class: v.Class}}

	case GuardCall:
		neg := v.Negated
		if !polarity {
			neg = !neg
		}
		if neg {
			return Map{}
		}
		switch g := v.ReturnType.(type) {
		case types.TypeGuardT:
			return Map{placeFromInfo(g.Place): g.ReturnType}
		case types.TypeIsT:
			return Map{placeFromInfo(g.Place): g.ReturnType}
		}
		return Map{}

	case MatchPattern:
		if v.Literal != nil {
			return Map{v.Place: v.Literal}
		}
		if v.Class != "" {
			t, ok := ClassInfoOf(v.Class, ci)
			if ok {
				return Map{v.Place: t}
			}
		}
		return Map{}

	default:
		return Map{}
	}
}

// eqNarrowTarget returns the type an `==` comparison against target
// narrows to. bool is an int subclass in Python where True == 1 and
// False == 0, so comparing against IntLit(0)/IntLit(1) also admits the
// equivalent bool literal and vice versa; anything else narrows to the
// literal type itself.
func eqNarrowTarget(target types.T) types.T {
	switch t := target.(type) {
	case types.BoolLit:
		if t.Value {
			return types.UnionT{Elements: []types.T{t, types.IntLit{Value: 1}}}
		}
		return types.UnionT{Elements: []types.T{t, types.IntLit{Value: 0}}}
	case types.IntLit:
		switch t.Value {
		case 0:
			return types.UnionT{Elements: []types.T{t, types.BoolLit{Value: false}}}
		case 1:
			return types.UnionT{Elements: []types.T{t, types.BoolLit{Value: true}}}
		}
		return t
	default:
		return target
	}
}

func unionOfAlternatives(alts []types.T) types.T {
	if len(alts) == 1 {
		return alts[0]
	}
	return types.UnionT{Elements: alts}
}

// placeFromInfo is a stopgap: TypeGuardT/TypeIsT only carry a
// PlaceInfo (a parameter index), not a full PlaceID, because the type
// model (internal/types) doesn't know about call-site argument
// expressions. The narrowing builder resolves PlaceInfo to the actual
// PlaceID of the call's argument expression before reaching here in a
// full implementation; this placeholder keys on the param index alone
// so GuardCall narrowing is at least internally consistent within one
// predicate tree.
func placeFromInfo(info types.PlaceInfo) types.PlaceID {
	return types.PlaceID{Path: placeholderPath(info.ParamIndex)}
}

func placeholderPath(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	if i < 0 || i >= len(letters) {
		return "$arg"
	}
	return "$arg_" + string(letters[i])
}
