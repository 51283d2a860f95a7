package store

import "github.com/tycore-project/tycore/internal/types"

// TopMaterialization returns the largest fully-static type such that any
// materialization of t is a subtype of it. For Dynamic, top is
// `object`. Pure and memoized per Store, keyed on t's Handle.
func (s *Store) TopMaterialization(t types.T) types.T {
	h := s.Intern(t)
	s.mu.Lock()
	if cached, ok := s.materializeTop[h]; ok {
		s.mu.Unlock()
		return cached
	}
	s.mu.Unlock()

	result := materializeBound(t, types.NominalInstance{Class: "object"}, func(x types.T) types.T { return s.TopMaterialization(x) })

	s.mu.Lock()
	s.materializeTop[h] = result
	s.mu.Unlock()
	return result
}

// BottomMaterialization returns the smallest fully-static type such that
// it is a subtype of any materialization of t. For Dynamic, bottom is
// Never.
func (s *Store) BottomMaterialization(t types.T) types.T {
	h := s.Intern(t)
	s.bottomMu.Lock()
	if cached, ok := s.materializeBottom[h]; ok {
		s.bottomMu.Unlock()
		return cached
	}
	s.bottomMu.Unlock()

	result := materializeBound(t, types.Never{}, func(x types.T) types.T { return s.BottomMaterialization(x) })

	s.bottomMu.Lock()
	s.materializeBottom[h] = result
	s.bottomMu.Unlock()
	return result
}

// materializeBound implements both directions: dynamicReplacement is
// `object` for top, `Never` for bottom; recurse is the matching
// recursive call (TopMaterialization or BottomMaterialization) so
// unions/intersections distribute correctly in either direction.
func materializeBound(t types.T, dynamicReplacement types.T, recurse func(types.T) types.T) types.T {
	switch v := t.(type) {
	case types.Dynamic:
		return dynamicReplacement
	case types.UnionT:
		elems := make([]types.T, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = recurse(e)
		}
		return UnionOf(elems, nil)
	case types.IntersectionT:
		pos := make([]types.T, len(v.Positive))
		for i, p := range v.Positive {
			pos[i] = recurse(p)
		}
		neg := make([]types.T, len(v.Negative))
		for i, n := range v.Negative {
			neg[i] = recurse(n)
		}
		return IntersectionOf(pos, neg, nil, nil)
	case types.NominalInstance:
		if len(v.Args) == 0 {
			return v
		}
		args := make([]types.T, len(v.Args))
		for i, a := range v.Args {
			args[i] = recurse(a)
		}
		return types.NominalInstance{Class: v.Class, Args: args}
	case types.SubclassOf:
		if d, ok := v.Inner.(types.SubclassInnerDynamic); ok {
			_ = d
			if _, isTop := dynamicReplacement.(types.NominalInstance); isTop {
				return types.SubclassOf{Inner: types.SubclassInnerClass{Class: "object"}}
			}
			return types.Never{}
		}
		return v
	default:
		return t
	}
}
