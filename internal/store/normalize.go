package store

import "github.com/tycore-project/tycore/internal/types"

// UnionOf builds a normalized union: flattens nested unions, drops
// Never, deduplicates via redundant (the relation engine's redundancy
// check), and returns Never for empty input or the lone element for a
// single-element result. A flatten/dedupe/sort pipeline, generalized to
// consult a real relation instead of string-equality deduplication.
func UnionOf(elements []types.T, redundant RedundancyChecker) types.T {
	flat := make([]types.T, 0, len(elements))
	for _, e := range elements {
		if u, ok := e.(types.UnionT); ok {
			flat = append(flat, u.Elements...)
		} else {
			flat = append(flat, e)
		}
	}

	kept := make([]types.T, 0, len(flat))
	for _, e := range flat {
		if _, isNever := e.(types.Never); isNever {
			continue
		}
		redundantWithKept := false
		for i, k := range kept {
			if redundant != nil && redundant.IsRedundant(e, k) {
				redundantWithKept = true
				break
			}
			if redundant != nil && redundant.IsRedundant(k, e) {
				// k is subsumed by e: replace k with e.
				kept[i] = e
				redundantWithKept = true
				break
			}
		}
		if !redundantWithKept {
			kept = append(kept, e)
		}
	}

	if len(kept) == 0 {
		return types.Never{}
	}
	if len(kept) == 1 {
		return kept[0]
	}
	sortByRank(kept)
	return types.UnionT{Elements: kept}
}

// IntersectionOf builds a normalized intersection: distributes over any
// positive union member (no positive element is ever a Union at rest),
// drops `object` from positive, removes positives subsumed by another
// positive, and promotes to Never when a positive is disjoint from
// another positive or is a subtype of a negative member. disjoint and
// subtype are callbacks so store need not import internal/relation.
func IntersectionOf(positive, negative []types.T, disjoint func(a, b types.T) bool, subtype func(a, b types.T) bool) types.T {
	// Distribute over unions in positive: (A|B) & C = (A&C) | (B&C).
	for i, p := range positive {
		if u, ok := p.(types.UnionT); ok {
			rest := append(append([]types.T{}, positive[:i]...), positive[i+1:]...)
			branches := make([]types.T, len(u.Elements))
			for j, e := range u.Elements {
				branchPos := append(append([]types.T{}, rest...), e)
				branches[j] = IntersectionOf(branchPos, negative, disjoint, subtype)
			}
			return UnionOf(branches, nil)
		}
	}

	pos := make([]types.T, 0, len(positive))
	for _, p := range positive {
		if isObjectInstance(p) {
			continue
		}
		pos = append(pos, p)
	}

	for i := 0; i < len(pos); i++ {
		for j := 0; j < len(pos); j++ {
			if i == j {
				continue
			}
			if disjoint != nil && disjoint(pos[i], pos[j]) {
				return types.Never{}
			}
		}
	}

	for _, p := range pos {
		for _, n := range negative {
			if subtype != nil && subtype(p, n) {
				return types.Never{}
			}
		}
	}

	// Remove positives subsumed by a narrower positive (q strictly a
	// subtype of p means p is redundant: intersecting with q already
	// implies p, so drop the wider p and keep q).
	kept := make([]types.T, 0, len(pos))
	for i, p := range pos {
		subsumed := false
		for j, q := range pos {
			if i == j {
				continue
			}
			if subtype != nil && subtype(q, p) && !subtype(p, q) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			kept = append(kept, p)
		}
	}
	pos = dedupeByEquality(kept)

	if len(pos) == 0 && len(negative) == 0 {
		return types.NominalInstance{Class: "object"}
	}
	if len(pos) == 1 && len(negative) == 0 {
		return pos[0]
	}
	sortByRank(pos)
	neg := append([]types.T{}, negative...)
	sortByRank(neg)
	return types.IntersectionT{Positive: pos, Negative: neg}
}

func dedupeByEquality(ts []types.T) []types.T {
	out := make([]types.T, 0, len(ts))
	for _, t := range ts {
		dup := false
		for _, o := range out {
			if t.String() == o.String() {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, t)
		}
	}
	return out
}

func isObjectInstance(t types.T) bool {
	n, ok := t.(types.NominalInstance)
	return ok && n.Class == "object" && len(n.Args) == 0
}

// SubclassOfClass builds type[c], simplifying when c is final: in that
// case type[c] only has one inhabitant (c's metaclass instance when the
// metaclass is exactly `type`, otherwise the class object itself).
func SubclassOfClass(c types.ClassID, info ClassInfo) types.T {
	if info != nil && info.IsFinal(c) {
		meta := info.Metaclass(c)
		if meta == "type" || meta == "" {
			return types.NominalInstance{Class: metaOrType(meta)}
		}
		return types.GenericAlias{Class: c}
	}
	return types.SubclassOf{Inner: types.SubclassInnerClass{Class: c}}
}

func metaOrType(meta types.ClassID) types.ClassID {
	if meta == "" {
		return "type"
	}
	return meta
}
