package narrow

import "github.com/tycore-project/tycore/internal/types"

// Conjunction and Disjunction are the DNF intermediate form: a predicate
// tree is first rewritten into an OR of ANDs of leaves before the
// per-place maps are merged, so that OR-concatenation's object-widening
// rule only ever has to consider two Maps at a time rather than
// re-deriving widening for deeply nested trees.
type Conjunction []Predicate
type Disjunction []Conjunction

// ToDNF rewrites p (under the given polarity) into a Disjunction of
// Conjunctions, applying De Morgan's laws through Not and distributing
// And over Or: AND distributes, OR concatenates.
func ToDNF(p Predicate, polarity bool) Disjunction {
	switch v := p.(type) {
	case Not:
		return ToDNF(v.Inner, !polarity)
	case And:
		left := ToDNF(v.Left, polarity)
		right := ToDNF(v.Right, polarity)
		if !polarity {
			// De Morgan: not(A and B) = (not A) or (not B); the two
			// DNFs concatenate rather than distribute.
			return append(append(Disjunction{}, left...), right...)
		}
		return distribute(left, right)
	case Or:
		left := ToDNF(v.Left, polarity)
		right := ToDNF(v.Right, polarity)
		if !polarity {
			return distribute(left, right)
		}
		return append(append(Disjunction{}, left...), right...)
	default:
		return Disjunction{Conjunction{leafWithPolarity(p, polarity)}}
	}
}

// leafWithPolarity pushes a Not wrapper down to a leaf when De Morgan
// recursion bottoms out on a plain leaf predicate under negative
// polarity, so evaluateLeaf always sees the predicate's own polarity
// flag rather than a surrounding Not it would otherwise have to unwrap.
func leafWithPolarity(p Predicate, polarity bool) Predicate {
	if polarity {
		return p
	}
	return Not{Inner: p}
}

func distribute(a, b Disjunction) Disjunction {
	out := make(Disjunction, 0, len(a)*len(b))
	for _, ca := range a {
		for _, cb := range b {
			out = append(out, append(append(Conjunction{}, ca...), cb...))
		}
	}
	return out
}

// Build is the narrowing builder's entry point: predicate + class
// environment in, a place -> T narrowing map out.
func Build(p Predicate, ci ClassInfo) Map {
	dnf := ToDNF(p, true)
	var result Map
	for i, conj := range dnf {
		m := evaluateConjunction(conj, ci)
		if i == 0 {
			result = m
			continue
		}
		result = unionMaps(result, m)
	}
	if result == nil {
		result = Map{}
	}
	return result
}

func evaluateConjunction(conj Conjunction, ci ClassInfo) Map {
	result := Map{}
	for _, leaf := range conj {
		sawGuard := false
		polarity := true
		actual := leaf
		if n, ok := leaf.(Not); ok {
			polarity = false
			actual = n.Inner
		}
		m := evaluateLeaf(actual, polarity, ci)
		if g, isGuard := actual.(GuardCall); isGuard {
			if _, isTypeGuard := g.ReturnType.(types.TypeGuardT); isTypeGuard {
				// TypeGuard clobbers any earlier constraint on the same
				// place when both appear in one AND chain; TypeIs instead
				// intersects normally below, since it guarantees the
				// narrowed type rather than merely asserting it.
				sawGuard = true
			}
		}
		result = intersectMaps(result, m, sawGuard)
	}
	return result
}

// intersectMaps combines two single-conjunct narrowing maps under AND:
// a place named by only one side keeps that side's constraint (the
// other conjunct doesn't mention it, so it imposes nothing); a place
// named by both intersects their types, except clobber forces b's value
// to win outright (the TypeGuard-clobbers-TypeIs rule).
func intersectMaps(a, b Map, clobber bool) Map {
	out := make(Map, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		if existing, ok := out[k]; ok && !clobber {
			out[k] = types.IntersectionT{Positive: []types.T{existing, v}}
		} else {
			out[k] = v
		}
	}
	return out
}

// unionMaps combines two maps under OR: a place narrowed by both
// branches unions their types; a place narrowed by only one branch is
// widened to `object` — object-widening on absent branches, since the
// predicate being true doesn't tell you anything about that place when
// only one of the two disjuncts constrains it.
func unionMaps(a, b Map) Map {
	out := make(Map, len(a)+len(b))
	for k, v := range a {
		if bv, ok := b[k]; ok {
			out[k] = types.UnionT{Elements: []types.T{v, bv}}
		} else {
			out[k] = types.NominalInstance{Class: "object"}
		}
	}
	for k, v := range b {
		if _, ok := a[k]; !ok {
			_ = v
			out[k] = types.NominalInstance{Class: "object"}
		}
	}
	return out
}
