package narrow

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tycore-project/tycore/internal/types"
)

// dnfPredicates is the fixed corpus of predicate trees the narrowing
// properties below are checked over: enough nesting of And/Or/Not to
// exercise distribution, concatenation, and De Morgan together.
func dnfPredicates() []Predicate {
	a := Truthiness{Place: placeX()}
	b := IsInstanceTest{Place: placeX(), Classes: []types.ClassID{"int"}}
	c := IsInstanceTest{Place: placeX(), Classes: []types.ClassID{"str"}}
	return []Predicate{
		a,
		Not{Inner: a},
		And{Left: a, Right: b},
		Or{Left: a, Right: b},
		Not{Inner: And{Left: a, Right: b}},
		Not{Inner: Or{Left: a, Right: b}},
		And{Left: a, Right: Or{Left: b, Right: c}},
		Or{Left: And{Left: a, Right: b}, Right: c},
	}
}

// countLeaves counts how many leaf predicates a DNF form holds in
// total, used below to check De Morgan's law doesn't drop or duplicate
// leaves when flipping polarity.
func countLeaves(d Disjunction) int {
	n := 0
	for _, conj := range d {
		n += len(conj)
	}
	return n
}

// TestToDNFIsIdempotent: re-deriving the DNF of
// an already-flattened predicate (one conjunction, built back up as a
// chain of Ands) yields the same number of disjuncts/conjuncts as
// deriving it from the original tree; DNF construction has no hidden
// state that a second pass would perturb.
func TestToDNFIsIdempotent(t *testing.T) {
	for _, p := range dnfPredicates() {
		first := ToDNF(p, true)
		// Rebuild each conjunct as a left-nested chain of Ands and take
		// the DNF of the Or of those chains: this must reproduce the
		// same conjunct count, since every conjunct is already a flat
		// AND of leaves with no further distribution possible.
		var rebuilt Predicate
		for _, conj := range first {
			var chain Predicate = conj[0]
			for _, leaf := range conj[1:] {
				chain = And{Left: chain, Right: leaf}
			}
			if rebuilt == nil {
				rebuilt = chain
			} else {
				rebuilt = Or{Left: rebuilt, Right: chain}
			}
		}
		second := ToDNF(rebuilt, true)
		assert.Equal(t, len(first), len(second), "predicate %#v: idempotence broke disjunct count", p)
		assert.Equal(t, countLeaves(first), countLeaves(second), "predicate %#v: idempotence broke leaf count", p)
	}
}

// distinctLeaves returns the set of distinct leaf predicates a DNF form
// mentions, with any Not wrapper stripped so both polarities of a leaf
// count as the same leaf.
func distinctLeaves(d Disjunction) map[string]bool {
	out := map[string]bool{}
	for _, conj := range d {
		for _, leaf := range conj {
			if n, ok := leaf.(Not); ok {
				leaf = n.Inner
			}
			out[fmt.Sprintf("%#v", leaf)] = true
		}
	}
	return out
}

// TestToDNFDeMorganPreservesLeafCount: negating a predicate never drops
// a leaf or introduces a new one; De Morgan only ever flips polarity and
// swaps AND/OR structure. Distribution may repeat a leaf across
// conjunctions (a&(b|c) has four leaf occurrences, its negation three),
// so the count compared is that of distinct leaves.
func TestToDNFDeMorganPreservesLeafCount(t *testing.T) {
	for _, p := range dnfPredicates() {
		positive := distinctLeaves(ToDNF(p, true))
		negative := distinctLeaves(ToDNF(p, false))
		assert.Equal(t, len(positive), len(negative),
			"predicate %#v: De Morgan changed leaf count between polarities", p)
		assert.Equal(t, positive, negative,
			"predicate %#v: De Morgan changed the set of leaves between polarities", p)
	}
}

// TestBuildIsDeterministic: building the same predicate twice against
// the same ClassInfo produces the same narrowing map both times — Build
// has no hidden iteration-order dependence that would make two
// equivalent calls disagree.
func TestBuildIsDeterministic(t *testing.T) {
	ci := fakeClassInfo{}
	for _, p := range dnfPredicates() {
		first := Build(p, ci)
		second := Build(p, ci)
		assert.Equal(t, first, second, "predicate %#v: Build is not deterministic", p)
	}
}
