// Package store is the content-addressed interning store: idempotent
// Intern/Resolve, per-variant smart constructors that enforce the type
// model's invariants, normalization, and materialization. A flatten/
// dedupe/sort pipeline is the general normalization path for every
// set-constructor variant, and a mutex-guarded map is the concurrency
// discipline for the handle table, with golang.org/x/sync/singleflight
// added so two goroutines racing to intern the same shape block on one
// insert instead of double-allocating.
package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/tycore-project/tycore/internal/diag"
	"github.com/tycore-project/tycore/internal/types"
)

// Handle is the small, non-owning address a type is addressed by: types
// are shared immutable values, and the store exclusively owns the
// backing data.
type Handle uint64

// ClassInfo is the subset of internal/classenv.Registry the store's
// smart constructors need (for the SubclassOf-of-a-final-class
// simplification) without importing classenv — the same kind of seam
// an alias resolver needs for alias expansion.
type ClassInfo interface {
	IsFinal(types.ClassID) bool
	Metaclass(types.ClassID) types.ClassID
}

// RedundancyChecker lets the union/intersection smart constructors
// consult the relation engine's redundancy relation ("T1 ⊑ T2") without
// internal/store importing internal/relation, which would be circular
// (relation imports store for materialization). internal/session wires
// a real relation.Engine in after constructing both.
type RedundancyChecker interface {
	IsRedundant(a, b types.T) bool
}

// Store is one analysis session's interning table. Safe for concurrent
// use: readers take an RLock, Intern takes a Lock but only while
// inserting a genuinely new shape (a singleflight.Group dedupes
// concurrent inserts of the same shape so only one goroutine performs
// the insert).
type Store struct {
	mu      sync.RWMutex
	byKey   map[string]Handle
	byHandle map[Handle]types.T
	next    Handle
	group   singleflight.Group

	materializeTop    map[Handle]types.T
	bottomMu          sync.Mutex
	materializeBottom map[Handle]types.T
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		byKey:             make(map[string]Handle),
		byHandle:          make(map[Handle]types.T),
		materializeTop:    make(map[Handle]types.T),
		materializeBottom: make(map[Handle]types.T),
	}
}

// Intern idempotently inserts shape, returning the same Handle for any
// structurally-equal shape inserted before or since.
func (s *Store) Intern(shape types.T) Handle {
	key := canonicalKey(shape)

	s.mu.RLock()
	if h, ok := s.byKey[key]; ok {
		s.mu.RUnlock()
		return h
	}
	s.mu.RUnlock()

	h, _, _ := s.group.Do(key, func() (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if h, ok := s.byKey[key]; ok {
			return h, nil
		}
		s.next++
		h := s.next
		s.byKey[key] = h
		s.byHandle[h] = shape
		return h, nil
	})
	return h.(Handle)
}

// Resolve returns the shape addressed by h. A Handle not produced by
// this Store (a stale handle from a different session, or garbage) is a
// programmer error: invalid inputs to resolve are never silently
// tolerated.
func (s *Store) Resolve(h Handle) types.T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.byHandle[h]
	if !ok {
		panic(&diag.InvariantViolation{Component: "store.Resolve", Detail: fmt.Sprintf("stale handle %d", h)})
	}
	return t
}

// Equal reports whether a and b intern to the same handle, i.e. have the
// same canonical key. Equal applies no normalization itself: union and
// intersection members are keyed in the order given, so two unions built
// through UnionOf from different element orders intern identically (the
// smart constructor sorts them), while two raw UnionT values listing the
// same members in different orders do not.
func (s *Store) Equal(a, b types.T) bool {
	return s.Intern(a) == s.Intern(b)
}

// canonicalKey produces a deterministic string encoding of shape's full
// structure, used as the hash-consing key. It is a plain recursive
// printer, not shape's own String() (which is meant for humans) —
// keeping the two separate means changing display formatting can never
// silently change interning identity.
func canonicalKey(t types.T) string {
	var b strings.Builder
	writeKey(&b, t)
	return b.String()
}

func writeKey(b *strings.Builder, t types.T) {
	if t == nil {
		b.WriteString("<nil>")
		return
	}
	fmt.Fprintf(b, "%d:", types.Rank(t))
	switch v := t.(type) {
	case types.UnionT:
		b.WriteString("U(")
		for _, e := range v.Elements {
			writeKey(b, e)
			b.WriteString(",")
		}
		b.WriteString(")")
	case types.IntersectionT:
		b.WriteString("I(+")
		for _, e := range v.Positive {
			writeKey(b, e)
			b.WriteString(",")
		}
		b.WriteString(";-")
		for _, e := range v.Negative {
			writeKey(b, e)
			b.WriteString(",")
		}
		b.WriteString(")")
	case types.TypedDictT:
		b.WriteString(v.Name)
		b.WriteString("{")
		for _, k := range v.SortedKeys() {
			f := v.Fields[k]
			b.WriteString(k)
			b.WriteString("=")
			writeKey(b, f.Type)
			fmt.Fprintf(b, ":%v:%v,", f.Required, f.ReadOnly)
		}
		b.WriteString("}")
	default:
		b.WriteString(t.String())
	}
}

// sortByRank sorts ts by the canonical (rank, String()) order DESIGN.md
// Open Question #1 settles on: variant rank first, display string as
// tiebreaker. Used by the UnionOf/IntersectionOf smart constructors.
func sortByRank(ts []types.T) {
	sort.Slice(ts, func(i, j int) bool {
		ri, rj := types.Rank(ts[i]), types.Rank(ts[j])
		if ri != rj {
			return ri < rj
		}
		return ts[i].String() < ts[j].String()
	})
}
