// Package session ties the type model, interning store, class
// environment, and relation engine together into one handle: a store, a
// shared memoization table, and a cancellation context, created fresh
// per analysis run — the same top-level construction-site shape an
// interpreter's environment gets wired up once per run.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/tycore-project/tycore/internal/classenv"
	"github.com/tycore-project/tycore/internal/config"
	"github.com/tycore-project/tycore/internal/relation"
	"github.com/tycore-project/tycore/internal/store"
	"github.com/tycore-project/tycore/internal/types"
)

// memoKey identifies one memoized relation query, matching the shape
// cycle.Key uses internally but scoped to the whole session rather than
// one query's stack.
type memoKey struct {
	kind store.Handle
	lhs  store.Handle
	rhs  store.Handle
}

// Session bundles everything one analysis run needs: the interning
// store, the class/protocol registry, the relation engine wired to
// both, a cross-call memo table, and a cancellation context.
type Session struct {
	ID      uuid.UUID
	Store   *store.Store
	Classes *classenv.Registry
	Engine  *relation.Engine

	ctx    context.Context
	cancel context.CancelFunc

	memo sync.Map // memoKey -> relation.Result
}

// New creates a Session backed by a fresh Store and Registry, wired
// together through relation.Engine, with ctx as the cancellation parent
// (queries should check ctx.Err() at recursion boundaries; internal/
// relation doesn't do this itself since it has no dependency on
// context, so session-level callers are expected to wrap long-running
// batch queries with their own ctx checks between calls).
func New(ctx context.Context) *Session {
	st := store.New()
	classes := classenv.New()
	engine := relation.New(st, classes, config.MaxCycleIterations)

	runCtx, cancel := context.WithCancel(ctx)
	return &Session{
		ID:      uuid.New(),
		Store:   st,
		Classes: classes,
		Engine:  engine,
		ctx:     runCtx,
		cancel:  cancel,
	}
}

// NewForTest is New(context.Background()) under a fixed, recognizable ID
// so failing test output names a specific session instead of a random
// UUID, giving each test a fresh, identifiable session.
func NewForTest() *Session {
	s := New(context.Background())
	s.ID = uuid.Nil
	return s
}

// Context returns the session's cancellation context.
func (s *Session) Context() context.Context { return s.ctx }

// Cancel aborts the session's context; in-flight relation queries that
// poll Context().Err() between recursive descents will unwind.
func (s *Session) Cancel() { s.cancel() }

// MemoizedRelation looks up a cached relation.Result for (kind, lhs,
// rhs), computing and storing it via compute if absent. The memo table
// is shared and safe for concurrent readers: single writer, many
// readers per query — concurrent identical queries may race to compute,
// but sync.Map.LoadOrStore makes the race benign: the loser's result is
// discarded, not corrupting state.
func (s *Session) MemoizedRelation(kind relation.Kind, lhs, rhs store.Handle, compute func() relation.Result) relation.Result {
	key := memoKey{kind: store.Handle(kind), lhs: lhs, rhs: rhs}
	if v, ok := s.memo.Load(key); ok {
		return v.(relation.Result)
	}
	result := compute()
	actual, _ := s.memo.LoadOrStore(key, result)
	return actual.(relation.Result)
}

// UnionOf builds a normalized union of elements through this session's
// live relation.Engine, so store.UnionOf's redundancy-based deduplication
// actually runs against real subtype/assignability queries instead of
// only the nil callback unit tests exercise.
func (s *Session) UnionOf(elements []types.T) types.T {
	return store.UnionOf(elements, s.Engine)
}

// IntersectionOf builds a normalized intersection of positive and
// negative members through this session's live relation.Engine, wiring
// store.IntersectionOf's disjointness-promotes-to-Never and
// subtype-subsumption passes to real queries.
func (s *Session) IntersectionOf(positive, negative []types.T) types.T {
	return store.IntersectionOf(positive, negative, s.Engine.IsDisjointFrom, s.Engine.IsSubtypeOf)
}

// SubclassOfClass builds type[c] through this session's class registry,
// so the @final simplification in store.SubclassOfClass sees real class
// definitions instead of running only under test doubles.
func (s *Session) SubclassOfClass(c types.ClassID) types.T {
	return store.SubclassOfClass(c, s.Classes)
}

// String identifies the session for log correlation.
func (s *Session) String() string {
	return fmt.Sprintf("session %s", s.ID)
}
