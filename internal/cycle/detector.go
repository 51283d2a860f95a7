// Package cycle implements a per-query cycle-detection discipline: a
// stack of (operands, relation) keys with a relation-specific
// optimistic initial value, giving coinductive semantics for
// self-referential types (`class Node: child: Node | None` checks
// against `Node` without infinite descent).
//
// This is one reusable component with an explicit, relation-specific
// "what do we assume while descending" value, rather than ad hoc cycle
// guards scattered through every recursive-descent call site.
package cycle

import "fmt"

// Key identifies one (operands, relation) pair on the stack. Callers
// supply Left/Right/Relation as opaque comparable values — typically a
// store.Handle pair and a relation.Kind — so this package has no
// dependency on internal/types or internal/relation.
type Key struct {
	Left     any
	Right    any
	Relation string
}

func (k Key) String() string {
	return fmt.Sprintf("%v %s %v", k.Left, k.Relation, k.Right)
}

// Detector is a single query's cycle-detection stack. It is not safe for
// concurrent use: one Detector per query thread is required so
// concurrent queries never pollute each other's fixed points. Create a
// fresh Detector per top-level relation/equivalence/disjointness call
// (internal/relation.Engine does this itself in each of its entry
// points).
type Detector struct {
	stack []Key
	// iterations counts re-entries into the *same* key across the whole
	// query, used to enforce a small fixed bound on fixed-point
	// iteration, after which the provisional value is committed.
	iterations map[Key]int
	maxIter    int
}

// New creates a Detector bounding fixed-point iteration at maxIter
// re-entries per key (use config.MaxCycleIterations).
func New(maxIter int) *Detector {
	if maxIter <= 0 {
		maxIter = 1
	}
	return &Detector{iterations: make(map[Key]int), maxIter: maxIter}
}

// Visit runs thunk with key pushed onto the stack. If key is already on
// the stack — a recursive descent back into the same (operands,
// relation) pair — it returns initial without calling thunk, giving
// coinductive "assume it holds" (or "assume it fails," for
// disjointness) semantics. Past maxIter re-entries into the same key,
// Visit also short-circuits to initial rather than letting a buggy
// non-converging relation spin forever.
func Visit[R any](d *Detector, key Key, initial R, thunk func() R) R {
	for _, k := range d.stack {
		if k == key {
			return initial
		}
	}
	if d.iterations[key] >= d.maxIter {
		return initial
	}
	d.iterations[key]++
	d.stack = append(d.stack, key)
	result := thunk()
	d.stack = d.stack[:len(d.stack)-1]
	return result
}

// Depth reports how many keys are currently on the stack, mostly useful
// for tests asserting a query didn't spuriously recurse.
func (d *Detector) Depth() int { return len(d.stack) }
