// Package classenv is the class/protocol/enum registry that backs the
// relation engine's structural and nominal dispatch arms and the
// narrowing builder's isinstance/hasattr leaves: the members, bases, and
// metaclass of every class, plus protocol satisfaction lookups in place
// of a symbol table's lexically-scoped trait-instance registration.
package classenv

import (
	"sort"
	"sync"

	"github.com/tycore-project/tycore/internal/types"
)

// Member is one attribute or method of a class or protocol, carrying the
// variance the relation engine's structural-satisfaction arms (15, 16)
// need to check covariant/contravariant/invariant compatibility.
type Member struct {
	Name     string
	Type     types.T
	Variance types.Variance
	ReadOnly bool
}

// ClassDef is everything the core needs to know about one class: its
// bases (for nominal subtyping and MRO-based member lookup), whether
// it's a protocol (structural) or final (a final class's SubclassOf
// simplifies to NominalInstance(type) when its metaclass is `type`, and
// to a GenericAlias of the class otherwise), its metaclass, and
// — for enums — its member names.
type ClassDef struct {
	ID         types.ClassID
	Bases      []types.ClassID
	IsProtocol bool
	IsFinal    bool
	Metaclass  types.ClassID // "" means the implicit default, `type`
	Members    map[string]Member
	EnumMembers []string // non-empty only for enum classes
}

// Registry is the concurrency-safe store of ClassDefs and type aliases
// for one analysis session. Like internal/store.Store, a single RWMutex
// guards a flat map — there is no per-class locking because registration happens
// once up front (during module loading, out of scope here) and queries
// dominate.
type Registry struct {
	mu      sync.RWMutex
	classes map[types.ClassID]*ClassDef
	aliases map[string]types.T
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		classes: make(map[types.ClassID]*ClassDef),
		aliases: make(map[string]types.T),
	}
}

// Register adds or replaces a class definition.
func (r *Registry) Register(def *ClassDef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes[def.ID] = def
}

// RegisterAlias records a type alias's target, resolvable later through
// ResolveAlias (implementing types.AliasResolver).
func (r *Registry) RegisterAlias(name string, target types.T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[name] = target
}

// ResolveAlias implements types.AliasResolver.
func (r *Registry) ResolveAlias(name string) (types.T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.aliases[name]
	return t, ok
}

// Lookup returns the ClassDef for id, if registered.
func (r *Registry) Lookup(id types.ClassID) (*ClassDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.classes[id]
	return d, ok
}

// IsSubclass reports whether a is b or transitively derives from b via
// Bases. Unregistered classes are assumed unrelated except to
// themselves, matching the relation engine's fallback-to-false default.
func (r *Registry) IsSubclass(a, b types.ClassID) bool {
	if a == b {
		return true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isSubclassLocked(a, b, make(map[types.ClassID]bool))
}

func (r *Registry) isSubclassLocked(a, b types.ClassID, seen map[types.ClassID]bool) bool {
	if a == b {
		return true
	}
	if seen[a] {
		return false
	}
	seen[a] = true
	def, ok := r.classes[a]
	if !ok {
		return false
	}
	for _, base := range def.Bases {
		if r.isSubclassLocked(base, b, seen) {
			return true
		}
	}
	return false
}

// Member walks a's MRO (depth-first over Bases, a simplification of C3
// linearization adequate for the relation engine's needs: it only ever
// asks "does some member with this name exist and what's its declared
// type," not "which exact override wins at runtime") and returns the
// first member named name.
func (r *Registry) Member(a types.ClassID, name string) (Member, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.memberLocked(a, name, make(map[types.ClassID]bool))
}

func (r *Registry) memberLocked(a types.ClassID, name string, seen map[types.ClassID]bool) (Member, bool) {
	if seen[a] {
		return Member{}, false
	}
	seen[a] = true
	def, ok := r.classes[a]
	if !ok {
		return Member{}, false
	}
	if m, ok := def.Members[name]; ok {
		return m, true
	}
	for _, base := range def.Bases {
		if m, ok := r.memberLocked(base, name, seen); ok {
			return m, true
		}
	}
	return Member{}, false
}

// MemberCount returns the number of directly-declared members of a
// protocol/class, used by relation-engine arm 2 ("ProtocolInstance
// structurally equivalent to object" iff it has no members).
func (r *Registry) MemberCount(a types.ClassID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.classes[a]
	if !ok {
		return 0
	}
	return len(def.Members)
}

// MemberNames returns the sorted names of a's directly-declared members,
// used by the relation engine to iterate a protocol's requirements in a
// deterministic order — iteration order must be deterministic
// everywhere a result can depend on it, not just union/intersection.
func (r *Registry) MemberNames(a types.ClassID) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.classes[a]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(def.Members))
	for n := range def.Members {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// IsFinal reports whether a class is declared @final.
func (r *Registry) IsFinal(a types.ClassID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.classes[a]
	return ok && def.IsFinal
}

// Metaclass returns a's metaclass, defaulting to "type" when unset.
func (r *Registry) Metaclass(a types.ClassID) types.ClassID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.classes[a]
	if !ok || def.Metaclass == "" {
		return "type"
	}
	return def.Metaclass
}

// EnumMemberCount returns the number of members of an enum class, or 0
// if a isn't a registered enum. Backs the single-member enum/instance
// equivalence rule in relation.Engine.IsEquivalentTo: an instance of an
// enum with exactly one member is equivalent to that member's literal.
func (r *Registry) EnumMemberCount(a types.ClassID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.classes[a]
	if !ok {
		return 0
	}
	return len(def.EnumMembers)
}
