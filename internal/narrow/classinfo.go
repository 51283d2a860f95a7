package narrow

import "github.com/tycore-project/tycore/internal/types"

// ClassInfo is the narrowing builder's view of the class environment:
// just enough to resolve isinstance/issubclass/hasattr leaves without
// internal/narrow importing internal/classenv's full Registry surface
// (the same small-interface seam internal/store.ClassInfo and
// internal/relation use elsewhere).
type ClassInfo interface {
	IsSubclass(a, b types.ClassID) bool
	HasMember(class types.ClassID, name string) bool
	MemberType(class types.ClassID, name string) (types.T, bool)
}

// ClassInfoOf resolves c to the type isinstance(x, c) narrows x to.
// Per DESIGN.md's Open Question #2 decision: an empty ClassID returns
// (nil, false) meaning "no constraint can be derived" — callers must
// treat that as "leave the place's type unchanged," never as a
// false/empty narrowing. Any non-empty ClassID resolves to its
// NominalInstance whether or not ci knows the class; ci is not
// consulted, and a custom __instancecheck__ is not detected.
func ClassInfoOf(c types.ClassID, ci ClassInfo) (types.T, bool) {
	if c == "" {
		return nil, false
	}
	return types.NominalInstance{Class: c}, true
}
