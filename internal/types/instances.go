package types

import "fmt"

// NominalInstance is the type of instances of a class, possibly
// specialized with type arguments if the class is generic.
type NominalInstance struct {
	Class ClassID
	Args  []T
}

func (n NominalInstance) tag() tkind { return tagNominalInstance }
func (n NominalInstance) String() string {
	return fmt.Sprintf("%s%s", n.Class, specString(n.Args))
}
func (n NominalInstance) FreeTypeVars() []TypeVarID { return freeVarsOf(n.Args...) }

// ProtocolInstance is the type of instances satisfying a structural
// protocol (possibly generic, like NominalInstance).
type ProtocolInstance struct {
	Protocol ClassID
	Args     []T
}

func (p ProtocolInstance) tag() tkind { return tagProtocolInstance }
func (p ProtocolInstance) String() string {
	return fmt.Sprintf("%s%s", p.Protocol, specString(p.Args))
}
func (p ProtocolInstance) FreeTypeVars() []TypeVarID { return freeVarsOf(p.Args...) }

// IsObjectLike reports whether a ProtocolInstance is structurally
// equivalent to `object` (has no members at all), which the relation
// engine's second dispatch arm treats as universally satisfied.
func (p ProtocolInstance) IsObjectLike(memberCount func(ClassID) int) bool {
	return memberCount(p.Protocol) == 0
}

// NewTypeInstance is the type of instances of a typing.NewType wrapper
// around some supertype.
type NewTypeInstance struct {
	Name       string
	Supertype  T
}

func (n NewTypeInstance) tag() tkind             { return tagNewTypeInstance }
func (n NewTypeInstance) String() string         { return n.Name }
func (n NewTypeInstance) FreeTypeVars() []TypeVarID { return freeVarsOf(n.Supertype) }

// TypedDictField describes one key of a TypedDict shape.
type TypedDictField struct {
	Type     T
	Required bool
	ReadOnly bool
}

// TypedDictT is the type of a TypedDict instance: a fixed shape of
// string keys to (type, required, read-only) triples.
type TypedDictT struct {
	Name   string
	Fields map[string]TypedDictField
	Total  bool // totality: default requiredness for keys not overridden per-field
}

func (t TypedDictT) tag() tkind { return tagTypedDict }
func (t TypedDictT) String() string {
	return fmt.Sprintf("%s(TypedDict)", t.Name)
}
func (t TypedDictT) FreeTypeVars() []TypeVarID {
	var vars []TypeVarID
	for _, f := range t.Fields {
		vars = append(vars, f.Type.FreeTypeVars()...)
	}
	return uniqueTypeVars(vars)
}

// SortedKeys returns t's field names in sorted order, so callers (such
// as internal/store's canonical key) do not depend on map iteration
// order; same discipline as typesystem.TRecord.String() sorting field
// names before printing.
func (t TypedDictT) SortedKeys() []string {
	keys := make([]string, 0, len(t.Fields))
	for k := range t.Fields {
		keys = append(keys, k)
	}
	sortStrings(keys)
	return keys
}
