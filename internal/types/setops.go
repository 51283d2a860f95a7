package types

import "strings"

// UnionT is a normalized union of at least two types. Construction
// (flattening, dedup via redundancy, sorting) is internal/store's job,
// mirroring typesystem.NormalizeUnion's flatten/dedupe/sort pipeline;
// this type is deliberately a dumb container so that invariant belongs
// to exactly one place.
type UnionT struct{ Elements []T }

func (u UnionT) tag() tkind { return tagUnion }
func (u UnionT) String() string {
	parts := make([]string, len(u.Elements))
	for i, e := range u.Elements {
		parts[i] = e.String()
	}
	return strings.Join(parts, " | ")
}
func (u UnionT) FreeTypeVars() []TypeVarID { return freeVarsOf(u.Elements...) }

// IntersectionT is a normalized intersection: a conjunction of positive
// members and a conjunction of negated members. At rest it always has
// either >= 2 positive elements or >= 1 negative element.
type IntersectionT struct {
	Positive []T
	Negative []T
}

func (i IntersectionT) tag() tkind { return tagIntersection }
func (i IntersectionT) String() string {
	parts := make([]string, 0, len(i.Positive)+len(i.Negative))
	for _, p := range i.Positive {
		parts = append(parts, p.String())
	}
	for _, n := range i.Negative {
		parts = append(parts, "~"+n.String())
	}
	return strings.Join(parts, " & ")
}
func (i IntersectionT) FreeTypeVars() []TypeVarID {
	vars := append(append([]T{}, i.Positive...), i.Negative...)
	return freeVarsOf(vars...)
}

// SubclassInner is the closed set of things SubclassOf can wrap: a
// concrete class, a dynamic type, or a type variable.
type SubclassInner interface {
	subclassInner()
	String() string
}

// SubclassInnerClass wraps a concrete class.
type SubclassInnerClass struct{ Class ClassID }

func (SubclassInnerClass) subclassInner()    {}
func (c SubclassInnerClass) String() string  { return string(c.Class) }

// SubclassInnerDynamic wraps a gradual type (type[Any], etc).
type SubclassInnerDynamic struct{ Kind DynamicKind }

func (SubclassInnerDynamic) subclassInner()   {}
func (d SubclassInnerDynamic) String() string { return Dynamic{Kind: d.Kind}.String() }

// SubclassInnerTypeVar wraps a type variable (type[T]).
type SubclassInnerTypeVar struct{ TypeVar TypeVarID }

func (SubclassInnerTypeVar) subclassInner()    {}
func (v SubclassInnerTypeVar) String() string  { return v.TypeVar.String() }

// SubclassOf is the type `type[inner]`: instances of inner or one of its
// subclasses.
type SubclassOf struct{ Inner SubclassInner }

func (s SubclassOf) tag() tkind     { return tagSubclassOf }
func (s SubclassOf) String() string { return "type[" + s.Inner.String() + "]" }
func (s SubclassOf) FreeTypeVars() []TypeVarID {
	if tv, ok := s.Inner.(SubclassInnerTypeVar); ok {
		return []TypeVarID{tv.TypeVar}
	}
	return nil
}
