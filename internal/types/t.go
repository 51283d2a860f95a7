// Package types defines T, the tagged-variant lattice of Python types the
// rest of tycore relates, narrows, and interns. It deliberately holds no
// behavior beyond String()/FreeTypeVars()/tag() — relation rules live in
// internal/relation, narrowing in internal/narrow, hash-consing in
// internal/store. Keeping the data shape separate from the rules that act
// on it is the one structural change this package makes relative to the
// teacher's typesystem package, where Type, Unify, and normalization all
// lived in the same package.
package types

// TypeVarID names a type variable within a generic scope. Distinct scopes
// may reuse the same surface name ("T"), so identity is the pair of scope
// and name, not the name alone.
type TypeVarID struct {
	Scope string
	Name  string
}

func (id TypeVarID) String() string {
	if id.Scope == "" {
		return id.Name
	}
	return id.Scope + "." + id.Name
}

// T is the interface every type variant implements. It is intentionally
// minimal: variants are plain data, matched on with type switches in
// internal/relation and internal/narrow rather than given relation-aware
// methods, so that arm ordering (semantically significant per spec) lives
// in exactly one place.
type T interface {
	// String renders the type for diagnostics and test fixtures.
	String() string
	// FreeTypeVars returns the type variables this type mentions, in a
	// stable (first-occurrence) order.
	FreeTypeVars() []TypeVarID
	// tag identifies the variant for dispatch and for the store's
	// canonical ordering; unexported so only this package can add
	// variants.
	tag() tkind
}

// tkind is the discriminant used for canonical ordering (Open Question
// #1: resolved in DESIGN.md as "sort by (variantRank, String())").
type tkind int

const (
	tagDynamic tkind = iota
	tagNever
	tagAlwaysTruthy
	tagAlwaysFalsy
	tagBoolLit
	tagIntLit
	tagStrLit
	tagBytesLit
	tagLiteralString
	tagEnumLit
	tagModuleLit
	tagClassLit
	tagGenericAlias
	tagFunctionLit
	tagSpecialForm
	tagKnownInstance
	tagNominalInstance
	tagProtocolInstance
	tagNewTypeInstance
	tagTypedDict
	tagCallable
	tagBoundMethod
	tagKnownBoundMethod
	tagWrapperDescriptor
	tagPropertyInstance
	tagBoundSuper
	tagDataclassDecorator
	tagDataclassTransformer
	tagUnion
	tagIntersection
	tagSubclassOf
	tagTypeVar
	tagTypeGuard
	tagTypeIs
	tagTypeAlias
)

// Rank returns the variant's position in the canonical ordering used by
// the store to sort union/intersection elements deterministically
// (DESIGN.md Open Question #1). It is exported so internal/store doesn't
// need a parallel copy of the tag table.
func Rank(t T) int { return int(t.tag()) }

func uniqueTypeVars(vars []TypeVarID) []TypeVarID {
	seen := make(map[TypeVarID]bool, len(vars))
	out := make([]TypeVarID, 0, len(vars))
	for _, v := range vars {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func freeVarsOf(ts ...T) []TypeVarID {
	var vars []TypeVarID
	for _, t := range ts {
		if t == nil {
			continue
		}
		vars = append(vars, t.FreeTypeVars()...)
	}
	return uniqueTypeVars(vars)
}

// IsFullyStatic reports whether t contains no Dynamic variant anywhere in
// its structure. It is a plain
// recursive walk rather than a memoized T method, because memoization of
// derived predicates belongs to internal/store (TopMaterialization and
// BottomMaterialization already memoize there); this keeps T itself free of cache state.
func IsFullyStatic(t T) bool {
	switch v := t.(type) {
	case Dynamic:
		return false
	case Never, AlwaysTruthy, AlwaysFalsy, BoolLit, IntLit, StrLit, BytesLit,
		LiteralString, EnumLit, ModuleLit, ClassLit, SpecialForm, KnownInstance:
		return true
	case NewTypeInstance:
		return IsFullyStatic(v.Supertype)
	case GenericAlias:
		return allStatic(v.Specialization)
	case FunctionLit:
		return allStatic(v.Specialization)
	case NominalInstance:
		return allStatic(v.Args)
	case ProtocolInstance:
		return allStatic(v.Args)
	case TypedDictT:
		for _, m := range v.Fields {
			if !IsFullyStatic(m.Type) {
				return false
			}
		}
		return true
	case CallableT:
		return IsFullyStatic(v.Signature.Return) && allStatic(paramTypes(v.Signature.Params))
	case BoundMethod:
		return IsFullyStatic(v.Self) && IsFullyStatic(v.Function)
	case KnownBoundMethod, WrapperDescriptor:
		return true
	case PropertyInstance:
		return (v.Getter == nil || IsFullyStatic(v.Getter)) && (v.Setter == nil || IsFullyStatic(v.Setter))
	case BoundSuper:
		return true
	case DataclassDecorator, DataclassTransformer:
		return true
	case UnionT:
		return allStatic(v.Elements)
	case IntersectionT:
		return allStatic(v.Positive) && allStatic(v.Negative)
	case SubclassOf:
		_, dynamic := v.Inner.(SubclassInnerDynamic)
		return !dynamic
	case TypeVarT:
		return v.Bound.UpperBound == nil || IsFullyStatic(v.Bound.UpperBound)
	case TypeGuardT:
		return IsFullyStatic(v.ReturnType)
	case TypeIsT:
		return IsFullyStatic(v.ReturnType)
	case TypeAliasT:
		if v.Target == nil {
			return true
		}
		return IsFullyStatic(v.Target)
	default:
		return true
	}
}

func allStatic(ts []T) bool {
	for _, t := range ts {
		if !IsFullyStatic(t) {
			return false
		}
	}
	return true
}

func paramTypes(params []Param) []T {
	out := make([]T, len(params))
	for i, p := range params {
		out[i] = p.Type
	}
	return out
}
