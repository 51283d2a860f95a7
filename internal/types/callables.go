package types

import (
	"fmt"
	"strings"
)

// ParamKind distinguishes positional-only, positional-or-keyword,
// keyword-only, *args, and **kwargs parameters, matching Python calling
// convention (needed to get arm 18's contravariant-parameter check right
// for keyword-only parameters, which are matched by name, not position).
type ParamKind int

const (
	ParamPositional ParamKind = iota
	ParamPositionalOrKeyword
	ParamKeywordOnly
	ParamVarArgs
	ParamVarKwargs
)

// Param is one parameter of a Signature.
type Param struct {
	Name     string
	Type     T
	Kind     ParamKind
	HasDefault bool
}

// Signature is a single overload of a callable type. Callable itself
// wraps exactly one Signature; overload
// sets are represented one level up, as a Union of CallableT, consistent
// with how the relation engine's arm 11/12 (Union elimination/
// introduction) already handles "any of several signatures will do."
type Signature struct {
	Params     []Param
	Return     T
	IsGradual  bool // true for Callable[..., R]: unknown parameter list
}

func (s Signature) String() string {
	if s.IsGradual {
		return fmt.Sprintf("(...) -> %s", s.Return.String())
	}
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		switch p.Kind {
		case ParamVarArgs:
			parts[i] = "*" + p.Type.String()
		case ParamVarKwargs:
			parts[i] = "**" + p.Type.String()
		default:
			parts[i] = p.Type.String()
		}
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), s.Return.String())
}

// CallableT is the type of a value satisfying a call signature, with no
// bound function identity (contrast FunctionLit/BoundMethod).
type CallableT struct{ Signature Signature }

func (c CallableT) tag() tkind     { return tagCallable }
func (c CallableT) String() string { return c.Signature.String() }
func (c CallableT) FreeTypeVars() []TypeVarID {
	vars := freeVarsOf(paramTypes(c.Signature.Params)...)
	return uniqueTypeVars(append(vars, c.Signature.Return.FreeTypeVars()...))
}

// BoundMethod is a FunctionLit bound to a `self` instance.
type BoundMethod struct {
	Self     T
	Function T
}

func (b BoundMethod) tag() tkind { return tagBoundMethod }
func (b BoundMethod) String() string {
	return fmt.Sprintf("<bound method %s of %s>", b.Function, b.Self)
}
func (b BoundMethod) FreeTypeVars() []TypeVarID { return freeVarsOf(b.Self, b.Function) }

// KnownBoundMethodKind enumerates built-in bound methods the checker
// special-cases (e.g. str.join bound to a literal, for precise literal
// return types).
type KnownBoundMethodKind string

// KnownBoundMethod is the type of a specific built-in bound method the
// checker has special return-type logic for.
type KnownBoundMethod struct{ Kind KnownBoundMethodKind }

func (k KnownBoundMethod) tag() tkind             { return tagKnownBoundMethod }
func (k KnownBoundMethod) String() string         { return string(k.Kind) }
func (k KnownBoundMethod) FreeTypeVars() []TypeVarID { return nil }

// WrapperDescriptorKind enumerates slot-wrapper descriptors like
// object.__init__ that exist in CPython but have no Python-level
// signature to introspect generally.
type WrapperDescriptorKind string

// WrapperDescriptor is the type of a CPython slot wrapper.
type WrapperDescriptor struct{ Kind WrapperDescriptorKind }

func (w WrapperDescriptor) tag() tkind             { return tagWrapperDescriptor }
func (w WrapperDescriptor) String() string         { return string(w.Kind) }
func (w WrapperDescriptor) FreeTypeVars() []TypeVarID { return nil }

// PropertyInstance is the type of a property descriptor with an optional
// getter and setter.
type PropertyInstance struct {
	Getter T // nil if write-only (not expressible in practice, but kept optional)
	Setter T // nil if read-only
}

func (p PropertyInstance) tag() tkind { return tagPropertyInstance }
func (p PropertyInstance) String() string {
	if p.Setter == nil {
		return fmt.Sprintf("property(getter=%s)", p.Getter)
	}
	return fmt.Sprintf("property(getter=%s, setter=%s)", p.Getter, p.Setter)
}
func (p PropertyInstance) FreeTypeVars() []TypeVarID {
	if p.Setter == nil {
		return freeVarsOf(p.Getter)
	}
	return freeVarsOf(p.Getter, p.Setter)
}

// BoundSuper is the type of a super() call result: a pivot class (where
// the MRO search starts after) bound to an owner instance.
type BoundSuper struct {
	Pivot ClassID
	Owner T
}

func (b BoundSuper) tag() tkind             { return tagBoundSuper }
func (b BoundSuper) String() string         { return fmt.Sprintf("super(%s, %s)", b.Pivot, b.Owner) }
func (b BoundSuper) FreeTypeVars() []TypeVarID { return freeVarsOf(b.Owner) }

// DataclassParams carries the keyword arguments given to @dataclass
// (frozen, eq, order, ...) that affect the relation engine's synthesized
// __init__/__eq__ signatures for NominalInstances of the decorated class.
type DataclassParams struct {
	Frozen bool
	Eq     bool
	Order  bool
	KwOnly bool
}

// DataclassDecorator is the type of the @dataclass decorator itself
// (before or with parameters, not yet applied to a class).
type DataclassDecorator struct{ Params DataclassParams }

func (d DataclassDecorator) tag() tkind             { return tagDataclassDecorator }
func (d DataclassDecorator) String() string         { return "dataclass" }
func (d DataclassDecorator) FreeTypeVars() []TypeVarID { return nil }

// DataclassTransformer is the type of a function/class decorated with
// typing.dataclass_transform, which propagates DataclassParams-like
// synthesis semantics to its callers.
type DataclassTransformer struct{ Params DataclassParams }

func (d DataclassTransformer) tag() tkind             { return tagDataclassTransformer }
func (d DataclassTransformer) String() string         { return "dataclass_transform(...)" }
func (d DataclassTransformer) FreeTypeVars() []TypeVarID { return nil }
