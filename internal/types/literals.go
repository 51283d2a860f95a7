package types

import "fmt"

// ClassID names a Python class registered in an internal/classenv.Registry.
// Kept as a string handle here (rather than a pointer into the registry)
// so that internal/types never imports internal/classenv: the type model
// must not depend on the environment that interprets it.
type ClassID string

// BoolLit is a single-valued literal type for True or False.
type BoolLit struct{ Value bool }

func (b BoolLit) tag() tkind     { return tagBoolLit }
func (b BoolLit) String() string {
	if b.Value {
		return "Literal[True]"
	}
	return "Literal[False]"
}
func (b BoolLit) FreeTypeVars() []TypeVarID { return nil }

// IntLit is a single-valued literal type for one int value.
type IntLit struct{ Value int64 }

func (i IntLit) tag() tkind             { return tagIntLit }
func (i IntLit) String() string         { return fmt.Sprintf("Literal[%d]", i.Value) }
func (i IntLit) FreeTypeVars() []TypeVarID { return nil }

// StrLit is a single-valued literal type for one str value.
type StrLit struct{ Value string }

func (s StrLit) tag() tkind             { return tagStrLit }
func (s StrLit) String() string         { return fmt.Sprintf("Literal[%q]", s.Value) }
func (s StrLit) FreeTypeVars() []TypeVarID { return nil }

// BytesLit is a single-valued literal type for one bytes value.
type BytesLit struct{ Value []byte }

func (b BytesLit) tag() tkind             { return tagBytesLit }
func (b BytesLit) String() string         { return fmt.Sprintf("Literal[b%q]", string(b.Value)) }
func (b BytesLit) FreeTypeVars() []TypeVarID { return nil }

// LiteralString represents the set of all string literals (PEP 675).
type LiteralString struct{}

func (LiteralString) tag() tkind             { return tagLiteralString }
func (LiteralString) String() string         { return "LiteralString" }
func (LiteralString) FreeTypeVars() []TypeVarID { return nil }

// EnumLit is a single-valued literal type for one enum member.
type EnumLit struct {
	Class  ClassID
	Member string
}

func (e EnumLit) tag() tkind             { return tagEnumLit }
func (e EnumLit) String() string         { return fmt.Sprintf("Literal[%s.%s]", e.Class, e.Member) }
func (e EnumLit) FreeTypeVars() []TypeVarID { return nil }

// ModuleLit is the type of a specific imported module object.
type ModuleLit struct{ Module string }

func (m ModuleLit) tag() tkind             { return tagModuleLit }
func (m ModuleLit) String() string         { return fmt.Sprintf("<module %q>", m.Module) }
func (m ModuleLit) FreeTypeVars() []TypeVarID { return nil }

// ClassLit is the type of a specific class object used as a value (not
// SubclassOf, which denotes the set of instances of subclasses).
type ClassLit struct{ Class ClassID }

func (c ClassLit) tag() tkind             { return tagClassLit }
func (c ClassLit) String() string         { return fmt.Sprintf("type[%s]", c.Class) }
func (c ClassLit) FreeTypeVars() []TypeVarID { return nil }

// GenericAlias is the type of a specific generic class specialized with
// concrete type arguments used as a value, e.g. list[int] written as an
// expression rather than an annotation.
type GenericAlias struct {
	Class          ClassID
	Specialization []T
}

func (g GenericAlias) tag() tkind { return tagGenericAlias }
func (g GenericAlias) String() string {
	return fmt.Sprintf("type[%s%s]", g.Class, specString(g.Specialization))
}
func (g GenericAlias) FreeTypeVars() []TypeVarID { return freeVarsOf(g.Specialization...) }

// FunctionLit is the type of a specific function object (by identity),
// optionally specialized if the function is generic.
type FunctionLit struct {
	Function       string
	Specialization []T
}

func (f FunctionLit) tag() tkind { return tagFunctionLit }
func (f FunctionLit) String() string {
	return fmt.Sprintf("<function %s%s>", f.Function, specString(f.Specialization))
}
func (f FunctionLit) FreeTypeVars() []TypeVarID { return freeVarsOf(f.Specialization...) }

// SpecialFormKind enumerates the typing.* special forms treated as
// first-class values (Union, Optional, Literal, ...).
type SpecialFormKind string

// SpecialForm is the type of a typing.* special form used as a value
// (e.g. the bare name `Union` before subscripting).
type SpecialForm struct{ Form SpecialFormKind }

func (s SpecialForm) tag() tkind             { return tagSpecialForm }
func (s SpecialForm) String() string         { return fmt.Sprintf("typing.%s", s.Form) }
func (s SpecialForm) FreeTypeVars() []TypeVarID { return nil }

// KnownInstanceKind enumerates singleton "known instance" values the
// checker treats specially (e.g. typing.Any as a runtime value, an
// ellipsis literal used as a sentinel).
type KnownInstanceKind string

// KnownInstance is the type of a singleton runtime value the checker
// special-cases outside the general nominal-instance machinery.
type KnownInstance struct{ Kind KnownInstanceKind }

func (k KnownInstance) tag() tkind             { return tagKnownInstance }
func (k KnownInstance) String() string         { return string(k.Kind) }
func (k KnownInstance) FreeTypeVars() []TypeVarID { return nil }

func specString(spec []T) string {
	if len(spec) == 0 {
		return ""
	}
	s := "["
	for i, t := range spec {
		if i > 0 {
			s += ", "
		}
		s += t.String()
	}
	return s + "]"
}
