package types

import "strings"

// Variance records how a TypeVarT's specialization site should be
// checked by the relation engine when it appears as a generic class's
// type parameter or protocol member (arms 15 and 16, protocol structural
// satisfaction).
type Variance int

const (
	VarianceInvariant Variance = iota
	VarianceCovariant
	VarianceContravariant
)

// BoundTypeVar is the payload of a TypeVarT: a type variable bound to a
// specific generic scope, carrying its upper bound, constraints,
// default, variance, and inferable flag.
type BoundTypeVar struct {
	ID          TypeVarID
	UpperBound  T   // nil means no explicit bound (implicit `object`)
	Constraints []T // non-empty means a constrained typevar (T: (int, str))
	Default     T   // nil means no PEP 696 default
	Variance    Variance
	Inferable   bool // true for typevars the engine may unify/solve for
}

// TypeVarT is a type-variable type: a reference to a BoundTypeVar.
type TypeVarT struct{ Bound BoundTypeVar }

func (v TypeVarT) tag() tkind     { return tagTypeVar }
func (v TypeVarT) String() string { return v.Bound.ID.String() }
func (v TypeVarT) FreeTypeVars() []TypeVarID { return []TypeVarID{v.Bound.ID} }

func (v TypeVarT) String_Debug() string {
	var b strings.Builder
	b.WriteString(v.Bound.ID.String())
	if v.Bound.UpperBound != nil {
		b.WriteString(": ")
		b.WriteString(v.Bound.UpperBound.String())
	} else if len(v.Bound.Constraints) > 0 {
		b.WriteString(": (")
		for i, c := range v.Bound.Constraints {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(c.String())
		}
		b.WriteString(")")
	}
	return b.String()
}
