package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsFullyStatic(t *testing.T) {
	tests := []struct {
		name string
		typ  T
		want bool
	}{
		{"any is not static", Dynamic{Kind: DynAny}, false},
		{"divergent is not static", Dynamic{Kind: DynDivergent}, false},
		{"never is static", Never{}, true},
		{"bool literal is static", BoolLit{Value: true}, true},
		{"nominal instance with no args is static", NominalInstance{Class: "int"}, true},
		{
			"nominal instance with dynamic arg is not static",
			NominalInstance{Class: "list", Args: []T{Dynamic{Kind: DynAny}}},
			false,
		},
		{
			"union with a dynamic member is not static",
			UnionT{Elements: []T{NominalInstance{Class: "int"}, Dynamic{Kind: DynUnknown}}},
			false,
		},
		{
			"newtype over a static supertype is static",
			NewTypeInstance{Name: "UserId", Supertype: NominalInstance{Class: "int"}},
			true,
		},
		{
			"newtype over a dynamic supertype is not static",
			NewTypeInstance{Name: "UserId", Supertype: Dynamic{Kind: DynAny}},
			false,
		},
		{
			"SubclassOf a concrete class is static",
			SubclassOf{Inner: SubclassInnerClass{Class: "int"}},
			true,
		},
		{
			"SubclassOf a dynamic inner is not static",
			SubclassOf{Inner: SubclassInnerDynamic{Kind: DynAny}},
			false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsFullyStatic(tc.typ))
		})
	}
}

func TestRankOrdersDynamicBeforeEverything(t *testing.T) {
	require.Less(t, Rank(Dynamic{Kind: DynAny}), Rank(Never{}))
	require.Less(t, Rank(Never{}), Rank(BoolLit{Value: true}))
}

func TestTypeVarIDString(t *testing.T) {
	assert.Equal(t, "T", TypeVarID{Name: "T"}.String())
	assert.Equal(t, "foo.T", TypeVarID{Scope: "foo", Name: "T"}.String())
}

func TestFreeTypeVarsDeduplicates(t *testing.T) {
	tv := TypeVarID{Name: "T"}
	u := UnionT{Elements: []T{TypeVarT{Bound: BoundTypeVar{ID: tv}}, TypeVarT{Bound: BoundTypeVar{ID: tv}}}}
	assert.Equal(t, []TypeVarID{tv}, u.FreeTypeVars())
}
