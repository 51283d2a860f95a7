package relation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tycore-project/tycore/internal/classenv"
	"github.com/tycore-project/tycore/internal/store"
	"github.com/tycore-project/tycore/internal/types"
)

func newTestEngine() (*Engine, *classenv.Registry) {
	classes := classenv.New()
	classes.Register(&classenv.ClassDef{ID: "object"})
	classes.Register(&classenv.ClassDef{ID: "int", Bases: []types.ClassID{"object"}})
	classes.Register(&classenv.ClassDef{ID: "bool", Bases: []types.ClassID{"int"}})
	classes.Register(&classenv.ClassDef{ID: "str", Bases: []types.ClassID{"object"}})
	return New(store.New(), classes, 8), classes
}

func TestEverythingIsSubtypeOfObject(t *testing.T) {
	e, _ := newTestEngine()
	assert.True(t, e.IsSubtypeOf(types.NominalInstance{Class: "int"}, types.NominalInstance{Class: "object"}))
	assert.True(t, e.IsSubtypeOf(types.Dynamic{Kind: types.DynAny}, types.NominalInstance{Class: "object"}))
}

func TestNeverIsSubtypeOfEverything(t *testing.T) {
	e, _ := newTestEngine()
	assert.True(t, e.IsSubtypeOf(types.Never{}, types.NominalInstance{Class: "int"}))
	assert.False(t, e.IsSubtypeOf(types.NominalInstance{Class: "int"}, types.Never{}))
}

func TestDynamicSubtypingIsFalseButAssignableIsTrue(t *testing.T) {
	e, _ := newTestEngine()
	any := types.Dynamic{Kind: types.DynAny}
	intT := types.NominalInstance{Class: "int"}
	assert.False(t, e.IsSubtypeOf(any, intT))
	assert.True(t, e.IsAssignableTo(any, intT))
	assert.True(t, e.IsAssignableTo(intT, any))
}

func TestDivergentIsAssignableNeverSubtype(t *testing.T) {
	e, _ := newTestEngine()
	divergent := types.Dynamic{Kind: types.DynDivergent}
	intT := types.NominalInstance{Class: "int"}
	assert.True(t, e.IsAssignableTo(divergent, intT))
	assert.False(t, e.IsSubtypeOf(divergent, intT))
}

func TestNominalSubtyping(t *testing.T) {
	e, _ := newTestEngine()
	boolT := types.NominalInstance{Class: "bool"}
	intT := types.NominalInstance{Class: "int"}
	strT := types.NominalInstance{Class: "str"}
	assert.True(t, e.IsSubtypeOf(boolT, intT))
	assert.False(t, e.IsSubtypeOf(strT, intT))
}

func TestBoolLiteralIsSubtypeOfBoolAndInt(t *testing.T) {
	e, _ := newTestEngine()
	lit := types.BoolLit{Value: true}
	assert.True(t, e.IsSubtypeOf(lit, types.NominalInstance{Class: "bool"}))
	assert.True(t, e.IsSubtypeOf(lit, types.NominalInstance{Class: "int"}))
}

func TestUnionSubtypingDistributes(t *testing.T) {
	e, _ := newTestEngine()
	u := types.UnionT{Elements: []types.T{types.NominalInstance{Class: "bool"}, types.NominalInstance{Class: "int"}}}
	assert.True(t, e.IsSubtypeOf(u, types.NominalInstance{Class: "int"}))
}

func TestUnionOnRightIsExistential(t *testing.T) {
	e, _ := newTestEngine()
	u := types.UnionT{Elements: []types.T{types.NominalInstance{Class: "int"}, types.NominalInstance{Class: "str"}}}
	assert.True(t, e.IsSubtypeOf(types.NominalInstance{Class: "bool"}, u))
}

func TestDistinctIntLiteralsAreUnrelated(t *testing.T) {
	e, _ := newTestEngine()
	assert.False(t, e.IsSubtypeOf(types.IntLit{Value: 1}, types.IntLit{Value: 2}))
}

func TestSameVariantDistinctLiteralsAreDisjoint(t *testing.T) {
	e, _ := newTestEngine()
	assert.True(t, e.IsDisjointFrom(types.IntLit{Value: 1}, types.IntLit{Value: 2}))
}

func TestUnrelatedNominalClassesAreDisjoint(t *testing.T) {
	e, _ := newTestEngine()
	assert.True(t, e.IsDisjointFrom(types.NominalInstance{Class: "int"}, types.NominalInstance{Class: "str"}))
}

func TestRelatedNominalClassesAreNotDisjoint(t *testing.T) {
	e, _ := newTestEngine()
	assert.False(t, e.IsDisjointFrom(types.NominalInstance{Class: "bool"}, types.NominalInstance{Class: "int"}))
}

func TestRecursiveNominalStructureDoesNotInfiniteLoop(t *testing.T) {
	e, classes := newTestEngine()
	classes.Register(&classenv.ClassDef{
		ID:      "Node",
		Bases:   []types.ClassID{"object"},
		Members: map[string]classenv.Member{"next": {Name: "next", Type: types.NominalInstance{Class: "Node"}}},
	})
	node := types.NominalInstance{Class: "Node"}
	require.NotPanics(t, func() {
		assert.True(t, e.IsSubtypeOf(node, node))
	})
}

func TestProtocolSatisfiesObjectLikeProtocol(t *testing.T) {
	e, classes := newTestEngine()
	classes.Register(&classenv.ClassDef{ID: "Empty", IsProtocol: true})
	assert.True(t, e.IsSubtypeOf(types.NominalInstance{Class: "int"}, types.ProtocolInstance{Protocol: "Empty"}))
}

func TestStructuralSatisfactionRequiresMember(t *testing.T) {
	e, classes := newTestEngine()
	classes.Register(&classenv.ClassDef{
		ID: "HasLen",
		Members: map[string]classenv.Member{
			"len": {Name: "len", Type: types.NominalInstance{Class: "int"}, Variance: types.VarianceCovariant},
		},
		IsProtocol: true,
	})
	classes.Register(&classenv.ClassDef{
		ID: "Sized",
		Members: map[string]classenv.Member{
			"len": {Name: "len", Type: types.NominalInstance{Class: "int"}, Variance: types.VarianceCovariant},
		},
	})
	sized := types.NominalInstance{Class: "Sized"}
	assert.True(t, e.IsSubtypeOf(sized, types.ProtocolInstance{Protocol: "HasLen"}))

	classes.Register(&classenv.ClassDef{ID: "Plain"})
	plain := types.NominalInstance{Class: "Plain"}
	assert.False(t, e.IsSubtypeOf(plain, types.ProtocolInstance{Protocol: "HasLen"}))
}
