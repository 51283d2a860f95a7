package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tycore-project/tycore/internal/types"
)

func TestTopMaterializationOfDynamicIsObject(t *testing.T) {
	s := New()
	result := s.TopMaterialization(types.Dynamic{Kind: types.DynAny})
	assert.Equal(t, types.NominalInstance{Class: "object"}, result)
}

func TestBottomMaterializationOfDynamicIsNever(t *testing.T) {
	s := New()
	result := s.BottomMaterialization(types.Dynamic{Kind: types.DynAny})
	assert.Equal(t, types.Never{}, result)
}

func TestTopMaterializationOfFullyStaticTypeIsItself(t *testing.T) {
	s := New()
	intT := types.NominalInstance{Class: "int"}
	assert.Equal(t, intT, s.TopMaterialization(intT))
	assert.Equal(t, intT, s.BottomMaterialization(intT))
}

func TestTopMaterializationDistributesThroughUnion(t *testing.T) {
	s := New()
	u := types.UnionT{Elements: []types.T{types.Dynamic{Kind: types.DynAny}, types.NominalInstance{Class: "int"}}}
	result := s.TopMaterialization(u)
	union, ok := result.(types.UnionT)
	if !ok {
		t.Fatalf("expected UnionT, got %T", result)
	}
	found := false
	for _, e := range union.Elements {
		if e == (types.NominalInstance{Class: "object"}) {
			found = true
		}
	}
	assert.True(t, found, "expected object to appear from materializing Dynamic")
}

func TestTopMaterializationDistributesThroughGenericArgs(t *testing.T) {
	s := New()
	list := types.NominalInstance{Class: "list", Args: []types.T{types.Dynamic{Kind: types.DynAny}}}
	result := s.TopMaterialization(list)
	ni, ok := result.(types.NominalInstance)
	if !ok {
		t.Fatalf("expected NominalInstance, got %T", result)
	}
	assert.Equal(t, types.NominalInstance{Class: "object"}, ni.Args[0])
}

func TestBottomMaterializationDistributesThroughGenericArgs(t *testing.T) {
	s := New()
	list := types.NominalInstance{Class: "list", Args: []types.T{types.Dynamic{Kind: types.DynAny}}}
	result := s.BottomMaterialization(list)
	ni, ok := result.(types.NominalInstance)
	if !ok {
		t.Fatalf("expected NominalInstance, got %T", result)
	}
	assert.Equal(t, types.Never{}, ni.Args[0])
}

func TestMaterializationIsMemoized(t *testing.T) {
	s := New()
	intT := types.NominalInstance{Class: "int"}
	first := s.TopMaterialization(intT)
	second := s.TopMaterialization(intT)
	assert.Equal(t, first, second)
	h := s.Intern(intT)
	_, cached := s.materializeTop[h]
	assert.True(t, cached)
}
