package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tycore-project/tycore/internal/types"
)

func TestInternIsIdempotent(t *testing.T) {
	s := New()
	a := types.NominalInstance{Class: "int"}
	b := types.NominalInstance{Class: "int"}

	h1 := s.Intern(a)
	h2 := s.Intern(b)
	assert.Equal(t, h1, h2)
	assert.True(t, s.Equal(a, b))
}

func TestInternDistinguishesDifferentShapes(t *testing.T) {
	s := New()
	h1 := s.Intern(types.NominalInstance{Class: "int"})
	h2 := s.Intern(types.NominalInstance{Class: "str"})
	assert.NotEqual(t, h1, h2)
}

func TestResolveRoundTrips(t *testing.T) {
	s := New()
	shape := types.NominalInstance{Class: "int"}
	h := s.Intern(shape)
	require.Equal(t, shape, s.Resolve(h))
}

func TestResolveStaleHandlePanics(t *testing.T) {
	s := New()
	assert.Panics(t, func() { s.Resolve(Handle(999)) })
}

func TestInternConcurrentSameShapeReturnsOneHandle(t *testing.T) {
	s := New()
	shape := types.NominalInstance{Class: "int", Args: []types.T{types.NominalInstance{Class: "str"}}}

	const n = 32
	handles := make([]Handle, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		go func() {
			defer wg.Done()
			handles[i] = s.Intern(shape)
		}()
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		assert.Equal(t, handles[0], handles[i])
	}
}

func TestUnionOfFlattensNestedUnions(t *testing.T) {
	inner := types.UnionT{Elements: []types.T{types.NominalInstance{Class: "int"}, types.NominalInstance{Class: "str"}}}
	result := UnionOf([]types.T{inner, types.NominalInstance{Class: "bool"}}, nil)
	u, ok := result.(types.UnionT)
	require.True(t, ok)
	assert.Len(t, u.Elements, 3)
}

func TestUnionOfDropsNever(t *testing.T) {
	result := UnionOf([]types.T{types.Never{}, types.NominalInstance{Class: "int"}}, nil)
	assert.Equal(t, types.NominalInstance{Class: "int"}, result)
}

func TestUnionOfEmptyIsNever(t *testing.T) {
	assert.Equal(t, types.Never{}, UnionOf(nil, nil))
}

func TestIntersectionOfEmptyIsObject(t *testing.T) {
	result := IntersectionOf(nil, nil, nil, nil)
	assert.Equal(t, types.NominalInstance{Class: "object"}, result)
}

func TestIntersectionOfDropsObject(t *testing.T) {
	result := IntersectionOf(
		[]types.T{types.NominalInstance{Class: "object"}, types.NominalInstance{Class: "int"}},
		nil, nil, nil,
	)
	assert.Equal(t, types.NominalInstance{Class: "int"}, result)
}

func TestIntersectionOfDisjointPositivesIsNever(t *testing.T) {
	alwaysDisjoint := func(a, b types.T) bool { return true }
	result := IntersectionOf(
		[]types.T{types.NominalInstance{Class: "int"}, types.NominalInstance{Class: "str"}},
		nil, alwaysDisjoint, nil,
	)
	assert.Equal(t, types.Never{}, result)
}

func TestIntersectionOfSubsumptionKeepsNarrowerPositive(t *testing.T) {
	// int & bool: bool <: int, so the wider int is redundant and should
	// be dropped, leaving the narrower bool.
	isSubtype := func(a, b types.T) bool {
		bl, aIsBool := a.(types.NominalInstance)
		br, bIsInt := b.(types.NominalInstance)
		return aIsBool && bIsInt && bl.Class == "bool" && br.Class == "int"
	}
	result := IntersectionOf(
		[]types.T{types.NominalInstance{Class: "int"}, types.NominalInstance{Class: "bool"}},
		nil, nil, isSubtype,
	)
	assert.Equal(t, types.NominalInstance{Class: "bool"}, result)
}

func TestSubclassOfClassFinal(t *testing.T) {
	info := fakeClassInfo{final: map[types.ClassID]bool{"Final": true}}
	result := SubclassOfClass("Final", info)
	assert.Equal(t, types.NominalInstance{Class: "type"}, result)
}

func TestSubclassOfClassNonFinal(t *testing.T) {
	info := fakeClassInfo{}
	result := SubclassOfClass("Regular", info)
	assert.Equal(t, types.SubclassOf{Inner: types.SubclassInnerClass{Class: "Regular"}}, result)
}

type fakeClassInfo struct {
	final map[types.ClassID]bool
	meta  map[types.ClassID]types.ClassID
}

func (f fakeClassInfo) IsFinal(c types.ClassID) bool { return f.final[c] }
func (f fakeClassInfo) Metaclass(c types.ClassID) types.ClassID {
	if f.meta == nil {
		return ""
	}
	return f.meta[c]
}
