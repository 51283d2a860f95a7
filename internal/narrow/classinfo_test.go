package narrow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tycore-project/tycore/internal/types"
)

func TestClassInfoOfKnownClass(t *testing.T) {
	typ, ok := ClassInfoOf("int", fakeClassInfo{})
	assert.True(t, ok)
	assert.Equal(t, types.NominalInstance{Class: "int"}, typ)
}

func TestClassInfoOfEmptyClassIDNeverConstraint(t *testing.T) {
	typ, ok := ClassInfoOf("", fakeClassInfo{})
	assert.False(t, ok)
	assert.Nil(t, typ)
}
