package cim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueEqualScalar(t *testing.T) {
	a := NewString("foo")
	b := NewString("foo")
	c := NewString("Foo")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c), "string values compare case-sensitively")
}

func TestValueEqualArray(t *testing.T) {
	a := Value{Type: TypeUint32, IsArray: true, Array: []any{uint64(1), uint64(2)}}
	b := Value{Type: TypeUint32, IsArray: true, Array: []any{uint64(1), uint64(2)}}
	c := Value{Type: TypeUint32, IsArray: true, Array: []any{uint64(1), uint64(3)}}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestValueEqualNull(t *testing.T) {
	a := Value{Type: TypeString, Null: true}
	b := Value{Type: TypeString, Null: true}
	c := NewString("")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestValueEqualReference(t *testing.T) {
	n1 := NewInstanceName("CIM_A")
	n1.Keybindings.Set("Name", NewString("a1"))
	n2 := NewInstanceName("CIM_A")
	n2.Keybindings.Set("Name", NewString("a1"))

	a := NewReference("CIM_A", n1)
	b := NewReference("CIM_A", n2)

	assert.True(t, a.Equal(b))
}

func TestValueSameTypeShape(t *testing.T) {
	a := NewString("x")
	b := NewString("y")
	c := Value{Type: TypeString, IsArray: true}

	assert.True(t, a.SameTypeShape(b))
	assert.False(t, a.SameTypeShape(c))
}

func TestValueSameTypeShapeArraySize(t *testing.T) {
	size3 := uint32(3)
	size5 := uint32(5)

	a := Value{Type: TypeUint32, IsArray: true, ArraySize: &size3}
	b := Value{Type: TypeUint32, IsArray: true, ArraySize: &size3}
	c := Value{Type: TypeUint32, IsArray: true, ArraySize: &size5}
	unbounded := Value{Type: TypeUint32, IsArray: true}

	assert.True(t, a.SameTypeShape(b), "equal declared array sizes must match")
	assert.False(t, a.SameTypeShape(c), "differing declared array sizes must not match")
	assert.False(t, a.SameTypeShape(unbounded), "a fixed size must not match an unbounded declaration")
	assert.False(t, unbounded.SameTypeShape(a), "the mismatch must be symmetric")
}

func TestValueCloneIsIndependent(t *testing.T) {
	name := NewInstanceName("CIM_A")
	name.Keybindings.Set("Name", NewString("a1"))
	orig := NewReference("CIM_A", name)

	clone := orig.Clone()
	clonedName := clone.Scalar.(*InstanceName)
	clonedName.Keybindings.Set("Name", NewString("mutated"))

	origName := orig.Scalar.(*InstanceName)
	v, _ := origName.Keybindings.Get("Name")
	assert.Equal(t, "a1", v.Scalar)
}

func TestValueCloneArrayIsIndependent(t *testing.T) {
	orig := Value{Type: TypeString, IsArray: true, Array: []any{"a", "b"}}
	clone := orig.Clone()
	clone.Array[0] = "mutated"

	assert.Equal(t, "a", orig.Array[0])
	assert.Equal(t, "mutated", clone.Array[0])
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "string", TypeString.String())
	assert.Equal(t, "reference", TypeReference.String())
	assert.Equal(t, "unknown", Type(999).String())
}
