package cim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMethodCloneIsIndependent(t *testing.T) {
	m := Method{
		Name:       "DoThing",
		ReturnType: TypeUint32,
		Parameters: NewParameterMap(),
		Qualifiers: NewQualifierMap(),
	}
	m.Parameters.Set("arg", Parameter{Name: "arg", Value: NewString("x")})

	clone := m.Clone()
	clone.Parameters.Set("arg", Parameter{Name: "arg", Value: NewString("mutated")})

	orig, _ := m.Parameters.Get("arg")
	assert.Equal(t, "x", orig.Value.Scalar)
}

func TestParameterCloneIsIndependent(t *testing.T) {
	p := Parameter{Name: "arg", Value: NewString("x"), Qualifiers: NewQualifierMap()}
	clone := p.Clone()
	clone.Value.Scalar = "mutated"
	assert.Equal(t, "x", p.Value.Scalar)
}
