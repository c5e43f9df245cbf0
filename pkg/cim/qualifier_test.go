package cim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualifierDeclarationPermitsScope(t *testing.T) {
	d := QualifierDeclaration{
		Name:   QualifierKey,
		Type:   TypeBoolean,
		Scopes: []QualifierScope{ScopeProperty, ScopeReference},
	}

	assert.True(t, d.PermitsScope(ScopeProperty))
	assert.True(t, d.PermitsScope(ScopeReference))
	assert.False(t, d.PermitsScope(ScopeClass))
}

func TestQualifierDeclarationPermitsScopeAny(t *testing.T) {
	d := QualifierDeclaration{Scopes: []QualifierScope{ScopeAny}}
	assert.True(t, d.PermitsScope(ScopeClass))
	assert.True(t, d.PermitsScope(ScopeMethod))
}

func TestQualifierDeclarationCloneIsIndependent(t *testing.T) {
	d := QualifierDeclaration{
		Name:    "Description",
		Type:    TypeString,
		Scopes:  []QualifierScope{ScopeAny},
		Flavors: []QualifierFlavor{FlavorEnableOverride},
		Default: NewString("x"),
	}

	clone := d.Clone()
	clone.Scopes[0] = ScopeClass
	clone.Default.Scalar = "mutated"

	assert.Equal(t, ScopeAny, d.Scopes[0])
	assert.Equal(t, "x", d.Default.Scalar)
}

func TestHasQualifierNilMap(t *testing.T) {
	assert.False(t, HasQualifier(nil, QualifierKey))
}
