package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.datum.net/cimrepo/internal/cimerrors"
)

func TestAddNamespaceDuplicate(t *testing.T) {
	s := New()
	require.NoError(t, s.AddNamespace("root/cimv2"))

	err := s.AddNamespace("root/cimv2")
	require.Error(t, err)
	code, ok := cimerrors.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, cimerrors.AlreadyExists, code)
}

func TestAddNamespaceNormalizesSlashes(t *testing.T) {
	s := New()
	require.NoError(t, s.AddNamespace("/root/cimv2/"))
	assert.NoError(t, s.ValidateNamespace("root/cimv2"))
}

func TestRemoveNamespaceNotEmpty(t *testing.T) {
	s := New()
	require.NoError(t, s.AddNamespace("root/cimv2"))
	require.NoError(t, s.CreateClass("root/cimv2", newTestClass("CIM_A")))

	err := s.RemoveNamespace("root/cimv2")
	require.Error(t, err)
	code, _ := cimerrors.CodeOf(err)
	assert.Equal(t, cimerrors.NamespaceNotEmpty, code)
}

func TestRemoveNamespaceNotFound(t *testing.T) {
	s := New()
	err := s.RemoveNamespace("root/cimv2")
	require.Error(t, err)
	code, _ := cimerrors.CodeOf(err)
	assert.Equal(t, cimerrors.NotFound, code)
}

func TestValidateNamespaceMissing(t *testing.T) {
	s := New()
	err := s.ValidateNamespace("root/cimv2")
	require.Error(t, err)
	code, _ := cimerrors.CodeOf(err)
	assert.Equal(t, cimerrors.InvalidNamespace, code)
}

func TestListNamespacesSorted(t *testing.T) {
	s := New()
	require.NoError(t, s.AddNamespace("root/zed"))
	require.NoError(t, s.AddNamespace("root/abc"))

	assert.Equal(t, []string{"root/abc", "root/zed"}, s.ListNamespaces())
}
