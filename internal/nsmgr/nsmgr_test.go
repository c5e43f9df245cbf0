package nsmgr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.datum.net/cimrepo/internal/cimerrors"
	"go.datum.net/cimrepo/internal/store"
)

func TestManagerAddAndValidate(t *testing.T) {
	m := New(store.New())

	require.NoError(t, m.Add("root/cimv2"))
	assert.NoError(t, m.Validate("root/cimv2"))
}

func TestManagerValidateMissing(t *testing.T) {
	m := New(store.New())

	err := m.Validate("root/cimv2")
	require.Error(t, err)
	code, _ := cimerrors.CodeOf(err)
	assert.Equal(t, cimerrors.InvalidNamespace, code)
}

func TestManagerRemove(t *testing.T) {
	m := New(store.New())
	require.NoError(t, m.Add("root/cimv2"))
	require.NoError(t, m.Remove("root/cimv2"))

	err := m.Validate("root/cimv2")
	require.Error(t, err)
}

func TestManagerListSorted(t *testing.T) {
	m := New(store.New())
	require.NoError(t, m.Add("root/zed"))
	require.NoError(t, m.Add("root/abc"))

	assert.Equal(t, []string{"root/abc", "root/zed"}, m.List())
}
