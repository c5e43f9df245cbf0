package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.datum.net/cimrepo/internal/cimerrors"
	"go.datum.net/cimrepo/pkg/cim"
)

func TestCreateInstanceDuplicatePath(t *testing.T) {
	s := New()
	require.NoError(t, s.AddNamespace("root/cimv2"))
	require.NoError(t, s.CreateInstance("root/cimv2", newTestInstance("CIM_A", "a1")))

	err := s.CreateInstance("root/cimv2", newTestInstance("CIM_A", "a1"))
	require.Error(t, err)
	code, _ := cimerrors.CodeOf(err)
	assert.Equal(t, cimerrors.AlreadyExists, code)
}

func TestGetInstanceNotFound(t *testing.T) {
	s := New()
	require.NoError(t, s.AddNamespace("root/cimv2"))

	path := cim.NewInstanceName("CIM_A")
	path.Keybindings.Set("Name", cim.NewString("missing"))

	_, err := s.GetInstance("root/cimv2", path)
	require.Error(t, err)
	code, _ := cimerrors.CodeOf(err)
	assert.Equal(t, cimerrors.NotFound, code)
}

func TestUpdateInstanceNotFound(t *testing.T) {
	s := New()
	require.NoError(t, s.AddNamespace("root/cimv2"))

	err := s.UpdateInstance("root/cimv2", newTestInstance("CIM_A", "a1"))
	require.Error(t, err)
	code, _ := cimerrors.CodeOf(err)
	assert.Equal(t, cimerrors.NotFound, code)
}

func TestUpdateInstanceReplacesContent(t *testing.T) {
	s := New()
	require.NoError(t, s.AddNamespace("root/cimv2"))
	require.NoError(t, s.CreateInstance("root/cimv2", newTestInstance("CIM_A", "a1")))

	updated := newTestInstance("CIM_A", "a1")
	updated.Properties.Set("Extra", cim.Property{Name: "Extra", Value: cim.NewString("yes")})
	require.NoError(t, s.UpdateInstance("root/cimv2", updated))

	got, err := s.GetInstance("root/cimv2", updated.Path)
	require.NoError(t, err)
	v, ok := got.Properties.Get("Extra")
	require.True(t, ok)
	assert.Equal(t, "yes", v.Value.Scalar)
}

func TestDeleteInstanceNotFound(t *testing.T) {
	s := New()
	require.NoError(t, s.AddNamespace("root/cimv2"))

	path := cim.NewInstanceName("CIM_A")
	path.Keybindings.Set("Name", cim.NewString("missing"))

	err := s.DeleteInstance("root/cimv2", path)
	require.Error(t, err)
	code, _ := cimerrors.CodeOf(err)
	assert.Equal(t, cimerrors.NotFound, code)
}

func TestDeleteInstancesOfClasses(t *testing.T) {
	s := New()
	require.NoError(t, s.AddNamespace("root/cimv2"))
	require.NoError(t, s.CreateInstance("root/cimv2", newTestInstance("CIM_A", "a1")))
	require.NoError(t, s.CreateInstance("root/cimv2", newTestInstance("CIM_B", "b1")))

	require.NoError(t, s.DeleteInstancesOfClasses("root/cimv2", map[string]bool{"cim_a": true}))

	insts, err := s.IterInstances("root/cimv2")
	require.NoError(t, err)
	require.Len(t, insts, 1)
	assert.Equal(t, "CIM_B", insts[0].ClassName)
}

func TestIterInstancesStableOrder(t *testing.T) {
	s := New()
	require.NoError(t, s.AddNamespace("root/cimv2"))
	require.NoError(t, s.CreateInstance("root/cimv2", newTestInstance("CIM_A", "b1")))
	require.NoError(t, s.CreateInstance("root/cimv2", newTestInstance("CIM_A", "a1")))

	first, err := s.IterInstances("root/cimv2")
	require.NoError(t, err)
	second, err := s.IterInstances("root/cimv2")
	require.NoError(t, err)

	require.Len(t, first, 2)
	assert.Equal(t, first[0].Path.StoreKey(), second[0].Path.StoreKey())
	assert.Equal(t, first[1].Path.StoreKey(), second[1].Path.StoreKey())
}
