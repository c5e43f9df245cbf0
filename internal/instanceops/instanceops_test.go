package instanceops

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.datum.net/cimrepo/internal/classops"
	"go.datum.net/cimrepo/internal/cimerrors"
	"go.datum.net/cimrepo/internal/nsmgr"
	"go.datum.net/cimrepo/internal/schemaresolver"
	"go.datum.net/cimrepo/internal/store"
	"go.datum.net/cimrepo/pkg/cim"
)

const ns = "root/cimv2"

func keyedProperty(name string) cim.Property {
	m := cim.NewQualifierMap()
	m.Set(cim.QualifierKey, cim.Qualifier{Name: cim.QualifierKey, Value: cim.NewBoolean(true)})
	return cim.Property{Name: name, Value: cim.NewString(""), Qualifiers: m}
}

func newFixture(t *testing.T) (*Ops, *classops.Ops, *nsmgr.Manager) {
	t.Helper()
	s := store.New()
	require.NoError(t, s.AddNamespace(ns))
	require.NoError(t, s.SetQualifierDecl(ns, &cim.QualifierDeclaration{
		Name:   cim.QualifierKey,
		Type:   cim.TypeBoolean,
		Scopes: []cim.QualifierScope{cim.ScopeProperty, cim.ScopeReference},
	}))
	resolver := schemaresolver.New(s)
	cops := classops.New(s, resolver)
	nm := nsmgr.New(s)
	o := New(s, cops, nm)

	c := cim.NewClass("CIM_A", "")
	c.Properties.Set("Name", keyedProperty("Name"))
	c.Properties.Set("Description", cim.Property{Name: "Description", Value: cim.NewString("")})
	require.NoError(t, cops.CreateClass(ns, c))

	return o, cops, nm
}

func newFixtureInstance(key string) *cim.Instance {
	inst := cim.NewInstance("CIM_A")
	inst.Properties.Set("Name", cim.Property{Name: "Name", Value: cim.NewString(key)})
	return inst
}

func TestCreateInstanceMissingKeyFails(t *testing.T) {
	o, _, _ := newFixture(t)

	inst := cim.NewInstance("CIM_A")
	_, err := o.CreateInstance(ns, inst)
	require.Error(t, err)
	code, _ := cimerrors.CodeOf(err)
	assert.Equal(t, cimerrors.InvalidParameter, code)
}

func TestCreateInstanceUnknownClassFails(t *testing.T) {
	o, _, _ := newFixture(t)

	inst := cim.NewInstance("CIM_MISSING")
	_, err := o.CreateInstance(ns, inst)
	require.Error(t, err)
	code, _ := cimerrors.CodeOf(err)
	assert.Equal(t, cimerrors.InvalidClass, code)
}

func TestCreateInstanceUndeclaredPropertyFails(t *testing.T) {
	o, _, _ := newFixture(t)

	inst := newFixtureInstance("a1")
	inst.Properties.Set("Bogus", cim.Property{Name: "Bogus", Value: cim.NewString("x")})
	_, err := o.CreateInstance(ns, inst)
	require.Error(t, err)
	code, _ := cimerrors.CodeOf(err)
	assert.Equal(t, cimerrors.InvalidParameter, code)
}

func TestCreateInstanceFillsDefaults(t *testing.T) {
	o, _, _ := newFixture(t)

	path, err := o.CreateInstance(ns, newFixtureInstance("a1"))
	require.NoError(t, err)

	got, err := o.GetInstance(ns, path, ShapeOptions{})
	require.NoError(t, err)
	desc, ok := got.Properties.Get("Description")
	require.True(t, ok)
	assert.True(t, desc.Value.Null)
}

func fixedArrayProperty(name string, size uint32) cim.Property {
	return cim.Property{Name: name, Value: cim.Value{Type: cim.TypeString, IsArray: true, ArraySize: &size}}
}

func TestCreateInstanceArraySizeMismatchFails(t *testing.T) {
	o, cops, _ := newFixture(t)

	sized := cim.NewClass("CIM_SIZED", "")
	sized.Properties.Set("Name", keyedProperty("Name"))
	sized.Properties.Set("Tags", fixedArrayProperty("Tags", 3))
	require.NoError(t, cops.CreateClass(ns, sized))

	wrongSize := uint32(2)
	inst := cim.NewInstance("CIM_SIZED")
	inst.Properties.Set("Name", cim.Property{Name: "Name", Value: cim.NewString("s1")})
	inst.Properties.Set("Tags", cim.Property{Name: "Tags", Value: cim.Value{
		Type: cim.TypeString, IsArray: true, ArraySize: &wrongSize, Array: []any{"a", "b"},
	}})

	_, err := o.CreateInstance(ns, inst)
	require.Error(t, err)
	code, _ := cimerrors.CodeOf(err)
	assert.Equal(t, cimerrors.InvalidParameter, code)
}

func TestModifyInstanceArraySizeMismatchFails(t *testing.T) {
	o, cops, _ := newFixture(t)

	sized := cim.NewClass("CIM_SIZED", "")
	sized.Properties.Set("Name", keyedProperty("Name"))
	sized.Properties.Set("Tags", fixedArrayProperty("Tags", 3))
	require.NoError(t, cops.CreateClass(ns, sized))

	size3 := uint32(3)
	inst := cim.NewInstance("CIM_SIZED")
	inst.Properties.Set("Name", cim.Property{Name: "Name", Value: cim.NewString("s1")})
	inst.Properties.Set("Tags", cim.Property{Name: "Tags", Value: cim.Value{
		Type: cim.TypeString, IsArray: true, ArraySize: &size3, Array: []any{"a", "b", "c"},
	}})
	path, err := o.CreateInstance(ns, inst)
	require.NoError(t, err)

	wrongSize := uint32(5)
	mod := cim.NewInstance("CIM_SIZED")
	mod.Path = path
	mod.Properties.Set("Tags", cim.Property{Name: "Tags", Value: cim.Value{
		Type: cim.TypeString, IsArray: true, ArraySize: &wrongSize, Array: []any{"a", "b", "c", "d", "e"},
	}})

	err = o.ModifyInstance(ns, mod, false, nil, false)
	require.Error(t, err)
	code, _ := cimerrors.CodeOf(err)
	assert.Equal(t, cimerrors.InvalidParameter, code)
}

func TestCreateInstanceDuplicatePathFails(t *testing.T) {
	o, _, _ := newFixture(t)

	_, err := o.CreateInstance(ns, newFixtureInstance("a1"))
	require.NoError(t, err)

	_, err = o.CreateInstance(ns, newFixtureInstance("a1"))
	require.Error(t, err)
	code, _ := cimerrors.CodeOf(err)
	assert.Equal(t, cimerrors.AlreadyExists, code)
}

func TestCreateInstanceNamespaceCreationSideEffect(t *testing.T) {
	o, cops, nm := newFixture(t)

	nsClass := cim.NewClass(cim.NamespaceClassPG, "")
	nsClass.Properties.Set(cim.NamespaceKeyName, keyedProperty(cim.NamespaceKeyName))
	for _, name := range []string{
		cim.NamespaceKeyCreationClassName,
		cim.NamespaceKeyObjectManagerName,
		cim.NamespaceKeyObjectManagerCreationClassName,
		cim.NamespaceKeySystemName,
		cim.NamespaceKeySystemCreationClassName,
	} {
		nsClass.Properties.Set(name, cim.Property{Name: name, Value: cim.NewString("")})
	}
	require.NoError(t, cops.CreateClass(ns, nsClass))

	inst := cim.NewInstance(cim.NamespaceClassPG)
	inst.Properties.Set(cim.NamespaceKeyName, cim.Property{Name: cim.NamespaceKeyName, Value: cim.NewString("root/new_ns")})
	_, err := o.CreateInstance(ns, inst)
	require.NoError(t, err)

	assert.NoError(t, nm.Validate("root/new_ns"))
}

func TestModifyInstanceKeyPropertyImmutable(t *testing.T) {
	o, _, _ := newFixture(t)
	path, err := o.CreateInstance(ns, newFixtureInstance("a1"))
	require.NoError(t, err)

	mod := cim.NewInstance("CIM_A")
	mod.Path = path
	mod.Properties.Set("Name", cim.Property{Name: "Name", Value: cim.NewString("a2")})

	err = o.ModifyInstance(ns, mod, false, nil, false)
	require.Error(t, err)
	code, _ := cimerrors.CodeOf(err)
	assert.Equal(t, cimerrors.InvalidParameter, code)
}

func TestModifyInstanceEmptyPropertyListIsNoOp(t *testing.T) {
	o, _, _ := newFixture(t)
	path, err := o.CreateInstance(ns, newFixtureInstance("a1"))
	require.NoError(t, err)

	mod := cim.NewInstance("CIM_A")
	mod.Path = path
	mod.Properties.Set("Description", cim.Property{Name: "Description", Value: cim.NewString("changed")})

	require.NoError(t, o.ModifyInstance(ns, mod, false, nil, true))

	got, err := o.GetInstance(ns, path, ShapeOptions{})
	require.NoError(t, err)
	desc, _ := got.Properties.Get("Description")
	assert.True(t, desc.Value.Null)
}

func TestModifyInstanceUpdatesDeclaredProperty(t *testing.T) {
	o, _, _ := newFixture(t)
	path, err := o.CreateInstance(ns, newFixtureInstance("a1"))
	require.NoError(t, err)

	mod := cim.NewInstance("CIM_A")
	mod.Path = path
	mod.Properties.Set("Description", cim.Property{Name: "Description", Value: cim.NewString("changed")})

	require.NoError(t, o.ModifyInstance(ns, mod, false, nil, false))

	got, err := o.GetInstance(ns, path, ShapeOptions{})
	require.NoError(t, err)
	desc, _ := got.Properties.Get("Description")
	assert.Equal(t, "changed", desc.Value.Scalar)
}

func TestGetInstanceNotFound(t *testing.T) {
	o, _, _ := newFixture(t)

	path := cim.NewInstanceName("CIM_A")
	path.Keybindings.Set("Name", cim.NewString("missing"))
	_, err := o.GetInstance(ns, path, ShapeOptions{})
	require.Error(t, err)
	code, _ := cimerrors.CodeOf(err)
	assert.Equal(t, cimerrors.NotFound, code)
}

func TestDeleteInstanceRemovesNamespaceSideEffect(t *testing.T) {
	o, cops, nm := newFixture(t)

	nsClass := cim.NewClass(cim.NamespaceClassCIM, "")
	nsClass.Properties.Set(cim.NamespaceKeyName, keyedProperty(cim.NamespaceKeyName))
	for _, name := range []string{
		cim.NamespaceKeyCreationClassName,
		cim.NamespaceKeyObjectManagerName,
		cim.NamespaceKeyObjectManagerCreationClassName,
		cim.NamespaceKeySystemName,
		cim.NamespaceKeySystemCreationClassName,
	} {
		nsClass.Properties.Set(name, cim.Property{Name: name, Value: cim.NewString("")})
	}
	require.NoError(t, cops.CreateClass(ns, nsClass))

	inst := cim.NewInstance(cim.NamespaceClassCIM)
	inst.Properties.Set(cim.NamespaceKeyName, cim.Property{Name: cim.NamespaceKeyName, Value: cim.NewString("root/doomed")})
	path, err := o.CreateInstance(ns, inst)
	require.NoError(t, err)
	require.NoError(t, nm.Validate("root/doomed"))

	require.NoError(t, o.DeleteInstance(ns, path))
	assert.Error(t, nm.Validate("root/doomed"))
}

func TestEnumerateInstancesShallowIntersectsPropertyList(t *testing.T) {
	o, cops, _ := newFixture(t)

	sub := cim.NewClass("CIM_SUB", "CIM_A")
	sub.Properties.Set("Extra", cim.Property{Name: "Extra", Value: cim.NewString("")})
	require.NoError(t, cops.CreateClass(ns, sub))

	_, err := o.CreateInstance(ns, newFixtureInstance("a1"))
	require.NoError(t, err)

	insts, err := o.EnumerateInstances(ns, "CIM_A", false, false, ShapeOptions{})
	require.NoError(t, err)
	require.Len(t, insts, 1)
	assert.False(t, insts[0].Properties.Has("Extra"), "shallow enumeration must not surface subclass-only properties")
}

func TestEnumerateInstanceNamesDeepInheritance(t *testing.T) {
	o, cops, _ := newFixture(t)

	sub := cim.NewClass("CIM_SUB", "CIM_A")
	require.NoError(t, cops.CreateClass(ns, sub))

	subInst := cim.NewInstance("CIM_SUB")
	subInst.Properties.Set("Name", cim.Property{Name: "Name", Value: cim.NewString("s1")})
	_, err := o.CreateInstance(ns, subInst)
	require.NoError(t, err)
	_, err = o.CreateInstance(ns, newFixtureInstance("a1"))
	require.NoError(t, err)

	names, err := o.EnumerateInstanceNames(ns, "CIM_A")
	require.NoError(t, err)
	assert.Len(t, names, 2)

	got := make([]string, len(names))
	for i, n := range names {
		got[i] = n.ClassName
	}
	sort.Strings(got)
	want := []string{"CIM_A", "CIM_SUB"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("enumerated class names diverged (-want +got):\n%s", diff)
	}
}
