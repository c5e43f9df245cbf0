package cim

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedMapCaseInsensitiveLookup(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("Name", 1)

	v, ok := m.Get("name")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = m.Get("NAME")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	assert.True(t, m.Has("nAmE"))
}

func TestOrderedMapPreservesFirstCasing(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("Name", 1)
	m.Set("NAME", 2)

	assert.Equal(t, []string{"Name"}, m.Keys())
	v, ok := m.Get("name")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestOrderedMapRename(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("Name", 1)
	m.Rename("NAME")

	assert.Equal(t, []string{"NAME"}, m.Keys())

	m.Rename("Missing")
	assert.Equal(t, []string{"NAME"}, m.Keys())
}

func TestOrderedMapPreservesInsertionOrder(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("c", 3)
	m.Set("a", 1)
	m.Set("b", 2)

	assert.Equal(t, []string{"c", "a", "b"}, m.Keys())
	assert.Equal(t, []int{3, 1, 2}, m.Values())
}

func TestOrderedMapDelete(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("a", 1)
	m.Set("b", 2)

	assert.True(t, m.Delete("A"))
	assert.False(t, m.Has("a"))
	assert.Equal(t, []string{"b"}, m.Keys())
	assert.Equal(t, 1, m.Len())

	assert.False(t, m.Delete("a"))
}

func TestOrderedMapRangeStopsEarly(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	var seen []string
	m.Range(func(name string, value int) bool {
		seen = append(seen, name)
		return name != "b"
	})

	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestOrderedMapCloneIsIndependent(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("a", 1)
	m.Set("b", 2)

	clone := m.Clone(func(v int) int { return v })
	clone.Set("c", 3)
	clone.Set("a", 100)

	assert.Equal(t, 2, m.Len())
	v, _ := m.Get("a")
	assert.Equal(t, 1, v)

	assert.Equal(t, 3, clone.Len())
	v, _ = clone.Get("a")
	assert.Equal(t, 100, v)
}

func TestOrderedMapCloneRoundTripsKeysAndValues(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("c", 3)
	m.Set("a", 1)
	m.Set("b", 2)

	clone := m.Clone(func(v int) int { return v })

	if diff := cmp.Diff(m.Keys(), clone.Keys()); diff != "" {
		t.Errorf("clone keys diverged from original (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(m.Values(), clone.Values()); diff != "" {
		t.Errorf("clone values diverged from original (-want +got):\n%s", diff)
	}
}
