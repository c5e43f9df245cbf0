// Package cim implements the CIM object model: qualifiers, classes,
// instances, and the case-insensitive ordered collections that hold their
// members, per DSP0004/DSP0200.
package cim

import "strings"

// OrderedMap is a case-insensitive map that preserves insertion order and
// the original casing of each key. It backs qualifiers, properties,
// methods, parameters, and keybindings, all of which the spec requires to
// behave as "ordered maps keyed by a normalized (lower-cased) key with the
// original casing carried in the value" (never as two separate
// dictionaries).
type OrderedMap[V any] struct {
	order []string       // lower-cased keys, in insertion order
	cased map[string]string
	data  map[string]V
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{
		cased: make(map[string]string),
		data:  make(map[string]V),
	}
}

// Set inserts or overwrites the value for name. The first casing used for a
// given name is preserved across overwrites; use Rename to change it.
func (m *OrderedMap[V]) Set(name string, value V) {
	key := strings.ToLower(name)
	if _, exists := m.data[key]; !exists {
		m.order = append(m.order, key)
		m.cased[key] = name
	}
	m.data[key] = value
}

// Rename updates the casing recorded for an existing key without changing
// its position or value. It is a no-op if the key is absent.
func (m *OrderedMap[V]) Rename(name string) {
	key := strings.ToLower(name)
	if _, exists := m.data[key]; exists {
		m.cased[key] = name
	}
}

// Get returns the value stored for name and whether it was present.
func (m *OrderedMap[V]) Get(name string) (V, bool) {
	v, ok := m.data[strings.ToLower(name)]
	return v, ok
}

// Has reports whether name is present, case-insensitively.
func (m *OrderedMap[V]) Has(name string) bool {
	_, ok := m.data[strings.ToLower(name)]
	return ok
}

// Delete removes name, case-insensitively. It reports whether it was
// present.
func (m *OrderedMap[V]) Delete(name string) bool {
	key := strings.ToLower(name)
	if _, exists := m.data[key]; !exists {
		return false
	}
	delete(m.data, key)
	delete(m.cased, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int {
	return len(m.order)
}

// Keys returns the original-cased keys, in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	keys := make([]string, 0, len(m.order))
	for _, k := range m.order {
		keys = append(keys, m.cased[k])
	}
	return keys
}

// Values returns the values, in the same order as Keys.
func (m *OrderedMap[V]) Values() []V {
	values := make([]V, 0, len(m.order))
	for _, k := range m.order {
		values = append(values, m.data[k])
	}
	return values
}

// Range calls fn for every entry in insertion order. It stops early if fn
// returns false.
func (m *OrderedMap[V]) Range(fn func(name string, value V) bool) {
	for _, k := range m.order {
		if !fn(m.cased[k], m.data[k]) {
			return
		}
	}
}

// Clone returns a copy of the map whose values are produced by cloneValue,
// preserving order and original casing.
func (m *OrderedMap[V]) Clone(cloneValue func(V) V) *OrderedMap[V] {
	out := NewOrderedMap[V]()
	m.Range(func(name string, value V) bool {
		out.Set(name, cloneValue(value))
		return true
	})
	return out
}
