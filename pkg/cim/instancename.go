package cim

// InstanceName is an instance path: {classname, namespace?, host?,
// keybindings}, where keybindings maps key-property names to typed values
// (spec.md §3).
type InstanceName struct {
	ClassName string
	Namespace string
	Host      string

	Keybindings *OrderedMap[Value]
}

// NewInstanceName returns an instance name with an initialized, empty
// keybinding map.
func NewInstanceName(className string) *InstanceName {
	return &InstanceName{
		ClassName:   className,
		Keybindings: NewOrderedMap[Value](),
	}
}

// Equal implements path equality per invariant: classnames match
// case-insensitively and keybindings match as a case-insensitive map with
// value equality per CIM type rules. Namespace and host are not part of
// instance-name identity within a single namespace's store (the Datastore
// keys instances by path within one namespace already); callers comparing
// across namespaces should check Namespace themselves.
func (n *InstanceName) Equal(other *InstanceName) bool {
	if n == nil || other == nil {
		return n == other
	}
	if !EqualFold(n.ClassName, other.ClassName) {
		return false
	}
	if n.Keybindings.Len() != other.Keybindings.Len() {
		return false
	}
	equal := true
	n.Keybindings.Range(func(name string, value Value) bool {
		otherValue, ok := other.Keybindings.Get(name)
		if !ok || !value.Equal(otherValue) {
			equal = false
			return false
		}
		return true
	})
	return equal
}

// Clone returns a deep copy of the instance name.
func (n *InstanceName) Clone() *InstanceName {
	if n == nil {
		return nil
	}
	return &InstanceName{
		ClassName:   n.ClassName,
		Namespace:   n.Namespace,
		Host:        n.Host,
		Keybindings: CloneValueMap(n.Keybindings),
	}
}

// NewValueMap returns an empty, case-insensitive ordered map of values,
// used for keybindings.
func NewValueMap() *OrderedMap[Value] {
	return NewOrderedMap[Value]()
}

// CloneValueMap deep-copies a value OrderedMap, returning nil for a nil
// input.
func CloneValueMap(m *OrderedMap[Value]) *OrderedMap[Value] {
	if m == nil {
		return nil
	}
	return m.Clone(Value.Clone)
}

// StoreKey returns the case-insensitive key used to index this path in an
// instance store: the lower-cased classname followed by the lower-cased,
// order-independent keybinding set. Two paths that are Equal always
// produce the same StoreKey and vice versa.
func (n *InstanceName) StoreKey() string {
	key := toLower(n.ClassName) + "|"
	names := n.Keybindings.Keys()
	sorted := sortedLower(names)
	for _, name := range sorted {
		v, _ := n.Keybindings.Get(name)
		key += toLower(name) + "=" + valueKeyString(v) + ";"
	}
	return key
}
