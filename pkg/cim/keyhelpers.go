package cim

import (
	"fmt"
	"sort"
	"strings"
)

func toLower(s string) string {
	return strings.ToLower(s)
}

// sortedLower returns names sorted by their lower-cased form, so StoreKey
// is independent of keybinding insertion order.
func sortedLower(names []string) []string {
	out := append([]string(nil), names...)
	sort.Slice(out, func(i, j int) bool {
		return toLower(out[i]) < toLower(out[j])
	})
	return out
}

// valueKeyString renders a Value into a string suitable for use inside a
// map key. It is not a wire format: only StoreKey relies on its shape.
func valueKeyString(v Value) string {
	if v.Null {
		return "<null>"
	}
	if v.IsArray {
		parts := make([]string, len(v.Array))
		for i, elem := range v.Array {
			parts[i] = scalarKeyString(v.Type, elem)
		}
		return "[" + strings.Join(parts, ",") + "]"
	}
	return scalarKeyString(v.Type, v.Scalar)
}

func scalarKeyString(t Type, val any) string {
	if t == TypeReference {
		if name, ok := val.(*InstanceName); ok && name != nil {
			return "ref:" + name.StoreKey()
		}
		return "ref:<nil>"
	}
	return fmt.Sprintf("%v", val)
}
