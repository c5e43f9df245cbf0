package cim

// Property is a named, typed member of a class or instance:
// {name, type, is_array, array_size?, default_value?, qualifiers,
// class_origin, propagated} (spec.md §3).
type Property struct {
	Name string

	Value Value

	// DefaultValue is the class-declared default, filled into instances
	// that omit the property (spec.md §4.5 CreateInstance step 6). It is
	// nil for properties with no declared default.
	DefaultValue *Value

	Qualifiers *OrderedMap[Qualifier]

	// ClassOrigin is the name of the ancestor class that first declared
	// this property. Propagated is true when the property was copied down
	// from an ancestor rather than declared locally (invariant I3).
	ClassOrigin string
	Propagated  bool
}

// IsKey reports whether the property carries the Key qualifier.
func (p Property) IsKey() bool {
	return HasQualifier(p.Qualifiers, QualifierKey)
}

// Clone returns a deep copy of the property.
func (p Property) Clone() Property {
	out := p
	out.Value = p.Value.Clone()
	if p.DefaultValue != nil {
		dv := p.DefaultValue.Clone()
		out.DefaultValue = &dv
	}
	out.Qualifiers = CloneQualifierMap(p.Qualifiers)
	return out
}

// NewPropertyMap returns an empty, case-insensitive ordered map of
// properties.
func NewPropertyMap() *OrderedMap[Property] {
	return NewOrderedMap[Property]()
}

// ClonePropertyMap deep-copies a property OrderedMap, returning nil for a
// nil input.
func ClonePropertyMap(m *OrderedMap[Property]) *OrderedMap[Property] {
	if m == nil {
		return nil
	}
	return m.Clone(Property.Clone)
}
