package cim

// Parameter is a named, typed formal parameter of a method.
type Parameter struct {
	Name       string
	Value      Value
	Qualifiers *OrderedMap[Qualifier]
}

// Clone returns a deep copy of the parameter.
func (p Parameter) Clone() Parameter {
	out := p
	out.Value = p.Value.Clone()
	out.Qualifiers = CloneQualifierMap(p.Qualifiers)
	return out
}

// NewParameterMap returns an empty, case-insensitive ordered map of
// parameters.
func NewParameterMap() *OrderedMap[Parameter] {
	return NewOrderedMap[Parameter]()
}

// CloneParameterMap deep-copies a parameter OrderedMap, returning nil for a
// nil input.
func CloneParameterMap(m *OrderedMap[Parameter]) *OrderedMap[Parameter] {
	if m == nil {
		return nil
	}
	return m.Clone(Parameter.Clone)
}

// Method is a named operation exposed by a class:
// {name, return_type, parameters, qualifiers, class_origin, propagated}
// (spec.md §3).
type Method struct {
	Name       string
	ReturnType Type
	Parameters *OrderedMap[Parameter]
	Qualifiers *OrderedMap[Qualifier]

	ClassOrigin string
	Propagated  bool
}

// Clone returns a deep copy of the method.
func (m Method) Clone() Method {
	out := m
	out.Parameters = CloneParameterMap(m.Parameters)
	out.Qualifiers = CloneQualifierMap(m.Qualifiers)
	return out
}

// NewMethodMap returns an empty, case-insensitive ordered map of methods.
func NewMethodMap() *OrderedMap[Method] {
	return NewOrderedMap[Method]()
}

// CloneMethodMap deep-copies a method OrderedMap, returning nil for a nil
// input.
func CloneMethodMap(m *OrderedMap[Method]) *OrderedMap[Method] {
	if m == nil {
		return nil
	}
	return m.Clone(Method.Clone)
}
