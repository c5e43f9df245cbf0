package cim

// Class is {classname, superclass?, qualifiers, properties, methods},
// namespace-scoped and identified by classname case-insensitively
// (spec.md §3).
type Class struct {
	Name       string
	Superclass string // empty when the class has no superclass

	Qualifiers *OrderedMap[Qualifier]
	Properties *OrderedMap[Property]
	Methods    *OrderedMap[Method]
}

// NewClass returns an empty class with initialized, empty member maps.
func NewClass(name, superclass string) *Class {
	return &Class{
		Name:       name,
		Superclass: superclass,
		Qualifiers: NewQualifierMap(),
		Properties: NewPropertyMap(),
		Methods:    NewMethodMap(),
	}
}

// HasSuperclass reports whether the class declares a superclass.
func (c *Class) HasSuperclass() bool {
	return c.Superclass != ""
}

// IsAssociation reports whether the class carries the Association
// qualifier (spec.md §4.7).
func (c *Class) IsAssociation() bool {
	return HasQualifier(c.Qualifiers, QualifierAssociation)
}

// KeyProperties returns the properties, in declared order, that carry the
// Key qualifier.
func (c *Class) KeyProperties() []Property {
	var keys []Property
	c.Properties.Range(func(_ string, p Property) bool {
		if p.IsKey() {
			keys = append(keys, p)
		}
		return true
	})
	return keys
}

// ReferenceProperties returns the properties, in declared order, whose
// type is TypeReference.
func (c *Class) ReferenceProperties() []Property {
	var refs []Property
	c.Properties.Range(func(_ string, p Property) bool {
		if p.Value.Type == TypeReference {
			refs = append(refs, p)
		}
		return true
	})
	return refs
}

// Clone returns a deep copy of the class.
func (c *Class) Clone() *Class {
	return &Class{
		Name:       c.Name,
		Superclass: c.Superclass,
		Qualifiers: CloneQualifierMap(c.Qualifiers),
		Properties: ClonePropertyMap(c.Properties),
		Methods:    CloneMethodMap(c.Methods),
	}
}

// ClassName is a reference to a class by name, optionally qualified by
// namespace and host (spec.md §4.7.5).
type ClassName struct {
	Name      string
	Namespace string
	Host      string
}
