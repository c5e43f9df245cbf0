package cim

// Instance is {classname, properties, path}. Instance-level qualifiers are
// deprecated and not honored: any present are ignored on write (spec.md
// §3), so this type carries none.
type Instance struct {
	ClassName  string
	Properties *OrderedMap[Property]
	Path       *InstanceName
}

// NewInstance returns an instance with an initialized, empty property map.
func NewInstance(className string) *Instance {
	return &Instance{
		ClassName:  className,
		Properties: NewPropertyMap(),
	}
}

// Clone returns a deep copy of the instance, including its path.
func (i *Instance) Clone() *Instance {
	if i == nil {
		return nil
	}
	return &Instance{
		ClassName:  i.ClassName,
		Properties: ClonePropertyMap(i.Properties),
		Path:       i.Path.Clone(),
	}
}
