package store

import "go.datum.net/cimrepo/pkg/cim"

func newTestClass(name string) *cim.Class {
	c := cim.NewClass(name, "")
	c.Properties.Set("Name", cim.Property{Name: "Name", Value: cim.NewString("")})
	return c
}

func newTestInstance(className, keyValue string) *cim.Instance {
	inst := cim.NewInstance(className)
	inst.Properties.Set("Name", cim.Property{Name: "Name", Value: cim.NewString(keyValue)})
	inst.Path = cim.NewInstanceName(className)
	inst.Path.Keybindings.Set("Name", cim.NewString(keyValue))
	return inst
}
