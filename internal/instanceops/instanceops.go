// Package instanceops implements Instance Operations (spec.md §4.5):
// create/get/modify/delete/enumerate instance and instance names, schema
// conformance, key handling, and path construction.
package instanceops

import (
	"strings"

	"go.datum.net/cimrepo/internal/classops"
	"go.datum.net/cimrepo/internal/cimerrors"
	"go.datum.net/cimrepo/internal/nsmgr"
	"go.datum.net/cimrepo/internal/store"
	"go.datum.net/cimrepo/pkg/cim"
)

// Ops implements instance-level operations against a Store.
type Ops struct {
	store    *store.Store
	classops *classops.Ops
	nsmgr    *nsmgr.Manager
}

// New returns an Ops backed by s, using c to resolve class shapes and m to
// apply the namespace-creation side effect.
func New(s *store.Store, c *classops.Ops, m *nsmgr.Manager) *Ops {
	return &Ops{store: s, classops: c, nsmgr: m}
}

// ShapeOptions controls instance-read filtering (spec.md §4.5).
type ShapeOptions struct {
	LocalOnly          bool
	IncludeQualifiers  bool
	IncludeClassOrigin bool
	PropertyList       []string
	HasPropertyList    bool
}

// Shape applies instance shaping to an already-cloned instance inst,
// mirroring class shaping: LocalOnly drops properties whose ClassOrigin
// differs from the instance's own classname; PropertyList then filters;
// IncludeClassOrigin=false clears ClassOrigin; IncludeQualifiers=false
// strips property-level qualifiers (deprecated, kept for compatibility).
func Shape(inst *cim.Instance, opts ShapeOptions) *cim.Instance {
	if opts.LocalOnly {
		for _, name := range inst.Properties.Keys() {
			p, _ := inst.Properties.Get(name)
			if p.ClassOrigin != "" && !strings.EqualFold(p.ClassOrigin, inst.ClassName) {
				inst.Properties.Delete(name)
			}
		}
	}
	if opts.HasPropertyList {
		keep := map[string]bool{}
		for _, name := range opts.PropertyList {
			keep[strings.ToLower(name)] = true
		}
		for _, name := range inst.Properties.Keys() {
			if !keep[strings.ToLower(name)] {
				inst.Properties.Delete(name)
			}
		}
	}
	if !opts.IncludeQualifiers {
		for _, name := range inst.Properties.Keys() {
			p, _ := inst.Properties.Get(name)
			p.Qualifiers = cim.NewQualifierMap()
			inst.Properties.Set(name, p)
		}
	}
	if !opts.IncludeClassOrigin {
		for _, name := range inst.Properties.Keys() {
			p, _ := inst.Properties.Get(name)
			p.ClassOrigin = ""
			inst.Properties.Set(name, p)
		}
	}
	return inst
}

func (o *Ops) resolveNamespace(ns string, path *cim.InstanceName) (string, error) {
	if path.Namespace == "" {
		path.Namespace = ns
		return ns, nil
	}
	if !strings.EqualFold(path.Namespace, ns) {
		return "", cimerrors.InvalidNamespaceErr("path namespace %q does not match requested namespace %q", path.Namespace, ns)
	}
	return ns, nil
}

// CreateInstance implements spec.md §4.5 CreateInstance, including the
// PG_Namespace/CIM_Namespace namespace-creation side effect.
func (o *Ops) CreateInstance(ns string, newInstance *cim.Instance) (*cim.InstanceName, error) {
	targetClass, err := o.classops.GetClass(ns, newInstance.ClassName, classops.ShapeOptions{
		IncludeQualifiers:  true,
		IncludeClassOrigin: true,
	})
	if err != nil {
		if code, ok := cimerrors.CodeOf(err); ok && code == cimerrors.NotFound {
			return nil, cimerrors.InvalidClassErr("class %q not found in namespace %q", newInstance.ClassName, ns)
		}
		return nil, err
	}

	inst := newInstance.Clone()

	var namespaceToCreate string
	if nsClassName, isNSClass := cim.NamespaceCreationClass(inst.ClassName); isNSClass {
		nameProp, exists := inst.Properties.Get(cim.NamespaceKeyName)
		if !exists || nameProp.Value.Scalar == nil {
			return nil, cimerrors.InvalidParameterErr(
				"namespace creation via CreateInstance: missing %q property in the %q instance", cim.NamespaceKeyName, inst.ClassName)
		}
		rawName, _ := nameProp.Value.Scalar.(string)
		namespaceToCreate = strings.Trim(rawName, "/")
		nameProp.Value.Scalar = namespaceToCreate
		inst.Properties.Set(cim.NamespaceKeyName, nameProp)

		setStringProperty(inst, cim.NamespaceKeyCreationClassName, nsClassName)
		setStringProperty(inst, cim.NamespaceKeyObjectManagerName, cim.NamespaceValueObjectManagerName)
		setStringProperty(inst, cim.NamespaceKeyObjectManagerCreationClassName, cim.NamespaceValueObjectManagerCreationClassName)
		setStringProperty(inst, cim.NamespaceKeySystemName, cim.NamespaceValueSystemName)
		setStringProperty(inst, cim.NamespaceKeySystemCreationClassName, cim.NamespaceValueSystemCreationClassName)
	}

	for _, kp := range targetClass.KeyProperties() {
		if !inst.Properties.Has(kp.Name) {
			return nil, cimerrors.InvalidParameterErr("key property %q not present in new instance", kp.Name)
		}
	}

	for _, propName := range inst.Properties.Keys() {
		cprop, declared := targetClass.Properties.Get(propName)
		if !declared {
			return nil, cimerrors.InvalidParameterErr(
				"property %q specified in new instance is not exposed by class %q in namespace %q", propName, targetClass.Name, ns)
		}
		iprop, _ := inst.Properties.Get(propName)
		if !iprop.Value.SameTypeShape(cprop.Value) {
			return nil, cimerrors.InvalidParameterErr(
				"instance and class property %q types do not match", propName)
		}
		if cprop.Name != propName {
			inst.Properties.Rename(cprop.Name)
		}
	}

	for _, cpropName := range targetClass.Properties.Keys() {
		if inst.Properties.Has(cpropName) {
			continue
		}
		cprop, _ := targetClass.Properties.Get(cpropName)
		filled := cprop
		if cprop.DefaultValue != nil {
			filled.Value = cprop.DefaultValue.Clone()
		} else {
			filled.Value.Null = true
		}
		filled.Qualifiers = cim.NewQualifierMap()
		inst.Properties.Set(cpropName, filled)
	}

	inst.Path = buildPath(targetClass, inst, ns)

	if exists, err := o.store.InstanceExists(ns, inst.Path); err != nil {
		return nil, err
	} else if exists {
		return nil, cimerrors.AlreadyExistsErr("instance %q already exists in namespace %q", inst.Path.ClassName, ns)
	}

	if namespaceToCreate != "" {
		if err := o.nsmgr.Add(namespaceToCreate); err != nil {
			return nil, err
		}
	}

	if err := o.store.CreateInstance(ns, inst); err != nil {
		return nil, err
	}

	return inst.Path.Clone(), nil
}

func setStringProperty(inst *cim.Instance, name, value string) {
	p, exists := inst.Properties.Get(name)
	if !exists {
		p = cim.Property{Name: name, Qualifiers: cim.NewQualifierMap()}
	}
	p.Value = cim.NewString(value)
	inst.Properties.Set(name, p)
}

func buildPath(class *cim.Class, inst *cim.Instance, ns string) *cim.InstanceName {
	path := cim.NewInstanceName(class.Name)
	path.Namespace = ns
	for _, kp := range class.KeyProperties() {
		if v, ok := inst.Properties.Get(kp.Name); ok {
			path.Keybindings.Set(kp.Name, v.Value.Clone())
		}
	}
	return path
}

// ModifyInstance implements spec.md §4.5 ModifyInstance.
func (o *Ops) ModifyInstance(ns string, modifiedInstance *cim.Instance, includeQualifiers bool, propertyList []string, hasPropertyList bool) error {
	if hasPropertyList && len(propertyList) == 0 {
		return nil
	}

	mod := modifiedInstance.Clone()
	if _, err := o.resolveNamespace(ns, mod.Path); err != nil {
		return err
	}
	if !strings.EqualFold(mod.ClassName, mod.Path.ClassName) {
		return cimerrors.InvalidParameterErr("modified instance classname %q does not match path classname %q", mod.ClassName, mod.Path.ClassName)
	}

	targetClass, err := o.classops.GetClass(ns, mod.ClassName, classops.ShapeOptions{IncludeQualifiers: true, IncludeClassOrigin: true})
	if err != nil {
		if code, ok := cimerrors.CodeOf(err); ok && code == cimerrors.NotFound {
			return cimerrors.InvalidClassErr("class %q not found in namespace %q", mod.ClassName, ns)
		}
		return err
	}

	original, err := o.store.GetInstance(ns, mod.Path)
	if err != nil {
		return err
	}

	dedupedList := dedupCaseInsensitive(propertyList)
	for _, name := range dedupedList {
		if !targetClass.Properties.Has(name) {
			return cimerrors.InvalidParameterErr("property %q in property list is not declared by class %q", name, mod.ClassName)
		}
	}
	for _, name := range mod.Properties.Keys() {
		if !targetClass.Properties.Has(name) {
			return cimerrors.InvalidParameterErr("property %q in modified instance is not declared by class %q", name, mod.ClassName)
		}
	}

	for _, name := range mod.Properties.Keys() {
		newVal, _ := mod.Properties.Get(name)
		if origVal, has := original.Properties.Get(name); has && origVal.Value.Equal(newVal.Value) {
			mod.Properties.Delete(name)
		}
	}

	for _, kp := range targetClass.KeyProperties() {
		if mod.Properties.Has(kp.Name) {
			return cimerrors.InvalidParameterErr("key property %q may not be modified", kp.Name)
		}
	}

	if hasPropertyList {
		keep := map[string]bool{}
		for _, name := range dedupedList {
			keep[strings.ToLower(name)] = true
		}
		for _, name := range mod.Properties.Keys() {
			if !keep[strings.ToLower(name)] {
				mod.Properties.Delete(name)
			}
		}
	}

	for _, name := range mod.Properties.Keys() {
		cprop, _ := targetClass.Properties.Get(name)
		newVal, _ := mod.Properties.Get(name)
		if !newVal.Value.SameTypeShape(cprop.Value) {
			return cimerrors.InvalidParameterErr("instance and class property %q types do not match", name)
		}
		if cprop.Name != name {
			mod.Properties.Rename(cprop.Name)
		}
	}

	result := original.Clone()
	for _, name := range mod.Properties.Keys() {
		v, _ := mod.Properties.Get(name)
		result.Properties.Set(name, v)
	}
	_ = includeQualifiers // instance-level qualifiers are deprecated/ignored per spec.md §3

	return o.store.UpdateInstance(ns, result)
}

func dedupCaseInsensitive(names []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, n := range names {
		key := strings.ToLower(n)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}

// GetInstance implements spec.md §4.5 GetInstance.
func (o *Ops) GetInstance(ns string, iname *cim.InstanceName, opts ShapeOptions) (*cim.Instance, error) {
	path := iname.Clone()
	if _, err := o.resolveNamespace(ns, path); err != nil {
		return nil, err
	}
	if exists, err := o.store.ClassExists(ns, path.ClassName); err != nil {
		return nil, err
	} else if !exists {
		return nil, cimerrors.InvalidClassErr("class %q not found in namespace %q", path.ClassName, ns)
	}
	inst, err := o.store.GetInstance(ns, path)
	if err != nil {
		return nil, err
	}
	return Shape(inst, opts), nil
}

// DeleteInstance implements spec.md §4.5 DeleteInstance, including the
// namespace-removal side effect for namespace-creation classes.
func (o *Ops) DeleteInstance(ns string, iname *cim.InstanceName) error {
	path := iname.Clone()
	if _, err := o.resolveNamespace(ns, path); err != nil {
		return err
	}
	if exists, err := o.store.ClassExists(ns, path.ClassName); err != nil {
		return err
	} else if !exists {
		return cimerrors.InvalidClassErr("class %q not found in namespace %q", path.ClassName, ns)
	}

	inst, err := o.store.GetInstance(ns, path)
	if err != nil {
		return err
	}

	if _, isNSClass := cim.NamespaceCreationClass(path.ClassName); isNSClass {
		if nameVal, ok := inst.Properties.Get(cim.NamespaceKeyName); ok {
			if name, ok := nameVal.Value.Scalar.(string); ok && name != "" {
				if err := o.nsmgr.Remove(name); err != nil {
					return err
				}
			}
		}
	}

	return o.store.DeleteInstance(ns, path)
}

// EnumerateInstances implements spec.md §4.5 EnumerateInstances.
// deepInheritance has no default here; every caller passes it explicitly.
func (o *Ops) EnumerateInstances(ns, className string, localOnly, deepInheritance bool, opts ShapeOptions) ([]*cim.Instance, error) {
	nameSet, err := o.classops.DeepSubclassNameSet(ns, className)
	if err != nil {
		return nil, err
	}

	effective := opts
	if !deepInheritance {
		targetClass, err := o.store.GetClass(ns, className)
		if err != nil {
			return nil, err
		}
		base := opts.PropertyList
		if !opts.HasPropertyList {
			base = targetClass.Properties.Keys()
		}
		var intersected []string
		for _, name := range base {
			if targetClass.Properties.Has(name) {
				intersected = append(intersected, name)
			}
		}
		effective.PropertyList = intersected
		effective.HasPropertyList = true
	}
	effective.LocalOnly = localOnly

	all, err := o.store.IterInstances(ns)
	if err != nil {
		return nil, err
	}
	var out []*cim.Instance
	for _, inst := range all {
		if nameSet[strings.ToLower(inst.ClassName)] {
			out = append(out, Shape(inst, effective))
		}
	}
	return out, nil
}

// EnumerateInstanceNames implements spec.md §4.5 EnumerateInstanceNames.
func (o *Ops) EnumerateInstanceNames(ns, className string) ([]*cim.InstanceName, error) {
	nameSet, err := o.classops.DeepSubclassNameSet(ns, className)
	if err != nil {
		return nil, err
	}
	all, err := o.store.IterInstances(ns)
	if err != nil {
		return nil, err
	}
	var out []*cim.InstanceName
	for _, inst := range all {
		if nameSet[strings.ToLower(inst.ClassName)] {
			out = append(out, inst.Path.Clone())
		}
	}
	return out, nil
}
