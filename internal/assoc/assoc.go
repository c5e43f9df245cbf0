// Package assoc implements the Association Engine (spec.md §4.7):
// class-level and instance-level reference/associator traversal, and the
// four public operations that dispatch between them.
package assoc

import (
	"strings"

	"go.datum.net/cimrepo/internal/cimerrors"
	"go.datum.net/cimrepo/internal/classops"
	"go.datum.net/cimrepo/internal/store"
	"go.datum.net/cimrepo/pkg/cim"
)

// Ops implements association traversal against a Store.
type Ops struct {
	store    *store.Store
	classops *classops.Ops
	// host fills InstanceName.Host on returned paths whose Host is empty
	// (spec.md §4.7.5).
	host string
}

// New returns an Ops backed by s and c, filling host on instance paths it
// returns.
func New(s *store.Store, c *classops.Ops, host string) *Ops {
	return &Ops{store: s, classops: c, host: host}
}

func lowerSet(items []string) map[string]bool {
	set := map[string]bool{}
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}

// targetChain returns the lower-cased set of className and every one of
// its superclasses (spec.md §4.7.1).
func (o *Ops) targetChain(ns, className string) (map[string]bool, error) {
	chain, err := o.classops.SuperclassChain(ns, className)
	if err != nil {
		return nil, err
	}
	return lowerSet(chain), nil
}

// resultSet returns the lower-cased set of resultClass and every one of
// its subclasses, or an empty (non-nil) set if resultClass is "".
func (o *Ops) resultSet(ns, resultClass string) (map[string]bool, error) {
	if resultClass == "" {
		return map[string]bool{}, nil
	}
	set, err := o.classops.DeepSubclassNameSet(ns, resultClass)
	if err != nil {
		return nil, err
	}
	return set, nil
}

func (o *Ops) assocClasses(ns string) ([]*cim.Class, error) {
	all, err := o.store.IterClasses(ns)
	if err != nil {
		return nil, err
	}
	var out []*cim.Class
	for _, c := range all {
		if c.IsAssociation() {
			out = append(out, c)
		}
	}
	return out, nil
}

// ReferenceClassnames implements spec.md §4.7.1.
func (o *Ops) ReferenceClassnames(ns, targetClass, resultClass, role string) ([]string, error) {
	chain, err := o.targetChain(ns, targetClass)
	if err != nil {
		return nil, err
	}
	results, err := o.resultSet(ns, resultClass)
	if err != nil {
		return nil, err
	}
	assocs, err := o.assocClasses(ns)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var out []string
	for _, a := range assocs {
		for _, p := range a.ReferenceProperties() {
			if !chain[strings.ToLower(p.Value.ReferenceClass)] {
				continue
			}
			if len(results) > 0 && !results[strings.ToLower(a.Name)] {
				continue
			}
			if role != "" && !strings.EqualFold(p.Name, role) {
				continue
			}
			key := strings.ToLower(a.Name)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, a.Name)
		}
	}
	return out, nil
}

// ReferencePaths implements spec.md §4.7.2: instance-level reference
// paths pointing at targetInstanceName.
func (o *Ops) ReferencePaths(ns string, targetInstanceName *cim.InstanceName, resultClass, role string) ([]*cim.InstanceName, error) {
	results, err := o.resultSet(ns, resultClass)
	if err != nil {
		return nil, err
	}
	all, err := o.store.IterInstances(ns)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var out []*cim.InstanceName
	for _, inst := range all {
		for _, propName := range inst.Properties.Keys() {
			p, _ := inst.Properties.Get(propName)
			if p.Value.Type != cim.TypeReference || p.Value.Scalar == nil {
				continue
			}
			ref, ok := p.Value.Scalar.(*cim.InstanceName)
			if !ok || !ref.Equal(targetInstanceName) {
				continue
			}
			if len(results) > 0 && !results[strings.ToLower(inst.ClassName)] {
				continue
			}
			if role != "" && !strings.EqualFold(propName, role) {
				continue
			}
			key := inst.Path.StoreKey()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, inst.Path.Clone())
		}
	}
	return out, nil
}

// AssociatedClassnames implements spec.md §4.7.3.
func (o *Ops) AssociatedClassnames(ns, targetClass, assocClass, resultClass, role, resultRole string) ([]string, error) {
	assocSet, err := o.ReferenceClassnames(ns, targetClass, assocClass, role)
	if err != nil {
		return nil, err
	}
	assocSetLower := lowerSet(assocSet)

	results, err := o.resultSet(ns, resultClass)
	if err != nil {
		return nil, err
	}
	assocs, err := o.assocClasses(ns)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var out []string
	for _, a := range assocs {
		if len(assocSetLower) > 0 && !assocSetLower[strings.ToLower(a.Name)] {
			continue
		}
		counts := map[string]int{}
		for _, p := range a.ReferenceProperties() {
			counts[strings.ToLower(p.Value.ReferenceClass)]++
		}
		for _, p := range a.ReferenceProperties() {
			refClass := p.Value.ReferenceClass
			if len(results) > 0 && !results[strings.ToLower(refClass)] {
				continue
			}
			if resultRole != "" && !strings.EqualFold(p.Name, resultRole) {
				continue
			}
			if strings.EqualFold(refClass, targetClass) && counts[strings.ToLower(targetClass)] == 1 {
				continue
			}
			key := strings.ToLower(refClass)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, refClass)
		}
	}
	return out, nil
}

// AssociatedPaths implements spec.md §4.7.4.
func (o *Ops) AssociatedPaths(ns string, targetInstanceName *cim.InstanceName, assocClass, resultClass, role, resultRole string) ([]*cim.InstanceName, error) {
	refInstances, err := o.ReferencePaths(ns, targetInstanceName, assocClass, role)
	if err != nil {
		return nil, err
	}
	results, err := o.resultSet(ns, resultClass)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var out []*cim.InstanceName
	for _, refPath := range refInstances {
		inst, err := o.store.GetInstance(ns, refPath)
		if err != nil {
			continue
		}
		for _, propName := range inst.Properties.Keys() {
			p, _ := inst.Properties.Get(propName)
			if p.Value.Type != cim.TypeReference || p.Value.Scalar == nil {
				continue
			}
			candidate, ok := p.Value.Scalar.(*cim.InstanceName)
			if !ok || candidate.Equal(targetInstanceName) {
				continue
			}
			if len(results) > 0 && !results[strings.ToLower(candidate.ClassName)] {
				continue
			}
			if resultRole != "" && !strings.EqualFold(propName, resultRole) {
				continue
			}
			key := candidate.StoreKey()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, candidate.Clone())
		}
	}
	return out, nil
}

func (o *Ops) fillHost(path *cim.InstanceName) *cim.InstanceName {
	if path.Host == "" {
		path.Host = o.host
	}
	return path
}

func (o *Ops) requireClass(ns, className, label string) error {
	if className == "" {
		return nil
	}
	exists, err := o.store.ClassExists(ns, className)
	if err != nil {
		return err
	}
	if !exists {
		return cimerrors.InvalidParameterErr("%s %q not found in namespace %q", label, className, ns)
	}
	return nil
}

// ReferenceNames implements spec.md §4.7.5, dispatching on whether
// objectName is a class name (isClass) or an instance name (instanceName).
func (o *Ops) ReferenceNames(ns string, isClass bool, className string, instanceName *cim.InstanceName, resultClass, role string) ([]string, []*cim.InstanceName, error) {
	target := className
	if !isClass {
		target = instanceName.ClassName
	}
	if err := o.requireClass(ns, target, "target class"); err != nil {
		return nil, nil, err
	}
	if err := o.requireClass(ns, resultClass, "result class"); err != nil {
		return nil, nil, err
	}

	if isClass {
		names, err := o.ReferenceClassnames(ns, className, resultClass, role)
		return names, nil, err
	}
	paths, err := o.ReferencePaths(ns, instanceName, resultClass, role)
	if err != nil {
		return nil, nil, err
	}
	for _, p := range paths {
		o.fillHost(p)
	}
	return nil, paths, nil
}

// References is ReferenceNames plus, for the class-valued case, the
// association classes themselves shaped per opts. The class-valued result
// is a sequence of (CIMClassName, CIMClass) pairs (spec.md §4.7.5), so
// classNames and classes are parallel slices.
func (o *Ops) References(ns string, isClass bool, className string, instanceName *cim.InstanceName, resultClass, role string, opts classops.ShapeOptions) ([]cim.ClassName, []*cim.Class, []*cim.Instance, error) {
	names, paths, err := o.ReferenceNames(ns, isClass, className, instanceName, resultClass, role)
	if err != nil {
		return nil, nil, nil, err
	}
	if isClass {
		classNames := make([]cim.ClassName, 0, len(names))
		classes := make([]*cim.Class, 0, len(names))
		for _, name := range names {
			c, err := o.classops.GetClass(ns, name, opts)
			if err != nil {
				return nil, nil, nil, err
			}
			classNames = append(classNames, cim.ClassName{Name: c.Name, Namespace: ns, Host: o.host})
			classes = append(classes, c)
		}
		return classNames, classes, nil, nil
	}
	insts := make([]*cim.Instance, 0, len(paths))
	for _, p := range paths {
		inst, err := o.store.GetInstance(ns, p)
		if err != nil {
			return nil, nil, nil, err
		}
		inst.Path = o.fillHost(inst.Path.Clone())
		insts = append(insts, inst)
	}
	return nil, nil, insts, nil
}

// AssociatorNames implements spec.md §4.7.5, dispatching on whether
// objectName is a class name or instance name.
func (o *Ops) AssociatorNames(ns string, isClass bool, className string, instanceName *cim.InstanceName, assocClass, resultClass, role, resultRole string) ([]string, []*cim.InstanceName, error) {
	target := className
	if !isClass {
		target = instanceName.ClassName
	}
	if err := o.requireClass(ns, target, "target class"); err != nil {
		return nil, nil, err
	}
	if err := o.requireClass(ns, assocClass, "assoc class"); err != nil {
		return nil, nil, err
	}
	if err := o.requireClass(ns, resultClass, "result class"); err != nil {
		return nil, nil, err
	}

	if isClass {
		names, err := o.AssociatedClassnames(ns, className, assocClass, resultClass, role, resultRole)
		return names, nil, err
	}
	paths, err := o.AssociatedPaths(ns, instanceName, assocClass, resultClass, role, resultRole)
	if err != nil {
		return nil, nil, err
	}
	for _, p := range paths {
		o.fillHost(p)
	}
	return nil, paths, nil
}

// Associators is AssociatorNames plus the resolved class/instance bodies
// shaped per opts. The class-valued result is a sequence of
// (CIMClassName, CIMClass) pairs (spec.md §4.7.5), so classNames and
// classes are parallel slices.
func (o *Ops) Associators(ns string, isClass bool, className string, instanceName *cim.InstanceName, assocClass, resultClass, role, resultRole string, opts classops.ShapeOptions) ([]cim.ClassName, []*cim.Class, []*cim.Instance, error) {
	names, paths, err := o.AssociatorNames(ns, isClass, className, instanceName, assocClass, resultClass, role, resultRole)
	if err != nil {
		return nil, nil, nil, err
	}
	if isClass {
		classNames := make([]cim.ClassName, 0, len(names))
		classes := make([]*cim.Class, 0, len(names))
		for _, name := range names {
			c, err := o.classops.GetClass(ns, name, opts)
			if err != nil {
				return nil, nil, nil, err
			}
			classNames = append(classNames, cim.ClassName{Name: c.Name, Namespace: ns, Host: o.host})
			classes = append(classes, c)
		}
		return classNames, classes, nil, nil
	}
	insts := make([]*cim.Instance, 0, len(paths))
	for _, p := range paths {
		inst, err := o.store.GetInstance(ns, p)
		if err != nil {
			return nil, nil, nil, err
		}
		inst.Path = o.fillHost(inst.Path.Clone())
		insts = append(insts, inst)
	}
	return nil, nil, insts, nil
}
