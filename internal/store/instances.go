package store

import (
	"sort"
	"strings"

	"go.datum.net/cimrepo/internal/cimerrors"
	"go.datum.net/cimrepo/pkg/cim"
)

// InstanceExists reports whether an instance exists at path in ns.
func (s *Store) InstanceExists(ns string, path *cim.InstanceName) (bool, error) {
	n, err := s.namespace(ns)
	if err != nil {
		return false, err
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	_, exists := n.instances[path.StoreKey()]
	return exists, nil
}

// GetInstance returns a clone of the instance at path in ns. It fails
// CIM_ERR_NOT_FOUND if absent.
func (s *Store) GetInstance(ns string, path *cim.InstanceName) (*cim.Instance, error) {
	n, err := s.namespace(ns)
	if err != nil {
		return nil, err
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	inst, exists := n.instances[path.StoreKey()]
	if !exists {
		return nil, cimerrors.NotFoundErr("instance %q not found in namespace %q", path.ClassName, ns)
	}
	return inst.Clone(), nil
}

// CreateInstance stores a clone of inst in ns, keyed by its path. It fails
// CIM_ERR_ALREADY_EXISTS if the path is already in use (invariant I6).
func (s *Store) CreateInstance(ns string, inst *cim.Instance) error {
	n, err := s.namespace(ns)
	if err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	key := inst.Path.StoreKey()
	if _, exists := n.instances[key]; exists {
		return cimerrors.AlreadyExistsErr("instance of %q already exists in namespace %q", inst.ClassName, ns)
	}
	n.instances[key] = inst.Clone()
	return nil
}

// UpdateInstance overwrites the instance stored at inst.Path. It fails
// CIM_ERR_NOT_FOUND if absent.
func (s *Store) UpdateInstance(ns string, inst *cim.Instance) error {
	n, err := s.namespace(ns)
	if err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	key := inst.Path.StoreKey()
	if _, exists := n.instances[key]; !exists {
		return cimerrors.NotFoundErr("instance of %q not found in namespace %q", inst.ClassName, ns)
	}
	n.instances[key] = inst.Clone()
	return nil
}

// DeleteInstance removes the instance at path from ns. It fails
// CIM_ERR_NOT_FOUND if absent.
func (s *Store) DeleteInstance(ns string, path *cim.InstanceName) error {
	n, err := s.namespace(ns)
	if err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	key := path.StoreKey()
	if _, exists := n.instances[key]; !exists {
		return cimerrors.NotFoundErr("instance %q not found in namespace %q", path.ClassName, ns)
	}
	delete(n.instances, key)
	return nil
}

// DeleteInstancesOfClasses removes every instance whose classname
// (case-insensitively) is in classNames, used by DeleteClass to cascade
// (spec.md §4.4).
func (s *Store) DeleteInstancesOfClasses(ns string, classNames map[string]bool) error {
	n, err := s.namespace(ns)
	if err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	for key, inst := range n.instances {
		if classNames[strings.ToLower(inst.ClassName)] {
			delete(n.instances, key)
		}
	}
	return nil
}

// IterInstances returns clones of every instance in ns, in a stable
// (path-key-sorted) order.
func (s *Store) IterInstances(ns string) ([]*cim.Instance, error) {
	n, err := s.namespace(ns)
	if err != nil {
		return nil, err
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	keys := make([]string, 0, len(n.instances))
	for k := range n.instances {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*cim.Instance, 0, len(keys))
	for _, k := range keys {
		out = append(out, n.instances[k].Clone())
	}
	return out, nil
}
