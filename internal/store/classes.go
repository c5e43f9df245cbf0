package store

import (
	"sort"
	"strings"

	"go.datum.net/cimrepo/internal/cimerrors"
	"go.datum.net/cimrepo/pkg/cim"
)

// ClassExists reports whether className exists in ns, case-insensitively.
func (s *Store) ClassExists(ns, className string) (bool, error) {
	n, err := s.namespace(ns)
	if err != nil {
		return false, err
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	_, exists := n.classes[strings.ToLower(className)]
	return exists, nil
}

// GetClass returns a clone of className in ns. It fails CIM_ERR_NOT_FOUND
// if absent.
func (s *Store) GetClass(ns, className string) (*cim.Class, error) {
	n, err := s.namespace(ns)
	if err != nil {
		return nil, err
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	c, exists := n.classes[strings.ToLower(className)]
	if !exists {
		return nil, cimerrors.NotFoundErr("class %q not found in namespace %q", className, ns)
	}
	return c.Clone(), nil
}

// CreateClass stores a clone of c in ns, keyed case-insensitively by its
// name. It fails CIM_ERR_ALREADY_EXISTS if already present.
func (s *Store) CreateClass(ns string, c *cim.Class) error {
	n, err := s.namespace(ns)
	if err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	key := strings.ToLower(c.Name)
	if _, exists := n.classes[key]; exists {
		return cimerrors.AlreadyExistsErr("class %q already exists in namespace %q", c.Name, ns)
	}
	n.classes[key] = c.Clone()
	return nil
}

// DeleteClass removes className from ns. It fails CIM_ERR_NOT_FOUND if
// absent.
func (s *Store) DeleteClass(ns, className string) error {
	n, err := s.namespace(ns)
	if err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	key := strings.ToLower(className)
	if _, exists := n.classes[key]; !exists {
		return cimerrors.NotFoundErr("class %q not found in namespace %q", className, ns)
	}
	delete(n.classes, key)
	return nil
}

// IterClasses returns clones of every class in ns, in a stable
// (name-sorted) order.
func (s *Store) IterClasses(ns string) ([]*cim.Class, error) {
	n, err := s.namespace(ns)
	if err != nil {
		return nil, err
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	keys := make([]string, 0, len(n.classes))
	for k := range n.classes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*cim.Class, 0, len(keys))
	for _, k := range keys {
		out = append(out, n.classes[k].Clone())
	}
	return out, nil
}
