package store

import (
	"sort"
	"strings"

	"go.datum.net/cimrepo/internal/cimerrors"
	"go.datum.net/cimrepo/pkg/cim"
)

// GetQualifierDecl returns a clone of the named qualifier declaration in
// ns. It fails CIM_ERR_NOT_FOUND if absent.
func (s *Store) GetQualifierDecl(ns, name string) (*cim.QualifierDeclaration, error) {
	n, err := s.namespace(ns)
	if err != nil {
		return nil, err
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	d, exists := n.qualifiers[strings.ToLower(name)]
	if !exists {
		return nil, cimerrors.NotFoundErr("qualifier declaration %q not found in namespace %q", name, ns)
	}
	clone := d.Clone()
	return &clone, nil
}

// QualifierDeclExists reports whether name exists in ns.
func (s *Store) QualifierDeclExists(ns, name string) (bool, error) {
	n, err := s.namespace(ns)
	if err != nil {
		return false, err
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	_, exists := n.qualifiers[strings.ToLower(name)]
	return exists, nil
}

// SetQualifierDecl creates or replaces the named qualifier declaration in
// ns (spec.md §4.6: SetQualifier always succeeds, creating or replacing).
func (s *Store) SetQualifierDecl(ns string, d *cim.QualifierDeclaration) error {
	n, err := s.namespace(ns)
	if err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	clone := d.Clone()
	n.qualifiers[strings.ToLower(d.Name)] = &clone
	return nil
}

// DeleteQualifierDecl removes the named qualifier declaration from ns. It
// fails CIM_ERR_NOT_FOUND if absent.
func (s *Store) DeleteQualifierDecl(ns, name string) error {
	n, err := s.namespace(ns)
	if err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	key := strings.ToLower(name)
	if _, exists := n.qualifiers[key]; !exists {
		return cimerrors.NotFoundErr("qualifier declaration %q not found in namespace %q", name, ns)
	}
	delete(n.qualifiers, key)
	return nil
}

// IterQualifierDecls returns clones of every qualifier declaration in ns,
// in a stable (name-sorted) order.
func (s *Store) IterQualifierDecls(ns string) ([]*cim.QualifierDeclaration, error) {
	n, err := s.namespace(ns)
	if err != nil {
		return nil, err
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	keys := make([]string, 0, len(n.qualifiers))
	for k := range n.qualifiers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*cim.QualifierDeclaration, 0, len(keys))
	for _, k := range keys {
		clone := n.qualifiers[k].Clone()
		out = append(out, &clone)
	}
	return out, nil
}
