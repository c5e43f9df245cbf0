// Package store implements the Datastore contract (spec.md §4.1): per
// namespace, three object stores (classes, instances, qualifier
// declarations) plus a namespace catalog, all held in memory.
//
// It is grounded on the teacher's internal/storage/memory.go generic
// InMemory[R] store, generalized from a single flat resource map into
// three per-namespace maps plus a namespace catalog, and from
// protoreflect-based field access to the cim package's typed Clone
// methods.
package store

import (
	"sort"
	"strings"
	"sync"

	"go.datum.net/cimrepo/internal/cimerrors"
	"go.datum.net/cimrepo/pkg/cim"
)

// namespace holds the three object stores for one namespace.
type namespace struct {
	mu sync.RWMutex

	displayName string
	classes     map[string]*cim.Class
	instances   map[string]*cim.Instance
	qualifiers  map[string]*cim.QualifierDeclaration
}

func newNamespace(displayName string) *namespace {
	return &namespace{
		displayName: displayName,
		classes:     make(map[string]*cim.Class),
		instances:   make(map[string]*cim.Instance),
		qualifiers:  make(map[string]*cim.QualifierDeclaration),
	}
}

// Store is the in-memory Datastore: a namespace catalog, each entry
// hosting its own class/instance/qualifier-declaration stores. Do NOT use
// in a production setting — it is a reference in-memory implementation,
// not a persistence layer, mirroring the teacher's explicit warning on
// InMemory[R].
type Store struct {
	mu         sync.RWMutex
	namespaces map[string]*namespace
}

// New returns an empty Store.
func New() *Store {
	return &Store{namespaces: make(map[string]*namespace)}
}

func normalizeNamespace(ns string) string {
	return strings.Trim(ns, "/")
}

// AddNamespace adds ns to the catalog. It fails CIM_ERR_ALREADY_EXISTS if
// present (spec.md §4.2).
func (s *Store) AddNamespace(ns string) error {
	ns = normalizeNamespace(ns)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.namespaces[strings.ToLower(ns)]; exists {
		return cimerrors.AlreadyExistsErr("namespace %q already exists", ns)
	}
	s.namespaces[strings.ToLower(ns)] = newNamespace(ns)
	return nil
}

// RemoveNamespace removes ns from the catalog. It fails
// CIM_ERR_NOT_FOUND if absent and CIM_ERR_NAMESPACE_NOT_EMPTY if any of
// the three stores is non-empty (spec.md §4.2).
func (s *Store) RemoveNamespace(ns string) error {
	ns = normalizeNamespace(ns)
	s.mu.Lock()
	defer s.mu.Unlock()
	n, exists := s.namespaces[strings.ToLower(ns)]
	if !exists {
		return cimerrors.NotFoundErr("namespace %q does not exist", ns)
	}
	n.mu.RLock()
	empty := len(n.classes) == 0 && len(n.instances) == 0 && len(n.qualifiers) == 0
	n.mu.RUnlock()
	if !empty {
		return cimerrors.NamespaceNotEmptyErr("namespace %q is not empty", ns)
	}
	delete(s.namespaces, strings.ToLower(ns))
	return nil
}

// ValidateNamespace fails CIM_ERR_INVALID_NAMESPACE if ns is not in the
// catalog.
func (s *Store) ValidateNamespace(ns string) error {
	_, err := s.namespace(ns)
	return err
}

// ListNamespaces returns every namespace name, sorted.
func (s *Store) ListNamespaces() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for _, n := range s.namespaces {
		out = append(out, n.displayName)
	}
	sort.Strings(out)
	return out
}

func (s *Store) namespace(ns string) (*namespace, error) {
	ns = normalizeNamespace(ns)
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, exists := s.namespaces[strings.ToLower(ns)]
	if !exists {
		return nil, cimerrors.InvalidNamespaceErr("namespace %q does not exist", ns)
	}
	return n, nil
}
