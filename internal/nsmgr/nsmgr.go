// Package nsmgr implements the Namespace Manager (spec.md §4.2):
// create/remove/validate namespaces, enforcing emptiness on removal.
package nsmgr

import "go.datum.net/cimrepo/internal/store"

// Manager validates and mutates a Store's namespace catalog.
type Manager struct {
	store *store.Store
}

// New returns a Manager backed by s.
func New(s *store.Store) *Manager {
	return &Manager{store: s}
}

// Validate fails CIM_ERR_INVALID_NAMESPACE if ns is not present.
func (m *Manager) Validate(ns string) error {
	return m.store.ValidateNamespace(ns)
}

// Add strips leading/trailing '/' from ns and adds it to the catalog. It
// fails CIM_ERR_ALREADY_EXISTS if ns is already present.
func (m *Manager) Add(ns string) error {
	return m.store.AddNamespace(ns)
}

// Remove removes ns from the catalog. It fails CIM_ERR_NOT_FOUND if
// absent and CIM_ERR_NAMESPACE_NOT_EMPTY if any of its three stores holds
// content.
func (m *Manager) Remove(ns string) error {
	return m.store.RemoveNamespace(ns)
}

// List returns every namespace name, sorted.
func (m *Manager) List() []string {
	return m.store.ListNamespaces()
}
