// Package qualifierops implements Qualifier Declaration Operations
// (spec.md §4.6): enumerate/get/set/delete qualifier declarations.
package qualifierops

import (
	"go.datum.net/cimrepo/internal/store"
	"go.datum.net/cimrepo/pkg/cim"
)

// Ops implements qualifier-declaration operations against a Store.
type Ops struct {
	store *store.Store
}

// New returns an Ops backed by s.
func New(s *store.Store) *Ops {
	return &Ops{store: s}
}

// EnumerateQualifiers returns every qualifier declaration in ns, in a
// stable name-sorted order.
func (o *Ops) EnumerateQualifiers(ns string) ([]*cim.QualifierDeclaration, error) {
	return o.store.IterQualifierDecls(ns)
}

// GetQualifier returns the named qualifier declaration in ns. It fails
// CIM_ERR_NOT_FOUND if absent.
func (o *Ops) GetQualifier(ns, name string) (*cim.QualifierDeclaration, error) {
	return o.store.GetQualifierDecl(ns, name)
}

// SetQualifier creates or replaces the named qualifier declaration in ns.
// Unlike class/instance creation, this operation never fails on a
// pre-existing name (spec.md §4.6).
func (o *Ops) SetQualifier(ns string, decl *cim.QualifierDeclaration) error {
	return o.store.SetQualifierDecl(ns, decl)
}

// DeleteQualifier removes the named qualifier declaration from ns. It
// fails CIM_ERR_NOT_FOUND if absent. Qualifier values already applied to
// classes or their members are not retracted (spec.md §4.6, an
// intentional non-goal).
func (o *Ops) DeleteQualifier(ns, name string) error {
	return o.store.DeleteQualifierDecl(ns, name)
}
