// Package schemaresolver implements the Schema Resolver (spec.md §4.3):
// given a new class, it locates the superclass, propagates inherited
// properties/methods/qualifiers, and validates the class's own qualifiers
// against the qualifier-declaration store.
//
// It is grounded on the shape of the teacher's internal/schema.Registry:
// a small resolver type wrapping a backing store, resolving one entity
// against another by name and raising a typed error on a missing
// reference.
package schemaresolver

import (
	"go.datum.net/cimrepo/internal/cimerrors"
	"go.datum.net/cimrepo/internal/store"
	"go.datum.net/cimrepo/pkg/cim"
)

// QualifierSource exposes read access to the qualifier-declaration store a
// Resolver validates against. It is satisfied by *store.Store (the CLI's
// demo command seeds its small literal table of declarations into the store
// through SetQualifier instead of a MOF parser, which is out of scope), and
// tests may substitute a smaller fake.
type QualifierSource interface {
	GetQualifierDecl(ns, name string) (*cim.QualifierDeclaration, error)
}

// Resolver resolves new classes against a Store, validating qualifiers
// against a (possibly distinct) QualifierSource.
type Resolver struct {
	classes    *store.Store
	qualifiers QualifierSource
}

// New returns a Resolver backed by s for both superclass lookup and
// qualifier-declaration validation.
func New(s *store.Store) *Resolver {
	return &Resolver{classes: s, qualifiers: s}
}

// NewWithQualifierSource returns a Resolver that looks up superclasses in
// s but validates qualifiers against q instead of s.
func NewWithQualifierSource(s *store.Store, q QualifierSource) *Resolver {
	return &Resolver{classes: s, qualifiers: q}
}

// Resolve implements spec.md §4.3: it locates newClass.Superclass (if any)
// in ns, merges every inherited property/method not locally overridden
// (setting Propagated=true and ClassOrigin to the originating ancestor),
// marks locally-declared elements with ClassOrigin=newClass.Name and
// Propagated=false, and validates every qualifier on the class and its
// local elements against the qualifier-declaration store. It returns the
// fully resolved class; it never mutates newClass.
func (r *Resolver) Resolve(ns string, newClass *cim.Class) (*cim.Class, error) {
	resolved := newClass.Clone()

	var super *cim.Class
	if resolved.HasSuperclass() {
		s, err := r.classes.GetClass(ns, resolved.Superclass)
		if err != nil {
			return nil, cimerrors.InvalidSuperclassErr(
				"superclass %q of class %q not found in namespace %q", resolved.Superclass, resolved.Name, ns)
		}
		super = s
	}

	if err := r.validateQualifiers(ns, resolved); err != nil {
		return nil, err
	}

	markLocal(resolved, resolved.Name)

	if super != nil {
		mergeInherited(resolved, super)
	}

	return resolved, nil
}

// markLocal stamps every element currently on c as locally declared. It
// must run before merging inherited members so propagated members are
// never touched by it.
func markLocal(c *cim.Class, className string) {
	c.Properties.Range(func(name string, p cim.Property) bool {
		p.ClassOrigin = className
		p.Propagated = false
		c.Properties.Set(name, p)
		return true
	})
	c.Methods.Range(func(name string, m cim.Method) bool {
		m.ClassOrigin = className
		m.Propagated = false
		c.Methods.Set(name, m)
		return true
	})
}

// mergeInherited copies every property/method from super that resolved
// does not already declare locally, marking the copy Propagated=true with
// ClassOrigin carried over unchanged from the ancestor (super's own
// properties/methods already carry the correct, possibly-deeper,
// ClassOrigin from when super itself was resolved).
func mergeInherited(resolved, super *cim.Class) {
	super.Properties.Range(func(name string, p cim.Property) bool {
		if resolved.Properties.Has(name) {
			return true
		}
		p.Propagated = true
		resolved.Properties.Set(name, p)
		return true
	})
	super.Methods.Range(func(name string, m cim.Method) bool {
		if resolved.Methods.Has(name) {
			return true
		}
		m.Propagated = true
		resolved.Methods.Set(name, m)
		return true
	})
}

// validateQualifiers checks every locally-declared qualifier (class-level,
// property-level, method-level, and parameter-level) against the
// qualifier-declaration store: the name must be declared, the qualifier's
// value type must match the declaration's type, and the declaration's
// scope must permit the element kind it was applied to.
func (r *Resolver) validateQualifiers(ns string, c *cim.Class) error {
	if err := r.validateQualifierSet(ns, c.Qualifiers, cim.ScopeClass, c.Name, "class"); err != nil {
		return err
	}

	var err error
	c.Properties.Range(func(name string, p cim.Property) bool {
		propertyScope := cim.ScopeProperty
		if p.Value.Type == cim.TypeReference {
			propertyScope = cim.ScopeReference
		}
		if e := r.validateQualifierSet(ns, p.Qualifiers, propertyScope, name, "property"); e != nil {
			err = e
			return false
		}
		return true
	})
	if err != nil {
		return err
	}

	c.Methods.Range(func(name string, m cim.Method) bool {
		if e := r.validateQualifierSet(ns, m.Qualifiers, cim.ScopeMethod, name, "method"); e != nil {
			err = e
			return false
		}
		m.Parameters.Range(func(pname string, p cim.Parameter) bool {
			if e := r.validateQualifierSet(ns, p.Qualifiers, cim.ScopeParameter, pname, "parameter"); e != nil {
				err = e
				return false
			}
			return true
		})
		return err == nil
	})
	return err
}

func (r *Resolver) validateQualifierSet(ns string, qualifiers *cim.OrderedMap[cim.Qualifier], scope cim.QualifierScope, elementName, elementKind string) error {
	if qualifiers == nil {
		return nil
	}
	var err error
	qualifiers.Range(func(name string, q cim.Qualifier) bool {
		decl, getErr := r.qualifiers.GetQualifierDecl(ns, name)
		if getErr != nil {
			err = cimerrors.InvalidParameterErr(
				"qualifier %q on %s %q has no declaration in namespace %q", name, elementKind, elementName, ns)
			return false
		}
		if !q.Value.Null && q.Value.Type != cim.TypeUnknown && q.Value.Type != decl.Type {
			err = cimerrors.InvalidParameterErr(
				"qualifier %q on %s %q has type %s, declaration requires %s", name, elementKind, elementName, q.Value.Type, decl.Type)
			return false
		}
		if !decl.PermitsScope(scope) && !decl.PermitsScope(cim.ScopeAny) {
			err = cimerrors.InvalidParameterErr(
				"qualifier %q is not permitted on %s %q", name, elementKind, elementName)
			return false
		}
		return true
	})
	return err
}
