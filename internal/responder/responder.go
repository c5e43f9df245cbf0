// Package responder aggregates every component in §4 of the expanded
// specification into the single programmatic surface named in §6:
// class, instance, qualifier, association, and pull operations over one
// Store.
package responder

import (
	"go.datum.net/cimrepo/internal/assoc"
	"go.datum.net/cimrepo/internal/classops"
	"go.datum.net/cimrepo/internal/cimerrors"
	"go.datum.net/cimrepo/internal/instanceops"
	"go.datum.net/cimrepo/internal/nsmgr"
	"go.datum.net/cimrepo/internal/pull"
	"go.datum.net/cimrepo/internal/qualifierops"
	"go.datum.net/cimrepo/internal/schemaresolver"
	"go.datum.net/cimrepo/internal/store"
	"go.datum.net/cimrepo/pkg/cim"
)

// ClassShapeOptions controls class-read filtering; an alias of
// classops.ShapeOptions kept at the responder boundary so callers never
// need to import internal/classops directly.
type ClassShapeOptions = classops.ShapeOptions

// InstanceShapeOptions controls instance-read filtering; an alias of
// instanceops.ShapeOptions.
type InstanceShapeOptions = instanceops.ShapeOptions

// Interface is the full operation surface named in spec.md §6. It exists
// so obslog/obstrace/metrics can each wrap one Interface with another,
// mirroring the teacher's storage.ResourceServer[R] decorator chain in
// internal/storage/otelstorage.
type Interface interface {
	EnumerateClasses(ns, className string, deepInheritance bool, opts ClassShapeOptions) ([]*cim.Class, error)
	EnumerateClassNames(ns, className string, deepInheritance bool) ([]string, error)
	GetClass(ns, className string, opts ClassShapeOptions) (*cim.Class, error)
	CreateClass(ns string, newClass *cim.Class) error
	ModifyClass(ns string, modifiedClass *cim.Class) error
	DeleteClass(ns, className string) error

	EnumerateQualifiers(ns string) ([]*cim.QualifierDeclaration, error)
	GetQualifier(ns, name string) (*cim.QualifierDeclaration, error)
	SetQualifier(ns string, decl *cim.QualifierDeclaration) error
	DeleteQualifier(ns, name string) error

	CreateInstance(ns string, newInstance *cim.Instance) (*cim.InstanceName, error)
	ModifyInstance(ns string, modifiedInstance *cim.Instance, includeQualifiers bool, propertyList []string, hasPropertyList bool) error
	GetInstance(ns string, iname *cim.InstanceName, opts InstanceShapeOptions) (*cim.Instance, error)
	DeleteInstance(ns string, iname *cim.InstanceName) error
	EnumerateInstances(ns, className string, localOnly, deepInheritance bool, opts InstanceShapeOptions) ([]*cim.Instance, error)
	EnumerateInstanceNames(ns, className string) ([]*cim.InstanceName, error)
	ExecQuery(ns, query, queryLanguage string) ([]*cim.Instance, error)

	ReferenceNames(ns string, isClass bool, className string, instanceName *cim.InstanceName, resultClass, role string) ([]string, []*cim.InstanceName, error)
	References(ns string, isClass bool, className string, instanceName *cim.InstanceName, resultClass, role string, opts ClassShapeOptions) ([]cim.ClassName, []*cim.Class, []*cim.Instance, error)
	AssociatorNames(ns string, isClass bool, className string, instanceName *cim.InstanceName, assocClass, resultClass, role, resultRole string) ([]string, []*cim.InstanceName, error)
	Associators(ns string, isClass bool, className string, instanceName *cim.InstanceName, assocClass, resultClass, role, resultRole string, opts ClassShapeOptions) ([]cim.ClassName, []*cim.Class, []*cim.Instance, error)

	OpenEnumerateInstancePaths(ns, className string, openOpts OpenOptions) (PullInstancePathsPage, error)
	OpenEnumerateInstances(ns, className string, localOnly, deepInheritance bool, opts InstanceShapeOptions, openOpts OpenOptions) (PullInstancesPage, error)
	OpenReferenceInstancePaths(ns string, instanceName *cim.InstanceName, resultClass, role string, openOpts OpenOptions) (PullInstancePathsPage, error)
	OpenReferenceInstances(ns string, instanceName *cim.InstanceName, resultClass, role string, openOpts OpenOptions) (PullInstancesPage, error)
	OpenAssociatorInstancePaths(ns string, instanceName *cim.InstanceName, assocClass, resultClass, role, resultRole string, openOpts OpenOptions) (PullInstancePathsPage, error)
	OpenAssociatorInstances(ns string, instanceName *cim.InstanceName, assocClass, resultClass, role, resultRole string, openOpts OpenOptions) (PullInstancesPage, error)
	OpenQueryInstances(ns, query, queryLanguage string, openOpts OpenOptions) (PullInstancesPage, error)

	PullInstancesWithPath(ns, contextID string, maxObjectCount int) (PullInstancesPage, error)
	PullInstancePaths(ns, contextID string, maxObjectCount int) (PullInstancePathsPage, error)
	PullInstances(ns, contextID string, maxObjectCount int) (PullInstancesPage, error)
	CloseEnumeration(ns, contextID string) error
}

// OpenOptions carries the parameter set common to every Open… variant
// (spec.md §4.8).
type OpenOptions struct {
	MaxObjectCount      int
	FilterQuery         string
	FilterQueryLanguage string
	HasOperationTimeout bool
	OperationTimeout    int
}

// PullInstancesPage is the page/session-state result shape shared by
// EnumerateInstances-style Open/Pull operations (whole instances).
type PullInstancesPage struct {
	Instances     []*cim.Instance
	EndOfSequence bool
	ContextID     string
}

// PullInstancePathsPage is the page/session-state result shape shared by
// path-only Open/Pull operations.
type PullInstancePathsPage struct {
	Paths         []*cim.InstanceName
	EndOfSequence bool
	ContextID     string
}

var _ Interface = (*Responder)(nil)

// Responder composes one instance of each §4 component over a single
// Store and implements Interface.
type Responder struct {
	store        *store.Store
	namespaces   *nsmgr.Manager
	resolver     *schemaresolver.Resolver
	classes      *classops.Ops
	instances    *instanceops.Ops
	qualifiers   *qualifierops.Ops
	associations *assoc.Ops
	pull         *pull.Manager

	host string
}

// New returns a Responder wired over a fresh Store. host fills
// InstanceName.Host on association results that lack one (§4.7.5).
// disablePullOperations fails every pull/open/close call with
// CIM_ERR_NOT_SUPPORTED (§4.8).
func New(host string, disablePullOperations bool) *Responder {
	s := store.New()
	ns := nsmgr.New(s)
	resolver := schemaresolver.New(s)
	classes := classops.New(s, resolver)
	return &Responder{
		store:        s,
		namespaces:   ns,
		resolver:     resolver,
		classes:      classes,
		instances:    instanceops.New(s, classes, ns),
		qualifiers:   qualifierops.New(s),
		associations: assoc.New(s, classes, host),
		pull:         pull.New(disablePullOperations),
		host:         host,
	}
}

// Namespaces exposes the Namespace Manager directly; namespace lifecycle
// is not part of the §6 operation surface but is needed by callers (and
// the CLI demo) to bootstrap a repository.
func (r *Responder) Namespaces() *nsmgr.Manager { return r.namespaces }

// Classes exposes the Class Operations component directly, for callers
// (tests, the CLI demo) that need subclass/superclass walks not named in
// §6.
func (r *Responder) Classes() *classops.Ops { return r.classes }

func (r *Responder) EnumerateClasses(ns, className string, deepInheritance bool, opts ClassShapeOptions) ([]*cim.Class, error) {
	return r.classes.EnumerateClasses(ns, className, deepInheritance, opts)
}

func (r *Responder) EnumerateClassNames(ns, className string, deepInheritance bool) ([]string, error) {
	return r.classes.EnumerateClassNames(ns, className, deepInheritance)
}

func (r *Responder) GetClass(ns, className string, opts ClassShapeOptions) (*cim.Class, error) {
	return r.classes.GetClass(ns, className, opts)
}

func (r *Responder) CreateClass(ns string, newClass *cim.Class) error {
	return r.classes.CreateClass(ns, newClass)
}

func (r *Responder) ModifyClass(ns string, modifiedClass *cim.Class) error {
	return r.classes.ModifyClass(ns, modifiedClass)
}

func (r *Responder) DeleteClass(ns, className string) error {
	return r.classes.DeleteClass(ns, className)
}

func (r *Responder) EnumerateQualifiers(ns string) ([]*cim.QualifierDeclaration, error) {
	return r.qualifiers.EnumerateQualifiers(ns)
}

func (r *Responder) GetQualifier(ns, name string) (*cim.QualifierDeclaration, error) {
	return r.qualifiers.GetQualifier(ns, name)
}

func (r *Responder) SetQualifier(ns string, decl *cim.QualifierDeclaration) error {
	return r.qualifiers.SetQualifier(ns, decl)
}

func (r *Responder) DeleteQualifier(ns, name string) error {
	return r.qualifiers.DeleteQualifier(ns, name)
}

func (r *Responder) CreateInstance(ns string, newInstance *cim.Instance) (*cim.InstanceName, error) {
	return r.instances.CreateInstance(ns, newInstance)
}

func (r *Responder) ModifyInstance(ns string, modifiedInstance *cim.Instance, includeQualifiers bool, propertyList []string, hasPropertyList bool) error {
	return r.instances.ModifyInstance(ns, modifiedInstance, includeQualifiers, propertyList, hasPropertyList)
}

func (r *Responder) GetInstance(ns string, iname *cim.InstanceName, opts InstanceShapeOptions) (*cim.Instance, error) {
	return r.instances.GetInstance(ns, iname, opts)
}

func (r *Responder) DeleteInstance(ns string, iname *cim.InstanceName) error {
	return r.instances.DeleteInstance(ns, iname)
}

func (r *Responder) EnumerateInstances(ns, className string, localOnly, deepInheritance bool, opts InstanceShapeOptions) ([]*cim.Instance, error) {
	return r.instances.EnumerateInstances(ns, className, localOnly, deepInheritance, opts)
}

func (r *Responder) EnumerateInstanceNames(ns, className string) ([]*cim.InstanceName, error) {
	return r.instances.EnumerateInstanceNames(ns, className)
}

// ExecQuery is explicitly unsupported (spec.md §4.5 non-goal; query
// execution is out of scope).
func (r *Responder) ExecQuery(ns, query, queryLanguage string) ([]*cim.Instance, error) {
	return nil, cimerrors.NotSupportedErr("ExecQuery is not supported")
}

func (r *Responder) ReferenceNames(ns string, isClass bool, className string, instanceName *cim.InstanceName, resultClass, role string) ([]string, []*cim.InstanceName, error) {
	return r.associations.ReferenceNames(ns, isClass, className, instanceName, resultClass, role)
}

func (r *Responder) References(ns string, isClass bool, className string, instanceName *cim.InstanceName, resultClass, role string, opts ClassShapeOptions) ([]cim.ClassName, []*cim.Class, []*cim.Instance, error) {
	return r.associations.References(ns, isClass, className, instanceName, resultClass, role, opts)
}

func (r *Responder) AssociatorNames(ns string, isClass bool, className string, instanceName *cim.InstanceName, assocClass, resultClass, role, resultRole string) ([]string, []*cim.InstanceName, error) {
	return r.associations.AssociatorNames(ns, isClass, className, instanceName, assocClass, resultClass, role, resultRole)
}

func (r *Responder) Associators(ns string, isClass bool, className string, instanceName *cim.InstanceName, assocClass, resultClass, role, resultRole string, opts ClassShapeOptions) ([]cim.ClassName, []*cim.Class, []*cim.Instance, error) {
	return r.associations.Associators(ns, isClass, className, instanceName, assocClass, resultClass, role, resultRole, opts)
}
