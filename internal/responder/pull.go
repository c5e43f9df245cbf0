package responder

import (
	"go.datum.net/cimrepo/internal/pull"
	"go.datum.net/cimrepo/pkg/cim"
)

func validateOpen(openOpts OpenOptions) error {
	return pull.ValidateOpenParameters(openOpts.FilterQuery, openOpts.FilterQueryLanguage, openOpts.HasOperationTimeout, openOpts.OperationTimeout)
}

func toAnySlice[T any](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

func fromAnyInstances(items []any) []*cim.Instance {
	out := make([]*cim.Instance, len(items))
	for i, item := range items {
		out[i] = item.(*cim.Instance)
	}
	return out
}

func fromAnyPaths(items []any) []*cim.InstanceName {
	out := make([]*cim.InstanceName, len(items))
	for i, item := range items {
		out[i] = item.(*cim.InstanceName)
	}
	return out
}

func (r *Responder) openInstances(ns string, pullType pull.PullType, all []*cim.Instance, openOpts OpenOptions) (PullInstancesPage, error) {
	if err := validateOpen(openOpts); err != nil {
		return PullInstancesPage{}, err
	}
	page, eos, ctxID, err := r.pull.Open(ns, pullType, toAnySlice(all), openOpts.MaxObjectCount)
	if err != nil {
		return PullInstancesPage{}, err
	}
	return PullInstancesPage{Instances: fromAnyInstances(page), EndOfSequence: eos, ContextID: ctxID}, nil
}

func (r *Responder) openPaths(ns string, all []*cim.InstanceName, openOpts OpenOptions) (PullInstancePathsPage, error) {
	if err := validateOpen(openOpts); err != nil {
		return PullInstancePathsPage{}, err
	}
	page, eos, ctxID, err := r.pull.Open(ns, pull.PullInstancePaths, toAnySlice(all), openOpts.MaxObjectCount)
	if err != nil {
		return PullInstancePathsPage{}, err
	}
	return PullInstancePathsPage{Paths: fromAnyPaths(page), EndOfSequence: eos, ContextID: ctxID}, nil
}

// OpenEnumerateInstancePaths implements spec.md §4.8 over EnumerateInstanceNames.
func (r *Responder) OpenEnumerateInstancePaths(ns, className string, openOpts OpenOptions) (PullInstancePathsPage, error) {
	all, err := r.instances.EnumerateInstanceNames(ns, className)
	if err != nil {
		return PullInstancePathsPage{}, err
	}
	return r.openPaths(ns, all, openOpts)
}

// OpenEnumerateInstances implements spec.md §4.8 over EnumerateInstances.
func (r *Responder) OpenEnumerateInstances(ns, className string, localOnly, deepInheritance bool, opts InstanceShapeOptions, openOpts OpenOptions) (PullInstancesPage, error) {
	all, err := r.instances.EnumerateInstances(ns, className, localOnly, deepInheritance, opts)
	if err != nil {
		return PullInstancesPage{}, err
	}
	return r.openInstances(ns, pull.PullInstancesWithPath, all, openOpts)
}

// OpenReferenceInstancePaths implements spec.md §4.8 over ReferenceNames
// (instance-valued only; objectName is always an instance for the Open
// variants per DSP0200).
func (r *Responder) OpenReferenceInstancePaths(ns string, instanceName *cim.InstanceName, resultClass, role string, openOpts OpenOptions) (PullInstancePathsPage, error) {
	_, paths, err := r.associations.ReferenceNames(ns, false, "", instanceName, resultClass, role)
	if err != nil {
		return PullInstancePathsPage{}, err
	}
	return r.openPaths(ns, paths, openOpts)
}

// OpenReferenceInstances implements spec.md §4.8 over References.
func (r *Responder) OpenReferenceInstances(ns string, instanceName *cim.InstanceName, resultClass, role string, openOpts OpenOptions) (PullInstancesPage, error) {
	_, _, insts, err := r.associations.References(ns, false, "", instanceName, resultClass, role, ClassShapeOptions{})
	if err != nil {
		return PullInstancesPage{}, err
	}
	return r.openInstances(ns, pull.PullInstances, insts, openOpts)
}

// OpenAssociatorInstancePaths implements spec.md §4.8 over AssociatorNames.
func (r *Responder) OpenAssociatorInstancePaths(ns string, instanceName *cim.InstanceName, assocClass, resultClass, role, resultRole string, openOpts OpenOptions) (PullInstancePathsPage, error) {
	_, paths, err := r.associations.AssociatorNames(ns, false, "", instanceName, assocClass, resultClass, role, resultRole)
	if err != nil {
		return PullInstancePathsPage{}, err
	}
	return r.openPaths(ns, paths, openOpts)
}

// OpenAssociatorInstances implements spec.md §4.8 over Associators.
func (r *Responder) OpenAssociatorInstances(ns string, instanceName *cim.InstanceName, assocClass, resultClass, role, resultRole string, openOpts OpenOptions) (PullInstancesPage, error) {
	_, _, insts, err := r.associations.Associators(ns, false, "", instanceName, assocClass, resultClass, role, resultRole, ClassShapeOptions{})
	if err != nil {
		return PullInstancesPage{}, err
	}
	return r.openInstances(ns, pull.PullInstances, insts, openOpts)
}

// OpenQueryInstances delegates to ExecQuery and therefore always fails
// CIM_ERR_NOT_SUPPORTED before any session is created (spec.md §4.8).
func (r *Responder) OpenQueryInstances(ns, query, queryLanguage string, openOpts OpenOptions) (PullInstancesPage, error) {
	if _, err := r.ExecQuery(ns, query, queryLanguage); err != nil {
		return PullInstancesPage{}, err
	}
	return PullInstancesPage{EndOfSequence: true}, nil
}

// PullInstancesWithPath implements spec.md §4.8 Pull for whole-instance
// sessions.
func (r *Responder) PullInstancesWithPath(ns, contextID string, maxObjectCount int) (PullInstancesPage, error) {
	page, eos, err := r.pull.Pull(contextID, ns, pull.PullInstancesWithPath, maxObjectCount)
	if err != nil {
		return PullInstancesPage{}, err
	}
	return PullInstancesPage{Instances: fromAnyInstances(page), EndOfSequence: eos}, nil
}

// PullInstancePaths implements spec.md §4.8 Pull for path-only sessions.
func (r *Responder) PullInstancePaths(ns, contextID string, maxObjectCount int) (PullInstancePathsPage, error) {
	page, eos, err := r.pull.Pull(contextID, ns, pull.PullInstancePaths, maxObjectCount)
	if err != nil {
		return PullInstancePathsPage{}, err
	}
	return PullInstancePathsPage{Paths: fromAnyPaths(page), EndOfSequence: eos}, nil
}

// PullInstances implements spec.md §4.8 Pull for the association-result
// whole-instance sessions opened without a path (kept distinct from
// PullInstancesWithPath so the context's pull type always matches the
// Open… call that created it).
func (r *Responder) PullInstances(ns, contextID string, maxObjectCount int) (PullInstancesPage, error) {
	page, eos, err := r.pull.Pull(contextID, ns, pull.PullInstances, maxObjectCount)
	if err != nil {
		return PullInstancesPage{}, err
	}
	return PullInstancesPage{Instances: fromAnyInstances(page), EndOfSequence: eos}, nil
}

// CloseEnumeration implements spec.md §4.8 Close.
func (r *Responder) CloseEnumeration(ns, contextID string) error {
	return r.pull.Close(contextID)
}
