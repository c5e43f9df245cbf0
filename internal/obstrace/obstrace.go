// Package obstrace wraps a responder.Interface with per-operation
// OpenTelemetry spans, in the shape of the teacher's
// internal/storage/otelstorage decorator.
package obstrace

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"go.datum.net/cimrepo/internal/responder"
	"go.datum.net/cimrepo/pkg/cim"
)

// WithTracing wraps next so every operation runs inside a span named
// "cimrepo.<Operation>", tagged with the namespace, recording an error
// status when the wrapped call fails.
func WithTracing(next responder.Interface) responder.Interface {
	return &tracer{next: next, tracer: otel.Tracer("go.datum.net/cimrepo")}
}

type tracer struct {
	next   responder.Interface
	tracer trace.Tracer
}

func (t *tracer) span(op, ns string) func(err error) {
	_, span := t.tracer.Start(context.Background(), "cimrepo."+op, trace.WithAttributes(
		attribute.String("cimrepo.namespace", ns),
	))
	return func(err error) {
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}

func (t *tracer) EnumerateClasses(ns, className string, deepInheritance bool, opts responder.ClassShapeOptions) ([]*cim.Class, error) {
	end := t.span("EnumerateClasses", ns)
	out, err := t.next.EnumerateClasses(ns, className, deepInheritance, opts)
	end(err)
	return out, err
}

func (t *tracer) EnumerateClassNames(ns, className string, deepInheritance bool) ([]string, error) {
	end := t.span("EnumerateClassNames", ns)
	out, err := t.next.EnumerateClassNames(ns, className, deepInheritance)
	end(err)
	return out, err
}

func (t *tracer) GetClass(ns, className string, opts responder.ClassShapeOptions) (*cim.Class, error) {
	end := t.span("GetClass", ns)
	out, err := t.next.GetClass(ns, className, opts)
	end(err)
	return out, err
}

func (t *tracer) CreateClass(ns string, newClass *cim.Class) error {
	end := t.span("CreateClass", ns)
	err := t.next.CreateClass(ns, newClass)
	end(err)
	return err
}

func (t *tracer) ModifyClass(ns string, modifiedClass *cim.Class) error {
	end := t.span("ModifyClass", ns)
	err := t.next.ModifyClass(ns, modifiedClass)
	end(err)
	return err
}

func (t *tracer) DeleteClass(ns, className string) error {
	end := t.span("DeleteClass", ns)
	err := t.next.DeleteClass(ns, className)
	end(err)
	return err
}

func (t *tracer) EnumerateQualifiers(ns string) ([]*cim.QualifierDeclaration, error) {
	end := t.span("EnumerateQualifiers", ns)
	out, err := t.next.EnumerateQualifiers(ns)
	end(err)
	return out, err
}

func (t *tracer) GetQualifier(ns, name string) (*cim.QualifierDeclaration, error) {
	end := t.span("GetQualifier", ns)
	out, err := t.next.GetQualifier(ns, name)
	end(err)
	return out, err
}

func (t *tracer) SetQualifier(ns string, decl *cim.QualifierDeclaration) error {
	end := t.span("SetQualifier", ns)
	err := t.next.SetQualifier(ns, decl)
	end(err)
	return err
}

func (t *tracer) DeleteQualifier(ns, name string) error {
	end := t.span("DeleteQualifier", ns)
	err := t.next.DeleteQualifier(ns, name)
	end(err)
	return err
}

func (t *tracer) CreateInstance(ns string, newInstance *cim.Instance) (*cim.InstanceName, error) {
	end := t.span("CreateInstance", ns)
	out, err := t.next.CreateInstance(ns, newInstance)
	end(err)
	return out, err
}

func (t *tracer) ModifyInstance(ns string, modifiedInstance *cim.Instance, includeQualifiers bool, propertyList []string, hasPropertyList bool) error {
	end := t.span("ModifyInstance", ns)
	err := t.next.ModifyInstance(ns, modifiedInstance, includeQualifiers, propertyList, hasPropertyList)
	end(err)
	return err
}

func (t *tracer) GetInstance(ns string, iname *cim.InstanceName, opts responder.InstanceShapeOptions) (*cim.Instance, error) {
	end := t.span("GetInstance", ns)
	out, err := t.next.GetInstance(ns, iname, opts)
	end(err)
	return out, err
}

func (t *tracer) DeleteInstance(ns string, iname *cim.InstanceName) error {
	end := t.span("DeleteInstance", ns)
	err := t.next.DeleteInstance(ns, iname)
	end(err)
	return err
}

func (t *tracer) EnumerateInstances(ns, className string, localOnly, deepInheritance bool, opts responder.InstanceShapeOptions) ([]*cim.Instance, error) {
	end := t.span("EnumerateInstances", ns)
	out, err := t.next.EnumerateInstances(ns, className, localOnly, deepInheritance, opts)
	end(err)
	return out, err
}

func (t *tracer) EnumerateInstanceNames(ns, className string) ([]*cim.InstanceName, error) {
	end := t.span("EnumerateInstanceNames", ns)
	out, err := t.next.EnumerateInstanceNames(ns, className)
	end(err)
	return out, err
}

func (t *tracer) ExecQuery(ns, query, queryLanguage string) ([]*cim.Instance, error) {
	end := t.span("ExecQuery", ns)
	out, err := t.next.ExecQuery(ns, query, queryLanguage)
	end(err)
	return out, err
}

func (t *tracer) ReferenceNames(ns string, isClass bool, className string, instanceName *cim.InstanceName, resultClass, role string) ([]string, []*cim.InstanceName, error) {
	end := t.span("ReferenceNames", ns)
	names, paths, err := t.next.ReferenceNames(ns, isClass, className, instanceName, resultClass, role)
	end(err)
	return names, paths, err
}

func (t *tracer) References(ns string, isClass bool, className string, instanceName *cim.InstanceName, resultClass, role string, opts responder.ClassShapeOptions) ([]cim.ClassName, []*cim.Class, []*cim.Instance, error) {
	end := t.span("References", ns)
	classNames, classes, insts, err := t.next.References(ns, isClass, className, instanceName, resultClass, role, opts)
	end(err)
	return classNames, classes, insts, err
}

func (t *tracer) AssociatorNames(ns string, isClass bool, className string, instanceName *cim.InstanceName, assocClass, resultClass, role, resultRole string) ([]string, []*cim.InstanceName, error) {
	end := t.span("AssociatorNames", ns)
	names, paths, err := t.next.AssociatorNames(ns, isClass, className, instanceName, assocClass, resultClass, role, resultRole)
	end(err)
	return names, paths, err
}

func (t *tracer) Associators(ns string, isClass bool, className string, instanceName *cim.InstanceName, assocClass, resultClass, role, resultRole string, opts responder.ClassShapeOptions) ([]cim.ClassName, []*cim.Class, []*cim.Instance, error) {
	end := t.span("Associators", ns)
	classNames, classes, insts, err := t.next.Associators(ns, isClass, className, instanceName, assocClass, resultClass, role, resultRole, opts)
	end(err)
	return classNames, classes, insts, err
}

func (t *tracer) OpenEnumerateInstancePaths(ns, className string, openOpts responder.OpenOptions) (responder.PullInstancePathsPage, error) {
	end := t.span("OpenEnumerateInstancePaths", ns)
	out, err := t.next.OpenEnumerateInstancePaths(ns, className, openOpts)
	end(err)
	return out, err
}

func (t *tracer) OpenEnumerateInstances(ns, className string, localOnly, deepInheritance bool, opts responder.InstanceShapeOptions, openOpts responder.OpenOptions) (responder.PullInstancesPage, error) {
	end := t.span("OpenEnumerateInstances", ns)
	out, err := t.next.OpenEnumerateInstances(ns, className, localOnly, deepInheritance, opts, openOpts)
	end(err)
	return out, err
}

func (t *tracer) OpenReferenceInstancePaths(ns string, instanceName *cim.InstanceName, resultClass, role string, openOpts responder.OpenOptions) (responder.PullInstancePathsPage, error) {
	end := t.span("OpenReferenceInstancePaths", ns)
	out, err := t.next.OpenReferenceInstancePaths(ns, instanceName, resultClass, role, openOpts)
	end(err)
	return out, err
}

func (t *tracer) OpenReferenceInstances(ns string, instanceName *cim.InstanceName, resultClass, role string, openOpts responder.OpenOptions) (responder.PullInstancesPage, error) {
	end := t.span("OpenReferenceInstances", ns)
	out, err := t.next.OpenReferenceInstances(ns, instanceName, resultClass, role, openOpts)
	end(err)
	return out, err
}

func (t *tracer) OpenAssociatorInstancePaths(ns string, instanceName *cim.InstanceName, assocClass, resultClass, role, resultRole string, openOpts responder.OpenOptions) (responder.PullInstancePathsPage, error) {
	end := t.span("OpenAssociatorInstancePaths", ns)
	out, err := t.next.OpenAssociatorInstancePaths(ns, instanceName, assocClass, resultClass, role, resultRole, openOpts)
	end(err)
	return out, err
}

func (t *tracer) OpenAssociatorInstances(ns string, instanceName *cim.InstanceName, assocClass, resultClass, role, resultRole string, openOpts responder.OpenOptions) (responder.PullInstancesPage, error) {
	end := t.span("OpenAssociatorInstances", ns)
	out, err := t.next.OpenAssociatorInstances(ns, instanceName, assocClass, resultClass, role, resultRole, openOpts)
	end(err)
	return out, err
}

func (t *tracer) OpenQueryInstances(ns, query, queryLanguage string, openOpts responder.OpenOptions) (responder.PullInstancesPage, error) {
	end := t.span("OpenQueryInstances", ns)
	out, err := t.next.OpenQueryInstances(ns, query, queryLanguage, openOpts)
	end(err)
	return out, err
}

func (t *tracer) PullInstancesWithPath(ns, contextID string, maxObjectCount int) (responder.PullInstancesPage, error) {
	end := t.span("PullInstancesWithPath", ns)
	out, err := t.next.PullInstancesWithPath(ns, contextID, maxObjectCount)
	end(err)
	return out, err
}

func (t *tracer) PullInstancePaths(ns, contextID string, maxObjectCount int) (responder.PullInstancePathsPage, error) {
	end := t.span("PullInstancePaths", ns)
	out, err := t.next.PullInstancePaths(ns, contextID, maxObjectCount)
	end(err)
	return out, err
}

func (t *tracer) PullInstances(ns, contextID string, maxObjectCount int) (responder.PullInstancesPage, error) {
	end := t.span("PullInstances", ns)
	out, err := t.next.PullInstances(ns, contextID, maxObjectCount)
	end(err)
	return out, err
}

func (t *tracer) CloseEnumeration(ns, contextID string) error {
	end := t.span("CloseEnumeration", ns)
	err := t.next.CloseEnumeration(ns, contextID)
	end(err)
	return err
}
