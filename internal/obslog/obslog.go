// Package obslog wraps a responder.Interface with per-operation
// structured logging, in the shape of the teacher's
// internal/grpc/logging.UnaryServerInterceptor: one line on entry, one on
// exit, using log/slog.
package obslog

import (
	"log/slog"

	"go.datum.net/cimrepo/internal/responder"
	"go.datum.net/cimrepo/pkg/cim"
)

// WithLogging wraps next so every operation logs its namespace at Info on
// entry and either the result count (Info) or the failure (Error) on
// exit.
func WithLogging(next responder.Interface, logger *slog.Logger) responder.Interface {
	if logger == nil {
		logger = slog.Default()
	}
	return &logged{next: next, log: logger}
}

type logged struct {
	next responder.Interface
	log  *slog.Logger
}

func (l *logged) enter(op, ns string) {
	l.log.Info("cim operation received", slog.String("operation", op), slog.String("namespace", ns))
}

func (l *logged) exit(op, ns string, count int, err error) {
	if err != nil {
		l.log.Error("cim operation failed", slog.String("operation", op), slog.String("namespace", ns), slog.Any("error", err))
		return
	}
	l.log.Info("cim operation completed", slog.String("operation", op), slog.String("namespace", ns), slog.Int("count", count))
}

func (l *logged) EnumerateClasses(ns, className string, deepInheritance bool, opts responder.ClassShapeOptions) ([]*cim.Class, error) {
	l.enter("EnumerateClasses", ns)
	out, err := l.next.EnumerateClasses(ns, className, deepInheritance, opts)
	l.exit("EnumerateClasses", ns, len(out), err)
	return out, err
}

func (l *logged) EnumerateClassNames(ns, className string, deepInheritance bool) ([]string, error) {
	l.enter("EnumerateClassNames", ns)
	out, err := l.next.EnumerateClassNames(ns, className, deepInheritance)
	l.exit("EnumerateClassNames", ns, len(out), err)
	return out, err
}

func (l *logged) GetClass(ns, className string, opts responder.ClassShapeOptions) (*cim.Class, error) {
	l.enter("GetClass", ns)
	out, err := l.next.GetClass(ns, className, opts)
	l.exit("GetClass", ns, 1, err)
	return out, err
}

func (l *logged) CreateClass(ns string, newClass *cim.Class) error {
	l.enter("CreateClass", ns)
	err := l.next.CreateClass(ns, newClass)
	l.exit("CreateClass", ns, 1, err)
	return err
}

func (l *logged) ModifyClass(ns string, modifiedClass *cim.Class) error {
	l.enter("ModifyClass", ns)
	err := l.next.ModifyClass(ns, modifiedClass)
	l.exit("ModifyClass", ns, 1, err)
	return err
}

func (l *logged) DeleteClass(ns, className string) error {
	l.enter("DeleteClass", ns)
	err := l.next.DeleteClass(ns, className)
	l.exit("DeleteClass", ns, 1, err)
	return err
}

func (l *logged) EnumerateQualifiers(ns string) ([]*cim.QualifierDeclaration, error) {
	l.enter("EnumerateQualifiers", ns)
	out, err := l.next.EnumerateQualifiers(ns)
	l.exit("EnumerateQualifiers", ns, len(out), err)
	return out, err
}

func (l *logged) GetQualifier(ns, name string) (*cim.QualifierDeclaration, error) {
	l.enter("GetQualifier", ns)
	out, err := l.next.GetQualifier(ns, name)
	l.exit("GetQualifier", ns, 1, err)
	return out, err
}

func (l *logged) SetQualifier(ns string, decl *cim.QualifierDeclaration) error {
	l.enter("SetQualifier", ns)
	err := l.next.SetQualifier(ns, decl)
	l.exit("SetQualifier", ns, 1, err)
	return err
}

func (l *logged) DeleteQualifier(ns, name string) error {
	l.enter("DeleteQualifier", ns)
	err := l.next.DeleteQualifier(ns, name)
	l.exit("DeleteQualifier", ns, 1, err)
	return err
}

func (l *logged) CreateInstance(ns string, newInstance *cim.Instance) (*cim.InstanceName, error) {
	l.enter("CreateInstance", ns)
	out, err := l.next.CreateInstance(ns, newInstance)
	l.exit("CreateInstance", ns, 1, err)
	return out, err
}

func (l *logged) ModifyInstance(ns string, modifiedInstance *cim.Instance, includeQualifiers bool, propertyList []string, hasPropertyList bool) error {
	l.enter("ModifyInstance", ns)
	err := l.next.ModifyInstance(ns, modifiedInstance, includeQualifiers, propertyList, hasPropertyList)
	l.exit("ModifyInstance", ns, 1, err)
	return err
}

func (l *logged) GetInstance(ns string, iname *cim.InstanceName, opts responder.InstanceShapeOptions) (*cim.Instance, error) {
	l.enter("GetInstance", ns)
	out, err := l.next.GetInstance(ns, iname, opts)
	l.exit("GetInstance", ns, 1, err)
	return out, err
}

func (l *logged) DeleteInstance(ns string, iname *cim.InstanceName) error {
	l.enter("DeleteInstance", ns)
	err := l.next.DeleteInstance(ns, iname)
	l.exit("DeleteInstance", ns, 1, err)
	return err
}

func (l *logged) EnumerateInstances(ns, className string, localOnly, deepInheritance bool, opts responder.InstanceShapeOptions) ([]*cim.Instance, error) {
	l.enter("EnumerateInstances", ns)
	out, err := l.next.EnumerateInstances(ns, className, localOnly, deepInheritance, opts)
	l.exit("EnumerateInstances", ns, len(out), err)
	return out, err
}

func (l *logged) EnumerateInstanceNames(ns, className string) ([]*cim.InstanceName, error) {
	l.enter("EnumerateInstanceNames", ns)
	out, err := l.next.EnumerateInstanceNames(ns, className)
	l.exit("EnumerateInstanceNames", ns, len(out), err)
	return out, err
}

func (l *logged) ExecQuery(ns, query, queryLanguage string) ([]*cim.Instance, error) {
	l.enter("ExecQuery", ns)
	out, err := l.next.ExecQuery(ns, query, queryLanguage)
	l.exit("ExecQuery", ns, len(out), err)
	return out, err
}

func (l *logged) ReferenceNames(ns string, isClass bool, className string, instanceName *cim.InstanceName, resultClass, role string) ([]string, []*cim.InstanceName, error) {
	l.enter("ReferenceNames", ns)
	names, paths, err := l.next.ReferenceNames(ns, isClass, className, instanceName, resultClass, role)
	l.exit("ReferenceNames", ns, len(names)+len(paths), err)
	return names, paths, err
}

func (l *logged) References(ns string, isClass bool, className string, instanceName *cim.InstanceName, resultClass, role string, opts responder.ClassShapeOptions) ([]cim.ClassName, []*cim.Class, []*cim.Instance, error) {
	l.enter("References", ns)
	classNames, classes, insts, err := l.next.References(ns, isClass, className, instanceName, resultClass, role, opts)
	l.exit("References", ns, len(classes)+len(insts), err)
	return classNames, classes, insts, err
}

func (l *logged) AssociatorNames(ns string, isClass bool, className string, instanceName *cim.InstanceName, assocClass, resultClass, role, resultRole string) ([]string, []*cim.InstanceName, error) {
	l.enter("AssociatorNames", ns)
	names, paths, err := l.next.AssociatorNames(ns, isClass, className, instanceName, assocClass, resultClass, role, resultRole)
	l.exit("AssociatorNames", ns, len(names)+len(paths), err)
	return names, paths, err
}

func (l *logged) Associators(ns string, isClass bool, className string, instanceName *cim.InstanceName, assocClass, resultClass, role, resultRole string, opts responder.ClassShapeOptions) ([]cim.ClassName, []*cim.Class, []*cim.Instance, error) {
	l.enter("Associators", ns)
	classNames, classes, insts, err := l.next.Associators(ns, isClass, className, instanceName, assocClass, resultClass, role, resultRole, opts)
	l.exit("Associators", ns, len(classes)+len(insts), err)
	return classNames, classes, insts, err
}

func (l *logged) OpenEnumerateInstancePaths(ns, className string, openOpts responder.OpenOptions) (responder.PullInstancePathsPage, error) {
	l.enter("OpenEnumerateInstancePaths", ns)
	out, err := l.next.OpenEnumerateInstancePaths(ns, className, openOpts)
	l.exit("OpenEnumerateInstancePaths", ns, len(out.Paths), err)
	return out, err
}

func (l *logged) OpenEnumerateInstances(ns, className string, localOnly, deepInheritance bool, opts responder.InstanceShapeOptions, openOpts responder.OpenOptions) (responder.PullInstancesPage, error) {
	l.enter("OpenEnumerateInstances", ns)
	out, err := l.next.OpenEnumerateInstances(ns, className, localOnly, deepInheritance, opts, openOpts)
	l.exit("OpenEnumerateInstances", ns, len(out.Instances), err)
	return out, err
}

func (l *logged) OpenReferenceInstancePaths(ns string, instanceName *cim.InstanceName, resultClass, role string, openOpts responder.OpenOptions) (responder.PullInstancePathsPage, error) {
	l.enter("OpenReferenceInstancePaths", ns)
	out, err := l.next.OpenReferenceInstancePaths(ns, instanceName, resultClass, role, openOpts)
	l.exit("OpenReferenceInstancePaths", ns, len(out.Paths), err)
	return out, err
}

func (l *logged) OpenReferenceInstances(ns string, instanceName *cim.InstanceName, resultClass, role string, openOpts responder.OpenOptions) (responder.PullInstancesPage, error) {
	l.enter("OpenReferenceInstances", ns)
	out, err := l.next.OpenReferenceInstances(ns, instanceName, resultClass, role, openOpts)
	l.exit("OpenReferenceInstances", ns, len(out.Instances), err)
	return out, err
}

func (l *logged) OpenAssociatorInstancePaths(ns string, instanceName *cim.InstanceName, assocClass, resultClass, role, resultRole string, openOpts responder.OpenOptions) (responder.PullInstancePathsPage, error) {
	l.enter("OpenAssociatorInstancePaths", ns)
	out, err := l.next.OpenAssociatorInstancePaths(ns, instanceName, assocClass, resultClass, role, resultRole, openOpts)
	l.exit("OpenAssociatorInstancePaths", ns, len(out.Paths), err)
	return out, err
}

func (l *logged) OpenAssociatorInstances(ns string, instanceName *cim.InstanceName, assocClass, resultClass, role, resultRole string, openOpts responder.OpenOptions) (responder.PullInstancesPage, error) {
	l.enter("OpenAssociatorInstances", ns)
	out, err := l.next.OpenAssociatorInstances(ns, instanceName, assocClass, resultClass, role, resultRole, openOpts)
	l.exit("OpenAssociatorInstances", ns, len(out.Instances), err)
	return out, err
}

func (l *logged) OpenQueryInstances(ns, query, queryLanguage string, openOpts responder.OpenOptions) (responder.PullInstancesPage, error) {
	l.enter("OpenQueryInstances", ns)
	out, err := l.next.OpenQueryInstances(ns, query, queryLanguage, openOpts)
	l.exit("OpenQueryInstances", ns, len(out.Instances), err)
	return out, err
}

func (l *logged) PullInstancesWithPath(ns, contextID string, maxObjectCount int) (responder.PullInstancesPage, error) {
	l.enter("PullInstancesWithPath", ns)
	out, err := l.next.PullInstancesWithPath(ns, contextID, maxObjectCount)
	l.exit("PullInstancesWithPath", ns, len(out.Instances), err)
	return out, err
}

func (l *logged) PullInstancePaths(ns, contextID string, maxObjectCount int) (responder.PullInstancePathsPage, error) {
	l.enter("PullInstancePaths", ns)
	out, err := l.next.PullInstancePaths(ns, contextID, maxObjectCount)
	l.exit("PullInstancePaths", ns, len(out.Paths), err)
	return out, err
}

func (l *logged) PullInstances(ns, contextID string, maxObjectCount int) (responder.PullInstancesPage, error) {
	l.enter("PullInstances", ns)
	out, err := l.next.PullInstances(ns, contextID, maxObjectCount)
	l.exit("PullInstances", ns, len(out.Instances), err)
	return out, err
}

func (l *logged) CloseEnumeration(ns, contextID string) error {
	l.enter("CloseEnumeration", ns)
	err := l.next.CloseEnumeration(ns, contextID)
	l.exit("CloseEnumeration", ns, 0, err)
	return err
}
