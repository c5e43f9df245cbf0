// Package metrics wraps a responder.Interface with Prometheus counters
// and histograms, one per operation name and outcome, in the idiom of
// the teacher's direct prometheus/client_golang usage in
// cmd/apiserver/app/serve.go (there, wiring promhttp.Handler; here,
// producing the metrics it would serve).
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"go.datum.net/cimrepo/internal/responder"
	"go.datum.net/cimrepo/pkg/cim"
)

// Recorder holds the Prometheus collectors shared across every wrapped
// operation.
type Recorder struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRecorder constructs and registers a Recorder's collectors against
// reg. Pass prometheus.NewRegistry() in tests to avoid collisions with
// the default global registry.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cimrepo_operations_total",
			Help: "Count of CIM repository operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cimrepo_operation_duration_seconds",
			Help:    "Duration of CIM repository operations by name.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	reg.MustRegister(r.total, r.duration)
	return r
}

func (r *Recorder) observe(op string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	r.total.WithLabelValues(op, outcome).Inc()
	r.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// WithMetrics wraps next so every operation increments total and
// observes duration against rec.
func WithMetrics(next responder.Interface, rec *Recorder) responder.Interface {
	return &instrumented{next: next, rec: rec}
}

type instrumented struct {
	next responder.Interface
	rec  *Recorder
}

func (m *instrumented) EnumerateClasses(ns, className string, deepInheritance bool, opts responder.ClassShapeOptions) ([]*cim.Class, error) {
	start := time.Now()
	out, err := m.next.EnumerateClasses(ns, className, deepInheritance, opts)
	m.rec.observe("EnumerateClasses", start, err)
	return out, err
}

func (m *instrumented) EnumerateClassNames(ns, className string, deepInheritance bool) ([]string, error) {
	start := time.Now()
	out, err := m.next.EnumerateClassNames(ns, className, deepInheritance)
	m.rec.observe("EnumerateClassNames", start, err)
	return out, err
}

func (m *instrumented) GetClass(ns, className string, opts responder.ClassShapeOptions) (*cim.Class, error) {
	start := time.Now()
	out, err := m.next.GetClass(ns, className, opts)
	m.rec.observe("GetClass", start, err)
	return out, err
}

func (m *instrumented) CreateClass(ns string, newClass *cim.Class) error {
	start := time.Now()
	err := m.next.CreateClass(ns, newClass)
	m.rec.observe("CreateClass", start, err)
	return err
}

func (m *instrumented) ModifyClass(ns string, modifiedClass *cim.Class) error {
	start := time.Now()
	err := m.next.ModifyClass(ns, modifiedClass)
	m.rec.observe("ModifyClass", start, err)
	return err
}

func (m *instrumented) DeleteClass(ns, className string) error {
	start := time.Now()
	err := m.next.DeleteClass(ns, className)
	m.rec.observe("DeleteClass", start, err)
	return err
}

func (m *instrumented) EnumerateQualifiers(ns string) ([]*cim.QualifierDeclaration, error) {
	start := time.Now()
	out, err := m.next.EnumerateQualifiers(ns)
	m.rec.observe("EnumerateQualifiers", start, err)
	return out, err
}

func (m *instrumented) GetQualifier(ns, name string) (*cim.QualifierDeclaration, error) {
	start := time.Now()
	out, err := m.next.GetQualifier(ns, name)
	m.rec.observe("GetQualifier", start, err)
	return out, err
}

func (m *instrumented) SetQualifier(ns string, decl *cim.QualifierDeclaration) error {
	start := time.Now()
	err := m.next.SetQualifier(ns, decl)
	m.rec.observe("SetQualifier", start, err)
	return err
}

func (m *instrumented) DeleteQualifier(ns, name string) error {
	start := time.Now()
	err := m.next.DeleteQualifier(ns, name)
	m.rec.observe("DeleteQualifier", start, err)
	return err
}

func (m *instrumented) CreateInstance(ns string, newInstance *cim.Instance) (*cim.InstanceName, error) {
	start := time.Now()
	out, err := m.next.CreateInstance(ns, newInstance)
	m.rec.observe("CreateInstance", start, err)
	return out, err
}

func (m *instrumented) ModifyInstance(ns string, modifiedInstance *cim.Instance, includeQualifiers bool, propertyList []string, hasPropertyList bool) error {
	start := time.Now()
	err := m.next.ModifyInstance(ns, modifiedInstance, includeQualifiers, propertyList, hasPropertyList)
	m.rec.observe("ModifyInstance", start, err)
	return err
}

func (m *instrumented) GetInstance(ns string, iname *cim.InstanceName, opts responder.InstanceShapeOptions) (*cim.Instance, error) {
	start := time.Now()
	out, err := m.next.GetInstance(ns, iname, opts)
	m.rec.observe("GetInstance", start, err)
	return out, err
}

func (m *instrumented) DeleteInstance(ns string, iname *cim.InstanceName) error {
	start := time.Now()
	err := m.next.DeleteInstance(ns, iname)
	m.rec.observe("DeleteInstance", start, err)
	return err
}

func (m *instrumented) EnumerateInstances(ns, className string, localOnly, deepInheritance bool, opts responder.InstanceShapeOptions) ([]*cim.Instance, error) {
	start := time.Now()
	out, err := m.next.EnumerateInstances(ns, className, localOnly, deepInheritance, opts)
	m.rec.observe("EnumerateInstances", start, err)
	return out, err
}

func (m *instrumented) EnumerateInstanceNames(ns, className string) ([]*cim.InstanceName, error) {
	start := time.Now()
	out, err := m.next.EnumerateInstanceNames(ns, className)
	m.rec.observe("EnumerateInstanceNames", start, err)
	return out, err
}

func (m *instrumented) ExecQuery(ns, query, queryLanguage string) ([]*cim.Instance, error) {
	start := time.Now()
	out, err := m.next.ExecQuery(ns, query, queryLanguage)
	m.rec.observe("ExecQuery", start, err)
	return out, err
}

func (m *instrumented) ReferenceNames(ns string, isClass bool, className string, instanceName *cim.InstanceName, resultClass, role string) ([]string, []*cim.InstanceName, error) {
	start := time.Now()
	names, paths, err := m.next.ReferenceNames(ns, isClass, className, instanceName, resultClass, role)
	m.rec.observe("ReferenceNames", start, err)
	return names, paths, err
}

func (m *instrumented) References(ns string, isClass bool, className string, instanceName *cim.InstanceName, resultClass, role string, opts responder.ClassShapeOptions) ([]cim.ClassName, []*cim.Class, []*cim.Instance, error) {
	start := time.Now()
	classNames, classes, insts, err := m.next.References(ns, isClass, className, instanceName, resultClass, role, opts)
	m.rec.observe("References", start, err)
	return classNames, classes, insts, err
}

func (m *instrumented) AssociatorNames(ns string, isClass bool, className string, instanceName *cim.InstanceName, assocClass, resultClass, role, resultRole string) ([]string, []*cim.InstanceName, error) {
	start := time.Now()
	names, paths, err := m.next.AssociatorNames(ns, isClass, className, instanceName, assocClass, resultClass, role, resultRole)
	m.rec.observe("AssociatorNames", start, err)
	return names, paths, err
}

func (m *instrumented) Associators(ns string, isClass bool, className string, instanceName *cim.InstanceName, assocClass, resultClass, role, resultRole string, opts responder.ClassShapeOptions) ([]cim.ClassName, []*cim.Class, []*cim.Instance, error) {
	start := time.Now()
	classNames, classes, insts, err := m.next.Associators(ns, isClass, className, instanceName, assocClass, resultClass, role, resultRole, opts)
	m.rec.observe("Associators", start, err)
	return classNames, classes, insts, err
}

func (m *instrumented) OpenEnumerateInstancePaths(ns, className string, openOpts responder.OpenOptions) (responder.PullInstancePathsPage, error) {
	start := time.Now()
	out, err := m.next.OpenEnumerateInstancePaths(ns, className, openOpts)
	m.rec.observe("OpenEnumerateInstancePaths", start, err)
	return out, err
}

func (m *instrumented) OpenEnumerateInstances(ns, className string, localOnly, deepInheritance bool, opts responder.InstanceShapeOptions, openOpts responder.OpenOptions) (responder.PullInstancesPage, error) {
	start := time.Now()
	out, err := m.next.OpenEnumerateInstances(ns, className, localOnly, deepInheritance, opts, openOpts)
	m.rec.observe("OpenEnumerateInstances", start, err)
	return out, err
}

func (m *instrumented) OpenReferenceInstancePaths(ns string, instanceName *cim.InstanceName, resultClass, role string, openOpts responder.OpenOptions) (responder.PullInstancePathsPage, error) {
	start := time.Now()
	out, err := m.next.OpenReferenceInstancePaths(ns, instanceName, resultClass, role, openOpts)
	m.rec.observe("OpenReferenceInstancePaths", start, err)
	return out, err
}

func (m *instrumented) OpenReferenceInstances(ns string, instanceName *cim.InstanceName, resultClass, role string, openOpts responder.OpenOptions) (responder.PullInstancesPage, error) {
	start := time.Now()
	out, err := m.next.OpenReferenceInstances(ns, instanceName, resultClass, role, openOpts)
	m.rec.observe("OpenReferenceInstances", start, err)
	return out, err
}

func (m *instrumented) OpenAssociatorInstancePaths(ns string, instanceName *cim.InstanceName, assocClass, resultClass, role, resultRole string, openOpts responder.OpenOptions) (responder.PullInstancePathsPage, error) {
	start := time.Now()
	out, err := m.next.OpenAssociatorInstancePaths(ns, instanceName, assocClass, resultClass, role, resultRole, openOpts)
	m.rec.observe("OpenAssociatorInstancePaths", start, err)
	return out, err
}

func (m *instrumented) OpenAssociatorInstances(ns string, instanceName *cim.InstanceName, assocClass, resultClass, role, resultRole string, openOpts responder.OpenOptions) (responder.PullInstancesPage, error) {
	start := time.Now()
	out, err := m.next.OpenAssociatorInstances(ns, instanceName, assocClass, resultClass, role, resultRole, openOpts)
	m.rec.observe("OpenAssociatorInstances", start, err)
	return out, err
}

func (m *instrumented) OpenQueryInstances(ns, query, queryLanguage string, openOpts responder.OpenOptions) (responder.PullInstancesPage, error) {
	start := time.Now()
	out, err := m.next.OpenQueryInstances(ns, query, queryLanguage, openOpts)
	m.rec.observe("OpenQueryInstances", start, err)
	return out, err
}

func (m *instrumented) PullInstancesWithPath(ns, contextID string, maxObjectCount int) (responder.PullInstancesPage, error) {
	start := time.Now()
	out, err := m.next.PullInstancesWithPath(ns, contextID, maxObjectCount)
	m.rec.observe("PullInstancesWithPath", start, err)
	return out, err
}

func (m *instrumented) PullInstancePaths(ns, contextID string, maxObjectCount int) (responder.PullInstancePathsPage, error) {
	start := time.Now()
	out, err := m.next.PullInstancePaths(ns, contextID, maxObjectCount)
	m.rec.observe("PullInstancePaths", start, err)
	return out, err
}

func (m *instrumented) PullInstances(ns, contextID string, maxObjectCount int) (responder.PullInstancesPage, error) {
	start := time.Now()
	out, err := m.next.PullInstances(ns, contextID, maxObjectCount)
	m.rec.observe("PullInstances", start, err)
	return out, err
}

func (m *instrumented) CloseEnumeration(ns, contextID string) error {
	start := time.Now()
	err := m.next.CloseEnumeration(ns, contextID)
	m.rec.observe("CloseEnumeration", start, err)
	return err
}
