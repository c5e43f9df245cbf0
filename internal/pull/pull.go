// Package pull implements the Pull Session Manager (spec.md §4.8): the
// stateful Open/Pull/Close enumeration-context protocol layered over the
// non-paged class and instance operations.
//
// It is grounded on the teacher's session/context-table pattern in
// internal/quota's lease bookkeeping: a process-wide, mutex-guarded table
// keyed by an opaque generated id, with small self-describing entries.
package pull

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"go.datum.net/cimrepo/internal/cimerrors"
)

// PullType identifies the shape of data a context was opened for; a Pull
// call must request the same type the context was opened with.
type PullType int

const (
	PullInstancesWithPath PullType = iota
	PullInstancePaths
	PullInstances
)

// DefaultMaxObjectCount is the page size used when MaxObjectCount is
// absent from an Open… call (spec.md §4.8).
const DefaultMaxObjectCount = 100

// MaxOperationTimeout is the largest OperationTimeout (in seconds) Open…
// callers may request.
const MaxOperationTimeout = 40

// context is a single open enumeration session. Data holds whatever
// result type the session was opened for, as a slice of `any`; callers
// type-assert back to their own element type using PullType as the
// discriminant they themselves chose at Open time.
type context struct {
	pullType PullType
	namespace string
	data      []any
}

// Manager holds the process-wide enumeration-context table.
type Manager struct {
	mu                    sync.Mutex
	contexts              map[string]*context
	disablePullOperations bool
}

// New returns an empty Manager. disablePullOperations fails every pull
// operation with CIM_ERR_NOT_SUPPORTED, per the host flag in spec.md
// §4.8.
func New(disablePullOperations bool) *Manager {
	return &Manager{
		contexts:              map[string]*context{},
		disablePullOperations: disablePullOperations,
	}
}

// ValidateOpenParameters checks the parameter constraints common to every
// Open… variant (spec.md §4.8), independent of the underlying operation.
func ValidateOpenParameters(filterQuery, filterQueryLanguage string, hasOperationTimeout bool, operationTimeout int) error {
	if filterQuery != "" && filterQueryLanguage == "" {
		return cimerrors.InvalidParameterErr("FilterQuery requires FilterQueryLanguage")
	}
	if filterQueryLanguage != "" && filterQueryLanguage != "DMTF:FQL" {
		return cimerrors.QueryLanguageNotSupportedErr("query language %q is not supported", filterQueryLanguage)
	}
	if hasOperationTimeout {
		if operationTimeout < 0 || operationTimeout > MaxOperationTimeout {
			return cimerrors.InvalidParameterErr("OperationTimeout must be between 0 and %d", MaxOperationTimeout)
		}
	}
	return nil
}

// Open implements the common Open… protocol: it eagerly evaluates the
// already-executed full result set `all` (the caller is responsible for
// calling the underlying non-paged operation first) and either returns it
// whole or opens a context for the remainder.
//
// maxObjectCount is the caller's requested MaxObjectCount, or 0 to apply
// DefaultMaxObjectCount.
func (m *Manager) Open(ns string, pullType PullType, all []any, maxObjectCount int) (page []any, endOfSequence bool, contextID string, err error) {
	if m.disablePullOperations {
		return nil, false, "", cimerrors.NotSupportedErr("pull operations are disabled")
	}
	n := maxObjectCount
	if n <= 0 {
		n = DefaultMaxObjectCount
	}
	if len(all) <= n {
		return all, true, "", nil
	}

	id := uuid.NewString()
	m.mu.Lock()
	m.contexts[id] = &context{
		pullType:  pullType,
		namespace: ns,
		data:      all[n:],
	}
	m.mu.Unlock()
	return all[:n], false, id, nil
}

// Pull implements the common Pull… protocol.
func (m *Manager) Pull(contextID string, ns string, pullType PullType, maxObjectCount int) (page []any, endOfSequence bool, err error) {
	if m.disablePullOperations {
		return nil, false, cimerrors.NotSupportedErr("pull operations are disabled")
	}
	n := maxObjectCount
	if n <= 0 {
		n = DefaultMaxObjectCount
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	ctx, exists := m.contexts[contextID]
	if !exists {
		return nil, false, cimerrors.InvalidEnumerationContextErr("enumeration context %q not found", contextID)
	}
	if !strings.EqualFold(ctx.namespace, ns) {
		return nil, false, cimerrors.InvalidEnumerationContextErr("enumeration context %q does not belong to namespace %q", contextID, ns)
	}
	if ctx.pullType != pullType {
		return nil, false, cimerrors.InvalidEnumerationContextErr("enumeration context %q was not opened for this pull type", contextID)
	}

	take := n
	if take > len(ctx.data) {
		take = len(ctx.data)
	}
	page = ctx.data[:take]
	ctx.data = ctx.data[take:]

	if len(ctx.data) == 0 {
		delete(m.contexts, contextID)
		return page, true, nil
	}
	return page, false, nil
}

// Close implements spec.md §4.8 Close. It fails CIM_ERR_INVALID_ENUMERATION_CONTEXT
// if contextID is absent.
func (m *Manager) Close(contextID string) error {
	if m.disablePullOperations {
		return cimerrors.NotSupportedErr("pull operations are disabled")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.contexts[contextID]; !exists {
		return cimerrors.InvalidEnumerationContextErr("enumeration context %q not found", contextID)
	}
	delete(m.contexts, contextID)
	return nil
}
