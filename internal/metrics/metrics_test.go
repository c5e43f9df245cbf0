package metrics_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.datum.net/cimrepo/internal/metrics"
	"go.datum.net/cimrepo/internal/responder"
)

type fakeResponder struct {
	responder.Interface
	classNames []string
	err        error
}

func (f *fakeResponder) EnumerateClassNames(ns, className string, deepInheritance bool) ([]string, error) {
	return f.classNames, f.err
}

func TestWithMetricsRecordsSuccessOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(reg)
	fake := &fakeResponder{classNames: []string{"CIM_A"}}

	wrapped := metrics.WithMetrics(fake, rec)
	_, err := wrapped.EnumerateClassNames("root/cimv2", "", false)
	require.NoError(t, err)

	expected := `
# HELP cimrepo_operations_total Count of CIM repository operations by name and outcome.
# TYPE cimrepo_operations_total counter
cimrepo_operations_total{operation="EnumerateClassNames",outcome="success"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "cimrepo_operations_total"))
}

func TestWithMetricsRecordsErrorOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(reg)
	fake := &fakeResponder{err: errors.New("boom")}

	wrapped := metrics.WithMetrics(fake, rec)
	_, err := wrapped.EnumerateClassNames("root/cimv2", "", false)
	require.Error(t, err)

	expected := `
# HELP cimrepo_operations_total Count of CIM repository operations by name and outcome.
# TYPE cimrepo_operations_total counter
cimrepo_operations_total{operation="EnumerateClassNames",outcome="error"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "cimrepo_operations_total"))
}
