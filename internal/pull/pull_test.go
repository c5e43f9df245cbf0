package pull

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.datum.net/cimrepo/internal/cimerrors"
)

func anySlice(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestValidateOpenParametersRequiresLanguageWithQuery(t *testing.T) {
	err := ValidateOpenParameters("SELECT *", "", false, 0)
	require.Error(t, err)
	code, _ := cimerrors.CodeOf(err)
	assert.Equal(t, cimerrors.InvalidParameter, code)
}

func TestValidateOpenParametersRejectsUnsupportedLanguage(t *testing.T) {
	err := ValidateOpenParameters("SELECT *", "SQL", false, 0)
	require.Error(t, err)
	code, _ := cimerrors.CodeOf(err)
	assert.Equal(t, cimerrors.QueryLanguageNotSupported, code)
}

func TestValidateOpenParametersRejectsOutOfRangeTimeout(t *testing.T) {
	err := ValidateOpenParameters("", "", true, MaxOperationTimeout+1)
	require.Error(t, err)
	code, _ := cimerrors.CodeOf(err)
	assert.Equal(t, cimerrors.InvalidParameter, code)
}

func TestOpenReturnsWholeSetWhenUnderLimit(t *testing.T) {
	m := New(false)
	page, eos, contextID, err := m.Open("root/cimv2", PullInstances, anySlice(5), 10)
	require.NoError(t, err)
	assert.True(t, eos)
	assert.Empty(t, contextID)
	assert.Len(t, page, 5)
}

func TestOpenDefaultsMaxObjectCount(t *testing.T) {
	m := New(false)
	page, eos, contextID, err := m.Open("root/cimv2", PullInstances, anySlice(DefaultMaxObjectCount+1), 0)
	require.NoError(t, err)
	assert.False(t, eos)
	assert.NotEmpty(t, contextID)
	assert.Len(t, page, DefaultMaxObjectCount)
}

func TestOpenPagesWhenOverLimit(t *testing.T) {
	m := New(false)
	page, eos, contextID, err := m.Open("root/cimv2", PullInstances, anySlice(7), 3)
	require.NoError(t, err)
	assert.False(t, eos)
	assert.NotEmpty(t, contextID)
	assert.Len(t, page, 3)
}

func TestPullDrainsContextAndAutoCloses(t *testing.T) {
	m := New(false)
	_, eos, contextID, err := m.Open("root/cimv2", PullInstances, anySlice(7), 3)
	require.NoError(t, err)
	require.False(t, eos)

	page, eos, err := m.Pull(contextID, "root/cimv2", PullInstances, 3)
	require.NoError(t, err)
	assert.False(t, eos)
	assert.Len(t, page, 3)

	page, eos, err = m.Pull(contextID, "root/cimv2", PullInstances, 3)
	require.NoError(t, err)
	assert.True(t, eos)
	assert.Len(t, page, 1)

	err = m.Close(contextID)
	require.Error(t, err, "context must auto-close on last page")
	code, _ := cimerrors.CodeOf(err)
	assert.Equal(t, cimerrors.InvalidEnumerationContext, code)
}

func TestPullRejectsMismatchedNamespace(t *testing.T) {
	m := New(false)
	_, _, contextID, err := m.Open("root/cimv2", PullInstances, anySlice(7), 3)
	require.NoError(t, err)

	_, _, err = m.Pull(contextID, "root/other", PullInstances, 3)
	require.Error(t, err)
	code, _ := cimerrors.CodeOf(err)
	assert.Equal(t, cimerrors.InvalidEnumerationContext, code)
}

func TestPullRejectsMismatchedPullType(t *testing.T) {
	m := New(false)
	_, _, contextID, err := m.Open("root/cimv2", PullInstances, anySlice(7), 3)
	require.NoError(t, err)

	_, _, err = m.Pull(contextID, "root/cimv2", PullInstancePaths, 3)
	require.Error(t, err)
	code, _ := cimerrors.CodeOf(err)
	assert.Equal(t, cimerrors.InvalidEnumerationContext, code)
}

func TestPullUnknownContext(t *testing.T) {
	m := New(false)
	_, _, err := m.Pull("missing", "root/cimv2", PullInstances, 3)
	require.Error(t, err)
	code, _ := cimerrors.CodeOf(err)
	assert.Equal(t, cimerrors.InvalidEnumerationContext, code)
}

func TestCloseUnknownContext(t *testing.T) {
	m := New(false)
	err := m.Close("missing")
	require.Error(t, err)
	code, _ := cimerrors.CodeOf(err)
	assert.Equal(t, cimerrors.InvalidEnumerationContext, code)
}

func TestDisabledPullOperationsFailEverything(t *testing.T) {
	m := New(true)

	_, _, _, err := m.Open("root/cimv2", PullInstances, anySlice(1), 0)
	require.Error(t, err)
	code, _ := cimerrors.CodeOf(err)
	assert.Equal(t, cimerrors.NotSupported, code)

	_, _, err = m.Pull("whatever", "root/cimv2", PullInstances, 0)
	require.Error(t, err)
	code, _ = cimerrors.CodeOf(err)
	assert.Equal(t, cimerrors.NotSupported, code)

	err = m.Close("whatever")
	require.Error(t, err)
	code, _ = cimerrors.CodeOf(err)
	assert.Equal(t, cimerrors.NotSupported, code)
}
