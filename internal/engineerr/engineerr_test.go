package engineerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngineErrorMessage(t *testing.T) {
	err := New(NotFound, "object %s not found", "Customer")
	assert.Equal(t, "NotFound: object Customer not found", err.Error())
}

func TestEngineErrorWrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(IoError, cause, "failed reading %s", "Base.app")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}

func TestEngineErrorDetails(t *testing.T) {
	err := New(Ambiguous, "name resolves to multiple objects").
		WithDetail("candidates", []string{"Table:70000", "Page:70000"})
	assert.Len(t, err.Details["candidates"], 2)
}

func TestEngineErrorIsSentinel(t *testing.T) {
	err := NotFoundf("object %d missing", 70000)
	assert.True(t, errors.Is(err, Sentinel(NotFound)))
	assert.False(t, errors.Is(err, Sentinel(Internal)))
}

func TestEmptyDatabaseError(t *testing.T) {
	err := EmptyDatabaseError()
	assert.Equal(t, EmptyDatabase, err.Code)
	assert.Contains(t, err.Details["load_tools"], "auto_discover")
}
