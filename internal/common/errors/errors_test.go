// internal/common/errors/errors_test.go
package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsufficientResources_IsFatalAndNotRetryable(t *testing.T) {
	err := NewInsufficientResourcesError("gujarat", []string{"water", "transport"})

	assert.True(t, IsInsufficientResources(err))
	assert.False(t, IsRetryable(err))
	assert.Equal(t, "gujarat", err.Metadata["region"])
	assert.Contains(t, err.Details, "water")
}

func TestRepositoryFailure_WrapsAndUnwrapsCause(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := NewRepositoryFailureError(cause)

	assert.True(t, IsRetryable(err))
	assert.Equal(t, ErrCodeRepositoryFailure, CodeOf(err))
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestCodeOf_SurvivesWrapping(t *testing.T) {
	inner := NewCatalogQueryFailedError("gujarat", fmt.Errorf("es down"))
	wrapped := fmt.Errorf("run failed: %w", inner)

	assert.Equal(t, ErrCodeCatalogQueryFailed, CodeOf(wrapped))
	assert.True(t, IsRetryable(wrapped))
}

func TestCodeOf_ForeignError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), CodeOf(fmt.Errorf("plain")))
	assert.False(t, IsRetryable(fmt.Errorf("plain")))
	assert.False(t, IsInsufficientResources(nil))
}

func TestStandardError_Message(t *testing.T) {
	err := NewInvalidRequestError("region must not be empty")
	assert.Contains(t, err.Error(), string(ErrCodeInvalidRequest))
}
