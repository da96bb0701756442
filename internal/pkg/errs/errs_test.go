package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"ewaste/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("pickup", "42")

		assert.Equal(t, "pickup", err.ParamName)
		assert.Equal(t, "42", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 42", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewObjectNotFoundErrorWithCause("worker", "7", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: worker, ID is: 7 (cause: connection reset)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	err := errs.NewValueIsInvalidErrorWithCause("status", errors.New("SHIPPED is not a pickup status"))

	assert.Equal(t, "status", err.ParamName)
	assert.Equal(t, "value is invalid: status (cause: SHIPPED is not a pickup status)", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, "value is invalid: status", errs.NewValueIsInvalidError("status").Error())
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("formats bounds", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("latitude", 91.5, -90, 90)

		assert.Equal(t, "value is invalid: 91.5 is latitude, min value is -90, max value is 90", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("strips newlines from values", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("notes", "line one\nline two", 0, 500)

		assert.Contains(t, err.Error(), "line one line two")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredErrorWithCause("pincode", errors.New("empty string"))

	assert.Equal(t, "value is required: pincode (cause: empty string)", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestConflictError(t *testing.T) {
	t.Run("NewConflictError", func(t *testing.T) {
		err := errs.NewConflictError("pickup", "already assigned to a different worker")

		assert.Equal(t, "conflict: pickup: already assigned to a different worker", err.Error())
		assert.Equal(t, errs.ErrConflict, err.Unwrap())
	})

	t.Run("wrapped conflicts are still detected", func(t *testing.T) {
		err := fmt.Errorf("assign: %w", errs.NewConflictError("pickup", "not the assigned worker"))

		require.ErrorIs(t, err, errs.ErrConflict)
		var conflict *errs.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "pickup", conflict.Object)
	})
}

func TestIsValidation(t *testing.T) {
	assert.True(t, errs.IsValidation(errs.NewValueIsInvalidError("status")))
	assert.True(t, errs.IsValidation(errs.NewValueIsRequiredError("address")))
	assert.True(t, errs.IsValidation(errs.NewValueIsOutOfRangeError("weight", -1, 0, 1000)))
	assert.False(t, errs.IsValidation(errs.NewConflictError("pickup", "taken")))
	assert.False(t, errs.IsValidation(errs.NewObjectNotFoundError("pickup", "1")))
}
