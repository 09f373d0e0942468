package apperror_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/gastrack/internal/apperror"
)

func TestStateConflict_Message(t *testing.T) {
	err := apperror.StateConflict([]apperror.Conflict{
		{ID: "CYL1001", Status: "available"},
		{ID: "CYL1003", Status: "dispatched"},
	}, "are not empty and cannot be refilled")

	assert.Equal(t, "CYL1001 (available), CYL1003 (dispatched) are not empty and cannot be refilled", err.Error())
	assert.Equal(t, []string{"CYL1001", "CYL1003"}, err.IDs)
	assert.Equal(t, apperror.KindStateConflict, err.Kind)
}

func TestWrap(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		assert.NoError(t, apperror.Wrap("op", nil))
	})

	t.Run("KeepsTaxonomyError", func(t *testing.T) {
		orig := apperror.NotFound([]string{"CYL1"}, "cylinder CYL1 not found")
		wrapped := fmt.Errorf("context: %w", orig)

		got := apperror.Wrap("op", wrapped)
		assert.Same(t, wrapped, got)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(got))
	})

	t.Run("ForeignBecomesStore", func(t *testing.T) {
		cause := errors.New("connection reset")

		got := apperror.Wrap("dispatch cylinders", cause)

		var appErr *apperror.Error
		require.ErrorAs(t, got, &appErr)
		assert.Equal(t, apperror.KindStore, appErr.Kind)
		assert.False(t, appErr.Retryable)
		assert.ErrorIs(t, got, cause)
	})

	t.Run("DeadlineIsRetryable", func(t *testing.T) {
		got := apperror.Wrap("dispatch cylinders", fmt.Errorf("query: %w", context.DeadlineExceeded))

		var appErr *apperror.Error
		require.ErrorAs(t, got, &appErr)
		assert.True(t, appErr.Retryable)
	})
}

func TestKindOf_Foreign(t *testing.T) {
	assert.Equal(t, apperror.KindStore, apperror.KindOf(errors.New("boom")))
	assert.True(t, apperror.Is(apperror.Validation("bad"), apperror.KindValidation))
	assert.False(t, apperror.Is(errors.New("bad"), apperror.KindValidation))
}
