package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiTanyaZhao/food-order-system/internal/domain"
)

func TestErrorKinds(t *testing.T) {
	err := domain.NotFound("order", 42)
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.Contains(t, err.Error(), "order 42")

	trans := domain.InvalidTransition(7, domain.OrderStatusCompleted, domain.OrderStatusCancelled)
	assert.True(t, domain.IsInvalidTransition(trans))
	assert.Equal(t, domain.OrderStatusCompleted, trans.From)
	assert.Equal(t, domain.OrderStatusCancelled, trans.To)

	arg := domain.InvalidArgument("quantity", "must be greater than 0")
	assert.True(t, domain.IsInvalidArgument(arg))
	assert.Equal(t, "quantity", arg.Field)
}

func TestErrorKinds_WrappedStillMatch(t *testing.T) {
	inner := domain.NotModifiable(3, domain.OrderStatusCompleted)
	wrapped := fmt.Errorf("add item: %w", inner)
	assert.True(t, domain.IsNotModifiable(wrapped))
}

func TestStorageFailure_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := domain.StorageFailure("insert order", cause)

	require.True(t, domain.IsStorageFailure(err))
	assert.ErrorIs(t, err, cause)
}

func TestKindOf_ForeignError(t *testing.T) {
	assert.Equal(t, domain.ErrorKind(""), domain.KindOf(errors.New("plain")))
}
