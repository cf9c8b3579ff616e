package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderTransition(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	t.Run("processing to shipped", func(t *testing.T) {
		o := &Order{Status: StatusProcessing}
		require.NoError(t, o.Transition(StatusShipped, now))
		assert.Equal(t, StatusShipped, o.Status)
		assert.False(t, o.IsDelivered)
		assert.Nil(t, o.DeliveredAt)
	})

	t.Run("delivered sets marker", func(t *testing.T) {
		o := &Order{Status: StatusShipped}
		require.NoError(t, o.Transition(StatusDelivered, now))
		assert.True(t, o.IsDelivered)
		require.NotNil(t, o.DeliveredAt)
		assert.Equal(t, now, *o.DeliveredAt)
	})

	t.Run("delivered cannot be cancelled", func(t *testing.T) {
		delivered := now.Add(-time.Hour)
		o := &Order{Status: StatusDelivered, IsDelivered: true, DeliveredAt: &delivered}
		err := o.Transition(StatusCancelled, now)
		assert.Equal(t, KindInvalidStatusTransition, KindOf(err))
		// order unchanged
		assert.Equal(t, StatusDelivered, o.Status)
		assert.True(t, o.IsDelivered)
		assert.Equal(t, delivered, *o.DeliveredAt)
	})

	t.Run("leaving delivered clears marker", func(t *testing.T) {
		delivered := now.Add(-time.Hour)
		o := &Order{Status: StatusDelivered, IsDelivered: true, DeliveredAt: &delivered}
		require.NoError(t, o.Transition(StatusShipped, now))
		assert.False(t, o.IsDelivered)
		assert.Nil(t, o.DeliveredAt)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		o := &Order{Status: StatusProcessing}
		err := o.Transition(OrderStatus("Lost"), now)
		assert.Equal(t, KindInvalidStatusTransition, KindOf(err))
		assert.Equal(t, StatusProcessing, o.Status)
	})
}
