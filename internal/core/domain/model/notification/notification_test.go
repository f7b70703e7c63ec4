package notification_test

import (
	"testing"
	"time"

	"sellerconsole/internal/core/domain/model/event"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/notification"
	"sellerconsole/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func orderEvent(status string, version int64) event.ChangeEvent {
	return event.ChangeEvent{
		EntityType: event.EntityOrder,
		EntityID:   kernel.NewUUID(),
		SellerID:   kernel.NewUUID(),
		Version:    version,
		NewStatus:  status,
		OccurredAt: testNow,
	}
}

func TestNewFromChange(t *testing.T) {
	t.Run("new order for the seller", func(t *testing.T) {
		e := orderEvent("pending", 0)
		seller := notification.Recipient{UserID: e.SellerID, Role: notification.RoleSeller}

		n, err := notification.NewFromChange(kernel.NewUUID(), seller, e, testNow)

		require.NoError(t, err)
		assert.Equal(t, "New order received", n.Title())
		assert.Contains(t, n.Message(), e.EntityID.String()[:8])
		assert.Equal(t, notification.TypeOrder, n.Type())
		assert.False(t, n.IsRead())
		assert.True(t, n.SourceEventID().IsEqual(e.SourceEventID()))
		assert.True(t, n.IsOwnedBy(e.SellerID))
	})

	t.Run("same event gives the same dedup key for every rebuild", func(t *testing.T) {
		e := orderEvent("confirmed", 1)
		retailer := notification.Recipient{UserID: kernel.NewUUID(), Role: notification.RoleRetailer}

		first, err := notification.NewFromChange(kernel.NewUUID(), retailer, e, testNow)
		require.NoError(t, err)
		second, err := notification.NewFromChange(kernel.NewUUID(), retailer, e, testNow.Add(time.Minute))
		require.NoError(t, err)

		assert.True(t, first.SourceEventID().IsEqual(second.SourceEventID()))
		assert.Equal(t, "Order confirmed", first.Title())
	})

	t.Run("unknown combination falls back to a generic message", func(t *testing.T) {
		e := orderEvent("processing", 2)
		seller := notification.Recipient{UserID: e.SellerID, Role: notification.RoleSeller}

		n, err := notification.NewFromChange(kernel.NewUUID(), seller, e, testNow)

		require.NoError(t, err)
		assert.Equal(t, "Status updated", n.Title())
		assert.Contains(t, n.Message(), "processing")
	})

	t.Run("notification events are rejected", func(t *testing.T) {
		e := orderEvent("", 0)
		e.EntityType = event.EntityNotification

		_, err := notification.NewFromChange(kernel.NewUUID(),
			notification.Recipient{UserID: kernel.NewUUID(), Role: notification.RoleSeller}, e, testNow)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("missing recipient is a validation error", func(t *testing.T) {
		_, err := notification.NewFromChange(kernel.NewUUID(), notification.Recipient{}, orderEvent("pending", 0), testNow)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNotification_MarkReadAndCreatedEvent(t *testing.T) {
	e := orderEvent("shipped", 3)
	e.EntityType = event.EntityDelivery
	e.NewStatus = "in_transit"
	retailerID := kernel.NewUUID()
	n, err := notification.NewFromChange(kernel.NewUUID(),
		notification.Recipient{UserID: retailerID, Role: notification.RoleRetailer}, e, testNow)
	require.NoError(t, err)

	require.NoError(t, n.MarkRead())
	require.NoError(t, n.MarkRead())
	assert.True(t, n.IsRead())

	created := n.CreatedEvent()
	assert.Equal(t, event.EntityNotification, created.EntityType)
	assert.True(t, created.EntityID.IsEqual(n.ID()))
	assert.True(t, created.SellerID.IsEqual(e.SellerID))
	require.NotNil(t, created.RecipientID)
	assert.True(t, created.RecipientID.IsEqual(retailerID))
	assert.Equal(t, notification.TypeDelivery, n.Type())
}

func TestParseFilter(t *testing.T) {
	tests := map[string]notification.Filter{
		"":           notification.FilterAll,
		"all":        notification.FilterAll,
		"unread":     notification.FilterUnread,
		"ordersOnly": notification.FilterOrdersOnly,
		"systemonly": notification.FilterSystemOnly,
	}
	for in, expected := range tests {
		f, err := notification.ParseFilter(in)
		require.NoError(t, err, in)
		assert.Equal(t, expected, f)
	}

	_, err := notification.ParseFilter("everything")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	assert.ElementsMatch(t, []notification.Type{notification.TypeOrder, notification.TypeDelivery},
		notification.FilterOrdersOnly.Types())
	assert.Nil(t, notification.FilterUnread.Types())
	assert.True(t, notification.FilterUnread.UnreadOnly())
}

func TestNewOverdueDeliveryAlert(t *testing.T) {
	sellerID, deliveryID := kernel.NewUUID(), kernel.NewUUID()
	eta := testNow.Add(-2 * time.Hour)

	n, err := notification.NewOverdueDeliveryAlert(kernel.NewUUID(), sellerID, deliveryID, 1, eta, testNow)

	require.NoError(t, err)
	assert.Equal(t, notification.TypeSystem, n.Type())
	assert.Contains(t, notification.FilterSystemOnly.Types(), n.Type())
	assert.True(t, n.IsOwnedBy(sellerID))
	assert.True(t, n.SellerID().IsEqual(sellerID))
	assert.Equal(t, event.EntityDelivery, n.EntityType())
	assert.True(t, n.EntityID().IsEqual(deliveryID))
	assert.Equal(t, "Delivery overdue", n.Title())
	assert.Contains(t, n.Message(), "16 Oct 2026 10:00 UTC")
	assert.False(t, n.IsRead())

	t.Run("dedup key is stable per delivery version", func(t *testing.T) {
		again, err := notification.NewOverdueDeliveryAlert(kernel.NewUUID(), sellerID, deliveryID, 1, eta, testNow)
		require.NoError(t, err)
		assert.Equal(t, n.SourceEventID(), again.SourceEventID())

		next, err := notification.NewOverdueDeliveryAlert(kernel.NewUUID(), sellerID, deliveryID, 2, eta, testNow)
		require.NoError(t, err)
		assert.NotEqual(t, n.SourceEventID(), next.SourceEventID())

		changeEvent := event.ChangeEvent{EntityType: event.EntityDelivery, EntityID: deliveryID, Version: 1}
		assert.NotEqual(t, changeEvent.SourceEventID(), n.SourceEventID())
	})

	t.Run("seller is required", func(t *testing.T) {
		_, err := notification.NewOverdueDeliveryAlert(kernel.NewUUID(), kernel.UUID{}, deliveryID, 1, eta, testNow)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
