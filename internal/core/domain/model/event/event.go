// Package event defines the change notifications carried by the seller change feed.
package event

import (
	"fmt"
	"time"

	"sellerconsole/internal/core/domain/model/kernel"
)

// EntityType names the kind of record a ChangeEvent refers to.
type EntityType string

const (
	EntityOrder        EntityType = "order"
	EntityDelivery     EntityType = "delivery"
	EntityNotification EntityType = "notification"
)

// ChangeEvent is published after an entity write has been committed.
//
// For orders and deliveries Version is the version written and NewStatus the
// status it now has; a freshly created entity is announced at version 0 with
// status pending. Notification events carry the recipient so badge counters can
// filter on it.
type ChangeEvent struct {
	EntityType  EntityType   `json:"entityType"`
	EntityID    kernel.UUID  `json:"entityId"`
	SellerID    kernel.UUID  `json:"sellerId"`
	Version     int64        `json:"version"`
	NewStatus   string       `json:"newStatus,omitempty"`
	RecipientID *kernel.UUID `json:"recipientUserId,omitempty"`
	OccurredAt  time.Time    `json:"occurredAt"`
}

// SourceEventID is the identity of the logical change, stable across
// redeliveries of the same event.
func (e ChangeEvent) SourceEventID() kernel.UUID {
	return kernel.NameBasedUUID(fmt.Sprintf("%s:%s:%d", e.EntityType, e.EntityID, e.Version))
}

// Key identifies the entity the event belongs to. Events sharing a key are
// delivered in non-decreasing version order.
func (e ChangeEvent) Key() string {
	return string(e.EntityType) + ":" + e.EntityID.String()
}

// IsNotification reports whether the event announces a created notification.
func (e ChangeEvent) IsNotification() bool {
	return e.EntityType == EntityNotification
}
