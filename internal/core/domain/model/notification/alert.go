package notification

import (
	"errors"
	"fmt"
	"time"

	"sellerconsole/internal/core/domain/model/event"
	"sellerconsole/internal/core/domain/model/kernel"
)

const overdueTimeLayout = "02 Jan 2006 15:04 MST"

// OverdueSourceEventID identifies the overdue alert of a delivery at version.
// A delivery that is still late after its next status change is alerted again.
func OverdueSourceEventID(deliveryID kernel.UUID, version int64) kernel.UUID {
	return kernel.NameBasedUUID(fmt.Sprintf("%s:%s:%d:overdue", event.EntityDelivery, deliveryID, version))
}

// NewOverdueDeliveryAlert builds the system notification telling sellerID that
// a delivery passed its estimated delivery time without being completed.
func NewOverdueDeliveryAlert(
	id kernel.UUID,
	sellerID kernel.UUID,
	deliveryID kernel.UUID,
	version int64,
	estimatedDeliveryTime time.Time,
	now time.Time,
) (*Notification, error) {
	ref := shortRef(event.ChangeEvent{EntityID: deliveryID})
	n := &Notification{
		sellerID:      sellerID,
		title:         "Delivery overdue",
		message:       fmt.Sprintf("Delivery %s was due %s and is not completed yet.", ref, estimatedDeliveryTime.UTC().Format(overdueTimeLayout)),
		kind:          TypeSystem,
		entityType:    event.EntityDelivery,
		entityID:      deliveryID,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		n.setID(id),
		n.setRecipient(sellerID),
		n.setSourceEventID(OverdueSourceEventID(deliveryID, version)),
	); err != nil {
		return nil, err
	}

	return n, nil
}
