package notification

import (
	"fmt"

	"sellerconsole/internal/core/domain/model/event"
)

type contentRow struct {
	entity   event.EntityType
	status   string
	role     Role
	title    string
	template string
}

func getContents() []contentRow {
	return []contentRow{
		{event.EntityOrder, "pending", RoleSeller, "New order received", "Order %s is waiting for your confirmation."},
		{event.EntityOrder, "confirmed", RoleRetailer, "Order confirmed", "Your order %s was confirmed by the seller."},
		{event.EntityOrder, "processing", RoleRetailer, "Order in processing", "Your order %s is being prepared."},
		{event.EntityOrder, "shipped", RoleRetailer, "Order shipped", "Your order %s has been shipped."},
		{event.EntityOrder, "delivered", RoleRetailer, "Order delivered", "Your order %s was delivered."},
		{event.EntityOrder, "cancelled", RoleRetailer, "Order cancelled", "Your order %s was cancelled."},
		{event.EntityOrder, "cancelled", RoleSeller, "Order cancelled", "Order %s was cancelled."},
		{event.EntityDelivery, "pending", RoleRetailer, "Delivery scheduled", "Delivery %s has been scheduled."},
		{event.EntityDelivery, "in_transit", RoleRetailer, "Delivery on the way", "Delivery %s is on its way."},
		{event.EntityDelivery, "delivered", RoleRetailer, "Delivery completed", "Delivery %s was handed over."},
		{event.EntityDelivery, "delivered", RoleSeller, "Delivery completed", "Delivery %s was completed."},
		{event.EntityDelivery, "cancelled", RoleRetailer, "Delivery cancelled", "Delivery %s was cancelled."},
		{event.EntityDelivery, "cancelled", RoleSeller, "Delivery cancelled", "Delivery %s was cancelled."},
	}
}

// compose returns the title and message for an event seen by role. Unknown
// combinations fall back to a generic status update.
func compose(e event.ChangeEvent, role Role) (string, string) {
	ref := shortRef(e)
	for _, row := range getContents() {
		if row.entity == e.EntityType && row.status == e.NewStatus && row.role == role {
			return row.title, fmt.Sprintf(row.template, ref)
		}
	}
	return "Status updated", fmt.Sprintf("%s %s is now %s.", e.EntityType, ref, e.NewStatus)
}

func shortRef(e event.ChangeEvent) string {
	id := e.EntityID.String()
	if len(id) > 8 {
		id = id[:8]
	}
	return "#" + id
}
