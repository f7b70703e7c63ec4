package services

import (
	"sellerconsole/internal/core/domain/model/event"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/notification"
	"sellerconsole/internal/pkg/errs"
)

// RecipientResolver maps a change event to the users that should be notified.
//
// Recipient table:
//   - order pending: seller (new order received)
//   - order confirmed, processing, shipped, delivered: retailer
//   - order cancelled: retailer and seller
//   - delivery pending, in_transit: retailer
//   - delivery delivered, cancelled: retailer and seller
//
// Example usage:
//
//	resolver := services.NewRecipientResolver()
//	recipients, unresolved := resolver.Resolve(e, o.RetailerID())
//	for _, err := range unresolved {
//	    log.WithError(err).Warn("recipient skipped")
//	}
type RecipientResolver struct{}

// NewRecipientResolver creates a new RecipientResolver instance.
func NewRecipientResolver() RecipientResolver {
	return RecipientResolver{}
}

// Resolve returns the recipients of e.
//
// Parameters:
//   - e: an order or delivery change event
//   - retailerID: the counter-party on the entity, nil when the entity has no
//     retailer account (manual order or manual delivery recipient)
//
// Returns:
//   - []notification.Recipient: users to notify, seller last
//   - []error: one RecipientUnresolvableError per role that could not be mapped to
//     a user. These never prevent the other recipients from being returned.
func (r RecipientResolver) Resolve(
	e event.ChangeEvent,
	retailerID *kernel.UUID,
) ([]notification.Recipient, []error) {
	notifyRetailer, notifySeller := r.roles(e)

	var (
		recipients []notification.Recipient
		unresolved []error
	)

	if notifyRetailer {
		switch {
		case retailerID == nil:
			unresolved = append(unresolved,
				errs.NewRecipientUnresolvableError(string(notification.RoleRetailer),
					string(e.EntityType)+" "+e.EntityID.String()+" has no retailer account"))
		case retailerID.Validate() != nil:
			unresolved = append(unresolved,
				errs.NewRecipientUnresolvableError(string(notification.RoleRetailer), "retailer id is empty"))
		default:
			recipients = append(recipients, notification.Recipient{UserID: *retailerID, Role: notification.RoleRetailer})
		}
	}

	if notifySeller {
		if err := e.SellerID.Validate(); err != nil {
			unresolved = append(unresolved,
				errs.NewRecipientUnresolvableError(string(notification.RoleSeller), "seller id is empty"))
		} else {
			recipients = append(recipients, notification.Recipient{UserID: e.SellerID, Role: notification.RoleSeller})
		}
	}

	return recipients, unresolved
}

func (r RecipientResolver) roles(e event.ChangeEvent) (bool, bool) {
	switch e.EntityType {
	case event.EntityOrder:
		switch e.NewStatus {
		case "pending":
			return false, true
		case "cancelled":
			return true, true
		case "confirmed", "processing", "shipped", "delivered":
			return true, false
		}
	case event.EntityDelivery:
		switch e.NewStatus {
		case "pending", "in_transit":
			return true, false
		case "delivered", "cancelled":
			return true, true
		}
	case event.EntityNotification:
	}
	return false, false
}
