package notification

import "sellerconsole/internal/core/domain/model/kernel"

// Role is the part a recipient plays on the entity that changed.
type Role string

const (
	RoleSeller   Role = "seller"
	RoleRetailer Role = "retailer"
)

// Recipient is a resolved user that should see a notification.
type Recipient struct {
	UserID kernel.UUID
	Role   Role
}
