package notification

import (
	"errors"
	"strings"
	"time"

	"sellerconsole/internal/core/domain/model/event"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/pkg/errs"
)

var ErrNotificationIsNotConstructed = errors.New(
	"Notification must be created via NewFromChange or RestoreNotification constructor")

// Notification is a message addressed to a single user.
type Notification struct {
	id              kernel.UUID
	recipientUserID kernel.UUID
	sellerID        kernel.UUID
	title           string
	message         string
	kind            Type
	sourceEventID   kernel.UUID
	entityType      event.EntityType
	entityID        kernel.UUID
	read            bool
	createdAt       time.Time

	isConstructed bool
}

// NewFromChange builds the unread notification that recipient sees for e.
// Its SourceEventID is derived from e, so rebuilding it for a redelivered
// event yields the same dedup key.
func NewFromChange(id kernel.UUID, recipient Recipient, e event.ChangeEvent, now time.Time) (*Notification, error) {
	if e.IsNotification() {
		return nil, errs.NewValueIsInvalidError("entityType")
	}

	title, message := compose(e, recipient.Role)
	n := &Notification{
		sellerID:      e.SellerID,
		title:         title,
		message:       message,
		kind:          TypeFor(e.EntityType),
		sourceEventID: e.SourceEventID(),
		entityType:    e.EntityType,
		entityID:      e.EntityID,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		n.setID(id),
		n.setRecipient(recipient.UserID),
	); err != nil {
		return nil, err
	}

	return n, nil
}

// RestoreNotification rebuilds a notification from persisted state.
func RestoreNotification(
	id kernel.UUID,
	recipientUserID kernel.UUID,
	sellerID kernel.UUID,
	title string,
	message string,
	notificationType Type,
	sourceEventID kernel.UUID,
	entityType event.EntityType,
	entityID kernel.UUID,
	read bool,
	createdAt time.Time,
) (*Notification, error) {
	n := &Notification{
		sellerID:      sellerID,
		title:         title,
		message:       message,
		kind:          notificationType,
		entityType:    entityType,
		entityID:      entityID,
		read:          read,
		createdAt:     createdAt,
		isConstructed: true,
	}

	var titleErr error
	if strings.TrimSpace(title) == "" {
		titleErr = errs.NewValueIsRequiredError("title")
	}

	if err := errors.Join(
		n.setID(id),
		n.setRecipient(recipientUserID),
		notificationType.Validate(),
		n.setSourceEventID(sourceEventID),
		titleErr,
	); err != nil {
		return nil, err
	}

	return n, nil
}

func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

func (n *Notification) ID() kernel.UUID { return n.id }

func (n *Notification) RecipientUserID() kernel.UUID { return n.recipientUserID }

// SellerID is the seller whose order or delivery triggered the notification.
func (n *Notification) SellerID() kernel.UUID { return n.sellerID }

func (n *Notification) Title() string { return n.title }

func (n *Notification) Message() string { return n.message }

func (n *Notification) Type() Type { return n.kind }

func (n *Notification) SourceEventID() kernel.UUID { return n.sourceEventID }

func (n *Notification) EntityType() event.EntityType { return n.entityType }

func (n *Notification) EntityID() kernel.UUID { return n.entityID }

func (n *Notification) IsRead() bool { return n.read }

func (n *Notification) CreatedAt() time.Time { return n.createdAt }

// IsOwnedBy reports whether userID is the recipient.
func (n *Notification) IsOwnedBy(userID kernel.UUID) bool {
	return n.recipientUserID.IsEqual(userID)
}

// MarkRead is idempotent.
func (n *Notification) MarkRead() error {
	if err := n.Validate(); err != nil {
		return err
	}
	n.read = true
	return nil
}

// CreatedEvent announces this notification on the seller's change feed.
func (n *Notification) CreatedEvent() event.ChangeEvent {
	recipient := n.recipientUserID
	return event.ChangeEvent{
		EntityType:  event.EntityNotification,
		EntityID:    n.id,
		SellerID:    n.sellerID,
		NewStatus:   string(n.kind),
		RecipientID: &recipient,
		OccurredAt:  n.createdAt,
	}
}

func (n *Notification) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *Notification) setRecipient(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("recipientUserId", err)
	}
	n.recipientUserID = userID
	return nil
}

func (n *Notification) setSourceEventID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("sourceEventId", err)
	}
	n.sourceEventID = id
	return nil
}
