package ports

import (
	"context"

	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for notifications.
type NotificationRepository interface {
	// AddIfAbsent inserts aggregate unless a row with the same
	// (sourceEventId, recipientUserId) already exists. It reports whether a row
	// was inserted; an existing row is not an error.
	AddIfAbsent(ctx context.Context, aggregate *notification.Notification) (bool, error)

	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// Update persists the read flag.
	Update(ctx context.Context, aggregate *notification.Notification) error

	Delete(ctx context.Context, id kernel.UUID) error

	// MarkAllRead marks every unread notification of userID as read and
	// returns the number of rows changed.
	MarkAllRead(ctx context.Context, userID kernel.UUID) (int64, error)
}
