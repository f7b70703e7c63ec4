// Package notificationrepo maps notifications to the "notifications" table.
//
// The composite unique index on (source_event_id, recipient_user_id) is the
// dedup key: redelivered change events insert nothing.
package notificationrepo

import (
	"time"

	"sellerconsole/internal/core/domain/model/event"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// DedupIndexName names the unique index backing AddIfAbsent.
const DedupIndexName = "ux_notification_source_recipient"

type NotificationDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipientUserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_notification_source_recipient,priority:2;index:ix_notifications_recipient_created,priority:1"`
	SellerID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Title           string    `gorm:"type:varchar(255);not null"`
	Message         string    `gorm:"type:text;not null"`
	Type            string    `gorm:"type:varchar(32);not null"`
	SourceEventID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_notification_source_recipient,priority:1"`
	EntityType      string    `gorm:"type:varchar(32);not null"`
	EntityID        uuid.UUID `gorm:"type:uuid;not null"`
	IsRead          bool      `gorm:"not null;default:false"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime:false;index:ix_notifications_recipient_created,priority:2"`
}

// TableName overrides GORM's default naming convention to use "notifications".
func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(aggregate *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:              aggregate.ID().Bytes(),
		RecipientUserID: aggregate.RecipientUserID().Bytes(),
		SellerID:        aggregate.SellerID().Bytes(),
		Title:           aggregate.Title(),
		Message:         aggregate.Message(),
		Type:            string(aggregate.Type()),
		SourceEventID:   aggregate.SourceEventID().Bytes(),
		EntityType:      string(aggregate.EntityType()),
		EntityID:        aggregate.EntityID().Bytes(),
		IsRead:          aggregate.IsRead(),
		CreatedAt:       aggregate.CreatedAt().UTC(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	ids := make([]kernel.UUID, 0, 5)
	for _, raw := range []uuid.UUID{dto.ID, dto.RecipientUserID, dto.SellerID, dto.SourceEventID, dto.EntityID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return notification.RestoreNotification(
		ids[0],
		ids[1],
		ids[2],
		dto.Title,
		dto.Message,
		notification.Type(dto.Type),
		ids[3],
		event.EntityType(dto.EntityType),
		ids[4],
		dto.IsRead,
		dto.CreatedAt,
	)
}
