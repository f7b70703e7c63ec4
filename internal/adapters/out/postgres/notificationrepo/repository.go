package notificationrepo

import (
	"context"

	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/notification"
	"sellerconsole/internal/pkg/errs"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormNotificationRepository implements ports.NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// AddIfAbsent inserts the notification with ON CONFLICT DO NOTHING on the
// dedup key. Zero affected rows means another delivery of the same event
// already produced it.
func (r *GormNotificationRepository) AddIfAbsent(
	ctx context.Context,
	aggregate *notification.Notification,
) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "source_event_id"}, {Name: "recipient_user_id"}},
			DoNothing: true,
		}).
		Create(&dto)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to insert notification")
	}

	return result.RowsAffected == 1, nil
}

func (r *GormNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NotificationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("notification", id.String())
		}
		return nil, errors.Wrap(err, "failed to get notification")
	}

	return toDomain(dto)
}

// Update persists the read flag; nothing else on a notification changes.
func (r *GormNotificationRepository) Update(ctx context.Context, aggregate *notification.Notification) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Update("is_read", aggregate.IsRead())
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update notification")
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", aggregate.ID().String())
	}

	return nil
}

func (r *GormNotificationRepository) Delete(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Delete(&NotificationDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete notification")
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", id.String())
	}

	return nil
}

// MarkAllRead flips every unread notification of userID in one statement.
func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, userID kernel.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("recipient_user_id = ? AND is_read = ?", userID.Bytes(), false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to mark notifications read")
	}

	return result.RowsAffected, nil
}
