package queries

import (
	"context"
	"strings"
	"time"

	"sellerconsole/internal/core/domain/model/event"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListNotificationsQueryHandler reads notification listings straight from the
// notifications table, newest first.
//
// Example:
//
//	handler := NewListNotificationsQueryHandler(db)
//	query, _ := NewListNotificationsQuery(userID, notification.FilterOrdersOnly)
//
//	items, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
type ListNotificationsQueryHandler struct {
	db *gorm.DB
}

func NewListNotificationsQueryHandler(db *gorm.DB) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{db: db}
}

// Handle applies the filter: unread drops read rows, ordersOnly and systemOnly
// restrict the notification type. Ties on created_at are ordered by id.
func (h ListNotificationsQueryHandler) Handle(
	ctx context.Context,
	query ListNotificationsQuery,
) ([]NotificationView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var sql strings.Builder
	sql.WriteString(`
		SELECT
			id,
			seller_id,
			title,
			message,
			type,
			entity_type,
			entity_id,
			is_read,
			created_at
		FROM notifications
		WHERE recipient_user_id = ?`)
	args := []any{query.UserID().String()}

	filter := query.Filter()
	if filter.UnreadOnly() {
		sql.WriteString(` AND is_read = FALSE`)
	}
	if types := filter.Types(); len(types) > 0 {
		names := make([]string, 0, len(types))
		for _, t := range types {
			names = append(names, string(t))
		}
		sql.WriteString(` AND type IN ?`)
		args = append(args, names)
	}
	sql.WriteString(` ORDER BY created_at DESC, id`)

	rows, err := h.db.WithContext(ctx).Raw(sql.String(), args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]NotificationView, 0)
	for rows.Next() {
		var (
			id, sellerID, entityID uuid.UUID
			title, message         string
			notificationType       string
			entityType             string
			read                   bool
			createdAt              time.Time
		)
		if err = rows.Scan(
			&id,
			&sellerID,
			&title,
			&message,
			&notificationType,
			&entityType,
			&entityID,
			&read,
			&createdAt,
		); err != nil {
			return nil, err
		}

		view := NotificationView{
			Title:      title,
			Message:    message,
			Type:       notification.Type(notificationType),
			EntityType: event.EntityType(entityType),
			Read:       read,
			CreatedAt:  createdAt,
		}
		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.SellerID, err = kernel.UUIDFromBytes(sellerID[:]); err != nil {
			return nil, err
		}
		if view.EntityID, err = kernel.UUIDFromBytes(entityID[:]); err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}

// UnreadCountQueryHandler counts a user's unread notifications.
type UnreadCountQueryHandler struct {
	db *gorm.DB
}

func NewUnreadCountQueryHandler(db *gorm.DB) UnreadCountQueryHandler {
	return UnreadCountQueryHandler{db: db}
}

func (h UnreadCountQueryHandler) Handle(ctx context.Context, query UnreadCountQuery) (int64, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM notifications
		WHERE recipient_user_id = ? AND is_read = FALSE
	`, query.UserID().String()).Scan(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
