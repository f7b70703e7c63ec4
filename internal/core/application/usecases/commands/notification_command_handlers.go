package commands

import (
	"context"

	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/notification"
	"sellerconsole/internal/pkg/errs"
)

// MarkNotificationReadCommandHandler marks a notification read on behalf of its
// recipient. A notification owned by someone else is reported as not found.
type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
}

func NewMarkNotificationReadCommandHandler(uowFactory NotificationUoWFactory) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{uowFactory: uowFactory}
}

func (h MarkNotificationReadCommandHandler) Handle(ctx context.Context, cmd MarkNotificationReadCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.NotificationRepository()
	n, err := getOwnedNotification(ctx, repo, cmd.NotificationID(), cmd.UserID())
	if err != nil {
		return err
	}

	if n.IsRead() {
		return uow.Commit(ctx)
	}

	if err = n.MarkRead(); err != nil {
		return err
	}

	if err = repo.Update(ctx, n); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// MarkAllReadCommandHandler marks every unread notification of a user as read
// and returns how many changed.
type MarkAllReadCommandHandler struct {
	uowFactory NotificationUoWFactory
}

func NewMarkAllReadCommandHandler(uowFactory NotificationUoWFactory) MarkAllReadCommandHandler {
	return MarkAllReadCommandHandler{uowFactory: uowFactory}
}

func (h MarkAllReadCommandHandler) Handle(ctx context.Context, cmd MarkAllReadCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	changed, err := uow.NotificationRepository().MarkAllRead(ctx, cmd.UserID())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return changed, nil
}

// DeleteNotificationCommandHandler deletes a notification on behalf of its recipient.
type DeleteNotificationCommandHandler struct {
	uowFactory NotificationUoWFactory
}

func NewDeleteNotificationCommandHandler(uowFactory NotificationUoWFactory) DeleteNotificationCommandHandler {
	return DeleteNotificationCommandHandler{uowFactory: uowFactory}
}

func (h DeleteNotificationCommandHandler) Handle(ctx context.Context, cmd DeleteNotificationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.NotificationRepository()
	if _, err := getOwnedNotification(ctx, repo, cmd.NotificationID(), cmd.UserID()); err != nil {
		return err
	}

	if err := repo.Delete(ctx, cmd.NotificationID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type notificationGetter interface {
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)
}

func getOwnedNotification(
	ctx context.Context,
	repo notificationGetter,
	id kernel.UUID,
	userID kernel.UUID,
) (*notification.Notification, error) {
	n, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !n.IsOwnedBy(userID) {
		return nil, errs.NewObjectNotFoundError("notificationId", id)
	}
	return n, nil
}
