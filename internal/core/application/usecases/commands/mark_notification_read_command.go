package commands

import (
	"errors"

	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/pkg/errs"
	"sellerconsole/internal/pkg/guard"
)

var (
	ErrMarkNotificationReadCommandIsNotConstructed = errors.New(
		"MarkNotificationReadCommand must be created via NewMarkNotificationReadCommand constructor",
	)
	ErrMarkAllReadCommandIsNotConstructed = errors.New(
		"MarkAllReadCommand must be created via NewMarkAllReadCommand constructor",
	)
	ErrDeleteNotificationCommandIsNotConstructed = errors.New(
		"DeleteNotificationCommand must be created via NewDeleteNotificationCommand constructor",
	)
)

// notificationRef identifies a notification together with the acting user.
type notificationRef struct {
	notificationID kernel.UUID
	userID         kernel.UUID
}

func newNotificationRef(notificationID, userID kernel.UUID) (notificationRef, error) {
	var idErr, userErr error
	if err := notificationID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("notificationId", err)
	}
	if err := userID.Validate(); err != nil {
		userErr = errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	if err := errors.Join(idErr, userErr); err != nil {
		return notificationRef{}, err
	}
	return notificationRef{notificationID: notificationID, userID: userID}, nil
}

// MarkNotificationReadCommand marks one of the user's notifications as read.
type MarkNotificationReadCommand struct { //nolint:recvcheck //using for validation
	ref   notificationRef
	guard guard.ConstructorGuard
}

func NewMarkNotificationReadCommand(notificationID, userID kernel.UUID) (MarkNotificationReadCommand, error) {
	ref, err := newNotificationRef(notificationID, userID)
	if err != nil {
		return MarkNotificationReadCommand{}, err
	}
	return MarkNotificationReadCommand{ref: ref, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkNotificationReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationReadCommandIsNotConstructed)
}

func (c MarkNotificationReadCommand) NotificationID() kernel.UUID { return c.ref.notificationID }

func (c MarkNotificationReadCommand) UserID() kernel.UUID { return c.ref.userID }

// DeleteNotificationCommand removes one of the user's notifications.
type DeleteNotificationCommand struct { //nolint:recvcheck //using for validation
	ref   notificationRef
	guard guard.ConstructorGuard
}

func NewDeleteNotificationCommand(notificationID, userID kernel.UUID) (DeleteNotificationCommand, error) {
	ref, err := newNotificationRef(notificationID, userID)
	if err != nil {
		return DeleteNotificationCommand{}, err
	}
	return DeleteNotificationCommand{ref: ref, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteNotificationCommand) Validate() error {
	return c.guard.Validate(ErrDeleteNotificationCommandIsNotConstructed)
}

func (c DeleteNotificationCommand) NotificationID() kernel.UUID { return c.ref.notificationID }

func (c DeleteNotificationCommand) UserID() kernel.UUID { return c.ref.userID }

// MarkAllReadCommand marks every notification of the user as read.
type MarkAllReadCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewMarkAllReadCommand(userID kernel.UUID) (MarkAllReadCommand, error) {
	if err := userID.Validate(); err != nil {
		return MarkAllReadCommand{}, errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	return MarkAllReadCommand{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkAllReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkAllReadCommandIsNotConstructed)
}

func (c MarkAllReadCommand) UserID() kernel.UUID { return c.userID }
