package queries

import (
	"errors"
	"time"

	"sellerconsole/internal/core/domain/model/event"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/notification"
	"sellerconsole/internal/pkg/errs"
	"sellerconsole/internal/pkg/guard"
)

var (
	ErrListNotificationsQueryIsNotConstructed = errors.New(
		"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
	)
	ErrUnreadCountQueryIsNotConstructed = errors.New(
		"UnreadCountQuery must be created via NewUnreadCountQuery constructor",
	)
)

// ListNotificationsQuery retrieves the notifications addressed to one user.
//
// Example:
//
//	filter, _ := notification.ParseFilter("unread")
//	query, err := NewListNotificationsQuery(userID, filter)
//	if err != nil {
//	    return err
//	}
//
//	items, err := handler.Handle(ctx, query)
//	for _, n := range items {
//	    fmt.Printf("%s %s\n", n.Title, n.Message)
//	}
type ListNotificationsQuery struct {
	userID kernel.UUID
	filter notification.Filter
	guard  guard.ConstructorGuard
}

// NewListNotificationsQuery creates a listing query. An empty filter lists everything.
func NewListNotificationsQuery(userID kernel.UUID, filter notification.Filter) (ListNotificationsQuery, error) {
	if err := userID.Validate(); err != nil {
		return ListNotificationsQuery{}, errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	if filter == "" {
		filter = notification.FilterAll
	}
	if _, err := notification.ParseFilter(string(filter)); err != nil {
		return ListNotificationsQuery{}, err
	}

	return ListNotificationsQuery{
		userID: userID,
		filter: filter,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

func (q ListNotificationsQuery) UserID() kernel.UUID { return q.userID }

func (q ListNotificationsQuery) Filter() notification.Filter { return q.filter }

// NotificationView is one row of a notification listing.
type NotificationView struct {
	ID         kernel.UUID       `json:"id"`
	SellerID   kernel.UUID       `json:"sellerId"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	Type       notification.Type `json:"type"`
	EntityType event.EntityType  `json:"entityType"`
	EntityID   kernel.UUID       `json:"entityId"`
	Read       bool              `json:"read"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// UnreadCountQuery retrieves the badge count of one user.
type UnreadCountQuery struct {
	userID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewUnreadCountQuery(userID kernel.UUID) (UnreadCountQuery, error) {
	if err := userID.Validate(); err != nil {
		return UnreadCountQuery{}, errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	return UnreadCountQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q UnreadCountQuery) Validate() error {
	return q.guard.Validate(ErrUnreadCountQueryIsNotConstructed)
}

func (q UnreadCountQuery) UserID() kernel.UUID { return q.userID }
