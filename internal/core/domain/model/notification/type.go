package notification

import (
	"fmt"
	"strings"

	"sellerconsole/internal/core/domain/model/event"
	"sellerconsole/internal/pkg/errs"
)

// Type categorizes a notification for filtering.
type Type string

const (
	TypeOrder    Type = "order"
	TypeDelivery Type = "delivery"
	TypeSystem   Type = "system"
)

func (t Type) Validate() error {
	switch t {
	case TypeOrder, TypeDelivery, TypeSystem:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a notification type", string(t)))
	}
}

// TypeFor maps the entity type of a change event to a notification type.
func TypeFor(entityType event.EntityType) Type {
	switch entityType {
	case event.EntityOrder:
		return TypeOrder
	case event.EntityDelivery:
		return TypeDelivery
	default:
		return TypeSystem
	}
}

// Filter selects which notifications a listing returns.
type Filter string

const (
	FilterAll        Filter = "all"
	FilterUnread     Filter = "unread"
	FilterOrdersOnly Filter = "ordersOnly"
	FilterSystemOnly Filter = "systemOnly"
)

// ParseFilter accepts the filter names case-insensitively; empty means all.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "unread":
		return FilterUnread, nil
	case "ordersonly", "orders":
		return FilterOrdersOnly, nil
	case "systemonly", "system":
		return FilterSystemOnly, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("filter", fmt.Errorf("%q is not a notification filter", s))
	}
}

// Types returns the notification types the filter admits, or nil when the
// filter does not restrict by type. ordersOnly covers order and delivery
// notifications since both concern the order fulfilment flow.
func (f Filter) Types() []Type {
	switch f {
	case FilterOrdersOnly:
		return []Type{TypeOrder, TypeDelivery}
	case FilterSystemOnly:
		return []Type{TypeSystem}
	case FilterAll, FilterUnread:
		return nil
	default:
		return nil
	}
}

// UnreadOnly reports whether read notifications are excluded.
func (f Filter) UnreadOnly() bool {
	return f == FilterUnread
}
