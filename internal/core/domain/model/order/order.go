package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"sellerconsole/internal/core/domain/model/event"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root for a wholesale order placed with a seller.
//
// Order follows these invariants:
//   - Must have a valid identifier and seller
//   - Must have at least one line item
//   - totalAmount equals the sum of line subtotals at creation and never changes
//   - Status only changes through Transition, which bumps the version
type Order struct {
	id           kernel.UUID
	sellerID     kernel.UUID
	retailerID   *kernel.UUID
	customerName string
	items        []Item
	totalAmount  kernel.Money
	status       Status
	createdAt    time.Time
	updatedAt    time.Time
	version      int64

	isConstructed bool
}

// NewOrder creates a pending order at version 0.
//
// retailerID is nil for orders recorded manually by the seller; customerName is a
// display name (retailer shop name or the manual customer's name) and may be empty.
//
// Example:
//
//	item, _ := order.NewItem("sku-1", "Basmati 5kg", 2, kernel.MustMoney("100"))
//	o, err := order.NewOrder(kernel.NewUUID(), sellerID, &retailerID, "Sharma Stores",
//	    []order.Item{item}, clock.Now())
//	// o.TotalAmount() == 200, o.Status() == order.Pending, o.Version() == 0
func NewOrder(
	id kernel.UUID,
	sellerID kernel.UUID,
	retailerID *kernel.UUID,
	customerName string,
	items []Item,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		customerName:  strings.TrimSpace(customerName),
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setSellerID(sellerID),
		o.setRetailerID(retailerID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	total := kernel.Zero()
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	o.totalAmount = total

	return o, nil
}

// RestoreOrder rebuilds an order from persisted state. The stored total is kept
// as is; it is never recomputed from items.
func RestoreOrder(
	id kernel.UUID,
	sellerID kernel.UUID,
	retailerID *kernel.UUID,
	customerName string,
	items []Item,
	totalAmount kernel.Money,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
	version int64,
) (*Order, error) {
	o := &Order{
		customerName:  customerName,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setSellerID(sellerID),
		o.setRetailerID(retailerID),
		o.setItems(items),
		totalAmount.Validate(),
		status.Validate(),
		validateVersion(version),
	); err != nil {
		return nil, err
	}

	o.totalAmount = totalAmount
	o.status = status
	o.version = version
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }

func (o *Order) SellerID() kernel.UUID { return o.sellerID }

// RetailerID returns the ordering retailer, or nil for manually recorded orders.
func (o *Order) RetailerID() *kernel.UUID {
	if o.retailerID == nil {
		return nil
	}
	id := *o.retailerID
	return &id
}

func (o *Order) CustomerName() string { return o.customerName }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) TotalAmount() kernel.Money { return o.totalAmount }

func (o *Order) Status() Status { return o.status }

func (o *Order) CreatedAt() time.Time { return o.createdAt }

func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Version is incremented on every status write.
func (o *Order) Version() int64 { return o.version }

// Transition moves the order to target.
//
// A target outside the allowed set of the current status is an
// InvalidTransitionError whatever expectedVersion is, so a terminal order
// rejects every move. A stale expectedVersion is a ConflictError. Neither
// error touches the order.
func (o *Order) Transition(target Status, expectedVersion int64, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Transition(target)
	if err != nil {
		return err
	}

	if expectedVersion != o.version {
		return errs.NewConflictError("order", o.id.String(), expectedVersion, o.version)
	}

	o.status = newStatus
	o.version++
	o.updatedAt = now
	return nil
}

// ChangeEvent describes the current state for the change feed. Creation is
// announced at version 0 with status pending.
func (o *Order) ChangeEvent() event.ChangeEvent {
	return event.ChangeEvent{
		EntityType: event.EntityOrder,
		EntityID:   o.id,
		SellerID:   o.sellerID,
		Version:    o.version,
		NewStatus:  o.status.String(),
		OccurredAt: o.updatedAt,
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("sellerId", err)
	}
	o.sellerID = sellerID
	return nil
}

func (o *Order) setRetailerID(retailerID *kernel.UUID) error {
	if retailerID == nil {
		return nil
	}
	if err := retailerID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("retailerId", err)
	}
	id := *retailerID
	o.retailerID = &id
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", idx), err)
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func validateVersion(version int64) error {
	if version < 0 {
		return errs.NewValueIsOutOfRangeError("version", version, 0, "unbounded")
	}
	return nil
}
