package delivery

import (
	"errors"
	"time"

	"sellerconsole/internal/core/domain/model/event"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/pkg/errs"
)

var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

// Delivery is the aggregate root for one shipment from a seller.
type Delivery struct {
	id                    kernel.UUID
	sellerID              kernel.UUID
	recipient             Recipient
	status                Status
	estimatedDeliveryTime time.Time
	amountToCollect       *kernel.Money
	actualDeliveryTime    *time.Time
	createdAt             time.Time
	updatedAt             time.Time
	version               int64

	isConstructed bool
}

// NewDelivery creates a pending delivery at version 0. amountToCollect is nil
// when nothing is collected on handover.
func NewDelivery(
	id kernel.UUID,
	sellerID kernel.UUID,
	recipient Recipient,
	estimatedDeliveryTime time.Time,
	amountToCollect *kernel.Money,
	now time.Time,
) (*Delivery, error) {
	d := &Delivery{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setSellerID(sellerID),
		d.setRecipient(recipient),
		d.setEstimatedDeliveryTime(estimatedDeliveryTime),
		d.setAmountToCollect(amountToCollect),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery rebuilds a delivery from persisted state.
func RestoreDelivery(
	id kernel.UUID,
	sellerID kernel.UUID,
	recipient Recipient,
	status Status,
	estimatedDeliveryTime time.Time,
	amountToCollect *kernel.Money,
	actualDeliveryTime *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
	version int64,
) (*Delivery, error) {
	d := &Delivery{
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		version:       version,
		isConstructed: true,
	}

	var versionErr error
	if version < 0 {
		versionErr = errs.NewValueIsOutOfRangeError("version", version, 0, "unbounded")
	}

	if err := errors.Join(
		d.setID(id),
		d.setSellerID(sellerID),
		d.setRecipient(recipient),
		d.setEstimatedDeliveryTime(estimatedDeliveryTime),
		d.setAmountToCollect(amountToCollect),
		status.Validate(),
		d.setActualDeliveryTime(actualDeliveryTime),
		versionErr,
	); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

func (d *Delivery) ID() kernel.UUID { return d.id }

func (d *Delivery) SellerID() kernel.UUID { return d.sellerID }

func (d *Delivery) Recipient() Recipient { return d.recipient }

// RetailerID is a shortcut for Recipient().RetailerID().
func (d *Delivery) RetailerID() *kernel.UUID { return d.recipient.RetailerID() }

func (d *Delivery) Status() Status { return d.status }

func (d *Delivery) EstimatedDeliveryTime() time.Time { return d.estimatedDeliveryTime }

func (d *Delivery) AmountToCollect() *kernel.Money {
	if d.amountToCollect == nil {
		return nil
	}
	m := *d.amountToCollect
	return &m
}

// ActualDeliveryTime is non-nil exactly when the status is Delivered.
func (d *Delivery) ActualDeliveryTime() *time.Time {
	if d.actualDeliveryTime == nil {
		return nil
	}
	t := *d.actualDeliveryTime
	return &t
}

func (d *Delivery) CreatedAt() time.Time { return d.createdAt }

func (d *Delivery) UpdatedAt() time.Time { return d.updatedAt }

func (d *Delivery) Version() int64 { return d.version }

// Transition moves the delivery to target, stamping actualDeliveryTime with now
// when target is Delivered. An invalid target is reported before a stale
// expectedVersion, so a delivered or cancelled delivery rejects every move.
func (d *Delivery) Transition(target Status, expectedVersion int64, now time.Time) error {
	if err := d.Validate(); err != nil {
		return err
	}

	newStatus, err := d.status.Transition(target)
	if err != nil {
		return err
	}

	if expectedVersion != d.version {
		return errs.NewConflictError("delivery", d.id.String(), expectedVersion, d.version)
	}

	d.status = newStatus
	if newStatus == Delivered {
		delivered := now
		d.actualDeliveryTime = &delivered
	}
	d.version++
	d.updatedAt = now
	return nil
}

// ChangeEvent describes the current state for the change feed. Creation is
// announced at version 0 with status pending.
func (d *Delivery) ChangeEvent() event.ChangeEvent {
	return event.ChangeEvent{
		EntityType: event.EntityDelivery,
		EntityID:   d.id,
		SellerID:   d.sellerID,
		Version:    d.version,
		NewStatus:  d.status.String(),
		OccurredAt: d.updatedAt,
	}
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("sellerId", err)
	}
	d.sellerID = sellerID
	return nil
}

func (d *Delivery) setRecipient(recipient Recipient) error {
	if err := recipient.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("recipient", err)
	}
	d.recipient = recipient
	return nil
}

func (d *Delivery) setEstimatedDeliveryTime(t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("estimatedDeliveryTime")
	}
	d.estimatedDeliveryTime = t
	return nil
}

func (d *Delivery) setAmountToCollect(amount *kernel.Money) error {
	if amount == nil {
		return nil
	}
	if err := amount.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("amountToCollect", err)
	}
	m := *amount
	d.amountToCollect = &m
	return nil
}

// setActualDeliveryTime must run after status is set.
func (d *Delivery) setActualDeliveryTime(t *time.Time) error {
	if (t != nil) != (d.status == Delivered) {
		return errs.NewValueIsInvalidError("actualDeliveryTime must be set iff status is delivered")
	}
	if t != nil {
		v := *t
		d.actualDeliveryTime = &v
	}
	return nil
}
