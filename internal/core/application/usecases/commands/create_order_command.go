package commands

import (
	"errors"
	"fmt"
	"strings"

	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/order"
	"sellerconsole/internal/pkg/errs"
	"sellerconsole/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderLine is the raw input for one order item.
type OrderLine struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice kernel.Money
}

// CreateOrderCommand records a new order for a seller, either placed by a
// retailer (retailerID set) or entered manually (customerName required).
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(sellerID, &retailerID, "Sharma Stores", []OrderLine{
//	    {ProductID: "sku-1", Name: "Basmati 5kg", Quantity: 2, UnitPrice: kernel.MustMoney("100")},
//	})
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	sellerID     kernel.UUID
	retailerID   *kernel.UUID
	customerName string
	items        []order.Item

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the input and builds the order lines.
func NewCreateOrderCommand(
	sellerID kernel.UUID,
	retailerID *kernel.UUID,
	customerName string,
	lines []OrderLine,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		orderID: kernel.NewUUID(),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSellerID(sellerID),
		cmd.setCustomer(retailerID, customerName),
		cmd.setItems(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

func (c CreateOrderCommand) SellerID() kernel.UUID { return c.sellerID }

func (c CreateOrderCommand) RetailerID() *kernel.UUID { return c.retailerID }

func (c CreateOrderCommand) CustomerName() string { return c.customerName }

func (c CreateOrderCommand) Items() []order.Item {
	items := make([]order.Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("sellerId", err)
	}
	c.sellerID = sellerID
	return nil
}

func (c *CreateOrderCommand) setCustomer(retailerID *kernel.UUID, customerName string) error {
	customerName = strings.TrimSpace(customerName)
	if retailerID == nil {
		if customerName == "" {
			return errs.NewValueIsRequiredError("customerName")
		}
		c.customerName = customerName
		return nil
	}

	if err := retailerID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("retailerId", err)
	}
	id := *retailerID
	c.retailerID = &id
	c.customerName = customerName
	return nil
}

func (c *CreateOrderCommand) setItems(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	items := make([]order.Item, 0, len(lines))
	for idx, line := range lines {
		item, err := order.NewItem(line.ProductID, line.Name, line.Quantity, line.UnitPrice)
		if err != nil {
			return fmt.Errorf("items[%d]: %w", idx, err)
		}
		items = append(items, item)
	}
	c.items = items
	return nil
}
