package order

import (
	"errors"
	"strings"

	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/pkg/errs"
	"sellerconsole/internal/pkg/guard"
)

// MaxItemQuantity bounds a single line's quantity.
const MaxItemQuantity = 100000

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is an immutable order line.
type Item struct { //nolint:recvcheck //using for validation
	productID string
	name      string
	quantity  int
	unitPrice kernel.Money
	guard     guard.ConstructorGuard
}

// NewItem validates and creates an order line.
func NewItem(productID, name string, quantity int, unitPrice kernel.Money) (Item, error) {
	item := Item{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setProductID(productID),
		item.setName(name),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) ProductID() string { return i.productID }

func (i Item) Name() string { return i.name }

func (i Item) Quantity() int { return i.quantity }

func (i Item) UnitPrice() kernel.Money { return i.unitPrice }

// Subtotal returns quantity * unitPrice.
func (i Item) Subtotal() kernel.Money {
	subtotal, err := i.unitPrice.Times(i.quantity)
	if err != nil {
		// quantity is validated positive at construction
		return kernel.Zero()
	}
	return subtotal
}

func (i *Item) setProductID(productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return errs.NewValueIsRequiredError("productId")
	}
	i.productID = productID
	return nil
}

func (i *Item) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 || quantity > MaxItemQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxItemQuantity)
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	i.unitPrice = unitPrice
	return nil
}
