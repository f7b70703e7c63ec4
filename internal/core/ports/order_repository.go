// Package ports defines the contracts between the seller console core and its
// infrastructure: repositories, the unit of work, the change feed and exporters.
package ports

import (
	"context"
	"time"

	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order with its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the status, version and updatedAt of aggregate, provided the
	// stored row is still at expectedVersion. A row at a different version yields
	// an errs.ConflictError; a missing row yields errs.ObjectNotFoundError.
	Update(ctx context.Context, aggregate *order.Order, expectedVersion int64) error

	// Get retrieves an order with its line items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListBySeller returns the seller's orders, newest first, optionally
	// restricted to one status.
	ListBySeller(ctx context.Context, sellerID kernel.UUID, status *order.Status) ([]*order.Order, error)

	// ListCreatedSince returns the seller's orders with createdAt >= since.
	ListCreatedSince(ctx context.Context, sellerID kernel.UUID, since time.Time) ([]*order.Order, error)

	// ListUpdatedSince returns orders of every seller with updatedAt >= since.
	ListUpdatedSince(ctx context.Context, since time.Time) ([]*order.Order, error)

	// ListSellerIDs returns every seller that has at least one order.
	ListSellerIDs(ctx context.Context) ([]kernel.UUID, error)
}
