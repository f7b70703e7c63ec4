package ports

import (
	"context"
	"time"

	"sellerconsole/internal/core/domain/model/delivery"
	"sellerconsole/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
// Update follows the same version guard as OrderRepository.Update.
type DeliveryRepository interface {
	Add(ctx context.Context, aggregate *delivery.Delivery) error
	Update(ctx context.Context, aggregate *delivery.Delivery, expectedVersion int64) error
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)
	ListBySeller(ctx context.Context, sellerID kernel.UUID, status *delivery.Status) ([]*delivery.Delivery, error)
	ListUpdatedSince(ctx context.Context, since time.Time) ([]*delivery.Delivery, error)
	ListSellerIDs(ctx context.Context) ([]kernel.UUID, error)

	// ListOverdue returns pending and in-transit deliveries of every seller
	// whose estimated delivery time is before now.
	ListOverdue(ctx context.Context, now time.Time) ([]*delivery.Delivery, error)
}
