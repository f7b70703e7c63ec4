package orderrepo

import (
	"context"
	"time"

	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/order"
	"sellerconsole/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order together with its lines.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errors.Wrap(err, "failed to insert order")
	}

	return nil
}

// Update writes status, version and updated_at when the stored row is still
// at expectedVersion.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order, expectedVersion int64) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, expectedVersion).
		Updates(map[string]any{
			"status":     dto.Status,
			"version":    dto.Version,
			"updated_at": dto.UpdatedAt,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update order")
	}

	if result.RowsAffected == 0 {
		return r.missedUpdate(ctx, aggregate.ID(), expectedVersion)
	}

	return nil
}

func (r *GormOrderRepository) missedUpdate(ctx context.Context, id kernel.UUID, expectedVersion int64) error {
	var current OrderDTO
	err := r.db.WithContext(ctx).Select("version").Take(&current, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	if err != nil {
		return errors.Wrap(err, "failed to read order version")
	}

	return errs.NewConflictError("order", id.String(), expectedVersion, current.Version)
}

// Get retrieves an order with its lines.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withItems(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, errors.Wrap(err, "failed to get order")
	}

	return toDomain(dto)
}

// ListBySeller returns the seller's orders newest first.
func (r *GormOrderRepository) ListBySeller(
	ctx context.Context,
	sellerID kernel.UUID,
	status *order.Status,
) ([]*order.Order, error) {
	q := r.withItems(ctx).Where("seller_id = ?", sellerID.Bytes())
	if status != nil {
		q = q.Where("status = ?", int(*status))
	}

	var dtos []OrderDTO
	if err := q.Order("created_at DESC, id").Find(&dtos).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return toDomainList(dtos)
}

// ListCreatedSince returns the seller's orders with created_at >= since.
func (r *GormOrderRepository) ListCreatedSince(
	ctx context.Context,
	sellerID kernel.UUID,
	since time.Time,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.withItems(ctx).
		Where("seller_id = ? AND created_at >= ?", sellerID.Bytes(), since.UTC()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders by creation time")
	}

	return toDomainList(dtos)
}

// ListUpdatedSince returns orders of every seller with updated_at >= since.
func (r *GormOrderRepository) ListUpdatedSince(ctx context.Context, since time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.withItems(ctx).
		Where("updated_at >= ?", since.UTC()).
		Order("updated_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recently updated orders")
	}

	return toDomainList(dtos)
}

// ListSellerIDs returns every seller that has at least one order.
func (r *GormOrderRepository) ListSellerIDs(ctx context.Context) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Distinct("seller_id").Pluck("seller_id", &raw).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list order sellers")
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		sellerID, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, sellerID)
	}

	return ids, nil
}

func (r *GormOrderRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("line")
	})
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
