package deliveryrepo

import (
	"context"
	"time"

	"sellerconsole/internal/core/domain/model/delivery"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormDeliveryRepository implements ports.DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db *gorm.DB
}

func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errors.Wrap(err, "failed to insert delivery")
	}

	return nil
}

// Update writes the mutable columns when the stored row is still at expectedVersion.
func (r *GormDeliveryRepository) Update(
	ctx context.Context,
	aggregate *delivery.Delivery,
	expectedVersion int64,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ? AND version = ?", dto.ID, expectedVersion).
		Updates(map[string]any{
			"status":               dto.Status,
			"actual_delivery_time": dto.ActualDeliveryTime,
			"version":              dto.Version,
			"updated_at":           dto.UpdatedAt,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update delivery")
	}

	if result.RowsAffected > 0 {
		return nil
	}

	var current DeliveryDTO
	err := r.db.WithContext(ctx).Select("version").Take(&current, "id = ?", dto.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("delivery", aggregate.ID().String())
	}
	if err != nil {
		return errors.Wrap(err, "failed to read delivery version")
	}

	return errs.NewConflictError("delivery", aggregate.ID().String(), expectedVersion, current.Version)
}

func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, errors.Wrap(err, "failed to get delivery")
	}

	return toDomain(dto)
}

// ListBySeller returns the seller's deliveries newest first.
func (r *GormDeliveryRepository) ListBySeller(
	ctx context.Context,
	sellerID kernel.UUID,
	status *delivery.Status,
) ([]*delivery.Delivery, error) {
	q := r.db.WithContext(ctx).Where("seller_id = ?", sellerID.Bytes())
	if status != nil {
		q = q.Where("status = ?", int(*status))
	}

	var dtos []DeliveryDTO
	if err := q.Order("created_at DESC, id").Find(&dtos).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list deliveries")
	}

	return toDomainList(dtos)
}

// ListUpdatedSince returns deliveries of every seller with updated_at >= since.
func (r *GormDeliveryRepository) ListUpdatedSince(ctx context.Context, since time.Time) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Where("updated_at >= ?", since.UTC()).
		Order("updated_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recently updated deliveries")
	}

	return toDomainList(dtos)
}

// ListOverdue returns open deliveries past their estimated delivery time, oldest first.
func (r *GormDeliveryRepository) ListOverdue(ctx context.Context, now time.Time) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Where("status IN ? AND estimated_delivery_time < ?",
			[]int{int(delivery.Pending), int(delivery.InTransit)}, now.UTC()).
		Order("estimated_delivery_time, id").
		Find(&dtos).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list overdue deliveries")
	}

	return toDomainList(dtos)
}

func (r *GormDeliveryRepository) ListSellerIDs(ctx context.Context) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&DeliveryDTO{}).Distinct("seller_id").Pluck("seller_id", &raw).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list delivery sellers")
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

func toDomainList(dtos []DeliveryDTO) ([]*delivery.Delivery, error) {
	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}

	return deliveries, nil
}
