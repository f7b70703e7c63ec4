// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// Orders live in the "orders" table with their lines in "order_items".
package orderrepo

import (
	"time"

	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by seller and creation time for listings and metrics windows, and by
// update time for reconciliation scans.
type OrderDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SellerID     uuid.UUID       `gorm:"type:uuid;not null;index:ix_orders_seller_created,priority:1"`
	RetailerID   *uuid.UUID      `gorm:"type:uuid;index"`
	CustomerName string          `gorm:"type:varchar(255)"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Status       int             `gorm:"type:smallint;not null;index"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime:false;index:ix_orders_seller_created,priority:2"`
	UpdatedAt    time.Time       `gorm:"not null;autoUpdateTime:false;index"`
	Version      int64           `gorm:"not null;default:0"`
	Items        []OrderItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one order line. Line keeps the original item order.
type OrderItemDTO struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Line      int             `gorm:"primaryKey;autoIncrement:false"`
	ProductID string          `gorm:"type:varchar(255);not null;index"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Quantity  int             `gorm:"type:int;not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(20,4);not null"`
}

// TableName overrides GORM's default naming convention to use "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var retailerID *uuid.UUID
	if id := aggregate.RetailerID(); id != nil {
		raw := id.Bytes()
		retailerID = &raw
	}

	orderID := aggregate.ID().Bytes()
	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for line, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   orderID,
			Line:      line,
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Amount(),
		})
	}

	return OrderDTO{
		ID:           orderID,
		SellerID:     aggregate.SellerID().Bytes(),
		RetailerID:   retailerID,
		CustomerName: aggregate.CustomerName(),
		TotalAmount:  aggregate.TotalAmount().Amount(),
		Status:       int(aggregate.Status()),
		CreatedAt:    aggregate.CreatedAt().UTC(),
		UpdatedAt:    aggregate.UpdatedAt().UTC(),
		Version:      aggregate.Version(),
		Items:        items,
	}
}

// toDomain reconstructs an order aggregate from its DTO using RestoreOrder.
// Items must be sorted by Line.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	var retailerID *kernel.UUID
	if dto.RetailerID != nil {
		rID, retailerErr := kernel.UUIDFromBytes((*dto.RetailerID)[:])
		if retailerErr != nil {
			return nil, retailerErr
		}
		retailerID = &rID
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		price, priceErr := kernel.NewMoney(itemDTO.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.NewItem(itemDTO.ProductID, itemDTO.Name, itemDTO.Quantity, price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	total, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		sellerID,
		retailerID,
		dto.CustomerName,
		items,
		total,
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.Version,
	)
}
