// Package deliveryrepo maps delivery aggregates to the "deliveries" table.
package deliveryrepo

import (
	"time"

	"sellerconsole/internal/core/domain/model/delivery"
	"sellerconsole/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryDTO represents the database structure for persisting delivery aggregates.
// Exactly one of RetailerID and the manual recipient columns is populated.
type DeliveryDTO struct {
	ID                    uuid.UUID           `gorm:"type:uuid;primaryKey"`
	SellerID              uuid.UUID           `gorm:"type:uuid;not null;index"`
	RetailerID            *uuid.UUID          `gorm:"type:uuid;index"`
	Manual                ManualRecipientDTO  `gorm:"embedded;embeddedPrefix:recipient_"`
	Status                int                 `gorm:"type:smallint;not null;index"`
	EstimatedDeliveryTime time.Time           `gorm:"not null"`
	AmountToCollect       decimal.NullDecimal `gorm:"type:decimal(20,4)"`
	ActualDeliveryTime    *time.Time
	CreatedAt             time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt             time.Time `gorm:"not null;autoUpdateTime:false;index"`
	Version               int64     `gorm:"not null;default:0"`
}

// TableName overrides GORM's default naming convention to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// ManualRecipientDTO holds the columns of a recipient without a user account.
type ManualRecipientDTO struct {
	Name    string `gorm:"type:varchar(255)"`
	Address string `gorm:"type:text"`
	Phone   string `gorm:"type:varchar(32)"`
}

func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	dto := DeliveryDTO{
		ID:                    aggregate.ID().Bytes(),
		SellerID:              aggregate.SellerID().Bytes(),
		Status:                int(aggregate.Status()),
		EstimatedDeliveryTime: aggregate.EstimatedDeliveryTime().UTC(),
		CreatedAt:             aggregate.CreatedAt().UTC(),
		UpdatedAt:             aggregate.UpdatedAt().UTC(),
		Version:               aggregate.Version(),
	}

	recipient := aggregate.Recipient()
	if id := recipient.RetailerID(); id != nil {
		raw := id.Bytes()
		dto.RetailerID = &raw
	}
	if manual := recipient.Manual(); manual != nil {
		dto.Manual = ManualRecipientDTO{
			Name:    manual.Name,
			Address: manual.Address,
			Phone:   manual.Phone,
		}
	}

	if amount := aggregate.AmountToCollect(); amount != nil {
		dto.AmountToCollect = decimal.NewNullDecimal(amount.Amount())
	}

	if actual := aggregate.ActualDeliveryTime(); actual != nil {
		t := actual.UTC()
		dto.ActualDeliveryTime = &t
	}

	return dto
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	var recipient delivery.Recipient
	if dto.RetailerID != nil {
		retailerID, idErr := kernel.UUIDFromBytes((*dto.RetailerID)[:])
		if idErr != nil {
			return nil, idErr
		}
		recipient, err = delivery.RetailerRecipient(retailerID)
	} else {
		// stored phones are E.164, so the region is irrelevant here
		recipient, err = delivery.NewManualRecipient(dto.Manual.Name, dto.Manual.Address, dto.Manual.Phone, "")
	}
	if err != nil {
		return nil, err
	}

	var amount *kernel.Money
	if dto.AmountToCollect.Valid {
		m, moneyErr := kernel.NewMoney(dto.AmountToCollect.Decimal)
		if moneyErr != nil {
			return nil, moneyErr
		}
		amount = &m
	}

	return delivery.RestoreDelivery(
		id,
		sellerID,
		recipient,
		delivery.Status(dto.Status),
		dto.EstimatedDeliveryTime,
		amount,
		dto.ActualDeliveryTime,
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.Version,
	)
}
