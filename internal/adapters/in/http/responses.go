package http

import (
	"time"

	"sellerconsole/internal/core/domain/model/delivery"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/order"
)

type orderItemResponse struct {
	ProductID string       `json:"productId"`
	Name      string       `json:"name"`
	Quantity  int          `json:"quantity"`
	UnitPrice kernel.Money `json:"unitPrice"`
	Subtotal  kernel.Money `json:"subtotal"`
}

type orderResponse struct {
	ID           kernel.UUID         `json:"id"`
	SellerID     kernel.UUID         `json:"sellerId"`
	RetailerID   *kernel.UUID        `json:"retailerId"`
	CustomerName string              `json:"customerName"`
	Items        []orderItemResponse `json:"items"`
	TotalAmount  kernel.Money        `json:"totalAmount"`
	Status       string              `json:"status"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
	Version      int64               `json:"version"`
}

func toOrderResponse(o *order.Order) orderResponse {
	items := o.Items()
	lines := make([]orderItemResponse, len(items))
	for i, item := range items {
		lines[i] = orderItemResponse{
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
			Subtotal:  item.Subtotal(),
		}
	}

	return orderResponse{
		ID:           o.ID(),
		SellerID:     o.SellerID(),
		RetailerID:   o.RetailerID(),
		CustomerName: o.CustomerName(),
		Items:        lines,
		TotalAmount:  o.TotalAmount(),
		Status:       o.Status().String(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
		Version:      o.Version(),
	}
}

func toOrderResponses(orders []*order.Order) []orderResponse {
	out := make([]orderResponse, len(orders))
	for i, o := range orders {
		out[i] = toOrderResponse(o)
	}
	return out
}

type manualRecipientResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone,omitempty"`
}

type deliveryResponse struct {
	ID                    kernel.UUID              `json:"id"`
	SellerID              kernel.UUID              `json:"sellerId"`
	RetailerID            *kernel.UUID             `json:"retailerId,omitempty"`
	ManualRecipient       *manualRecipientResponse `json:"manualRecipient,omitempty"`
	Status                string                   `json:"status"`
	EstimatedDeliveryTime time.Time                `json:"estimatedDeliveryTime"`
	AmountToCollect       *kernel.Money            `json:"amountToCollect"`
	ActualDeliveryTime    *time.Time               `json:"actualDeliveryTime"`
	CreatedAt             time.Time                `json:"createdAt"`
	UpdatedAt             time.Time                `json:"updatedAt"`
	Version               int64                    `json:"version"`
}

func toDeliveryResponse(d *delivery.Delivery) deliveryResponse {
	resp := deliveryResponse{
		ID:                    d.ID(),
		SellerID:              d.SellerID(),
		RetailerID:            d.RetailerID(),
		Status:                d.Status().String(),
		EstimatedDeliveryTime: d.EstimatedDeliveryTime(),
		AmountToCollect:       d.AmountToCollect(),
		ActualDeliveryTime:    d.ActualDeliveryTime(),
		CreatedAt:             d.CreatedAt(),
		UpdatedAt:             d.UpdatedAt(),
		Version:               d.Version(),
	}
	if manual := d.Recipient().Manual(); manual != nil {
		resp.ManualRecipient = &manualRecipientResponse{
			Name:    manual.Name,
			Address: manual.Address,
			Phone:   manual.Phone,
		}
	}
	return resp
}

func toDeliveryResponses(deliveries []*delivery.Delivery) []deliveryResponse {
	out := make([]deliveryResponse, len(deliveries))
	for i, d := range deliveries {
		out[i] = toDeliveryResponse(d)
	}
	return out
}

type unreadCountResponse struct {
	Unread int64 `json:"unread"`
}

type markAllReadResponse struct {
	Updated int64 `json:"updated"`
}
