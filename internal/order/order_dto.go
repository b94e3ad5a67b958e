package order

import "time"

type CreateOrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	ShopID *string                  `json:"shop_id" binding:"omitempty,uuid"`
	Notes  *string                  `json:"notes"`
	Items  []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ItemResponse struct {
	ProductID      string `json:"product_id"`
	SKU            string `json:"sku"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
	TotalCents     int64  `json:"total_cents"`
}

type OrderResponse struct {
	ID            string         `json:"id"`
	OrderNumber   string         `json:"order_number"`
	ShopID        *string        `json:"shop_id"`
	CompanyUserID string         `json:"company_user_id"`
	Status        string         `json:"status"`
	TotalCents    int64          `json:"total_cents"`
	Notes         *string        `json:"notes"`
	ProcessingAt  *time.Time     `json:"processing_at"`
	ShippedAt     *time.Time     `json:"shipped_at"`
	ClosedAt      *time.Time     `json:"closed_at"`
	CreatedAt     time.Time      `json:"created_at"`
	Items         []ItemResponse `json:"items,omitempty"`
}

func toOrderResponse(o *Order, withItems bool) OrderResponse {
	resp := OrderResponse{
		ID:            o.ID.String(),
		OrderNumber:   o.OrderNumber,
		CompanyUserID: o.CompanyUserID.String(),
		Status:        o.Status,
		TotalCents:    o.TotalCents,
		Notes:         o.Notes,
		ProcessingAt:  o.ProcessingAt,
		ShippedAt:     o.ShippedAt,
		ClosedAt:      o.ClosedAt,
		CreatedAt:     o.CreatedAt,
	}
	if o.ShopID != nil {
		id := o.ShopID.String()
		resp.ShopID = &id
	}
	if withItems {
		resp.Items = make([]ItemResponse, 0, len(o.Items))
		for i := range o.Items {
			resp.Items = append(resp.Items, ItemResponse{
				ProductID:      o.Items[i].ProductID.String(),
				SKU:            o.Items[i].SKU,
				Name:           o.Items[i].Name,
				UnitPriceCents: o.Items[i].UnitPriceCents,
				Quantity:       o.Items[i].Quantity,
				TotalCents:     o.Items[i].TotalCents,
			})
		}
	}
	return resp
}
