package product

import "time"

type CreateProductRequest struct {
	SKU         string  `json:"sku" binding:"required,max=64"`
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
	Unit        *string `json:"unit" binding:"omitempty,max=20"`
	PriceCents  int64   `json:"price_cents" binding:"required,gt=0"`
}

type UpdateProductRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	Unit        *string `json:"unit" binding:"omitempty,max=20"`
}

type SetPriceRequest struct {
	PriceCents int64 `json:"price_cents" binding:"required,gt=0"`
}

type ProductResponse struct {
	ID          string    `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Unit        string    `json:"unit"`
	PriceCents  *int64    `json:"price_cents,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type PriceResponse struct {
	ID         string     `json:"id"`
	PriceCents int64      `json:"price_cents"`
	StartsAt   time.Time  `json:"starts_at"`
	EndsAt     *time.Time `json:"ends_at"`
}

func toProductResponse(p *Product, open *Price) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID.String(),
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Unit:        p.Unit,
		CreatedAt:   p.CreatedAt,
	}
	if open != nil {
		resp.PriceCents = &open.PriceCents
	}
	return resp
}

func toPriceResponse(p *Price) PriceResponse {
	return PriceResponse{
		ID:         p.ID.String(),
		PriceCents: p.PriceCents,
		StartsAt:   p.StartsAt,
		EndsAt:     p.EndsAt,
	}
}
