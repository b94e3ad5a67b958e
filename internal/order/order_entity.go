package order

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusClosed     = "closed"
	StatusCancelled  = "cancelled"
)

type Order struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     uuid.UUID  `gorm:"column:company_id;type:uuid;not null;uniqueIndex:uq_order_number;index"`
	OrderNumber   string     `gorm:"column:order_number;type:varchar(20);not null;uniqueIndex:uq_order_number"`
	ShopID        *uuid.UUID `gorm:"column:shop_id;type:uuid"`
	CompanyUserID uuid.UUID  `gorm:"column:company_user_id;type:uuid;not null;index"`
	Status        string     `gorm:"column:status;type:varchar(20);not null;default:pending"`
	TotalCents    int64      `gorm:"column:total_cents;not null"`
	Notes         *string    `gorm:"column:notes;type:text"`
	ProcessingAt  *time.Time `gorm:"column:processing_at;type:timestamptz"`
	ShippedAt     *time.Time `gorm:"column:shipped_at;type:timestamptz"`
	ClosedAt      *time.Time `gorm:"column:closed_at;type:timestamptz"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`

	Items []Item `gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string {
	return "orders"
}

// Item snapshots the product's name and open price at order time, so later
// catalog edits never rewrite history.
type Item struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID        uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	CompanyID      uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	ProductID      uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	SKU            string    `gorm:"column:sku;type:varchar(64);not null"`
	Name           string    `gorm:"column:name;type:varchar(255);not null"`
	UnitPriceCents int64     `gorm:"column:unit_price_cents;not null"`
	Quantity       int       `gorm:"column:quantity;not null"`
	TotalCents     int64     `gorm:"column:total_cents;not null"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (Item) TableName() string {
	return "order_items"
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusProcessing, StatusShipped, StatusClosed, StatusCancelled:
		return true
	default:
		return false
	}
}
