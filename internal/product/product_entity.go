package product

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID      `gorm:"column:company_id;type:uuid;not null;uniqueIndex:uq_product_sku;index"`
	SKU         string         `gorm:"column:sku;type:varchar(64);not null;uniqueIndex:uq_product_sku"`
	Name        string         `gorm:"column:name;type:varchar(255);not null"`
	Description *string        `gorm:"column:description;type:text"`
	Unit        string         `gorm:"column:unit;type:varchar(20);not null;default:pcs"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Product) TableName() string {
	return "products"
}

// Price is one row of a product's price history. The open row has a null
// ends_at; the partial unique index keeps it to at most one per product.
type Price struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index"`
	ProductID  uuid.UUID  `gorm:"column:product_id;type:uuid;not null;index;uniqueIndex:uq_product_open_price,where:ends_at IS NULL"`
	PriceCents int64      `gorm:"column:price_cents;not null"`
	StartsAt   time.Time  `gorm:"column:starts_at;type:timestamptz;not null"`
	EndsAt     *time.Time `gorm:"column:ends_at;type:timestamptz"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
}

func (Price) TableName() string {
	return "product_prices"
}
