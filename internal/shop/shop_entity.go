package shop

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shop is a physical sales location with a circular geofence.
type Shop struct {
	ID                 uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID          uuid.UUID      `gorm:"column:company_id;type:uuid;not null;uniqueIndex:uq_shop_code;index"`
	Code               string         `gorm:"column:code;type:varchar(50);not null;uniqueIndex:uq_shop_code"`
	Name               string         `gorm:"column:name;type:varchar(255);not null"`
	Address            *string        `gorm:"column:address;type:text"`
	Latitude           float64        `gorm:"column:latitude;not null"`
	Longitude          float64        `gorm:"column:longitude;not null"`
	GeofenceRadiusM    float64        `gorm:"column:geofence_radius_m;not null;default:150"`
	LocationVerifiedAt *time.Time     `gorm:"column:location_verified_at;type:timestamptz"`
	LocationVerifiedBy *uuid.UUID     `gorm:"column:location_verified_by;type:uuid"`
	CreatedAt          time.Time      `gorm:"column:created_at"`
	UpdatedAt          time.Time      `gorm:"column:updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Shop) TableName() string {
	return "shops"
}

// Assignment links a rep (company_user) to a shop. A rep covers many shops
// and a shop is covered by many reps.
type Assignment struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	ShopID        uuid.UUID `gorm:"column:shop_id;type:uuid;not null;uniqueIndex:uq_shop_rep"`
	CompanyUserID uuid.UUID `gorm:"column:company_user_id;type:uuid;not null;uniqueIndex:uq_shop_rep;index"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (Assignment) TableName() string {
	return "shop_assignments"
}
