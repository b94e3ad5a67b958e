package visit

import (
	"time"

	"github.com/google/uuid"
)

// Visit is a timed rep-at-shop session. A null ended_at means the rep is
// still on site.
type Visit struct {
	ID               uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID        uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index"`
	ShopID           uuid.UUID  `gorm:"column:shop_id;type:uuid;not null;index"`
	CompanyUserID    uuid.UUID  `gorm:"column:company_user_id;type:uuid;not null;index"`
	StartedAt        time.Time  `gorm:"column:started_at;type:timestamptz;not null"`
	EndedAt          *time.Time `gorm:"column:ended_at;type:timestamptz"`
	StartLat         float64    `gorm:"column:start_lat;not null"`
	StartLng         float64    `gorm:"column:start_lng;not null"`
	GeofenceVerified bool       `gorm:"column:geofence_verified;not null;default:false"`
	Notes            *string    `gorm:"column:notes;type:text"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (Visit) TableName() string {
	return "visits"
}
