package attendance

import (
	"time"

	"github.com/google/uuid"
)

// Log is one clock-in/out session. The partial unique index on
// (company_user_id) WHERE clock_out_at IS NULL closes the concurrent
// clock-in race: the database admits at most one open session per rep even
// if two requests pass the application check together.
type Log struct {
	ID               uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID        uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index"`
	CompanyUserID    uuid.UUID  `gorm:"column:company_user_id;type:uuid;not null;index;uniqueIndex:uq_attendance_open,where:clock_out_at IS NULL"`
	ShopID           *uuid.UUID `gorm:"column:shop_id;type:uuid"`
	ClockInAt        time.Time  `gorm:"column:clock_in_at;type:timestamptz;not null"`
	ClockOutAt       *time.Time `gorm:"column:clock_out_at;type:timestamptz"`
	ClockInLat       *float64   `gorm:"column:clock_in_lat"`
	ClockInLng       *float64   `gorm:"column:clock_in_lng"`
	ClockOutLat      *float64   `gorm:"column:clock_out_lat"`
	ClockOutLng      *float64   `gorm:"column:clock_out_lng"`
	GeofenceVerified bool       `gorm:"column:geofence_verified;not null;default:false"`
	Notes            *string    `gorm:"column:notes;type:text"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (Log) TableName() string {
	return "attendance_logs"
}
