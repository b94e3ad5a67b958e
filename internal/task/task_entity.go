package task

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type Task struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index"`
	CompanyUserID uuid.UUID  `gorm:"column:company_user_id;type:uuid;not null;index"`
	Title         string     `gorm:"column:title;type:varchar(255);not null"`
	Description   *string    `gorm:"column:description;type:text"`
	Status        string     `gorm:"column:status;type:varchar(20);not null;default:pending"`
	DueAt         *time.Time `gorm:"column:due_at;type:timestamptz"`
	CompletedAt   *time.Time `gorm:"column:completed_at;type:timestamptz"`
	CreatedBy     uuid.UUID  `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}
