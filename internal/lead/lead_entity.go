package lead

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusQualified = "qualified"
	StatusConverted = "converted"
	StatusLost      = "lost"
)

// Lead rows are hard-deleted; a dropped prospect leaves no tombstone.
type Lead struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index"`
	Name        string     `gorm:"column:name;type:varchar(255);not null"`
	ContactName *string    `gorm:"column:contact_name;type:varchar(255)"`
	Phone       *string    `gorm:"column:phone;type:varchar(30)"`
	Email       *string    `gorm:"column:email;type:varchar(255)"`
	Status      string     `gorm:"column:status;type:varchar(20);not null;default:new"`
	Notes       *string    `gorm:"column:notes;type:text"`
	ConvertedAt *time.Time `gorm:"column:converted_at;type:timestamptz"`
	CreatedBy   uuid.UUID  `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (Lead) TableName() string {
	return "leads"
}

func ValidStatus(status string) bool {
	switch status {
	case StatusNew, StatusContacted, StatusQualified, StatusConverted, StatusLost:
		return true
	default:
		return false
	}
}
