package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Company is the tenant boundary. Every other table carries its id.
type Company struct {
	ID                   uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name                 string     `gorm:"column:name;type:varchar(255);not null"`
	Slug                 string     `gorm:"column:slug;type:varchar(100);uniqueIndex:uq_company_slug;not null"`
	Status               string     `gorm:"column:status;type:varchar(20);not null;default:active"`
	Plan                 string     `gorm:"column:plan;type:varchar(50);not null;default:starter"`
	StaffLimit           int        `gorm:"column:staff_limit;not null;default:10"`
	SubscriptionStartsAt *time.Time `gorm:"column:subscription_starts_at;type:timestamptz"`
	SubscriptionEndsAt   *time.Time `gorm:"column:subscription_ends_at;type:timestamptz"`
	CreatedAt            time.Time  `gorm:"column:created_at"`
	UpdatedAt            time.Time  `gorm:"column:updated_at"`
}

func (Company) TableName() string {
	return "companies"
}

// CompanyUser is a user's membership in one company, with the role the
// policy table keys on. Unique per (company, user).
type CompanyUser struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID      `gorm:"column:company_id;type:uuid;not null;uniqueIndex:uq_company_user;index"`
	UserID    uuid.UUID      `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_company_user;index"`
	Role      string         `gorm:"column:role;type:varchar(30);not null"`
	Status    string         `gorm:"column:status;type:varchar(20);not null;default:active"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (CompanyUser) TableName() string {
	return "company_users"
}
