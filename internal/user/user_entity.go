package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a global identity. It may hold memberships in several companies;
// the membership rows live in company_users.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string         `gorm:"column:email;type:varchar(255);uniqueIndex:uq_user_email;not null"`
	PasswordHash string         `gorm:"column:password_hash;type:varchar(255);not null"`
	FullName     string         `gorm:"column:full_name;type:varchar(255);not null"`
	Phone        *string        `gorm:"column:phone;type:varchar(50)"`
	VerifiedAt   *time.Time     `gorm:"column:verified_at;type:timestamptz"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at;type:timestamptz"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}
