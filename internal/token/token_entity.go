package token

import (
	"time"

	"github.com/google/uuid"
)

// Token kinds.
const (
	KindEmailVerify   = "email_verify"
	KindPasswordReset = "password_reset"
)

// Token is a single-use credential. Only the SHA-256 of the plaintext is
// stored; the plaintext leaves the process exactly once, at creation.
type Token struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	Kind      string     `gorm:"column:kind;type:varchar(30);not null;index"`
	TokenHash string     `gorm:"column:token_hash;type:char(64);uniqueIndex:uq_token_hash;not null"`
	ExpiresAt time.Time  `gorm:"column:expires_at;type:timestamptz;not null"`
	UsedAt    *time.Time `gorm:"column:used_at;type:timestamptz"`
	CreatedAt time.Time  `gorm:"column:created_at"`
}

func (Token) TableName() string {
	return "tokens"
}
