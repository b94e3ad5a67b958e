package token

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	InvalidateLive(ctx context.Context, userID, kind string) error
	Create(ctx context.Context, t *Token) error
	ConsumeByHash(ctx context.Context, hash, kind string) (string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// InvalidateLive burns every unconsumed token of this (user, kind) so at
// most one live token exists per pair.
func (r *repository) InvalidateLive(ctx context.Context, userID, kind string) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE tokens
		SET used_at = now()
		WHERE user_id = ? AND kind = ? AND used_at IS NULL
	`, userID, kind).Error
}

func (r *repository) Create(ctx context.Context, t *Token) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// ConsumeByHash marks the token used and returns its owner in one statement.
// Two concurrent consumers cannot both match the used_at IS NULL predicate,
// so at most one caller gets the user id back.
func (r *repository) ConsumeByHash(ctx context.Context, hash, kind string) (string, error) {
	var userID string
	err := r.db.WithContext(ctx).Raw(`
		UPDATE tokens
		SET used_at = now()
		WHERE token_hash = ?
			AND kind = ?
			AND used_at IS NULL
			AND expires_at > now()
		RETURNING user_id::text
	`, hash, kind).Scan(&userID).Error
	if err != nil {
		return "", err
	}
	return userID, nil
}
