package attendance

import (
	"context"
	"time"

	"go-fieldforce/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, l *Log) error
	FindOpenByRep(ctx context.Context, companyID, companyUserID string) (*Log, error)
	CloseOpen(ctx context.Context, companyID, companyUserID string, at time.Time, cols map[string]interface{}) (int64, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]Log, error)
	FindAllByRep(ctx context.Context, companyID, companyUserID string) ([]Log, error)
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

func (r *repository) Create(ctx context.Context, l *Log) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindOpenByRep(ctx context.Context, companyID, companyUserID string) (*Log, error) {
	var l Log
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("company_user_id = ?", companyUserID).
		Where("clock_out_at IS NULL").
		First(&l).Error
	return &l, err
}

// CloseOpen targets whichever session is open for the rep, so clock-out
// never needs an id from the caller.
func (r *repository) CloseOpen(ctx context.Context, companyID, companyUserID string, at time.Time, cols map[string]interface{}) (int64, error) {
	updates := map[string]interface{}{
		"clock_out_at": at,
		"updated_at":   at,
	}
	for k, v := range cols {
		updates[k] = v
	}

	res := r.db.WithContext(ctx).
		Model(&Log{}).
		Scopes(tenant.Scope(companyID)).
		Where("company_user_id = ?", companyUserID).
		Where("clock_out_at IS NULL").
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Log, error) {
	var rows []Log
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("clock_in_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByRep(ctx context.Context, companyID, companyUserID string) ([]Log, error) {
	var rows []Log
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("company_user_id = ?", companyUserID).
		Order("clock_in_at DESC").
		Find(&rows).Error
	return rows, err
}
