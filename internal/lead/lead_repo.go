package lead

import (
	"context"

	"go-fieldforce/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, l *Lead) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Lead, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Lead, error)
	UpdateColumns(ctx context.Context, companyID, id string, cols map[string]interface{}) (int64, error)
	Delete(ctx context.Context, companyID, id string) (int64, error)
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

func (r *repository) Create(ctx context.Context, l *Lead) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Lead, error) {
	var rows []Lead
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Lead, error) {
	var l Lead
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) UpdateColumns(ctx context.Context, companyID, id string, cols map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Lead{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Updates(cols)
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Lead{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
