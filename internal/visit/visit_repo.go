package visit

import (
	"context"
	"time"

	"go-fieldforce/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, v *Visit) error
	FindOpenByRep(ctx context.Context, companyID, companyUserID string) (*Visit, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Visit, error)
	End(ctx context.Context, companyID, id string, at time.Time) (int64, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]Visit, error)
	FindAllByRep(ctx context.Context, companyID, companyUserID string) ([]Visit, error)
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

func (r *repository) Create(ctx context.Context, v *Visit) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) FindOpenByRep(ctx context.Context, companyID, companyUserID string) (*Visit, error) {
	var v Visit
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("company_user_id = ?", companyUserID).
		Where("ended_at IS NULL").
		First(&v).Error
	return &v, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Visit, error) {
	var v Visit
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&v, "id = ?", id).Error
	return &v, err
}

// End is conditional on the visit still being open, so a double end never
// moves the original timestamp.
func (r *repository) End(ctx context.Context, companyID, id string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Visit{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Where("ended_at IS NULL").
		Updates(map[string]interface{}{
			"ended_at":   at,
			"updated_at": at,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Visit, error) {
	var rows []Visit
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("started_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByRep(ctx context.Context, companyID, companyUserID string) ([]Visit, error) {
	var rows []Visit
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("company_user_id = ?", companyUserID).
		Order("started_at DESC").
		Find(&rows).Error
	return rows, err
}
