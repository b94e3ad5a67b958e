package shop

import (
	"context"

	"go-fieldforce/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, s *Shop) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Shop, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Shop, error)
	UpdateColumns(ctx context.Context, companyID, id string, cols map[string]interface{}) (int64, error)
	Delete(ctx context.Context, companyID, id string) (int64, error)
	Assign(ctx context.Context, a *Assignment) error
	Unassign(ctx context.Context, companyID, shopID, companyUserID string) (int64, error)
	IsAssigned(ctx context.Context, companyID, shopID, companyUserID string) (bool, error)
	FindRepsByShop(ctx context.Context, companyID, shopID string) ([]Assignment, error)
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

func (r *repository) Create(ctx context.Context, s *Shop) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Shop, error) {
	var rows []Shop
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Shop, error) {
	var s Shop
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) UpdateColumns(ctx context.Context, companyID, id string, cols map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Shop{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Updates(cols)
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Shop{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

// Assign is conflict-ignoring so re-assigning an already covered shop is a
// no-op rather than an error.
func (r *repository) Assign(ctx context.Context, a *Assignment) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(a).Error
}

func (r *repository) Unassign(ctx context.Context, companyID, shopID, companyUserID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("shop_id = ?", shopID).
		Where("company_user_id = ?", companyUserID).
		Delete(&Assignment{})
	return res.RowsAffected, res.Error
}

func (r *repository) IsAssigned(ctx context.Context, companyID, shopID, companyUserID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Assignment{}).
		Scopes(tenant.Scope(companyID)).
		Where("shop_id = ?", shopID).
		Where("company_user_id = ?", companyUserID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindRepsByShop(ctx context.Context, companyID, shopID string) ([]Assignment, error) {
	var rows []Assignment
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("shop_id = ?", shopID).
		Find(&rows).Error
	return rows, err
}
