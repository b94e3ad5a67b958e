package order

import (
	"context"

	"go-fieldforce/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, o *Order) error
	CreateItems(ctx context.Context, items []Item) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Order, error)
	FindAllByRep(ctx context.Context, companyID, companyUserID string) ([]Order, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Order, error)
	UpdateColumns(ctx context.Context, companyID, id string, cols map[string]interface{}) (int64, error)
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

func (r *repository) Create(ctx context.Context, o *Order) error {
	return r.db.WithContext(ctx).Omit("Items").Create(o).Error
}

func (r *repository) CreateItems(ctx context.Context, items []Item) error {
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Order, error) {
	var rows []Order
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByRep(ctx context.Context, companyID, companyUserID string) ([]Order, error) {
	var rows []Order
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("company_user_id = ?", companyUserID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Order, error) {
	var o Order
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Items").
		First(&o, "id = ?", id).Error
	return &o, err
}

func (r *repository) UpdateColumns(ctx context.Context, companyID, id string, cols map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Order{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Updates(cols)
	return res.RowsAffected, res.Error
}
