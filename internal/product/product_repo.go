package product

import (
	"context"
	"time"

	"go-fieldforce/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, p *Product) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Product, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Product, error)
	UpdateColumns(ctx context.Context, companyID, id string, cols map[string]interface{}) (int64, error)
	Delete(ctx context.Context, companyID, id string) (int64, error)

	CreatePrice(ctx context.Context, p *Price) error
	CloseOpenPrice(ctx context.Context, companyID, productID string, at time.Time) (int64, error)
	FindOpenPrice(ctx context.Context, companyID, productID string) (*Price, error)
	FindOpenPrices(ctx context.Context, companyID string, productIDs []string) ([]Price, error)
	ListPrices(ctx context.Context, companyID, productID string) ([]Price, error)
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

func (r *repository) Create(ctx context.Context, p *Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Product, error) {
	var rows []Product
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Product, error) {
	var p Product
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) UpdateColumns(ctx context.Context, companyID, id string, cols map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Product{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Updates(cols)
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Product{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) CreatePrice(ctx context.Context, p *Price) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) CloseOpenPrice(ctx context.Context, companyID, productID string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Price{}).
		Scopes(tenant.Scope(companyID)).
		Where("product_id = ?", productID).
		Where("ends_at IS NULL").
		Update("ends_at", at)
	return res.RowsAffected, res.Error
}

func (r *repository) FindOpenPrice(ctx context.Context, companyID, productID string) (*Price, error) {
	var p Price
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("product_id = ?", productID).
		Where("ends_at IS NULL").
		First(&p).Error
	return &p, err
}

func (r *repository) FindOpenPrices(ctx context.Context, companyID string, productIDs []string) ([]Price, error) {
	var rows []Price
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("product_id IN ?", productIDs).
		Where("ends_at IS NULL").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListPrices(ctx context.Context, companyID, productID string) ([]Price, error) {
	var rows []Price
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("product_id = ?", productID).
		Order("starts_at DESC").
		Find(&rows).Error
	return rows, err
}
