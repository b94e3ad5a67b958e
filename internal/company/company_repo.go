package company

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetByID(ctx context.Context, id string) (*Company, error)
	GetBySlug(ctx context.Context, slug string) (*Company, error)
	FindMembershipsByUser(ctx context.Context, userID string) ([]CompanyUser, error)
	GetMembership(ctx context.Context, companyID, userID string) (*CompanyUser, error)
	GetMembershipByID(ctx context.Context, companyID, id string) (*CompanyUser, error)
	CountActiveMembers(ctx context.Context, companyID string) (int64, error)
	CreateMembership(ctx context.Context, cu *CompanyUser) error
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

func (r *repository) GetByID(ctx context.Context, id string) (*Company, error) {
	var c Company
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Company, error) {
	var c Company
	err := r.db.WithContext(ctx).First(&c, "slug = ?", slug).Error
	return &c, err
}

func (r *repository) FindMembershipsByUser(ctx context.Context, userID string) ([]CompanyUser, error) {
	var rows []CompanyUser
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status = ?", StatusActive).
		Find(&rows).Error
	return rows, err
}

func (r *repository) GetMembership(ctx context.Context, companyID, userID string) (*CompanyUser, error) {
	var cu CompanyUser
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("user_id = ?", userID).
		First(&cu).Error
	return &cu, err
}

func (r *repository) GetMembershipByID(ctx context.Context, companyID, id string) (*CompanyUser, error) {
	var cu CompanyUser
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("id = ?", id).
		First(&cu).Error
	return &cu, err
}

func (r *repository) CountActiveMembers(ctx context.Context, companyID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CompanyUser{}).
		Where("company_id = ?", companyID).
		Where("status = ?", StatusActive).
		Count(&count).Error
	return count, err
}

func (r *repository) CreateMembership(ctx context.Context, cu *CompanyUser) error {
	return r.db.WithContext(ctx).Create(cu).Error
}
