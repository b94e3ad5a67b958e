package task

import (
	"context"

	"go-fieldforce/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, t *Task) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Task, error)
	FindAllByAssignee(ctx context.Context, companyID, companyUserID string) ([]Task, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Task, error)
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

func (r *repository) Create(ctx context.Context, t *Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Task, error) {
	var rows []Task
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("due_at ASC NULLS LAST, created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByAssignee(ctx context.Context, companyID, companyUserID string) ([]Task, error) {
	var rows []Task
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("company_user_id = ?", companyUserID).
		Order("due_at ASC NULLS LAST, created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Task, error) {
	var t Task
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) UpdateColumns(ctx context.Context, companyID, id string, cols map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Task{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Updates(cols)
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Task{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
