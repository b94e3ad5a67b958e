package staff

import (
	"context"
	"time"

	"go-fieldforce/internal/shop"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Member is the joined view of a membership and its user row.
type Member struct {
	CompanyUserID uuid.UUID  `gorm:"column:company_user_id"`
	UserID        uuid.UUID  `gorm:"column:user_id"`
	Email         string     `gorm:"column:email"`
	FullName      string     `gorm:"column:full_name"`
	Phone         *string    `gorm:"column:phone"`
	Role          string     `gorm:"column:role"`
	Status        string     `gorm:"column:status"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	LastLoginAt   *time.Time `gorm:"column:last_login_at"`
}

// ShopLoad is one shop a rep covers plus how many reps cover it in total,
// target included.
type ShopLoad struct {
	ShopID   uuid.UUID `gorm:"column:shop_id"`
	Code     string    `gorm:"column:code"`
	Name     string    `gorm:"column:name"`
	RepCount int64     `gorm:"column:rep_count"`
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListMembers(ctx context.Context, companyID string) ([]Member, error)
	GetMember(ctx context.Context, companyID, companyUserID string) (*Member, error)
	UpdateMembershipColumns(ctx context.Context, companyID, companyUserID string, cols map[string]interface{}) (int64, error)
	ListRepShopLoads(ctx context.Context, companyID, companyUserID string) ([]ShopLoad, error)
	DeleteAllAssignments(ctx context.Context, companyID, companyUserID string) (int64, error)
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

func (r *repository) ListMembers(ctx context.Context, companyID string) ([]Member, error) {
	var rows []Member
	err := r.db.WithContext(ctx).Raw(`
		SELECT cu.id AS company_user_id, u.id AS user_id, u.email, u.full_name,
		       u.phone, cu.role, cu.status, cu.created_at, u.last_login_at
		FROM company_users cu
		JOIN users u ON u.id = cu.user_id AND u.deleted_at IS NULL
		WHERE cu.company_id = ? AND cu.deleted_at IS NULL
		ORDER BY u.full_name ASC
	`, companyID).Scan(&rows).Error
	return rows, err
}

func (r *repository) GetMember(ctx context.Context, companyID, companyUserID string) (*Member, error) {
	var m Member
	res := r.db.WithContext(ctx).Raw(`
		SELECT cu.id AS company_user_id, u.id AS user_id, u.email, u.full_name,
		       u.phone, cu.role, cu.status, cu.created_at, u.last_login_at
		FROM company_users cu
		JOIN users u ON u.id = cu.user_id AND u.deleted_at IS NULL
		WHERE cu.company_id = ? AND cu.id = ? AND cu.deleted_at IS NULL
	`, companyID, companyUserID).Scan(&m)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &m, nil
}

func (r *repository) UpdateMembershipColumns(ctx context.Context, companyID, companyUserID string, cols map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).
		Table("company_users").
		Where("company_id = ?", companyID).
		Where("id = ?", companyUserID).
		Where("deleted_at IS NULL").
		Updates(cols)
	return res.RowsAffected, res.Error
}

// ListRepShopLoads returns every shop assigned to the rep with the total
// assignee count per shop. The count includes the rep itself, so 1 means the
// rep is the shop's only coverage.
func (r *repository) ListRepShopLoads(ctx context.Context, companyID, companyUserID string) ([]ShopLoad, error) {
	var rows []ShopLoad
	err := r.db.WithContext(ctx).Raw(`
		SELECT s.id AS shop_id, s.code, s.name,
		       (SELECT COUNT(*) FROM shop_assignments sa2 WHERE sa2.shop_id = s.id) AS rep_count
		FROM shop_assignments sa
		JOIN shops s ON s.id = sa.shop_id AND s.deleted_at IS NULL
		WHERE sa.company_id = ? AND sa.company_user_id = ?
		ORDER BY s.code ASC
	`, companyID, companyUserID).Scan(&rows).Error
	return rows, err
}

func (r *repository) DeleteAllAssignments(ctx context.Context, companyID, companyUserID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("company_user_id = ?", companyUserID).
		Delete(&shop.Assignment{})
	return res.RowsAffected, res.Error
}
