package staff

import "time"

type CreateStaffRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	FullName string  `json:"full_name" binding:"required,max=255"`
	Phone    *string `json:"phone" binding:"omitempty,max=30"`
	Role     string  `json:"role" binding:"required"`
}

type UpdateStaffRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,max=255"`
	Phone    *string `json:"phone" binding:"omitempty,max=30"`
	Role     *string `json:"role"`
}

type DeactivateRequest struct {
	// Reassignments maps solo shop id to the replacement rep's
	// company_user id.
	Reassignments map[string]string `json:"reassignments"`
}

type StaffResponse struct {
	CompanyUserID string     `json:"company_user_id"`
	UserID        string     `json:"user_id"`
	Email         string     `json:"email"`
	FullName      string     `json:"full_name"`
	Phone         *string    `json:"phone"`
	Role          string     `json:"role"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	LastLoginAt   *time.Time `json:"last_login_at"`
}

type ShopRef struct {
	ShopID   string `json:"shop_id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	RepCount int64  `json:"rep_count"`
}

type DeactivatePreviewResponse struct {
	SoloShops   []ShopRef `json:"solo_shops"`
	SharedShops []ShopRef `json:"shared_shops"`
}

func toStaffResponse(m *Member) StaffResponse {
	return StaffResponse{
		CompanyUserID: m.CompanyUserID.String(),
		UserID:        m.UserID.String(),
		Email:         m.Email,
		FullName:      m.FullName,
		Phone:         m.Phone,
		Role:          m.Role,
		Status:        m.Status,
		CreatedAt:     m.CreatedAt,
		LastLoginAt:   m.LastLoginAt,
	}
}

func toShopRef(l ShopLoad) ShopRef {
	return ShopRef{
		ShopID:   l.ShopID.String(),
		Code:     l.Code,
		Name:     l.Name,
		RepCount: l.RepCount,
	}
}
