package lead

import "time"

type CreateLeadRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	ContactName *string `json:"contact_name" binding:"omitempty,max=255"`
	Phone       *string `json:"phone" binding:"omitempty,max=30"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Notes       *string `json:"notes"`
}

type UpdateLeadRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	ContactName *string `json:"contact_name" binding:"omitempty,max=255"`
	Phone       *string `json:"phone" binding:"omitempty,max=30"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Status      *string `json:"status"`
	Notes       *string `json:"notes"`
}

type LeadResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	ContactName *string    `json:"contact_name"`
	Phone       *string    `json:"phone"`
	Email       *string    `json:"email"`
	Status      string     `json:"status"`
	Notes       *string    `json:"notes"`
	ConvertedAt *time.Time `json:"converted_at"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toLeadResponse(l *Lead) LeadResponse {
	return LeadResponse{
		ID:          l.ID.String(),
		Name:        l.Name,
		ContactName: l.ContactName,
		Phone:       l.Phone,
		Email:       l.Email,
		Status:      l.Status,
		Notes:       l.Notes,
		ConvertedAt: l.ConvertedAt,
		CreatedBy:   l.CreatedBy.String(),
		CreatedAt:   l.CreatedAt,
	}
}
