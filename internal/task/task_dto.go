package task

import "time"

type CreateTaskRequest struct {
	CompanyUserID string     `json:"company_user_id" binding:"required,uuid"`
	Title         string     `json:"title" binding:"required,max=255"`
	Description   *string    `json:"description"`
	DueAt         *time.Time `json:"due_at"`
}

type UpdateTaskRequest struct {
	CompanyUserID *string    `json:"company_user_id" binding:"omitempty,uuid"`
	Title         *string    `json:"title" binding:"omitempty,max=255"`
	Description   *string    `json:"description"`
	Status        *string    `json:"status"`
	DueAt         *time.Time `json:"due_at"`
}

type TaskResponse struct {
	ID            string     `json:"id"`
	CompanyUserID string     `json:"company_user_id"`
	Title         string     `json:"title"`
	Description   *string    `json:"description"`
	Status        string     `json:"status"`
	DueAt         *time.Time `json:"due_at"`
	CompletedAt   *time.Time `json:"completed_at"`
	CreatedBy     string     `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toTaskResponse(t *Task) TaskResponse {
	return TaskResponse{
		ID:            t.ID.String(),
		CompanyUserID: t.CompanyUserID.String(),
		Title:         t.Title,
		Description:   t.Description,
		Status:        t.Status,
		DueAt:         t.DueAt,
		CompletedAt:   t.CompletedAt,
		CreatedBy:     t.CreatedBy.String(),
		CreatedAt:     t.CreatedAt,
	}
}
