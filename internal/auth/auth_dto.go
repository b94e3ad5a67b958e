package auth

type LoginRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	CompanySlug string `json:"company_slug"`
}

type RegisterRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
	CompanySlug string `json:"company_slug" binding:"required,min=3,max=60"`
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// Session mirrors the JWT claims plus display fields.
type Session struct {
	UserID        string `json:"user_id"`
	CompanyID     string `json:"company_id"`
	CompanyUserID string `json:"company_user_id"`
	Role          string `json:"role"`
	Email         string `json:"email"`
	FullName      string `json:"full_name"`
	CompanyName   string `json:"company_name"`
	CompanySlug   string `json:"company_slug"`
}

type MeResponse struct {
	User struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		FullName string `json:"full_name"`
		Phone    *string `json:"phone,omitempty"`
	} `json:"user"`
	Company struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Slug string `json:"slug"`
		Plan string `json:"plan"`
	} `json:"company"`
	Role string `json:"role"`
}
