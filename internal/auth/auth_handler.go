package auth

import (
	"net/http"
	"os"

	"go-fieldforce/internal/middleware"
	"go-fieldforce/internal/shared/apperror"
	"go-fieldforce/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const sessionCookieMaxAge = 7 * 24 * 3600

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func setSessionCookie(c *gin.Context, token string, maxAge int) {
	isProd := os.Getenv("APP_ENV") == "production"
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   isProd,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	token, session, err := h.service.Login(c.Request.Context(), req.Email, req.Password, req.CompanySlug)
	if err != nil {
		// 403 for unverified, 401 for everything else; no cookie either way
		writeServiceError(c, err)
		return
	}

	setSessionCookie(c, token, sessionCookieMaxAge)

	response.Success(c, http.StatusOK, gin.H{
		"token":   token,
		"session": session,
	}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	companyID := c.GetString(middleware.CtxCompanyID)
	if userID == "" || companyID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication is required", nil)
		return
	}

	resp, err := h.service.Me(c.Request.Context(), userID, companyID)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication is required", nil)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	setSessionCookie(c, "", -1)
	response.Success(c, http.StatusOK, "Logout success.", nil)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	session, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"session": session}, nil)
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		// still 200; the mail pipeline problem is ours, not the caller's
		_ = err
	}

	response.Success(c, http.StatusOK, gin.H{"message": "If the address exists, a reset link has been sent"}, nil)
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Password updated"}, nil)
}

// VerifyEmail lands from a mail link, so it redirects instead of rendering
// the JSON envelope.
func (h *Handler) VerifyEmail(c *gin.Context) {
	tokenPlain := c.Query("token")

	if err := h.service.VerifyEmail(c.Request.Context(), tokenPlain); err != nil {
		c.Redirect(http.StatusFound, "/login?verified=0")
		return
	}

	c.Redirect(http.StatusFound, "/login?verified=1")
}
