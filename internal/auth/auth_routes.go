package auth

import (
	"go-fieldforce/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.5, 5), handler.Login)
		auth.GET("/me", middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 5), handler.Me)
		auth.POST("/logout", handler.Logout)
		auth.POST("/register", middleware.RateLimitByIP(0.1, 2), handler.Register)
		auth.POST("/forgot-password", middleware.RateLimitByIP(0.1, 3), handler.ForgotPassword)
		auth.POST("/reset-password", middleware.RateLimitByIP(0.2, 3), handler.ResetPassword)
		auth.GET("/verify-email", handler.VerifyEmail)
	}
}
