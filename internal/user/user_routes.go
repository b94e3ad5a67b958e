package user

import (
	"go-fieldforce/internal/middleware"
	"go-fieldforce/internal/policy"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, policies policy.Service) {
	group := r.Group("/profile")
	group.Use(middleware.AuthMiddleware())

	group.GET("", middleware.Authorize(policies, policy.ResourceProfile, policy.ActionRead), handler.GetProfile)
	group.PATCH("", middleware.Authorize(policies, policy.ResourceProfile, policy.ActionUpdate), handler.UpdateProfile)
}
