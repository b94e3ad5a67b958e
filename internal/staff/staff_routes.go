package staff

import (
	"go-fieldforce/internal/middleware"
	"go-fieldforce/internal/policy"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, policies policy.Service) {
	staff := r.Group("/manager/staff", middleware.AuthMiddleware())
	{
		staff.GET("", middleware.Authorize(policies, policy.ResourceStaff, policy.ActionRead), handler.List)
		staff.GET("/options", middleware.Authorize(policies, policy.ResourceStaff, policy.ActionRead), handler.Options)
		staff.GET("/:id", middleware.Authorize(policies, policy.ResourceStaff, policy.ActionRead), handler.Get)
		staff.POST("", middleware.Authorize(policies, policy.ResourceStaff, policy.ActionCreate), handler.Create)
		staff.PATCH("/:id", middleware.Authorize(policies, policy.ResourceStaff, policy.ActionUpdate), handler.Update)

		staff.POST("/:id/deactivate-preview", middleware.Authorize(policies, policy.ResourceStaff, policy.ActionUpdate), handler.DeactivatePreview)
		staff.POST("/:id/deactivate", middleware.Authorize(policies, policy.ResourceStaff, policy.ActionDelete), handler.Deactivate)
	}
}
