package lead

import (
	"go-fieldforce/internal/middleware"
	"go-fieldforce/internal/policy"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, policies policy.Service) {
	leads := r.Group("/manager/leads", middleware.AuthMiddleware())
	{
		leads.GET("", middleware.Authorize(policies, policy.ResourceLead, policy.ActionRead), handler.List)
		leads.GET("/:id", middleware.Authorize(policies, policy.ResourceLead, policy.ActionRead), handler.Get)
		leads.POST("", middleware.Authorize(policies, policy.ResourceLead, policy.ActionCreate), handler.Create)
		leads.PATCH("/:id", middleware.Authorize(policies, policy.ResourceLead, policy.ActionUpdate), handler.Update)
		leads.DELETE("/:id", middleware.Authorize(policies, policy.ResourceLead, policy.ActionDelete), handler.Delete)
	}
}
