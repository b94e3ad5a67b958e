package task

import (
	"go-fieldforce/internal/middleware"
	"go-fieldforce/internal/policy"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, policies policy.Service) {
	tasks := r.Group("/manager/tasks", middleware.AuthMiddleware())
	{
		tasks.GET("", middleware.Authorize(policies, policy.ResourceTask, policy.ActionRead), handler.List)
		tasks.GET("/:id", middleware.Authorize(policies, policy.ResourceTask, policy.ActionRead), handler.Get)
		tasks.POST("", middleware.Authorize(policies, policy.ResourceTask, policy.ActionCreate), handler.Create)
		tasks.PATCH("/:id", middleware.Authorize(policies, policy.ResourceTask, policy.ActionUpdate), handler.Update)
		tasks.DELETE("/:id", middleware.Authorize(policies, policy.ResourceTask, policy.ActionDelete), handler.Delete)

		tasks.POST("/:id/complete", middleware.Authorize(policies, policy.ResourceTask, policy.ActionComplete), handler.Complete)
	}
}
