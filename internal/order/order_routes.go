package order

import (
	"go-fieldforce/internal/middleware"
	"go-fieldforce/internal/policy"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, policies policy.Service, idem gin.HandlerFunc) {
	orders := r.Group("/manager/orders", middleware.AuthMiddleware())
	{
		orders.GET("", middleware.Authorize(policies, policy.ResourceOrder, policy.ActionRead), handler.List)
		orders.GET("/:id", middleware.Authorize(policies, policy.ResourceOrder, policy.ActionRead), handler.Get)
		orders.POST("", middleware.Authorize(policies, policy.ResourceOrder, policy.ActionCreate), idem, handler.Create)
		orders.PATCH("/:id/status", middleware.Authorize(policies, policy.ResourceOrder, policy.ActionUpdate), handler.UpdateStatus)
	}
}
