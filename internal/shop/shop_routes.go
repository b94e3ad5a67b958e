package shop

import (
	"go-fieldforce/internal/middleware"
	"go-fieldforce/internal/policy"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, policies policy.Service) {
	shops := r.Group("/manager/shops", middleware.AuthMiddleware())
	{
		shops.GET("", middleware.Authorize(policies, policy.ResourceShop, policy.ActionRead), handler.List)
		shops.GET("/:id", middleware.Authorize(policies, policy.ResourceShop, policy.ActionRead), handler.Get)
		shops.POST("", middleware.Authorize(policies, policy.ResourceShop, policy.ActionCreate), handler.Create)
		shops.PATCH("/:id", middleware.Authorize(policies, policy.ResourceShop, policy.ActionUpdate), handler.Update)
		shops.DELETE("/:id", middleware.Authorize(policies, policy.ResourceShop, policy.ActionDelete), handler.Delete)

		shops.GET("/:id/reps", middleware.Authorize(policies, policy.ResourceShop, policy.ActionRead), handler.ListReps)
		shops.POST("/:id/reps", middleware.Authorize(policies, policy.ResourceShop, policy.ActionUpdate), handler.AssignRep)
		shops.DELETE("/:id/reps/:companyUserId", middleware.Authorize(policies, policy.ResourceShop, policy.ActionUpdate), handler.UnassignRep)
	}
}
