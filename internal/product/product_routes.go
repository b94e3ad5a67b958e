package product

import (
	"go-fieldforce/internal/middleware"
	"go-fieldforce/internal/policy"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, policies policy.Service) {
	products := r.Group("/manager/products", middleware.AuthMiddleware())
	{
		products.GET("", middleware.Authorize(policies, policy.ResourceProduct, policy.ActionRead), handler.List)
		products.GET("/:id", middleware.Authorize(policies, policy.ResourceProduct, policy.ActionRead), handler.Get)
		products.POST("", middleware.Authorize(policies, policy.ResourceProduct, policy.ActionCreate), handler.Create)
		products.PATCH("/:id", middleware.Authorize(policies, policy.ResourceProduct, policy.ActionUpdate), handler.Update)
		products.DELETE("/:id", middleware.Authorize(policies, policy.ResourceProduct, policy.ActionDelete), handler.Delete)

		products.GET("/:id/prices", middleware.Authorize(policies, policy.ResourceProduct, policy.ActionRead), handler.ListPrices)
		products.PUT("/:id/price", middleware.Authorize(policies, policy.ResourceProduct, policy.ActionUpdate), handler.SetPrice)
	}
}
