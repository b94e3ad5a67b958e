package visit

import (
	"go-fieldforce/internal/middleware"
	"go-fieldforce/internal/policy"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, policies policy.Service) {
	visits := r.Group("/manager/visits", middleware.AuthMiddleware())
	{
		visits.GET("", middleware.Authorize(policies, policy.ResourceVisit, policy.ActionRead), handler.List)
		visits.POST("/start", middleware.Authorize(policies, policy.ResourceVisit, policy.ActionCreate), handler.Start)
		visits.POST("/:id/end", middleware.Authorize(policies, policy.ResourceVisit, policy.ActionCreate), handler.End)
	}
}
