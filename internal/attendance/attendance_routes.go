package attendance

import (
	"go-fieldforce/internal/middleware"
	"go-fieldforce/internal/policy"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, policies policy.Service) {
	group := r.Group("/manager/attendance")
	group.Use(middleware.AuthMiddleware())

	group.GET("", middleware.Authorize(policies, policy.ResourceAttendance, policy.ActionRead), handler.List)
	group.POST("/clock-in", middleware.Authorize(policies, policy.ResourceAttendance, policy.ActionCreate), handler.ClockIn)
	group.POST("/clock-out", middleware.Authorize(policies, policy.ResourceAttendance, policy.ActionCreate), handler.ClockOut)
}
