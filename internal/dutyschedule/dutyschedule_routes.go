package dutyschedule

import (
	"go-presensi/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	duty := r.Group("/duty-schedules")
	duty.Use(middleware.AuthMiddleware())
	{
		duty.GET("", h.GetSchedules)
		duty.POST("/requests", h.CreateRequest)
		duty.GET("/requests", h.GetRequests)
		duty.POST("/requests/:id/cancel", h.Cancel)

		admin := duty.Group("")
		admin.Use(middleware.RoleMiddleware("SUPER_ADMIN", "ADMIN"))
		{
			admin.POST("", h.CreateSchedule)
			admin.DELETE("/:id", h.DeleteSchedule)
			admin.POST("/requests/:id/approve", h.Approve)
			admin.POST("/requests/:id/reject", h.Reject)
		}
	}
}
