package calendar

import (
	"go-presensi/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	cal := r.Group("/calendar")
	cal.Use(middleware.AuthMiddleware())
	{
		cal.GET("/days", h.GetDays)
		cal.GET("/patterns", h.GetPatterns)

		admin := cal.Group("")
		admin.Use(middleware.RoleMiddleware("SUPER_ADMIN", "ADMIN"))
		{
			admin.POST("/patterns", h.CreatePattern)
			admin.DELETE("/patterns/:id", h.DeletePattern)
			admin.POST("/holidays", h.CreateHoliday)
			admin.DELETE("/holidays/:id", h.DeleteHoliday)
			admin.POST("/generate", h.Generate)
		}
	}
}
