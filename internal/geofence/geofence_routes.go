package geofence

import (
	"go-presensi/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	fences := r.Group("/geofences")
	fences.Use(middleware.AuthMiddleware())
	{
		fences.GET("", h.GetAll)
		fences.POST("", middleware.RoleMiddleware("SUPER_ADMIN", "ADMIN"), h.Create)
		fences.PUT("/:id", middleware.RoleMiddleware("SUPER_ADMIN", "ADMIN"), h.Update)
		fences.DELETE("/:id", middleware.RoleMiddleware("SUPER_ADMIN", "ADMIN"), h.Delete)
	}
}
