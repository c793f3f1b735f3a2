package attendance

import (
	"go-presensi/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	att := r.Group("/attendances")
	att.Use(middleware.AuthMiddleware())
	{
		att.POST("/check-in", h.CheckIn)
		att.POST("/check-out", h.CheckOut)
		att.GET("/me", h.GetMySessions)

		admin := att.Group("")
		admin.Use(middleware.RoleMiddleware("SUPER_ADMIN", "ADMIN"))
		{
			admin.POST("/corrections", h.Correct)
		}
	}
}
