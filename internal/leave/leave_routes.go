package leave

import (
	"go-presensi/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("", h.Create)
		leaves.GET("", h.GetAll)
		leaves.GET("/:id", h.GetByID)
		leaves.POST("/:id/cancel", h.Cancel)

		approval := leaves.Group("")
		approval.Use(middleware.RoleMiddleware("SUPER_ADMIN", "ADMIN"))
		{
			approval.POST("/:id/approve", h.Approve)
			approval.POST("/:id/reject", h.Reject)
		}
	}
}
