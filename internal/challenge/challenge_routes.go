package challenge

import (
	"go-presensi/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	challenges := r.Group("/attendances/challenge")
	challenges.Use(middleware.AuthMiddleware())
	{
		challenges.POST("", h.Issue)
	}
}
