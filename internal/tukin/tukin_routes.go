package tukin

import (
	"go-presensi/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb *redis.Client) {
	t := r.Group("/tukin")
	t.Use(middleware.AuthMiddleware())
	{
		t.GET("/preview", h.Preview)
		t.GET("/calculations/me", h.GetMyCalculation)

		admin := t.Group("")
		admin.Use(middleware.RoleMiddleware("SUPER_ADMIN", "ADMIN"))
		{
			admin.POST("/policies", h.CreatePolicy)
			admin.GET("/policies", h.GetPolicies)
			admin.DELETE("/policies/:id", h.DeletePolicy)

			admin.GET("/previews", h.PreviewScope)
			// Generate bersifat efekful; Idempotency-Key melindungi dari retry
			// ganda klien.
			admin.POST("/generate", middleware.Idempotency(rdb), h.Generate)
			admin.GET("/calculations", h.GetCalculations)
		}
	}
}
