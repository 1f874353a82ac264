package api

import (
	"github.com/gin-gonic/gin"

	"github.com/minwoo-jeong/asreco/internal/api/controller"
	"github.com/minwoo-jeong/asreco/internal/api/middleware"
)

// RegisterRoutes wires every endpoint.
func RegisterRoutes(r *gin.Engine, sessionCtrl *controller.SessionController, refCtrl *controller.ReferenceController) {
	r.Use(middleware.Cors())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/sessions/analyze", sessionCtrl.Analyze)
		v1.GET("/sessions/:id", sessionCtrl.Get)
		v1.GET("/sessions/:id/records", sessionCtrl.Records)
		v1.GET("/sessions/:id/stats/affiliations", sessionCtrl.AffiliationStats)
		v1.GET("/sessions/:id/parts", sessionCtrl.Parts)
		v1.GET("/sessions/:id/export", sessionCtrl.Export)

		v1.GET("/references/assets", refCtrl.Assets)
		v1.GET("/references/org", refCtrl.Org)
	}
}
