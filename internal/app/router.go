// internal/app/router.go
package app

import (
	campaignHandler "reviewspin-service/internal/handlers/campaign"
	playHandler "reviewspin-service/internal/handlers/play"
	wsfeedHandler "reviewspin-service/internal/handlers/wsfeed"
	"reviewspin-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	PlayHandler     *playHandler.PlayHandler
	CampaignHandler *campaignHandler.CampaignHandler
	WSHandler       *wsfeedHandler.WSHandler
	RateLimiter     *middleware.PlayRateLimiter
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== Campaigns ====================
	campaigns := api.Group("/campaigns")
	{
		campaigns.GET("/:id", h.CampaignHandler.GetSnapshot)
		campaigns.GET("/:id/winners", h.CampaignHandler.ListWinners)
		campaigns.GET("/:id/eligibility", h.PlayHandler.CheckEligibility)
		campaigns.POST("/:id/conditions/:condition_id/complete", h.PlayHandler.CompleteCondition)
		campaigns.POST("/:id/play", h.RateLimiter.Middleware(), h.PlayHandler.Play)
	}

	// ==================== Winner feed ====================
	api.GET("/stores/:id/winners/ws", h.WSHandler.WinnerFeed)
}
