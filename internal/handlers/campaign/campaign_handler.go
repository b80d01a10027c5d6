// internal/handlers/campaign/campaign_handler.go
package campaign

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	xerrors "reviewspin-service/internal/pkg/errors"
	"reviewspin-service/internal/pkg/response"
	"reviewspin-service/internal/service/draw"
)

type CampaignHandler struct {
	svc    *draw.Service
	logger *zap.Logger
}

func NewCampaignHandler(svc *draw.Service, logger *zap.Logger) *CampaignHandler {
	return &CampaignHandler{svc: svc, logger: logger}
}

// GetSnapshot returns the play-page view of a campaign.
// GET /api/campaigns/:id
func (h *CampaignHandler) GetSnapshot(c *gin.Context) {
	campaignID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid campaign id", err)
		return
	}

	snap, err := h.svc.Snapshot(c.Request.Context(), campaignID)
	switch {
	case err == nil:
	case xerrors.Is(err, xerrors.ErrNotFound):
		response.NotFound(c, "campaign not found")
		return
	case xerrors.Is(err, xerrors.ErrCampaignInactive):
		response.Error(c, http.StatusConflict, "campaign is not active", nil)
		return
	case xerrors.Is(err, xerrors.ErrCampaignNotConfigured):
		response.Error(c, http.StatusConflict, "campaign is not ready to play", nil)
		return
	default:
		h.logger.Error("failed to load campaign snapshot", zap.Int64("campaign_id", campaignID), zap.Error(err))
		response.InternalError(c, "failed to load campaign", nil)
		return
	}

	response.Success(c, http.StatusOK, "campaign loaded", snap.Public())
}

// ListWinners returns a campaign's recent winners.
// GET /api/campaigns/:id/winners?limit=
func (h *CampaignHandler) ListWinners(c *gin.Context) {
	campaignID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid campaign id", err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	winners, err := h.svc.ListWinners(c.Request.Context(), campaignID, limit)
	if err != nil {
		h.logger.Error("failed to list winners", zap.Int64("campaign_id", campaignID), zap.Error(err))
		response.InternalError(c, "failed to list winners", nil)
		return
	}

	response.Success(c, http.StatusOK, "winners listed", winners)
}
