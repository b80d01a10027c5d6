// internal/handlers/play/play_handler.go
package play

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	drawdomain "reviewspin-service/internal/domain/draw"
	xerrors "reviewspin-service/internal/pkg/errors"
	"reviewspin-service/internal/pkg/response"
	"reviewspin-service/internal/service/draw"
)

type PlayHandler struct {
	svc    *draw.Service
	logger *zap.Logger
}

func NewPlayHandler(svc *draw.Service, logger *zap.Logger) *PlayHandler {
	return &PlayHandler{svc: svc, logger: logger}
}

// Play executes a draw for the campaign in the path.
// POST /api/campaigns/:id/play
func (h *PlayHandler) Play(c *gin.Context) {
	campaignID, ok := campaignIDParam(c)
	if !ok {
		return
	}

	var req drawdomain.PlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid play request", err)
		return
	}

	result, err := h.svc.Play(c.Request.Context(), campaignID, req.Email, req.Name)
	if err != nil {
		h.respondPlayError(c, campaignID, err)
		return
	}

	response.Success(c, http.StatusOK, "draw executed", result)
}

// CheckEligibility answers whether a play would be allowed right now.
// GET /api/campaigns/:id/eligibility?email=
func (h *PlayHandler) CheckEligibility(c *gin.Context) {
	campaignID, ok := campaignIDParam(c)
	if !ok {
		return
	}

	email := c.Query("email")
	if email == "" {
		response.ValidationError(c, "email query parameter is required", nil)
		return
	}

	res, err := h.svc.CheckEligibility(c.Request.Context(), campaignID, email)
	if err != nil {
		h.respondPlayError(c, campaignID, err)
		return
	}

	response.Success(c, http.StatusOK, "eligibility evaluated", res)
}

// CompleteCondition records a condition completion reported by the review
// ingestion side.
// POST /api/campaigns/:id/conditions/:condition_id/complete
func (h *PlayHandler) CompleteCondition(c *gin.Context) {
	campaignID, ok := campaignIDParam(c)
	if !ok {
		return
	}

	conditionID, err := strconv.ParseInt(c.Param("condition_id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid condition id", err)
		return
	}

	var req drawdomain.PlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid completion request", err)
		return
	}

	row, err := h.svc.CompleteCondition(c.Request.Context(), campaignID, conditionID, req.Email, req.Name)
	if err != nil {
		h.respondPlayError(c, campaignID, err)
		return
	}

	response.Success(c, http.StatusOK, "condition completed", row)
}

func (h *PlayHandler) respondPlayError(c *gin.Context, campaignID int64, err error) {
	switch {
	case xerrors.Is(err, xerrors.ErrNotFound):
		response.NotFound(c, "campaign not found")
	case xerrors.Is(err, xerrors.ErrCampaignInactive):
		response.Error(c, http.StatusConflict, "campaign is not active", nil)
	case xerrors.Is(err, xerrors.ErrCampaignNotConfigured):
		response.Error(c, http.StatusConflict, "campaign is not ready to play", nil)
	default:
		var inel *drawdomain.IneligibleError
		if errors.As(err, &inel) {
			response.Error(c, http.StatusForbidden, inel.Message(), nil, gin.H{
				"reason":         inel.Reason,
				"days_remaining": inel.DaysRemaining,
			})
			return
		}
		h.logger.Error("draw request failed",
			zap.Int64("campaign_id", campaignID),
			zap.Error(err),
		)
		response.InternalError(c, "failed to process request", nil)
	}
}

func campaignIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid campaign id", err)
		return 0, false
	}
	return id, true
}
