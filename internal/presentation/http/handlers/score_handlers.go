package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/defensesim-go/internal/application/services"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/observability/performance"
)

// UpdateScoreRequest awards points for one defense protocol step. attackId
// is optional; without one the points still land in the user ledger and the
// attack-record mirror is skipped.
type UpdateScoreRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	AttackID  string `json:"attackId"`
	StepID    string `json:"stepId" binding:"required"`
	Points    int    `json:"points"`
}

// ScoreHandlers contains all score ledger HTTP handlers
type ScoreHandlers struct {
	scoreService *services.ScoreService
	logger       *logging.ChanneledLogger
	perfTracker  *performance.Tracker
}

// NewScoreHandlers creates score handlers with injected dependencies
func NewScoreHandlers(scoreService *services.ScoreService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ScoreHandlers {
	return &ScoreHandlers{
		scoreService: scoreService,
		logger:       logger,
		perfTracker:  perfTracker,
	}
}

// PostUpdate handles POST /scores/update. Any valid session; 404 when the
// session does not exist.
func (h *ScoreHandlers) PostUpdate(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("score:update")
	defer marker.Complete()

	var req UpdateScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	score, err := h.scoreService.UpdateScore(c.Request.Context(), req.SessionID, req.AttackID, req.StepID, req.Points)
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Score().Info("Score update request completed", "stepId", req.StepID, "points", req.Points, "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"success": true, "score": score})
}

// GetAll handles GET /scores/all/:sessionId. Facilitator only.
func (h *ScoreHandlers) GetAll(c *gin.Context) {
	marker := h.perfTracker.StartOperation("score:list_all")
	defer marker.Complete()

	records, err := h.scoreService.ListAll(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, err)
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, records)
}

// GetAttackScores handles GET /attacks/:attackId/scores/:sessionId.
// Facilitator only; 404 when the attack record is missing.
func (h *ScoreHandlers) GetAttackScores(c *gin.Context) {
	marker := h.perfTracker.StartOperation("score:attack_scores")
	defer marker.Complete()

	scores, err := h.scoreService.AttackScores(c.Request.Context(), c.Param("attackId"), c.Param("sessionId"))
	if err != nil {
		respondError(c, err)
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, scores)
}
