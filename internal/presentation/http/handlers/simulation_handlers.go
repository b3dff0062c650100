package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/defensesim-go/internal/application/services"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/observability/performance"
)

// StartSimulationRequest launches a scenario for the whole room.
type StartSimulationRequest struct {
	SessionID  string `json:"sessionId" binding:"required"`
	ScenarioID string `json:"scenarioId" binding:"required"`
}

// AdvanceStepRequest moves the facilitator's narration pointer.
type AdvanceStepRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	Step      int    `json:"step"`
}

// StopSimulationRequest deactivates the current simulation.
type StopSimulationRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// CompleteRequest reports a participant finishing the defense flow. An
// absent or stale attackId is accepted and quietly does nothing.
type CompleteRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	AttackID  string `json:"attackId"`
}

// ResolveRequest is the legacy completion payload keyed by scenarioId.
// resolvedBy is accepted and ignored; resolution is tracked per session.
type ResolveRequest struct {
	SessionID  string `json:"sessionId" binding:"required"`
	ScenarioID string `json:"scenarioId"`
	ResolvedBy string `json:"resolvedBy"`
}

// SimulationHandlers contains all simulation-related HTTP handlers
type SimulationHandlers struct {
	simulationService *services.SimulationService
	logger            *logging.ChanneledLogger
	perfTracker       *performance.Tracker
}

// NewSimulationHandlers creates simulation handlers with injected dependencies
func NewSimulationHandlers(simulationService *services.SimulationService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *SimulationHandlers {
	return &SimulationHandlers{
		simulationService: simulationService,
		logger:            logger,
		perfTracker:       perfTracker,
	}
}

// PostStart handles POST /simulation/start. Facilitator only.
func (h *SimulationHandlers) PostStart(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("simulation:start")
	defer marker.Complete()

	var req StartSimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	sim, err := h.simulationService.Start(c.Request.Context(), req.SessionID, req.ScenarioID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Simulation().Info("Start simulation request completed", "scenarioId", req.ScenarioID, "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"success": true, "simulationState": sim})
}

// GetCurrent handles GET /simulation/current. No auth; this is the record
// every connected client polls.
func (h *SimulationHandlers) GetCurrent(c *gin.Context) {
	marker := h.perfTracker.StartOperation("simulation:current")
	defer marker.Complete()

	sim, err := h.simulationService.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, sim)
}

// PostStep handles POST /simulation/step. Facilitator only.
func (h *SimulationHandlers) PostStep(c *gin.Context) {
	marker := h.perfTracker.StartOperation("simulation:step")
	defer marker.Complete()

	var req AdvanceStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if _, err := h.simulationService.AdvanceStep(c.Request.Context(), req.SessionID, req.Step); err != nil {
		respondError(c, err)
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PostStop handles POST /simulation/stop. Facilitator only.
func (h *SimulationHandlers) PostStop(c *gin.Context) {
	marker := h.perfTracker.StartOperation("simulation:stop")
	defer marker.Complete()

	var req StopSimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if _, err := h.simulationService.Stop(c.Request.Context(), req.SessionID); err != nil {
		respondError(c, err)
		return
	}

	h.logger.Simulation().Info("Stop simulation request completed")
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PostComplete handles POST /participant/complete. Any valid session; a
// stale attackId is swallowed, not rejected.
func (h *SimulationHandlers) PostComplete(c *gin.Context) {
	marker := h.perfTracker.StartOperation("simulation:participant_complete")
	defer marker.Complete()

	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if _, err := h.simulationService.MarkParticipantComplete(c.Request.Context(), req.SessionID, req.AttackID); err != nil {
		// A bogus session on this route reads as an access failure, not a
		// missing resource.
		if errors.Is(err, services.ErrSessionNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid session"})
			return
		}
		respondError(c, err)
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PostResolve handles POST /simulation/resolve, the legacy completion
// pathway. Always reports success to callers with a valid session.
func (h *SimulationHandlers) PostResolve(c *gin.Context) {
	marker := h.perfTracker.StartOperation("simulation:resolve")
	defer marker.Complete()

	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if _, err := h.simulationService.Resolve(c.Request.Context(), req.SessionID, req.ScenarioID); err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid session"})
			return
		}
		respondError(c, err)
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
