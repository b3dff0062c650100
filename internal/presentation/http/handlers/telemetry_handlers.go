package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/defensesim-go/internal/application/services"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/observability/performance"
)

// TelemetryHandlers serves the synthetic dashboard feed the clients poll.
type TelemetryHandlers struct {
	telemetryService *services.TelemetryService
	logger           *logging.ChanneledLogger
	perfTracker      *performance.Tracker
}

// NewTelemetryHandlers creates telemetry handlers with injected dependencies
func NewTelemetryHandlers(telemetryService *services.TelemetryService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *TelemetryHandlers {
	return &TelemetryHandlers{
		telemetryService: telemetryService,
		logger:           logger,
		perfTracker:      perfTracker,
	}
}

// GetLogStream handles GET /logs/stream. Returns the scripted entries for
// the active scenario and step, or an empty list when idle.
func (h *TelemetryHandlers) GetLogStream(c *gin.Context) {
	marker := h.perfTracker.StartOperation("telemetry:log_stream")
	defer marker.Complete()

	entries, err := h.telemetryService.LogStream(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, entries)
}

// GetDashboardMetrics handles GET /dashboard/metrics.
func (h *TelemetryHandlers) GetDashboardMetrics(c *gin.Context) {
	marker := h.perfTracker.StartOperation("telemetry:dashboard_metrics")
	defer marker.Complete()

	snapshot, err := h.telemetryService.DashboardMetrics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, snapshot)
}
