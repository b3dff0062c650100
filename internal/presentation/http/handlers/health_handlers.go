package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/persistence/kv"
)

// HealthHandlers exposes the liveness endpoint.
type HealthHandlers struct {
	store kv.Store
	start time.Time
}

// NewHealthHandlers creates health handlers
func NewHealthHandlers(store kv.Store) *HealthHandlers {
	return &HealthHandlers{store: store, start: time.Now().UTC()}
}

// GetHealth handles GET /health. Pings the store so a wedged database shows
// up as unhealthy rather than a 200.
func (h *HealthHandlers) GetHealth(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.start).String(),
	})
}
