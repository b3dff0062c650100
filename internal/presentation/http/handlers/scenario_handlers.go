package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/defensesim-go/internal/domain/scenarios"
)

// ScenarioHandlers serves the static scenario catalog and defense protocol
// metadata so clients need not hard-code the storyline list.
type ScenarioHandlers struct{}

// NewScenarioHandlers creates scenario handlers
func NewScenarioHandlers() *ScenarioHandlers {
	return &ScenarioHandlers{}
}

// GetCatalog handles GET /scenarios.
func (h *ScenarioHandlers) GetCatalog(c *gin.Context) {
	briefs := scenarios.Catalog()
	c.JSON(http.StatusOK, gin.H{
		"scenarios": briefs,
		"count":     len(briefs),
	})
}

// GetProtocol handles GET /scenarios/:id/protocol.
func (h *ScenarioHandlers) GetProtocol(c *gin.Context) {
	id := c.Param("id")
	if !scenarios.IsKnown(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown scenario"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"scenarioId": id,
		"steps":      scenarios.ProtocolFor(id),
	})
}
