package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/defensesim-go/internal/application/services"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/observability/performance"
)

// LoginRequest represents the credential pair posted at login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthHandlers contains all session-related HTTP handlers
type AuthHandlers struct {
	authService *services.AuthService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewAuthHandlers creates auth handlers with injected dependencies
func NewAuthHandlers(authService *services.AuthService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// PostLogin creates a session for any non-empty credential pair. The fixed
// facilitator pair yields the facilitator role; everything else is a
// participant.
func (h *AuthHandlers) PostLogin(c *gin.Context) {
	start := time.Now()
	h.logger.Auth().Debug("Received login request", "method", c.Request.Method, "path", c.Request.URL.Path)

	marker := h.perfTracker.StartOperation("auth:login")
	defer marker.Complete()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Auth().Info("Login request completed", "username", session.Username, "role", session.Role, "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"sessionId": session.SessionID,
		"username":  session.Username,
		"role":      session.Role,
	})
}

// GetSession returns the stored session document for a sessionId.
func (h *AuthHandlers) GetSession(c *gin.Context) {
	marker := h.perfTracker.StartOperation("auth:get_session")
	defer marker.Complete()

	session, err := h.authService.GetSession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, err)
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, session)
}
