package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/AtRiskMedia/defensesim-go/internal/application/container"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/security"
	"github.com/AtRiskMedia/defensesim-go/pkg/config"
)

// OpsHandlers handles ops console authentication and data streaming
type OpsHandlers struct {
	container *container.Container
	upgrader  websocket.Upgrader
}

// NewOpsHandlers creates new ops console handlers
func NewOpsHandlers(container *container.Container) *OpsHandlers {
	return &OpsHandlers{
		container: container,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin enforcement is handled by CORS on the API surface;
			// the ws endpoint itself requires a token.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// AuthCheck reports whether an ops password is configured and whether the
// presented token is valid.
func (h *OpsHandlers) AuthCheck(c *gin.Context) {
	opsPassword := config.OpsPassword
	response := map[string]any{
		"passwordRequired": opsPassword != "",
		"authenticated":    false,
	}

	if opsPassword == "" {
		response["message"] = "Set OPS_PASSWORD to protect the ops console"
	}

	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		if err := security.ValidateOpsToken(auth[7:], config.JWTSecret); err == nil {
			response["authenticated"] = true
		}
	}

	c.JSON(http.StatusOK, response)
}

// Login handles ops console authentication and issues a short-lived JWT.
func (h *OpsHandlers) Login(c *gin.Context) {
	var request struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	opsPassword := config.OpsPassword
	if opsPassword == "" {
		c.JSON(http.StatusOK, gin.H{"success": true, "token": "no-auth-required"})
		return
	}
	if request.Password != opsPassword {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	token, err := security.GenerateOpsToken(config.JWTSecret, config.OpsTokenLifetime)
	if err != nil {
		h.container.Logger.System().Error("Failed to generate ops token", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// GetActivity returns a snapshot of the performance tracker's stats.
func (h *OpsHandlers) GetActivity(c *gin.Context) {
	tracker := h.container.PerfTracker
	c.JSON(http.StatusOK, gin.H{
		"stats":            tracker.GetOverallStats(),
		"activeOperations": tracker.GetActiveOperations(),
		"recent":           len(tracker.GetRecentMetrics(5 * time.Minute)),
	})
}

// OpsAuthMiddleware protects ops-specific endpoints. The token is accepted
// from the Authorization header or, for EventSource and websocket clients
// that cannot set headers, a `token` query parameter.
func (h *OpsHandlers) OpsAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.OpsPassword == "" {
			c.Next()
			return
		}

		token := c.Query("token")
		authHeader := c.GetHeader("Authorization")
		if token == "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = authHeader[7:]
		}

		if err := security.ValidateOpsToken(token, config.JWTSecret); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// StreamLogs handles the SSE connection for live log streaming.
func (h *OpsHandlers) StreamLogs(c *gin.Context) {
	broadcaster := h.container.LogBroadcaster
	if broadcaster == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Log broadcaster not available"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")

	channelFilter := c.DefaultQuery("channel", "all")
	levelFilter := c.DefaultQuery("level", "INFO")
	var logLevel slog.Level
	switch levelFilter {
	case "DEBUG":
		logLevel = slog.LevelDebug
	case "INFO":
		logLevel = slog.LevelInfo
	case "WARN":
		logLevel = slog.LevelWarn
	case "ERROR":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	filters := logging.AppliedFilters{
		Channel: logging.Channel(channelFilter),
		Level:   logLevel,
	}

	client := broadcaster.NewClient(filters)
	broadcaster.RegisterClient(client)
	defer broadcaster.UnregisterClient(client)

	fmt.Fprintf(c.Writer, ": connection established\n\n")
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case message, ok := <-client.Channel:
			if !ok {
				return false
			}
			fmt.Fprintf(w, "data: %s\n\n", message)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// ActivityWebSocket upgrades the connection and feeds it the periodic
// workshop activity snapshot until the client goes away.
func (h *OpsHandlers) ActivityWebSocket(c *gin.Context) {
	broadcaster := h.container.OpsBroadcaster
	if broadcaster == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ops broadcaster not available"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.container.Logger.SSE().Error("Websocket upgrade failed", "error", err.Error())
		return
	}

	client := &messaging.OpsClient{
		Conn: conn,
		Send: make(chan []byte, 8),
	}
	broadcaster.Register(client)

	go func() {
		defer func() {
			broadcaster.Unregister(client)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	go func() {
		defer conn.Close()
		for message := range client.Send {
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		}
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}()
}

// GetLogLevels returns current log levels for all channels.
func (h *OpsHandlers) GetLogLevels(c *gin.Context) {
	logger := h.container.Logger
	if logger == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logger not available"})
		return
	}
	c.JSON(http.StatusOK, logger.GetChannelLevels())
}

// SetLogLevel sets the log level for a specific channel.
func (h *OpsHandlers) SetLogLevel(c *gin.Context) {
	logger := h.container.Logger
	if logger == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logger not available"})
		return
	}

	var req struct {
		Channel string `json:"channel" binding:"required"`
		Level   string `json:"level" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	var level slog.Level
	switch req.Level {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid log level specified"})
		return
	}

	if err := logger.SetChannelLevel(logging.Channel(req.Channel), level); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set log level", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": fmt.Sprintf("Log level for channel '%s' set to '%s'", req.Channel, req.Level)})
}
