// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/defensesim-go/internal/application/container"
	"github.com/AtRiskMedia/defensesim-go/internal/presentation/http/handlers"
	"github.com/AtRiskMedia/defensesim-go/internal/presentation/http/middleware"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Initialize handlers
	authHandlers := handlers.NewAuthHandlers(container.AuthService, container.Logger, container.PerfTracker)
	simulationHandlers := handlers.NewSimulationHandlers(container.SimulationService, container.Logger, container.PerfTracker)
	scoreHandlers := handlers.NewScoreHandlers(container.ScoreService, container.Logger, container.PerfTracker)
	telemetryHandlers := handlers.NewTelemetryHandlers(container.TelemetryService, container.Logger, container.PerfTracker)
	scenarioHandlers := handlers.NewScenarioHandlers()
	healthHandlers := handlers.NewHealthHandlers(container.Store)
	opsHandlers := handlers.NewOpsHandlers(container)

	// Ops console endpoints
	opsAPI := r.Group("/api/ops")
	{
		opsAPI.GET("/auth", opsHandlers.AuthCheck)
		opsAPI.POST("/login", opsHandlers.Login)

		// Ops authenticated endpoints
		opsAPI.Use(opsHandlers.OpsAuthMiddleware())
		{
			opsAPI.GET("/activity", opsHandlers.GetActivity)
			opsAPI.GET("/ws", opsHandlers.ActivityWebSocket)
			opsAPI.GET("/logs/levels", opsHandlers.GetLogLevels)
			opsAPI.POST("/logs/levels", opsHandlers.SetLogLevel)
		}
	}

	// Log streaming is a special case and can remain at top level
	r.GET("/ops-logs/stream", opsHandlers.OpsAuthMiddleware(), opsHandlers.StreamLogs)

	// Workshop API
	api := r.Group("/api/v1")
	{
		api.GET("/health", healthHandlers.GetHealth)

		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandlers.PostLogin)
			auth.GET("/session/:sessionId", authHandlers.GetSession)
		}

		simulation := api.Group("/simulation")
		{
			simulation.POST("/start", simulationHandlers.PostStart)
			simulation.GET("/current", simulationHandlers.GetCurrent)
			simulation.POST("/step", simulationHandlers.PostStep)
			simulation.POST("/stop", simulationHandlers.PostStop)
			simulation.POST("/resolve", simulationHandlers.PostResolve)
		}

		api.POST("/participant/complete", simulationHandlers.PostComplete)

		scores := api.Group("/scores")
		{
			scores.POST("/update", scoreHandlers.PostUpdate)
			scores.GET("/all/:sessionId", scoreHandlers.GetAll)
		}
		api.GET("/attacks/:attackId/scores/:sessionId", scoreHandlers.GetAttackScores)

		api.GET("/logs/stream", telemetryHandlers.GetLogStream)
		api.GET("/dashboard/metrics", telemetryHandlers.GetDashboardMetrics)

		api.GET("/scenarios", scenarioHandlers.GetCatalog)
		api.GET("/scenarios/:id/protocol", scenarioHandlers.GetProtocol)
	}

	return r
}
