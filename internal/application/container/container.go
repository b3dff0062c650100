// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/AtRiskMedia/defensesim-go/internal/application/services"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/observability/performance"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/persistence/kv"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Workshop services (stateless singletons over the shared store)
	AuthService       *services.AuthService
	SimulationService *services.SimulationService
	ScoreService      *services.ScoreService
	TelemetryService  *services.TelemetryService

	// Infrastructure dependencies
	Store          kv.Store
	Logger         *logging.ChanneledLogger
	PerfTracker    *performance.Tracker
	LogBroadcaster *logging.LogBroadcaster
	OpsBroadcaster *messaging.OpsBroadcaster
}

// NewContainer creates and wires all singleton services
func NewContainer(store kv.Store, logger *logging.ChanneledLogger) *Container {
	authService := services.NewAuthService(store, logger)
	scoreService := services.NewScoreService(store, authService, logger)
	simulationService := services.NewSimulationService(store, authService, scoreService, logger)
	telemetryService := services.NewTelemetryService(simulationService, logger)

	return &Container{
		AuthService:       authService,
		SimulationService: simulationService,
		ScoreService:      scoreService,
		TelemetryService:  telemetryService,

		Store:          store,
		Logger:         logger,
		PerfTracker:    performance.NewTracker(performance.DefaultTrackerConfig()),
		LogBroadcaster: logging.GetBroadcaster(),
		OpsBroadcaster: messaging.NewOpsBroadcaster(store, logger),
	}
}
