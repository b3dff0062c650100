package services

import (
	"context"
	"time"

	"github.com/AtRiskMedia/defensesim-go/internal/domain/entities/workshop"
	"github.com/AtRiskMedia/defensesim-go/internal/domain/scenarios"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/observability/logging"
)

// TelemetryService projects the current simulation into the synthetic
// dashboard feed: scripted log lines and threat metrics keyed off whatever
// scenario is running. Everything here is derived, nothing is stored.
type TelemetryService struct {
	sims   *SimulationService
	logger *logging.ChanneledLogger
}

// NewTelemetryService creates a new telemetry projection service
func NewTelemetryService(sims *SimulationService, logger *logging.ChanneledLogger) *TelemetryService {
	return &TelemetryService{sims: sims, logger: logger}
}

// LogStream returns the scripted log entries for the active scenario and
// step. An idle workshop streams nothing.
func (t *TelemetryService) LogStream(ctx context.Context) ([]workshop.LogEntry, error) {
	sim, err := t.sims.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !sim.IsActive {
		return []workshop.LogEntry{}, nil
	}
	return scenarios.LogsFor(sim.ScenarioID, sim.CurrentStep, time.Now().UTC()), nil
}

// DashboardSnapshot is the metrics payload the participant dashboard polls.
type DashboardSnapshot struct {
	IsActive   bool              `json:"isActive"`
	ScenarioID string            `json:"scenarioId,omitempty"`
	AttackID   string            `json:"attackId,omitempty"`
	Metrics    *workshop.Metrics `json:"metrics"`
}

// DashboardMetrics returns threat metrics for the running scenario, or the
// healthy baseline when nothing is active.
func (t *TelemetryService) DashboardMetrics(ctx context.Context) (*DashboardSnapshot, error) {
	sim, err := t.sims.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !sim.IsActive {
		baseline := scenarios.BaselineMetrics()
		return &DashboardSnapshot{IsActive: false, Metrics: &baseline}, nil
	}
	metrics := scenarios.MetricsFor(sim.ScenarioID)
	return &DashboardSnapshot{
		IsActive:   true,
		ScenarioID: sim.ScenarioID,
		AttackID:   sim.AttackID,
		Metrics:    &metrics,
	}, nil
}
