package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AtRiskMedia/defensesim-go/internal/domain/entities/workshop"
	"github.com/AtRiskMedia/defensesim-go/internal/domain/scenarios"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/persistence/kv"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/security"
	"github.com/AtRiskMedia/defensesim-go/pkg/config"
)

// SimulationService drives the single shared simulation record. There is
// exactly one `current_simulation` slot for the whole workshop: starting a
// scenario overwrites whatever was there, stopping clears it, and
// participant completions are keyed to the attackId so reports against a
// replaced simulation fall on the floor.
type SimulationService struct {
	store  kv.Store
	auth   *AuthService
	scores *ScoreService
	logger *logging.ChanneledLogger
}

// NewSimulationService creates a new simulation controller
func NewSimulationService(store kv.Store, auth *AuthService, scores *ScoreService, logger *logging.ChanneledLogger) *SimulationService {
	return &SimulationService{store: store, auth: auth, scores: scores, logger: logger}
}

// Start launches a scenario for the whole room. Facilitator only. Any
// simulation already running is overwritten without ceremony; its attack
// record stays behind in the store.
func (s *SimulationService) Start(ctx context.Context, sessionID, scenarioID string) (*workshop.Simulation, error) {
	session, err := s.auth.RequireFacilitator(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	attackID := security.GenerateAttackID()
	now := time.Now().UTC()

	sim := &workshop.Simulation{
		ScenarioID:          scenarioID,
		AttackID:            attackID,
		IsActive:            true,
		StartTime:           &now,
		CurrentStep:         0,
		ParticipantProgress: make(map[string]workshop.ParticipantProgress),
	}
	if err := s.store.Set(ctx, workshop.KeyCurrentSimulation, sim); err != nil {
		return nil, fmt.Errorf("persist simulation: %w", err)
	}

	attack := &workshop.Attack{
		ScenarioID:        scenarioID,
		AttackID:          attackID,
		StartedAt:         now,
		StartedBy:         session.Username,
		ParticipantScores: make(map[string]*workshop.AttackScore),
	}
	if err := s.store.Set(ctx, workshop.AttackKey(attackID), attack); err != nil {
		return nil, fmt.Errorf("persist attack record: %w", err)
	}

	s.logger.Simulation().Info("Simulation started",
		"scenarioId", scenarioID,
		"attackId", attackID,
		"startedBy", session.Username,
		"known", scenarios.IsKnown(scenarioID))

	return sim, nil
}

// Current returns the shared simulation record, or an inactive zero value
// when none has ever been started.
func (s *SimulationService) Current(ctx context.Context) (*workshop.Simulation, error) {
	sim := &workshop.Simulation{}
	err := s.store.Get(ctx, workshop.KeyCurrentSimulation, sim)
	if errors.Is(err, kv.ErrNotFound) {
		return &workshop.Simulation{IsActive: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load simulation: %w", err)
	}
	return sim, nil
}

// AdvanceStep moves the facilitator's narration pointer. No bounds or
// monotonicity checks; the step is whatever the facilitator says it is.
func (s *SimulationService) AdvanceStep(ctx context.Context, sessionID string, step int) (*workshop.Simulation, error) {
	if _, err := s.auth.RequireFacilitator(ctx, sessionID); err != nil {
		return nil, err
	}

	sim := &workshop.Simulation{}
	err := s.store.Get(ctx, workshop.KeyCurrentSimulation, sim)
	if errors.Is(err, kv.ErrNotFound) {
		return &workshop.Simulation{IsActive: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load simulation: %w", err)
	}

	sim.CurrentStep = step
	if err := s.store.Set(ctx, workshop.KeyCurrentSimulation, sim); err != nil {
		return nil, fmt.Errorf("persist simulation: %w", err)
	}

	s.logger.Simulation().Info("Simulation step advanced", "step", step, "attackId", sim.AttackID)
	return sim, nil
}

// Stop deactivates the shared simulation. The record is replaced wholesale
// with an inactive zero value; the attack record is left untouched so
// late-arriving score writes still have somewhere to land.
func (s *SimulationService) Stop(ctx context.Context, sessionID string) (*workshop.Simulation, error) {
	if _, err := s.auth.RequireFacilitator(ctx, sessionID); err != nil {
		return nil, err
	}

	sim := &workshop.Simulation{IsActive: false}
	if err := s.store.Set(ctx, workshop.KeyCurrentSimulation, sim); err != nil {
		return nil, fmt.Errorf("persist simulation: %w", err)
	}

	s.logger.Simulation().Info("Simulation stopped")
	return sim, nil
}

// MarkParticipantComplete records a participant finishing the defense flow
// for a given attack. Reports for any attackId other than the one currently
// running are swallowed: the participant was racing a simulation that no
// longer exists, and the workshop moves on.
func (s *SimulationService) MarkParticipantComplete(ctx context.Context, sessionID, attackID string) (*workshop.Simulation, error) {
	session, err := s.auth.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sim := &workshop.Simulation{}
	err = s.store.Get(ctx, workshop.KeyCurrentSimulation, sim)
	if errors.Is(err, kv.ErrNotFound) {
		return &workshop.Simulation{IsActive: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load simulation: %w", err)
	}

	if sim.AttackID == "" || sim.AttackID != attackID {
		s.logger.Simulation().Debug("Stale completion ignored",
			"username", session.Username,
			"reportedAttackId", attackID,
			"currentAttackId", sim.AttackID)
		return sim, nil
	}

	if sim.ParticipantProgress == nil {
		sim.ParticipantProgress = make(map[string]workshop.ParticipantProgress)
	}
	sim.ParticipantProgress[session.Username] = workshop.ParticipantProgress{
		Completed:   true,
		CompletedAt: time.Now().UTC(),
	}
	if err := s.store.Set(ctx, workshop.KeyCurrentSimulation, sim); err != nil {
		return nil, fmt.Errorf("persist simulation: %w", err)
	}

	if _, err := s.scores.Award(ctx, session.Username, attackID, "completion_bonus", config.CompletionBonus); err != nil {
		return nil, err
	}

	s.logger.Simulation().Info("Participant completed defense",
		"username", session.Username,
		"attackId", attackID,
		"bonus", config.CompletionBonus)

	return sim, nil
}

// Resolve is the legacy completion pathway keyed by scenarioId instead of
// attackId. It marks progress but awards nothing; clients that still call
// it get their checkmark and nothing else.
func (s *SimulationService) Resolve(ctx context.Context, sessionID, scenarioID string) (*workshop.Simulation, error) {
	session, err := s.auth.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sim := &workshop.Simulation{}
	err = s.store.Get(ctx, workshop.KeyCurrentSimulation, sim)
	if errors.Is(err, kv.ErrNotFound) {
		return &workshop.Simulation{IsActive: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load simulation: %w", err)
	}

	if sim.ScenarioID != scenarioID || sim.AttackID == "" {
		return sim, nil
	}

	if sim.ParticipantProgress == nil {
		sim.ParticipantProgress = make(map[string]workshop.ParticipantProgress)
	}
	sim.ParticipantProgress[session.Username] = workshop.ParticipantProgress{
		Completed:   true,
		CompletedAt: time.Now().UTC(),
	}
	if err := s.store.Set(ctx, workshop.KeyCurrentSimulation, sim); err != nil {
		return nil, fmt.Errorf("persist simulation: %w", err)
	}

	s.logger.Simulation().Info("Scenario resolved via legacy path",
		"username", session.Username,
		"scenarioId", scenarioID)

	return sim, nil
}
