package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/AtRiskMedia/defensesim-go/internal/domain/entities/workshop"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/persistence/kv"
)

// ScoreService maintains the two score projections: the per-user score
// document and the per-attack record. Both are updated in the same logical
// operation but as independent writes — there is no transaction spanning
// them, and the whole document is rewritten on every award. Concurrent
// awards for the same user can race; the later write wins. That is an
// accepted property of the workshop tool, not a ledger of record.
type ScoreService struct {
	store  kv.Store
	auth   *AuthService
	logger *logging.ChanneledLogger
}

// NewScoreService creates a new score ledger service
func NewScoreService(store kv.Store, auth *AuthService, logger *logging.ChanneledLogger) *ScoreService {
	return &ScoreService{store: store, auth: auth, logger: logger}
}

// UpdateScore resolves the session and awards points for one step. Missing
// sessions fail with ErrSessionNotFound.
func (s *ScoreService) UpdateScore(ctx context.Context, sessionID, attackID, stepID string, points int) (*workshop.UserScore, error) {
	session, err := s.auth.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.Award(ctx, session.Username, attackID, stepID, points)
}

// Award writes points for one step of one attack. Writing the same step
// twice overwrites the prior value; totals are rederived from the step maps
// after every write.
func (s *ScoreService) Award(ctx context.Context, username, attackID, stepID string, points int) (*workshop.UserScore, error) {
	score := &workshop.UserScore{}
	err := s.store.Get(ctx, workshop.ScoreKey(username), score)
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		return nil, fmt.Errorf("load score: %w", err)
	}

	bucket := score.Attack(attackID)
	bucket.Steps[stepID] = points
	bucket.RecomputeTotal()
	score.RecomputeTotal()

	if err := s.store.Set(ctx, workshop.ScoreKey(username), score); err != nil {
		return nil, fmt.Errorf("persist score: %w", err)
	}

	// Mirror the step into the attack record's own projection. Absent
	// attack records are skipped, not created: awards can outlive the
	// simulation that spawned them.
	if attackID != "" {
		if err := s.mirrorToAttack(ctx, username, attackID, stepID, points); err != nil {
			return nil, err
		}
	}

	s.logger.Score().Info("Score updated",
		"username", username,
		"points", points,
		"stepId", stepID,
		"attackId", attackID,
		"total", score.Total)

	return score, nil
}

func (s *ScoreService) mirrorToAttack(ctx context.Context, username, attackID, stepID string, points int) error {
	var attack workshop.Attack
	err := s.store.Get(ctx, workshop.AttackKey(attackID), &attack)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load attack: %w", err)
	}

	if attack.ParticipantScores == nil {
		attack.ParticipantScores = make(map[string]*workshop.AttackScore)
	}
	bucket, ok := attack.ParticipantScores[username]
	if !ok {
		bucket = &workshop.AttackScore{Steps: make(map[string]int)}
		attack.ParticipantScores[username] = bucket
	}
	bucket.Steps[stepID] = points
	bucket.RecomputeTotal()

	if err := s.store.Set(ctx, workshop.AttackKey(attackID), &attack); err != nil {
		return fmt.Errorf("persist attack: %w", err)
	}
	return nil
}

// ListAll returns every user's score record. Facilitator only. Order is
// unspecified; sorting is a presentation concern.
func (s *ScoreService) ListAll(ctx context.Context, sessionID string) ([]workshop.ScoreRecord, error) {
	if _, err := s.auth.RequireFacilitator(ctx, sessionID); err != nil {
		return nil, err
	}

	entries, err := s.store.GetByPrefix(ctx, "score:")
	if err != nil {
		return nil, fmt.Errorf("scan scores: %w", err)
	}

	records := make([]workshop.ScoreRecord, 0, len(entries))
	for _, entry := range entries {
		var score workshop.UserScore
		if err := json.Unmarshal(entry.Value, &score); err != nil {
			s.logger.Score().Error("Skipping malformed score document", "key", entry.Key, "error", err.Error())
			continue
		}
		records = append(records, workshop.ScoreRecord{
			Username: strings.TrimPrefix(entry.Key, "score:"),
			Total:    score.Total,
			Attacks:  score.Attacks,
		})
	}
	return records, nil
}

// AttackScores returns the per-participant projection of one attack record.
// Facilitator only; missing attacks fail with ErrAttackNotFound.
func (s *ScoreService) AttackScores(ctx context.Context, attackID, sessionID string) (map[string]*workshop.AttackScore, error) {
	if _, err := s.auth.RequireFacilitator(ctx, sessionID); err != nil {
		return nil, err
	}

	var attack workshop.Attack
	err := s.store.Get(ctx, workshop.AttackKey(attackID), &attack)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrAttackNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load attack: %w", err)
	}

	if attack.ParticipantScores == nil {
		return map[string]*workshop.AttackScore{}, nil
	}
	return attack.ParticipantScores, nil
}
