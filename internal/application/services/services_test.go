package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/persistence/kv"
)

// newTestLogger returns a logger that stays quiet during tests.
func newTestLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToFile:    false,
		OutputToConsole: false,
		JSONFormat:      true,
		DefaultLevel:    slog.LevelError,
		ChannelLevels:   make(map[logging.Channel]slog.Level),
		EnableStreaming: false,
	})
	require.NoError(t, err)
	return logger
}

type testEnv struct {
	store kv.Store
	auth  *AuthService
	sims  *SimulationService
	score *ScoreService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := newTestLogger(t)
	store := kv.NewMemoryStore()
	auth := NewAuthService(store, logger)
	score := NewScoreService(store, auth, logger)
	sims := NewSimulationService(store, auth, score, logger)
	return &testEnv{store: store, auth: auth, sims: sims, score: score}
}

// loginFacilitator creates a facilitator session and returns its sessionId.
func (e *testEnv) loginFacilitator(t *testing.T) string {
	t.Helper()
	session, err := e.auth.Login(context.Background(), "admin", "workshop2024")
	require.NoError(t, err)
	return session.SessionID
}

// loginParticipant creates a participant session and returns its sessionId.
func (e *testEnv) loginParticipant(t *testing.T, username string) string {
	t.Helper()
	session, err := e.auth.Login(context.Background(), username, "anything")
	require.NoError(t, err)
	return session.SessionID
}
