package startup

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/security"
	"github.com/AtRiskMedia/defensesim-go/pkg/config"
)

func newQuietLogger(t *testing.T) *logging.ChanneledLogger {
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

func TestEnsureJWTSecretGeneratesEphemeralKey(t *testing.T) {
	previous := config.JWTSecret
	t.Cleanup(func() { config.JWTSecret = previous })

	config.JWTSecret = ""
	require.NoError(t, ensureJWTSecret(newQuietLogger(t)))
	require.NotEmpty(t, config.JWTSecret)
	assert.Len(t, config.JWTSecret, 64)

	// The generated secret signs ops tokens that round-trip.
	token, err := security.GenerateOpsToken(config.JWTSecret, config.OpsTokenLifetime)
	require.NoError(t, err)
	assert.NoError(t, security.ValidateOpsToken(token, config.JWTSecret))
}

func TestEnsureJWTSecretKeepsConfiguredValue(t *testing.T) {
	previous := config.JWTSecret
	t.Cleanup(func() { config.JWTSecret = previous })

	config.JWTSecret = "configured-secret"
	require.NoError(t, ensureJWTSecret(newQuietLogger(t)))
	assert.Equal(t, "configured-secret", config.JWTSecret)
}
