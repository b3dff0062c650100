package routes

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/defensesim-go/internal/application/container"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/persistence/kv"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToFile:    false,
		OutputToConsole: false,
		JSONFormat:      true,
		DefaultLevel:    slog.LevelError,
		ChannelLevels:   make(map[logging.Channel]slog.Level),
		EnableStreaming: false,
	})
	require.NoError(t, err)

	return SetupRoutes(container.NewContainer(kv.NewMemoryStore(), logger))
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]any
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

// doJSONList is doJSON for endpoints whose success shape is a bare JSON
// array rather than an object envelope.
func doJSONList(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, []any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed []any
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func login(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()
	w, body := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)
	sessionID, _ := body["sessionId"].(string)
	require.NotEmpty(t, sessionID)
	return sessionID
}

func TestLoginEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w, body := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "admin", "password": "workshop2024",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "facilitator", body["role"])

	w, body = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "alice", "password": "x",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "participant", body["role"])

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "", "password": "x",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetSessionEndpoint(t *testing.T) {
	router := newTestRouter(t)
	sessionID := login(t, router, "alice", "x")

	w, body := doJSON(t, router, http.MethodGet, "/api/v1/auth/session/"+sessionID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", body["username"])

	w, _ = doJSON(t, router, http.MethodGet, "/api/v1/auth/session/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFacilitatorGateReturns403(t *testing.T) {
	router := newTestRouter(t)
	participant := login(t, router, "bob", "x")

	w, _ := doJSON(t, router, http.MethodPost, "/api/v1/simulation/start", gin.H{
		"sessionId": participant, "scenarioId": "free-tier-exploit",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/simulation/stop", gin.H{
		"sessionId": participant,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(t, router, http.MethodGet, "/api/v1/scores/all/"+participant, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDashboardMetricsWalkthrough(t *testing.T) {
	router := newTestRouter(t)

	// Idle dashboards show the healthy baseline.
	w, body := doJSON(t, router, http.MethodGet, "/api/v1/dashboard/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["isActive"])

	facilitator := login(t, router, "admin", "workshop2024")
	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/simulation/start", gin.H{
		"sessionId": facilitator, "scenarioId": "free-tier-exploit",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, body = doJSON(t, router, http.MethodGet, "/api/v1/dashboard/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["isActive"])

	metrics, ok := body["metrics"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "critical", metrics["alertLevel"])

	threat, ok := metrics["threatSpecific"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 47, threat["freeAccountsCreated"])
}

func TestScoreWalkthrough(t *testing.T) {
	router := newTestRouter(t)

	facilitator := login(t, router, "admin", "workshop2024")
	participant := login(t, router, "alice", "x")

	w, body := doJSON(t, router, http.MethodPost, "/api/v1/simulation/start", gin.H{
		"sessionId": facilitator, "scenarioId": "free-tier-exploit",
	})
	require.Equal(t, http.StatusOK, w.Code)
	sim, ok := body["simulationState"].(map[string]any)
	require.True(t, ok)
	attackID, _ := sim["attackId"].(string)
	require.NotEmpty(t, attackID)

	w, body = doJSON(t, router, http.MethodPost, "/api/v1/scores/update", gin.H{
		"sessionId": participant,
		"attackId":  attackID,
		"stepId":    "identify-pattern",
		"points":    25,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	// The facilitator roster is a bare array of score records.
	w, scores := doJSONList(t, router, http.MethodGet, "/api/v1/scores/all/"+facilitator, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, scores, 1)
	record := scores[0].(map[string]any)
	assert.Equal(t, "alice", record["username"])
	assert.EqualValues(t, 25, record["total"])

	// The attack ledger is the participantScores mapping itself.
	w, body = doJSON(t, router, http.MethodGet, "/api/v1/attacks/"+attackID+"/scores/"+facilitator, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, "alice")
}

func TestScoreUpdateMissingSessionReturns404(t *testing.T) {
	router := newTestRouter(t)
	w, _ := doJSON(t, router, http.MethodPost, "/api/v1/scores/update", gin.H{
		"sessionId": "nope", "attackId": "attack_x", "stepId": "identify-pattern", "points": 25,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestParticipantCompleteEndpoint(t *testing.T) {
	router := newTestRouter(t)

	facilitator := login(t, router, "admin", "workshop2024")
	participant := login(t, router, "alice", "x")

	w, body := doJSON(t, router, http.MethodPost, "/api/v1/simulation/start", gin.H{
		"sessionId": facilitator, "scenarioId": "credential-sharing",
	})
	require.Equal(t, http.StatusOK, w.Code)
	sim := body["simulationState"].(map[string]any)
	attackID := sim["attackId"].(string)

	w, body = doJSON(t, router, http.MethodPost, "/api/v1/participant/complete", gin.H{
		"sessionId": participant, "attackId": attackID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	// Stale attackIds succeed without mutating anything.
	w, body = doJSON(t, router, http.MethodPost, "/api/v1/participant/complete", gin.H{
		"sessionId": participant, "attackId": "attack_stale",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	w, body = doJSON(t, router, http.MethodGet, "/api/v1/simulation/current", nil)
	require.Equal(t, http.StatusOK, w.Code)
	progress, ok := body["participantProgress"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, progress, "alice")
	assert.Len(t, progress, 1)
}

func TestStartResponseCarriesSimulationStateKey(t *testing.T) {
	router := newTestRouter(t)
	facilitator := login(t, router, "admin", "workshop2024")

	w, body := doJSON(t, router, http.MethodPost, "/api/v1/simulation/start", gin.H{
		"sessionId": facilitator, "scenarioId": "usage-laundering",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, "simulationState")
	assert.NotContains(t, body, "simulation")
}

func TestEmptyScoreRosterIsBareEmptyArray(t *testing.T) {
	router := newTestRouter(t)
	facilitator := login(t, router, "admin", "workshop2024")

	w, scores := doJSONList(t, router, http.MethodGet, "/api/v1/scores/all/"+facilitator, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, scores)
	assert.Empty(t, scores)
}

func TestCompleteAndResolveRejectUnknownSessionsAsForbidden(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doJSON(t, router, http.MethodPost, "/api/v1/participant/complete", gin.H{
		"sessionId": "nope", "attackId": "attack_x",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/simulation/resolve", gin.H{
		"sessionId": "nope", "scenarioId": "free-tier-exploit",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOptionalIdentifierFieldsAreAccepted(t *testing.T) {
	router := newTestRouter(t)
	participant := login(t, router, "alice", "x")

	// Completion with no attackId succeeds and touches nothing.
	w, body := doJSON(t, router, http.MethodPost, "/api/v1/participant/complete", gin.H{
		"sessionId": participant,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	// Legacy resolve with no scenarioId is likewise a quiet success.
	w, body = doJSON(t, router, http.MethodPost, "/api/v1/simulation/resolve", gin.H{
		"sessionId": participant,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	// A score update with no attackId still lands in the user ledger.
	w, body = doJSON(t, router, http.MethodPost, "/api/v1/scores/update", gin.H{
		"sessionId": participant, "stepId": "identify-pattern", "points": 25,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	score, ok := body["score"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 25, score["total"])
}

func TestSimulationCurrentWhenIdle(t *testing.T) {
	router := newTestRouter(t)
	w, body := doJSON(t, router, http.MethodGet, "/api/v1/simulation/current", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["isActive"])
}

func TestLogStreamReflectsSimulationState(t *testing.T) {
	router := newTestRouter(t)

	// Idle workshops stream an empty array, never null or an envelope.
	w, logs := doJSONList(t, router, http.MethodGet, "/api/v1/logs/stream", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, logs)
	assert.Empty(t, logs)

	facilitator := login(t, router, "admin", "workshop2024")
	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/simulation/start", gin.H{
		"sessionId": facilitator, "scenarioId": "shadow-endpoint",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, logs = doJSONList(t, router, http.MethodGet, "/api/v1/logs/stream", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, logs)
}

func TestScenarioCatalogEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w, body := doJSON(t, router, http.MethodGet, "/api/v1/scenarios", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 4, body["count"])

	w, body = doJSON(t, router, http.MethodGet, "/api/v1/scenarios/free-tier-exploit/protocol", nil)
	require.Equal(t, http.StatusOK, w.Code)
	steps, ok := body["steps"].([]any)
	require.True(t, ok)
	assert.Len(t, steps, 4)

	w, _ = doJSON(t, router, http.MethodGet, "/api/v1/scenarios/ransomware/protocol", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)
	w, body := doJSON(t, router, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestOpsLoginWithoutPasswordConfigured(t *testing.T) {
	router := newTestRouter(t)
	w, body := doJSON(t, router, http.MethodPost, "/api/ops/login", gin.H{"password": "anything"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	// With no OPS_PASSWORD set the authenticated endpoints are open.
	w, _ = doJSON(t, router, http.MethodGet, "/api/ops/activity", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOpsLogLevelEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w, body := doJSON(t, router, http.MethodGet, "/api/ops/logs/levels", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, "simulation")

	w, _ = doJSON(t, router, http.MethodPost, "/api/ops/logs/levels", gin.H{
		"channel": "score", "level": "DEBUG",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, router, http.MethodPost, "/api/ops/logs/levels", gin.H{
		"channel": "score", "level": "LOUD",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
