package scenarios

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allScenarioIDs = []string{FreeTierExploit, CredentialSharing, ShadowEndpoint, UsageLaundering}

func TestCatalogCoversExactlyFourScenarios(t *testing.T) {
	briefs := Catalog()
	require.Len(t, briefs, 4)

	seen := make(map[string]bool)
	for _, brief := range briefs {
		seen[brief.ID] = true
		assert.NotEmpty(t, brief.Title)
		assert.NotEmpty(t, brief.Difficulty)
		assert.Positive(t, brief.MaxPoints)
		assert.NotEmpty(t, brief.Objectives)
	}
	for _, id := range allScenarioIDs {
		assert.True(t, seen[id], "catalog missing %s", id)
	}
}

func TestIsKnown(t *testing.T) {
	for _, id := range allScenarioIDs {
		assert.True(t, IsKnown(id))
	}
	assert.False(t, IsKnown("ransomware"))
	assert.False(t, IsKnown(""))
}

func TestProtocolPointTotals(t *testing.T) {
	// The shadow-endpoint brief advertises 250 max points while its steps
	// sum to 200; the discrepancy is part of the scripted content and the
	// clients display both numbers as-is.
	wantTotals := map[string]int{
		FreeTierExploit:   150,
		CredentialSharing: 200,
		ShadowEndpoint:    200,
		UsageLaundering:   200,
	}

	for _, id := range allScenarioIDs {
		steps := ProtocolFor(id)
		require.Len(t, steps, 4, "scenario %s", id)
		sum := 0
		for _, step := range steps {
			assert.Positive(t, step.Points)
			sum += step.Points
		}
		assert.Equal(t, wantTotals[id], sum, "scenario %s", id)
	}
}

func TestProtocolStepValues(t *testing.T) {
	steps := ProtocolFor(FreeTierExploit)
	require.Len(t, steps, 4)
	assert.Equal(t, "identify-pattern", steps[0].ID)
	assert.Equal(t, 25, steps[0].Points)
	assert.Equal(t, "analyze-method", steps[1].ID)
	assert.Equal(t, 25, steps[1].Points)
	assert.Equal(t, "choose-defense", steps[2].ID)
	assert.Equal(t, 50, steps[2].Points)
	assert.Equal(t, "configure-policy", steps[3].ID)
	assert.Equal(t, 50, steps[3].Points)
}

func TestProtocolForUnknownScenario(t *testing.T) {
	assert.Nil(t, ProtocolFor("ransomware"))
}

func TestBaselineMetrics(t *testing.T) {
	metrics := BaselineMetrics()
	assert.Equal(t, "normal", metrics.AlertLevel)
	assert.Equal(t, 15847, metrics.TotalRequests)
	assert.Nil(t, metrics.ThreatSpecific)
}

func TestFreeTierExploitMetrics(t *testing.T) {
	metrics := MetricsFor(FreeTierExploit)
	assert.Equal(t, "critical", metrics.AlertLevel)
	assert.Equal(t, 47, metrics.ThreatSpecific["freeAccountsCreated"])
	assert.Equal(t, 73284, metrics.TotalRequests)
}

func TestEveryScenarioHasThreatMetrics(t *testing.T) {
	for _, id := range allScenarioIDs {
		metrics := MetricsFor(id)
		assert.NotEmpty(t, metrics.ThreatSpecific, "scenario %s", id)
		assert.Contains(t, []string{"critical", "emergency"}, metrics.AlertLevel, "scenario %s", id)
	}
}

func TestUsageLaunderingEscalatesToEmergency(t *testing.T) {
	assert.Equal(t, "emergency", MetricsFor(UsageLaundering).AlertLevel)
}

func TestMetricsForUnknownScenarioFallsBack(t *testing.T) {
	assert.Equal(t, BaselineMetrics(), MetricsFor("ransomware"))
}

func TestLogsForActiveScenarios(t *testing.T) {
	now := time.Now().UTC()
	for _, id := range allScenarioIDs {
		entries := LogsFor(id, 0, now)
		require.NotEmpty(t, entries, "scenario %s", id)
		assert.LessOrEqual(t, len(entries), 6, "scenario %s", id)
		for _, entry := range entries {
			assert.False(t, entry.Timestamp.After(now), "scenario %s", id)
			assert.NotEmpty(t, entry.Level)
			assert.NotEmpty(t, entry.Message)
		}
	}
}

func TestLogsForIdleFallsBackToHealthCheck(t *testing.T) {
	entries := LogsFor("", 0, time.Now().UTC())
	require.Len(t, entries, 1)
	assert.Equal(t, "INFO", entries[0].Level)
}
