// Package performance provides performance tracking and metrics aggregation
// for defense simulator operations.
package performance

import (
	"fmt"
	"sync"
	"time"
)

// Tracker manages performance markers and provides metrics aggregation
type Tracker struct {
	markers map[string]*Marker // Active and completed markers by unique ID
	mu      sync.RWMutex       // Protects concurrent access
	started time.Time          // When tracking started
	config  *TrackerConfig     // Tracker configuration
}

// TrackerConfig contains configuration options for the performance tracker
type TrackerConfig struct {
	MaxMarkers      int           `json:"maxMarkers"`      // Maximum number of markers to retain
	RetentionWindow time.Duration `json:"retentionWindow"` // How long completed markers are kept
}

// DefaultTrackerConfig returns a sensible default configuration
func DefaultTrackerConfig() *TrackerConfig {
	return &TrackerConfig{
		MaxMarkers:      10000,
		RetentionWindow: time.Hour,
	}
}

// NewTracker creates a new performance tracker with the given configuration
func NewTracker(config *TrackerConfig) *Tracker {
	if config == nil {
		config = DefaultTrackerConfig()
	}

	return &Tracker{
		markers: make(map[string]*Marker),
		started: time.Now(),
		config:  config,
	}
}

// StartOperation creates and tracks a new performance marker for an operation
func (t *Tracker) StartOperation(operation string) *Marker {
	marker := &Marker{
		Operation: operation,
		StartTime: time.Now(),
		Metadata:  make(map[string]any),
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	id := fmt.Sprintf("%s-%d", operation, marker.StartTime.UnixNano())
	t.markers[id] = marker

	// Opportunistic pruning keeps the map bounded without a background worker.
	if len(t.markers) > t.config.MaxMarkers {
		t.pruneLocked()
	}

	return marker
}

// pruneLocked drops completed markers older than the retention window.
// Callers must hold t.mu.
func (t *Tracker) pruneLocked() {
	cutoff := time.Now().Add(-t.config.RetentionWindow)
	for id, marker := range t.markers {
		if marker.Completed && marker.EndTime.Before(cutoff) {
			delete(t.markers, id)
		}
	}
}

// GetRecentMetrics returns completed markers within the given window
func (t *Tracker) GetRecentMetrics(within time.Duration) []Marker {
	t.mu.RLock()
	defer t.mu.RUnlock()

	cutoff := time.Now().Add(-within)
	var metrics []Marker
	for _, marker := range t.markers {
		if marker.Completed && marker.EndTime.After(cutoff) {
			metrics = append(metrics, *marker)
		}
	}
	return metrics
}

// GetActiveOperations returns markers for operations still in flight
func (t *Tracker) GetActiveOperations() []Marker {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var active []Marker
	for _, marker := range t.markers {
		if !marker.Completed {
			active = append(active, *marker)
		}
	}
	return active
}

// GetOverallStats returns aggregate statistics across all tracked operations
func (t *Tracker) GetOverallStats() map[string]any {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var completed, failed int
	var totalDuration time.Duration
	perOperation := make(map[string]int)

	for _, marker := range t.markers {
		if !marker.Completed {
			continue
		}
		completed++
		totalDuration += marker.Duration
		perOperation[marker.Operation]++
		if !marker.Success {
			failed++
		}
	}

	stats := map[string]any{
		"uptime":              time.Since(t.started).String(),
		"completedOperations": completed,
		"failedOperations":    failed,
		"activeOperations":    len(t.markers) - completed,
		"operationCounts":     perOperation,
	}

	if completed > 0 {
		stats["avgDuration"] = (totalDuration / time.Duration(completed)).String()
	}

	return stats
}

// Cleanup removes stale completed markers
func (t *Tracker) Cleanup() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pruneLocked()
}
