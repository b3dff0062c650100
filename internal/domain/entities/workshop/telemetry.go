package workshop

import "time"

// LogEntry is one synthetic log line in the fabricated live stream. Entries
// are generated on demand from the scenario tables; nothing is persisted.
type LogEntry struct {
	Timestamp       time.Time      `json:"timestamp"`
	Level           string         `json:"level"`
	Endpoint        string         `json:"endpoint"`
	User            string         `json:"user"`
	Message         string         `json:"message"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	EducationalHint string         `json:"educational_hint,omitempty"`
}

// Metrics is the fabricated dashboard snapshot. ThreatSpecific is populated
// only while a scenario is active.
type Metrics struct {
	TotalRequests   int            `json:"totalRequests"`
	SuccessRate     float64        `json:"successRate"`
	ErrorRate       float64        `json:"errorRate"`
	AvgResponseTime int            `json:"avgResponseTime"`
	ActiveUsers     int            `json:"activeUsers"`
	Revenue         float64        `json:"revenue"`
	Costs           float64        `json:"costs"`
	AlertLevel      string         `json:"alertLevel"`
	ThreatSpecific  map[string]any `json:"threatSpecific,omitempty"`
}
