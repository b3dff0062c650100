package workshop

import "time"

// KeyCurrentSimulation is the singleton key for the workshop's one visible
// incident. Starting a new simulation overwrites it unconditionally.
const KeyCurrentSimulation = "current_simulation"

// ParticipantProgress records one participant's completion of the active
// attack.
type ParticipantProgress struct {
	Completed   bool      `json:"completed"`
	CompletedAt time.Time `json:"completedAt"`
}

// Simulation is the single globally-visible incident record. A stopped
// simulation is represented as the zero value with IsActive false; scenario,
// attack, and progress fields are discarded on stop.
type Simulation struct {
	ScenarioID          string                         `json:"scenarioId,omitempty"`
	AttackID            string                         `json:"attackId,omitempty"`
	IsActive            bool                           `json:"isActive"`
	StartTime           *time.Time                     `json:"startTime,omitempty"`
	CurrentStep         int                            `json:"currentStep"`
	ParticipantProgress map[string]ParticipantProgress `json:"participantProgress,omitempty"`
}

// Attack is one run of a scenario, created at simulation start and never
// deleted. It keeps its own projection of per-participant scores,
// independent of the per-user score documents.
type Attack struct {
	ScenarioID        string                  `json:"scenarioId"`
	AttackID          string                  `json:"attackId"`
	StartedAt         time.Time               `json:"startedAt"`
	StartedBy         string                  `json:"startedBy"`
	ParticipantScores map[string]*AttackScore `json:"participantScores"`
}

// AttackKey returns the storage key for an attack record.
func AttackKey(attackID string) string {
	return "attack:" + attackID
}
