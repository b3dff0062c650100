// Package workshop defines the entities shared by the session, simulation,
// and score services. All of them are stored as independent JSON documents in
// the key-value store; there is no referential integrity between them.
package workshop

import "time"

// Role identifies what an authenticated actor may do.
type Role string

const (
	RoleFacilitator Role = "facilitator"
	RoleParticipant Role = "participant"
)

// Session represents an authenticated actor for the duration of a login.
// Immutable after creation and never expired; stored at session:{sessionId}
// with a shadow copy at user:{username} (last login wins).
type Session struct {
	SessionID string    `json:"sessionId"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	LoginTime time.Time `json:"loginTime"`

	// Score is written as zero at login and never updated; the real totals
	// live in the score ledger. Kept for wire compatibility with clients
	// that read the session document.
	Score int `json:"score"`
}

// IsFacilitator reports whether the session may perform privileged calls.
func (s *Session) IsFacilitator() bool {
	return s.Role == RoleFacilitator
}
