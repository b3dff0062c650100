package workshop

// AttackScore holds one participant's points within a single attack. Steps
// map stepId to the points last awarded for it: re-answering a step replaces
// the prior value rather than stacking. Total is always derived from Steps,
// never stored independently of that derivation.
type AttackScore struct {
	Steps map[string]int `json:"steps"`
	Total int            `json:"total"`
}

// RecomputeTotal rederives Total as the sum of the step values.
func (a *AttackScore) RecomputeTotal() {
	total := 0
	for _, points := range a.Steps {
		total += points
	}
	a.Total = total
}

// UserScore is a participant's cumulative score document, keyed by
// score:{username}. Created lazily on the first award; grows monotonically
// (there is no decrement path).
type UserScore struct {
	Total   int                     `json:"total"`
	Attacks map[string]*AttackScore `json:"attacks"`
}

// Attack returns the per-attack bucket, creating it when absent.
func (u *UserScore) Attack(attackID string) *AttackScore {
	if u.Attacks == nil {
		u.Attacks = make(map[string]*AttackScore)
	}
	bucket, ok := u.Attacks[attackID]
	if !ok {
		bucket = &AttackScore{Steps: make(map[string]int)}
		u.Attacks[attackID] = bucket
	}
	return bucket
}

// RecomputeTotal rederives the top-level total as the sum of every attack's
// derived total.
func (u *UserScore) RecomputeTotal() {
	total := 0
	for _, attack := range u.Attacks {
		total += attack.Total
	}
	u.Total = total
}

// ScoreRecord is a UserScore annotated with the username recovered from its
// storage key, as returned by the facilitator score listing.
type ScoreRecord struct {
	Username string                  `json:"username"`
	Total    int                     `json:"total"`
	Attacks  map[string]*AttackScore `json:"attacks"`
}

// ScoreKey returns the storage key for a user's score document.
func ScoreKey(username string) string {
	return "score:" + username
}

// SessionKey returns the storage key for a session document.
func SessionKey(sessionID string) string {
	return "session:" + sessionID
}

// UserKey returns the storage key for the shadow session copy.
func UserKey(username string) string {
	return "user:" + username
}
