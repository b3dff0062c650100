// Package scenarios holds the scripted content for the four attack
// storylines: briefs, defense-protocol step metadata, fabricated dashboard
// metrics, and synthetic log lines. Everything here is configuration data —
// pure, finite lookup tables keyed by scenario ID, safe for concurrent use.
package scenarios

// Scenario identifiers. These are the only values the content tables accept;
// anything else falls through to the baseline branch.
const (
	FreeTierExploit   = "free-tier-exploit"
	CredentialSharing = "credential-sharing"
	ShadowEndpoint    = "shadow-endpoint"
	UsageLaundering   = "usage-laundering"
)

// Brief describes one scripted storyline for facilitator scenario selection.
type Brief struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Emoji       string   `json:"emoji"`
	Difficulty  string   `json:"difficulty"`
	Description string   `json:"description"`
	Duration    string   `json:"duration"`
	MaxPoints   int      `json:"maxPoints"`
	Objectives  []string `json:"objectives"`
}

// ProtocolStep is one scored question in a scenario's defense protocol. The
// backend serves metadata only; answer options and grading stay client-side.
type ProtocolStep struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Kind   string `json:"type"` // multiple-choice, checklist, or configuration
	Points int    `json:"points"`
}

var catalog = []Brief{
	{
		ID:          FreeTierExploit,
		Title:       "Unlimited Free Tier Exploit",
		Emoji:       "🆓",
		Difficulty:  "Beginner",
		Description: "Attackers creating multiple accounts to bypass free tier limits using automation and fake identities.",
		Duration:    "15-20 min",
		MaxPoints:   150,
		Objectives: []string{
			"Identify suspicious signup patterns in logs",
			"Detect automated usage behaviors",
			"Configure IP-based rate limiting",
			"Enable behavioral analysis detection",
		},
	},
	{
		ID:          CredentialSharing,
		Title:       "Credential Sharing Network",
		Emoji:       "🔑",
		Difficulty:  "Intermediate",
		Description: "Premium API keys being shared or sold on underground forums, used from multiple geographic locations.",
		Duration:    "20-25 min",
		MaxPoints:   200,
		Objectives: []string{
			"Analyze geographic usage patterns",
			"Identify impossible travel scenarios",
			"Implement session concurrency limits",
			"Setup geographic validation rules",
		},
	},
	{
		ID:          ShadowEndpoint,
		Title:       "Shadow Endpoint Discovery",
		Emoji:       "👻",
		Difficulty:  "Advanced",
		Description: "Attackers found internal debug endpoints through scanning and are using them to bypass authentication.",
		Duration:    "25-30 min",
		MaxPoints:   250,
		Objectives: []string{
			"Discover unauthorized endpoint access",
			"Identify resource consumption anomalies",
			"Implement endpoint whitelisting",
			"Secure development endpoints",
		},
	},
	{
		ID:          UsageLaundering,
		Title:       "Usage Pattern Laundering",
		Emoji:       "🎭",
		Difficulty:  "Advanced",
		Description: "Sophisticated users manipulating API request patterns to reduce billing costs through batching tricks.",
		Duration:    "20-25 min",
		MaxPoints:   200,
		Objectives: []string{
			"Detect revenue vs usage anomalies",
			"Identify batch request manipulation",
			"Analyze billing period exploitation",
			"Enable fair usage algorithms",
		},
	},
}

var protocols = map[string][]ProtocolStep{
	FreeTierExploit: {
		{ID: "identify-pattern", Title: "Step 1: Identify the Attack Pattern", Kind: "multiple-choice", Points: 25},
		{ID: "analyze-method", Title: "Step 2: Understand the Exploitation Method", Kind: "checklist", Points: 25},
		{ID: "choose-defense", Title: "Step 3: Select Appropriate Defenses", Kind: "checklist", Points: 50},
		{ID: "configure-policy", Title: "Step 4: Configure Rate Limiting Policy", Kind: "configuration", Points: 50},
	},
	CredentialSharing: {
		{ID: "identify-sharing", Title: "Step 1: Identify Geographic Impossibilities", Kind: "multiple-choice", Points: 30},
		{ID: "analyze-scale", Title: "Step 2: Assess the Scale of Sharing", Kind: "multiple-choice", Points: 20},
		{ID: "select-controls", Title: "Step 3: Implement Access Controls", Kind: "checklist", Points: 75},
		{ID: "configure-limits", Title: "Step 4: Set Session Limits", Kind: "configuration", Points: 75},
	},
	ShadowEndpoint: {
		{ID: "identify-endpoint", Title: "Step 1: Identify Unauthorized Access", Kind: "multiple-choice", Points: 40},
		{ID: "understand-risk", Title: "Step 2: Assess Security Risk", Kind: "checklist", Points: 30},
		{ID: "implement-security", Title: "Step 3: Secure the Endpoints", Kind: "checklist", Points: 60},
		{ID: "configure-whitelist", Title: "Step 4: Configure Endpoint Policy", Kind: "configuration", Points: 70},
	},
	UsageLaundering: {
		{ID: "identify-laundering", Title: "Step 1: Identify Usage Laundering", Kind: "multiple-choice", Points: 35},
		{ID: "analyze-scale", Title: "Step 2: Analyze Business Impact", Kind: "checklist", Points: 35},
		{ID: "business-response", Title: "Step 3: Business Policy Response", Kind: "checklist", Points: 65},
		{ID: "configure-detection", Title: "Step 4: Configure Anomaly Detection", Kind: "configuration", Points: 65},
	},
}

// Catalog returns the briefs for every scripted scenario, in presentation
// order.
func Catalog() []Brief {
	out := make([]Brief, len(catalog))
	copy(out, catalog)
	return out
}

// IsKnown reports whether id names one of the scripted scenarios.
func IsKnown(id string) bool {
	_, ok := protocols[id]
	return ok
}

// ProtocolFor returns the defense-protocol step metadata for a scenario, or
// nil for unknown IDs.
func ProtocolFor(scenarioID string) []ProtocolStep {
	steps, ok := protocols[scenarioID]
	if !ok {
		return nil
	}
	out := make([]ProtocolStep, len(steps))
	copy(out, steps)
	return out
}
