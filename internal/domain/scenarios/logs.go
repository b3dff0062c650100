package scenarios

import (
	"time"

	"github.com/AtRiskMedia/defensesim-go/internal/domain/entities/workshop"
)

// LogsFor generates the synthetic log stream for a scenario. Timestamps are
// computed relative to now so the stream always looks fresh; everything else
// is scripted. The step parameter is accepted for future staging but the
// scripted streams currently tell the whole story every poll.
func LogsFor(scenarioID string, step int, now time.Time) []workshop.LogEntry {
	_ = step

	switch scenarioID {
	case FreeTierExploit:
		return []workshop.LogEntry{
			{
				Timestamp:       now.Add(-30 * time.Second),
				Level:           "INFO",
				Endpoint:        "/api/v1/analyze",
				User:            "premium_user_101",
				Message:         "Standard premium tier API call",
				Metadata:        map[string]any{"calls_today": 2500, "tier": "premium", "ip": "203.0.113.45"},
				EducationalHint: "Normal premium user behavior for comparison",
			},
			{
				Timestamp:       now.Add(-25 * time.Second),
				Level:           "INFO",
				Endpoint:        "/api/v1/analyze",
				User:            "free_user_7891",
				Message:         "Free tier API call completed",
				Metadata:        map[string]any{"calls_today": 998, "tier": "free", "ip": "192.168.1.100", "account_age_hours": 2},
				EducationalHint: "Notice the very new account and high usage",
			},
			{
				Timestamp:       now.Add(-20 * time.Second),
				Level:           "INFO",
				Endpoint:        "/api/v1/analyze",
				User:            "free_user_7892",
				Message:         "Free tier API call completed",
				Metadata:        map[string]any{"calls_today": 999, "tier": "free", "ip": "192.168.1.100", "account_age_hours": 1},
				EducationalHint: "Same IP, different account, stopping at exactly 999 calls!",
			},
			{
				Timestamp:       now.Add(-15 * time.Second),
				Level:           "WARN",
				Endpoint:        "/api/v1/analyze",
				User:            "free_user_7893",
				Message:         "Free tier daily limit approaching",
				Metadata:        map[string]any{"calls_today": 999, "tier": "free", "ip": "192.168.1.100", "account_age_hours": 0.5},
				EducationalHint: "Multiple accounts from same IP hitting exactly 999 calls",
			},
			{
				Timestamp:       now.Add(-10 * time.Second),
				Level:           "ALERT",
				Endpoint:        "/api/v1/analyze",
				User:            "free_user_7894",
				Message:         "Potential automation detected: Account creation and immediate high usage",
				Metadata:        map[string]any{"calls_today": 999, "tier": "free", "ip": "192.168.1.100", "user_agent": "python-requests/2.28.0"},
				EducationalHint: "Bot signature: python-requests user agent + immediate usage",
			},
			{
				Timestamp: now,
				Level:     "CRITICAL",
				Endpoint:  "SYSTEM",
				User:      "SECURITY_MONITOR",
				Message:   "FREE TIER EXPLOIT DETECTED: 47 accounts from IP 192.168.1.100 each consuming exactly 999 API calls",
				Metadata: map[string]any{
					"total_accounts":         47,
					"total_calls":            46953,
					"estimated_value_stolen": "$2347.65",
					"pattern":                "account_multiplication",
				},
				EducationalHint: "Attackers are getting $2300+ worth of API calls for free!",
			},
		}

	case CredentialSharing:
		return []workshop.LogEntry{
			{
				Timestamp:       now.Add(-35 * time.Second),
				Level:           "INFO",
				Endpoint:        "/api/v1/data",
				User:            "api_key_abc123",
				Message:         "API request completed successfully",
				Metadata:        map[string]any{"location": "New York", "ip": "10.0.0.1", "user_agent": "PostmanRuntime/7.32.3"},
				EducationalHint: "Normal usage from account holder's location",
			},
			{
				Timestamp:       now.Add(-30 * time.Second),
				Level:           "WARN",
				Endpoint:        "/api/v1/data",
				User:            "api_key_abc123",
				Message:         "Geographic anomaly detected",
				Metadata:        map[string]any{"location": "London", "ip": "203.0.113.89", "travel_time_minutes": 15, "user_agent": "curl/7.68.0"},
				EducationalHint: "Impossible travel: NYC to London in 15 minutes!",
			},
			{
				Timestamp: now.Add(-25 * time.Second),
				Level:     "ALERT",
				Endpoint:  "/api/v1/data",
				User:      "api_key_abc123",
				Message:   "Multiple concurrent sessions from different continents",
				Metadata: map[string]any{
					"locations":             []string{"New York", "London", "Tokyo", "Sydney"},
					"concurrent_sessions":   4,
					"different_user_agents": 3,
				},
				EducationalHint: "Same API key active in 4 countries simultaneously!",
			},
			{
				Timestamp: now.Add(-15 * time.Second),
				Level:     "CRITICAL",
				Endpoint:  "/api/v1/data",
				User:      "api_key_abc123",
				Message:   "Large scale credential sharing detected",
				Metadata: map[string]any{
					"unique_ips":          127,
					"countries":           24,
					"concurrent_sessions": 89,
					"usage_increase":      "2847%",
				},
				EducationalHint: "Usage increased 28x - this is commercial reselling!",
			},
			{
				Timestamp: now,
				Level:     "EMERGENCY",
				Endpoint:  "SECURITY_MONITOR",
				User:      "FRAUD_DETECTION",
				Message:   "MASSIVE CREDENTIAL SHARING: API key shared across global network",
				Metadata: map[string]any{
					"total_countries":      24,
					"active_sessions":      89,
					"revenue_loss_hourly":  "$1,247",
					"sharing_network_size": "commercial_scale",
				},
				EducationalHint: "Single $50/month API key serving 100+ users worldwide",
			},
		}

	case ShadowEndpoint:
		return []workshop.LogEntry{
			{
				Timestamp:       now.Add(-30 * time.Second),
				Level:           "INFO",
				Endpoint:        "/api/v1/public/search",
				User:            "user_jane_doe",
				Message:         "Public API endpoint accessed successfully",
				Metadata:        map[string]any{"auth_required": true, "auth_status": "valid", "response_time": "127ms"},
				EducationalHint: "Normal public endpoint with proper authentication",
			},
			{
				Timestamp:       now.Add(-25 * time.Second),
				Level:           "INFO",
				Endpoint:        "/api/internal/debug/system_info",
				User:            "user_hacker_42",
				Message:         "Internal debug endpoint accessed",
				Metadata:        map[string]any{"auth_required": false, "system_data_exposed": true, "response_time": "45ms"},
				EducationalHint: "Internal endpoint accessed - should this be public?",
			},
			{
				Timestamp: now.Add(-20 * time.Second),
				Level:     "WARN",
				Endpoint:  "/dev/backdoor/admin_panel",
				User:      "user_hacker_42",
				Message:   "Development backdoor accessed",
				Metadata: map[string]any{
					"auth_required":           false,
					"admin_functions_exposed": true,
					"database_access":         true,
					"source_code_visible":     true,
				},
				EducationalHint: "Development backdoor still active in production!",
			},
			{
				Timestamp: now.Add(-15 * time.Second),
				Level:     "ALERT",
				Endpoint:  "/api/internal/debug/dump_users",
				User:      "user_hacker_42",
				Message:   "User database dump downloaded",
				Metadata: map[string]any{
					"records_exposed":       15847,
					"includes_passwords":    true,
					"includes_payment_info": true,
					"file_size_mb":          23.7,
				},
				EducationalHint: "Attacker downloaded entire user database!",
			},
			{
				Timestamp: now,
				Level:     "CRITICAL",
				Endpoint:  "SECURITY_MONITOR",
				User:      "INTRUSION_DETECTION",
				Message:   "SHADOW ENDPOINT EXPLOITATION: Unauthorized access to development/debug endpoints",
				Metadata: map[string]any{
					"exposed_endpoints":         []string{"/api/internal/debug/*", "/dev/backdoor/*", "/admin/test/*"},
					"data_compromised":          "user_database, payment_info, source_code",
					"threat_level":              "CRITICAL",
					"immediate_action_required": true,
				},
				EducationalHint: "These endpoints should never be accessible in production!",
			},
		}

	case UsageLaundering:
		return []workshop.LogEntry{
			{
				Timestamp:       now.Add(-35 * time.Second),
				Level:           "INFO",
				Endpoint:        "/api/v1/process",
				User:            "normal_business_123",
				Message:         "Standard API request processed",
				Metadata:        map[string]any{"operations": 1, "billed_units": 1, "cost": "$0.05"},
				EducationalHint: "Normal 1:1 operation to billing ratio",
			},
			{
				Timestamp: now.Add(-30 * time.Second),
				Level:     "INFO",
				Endpoint:  "/api/v1/batch_process",
				User:      "efficiency_corp_999",
				Message:   "Batch processing request completed",
				Metadata: map[string]any{
					"operations_in_batch": 50,
					"billed_units":        1,
					"actual_cost":         "$2.50",
					"charged_cost":        "$0.05",
					"customer_id_count":   23,
				},
				EducationalHint: "50 operations but only billed for 1? Suspicious...",
			},
			{
				Timestamp: now.Add(-25 * time.Second),
				Level:     "WARN",
				Endpoint:  "/api/v1/batch_process",
				User:      "efficiency_corp_999",
				Message:   "Large batch processing detected",
				Metadata: map[string]any{
					"operations_in_batch":    100,
					"billed_units":           1,
					"actual_cost":            "$5.00",
					"charged_cost":           "$0.05",
					"different_customer_ids": 87,
					"usage_pattern":          "perfectly_flat_24_7",
				},
				EducationalHint: "100 operations for price of 1 + flat 24/7 usage = commercial resale",
			},
			{
				Timestamp: now.Add(-15 * time.Second),
				Level:     "ALERT",
				Endpoint:  "/api/v1/batch_process",
				User:      "efficiency_corp_999",
				Message:   "Commercial API reselling detected through batch manipulation",
				Metadata: map[string]any{
					"operations_in_batch":    250,
					"billed_units":           1,
					"revenue_discrepancy":    "$12.45 vs $0.05",
					"end_customer_count":     234,
					"resale_markup_detected": "400%",
				},
				EducationalHint: "They're charging customers $50/month while paying us $5!",
			},
			{
				Timestamp: now,
				Level:     "EMERGENCY",
				Endpoint:  "REVENUE_PROTECTION",
				User:      "BILLING_ANOMALY_DETECTOR",
				Message:   "USAGE LAUNDERING DETECTED: Massive revenue loss through batch pricing exploit",
				Metadata: map[string]any{
					"monthly_revenue_loss":        "$47,893",
					"actual_usage_value":          "$52,340",
					"amount_billed":               "$4,447",
					"exploitation_method":         "batch_pricing_manipulation",
					"commercial_resale_confirmed": true,
					"end_customers_served":        847,
				},
				EducationalHint: "One customer exploiting pricing to serve 800+ end users!",
			},
		}

	default:
		// Baseline traffic when no attack is active.
		return []workshop.LogEntry{
			{
				Timestamp: now,
				Level:     "INFO",
				Endpoint:  "/api/v1/status",
				User:      "health_check",
				Message:   "System health check completed",
				Metadata:  map[string]any{"status": "healthy", "response_time": "23ms"},
			},
		}
	}
}
