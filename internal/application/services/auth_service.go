// Package services provides application-level orchestration services
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AtRiskMedia/defensesim-go/internal/domain/entities/workshop"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/persistence/kv"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/security"
	"github.com/AtRiskMedia/defensesim-go/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles login and session lookups. Sessions are opaque tokens
// in the key-value store; there is no expiry and no logout.
type AuthService struct {
	store  kv.Store
	logger *logging.ChanneledLogger
}

// NewAuthService creates a new authentication service
func NewAuthService(store kv.Store, logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{store: store, logger: logger}
}

// Login validates credentials and creates a session. The configured
// facilitator pair yields the facilitator role; any other non-empty pair is
// admitted as a participant. Empty username or password fails.
func (a *AuthService) Login(ctx context.Context, username, password string) (*workshop.Session, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	role := workshop.RoleParticipant
	if username == config.FacilitatorUsername && a.facilitatorPasswordMatches(password) {
		role = workshop.RoleFacilitator
	}

	session := &workshop.Session{
		SessionID: security.GenerateSessionID(),
		Username:  username,
		Role:      role,
		LoginTime: time.Now().UTC(),
	}

	if err := a.store.Set(ctx, workshop.SessionKey(session.SessionID), session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	// Shadow copy keyed by username; a second login by the same name
	// overwrites it (no per-user session list).
	if err := a.store.Set(ctx, workshop.UserKey(username), session); err != nil {
		return nil, fmt.Errorf("persist user shadow: %w", err)
	}

	a.logger.Auth().Info("Login successful",
		"username", username,
		"role", string(role),
		"sessionId", logging.SanitizeSessionID(session.SessionID))

	return session, nil
}

// facilitatorPasswordMatches compares against the configured facilitator
// password, which may be a bcrypt hash or plaintext during transition.
func (a *AuthService) facilitatorPasswordMatches(password string) bool {
	configured := config.FacilitatorPassword
	if configured == "" {
		return false
	}
	if strings.HasPrefix(configured, "$2a$") || strings.HasPrefix(configured, "$2b$") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(password)) == nil
	}
	return password == configured
}

// GetSession looks up a session by its opaque token.
func (a *AuthService) GetSession(ctx context.Context, sessionID string) (*workshop.Session, error) {
	var session workshop.Session
	err := a.store.Get(ctx, workshop.SessionKey(sessionID), &session)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &session, nil
}

// RequireFacilitator re-fetches the session and checks the facilitator role.
// A missing session and a role mismatch both fail the same way, so callers
// cannot distinguish them.
func (a *AuthService) RequireFacilitator(ctx context.Context, sessionID string) (*workshop.Session, error) {
	session, err := a.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !session.IsFacilitator() {
		a.logger.Auth().Warn("Privileged call with non-facilitator session",
			"username", session.Username,
			"sessionId", logging.SanitizeSessionID(sessionID))
		return nil, ErrUnauthorized
	}
	return session, nil
}
