// Package security provides secure random generation utilities
package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// GenerateSessionID generates an opaque session token.
func GenerateSessionID() string {
	return uuid.NewString()
}

// GenerateAttackID generates a unique identifier for one simulation run.
// ULIDs are time-ordered, so attack IDs sort by launch time; the attack_
// prefix keeps the key shape clients already parse.
func GenerateAttackID() string {
	return "attack_" + ulid.Make().String()
}

// GenerateSecureKey creates a cryptographically secure random key and returns
// it as a hex string. Used for ephemeral JWT secrets when none is configured.
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length/2) // Each byte becomes two hex characters
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
