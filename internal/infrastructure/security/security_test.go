package security

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSessionIDUnique(t *testing.T) {
	a := GenerateSessionID()
	b := GenerateSessionID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestGenerateAttackIDShape(t *testing.T) {
	id := GenerateAttackID()
	assert.True(t, strings.HasPrefix(id, "attack_"))
	assert.NotEqual(t, id, GenerateAttackID())
}

func TestGenerateSecureKeyLength(t *testing.T) {
	key, err := GenerateSecureKey(32)
	require.NoError(t, err)
	assert.Len(t, key, 32)
}

func TestOpsTokenRoundTrip(t *testing.T) {
	token, err := GenerateOpsToken("secret", time.Hour)
	require.NoError(t, err)

	assert.NoError(t, ValidateOpsToken(token, "secret"))
	assert.Error(t, ValidateOpsToken(token, "wrong-secret"))
	assert.Error(t, ValidateOpsToken("garbage", "secret"))
}

func TestExpiredOpsTokenRejected(t *testing.T) {
	token, err := GenerateOpsToken("secret", -time.Minute)
	require.NoError(t, err)
	assert.Error(t, ValidateOpsToken(token, "secret"))
}
