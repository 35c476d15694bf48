package jwt

import (
	"testing"
	"time"

	"healthtech-api/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	issued, err := svc.GenerateAccessToken(userID, "doc@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, issued.TokenID)
	assert.Equal(t, 15*time.Minute, issued.TTL)

	claims, err := svc.ValidateToken(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, issued.TokenID, claims.TokenID)
}

func TestValidateToken_RejectsWrongSecret(t *testing.T) {
	issued, err := newTestService().GenerateRefreshToken(uuid.New(), "p@example.com")
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{Secret: "other", AccessExpiry: time.Minute})
	_, err = other.ValidateToken(issued.Token)
	assert.Error(t, err)
}

func TestValidateToken_RejectsExpired(t *testing.T) {
	svc := newTestService()
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	issued, err := svc.GenerateAccessToken(uuid.New(), "p@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateToken(issued.Token)
	assert.Error(t, err)
}
