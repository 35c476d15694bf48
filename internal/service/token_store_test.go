package service

import (
	"testing"

	"healthtech-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTokenKey(t *testing.T) {
	id := uuid.MustParse("7b5b3c3e-7a1f-4b57-9c55-0f4f9a1e2d11")
	assert.Equal(t, "access_token:7b5b3c3e-7a1f-4b57-9c55-0f4f9a1e2d11:jti", TokenKey(jwt.AccessToken, id, "jti"))
	assert.Equal(t, "refresh_token:7b5b3c3e-7a1f-4b57-9c55-0f4f9a1e2d11:*", TokenKey(jwt.RefreshToken, id, "*"))
}
