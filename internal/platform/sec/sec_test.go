// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package sec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	service, err := NewTokenService("test-secret", "mangafire.app")
	require.NoError(t, err)

	signed, err := service.GenerateAccessToken("42", "guts@mangafire.app", "user", time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(signed)
	require.NoError(t, err)

	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "guts@mangafire.app", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "mangafire.app", claims.Issuer)
}

func TestTokenService_RejectsEmptySecret(t *testing.T) {
	_, err := NewTokenService("", "mangafire.app")
	assert.Error(t, err)
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	signer, err := NewTokenService("secret-a", "mangafire.app")
	require.NoError(t, err)
	verifier, err := NewTokenService("secret-b", "mangafire.app")
	require.NoError(t, err)

	signed, err := signer.GenerateAccessToken("42", "guts@mangafire.app", "user", time.Minute)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(signed)
	assert.Error(t, err)
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	service, err := NewTokenService("test-secret", "mangafire.app")
	require.NoError(t, err)

	signed, err := service.GenerateAccessToken("42", "guts@mangafire.app", "user", -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(signed)
	assert.Error(t, err)
}

func TestGenerateSecureToken_Properties(t *testing.T) {
	first, err := GenerateSecureToken()
	require.NoError(t, err)
	second, err := GenerateSecureToken()
	require.NoError(t, err)

	// 32 bytes hex-encoded.
	assert.Len(t, first, RefreshTokenBytes*2)
	assert.NotEqual(t, first, second)
}

func TestHashToken_DeterministicAndOpaque(t *testing.T) {
	token := "some-opaque-token"

	assert.Equal(t, HashToken(token), HashToken(token))
	assert.NotEqual(t, token, HashToken(token))
	assert.Len(t, HashToken(token), 64)
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("strugglerpass")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("strugglerpass", hash))
	assert.False(t, CheckPasswordHash("wrongpassword", hash))
	assert.NotEqual(t, "strugglerpass", hash)
}

func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, RoleAdmin.AtLeast(RoleModerator))
	assert.True(t, RoleModerator.AtLeast(RoleUser))
	assert.True(t, RoleUser.AtLeast(RoleUser))
	assert.False(t, RoleUser.AtLeast(RoleModerator))
	assert.False(t, UserRole("unknown").AtLeast(RoleUser))
}
