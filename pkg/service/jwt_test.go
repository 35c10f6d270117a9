package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, time.Hour*24)

	access, refresh, err := svc.GenerateTokens("USR001", "MANAGER")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, "USR001", claims.UserID)
	assert.Equal(t, "MANAGER", claims.Role)
	assert.False(t, claims.IsRefreshToken)

	refreshClaims, err := svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, refreshClaims.IsRefreshToken)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour, time.Hour)
	verifier := NewJWTService("secret-b", time.Hour, time.Hour)

	access, _, err := issuer.GenerateTokens("USR001", "USER")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(access)
	require.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, -time.Minute)

	access, _, err := svc.GenerateTokens("USR001", "USER")
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	require.Error(t, err)
}
