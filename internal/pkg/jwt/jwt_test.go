package jwt

import (
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")
	employeeID := "0193a1d2-7b4c-7c1e-9f00-3a5b6c7d8e9f"

	token, expiresAt, err := svc.GenerateAccessToken(&employeeID, false)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Positive(t, expiresAt)

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	claims := decoded.PrivateClaims()
	assert.Equal(t, employeeID, claims["employee_id"])
	assert.Equal(t, false, claims["is_admin"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
}

func TestJWTService_GenerateAccessToken_AdminWithoutEmployee(t *testing.T) {
	svc := NewJWTService("test-secret", "30m")

	token, _, err := svc.GenerateAccessToken(nil, true)
	require.NoError(t, err)

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	claims := decoded.PrivateClaims()
	assert.Nil(t, claims["employee_id"])
	assert.Equal(t, true, claims["is_admin"])
}

func TestJWTService_GenerateAccessToken_BadExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "forever")

	_, _, err := svc.GenerateAccessToken(nil, true)

	assert.Error(t, err)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	issuer := NewJWTService("secret-a", "1h")
	verifier := NewJWTService("secret-b", "1h")

	token, _, err := issuer.GenerateAccessToken(nil, true)
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(verifier.JWTAuth(), token)
	assert.Error(t, err)
}
