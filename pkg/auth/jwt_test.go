package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Secret:             "access-secret",
		RefreshSecret:      "refresh-secret",
		ExpiryHours:        1,
		RefreshExpiryHours: 24,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(testConfig())
	adminID := uuid.New()

	token, err := svc.GenerateAccessToken(adminID, "admin@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, adminID, claims.AdminID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, adminID.String(), claims.Subject)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(testConfig())
	adminID := uuid.New()

	token, err := svc.GenerateRefreshToken(adminID, "admin@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, adminID, claims.AdminID)
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	svc := NewJWTService(testConfig())

	refresh, err := svc.GenerateRefreshToken(uuid.New(), "admin@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongSecretRejected(t *testing.T) {
	svc := NewJWTService(testConfig())
	other := NewJWTService(Config{Secret: "different", RefreshSecret: "different"})

	token, err := svc.GenerateAccessToken(uuid.New(), "admin@example.com")
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	cfg := testConfig()
	cfg.ExpiryHours = -1
	svc := NewJWTService(cfg)

	token, err := svc.GenerateAccessToken(uuid.New(), "admin@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestGarbageTokenRejected(t *testing.T) {
	svc := NewJWTService(testConfig())

	_, err := svc.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDefaultLifetimes(t *testing.T) {
	svc := NewJWTService(Config{Secret: "s", RefreshSecret: "r"})
	assert.Equal(t, 24.0, svc.AccessExpiry().Hours())
}
