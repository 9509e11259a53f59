package auth

import (
	"testing"
	"time"

	"bazaar/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testJWTConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_GenerateAndValidateTokens(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	assert.NoError(t, err)
	assert.NotNil(t, jwtService)

	userID := uuid.New()
	roles := []string{"user", "vendor"}

	accessToken, refreshToken, err := jwtService.GenerateTokens(userID, roles)
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	// Validate access token
	accessClaims, err := jwtService.ValidateAccessToken(accessToken)
	assert.NoError(t, err)
	assert.NotNil(t, accessClaims)
	assert.Equal(t, userID, accessClaims.UserID)
	assert.Equal(t, roles, accessClaims.Roles)
	assert.Equal(t, "access", accessClaims.Type)
}

func TestJWTService_RefreshTokenRejectedAsAccess(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	assert.NoError(t, err)

	userID := uuid.New()
	_, refreshToken, err := jwtService.GenerateTokens(userID, []string{"user"})
	assert.NoError(t, err)

	// A refresh token is signed with a different secret, so access
	// validation must fail.
	claims, err := jwtService.ValidateAccessToken(refreshToken)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	assert.NoError(t, err)

	claims, err := jwtService.ValidateAccessToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_EmptySecrets(t *testing.T) {
	cfg := &config.Config{}

	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secrets must be provided")
}

func TestJWTService_ConfiguredTTL(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Auth = &config.AuthConfig{AccessTokenTTL: time.Minute}

	jwtService, err := NewJWTService(cfg)
	assert.NoError(t, err)

	accessToken, _, err := jwtService.GenerateTokens(uuid.New(), nil)
	assert.NoError(t, err)

	claims, err := jwtService.ValidateAccessToken(accessToken)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}
