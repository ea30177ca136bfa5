package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnqbao/gau-showcase-service/config"
)

func testJWTConfig() *config.EnvConfig {
	cfg := &config.EnvConfig{}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.AccessExpire = time.Minute
	cfg.JWT.RefreshExpire = time.Hour
	return cfg
}

func TestGenerateAndParseTokens(t *testing.T) {
	cfg := testJWTConfig()
	adminID := uuid.New()

	access, err := GenerateAccessToken(adminID, "a@example.com", cfg)
	require.NoError(t, err)
	refresh, err := GenerateRefreshToken(adminID, "a@example.com", cfg)
	require.NoError(t, err)

	claims, err := ParseToken(access, TokenTypeAccess, cfg)
	require.NoError(t, err)
	assert.Equal(t, adminID.String(), claims.AdminID)
	assert.Equal(t, "a@example.com", claims.Email)

	_, err = ParseToken(refresh, TokenTypeAccess, cfg)
	assert.Error(t, err, "a refresh token must not pass as an access token")

	_, err = ParseToken(refresh, TokenTypeRefresh, cfg)
	assert.NoError(t, err)
}

func TestParseToken_ExpiredAndForeignSecret(t *testing.T) {
	cfg := testJWTConfig()
	cfg.JWT.AccessExpire = -time.Minute

	expired, err := GenerateAccessToken(uuid.New(), "a@example.com", cfg)
	require.NoError(t, err)
	_, err = ParseToken(expired, TokenTypeAccess, cfg)
	assert.Error(t, err)

	other := testJWTConfig()
	other.JWT.SecretKey = "other"
	token, err := GenerateAccessToken(uuid.New(), "a@example.com", other)
	require.NoError(t, err)
	_, err = ParseToken(token, TokenTypeAccess, testJWTConfig())
	assert.Error(t, err)
}

func TestExtractTokens(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("authorization", "Bearer abc")
	c.Request.Header.Set("refresh_token", "def")

	assert.Equal(t, "abc", ExtractToken(c))
	assert.Equal(t, "def", ExtractRefreshToken(c))

	c.Request.Header.Set("Authorization", "Basic abc")
	assert.Empty(t, ExtractToken(c))
}
