package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tnqbao/gau-showcase-service/config"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	RefreshTokenHeader = "refresh_token"
)

type Claims struct {
	AdminID   string `json:"admin_id"`
	Email     string `json:"email"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

func GenerateAccessToken(adminID uuid.UUID, email string, cfg *config.EnvConfig) (string, error) {
	return generateToken(adminID, email, TokenTypeAccess, cfg.JWT.AccessExpire, cfg.JWT.SecretKey)
}

func GenerateRefreshToken(adminID uuid.UUID, email string, cfg *config.EnvConfig) (string, error) {
	return generateToken(adminID, email, TokenTypeRefresh, cfg.JWT.RefreshExpire, cfg.JWT.SecretKey)
}

func generateToken(adminID uuid.UUID, email, tokenType string, ttl time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := &Claims{
		AdminID:   adminID.String(),
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies signature and expiry and checks the token type so a
// refresh token can never be presented as an access token.
func ParseToken(tokenString, expectedType string, cfg *config.EnvConfig) (*Claims, error) {
	secret := []byte(cfg.JWT.SecretKey)
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.TokenType != expectedType {
		return nil, errors.New("unexpected token type")
	}
	return claims, nil
}

func ExtractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Fields(authHeader)
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return ""
}

func ExtractRefreshToken(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader(RefreshTokenHeader)); token != "" {
		return token
	}
	if token, err := c.Cookie(RefreshTokenHeader); err == nil && token != "" {
		return token
	}
	return ""
}

func InjectClaimsToContext(c *gin.Context, claims *Claims) error {
	if _, err := uuid.Parse(claims.AdminID); err != nil {
		return errors.New("Invalid admin_id format")
	}
	c.Set("admin_id", claims.AdminID)
	c.Set("admin_email", claims.Email)
	return nil
}

func GetAdminIDFromContext(c *gin.Context) (uuid.UUID, error) {
	adminID := c.GetString("admin_id")
	if adminID == "" {
		return uuid.Nil, errors.New("admin_id is missing from context")
	}
	parsed, err := uuid.Parse(adminID)
	if err != nil {
		return uuid.Nil, errors.New("invalid admin_id format: " + err.Error())
	}
	return parsed, nil
}
