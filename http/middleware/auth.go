package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-showcase-service/config"
	"github.com/tnqbao/gau-showcase-service/infra"
	"github.com/tnqbao/gau-showcase-service/utils"
)

// AuthMiddleware accepts a valid access token, or silently renews an invalid
// one from the refresh_token header and returns the new access token in the
// Authorization response header.
func AuthMiddleware(cfg *config.EnvConfig, logger *infra.LoggerClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		accessToken := utils.ExtractToken(c)
		refreshToken := utils.ExtractRefreshToken(c)

		if accessToken == "" && refreshToken == "" {
			utils.JSON404(c, "You must be logged in")
			c.Abort()
			return
		}

		if accessToken != "" {
			claims, err := utils.ParseToken(accessToken, utils.TokenTypeAccess, cfg)
			if err == nil {
				if err := utils.InjectClaimsToContext(c, claims); err != nil {
					utils.JSON403(c, "Invalid token claims")
					c.Abort()
					return
				}
				c.Next()
				return
			}
			logger.DebugWithContextf(ctx, "[Auth] Access token rejected: %v", err)
		}

		if refreshToken == "" {
			utils.JSON403(c, "Token expired and no refresh token provided")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(refreshToken, utils.TokenTypeRefresh, cfg)
		if err != nil {
			logger.WarningWithContextf(ctx, "[Auth] Refresh token rejected: %v", err)
			utils.JSON403(c, "Invalid refresh token")
			c.Abort()
			return
		}
		if err := utils.InjectClaimsToContext(c, claims); err != nil {
			utils.JSON403(c, "Invalid refresh token")
			c.Abort()
			return
		}

		adminID, _ := utils.GetAdminIDFromContext(c)
		newToken, err := utils.GenerateAccessToken(adminID, claims.Email, cfg)
		if err != nil {
			logger.ErrorWithContextf(ctx, err, "[Auth] Failed to mint access token: %v", err)
			utils.JSON500(c, "")
			c.Abort()
			return
		}

		c.Header("Authorization", "Bearer "+newToken)
		c.Next()
	}
}
