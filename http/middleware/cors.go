package middlewares

import (
	"net/url"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-showcase-service/config"
	"github.com/tnqbao/gau-showcase-service/utils"
)

// CORSMiddleware allows the comma-separated ALLOWED_DOMAINS plus every
// subdomain of GLOBAL_DOMAIN. With neither configured any origin is allowed.
func CORSMiddleware(cfg *config.EnvConfig) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", utils.RefreshTokenHeader, "X-Requested-With"}
	corsConfig.ExposeHeaders = []string{"Authorization"}

	var origins []string
	for _, origin := range strings.Split(cfg.CORS.AllowDomains, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	globalDomain := strings.TrimPrefix(strings.TrimSpace(cfg.CORS.GlobalDomain), ".")

	if len(origins) == 0 && globalDomain == "" {
		corsConfig.AllowAllOrigins = true
		return cors.New(corsConfig)
	}

	corsConfig.AllowCredentials = true
	corsConfig.AllowOrigins = origins
	if globalDomain != "" {
		corsConfig.AllowOriginFunc = func(origin string) bool {
			for _, allowed := range origins {
				if origin == allowed {
					return true
				}
			}
			parsed, err := url.Parse(origin)
			if err != nil {
				return false
			}
			host := parsed.Hostname()
			return host == globalDomain || strings.HasSuffix(host, "."+globalDomain)
		}
	}
	return cors.New(corsConfig)
}
