package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-showcase-service/http/controller"
)

type Middlewares struct {
	CORSMiddleware      gin.HandlerFunc
	AuthMiddleware      gin.HandlerFunc
	TelemetryMiddleware gin.HandlerFunc
}

func NewMiddlewares(ctrl *controller.Controller) (*Middlewares, error) {
	cors := CORSMiddleware(ctrl.Config.EnvConfig)
	auth := AuthMiddleware(ctrl.Config.EnvConfig, ctrl.Infra.Logger)
	telemetry := TelemetryMiddleware(ctrl.Infra.Telemetry)

	return &Middlewares{
		CORSMiddleware:      cors,
		AuthMiddleware:      auth,
		TelemetryMiddleware: telemetry,
	}, nil
}
