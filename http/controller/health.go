package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-showcase-service/utils"
)

func (ctrl *Controller) Health(c *gin.Context) {
	utils.JSON200(c, gin.H{
		"status":  "ok",
		"service": ctrl.Config.EnvConfig.Grafana.ServiceName,
	})
}
