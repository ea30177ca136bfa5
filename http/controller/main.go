package controller

import (
	"github.com/tnqbao/gau-showcase-service/config"
	"github.com/tnqbao/gau-showcase-service/infra"
	"github.com/tnqbao/gau-showcase-service/repository"
	"github.com/tnqbao/gau-showcase-service/service"
)

type Controller struct {
	Config     *config.Config
	Infra      *infra.Infra
	Repository *repository.Repository
	Assets     *service.AssetReconciler
}

func NewController(config *config.Config, infra *infra.Infra, repo *repository.Repository) *Controller {
	if repo == nil {
		panic("Failed to initialize Repository")
	}
	return &Controller{
		Config:     config,
		Infra:      infra,
		Repository: repo,
		Assets:     service.NewAssetReconciler(infra.Storage, infra.Logger),
	}
}

func (ctrl *Controller) imageBucket() string {
	return ctrl.Config.EnvConfig.Storage.ImageBucket
}

func (ctrl *Controller) videoBucket() string {
	return ctrl.Config.EnvConfig.Storage.VideoBucket
}
