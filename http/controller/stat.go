package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-showcase-service/entity"
	"github.com/tnqbao/gau-showcase-service/http/controller/dto"
	"github.com/tnqbao/gau-showcase-service/repository"
	"github.com/tnqbao/gau-showcase-service/utils"
)

func (ctrl *Controller) ListStats(c *gin.Context) {
	stats, err := ctrl.Repository.StatRepo.FindAll(c.Request.Context())
	if err != nil {
		ctrl.respondError(c, err, "Stat", "")
		return
	}
	utils.JSON200(c, stats)
}

func (ctrl *Controller) GetStatByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	stat, err := ctrl.Repository.StatRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		ctrl.respondError(c, err, "Stat", "Stat not found")
		return
	}
	utils.JSON200(c, stat)
}

func (ctrl *Controller) CreateStat(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateStatRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, bindingMessage(err))
		return
	}

	stat := &entity.Stat{Title: req.Title, Description: req.Description}
	if err := ctrl.Repository.StatRepo.Create(ctx, stat); err != nil {
		ctrl.respondError(c, err, "Stat", "")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Stat] Created stat %s", stat.ID)
	utils.JSON201(c, stat)
}

func (ctrl *Controller) UpdateStat(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateStatRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, bindingMessage(err))
		return
	}

	stat, err := ctrl.Repository.StatRepo.UpdateByID(ctx, id, repository.StatPatch{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		ctrl.respondError(c, err, "Stat", "Stat not found")
		return
	}
	utils.JSON200(c, stat)
}

func (ctrl *Controller) DeleteStat(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if _, err := ctrl.Repository.StatRepo.DeleteByID(c.Request.Context(), id); err != nil {
		ctrl.respondError(c, err, "Stat", "Stat not found")
		return
	}
	utils.JSON200(c, utils.Message("Stat deleted successfully"))
}
