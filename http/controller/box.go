package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-showcase-service/http/controller/dto"
	"github.com/tnqbao/gau-showcase-service/utils"
)

func (ctrl *Controller) GetBoxDescription(c *gin.Context) {
	box, err := ctrl.Repository.BoxDescriptionRepo.FindFirst(c.Request.Context())
	if err != nil {
		ctrl.respondError(c, err, "Box", "Box description not found")
		return
	}
	utils.JSON200(c, box)
}

// UpdateBoxDescription overwrites the singleton, creating it on first use.
func (ctrl *Controller) UpdateBoxDescription(c *gin.Context) {
	var req dto.BoxDescriptionRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, bindingMessage(err))
		return
	}

	box, err := ctrl.Repository.BoxDescriptionRepo.Upsert(c.Request.Context(), req.Description)
	if err != nil {
		ctrl.respondError(c, err, "Box", "")
		return
	}
	utils.JSON200(c, box)
}
