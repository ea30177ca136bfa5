package controller

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-showcase-service/entity"
	"github.com/tnqbao/gau-showcase-service/http/controller/dto"
	"github.com/tnqbao/gau-showcase-service/repository"
	"github.com/tnqbao/gau-showcase-service/service"
	"github.com/tnqbao/gau-showcase-service/utils"
)

func (ctrl *Controller) ListPartners(c *gin.Context) {
	partners, err := ctrl.Repository.PartnerRepo.FindAll(c.Request.Context())
	if err != nil {
		ctrl.respondError(c, err, "Partner", "")
		return
	}
	utils.JSON200(c, partners)
}

func (ctrl *Controller) GetPartnerByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	partner, err := ctrl.Repository.PartnerRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		ctrl.respondError(c, err, "Partner", "Partner not found")
		return
	}
	utils.JSON200(c, partner)
}

func (ctrl *Controller) CreatePartner(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreatePartnerRequestDTO
	if err := c.ShouldBind(&req); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Partner] Invalid create payload: %v", err)
		utils.JSON400(c, bindingMessage(err))
		return
	}

	image := multipartFile(c, "image")
	if image == nil {
		utils.JSON400(c, "Missing or invalid field(s): image")
		return
	}

	urls, err := ctrl.Assets.UploadAll(ctx, ctrl.imageBucket(), []service.File{*image})
	if err != nil {
		ctrl.respondError(c, err, "Partner", "")
		return
	}

	partner := &entity.Partner{
		FullName:    req.FullName,
		Quote:       req.Quote,
		Description: req.Description,
		ImageURL:    urls[0],
	}
	if err := ctrl.Repository.PartnerRepo.Create(ctx, partner); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Partner] Failed to save partner, rolling back upload: %v", err)
		ctrl.Assets.RemoveAll(ctx, ctrl.imageBucket(), urls)
		ctrl.respondError(c, err, "Partner", "")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Partner] Created partner %s", partner.ID)
	utils.JSON201(c, partner)
}

// UpdatePartner applies a partial multipart update. A partner always keeps
// exactly one image, so the image can be replaced but never cleared.
func (ctrl *Controller) UpdatePartner(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	image := multipartFile(c, "image")
	if image == nil && formClears(c, "image") {
		utils.JSON400(c, "Partner image cannot be removed, upload a replacement instead")
		return
	}

	patch := repository.PartnerPatch{
		FullName:    formOptional(c, "fullName"),
		Quote:       formOptional(c, "quote"),
		Description: formOptional(c, "description"),
	}
	if err := patch.Validate(); err != nil {
		ctrl.respondError(c, err, "Partner", "")
		return
	}

	partner, err := ctrl.Repository.PartnerRepo.FindByID(ctx, id)
	if err != nil {
		ctrl.respondError(c, err, "Partner", "Partner not found")
		return
	}

	current := &partner.ImageURL
	if _, err := ctrl.Assets.ReplaceSingle(ctx, ctrl.imageBucket(), current, image, func(_ context.Context, url *string) error {
		patch.ImageURL = utils.Some(*url)
		return nil
	}); err != nil {
		ctrl.respondError(c, err, "Partner", "")
		return
	}

	updated, err := ctrl.Repository.PartnerRepo.UpdateByID(ctx, id, patch)
	if err != nil {
		ctrl.respondError(c, err, "Partner", "Partner not found")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Partner] Updated partner %s", id)
	utils.JSON200(c, updated)
}

func (ctrl *Controller) DeletePartner(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	partner, err := ctrl.Repository.PartnerRepo.DeleteByID(ctx, id)
	if err != nil {
		ctrl.respondError(c, err, "Partner", "Partner not found")
		return
	}

	ctrl.Assets.RemoveAll(ctx, ctrl.imageBucket(), []string{partner.ImageURL})

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Partner] Deleted partner %s and its image", id)
	utils.JSON200(c, utils.Message("Partner deleted successfully"))
}
