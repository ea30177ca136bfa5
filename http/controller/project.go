package controller

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-showcase-service/entity"
	"github.com/tnqbao/gau-showcase-service/http/controller/dto"
	"github.com/tnqbao/gau-showcase-service/repository"
	"github.com/tnqbao/gau-showcase-service/utils"
	"gorm.io/datatypes"
)

func (ctrl *Controller) ListProjects(c *gin.Context) {
	projects, err := ctrl.Repository.ProjectRepo.FindAll(c.Request.Context())
	if err != nil {
		ctrl.respondError(c, err, "Project", "")
		return
	}
	utils.JSON200(c, projects)
}

func (ctrl *Controller) GetProjectByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	project, err := ctrl.Repository.ProjectRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		ctrl.respondError(c, err, "Project", "Project not found")
		return
	}
	utils.JSON200(c, project)
}

func (ctrl *Controller) CreateProject(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateProjectRequestDTO
	if err := c.ShouldBind(&req); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Project] Invalid create payload: %v", err)
		utils.JSON400(c, bindingMessage(err))
		return
	}

	images, err := ctrl.Assets.UploadAll(ctx, ctrl.imageBucket(), multipartFiles(c, "images"))
	if err != nil {
		ctrl.respondError(c, err, "Project", "")
		return
	}

	var video *string
	if file := multipartFile(c, "video"); file != nil {
		if _, err := ctrl.Assets.ReplaceSingle(ctx, ctrl.videoBucket(), nil, file, func(_ context.Context, url *string) error {
			video = url
			return nil
		}); err != nil {
			ctrl.Assets.RemoveAll(ctx, ctrl.imageBucket(), images)
			ctrl.respondError(c, err, "Project", "")
			return
		}
	}

	project := &entity.Project{
		Title:       req.Title,
		Location:    req.Location,
		Year:        req.Year,
		Description: req.Description,
		Images:      datatypes.JSONSlice[string](images),
		Video:       video,
	}

	if err := ctrl.Repository.ProjectRepo.Create(ctx, project); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Project] Failed to save project, rolling back uploads: %v", err)
		ctrl.Assets.RemoveAll(ctx, ctrl.imageBucket(), images)
		if video != nil {
			ctrl.Assets.RemoveAll(ctx, ctrl.videoBucket(), []string{*video})
		}
		ctrl.respondError(c, err, "Project", "")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Project] Created project %s with %d image(s)", project.ID, len(project.Images))
	utils.JSON201(c, project)
}

// UpdateProject applies a partial multipart update. Submitted "images" files
// replace the image set by filename; "video" is replaced by a new file and
// cleared by the literal null.
func (ctrl *Controller) UpdateProject(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	patch := repository.ProjectPatch{
		Title:       formOptional(c, "title"),
		Location:    formOptional(c, "location"),
		Description: formOptional(c, "description"),
	}
	if year, ok := c.GetPostForm("year"); ok {
		parsed, err := strconv.Atoi(year)
		if err != nil {
			utils.JSON400(c, "year must be a number")
			return
		}
		patch.Year = utils.Some(parsed)
	}
	if err := patch.Validate(); err != nil {
		ctrl.respondError(c, err, "Project", "")
		return
	}

	project, err := ctrl.Repository.ProjectRepo.FindByID(ctx, id)
	if err != nil {
		ctrl.respondError(c, err, "Project", "Project not found")
		return
	}

	imageFiles := multipartFiles(c, "images")
	if len(imageFiles) > 0 || formClears(c, "images") {
		urls, err := ctrl.Assets.Reconcile(ctx, ctrl.imageBucket(), project.Images, imageFiles)
		if err != nil {
			ctrl.respondError(c, err, "Project", "")
			return
		}
		patch.Images = utils.Some(urls)
	}

	setVideo := func(_ context.Context, url *string) error {
		if url == nil {
			patch.Video = utils.Null[string]()
		} else {
			patch.Video = utils.Some(*url)
		}
		return nil
	}
	if file := multipartFile(c, "video"); file != nil {
		if _, err := ctrl.Assets.ReplaceSingle(ctx, ctrl.videoBucket(), project.Video, file, setVideo); err != nil {
			ctrl.respondError(c, err, "Project", "")
			return
		}
	} else if formClears(c, "video") {
		if err := ctrl.Assets.ClearSingle(ctx, ctrl.videoBucket(), project.Video, setVideo); err != nil {
			ctrl.respondError(c, err, "Project", "")
			return
		}
	}

	updated, err := ctrl.Repository.ProjectRepo.UpdateByID(ctx, id, patch)
	if err != nil {
		ctrl.respondError(c, err, "Project", "Project not found")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Project] Updated project %s", id)
	utils.JSON200(c, updated)
}

func (ctrl *Controller) DeleteProject(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	project, err := ctrl.Repository.ProjectRepo.DeleteByID(ctx, id)
	if err != nil {
		ctrl.respondError(c, err, "Project", "Project not found")
		return
	}

	ctrl.Assets.RemoveAll(ctx, ctrl.imageBucket(), project.Images)
	if project.Video != nil {
		ctrl.Assets.RemoveAll(ctx, ctrl.videoBucket(), []string{*project.Video})
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Project] Deleted project %s and its assets", id)
	utils.JSON200(c, utils.Message("Project deleted successfully"))
}
