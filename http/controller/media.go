package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-showcase-service/http/controller/dto"
	"github.com/tnqbao/gau-showcase-service/service"
	"github.com/tnqbao/gau-showcase-service/utils"
)

// mediaKind names one of the two standalone asset collections.
type mediaKind struct {
	tag    string
	label  string
	plural string
	bucket func(*Controller) string
}

var (
	imageMedia = mediaKind{tag: "Image", label: "Image", plural: "images", bucket: (*Controller).imageBucket}
	videoMedia = mediaKind{tag: "Video", label: "Video", plural: "videos", bucket: (*Controller).videoBucket}
)

func (ctrl *Controller) UploadImage(c *gin.Context) { ctrl.uploadMedia(c, imageMedia) }
func (ctrl *Controller) GetAllImages(c *gin.Context) { ctrl.listMedia(c, imageMedia) }
func (ctrl *Controller) DeleteImage(c *gin.Context) { ctrl.deleteMedia(c, imageMedia, false) }
func (ctrl *Controller) UpdateImage(c *gin.Context) { ctrl.updateMedia(c, imageMedia) }
func (ctrl *Controller) UploadVideo(c *gin.Context) { ctrl.uploadMedia(c, videoMedia) }
func (ctrl *Controller) GetAllVideos(c *gin.Context) { ctrl.listMedia(c, videoMedia) }
func (ctrl *Controller) DeleteVideo(c *gin.Context) { ctrl.deleteMedia(c, videoMedia, true) }
func (ctrl *Controller) UpdateVideo(c *gin.Context) { ctrl.updateMedia(c, videoMedia) }

func (ctrl *Controller) uploadMedia(c *gin.Context, kind mediaKind) {
	ctx := c.Request.Context()

	file := multipartFile(c, "file")
	if file == nil {
		utils.JSON400(c, "No file uploaded")
		return
	}

	urls, err := ctrl.Assets.UploadAll(ctx, kind.bucket(ctrl), []service.File{*file})
	if err != nil {
		ctrl.respondError(c, err, kind.tag, "")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[%s] Uploaded %s", kind.tag, file.Name)
	utils.JSON201(c, dto.MediaUploadResponseDTO{
		Message: kind.label + " uploaded successfully",
		URL:     urls[0],
	})
}

func (ctrl *Controller) listMedia(c *gin.Context, kind mediaKind) {
	ctx := c.Request.Context()
	bucket := kind.bucket(ctrl)

	keys, err := ctrl.Infra.Storage.List(ctx, bucket)
	if err != nil {
		ctrl.respondError(c, err, kind.tag, "")
		return
	}

	urls := make([]string, 0, len(keys))
	for _, key := range keys {
		urls = append(urls, ctrl.Infra.Storage.URL(bucket, key))
	}
	utils.JSON200(c, gin.H{kind.plural: urls})
}

// deleteMedia removes an object by key. Image deletes are idempotent; video
// deletes probe first and report a missing key.
func (ctrl *Controller) deleteMedia(c *gin.Context, kind mediaKind, probe bool) {
	ctx := c.Request.Context()
	bucket := kind.bucket(ctrl)

	key := c.Query("key")
	if key == "" {
		utils.JSON400(c, "key query parameter is required")
		return
	}

	if probe {
		exists, err := ctrl.Infra.Storage.Exists(ctx, bucket, key)
		if err != nil {
			ctrl.respondError(c, err, kind.tag, "")
			return
		}
		if !exists {
			utils.JSON404(c, kind.label+" not found")
			return
		}
	}

	if err := ctrl.Infra.Storage.Remove(ctx, bucket, key); err != nil {
		ctrl.respondError(c, err, kind.tag, "")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[%s] Deleted %s", kind.tag, key)
	utils.JSON200(c, utils.Message(kind.label+" deleted successfully"))
}

// updateMedia replaces the object at key with the uploaded file, which is
// stored under its own filename.
func (ctrl *Controller) updateMedia(c *gin.Context, kind mediaKind) {
	ctx := c.Request.Context()
	bucket := kind.bucket(ctrl)

	key := c.PostForm("key")
	if key == "" {
		utils.JSON400(c, "key is required")
		return
	}
	file := multipartFile(c, "file")
	if file == nil {
		utils.JSON400(c, "No file uploaded")
		return
	}

	current := ctrl.Infra.Storage.URL(bucket, key)
	url, err := ctrl.Assets.ReplaceSingle(ctx, bucket, &current, file, nil)
	if err != nil {
		ctrl.respondError(c, err, kind.tag, "")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[%s] Replaced %s with %s", kind.tag, key, file.Name)
	utils.JSON200(c, dto.MediaUploadResponseDTO{
		Message: kind.label + " updated successfully",
		URL:     *url,
	})
}
