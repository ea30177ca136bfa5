package controller

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/tnqbao/gau-showcase-service/repository"
	"github.com/tnqbao/gau-showcase-service/service"
	"github.com/tnqbao/gau-showcase-service/utils"
)

const nullLiteral = "null"

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.JSON400(c, "Invalid id format")
		return uuid.Nil, false
	}
	return id, true
}

// multipartFiles returns the files uploaded under field. A request that is not
// multipart simply has none.
func multipartFiles(c *gin.Context, field string) []service.File {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}

	headers := form.File[field]
	files := make([]service.File, 0, len(headers))
	for _, header := range headers {
		// an unselected file input arrives with an empty filename
		if header.Filename == "" {
			continue
		}
		files = append(files, fileFromHeader(header))
	}
	return files
}

func multipartFile(c *gin.Context, field string) *service.File {
	files := multipartFiles(c, field)
	if len(files) == 0 {
		return nil
	}
	return &files[0]
}

func fileFromHeader(header *multipart.FileHeader) service.File {
	return service.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Open: func() (io.ReadCloser, error) {
			return header.Open()
		},
	}
}

// formOptional reads a form field as a partial-update value; the literal
// "null" is an explicit clear.
func formOptional(c *gin.Context, field string) utils.Optional[string] {
	value, ok := c.GetPostForm(field)
	if !ok {
		return utils.Optional[string]{}
	}
	if value == nullLiteral {
		return utils.Null[string]()
	}
	return utils.Some(value)
}

// formClears reports an explicit request to drop an asset field: the literal
// "null", or "[]" for lists. An empty value is how browsers send an unselected
// file input, so it keeps the stored asset.
func formClears(c *gin.Context, field string) bool {
	value, ok := c.GetPostForm(field)
	return ok && (value == nullLiteral || value == "[]")
}

// bindingMessage turns validator output into a message naming the offending
// fields.
func bindingMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			fields = append(fields, lowerFirst(fieldErr.Field()))
		}
		return fmt.Sprintf("Missing or invalid field(s): %s", strings.Join(fields, ", "))
	}
	return "Invalid request payload"
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// respondError maps domain errors onto status codes; anything unknown is
// logged and answered with a generic 500.
func (ctrl *Controller) respondError(c *gin.Context, err error, tag, notFoundMessage string) {
	ctx := c.Request.Context()
	switch {
	case errors.Is(err, repository.ErrNotFound):
		utils.JSON404(c, notFoundMessage)
	case errors.Is(err, repository.ErrValidation), errors.Is(err, service.ErrInvalidFile):
		utils.JSON400(c, err.Error())
	case errors.Is(err, repository.ErrDuplicateEmail):
		utils.JSON400(c, "Admin with this email already exists")
	default:
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[%s] Request failed: %v", tag, err)
		utils.JSON500(c, "")
	}
}
