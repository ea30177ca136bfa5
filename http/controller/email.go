package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-showcase-service/http/controller/dto"
	"github.com/tnqbao/gau-showcase-service/infra"
	"github.com/tnqbao/gau-showcase-service/utils"
)

func (ctrl *Controller) SendEmail(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SendEmailRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, bindingMessage(err))
		return
	}

	err := ctrl.Infra.Mailer.Send(ctx, infra.ContactEmail{
		SenderEmail:    req.SenderEmail,
		SenderPassword: req.SenderPassword,
		Subject:        req.Subject,
		Message:        req.Message,
	})
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Email] Failed to send contact email: %v", err)
		utils.JSON500(c, "Failed to send email")
		return
	}

	if ctrl.Infra.Mailer.Queued() {
		utils.JSON200(c, utils.Message("Email queued for delivery"))
		return
	}
	utils.JSON200(c, utils.Message("Email sent successfully"))
}
