package controller

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-showcase-service/entity"
	"github.com/tnqbao/gau-showcase-service/http/controller/dto"
	"github.com/tnqbao/gau-showcase-service/repository"
	"github.com/tnqbao/gau-showcase-service/utils"
)

func (ctrl *Controller) AddAdmin(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AddAdminRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, bindingMessage(err))
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		ctrl.respondError(c, err, "Admin", "")
		return
	}

	admin := &entity.Admin{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
	}
	if err := ctrl.Repository.AdminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			ctrl.Infra.Logger.WarningWithContextf(ctx, "[Admin] Rejected duplicate admin email")
		}
		ctrl.respondError(c, err, "Admin", "")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Admin] Created admin %s", admin.ID)
	utils.JSON201(c, gin.H{
		"message": "Admin created successfully",
		"admin":   admin,
	})
}

func (ctrl *Controller) LoginAdmin(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginAdminRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, bindingMessage(err))
		return
	}

	admin, err := ctrl.Repository.AdminRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		ctrl.respondError(c, err, "Auth", "Admin not found")
		return
	}

	if err := utils.VerifyPassword(admin.Password, req.Password); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Auth] Failed login for admin %s", admin.ID)
		utils.JSON401(c, "Invalid credentials")
		return
	}

	// rows written before hashing was introduced are upgraded on first login
	if !utils.IsHashedPassword(admin.Password) {
		if hashed, err := utils.HashPassword(req.Password); err == nil {
			if err := ctrl.Repository.AdminRepo.UpdatePassword(ctx, admin.ID, hashed); err != nil {
				ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Auth] Failed to re-hash password for admin %s: %v", admin.ID, err)
			}
		}
	}

	cfg := ctrl.Config.EnvConfig
	token, err := utils.GenerateAccessToken(admin.ID, admin.Email, cfg)
	if err != nil {
		ctrl.respondError(c, err, "Auth", "")
		return
	}
	refreshToken, err := utils.GenerateRefreshToken(admin.ID, admin.Email, cfg)
	if err != nil {
		ctrl.respondError(c, err, "Auth", "")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Auth] Admin %s logged in", admin.ID)
	utils.JSON200(c, dto.LoginAdminResponseDTO{
		Message:      "Login successful",
		Token:        token,
		RefreshToken: refreshToken,
		Admin:        admin,
	})
}

func (ctrl *Controller) DeleteAdmin(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if _, err := ctrl.Repository.AdminRepo.DeleteByID(ctx, id); err != nil {
		ctrl.respondError(c, err, "Admin", "Admin not found")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Admin] Deleted admin %s", id)
	utils.JSON200(c, utils.Message("Admin deleted successfully"))
}
