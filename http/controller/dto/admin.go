package dto

import "github.com/tnqbao/gau-showcase-service/entity"

type AddAdminRequestDTO struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginAdminRequestDTO struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginAdminResponseDTO struct {
	Message      string        `json:"message"`
	Token        string        `json:"token"`
	RefreshToken string        `json:"refreshToken"`
	Admin        *entity.Admin `json:"admin"`
}
