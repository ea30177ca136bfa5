package dto

import "github.com/tnqbao/gau-showcase-service/utils"

type CreateStatRequestDTO struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// UpdateStatRequestDTO distinguishes omitted fields from explicit nulls.
type UpdateStatRequestDTO struct {
	Title       utils.Optional[string] `json:"title"`
	Description utils.Optional[string] `json:"description"`
}

type BoxDescriptionRequestDTO struct {
	Description string `json:"description" binding:"required"`
}
