package dto

type MediaUploadResponseDTO struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}
