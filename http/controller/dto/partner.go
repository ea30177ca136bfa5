package dto

type CreatePartnerRequestDTO struct {
	FullName    string `form:"fullName" binding:"required"`
	Quote       string `form:"quote" binding:"required"`
	Description string `form:"description" binding:"required"`
}
