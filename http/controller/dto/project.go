package dto

type CreateProjectRequestDTO struct {
	Title       string `form:"title" binding:"required"`
	Location    string `form:"location" binding:"required"`
	Year        int    `form:"year" binding:"required"`
	Description string `form:"description" binding:"required"`
}
