package dto

type SendEmailRequestDTO struct {
	SenderEmail    string `json:"senderEmail" binding:"required,email"`
	SenderPassword string `json:"senderPassword"`
	Subject        string `json:"subject" binding:"required"`
	Message        string `json:"message" binding:"required"`
}
