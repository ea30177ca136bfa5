package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the envelope of every user-visible failure.
type ErrorResponse struct {
	Message string `json:"message"`
}

func JSON200(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func JSON201(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func JSON400(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Message: message})
}

func JSON401(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{Message: message})
}

func JSON403(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, ErrorResponse{Message: message})
}

func JSON404(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Message: message})
}

// JSON500 never echoes internal error text to the client.
func JSON500(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Message: message})
}

// Message wraps a plain success message in the same envelope.
func Message(message string) ErrorResponse {
	return ErrorResponse{Message: message}
}
