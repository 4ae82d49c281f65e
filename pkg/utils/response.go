package utils

import "github.com/gin-gonic/gin"

type successBody struct {
	OK      bool        `json:"ok"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// SuccessResponse writes the {"ok":true,...} envelope
func SuccessResponse(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, successBody{OK: true, Message: message, Data: data})
}

// ErrorResponse writes {"error": message}
func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
