package api

import "github.com/gin-gonic/gin"

// Envelope is the uniform response body. success is true exactly when the
// HTTP status is in the 2xx range.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Respond writes the response envelope with the given status.
func Respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{
		Success: status >= 200 && status < 300,
		Message: message,
		Data:    data,
	})
}
