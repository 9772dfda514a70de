package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the data payload of the common envelope.
type Response map[string]interface{}

// Business codes shared by all endpoints.
const (
	CodeOK           = 0
	CodeInvalidParam = 40001
	CodeAuth         = 40101
	CodeNotFound     = 40401
	CodeServerErr    = 50001
	CodeRemoteErr    = 50201 // upstream AI / remote call failed
)

// Success writes the common success envelope.
func Success(c *gin.Context, data Response) {
	c.JSON(http.StatusOK, gin.H{
		"code": CodeOK,
		"data": data,
	})
}

// Error writes the common error envelope.
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
	})
}
