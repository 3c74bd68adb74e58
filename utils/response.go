package utils

import (
	"net/http"

	"room-booking/validation"

	"github.com/gin-gonic/gin"
)

const (
	MsgNotFound       = "Resource not found."
	MsgInvalidPayload = "Invalid request payload."
	MsgServerError    = "Server Error"
)

func JSONData(c *gin.Context, code int, data any) {
	c.JSON(code, gin.H{"data": data})
}

func JSONDataMessage(c *gin.Context, code int, data any, message string) {
	c.JSON(code, gin.H{"data": data, "message": message})
}

func JSONMessage(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}

func JSONNotFound(c *gin.Context) {
	JSONMessage(c, http.StatusNotFound, MsgNotFound)
}

// JSONValidationError writes the 422 body: {"message": ..., "errors": {field: [...]}}.
func JSONValidationError(c *gin.Context, errs *validation.Errors) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": errs.Message(),
		"errors":  errs.Map(),
	})
}
