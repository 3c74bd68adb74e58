package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"room-booking/middleware"
	"room-booking/services"
	"room-booking/utils"
	"room-booking/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func getLogger(c *gin.Context) *zap.Logger {
	if l, ok := c.Get(middleware.LoggerKey); ok {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return zap.L()
}

// paramID reads :id. Ids that are not positive integers never match a
// record, so callers answer them with 404.
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// readInput decodes the body, answering 400 itself when it is not a JSON object.
func readInput(c *gin.Context) (validation.Input, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		getLogger(c).Warn("read request body", zap.Error(err))
		utils.JSONMessage(c, http.StatusBadRequest, utils.MsgInvalidPayload)
		return nil, false
	}
	in, err := validation.DecodeBody(body)
	if err != nil {
		getLogger(c).Debug("malformed payload", zap.Error(err))
		utils.JSONMessage(c, http.StatusBadRequest, utils.MsgInvalidPayload)
		return nil, false
	}
	return in, true
}

// respondError maps repository and validation errors onto responses. Store
// failures are logged and answered with a generic 500.
func respondError(c *gin.Context, err error, action string) {
	var verrs *validation.Errors
	switch {
	case errors.As(err, &verrs):
		utils.JSONValidationError(c, verrs)
	case errors.Is(err, services.ErrNotFound):
		utils.JSONNotFound(c)
	default:
		getLogger(c).Error(action+" failed", zap.Error(err))
		utils.JSONMessage(c, http.StatusInternalServerError, utils.MsgServerError)
	}
}
