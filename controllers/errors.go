package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quickprint-campus/quickprint-api/config"
	"github.com/quickprint-campus/quickprint-api/services"
	"github.com/quickprint-campus/quickprint-api/utils"
	"go.uber.org/zap"
)

// respondError maps a service error onto the API error envelope
func respondError(c *gin.Context, err error) {
	var notFound *services.NotFoundError
	var validationErr *services.ValidationError
	var uploadErr *utils.FileUploadError

	switch {
	case errors.As(err, &notFound):
		resource := strings.ToUpper(notFound.Resource[:1]) + notFound.Resource[1:]
		errorResponse(c, http.StatusNotFound, strings.ToUpper(notFound.Resource)+"_NOT_FOUND", resource+" not found")
	case errors.Is(err, services.ErrNotFound):
		errorResponse(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, services.ErrAlreadyExists):
		errorResponse(c, http.StatusConflict, "ALREADY_EXISTS", err.Error())
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": validationErr.Error(),
			},
		})
	case errors.As(err, &uploadErr):
		errorResponse(c, http.StatusBadRequest, uploadErr.Code, uploadErr.Message)
	case errors.Is(err, services.ErrForbidden):
		errorResponse(c, http.StatusForbidden, "FORBIDDEN", "You are not allowed to perform this action")
	default:
		_ = c.Error(err)
		config.GetLogger().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "DATABASE_ERROR", "An internal error occurred")
	}
}

func errorResponse(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid request data",
			"details": err.Error(),
		},
	})
}

// parseID reads a positive numeric path parameter, writing a 400 when it is malformed
func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		errorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+param)
		return 0, false
	}
	return uint(id), true
}
