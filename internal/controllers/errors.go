package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/gin-pizza-catalog/internal/models"
	"github.com/franciscosanchezn/gin-pizza-catalog/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// parseIDParam reads the :id path parameter and writes a 400 when it is not a
// positive integer
func parseIDParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrInvalidID, "Invalid ID format"))
		return 0, false
	}
	return uint(id), true
}

// respondWithError maps service errors to the API error envelope.
// notFoundCode and existsCode carry the entity specific codes.
func respondWithError(ctx *gin.Context, err error, notFoundCode, existsCode string) {
	var (
		validationErr *services.ValidationError
		duplicateErr  *services.DuplicateError
		notFoundErr   *services.NotFoundError
	)

	switch {
	case errors.As(err, &validationErr):
		details := map[string]interface{}{}
		if validationErr.Field != "" {
			details["field"] = validationErr.Field
		}
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, validationErr.Error(), details))
	case errors.As(err, &duplicateErr):
		ctx.JSON(http.StatusConflict, models.NewAPIError(existsCode, duplicateErr.Error()))
	case errors.As(err, &notFoundErr):
		ctx.JSON(http.StatusNotFound, models.NewAPIError(notFoundCode, notFoundErr.Error()))
	default:
		_ = ctx.Error(err)
		logrus.WithError(err).WithField("path", ctx.Request.URL.Path).Error("Catalog API request failed")
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Internal server error"))
	}
}
