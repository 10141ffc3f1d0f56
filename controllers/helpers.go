package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"salonmarket-backend/repository"
	"salonmarket-backend/services"
	"salonmarket-backend/utils"
)

// parseID reads a uuid path parameter, answering 400 when it is malformed.
func parseID(c *gin.Context, param, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+what+" ID format")
		return uuid.Nil, false
	}
	return id, true
}

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := utils.CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
	}
	return id, ok
}

// respondError maps store and core errors to HTTP statuses. Unexpected errors are logged
// and reported as a generic 500.
func respondError(c *gin.Context, logger *zap.Logger, err error, notFound, action string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, notFound)
	case errors.Is(err, repository.ErrConflict):
		utils.RespondWithError(c, http.StatusConflict, "Already exists")
	case errors.Is(err, repository.ErrSlotTaken):
		utils.RespondWithError(c, http.StatusConflict, "The requested time is no longer available")
	case errors.Is(err, repository.ErrOutsideOpeningHours):
		utils.RespondWithError(c, http.StatusUnprocessableEntity, "The requested time is outside opening hours")
	case errors.Is(err, services.ErrInvalidInput):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		logger.Error("failed to "+action, zap.Error(err), zap.String("path", c.FullPath()))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to "+action)
	}
}
