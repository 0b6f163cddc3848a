package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ksuibraheem/arba-sub002/internal/models"
)

// respondError maps the core's typed errors onto HTTP status codes:
// validation 400, not found 404, invalid state 409, unbalanced entry 422.
func respondError(c *gin.Context, err error) {
	var (
		validationErr models.ValidationError
		notFoundErr   models.NotFoundError
		stateErr      models.InvalidStateError
		unbalancedErr models.UnbalancedEntryError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusConflict, gin.H{"error": stateErr.Error()})
	case errors.As(err, &unbalancedErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": unbalancedErr.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// parseUUID reads a path parameter as a UUID, writing a 400 response when it
// is malformed.
func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}
