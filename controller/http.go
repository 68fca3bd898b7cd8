package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/sportmeet/api/entity"
)

// respondError translates service errors into HTTP replies. Business-rule
// conflicts stay 400 with their own messages so clients can branch on them;
// anything unrecognized is a 500 with the detail kept out of the response.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrValidation),
		errors.Is(err, entity.ErrEmailTaken),
		errors.Is(err, entity.ErrInvalidCredentials),
		errors.Is(err, entity.ErrAlreadyJoined),
		errors.Is(err, entity.ErrEventFull),
		errors.Is(err, entity.ErrNotJoined),
		errors.Is(err, entity.ErrOrganizerCannotLeave):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, entity.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	case errors.Is(err, entity.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case errors.Is(err, entity.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}

func bindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
}
