package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/carlosintrieri/AV3/internal/production"
	"github.com/carlosintrieri/AV3/internal/repository"
	"github.com/carlosintrieri/AV3/internal/services"
)

// respondError maps the error taxonomy onto HTTP statuses: business-rule
// violations are 400, queue-state violations 403, missing rows 404 and
// anything else an opaque 500.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, production.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": production.ErrProjectNotFound.Error()})
	case errors.Is(err, production.ErrNotEditable):
		c.JSON(http.StatusForbidden, gin.H{"message": production.ErrNotEditable.Error()})
	case errors.Is(err, production.ErrAlreadyComplete):
		c.JSON(http.StatusBadRequest, gin.H{"message": production.ErrAlreadyComplete.Error()})
	case errors.Is(err, production.ErrStagesIncomplete):
		c.JSON(http.StatusBadRequest, gin.H{"message": production.ErrStagesIncomplete.Error()})
	case errors.Is(err, services.ErrImageTooLarge), errors.Is(err, services.ErrUnsupportedImage):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": fallback})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": fallback, "error": err.Error()})
	}
}

// parseDate accepts the date-only format the frontend sends, falling back
// to RFC 3339.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
