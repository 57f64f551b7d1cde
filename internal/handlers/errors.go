package handlers

import (
	"errors"
	"net/http"

	"github.com/alimgiray/taskscope/internal/models"
	"github.com/alimgiray/taskscope/internal/services"
	"github.com/alimgiray/taskscope/pkg/logger"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto the API error taxonomy: validation
// failures and duplicate conflicts are 400, scope/reference failures are 404,
// anything outside the taxonomy is logged and returned as a generic 500.
func respondError(c *gin.Context, err error) {
	var validationErrs models.ValidationErrors
	var validationErr *models.ValidationError

	switch {
	case errors.As(err, &validationErrs), errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicateProject):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrAssigneeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.WithError(err).WithField("path", c.FullPath()).Error("unexpected store error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
