package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"compliance-tracking-backend/internal/apperrors"

	"github.com/gin-gonic/gin"
)

// respondError logs the failure with its operation and maps the error
// class to a status code. Unclassified errors are storage failures.
func respondError(c *gin.Context, op string, err error) {
	log.Printf("%s: %v", op, err)
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// periodOrNow defaults a missing month/year pair to the current
// wall-clock period, matching how assignment edits behave when the
// caller does not name a period.
func periodOrNow(month, year int) (int, int) {
	if month == 0 && year == 0 {
		now := time.Now()
		return int(now.Month()), now.Year()
	}
	return month, year
}
