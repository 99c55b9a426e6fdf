package handler

import (
	"net/http"

	service "compliance-tracking-backend/internal/services/tracking"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TrackingHandler struct {
	service *service.Service
}

func NewTrackingHandler(s *service.Service) *TrackingHandler {
	return &TrackingHandler{service: s}
}

// Complete marks one tracking entry done. Re-completing an already
// completed entry returns it unchanged.
func (h *TrackingHandler) Complete(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tracking entry ID"})
		return
	}

	entry, err := h.service.Complete(entryID)
	if err != nil {
		respondError(c, "complete tracking entry", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "entry completed", "entry": entry})
}
