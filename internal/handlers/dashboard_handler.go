package handler

import (
	"net/http"
	"strconv"

	service "compliance-tracking-backend/internal/services/tracking"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service *service.Service
}

func NewDashboardHandler(s *service.Service) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// ListObligations returns the catalog, ordered by category then name.
func (h *DashboardHandler) ListObligations(c *gin.Context) {
	obligations, err := h.service.ListObligations()
	if err != nil {
		respondError(c, "list obligations", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"obligations": obligations})
}

// GetDashboard builds the month view: companies in name order, each
// with its tracking rows and those rows grouped by category. The
// grouping is computed here per request, never stored.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	month := queryInt(c, "month")
	year := queryInt(c, "year")
	if month <= 0 || year <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month and year are required"})
		return
	}

	rows, err := h.service.BuildDashboard(month, year)
	if err != nil {
		respondError(c, "build dashboard", err)
		return
	}

	items := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		items = append(items, gin.H{
			"company":    row.Company,
			"entries":    row.Entries,
			"categories": service.GroupByCategory(row.Entries),
		})
	}
	c.JSON(http.StatusOK, gin.H{"month": month, "year": year, "companies": items})
}

func queryInt(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}
