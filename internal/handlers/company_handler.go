package handler

import (
	"net/http"

	service "compliance-tracking-backend/internal/services/tracking"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CompanyHandler struct {
	service *service.Service
}

func NewCompanyHandler(s *service.Service) *CompanyHandler {
	return &CompanyHandler{service: s}
}

type companyPayload struct {
	Name          string   `json:"name"`
	TaxID         string   `json:"tax_id"`
	ObligationIDs []string `json:"obligation_ids"`
	Month         int      `json:"month"` // optional, defaults to current
	Year          int      `json:"year"`  // optional, defaults to current
}

func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.service.ListCompanies()
	if err != nil {
		respondError(c, "list companies", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var payload companyPayload
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	obligationIDs, ok := parseUUIDs(c, payload.ObligationIDs)
	if !ok {
		return
	}
	month, year := periodOrNow(payload.Month, payload.Year)

	company, err := h.service.CreateCompany(payload.Name, payload.TaxID, obligationIDs, month, year)
	if err != nil {
		respondError(c, "create company", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "company registered", "company": company})
}

func (h *CompanyHandler) Edit(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID"})
		return
	}

	var payload companyPayload
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	obligationIDs, ok := parseUUIDs(c, payload.ObligationIDs)
	if !ok {
		return
	}
	month, year := periodOrNow(payload.Month, payload.Year)

	company, err := h.service.EditCompany(companyID, payload.Name, payload.TaxID, obligationIDs, month, year)
	if err != nil {
		respondError(c, "edit company", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "company updated", "company": company})
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID"})
		return
	}

	if err := h.service.DeleteCompany(companyID); err != nil {
		respondError(c, "delete company", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "company deleted"})
}

// ListAssignments returns the obligation ids the company tracks for
// the requested period (current period when none is given).
func (h *CompanyHandler) ListAssignments(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID"})
		return
	}

	month, year := periodOrNow(queryInt(c, "month"), queryInt(c, "year"))

	ids, err := h.service.CurrentAssignments(companyID, month, year)
	if err != nil {
		respondError(c, "list assignments", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"obligation_ids": ids})
}

func parseUUIDs(c *gin.Context, raw []string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid obligation ID"})
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
