package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"compliance-tracking-backend/internal/models"
	"compliance-tracking-backend/internal/routes"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Obligation{}, &models.Company{}, &models.TrackingEntry{}))

	r := gin.New()
	routes.RegisterRoutes(r, db)
	return r, db
}

func seedObligation(t *testing.T, db *gorm.DB, name, category string, dueDay int) models.Obligation {
	t.Helper()
	o := models.Obligation{ID: uuid.New(), Name: name, Category: category, DueDay: dueDay, CreatedAt: time.Now()}
	require.NoError(t, db.Create(&o).Error)
	return o
}

func performRequest(r http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func postJSON(r http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(payload)
	return performRequest(r, method, path, bytes.NewBuffer(raw))
}

type dashboardResponse struct {
	Month     int `json:"month"`
	Year      int `json:"year"`
	Companies []struct {
		Company models.Company                    `json:"company"`
		Entries []models.TrackingEntry            `json:"entries"`
		Grouped map[string][]models.TrackingEntry `json:"categories"`
	} `json:"companies"`
}

func TestCompanyAndDashboardFlow(t *testing.T) {
	r, db := setupTestServer(t)
	a := seedObligation(t, db, "DAS", "Category1", 20)
	b := seedObligation(t, db, "ISS", "Category2", 10)

	// Register Acme tracking both obligations for 6/2024.
	resp := postJSON(r, http.MethodPost, "/api/companies", gin.H{
		"name":           "Acme",
		"tax_id":         "11.222.333/0001-44",
		"obligation_ids": []string{a.ID.String(), b.ID.String()},
		"month":          6,
		"year":           2024,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var created struct {
		Company models.Company `json:"company"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.Equal(t, "11222333000144", created.Company.TaxID)

	// Dashboard shows one company with two pending entries in two categories.
	resp = performRequest(r, http.MethodGet, "/api/dashboard?month=6&year=2024", nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var dash dashboardResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &dash))
	require.Len(t, dash.Companies, 1)
	require.Len(t, dash.Companies[0].Entries, 2)
	assert.Len(t, dash.Companies[0].Grouped, 2)
	for _, e := range dash.Companies[0].Entries {
		assert.Equal(t, models.StatusPending, e.Status)
		assert.Nil(t, e.CompletedAt)
	}

	// Complete the entry for obligation A.
	var entryA models.TrackingEntry
	for _, e := range dash.Companies[0].Entries {
		if e.ObligationID == a.ID {
			entryA = e
		}
	}
	require.NotEqual(t, uuid.Nil, entryA.ID)

	resp = performRequest(r, http.MethodPatch, "/api/tracking/"+entryA.ID.String()+"/complete", nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = performRequest(r, http.MethodGet, "/api/dashboard?month=6&year=2024", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	dash = dashboardResponse{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &dash))
	for _, e := range dash.Companies[0].Entries {
		if e.ObligationID == a.ID {
			assert.Equal(t, models.StatusCompleted, e.Status)
			assert.NotNil(t, e.CompletedAt)
		} else {
			assert.Equal(t, models.StatusPending, e.Status)
		}
	}

	// Assignments for the period come back as plain ids.
	resp = performRequest(r, http.MethodGet, fmt.Sprintf("/api/companies/%s/obligations?month=6&year=2024", created.Company.ID), nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var assignments struct {
		ObligationIDs []uuid.UUID `json:"obligation_ids"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &assignments))
	assert.ElementsMatch(t, []uuid.UUID{a.ID, b.ID}, assignments.ObligationIDs)

	// Delete cascades: the dashboard loses the company and its rows.
	resp = performRequest(r, http.MethodDelete, "/api/companies/"+created.Company.ID.String(), nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = performRequest(r, http.MethodGet, "/api/dashboard?month=6&year=2024", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	dash = dashboardResponse{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &dash))
	assert.Empty(t, dash.Companies)
}

func TestCreateCompanyRejectsBadInput(t *testing.T) {
	r, db := setupTestServer(t)
	a := seedObligation(t, db, "DAS", "Federal", 20)

	// No obligations assigned.
	resp := postJSON(r, http.MethodPost, "/api/companies", gin.H{
		"name":           "Acme",
		"tax_id":         "11222333000144",
		"obligation_ids": []string{},
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	// Malformed obligation id.
	resp = postJSON(r, http.MethodPost, "/api/companies", gin.H{
		"name":           "Acme",
		"tax_id":         "11222333000144",
		"obligation_ids": []string{"not-a-uuid"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	// Duplicate tax id after normalization.
	resp = postJSON(r, http.MethodPost, "/api/companies", gin.H{
		"name":           "Acme",
		"tax_id":         "12.345.678/0001-99",
		"obligation_ids": []string{a.ID.String()},
		"month":          6,
		"year":           2024,
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = postJSON(r, http.MethodPost, "/api/companies", gin.H{
		"name":           "Other",
		"tax_id":         "12345678000199",
		"obligation_ids": []string{a.ID.String()},
		"month":          6,
		"year":           2024,
	})
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestDashboardRequiresPeriod(t *testing.T) {
	r, _ := setupTestServer(t)

	resp := performRequest(r, http.MethodGet, "/api/dashboard", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = performRequest(r, http.MethodGet, "/api/dashboard?month=6", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = performRequest(r, http.MethodGet, "/api/dashboard?month=0&year=2024", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestMissingEntitiesReturnNotFound(t *testing.T) {
	r, db := setupTestServer(t)
	a := seedObligation(t, db, "DAS", "Federal", 20)

	resp := postJSON(r, http.MethodPatch, "/api/companies/"+uuid.NewString(), gin.H{
		"name":           "Ghost",
		"tax_id":         "11222333000144",
		"obligation_ids": []string{a.ID.String()},
		"month":          6,
		"year":           2024,
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = performRequest(r, http.MethodDelete, "/api/companies/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = performRequest(r, http.MethodPatch, "/api/tracking/"+uuid.NewString()+"/complete", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	// Garbage ids are a caller mistake, not a missing entity.
	resp = performRequest(r, http.MethodPatch, "/api/tracking/garbage/complete", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestListObligationsOrderedByCategory(t *testing.T) {
	r, db := setupTestServer(t)
	seedObligation(t, db, "ISS", "Municipal", 10)
	seedObligation(t, db, "GIA", "Estadual", 20)
	seedObligation(t, db, "DCTFWeb", "Federal", 15)
	seedObligation(t, db, "DAS", "Federal", 20)

	resp := performRequest(r, http.MethodGet, "/api/obligations", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Obligations []models.Obligation `json:"obligations"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Obligations, 4)
	assert.Equal(t, "GIA", body.Obligations[0].Name)
	assert.Equal(t, "DAS", body.Obligations[1].Name)
	assert.Equal(t, "DCTFWeb", body.Obligations[2].Name)
	assert.Equal(t, "ISS", body.Obligations[3].Name)
}
