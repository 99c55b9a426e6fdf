package repository

import (
	"compliance-tracking-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TrackingRepository struct {
	db *gorm.DB
}

func NewTrackingRepository(db *gorm.DB) *TrackingRepository {
	return &TrackingRepository{db: db}
}

// ListForPeriod returns every tracking row of the month with its
// obligation loaded, across all companies.
func (r *TrackingRepository) ListForPeriod(month, year int) ([]models.TrackingEntry, error) {
	var entries []models.TrackingEntry
	err := r.db.
		Preload("Obligation").
		Where("month = ? AND year = ?", month, year).
		Find(&entries).Error
	return entries, err
}

// ObligationIDs returns the obligation ids tracked for one company in
// the given period.
func (r *TrackingRepository) ObligationIDs(companyID uuid.UUID, month, year int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.TrackingEntry{}).
		Where("company_id = ? AND month = ? AND year = ?", companyID, month, year).
		Pluck("obligation_id", &ids).Error
	return ids, err
}

// GetByID fetch a single tracking entry by ID
func (r *TrackingRepository) GetByID(id uuid.UUID) (*models.TrackingEntry, error) {
	var entry models.TrackingEntry
	err := r.db.First(&entry, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
