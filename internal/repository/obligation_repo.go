package repository

import (
	"compliance-tracking-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ObligationRepository struct {
	db *gorm.DB
}

func NewObligationRepository(db *gorm.DB) *ObligationRepository {
	return &ObligationRepository{db: db}
}

// List returns the whole catalog ordered by category, then name.
func (r *ObligationRepository) List() ([]models.Obligation, error) {
	var obligations []models.Obligation
	err := r.db.Order("category ASC, name ASC").Find(&obligations).Error
	return obligations, err
}

// CountByIDs counts how many of the given ids exist in the catalog.
func (r *ObligationRepository) CountByIDs(ids []uuid.UUID) (int64, error) {
	var cnt int64
	err := r.db.Model(&models.Obligation{}).Where("id IN ?", ids).Count(&cnt).Error
	return cnt, err
}
