package repository

import (
	"errors"

	"compliance-tracking-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Expose DB if needed
func (r *CompanyRepository) DB() *gorm.DB {
	return r.db
}

// ListByName returns all companies ordered by name ascending.
func (r *CompanyRepository) ListByName() ([]models.Company, error) {
	var companies []models.Company
	err := r.db.Order("name ASC").Find(&companies).Error
	return companies, err
}

// GetByID fetch a single company by ID
func (r *CompanyRepository) GetByID(id uuid.UUID) (*models.Company, error) {
	var company models.Company
	err := r.db.First(&company, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// FindByTaxID looks a company up by its normalized tax id. Returns
// nil without error when no company matches.
func (r *CompanyRepository) FindByTaxID(taxID string) (*models.Company, error) {
	var company models.Company
	err := r.db.First(&company, "tax_id = ?", taxID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}
