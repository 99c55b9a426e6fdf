package tracking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"compliance-tracking-backend/internal/apperrors"
	"compliance-tracking-backend/internal/models"
	"compliance-tracking-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	companyRepo    *repository.CompanyRepository
	obligationRepo *repository.ObligationRepository
	trackingRepo   *repository.TrackingRepository
	db             *gorm.DB
}

func NewService(
	companyRepo *repository.CompanyRepository,
	obligationRepo *repository.ObligationRepository,
	trackingRepo *repository.TrackingRepository,
) *Service {
	return &Service{
		companyRepo:    companyRepo,
		obligationRepo: obligationRepo,
		trackingRepo:   trackingRepo,
		db:             companyRepo.DB(), // assuming repository exposes DB connection
	}
}

// DashboardRow is one company with its tracking rows for the period.
type DashboardRow struct {
	Company models.Company         `json:"company"`
	Entries []models.TrackingEntry `json:"entries"`
}

// ListObligations returns the catalog ordered by category then name.
func (s *Service) ListObligations() ([]models.Obligation, error) {
	return s.obligationRepo.List()
}

// ListCompanies returns all companies ordered by name.
func (s *Service) ListCompanies() ([]models.Company, error) {
	return s.companyRepo.ListByName()
}

// CreateCompany registers a company and opens pending tracking rows
// for every assigned obligation in the given period, atomically.
func (s *Service) CreateCompany(name, taxID string, obligationIDs []uuid.UUID, month, year int) (*models.Company, error) {
	if name == "" || taxID == "" {
		return nil, fmt.Errorf("%w: name and tax id are required", apperrors.ErrValidation)
	}
	if len(obligationIDs) == 0 {
		return nil, fmt.Errorf("%w: a company must track at least one obligation", apperrors.ErrValidation)
	}
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	if err := s.checkObligationsExist(obligationIDs); err != nil {
		return nil, err
	}

	normalized := normalizeTaxID(taxID)
	if normalized == "" {
		return nil, fmt.Errorf("%w: tax id has no digits", apperrors.ErrValidation)
	}

	company := &models.Company{
		ID:        uuid.New(),
		Name:      name,
		TaxID:     normalized,
		CreatedAt: time.Now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := findByTaxID(tx, normalized)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: tax id %s", apperrors.ErrConflict, normalized)
		}
		if err := tx.Create(company).Error; err != nil {
			return err
		}
		// New company tracks nothing yet, the whole desired set is an addition.
		return applyAssignmentDiff(tx, company.ID, month, year, obligationIDs, nil)
	})
	if err != nil {
		return nil, err
	}
	return company, nil
}

// EditCompany updates the company fields and reconciles its tracked
// obligations for the period against the desired set. Field update,
// additions and removals commit together or not at all.
func (s *Service) EditCompany(companyID uuid.UUID, name, taxID string, obligationIDs []uuid.UUID, month, year int) (*models.Company, error) {
	if name == "" || taxID == "" {
		return nil, fmt.Errorf("%w: name and tax id are required", apperrors.ErrValidation)
	}
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	if len(obligationIDs) > 0 {
		if err := s.checkObligationsExist(obligationIDs); err != nil {
			return nil, err
		}
	}

	normalized := normalizeTaxID(taxID)
	if normalized == "" {
		return nil, fmt.Errorf("%w: tax id has no digits", apperrors.ErrValidation)
	}

	var company models.Company
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&company, "id = ?", companyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: company %s", apperrors.ErrNotFound, companyID)
			}
			return err
		}

		existing, err := findByTaxID(tx, normalized)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != companyID {
			return fmt.Errorf("%w: tax id %s", apperrors.ErrConflict, normalized)
		}

		company.Name = name
		company.TaxID = normalized
		if err := tx.Save(&company).Error; err != nil {
			return err
		}

		var current []uuid.UUID
		if err := tx.Model(&models.TrackingEntry{}).
			Where("company_id = ? AND month = ? AND year = ?", companyID, month, year).
			Pluck("obligation_id", &current).Error; err != nil {
			return err
		}
		return applyAssignmentDiff(tx, companyID, month, year, obligationIDs, current)
	})
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// DeleteCompany removes the company and every tracking row it owns.
func (s *Service) DeleteCompany(companyID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var company models.Company
		if err := tx.First(&company, "id = ?", companyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: company %s", apperrors.ErrNotFound, companyID)
			}
			return err
		}
		if err := tx.Where("company_id = ?", companyID).Delete(&models.TrackingEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&company).Error
	})
}

// CurrentAssignments returns the obligation ids tracked for the
// company in the given period.
func (s *Service) CurrentAssignments(companyID uuid.UUID, month, year int) ([]uuid.UUID, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	if _, err := s.companyRepo.GetByID(companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: company %s", apperrors.ErrNotFound, companyID)
		}
		return nil, err
	}
	ids, err := s.trackingRepo.ObligationIDs(companyID, month, year)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return ids, nil
}

// BuildDashboard assembles the period view: every company in name
// order with the tracking rows that belong to it. Companies without
// rows still show up with an empty list.
func (s *Service) BuildDashboard(month, year int) ([]DashboardRow, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}

	companies, err := s.companyRepo.ListByName()
	if err != nil {
		return nil, err
	}
	entries, err := s.trackingRepo.ListForPeriod(month, year)
	if err != nil {
		return nil, err
	}

	byCompany := make(map[uuid.UUID][]models.TrackingEntry)
	for _, e := range entries {
		byCompany[e.CompanyID] = append(byCompany[e.CompanyID], e)
	}

	rows := make([]DashboardRow, 0, len(companies))
	for _, c := range companies {
		rowEntries := byCompany[c.ID]
		if rowEntries == nil {
			rowEntries = []models.TrackingEntry{}
		}
		rows = append(rows, DashboardRow{Company: c, Entries: rowEntries})
	}
	return rows, nil
}

// Complete marks a tracking entry completed, stamping the time once.
// Completed is terminal: a second call returns the entry untouched.
func (s *Service) Complete(entryID uuid.UUID) (*models.TrackingEntry, error) {
	var entry models.TrackingEntry
	if err := s.db.Preload("Obligation").First(&entry, "id = ?", entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: tracking entry %s", apperrors.ErrNotFound, entryID)
		}
		return nil, err
	}
	if entry.Status == models.StatusCompleted {
		return &entry, nil
	}
	now := time.Now()
	entry.Status = models.StatusCompleted
	entry.CompletedAt = &now
	if err := s.db.Save(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// GroupByCategory buckets tracking rows by their obligation category.
// Derived view only, never persisted.
func GroupByCategory(entries []models.TrackingEntry) map[string][]models.TrackingEntry {
	grouped := make(map[string][]models.TrackingEntry)
	for _, e := range entries {
		grouped[e.Obligation.Category] = append(grouped[e.Obligation.Category], e)
	}
	return grouped
}

// applyAssignmentDiff inserts pending rows for desired obligations not
// yet tracked and deletes rows no longer desired, within the caller's
// transaction.
func applyAssignmentDiff(tx *gorm.DB, companyID uuid.UUID, month, year int, desired, current []uuid.UUID) error {
	toAdd, toRemove := diffAssignments(current, desired)

	for _, obligationID := range toAdd {
		entry := models.TrackingEntry{
			ID:           uuid.New(),
			CompanyID:    companyID,
			ObligationID: obligationID,
			Month:        month,
			Year:         year,
			Status:       models.StatusPending,
			CreatedAt:    time.Now(),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
	}

	if len(toRemove) > 0 {
		if err := tx.
			Where("company_id = ? AND month = ? AND year = ? AND obligation_id IN ?", companyID, month, year, toRemove).
			Delete(&models.TrackingEntry{}).Error; err != nil {
			return err
		}
	}
	return nil
}

// diffAssignments splits desired against current into additions and removals.
func diffAssignments(current, desired []uuid.UUID) (toAdd, toRemove []uuid.UUID) {
	currentSet := make(map[uuid.UUID]bool, len(current))
	for _, id := range current {
		currentSet[id] = true
	}
	desiredSet := make(map[uuid.UUID]bool, len(desired))
	for _, id := range desired {
		desiredSet[id] = true
	}

	for _, id := range desired {
		if !currentSet[id] {
			toAdd = append(toAdd, id)
		}
	}
	for _, id := range current {
		if !desiredSet[id] {
			toRemove = append(toRemove, id)
		}
	}
	return toAdd, toRemove
}

func (s *Service) checkObligationsExist(ids []uuid.UUID) error {
	unique := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		unique[id] = true
	}
	distinct := make([]uuid.UUID, 0, len(unique))
	for id := range unique {
		distinct = append(distinct, id)
	}
	cnt, err := s.obligationRepo.CountByIDs(distinct)
	if err != nil {
		return err
	}
	if cnt != int64(len(distinct)) {
		return fmt.Errorf("%w: unknown obligation id", apperrors.ErrValidation)
	}
	return nil
}

func findByTaxID(tx *gorm.DB, taxID string) (*models.Company, error) {
	var company models.Company
	err := tx.First(&company, "tax_id = ?", taxID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func validatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12", apperrors.ErrValidation)
	}
	if year <= 0 {
		return fmt.Errorf("%w: year must be positive", apperrors.ErrValidation)
	}
	return nil
}

// normalizeTaxID strips everything but digits, so "12.345.678/0001-99"
// and "12345678000199" collide on the unique index.
func normalizeTaxID(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
