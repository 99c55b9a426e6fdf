package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// TrackingEntry is one monthly control row: did this company complete
// this obligation in this month/year. At most one row exists per
// (company, obligation, month, year).
type TrackingEntry struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID    uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_company_obligation_period;index" json:"company_id"`
	ObligationID uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_company_obligation_period" json:"obligation_id"`
	Month        int        `gorm:"uniqueIndex:idx_company_obligation_period" json:"month"`
	Year         int        `gorm:"uniqueIndex:idx_company_obligation_period" json:"year"`
	Status       string     `gorm:"index" json:"status"`
	CompletedAt  *time.Time `json:"completed_at"`
	CreatedAt    time.Time  `json:"created_at"`

	Obligation Obligation `gorm:"foreignKey:ObligationID" json:"obligation"`
}
