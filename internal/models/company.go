package models

import (
	"time"

	"github.com/google/uuid"
)

// Company is a client the office tracks obligations for.
// TaxID is stored normalized (digits only).
type Company struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"index" json:"name"`
	TaxID     string    `gorm:"uniqueIndex" json:"tax_id"`
	CreatedAt time.Time `json:"created_at"`
}
