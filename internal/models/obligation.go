package models

import (
	"time"

	"github.com/google/uuid"
)

// Obligation is reference data: a recurring compliance task type
// (e.g. a monthly tax filing). Seeded out of band, read-only here.
type Obligation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"index" json:"name"`
	Category  string    `gorm:"index" json:"category"`
	DueDay    int       `json:"due_day"`
	CreatedAt time.Time `json:"created_at"`
}
