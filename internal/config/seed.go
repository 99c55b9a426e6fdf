package config

import (
	"log"

	"compliance-tracking-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var defaultObligations = []models.Obligation{
	{Name: "DAS", Category: "Federal", DueDay: 20},
	{Name: "DCTFWeb", Category: "Federal", DueDay: 15},
	{Name: "EFD Contribuições", Category: "Federal", DueDay: 14},
	{Name: "GIA", Category: "Estadual", DueDay: 20},
	{Name: "ISS", Category: "Municipal", DueDay: 10},
	{Name: "FGTS", Category: "Trabalhista", DueDay: 7},
	{Name: "eSocial Folha", Category: "Trabalhista", DueDay: 15},
}

// SeedObligations fills the obligation catalog on an empty database.
// The catalog is administered out of band; this only gives a fresh
// install something to work with. Skips silently when rows exist.
func SeedObligations(db *gorm.DB) {
	var cnt int64
	if err := db.Model(&models.Obligation{}).Count(&cnt).Error; err != nil {
		log.Printf("seed warning (obligations count): %v", err)
		return
	}
	if cnt > 0 {
		return
	}
	for _, o := range defaultObligations {
		o.ID = uuid.New()
		if err := db.Create(&o).Error; err != nil {
			log.Printf("seed warning (obligation %s): %v", o.Name, err)
		}
	}
	log.Printf("seeded %d obligations", len(defaultObligations))
}
