package config

import (
	"testing"

	"compliance-tracking-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestSeedObligationsOnlyFillsEmptyCatalog(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Obligation{}))

	SeedObligations(db)
	var cnt int64
	require.NoError(t, db.Model(&models.Obligation{}).Count(&cnt).Error)
	assert.Equal(t, int64(len(defaultObligations)), cnt)

	// Running again must not duplicate the catalog.
	SeedObligations(db)
	require.NoError(t, db.Model(&models.Obligation{}).Count(&cnt).Error)
	assert.Equal(t, int64(len(defaultObligations)), cnt)
}
