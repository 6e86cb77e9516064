// Package testdb provides an in-memory database for tests. The pure-Go
// sqlite driver keeps the suite self-contained; the single-connection pool
// serializes concurrent writers the way sqlite expects.
package testdb

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/velardesign/portfolio-backend/models"
)

// New opens a fresh in-memory store with the project schema migrated.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Project{}))

	return db
}

// SeedProject inserts a project and returns it with its store-assigned
// fields populated.
func SeedProject(t *testing.T, db *gorm.DB, project models.Project) models.Project {
	t.Helper()
	require.NoError(t, db.Create(&project).Error)
	return project
}
