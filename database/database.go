package database

import (
	"gorm.io/gorm"
)

type Database struct {
	projectRepo *ProjectRepo
}

// New initializes a new Database struct with each repository using a shared
// GORM database instance. The handle is acquired once in main and passed
// down; there is no lazily-connected singleton anywhere.
func New(db *gorm.DB) Database {
	return Database{
		projectRepo: NewProjectRepo(db),
	}
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}
