package db

import (
	"github.com/dcastellanos/paneltrack-backend/pkg/db/models"
	"gorm.io/gorm"
)

// AutoMigrate builds the schema with gorm's migrator. SQLite installs and
// in-memory test databases use this path; Postgres uses goose migrations.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.Panel{},
		&models.Client{},
		&models.Subscription{},
		&models.Payment{},
		&models.Project{},
		&models.WeeklyCut{},
	)
}
