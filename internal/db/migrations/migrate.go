// Package db contains the versioned data migrations that run after
// AutoMigrate on startup. Each migration must be idempotent so a restart
// mid-migration is safe.
package db

import (
	"fmt"

	"gorm.io/gorm"
)

type migration struct {
	version string
	run     func(db *gorm.DB) error
}

// Migrations run in order; append new entries at the end.
var migrations = []migration{
	{"v1.1.0", V1_1_0_BackfillDocumentVersion},
	{"v1.2.0", V1_2_0_AddSettingsDocumentsUpdatedAtIndex},
}

// MigrateDatabase applies all data migrations in order.
func MigrateDatabase(db *gorm.DB) error {
	for _, m := range migrations {
		if err := m.run(db); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.version, err)
		}
	}
	return nil
}
