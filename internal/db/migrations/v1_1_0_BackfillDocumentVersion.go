package db

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// V1_1_0_BackfillDocumentVersion raises legacy settings rows to version 1.
// Version 0 is reserved for "no concurrency check" in save requests, so a
// stored document must never carry it.
func V1_1_0_BackfillDocumentVersion(db *gorm.DB) error {
	result := db.Exec("UPDATE settings_documents SET version = 1 WHERE version < 1")
	if result.Error != nil {
		logrus.WithError(result.Error).Error("Failed to backfill settings document versions")
		return result.Error
	}
	if result.RowsAffected > 0 {
		logrus.Infof("Migration v1.1.0: backfilled version on %d settings document(s)", result.RowsAffected)
	}
	return nil
}
