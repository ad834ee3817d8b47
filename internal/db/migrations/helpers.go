package db

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// indexExists checks for an index with dialect-specific catalog queries.
// Returns false when the check fails or the dialect is unknown.
func indexExists(db *gorm.DB, dialectorName, tableName, indexName string) bool {
	var count int64
	var err error

	switch dialectorName {
	case "mysql":
		err = db.Raw(`
			SELECT COUNT(*)
			FROM information_schema.STATISTICS
			WHERE TABLE_SCHEMA = DATABASE()
			AND TABLE_NAME = ?
			AND INDEX_NAME = ?
		`, tableName, indexName).Scan(&count).Error
	case "sqlite":
		err = db.Raw(`
			SELECT COUNT(*) FROM sqlite_master
			WHERE type = 'index' AND name = ?
		`, indexName).Scan(&count).Error
	case "postgres":
		err = db.Raw(`
			SELECT COUNT(*) FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, tableName, indexName).Scan(&count).Error
	default:
		return false
	}

	if err != nil {
		logrus.WithError(err).Warnf("Failed to check if index %s exists", indexName)
		return false
	}

	return count > 0
}

// createIndexIfNotExists creates an index when absent. It tries
// CREATE INDEX IF NOT EXISTS first and falls back to a catalog check for
// dialects that reject that syntax.
func createIndexIfNotExists(db *gorm.DB, tableName, indexName, columns string) error {
	if db.Migrator().HasIndex(tableName, indexName) {
		return nil
	}

	createSQL := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s(%s)", indexName, tableName, columns)
	if err := db.Exec(createSQL).Error; err != nil {
		if indexExists(db, db.Dialector.Name(), tableName, indexName) {
			return nil
		}

		createSQL = fmt.Sprintf("CREATE INDEX %s ON %s(%s)", indexName, tableName, columns)
		if createErr := db.Exec(createSQL).Error; createErr != nil {
			logrus.WithError(createErr).Errorf("Failed to create %s index", indexName)
			return createErr
		}
	}

	logrus.Infof("Added %s index", indexName)
	return nil
}
