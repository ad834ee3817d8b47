package db

import (
	"gorm.io/gorm"
)

// V1_2_0_AddSettingsDocumentsUpdatedAtIndex adds an updated_at index to
// settings_documents. Export filenames and audit queries order by the last
// change time.
func V1_2_0_AddSettingsDocumentsUpdatedAtIndex(db *gorm.DB) error {
	return createIndexIfNotExists(db, "settings_documents", "idx_settings_documents_updated_at", "updated_at")
}
