package models

import (
	"time"

	"gorm.io/datatypes"
)

// SettingsDocument corresponds to the settings_documents table. The service
// keeps exactly one row (DocumentKey "site") holding the raw partial
// settings JSON as saved by the admin panel. Version increases by one on
// every successful replace and backs the optimistic-concurrency check.
type SettingsDocument struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	DocumentKey string         `gorm:"type:varchar(64);not null;unique" json:"document_key"`
	Doc         datatypes.JSON `gorm:"type:json;not null" json:"doc"`
	Version     int64          `gorm:"not null;default:0" json:"version"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// DefaultDocumentKey is the key of the singleton storefront settings row.
const DefaultDocumentKey = "site"

// SystemSetting corresponds to the system_settings table; service-level
// key-value state such as the operator key hash.
type SystemSetting struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SettingKey   string    `gorm:"type:varchar(255);not null;unique" json:"setting_key"`
	SettingValue string    `gorm:"type:text;not null" json:"setting_value"`
	Description  string    `gorm:"type:varchar(512)" json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
