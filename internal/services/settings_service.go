// Package services contains the domain services behind the settings API.
package services

import (
	"context"
	"fmt"

	app_errors "farmgate/internal/errors"
	"farmgate/internal/models"
	"farmgate/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// SettingsCacheKey is the store key holding the current raw document.
	SettingsCacheKey = "farmgate:settings:doc"

	// SettingsChangeChannel is the pub/sub channel carrying change
	// notifications after a successful save. The payload is a JSON object
	// with the new version.
	SettingsChangeChannel = "farmgate:settings:changed"
)

// emptyDocument is the stored document of a fresh installation. The
// storefront merges it into full defaults.
const emptyDocument = "{}"

// SettingsService owns the persisted settings document: the single source
// of truth the storefront fetches and the admin panel replaces.
type SettingsService struct {
	db    *gorm.DB
	store store.Store
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(db *gorm.DB, s store.Store) *SettingsService {
	return &SettingsService{
		db:    db,
		store: s,
	}
}

// EnsureDocument seeds the singleton settings row on first startup.
func (s *SettingsService) EnsureDocument(ctx context.Context) error {
	row := models.SettingsDocument{
		DocumentKey: models.DefaultDocumentKey,
		Doc:         datatypes.JSON(emptyDocument),
		Version:     1,
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "document_key"}},
			DoNothing: true,
		}).
		Create(&row)
	if result.Error != nil {
		return fmt.Errorf("failed to seed settings document: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		logrus.Info("Seeded empty settings document")
	}
	return nil
}

// GetDocument returns the raw settings document and its version. The cache
// is consulted first; on a miss the database row is loaded and re-cached.
func (s *SettingsService) GetDocument(ctx context.Context) ([]byte, int64, error) {
	if cached, err := s.store.Get(SettingsCacheKey); err == nil {
		if version := gjson.GetBytes(cached, "version").Int(); version > 0 {
			return cached, version, nil
		}
	}

	doc, version, err := s.loadDocument(ctx)
	if err != nil {
		return nil, 0, err
	}

	if err := s.store.Set(SettingsCacheKey, doc, 0); err != nil {
		logrus.WithError(err).Warn("Failed to cache settings document")
	}

	return doc, version, nil
}

// loadDocument reads the document row and stamps the version into the JSON.
func (s *SettingsService) loadDocument(ctx context.Context) ([]byte, int64, error) {
	var row models.SettingsDocument
	err := s.db.WithContext(ctx).
		Where("document_key = ?", models.DefaultDocumentKey).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, 0, app_errors.ErrResourceNotFound
		}
		return nil, 0, fmt.Errorf("failed to load settings document: %w", err)
	}

	doc, err := sjson.SetBytes([]byte(row.Doc), "version", row.Version)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to stamp settings version: %w", err)
	}

	return doc, row.Version, nil
}

// SaveDocument replaces the stored document with the given raw JSON object
// and returns the new version. A non-zero expectedVersion enables the
// optimistic-concurrency check: the update only applies when the stored
// version still matches, otherwise ErrVersionConflict is returned.
//
// The caller is responsible for sanitizing the payload; this layer stores
// it verbatim apart from the version stamp.
func (s *SettingsService) SaveDocument(ctx context.Context, doc []byte, expectedVersion int64) (int64, error) {
	if !gjson.ValidBytes(doc) || !gjson.ParseBytes(doc).IsObject() {
		return 0, app_errors.ErrInvalidJSON
	}

	// A client-supplied version field is meaningless on write; the stored
	// value is always the server's.
	cleaned, err := sjson.DeleteBytes(doc, "version")
	if err != nil {
		return 0, fmt.Errorf("failed to normalize settings payload: %w", err)
	}

	var newVersion int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.SettingsDocument
		if err := tx.Where("document_key = ?", models.DefaultDocumentKey).
			First(&row).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return app_errors.ErrResourceNotFound
			}
			return fmt.Errorf("failed to load settings document: %w", err)
		}

		if expectedVersion > 0 && row.Version != expectedVersion {
			return app_errors.ErrVersionConflict
		}

		// Guarded update: the version predicate makes the replace a
		// compare-and-swap, so a concurrent save loses cleanly instead of
		// being silently overwritten.
		newVersion = row.Version + 1
		result := tx.Model(&models.SettingsDocument{}).
			Where("id = ? AND version = ?", row.ID, row.Version).
			Updates(map[string]any{
				"doc":     datatypes.JSON(cleaned),
				"version": newVersion,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update settings document: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return app_errors.ErrVersionConflict
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.afterSave(cleaned, newVersion)
	return newVersion, nil
}

// ResetDocument replaces the stored document with the empty document, so
// the storefront falls back to full defaults.
func (s *SettingsService) ResetDocument(ctx context.Context) (int64, error) {
	return s.SaveDocument(ctx, []byte(emptyDocument), 0)
}

// afterSave refreshes the cache and fans the change out to subscribers.
func (s *SettingsService) afterSave(doc []byte, version int64) {
	stamped, err := sjson.SetBytes(doc, "version", version)
	if err != nil {
		logrus.WithError(err).Warn("Failed to stamp version into cached document")
		stamped = doc
	}

	if err := s.store.Set(SettingsCacheKey, stamped, 0); err != nil {
		logrus.WithError(err).Warn("Failed to refresh settings cache")
	}

	payload, _ := sjson.SetBytes([]byte(`{}`), "version", version)
	if err := s.store.Publish(SettingsChangeChannel, payload); err != nil {
		logrus.WithError(err).Warn("Failed to publish settings change notification")
	}

	logrus.WithField("version", version).Info("Settings document saved")
}
