package handler

import (
	"context"
	"testing"

	"farmgate/internal/config"
	"farmgate/internal/models"
	"farmgate/internal/services"
	"farmgate/internal/store"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing (pure Go, no CGO)
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.SettingsDocument{},
		&models.SystemSetting{},
	)
	require.NoError(t, err)

	return db
}

// setupTestServer creates a test server with minimal dependencies
func setupTestServer(t *testing.T) *Server {
	t.Helper()

	db := setupTestDB(t)

	memStore := store.NewMemoryStore()
	t.Cleanup(func() { memStore.Close() })

	mockConfig := &config.MockConfig{
		AuthKeyValue: "test-auth-key-12345678",
	}

	settingsService := services.NewSettingsService(db, memStore)
	require.NoError(t, settingsService.EnsureDocument(context.Background()))

	authService := services.NewAuthService(db, mockConfig)
	require.NoError(t, authService.EnsureOperatorKeyHash(context.Background()))

	return NewServer(db, mockConfig, settingsService, authService)
}
