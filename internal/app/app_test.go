package app

import (
	"context"
	"testing"
	"time"

	"farmgate/internal/config"
	"farmgate/internal/httpclient"
	"farmgate/internal/services"
	"farmgate/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestNewApp(t *testing.T) {
	db := openTestDB(t)
	memStore := store.NewMemoryStore()
	t.Cleanup(func() { memStore.Close() })
	mockConfig := &config.MockConfig{AuthKeyValue: "test-auth-key-12345678"}

	app := NewApp(AppParams{
		Engine:            gin.New(),
		ConfigManager:     mockConfig,
		SettingsService:   services.NewSettingsService(db, memStore),
		AuthService:       services.NewAuthService(db, mockConfig),
		HTTPClientManager: httpclient.NewHTTPClientManager(),
		Storage:           memStore,
		DB:                db,
	})

	assert.NotNil(t, app)
	assert.Same(t, db, app.db)
	assert.Same(t, mockConfig, app.configManager)
}

func TestStop_WithoutStart(t *testing.T) {
	db := openTestDB(t)
	memStore := store.NewMemoryStore()
	mockConfig := &config.MockConfig{AuthKeyValue: "test-auth-key-12345678"}

	app := NewApp(AppParams{
		Engine:            gin.New(),
		ConfigManager:     mockConfig,
		SettingsService:   services.NewSettingsService(db, memStore),
		AuthService:       services.NewAuthService(db, mockConfig),
		HTTPClientManager: httpclient.NewHTTPClientManager(),
		Storage:           memStore,
		DB:                db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	// Stop without a running HTTP server must not panic
	assert.NotPanics(t, func() {
		app.Stop(ctx)
	})
}

func TestCloseDBConnection_NilDB(t *testing.T) {
	// Should handle nil DB gracefully
	closeDBConnection(nil, "test")
}

func TestCloseDBConnection_ValidDB(t *testing.T) {
	db := openTestDB(t)

	done := make(chan struct{})
	go func() {
		closeDBConnection(db, "test")
		close(done)
	}()

	select {
	case <-done:
		// Success
	case <-time.After(5 * time.Second):
		t.Fatal("closeDBConnection timed out")
	}
}

func TestCloseDBConnection_ConnectionPoolStats(t *testing.T) {
	db := openTestDB(t)

	sqlDB, err := db.DB()
	require.NoError(t, err)

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	closeDBConnection(db, "test")

	stats := sqlDB.Stats()
	assert.Equal(t, 0, stats.OpenConnections)
}

func TestCloseDBConnection_MultipleClose(t *testing.T) {
	db := openTestDB(t)

	closeDBConnection(db, "test")

	// Second close should not panic
	closeDBConnection(db, "test")
}
