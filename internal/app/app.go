// Package app provides the main application logic and lifecycle management.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"farmgate/internal/db"
	dbmigrations "farmgate/internal/db/migrations"
	"farmgate/internal/httpclient"
	"farmgate/internal/i18n"
	"farmgate/internal/models"
	"farmgate/internal/services"
	"farmgate/internal/store"
	"farmgate/internal/types"
	"farmgate/internal/version"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.uber.org/dig"
	"gorm.io/gorm"
)

// App holds all services and manages the application lifecycle.
type App struct {
	engine            *gin.Engine
	configManager     types.ConfigManager
	settingsService   *services.SettingsService
	authService       *services.AuthService
	httpClientManager *httpclient.HTTPClientManager
	storage           store.Store
	db                *gorm.DB
	httpServer        *http.Server
}

// AppParams defines the dependencies for the App.
type AppParams struct {
	dig.In
	Engine            *gin.Engine
	ConfigManager     types.ConfigManager
	SettingsService   *services.SettingsService
	AuthService       *services.AuthService
	HTTPClientManager *httpclient.HTTPClientManager
	Storage           store.Store
	DB                *gorm.DB
}

// NewApp is the constructor for App, with dependencies injected by dig.
func NewApp(params AppParams) *App {
	return &App{
		engine:            params.Engine,
		configManager:     params.ConfigManager,
		settingsService:   params.SettingsService,
		authService:       params.AuthService,
		httpClientManager: params.HTTPClientManager,
		storage:           params.Storage,
		db:                params.DB,
	}
}

// Start runs the application, it is a non-blocking call.
func (a *App) Start() error {
	// Initialize i18n
	if err := i18n.Init(); err != nil {
		return fmt.Errorf("failed to initialize i18n: %w", err)
	}
	logrus.Info("i18n initialized successfully.")

	// Database migration
	if err := a.db.AutoMigrate(
		&models.SettingsDocument{},
		&models.SystemSetting{},
	); err != nil {
		return fmt.Errorf("database auto-migration failed: %w", err)
	}
	if err := dbmigrations.MigrateDatabase(a.db); err != nil {
		return fmt.Errorf("database data migration failed: %w", err)
	}
	logrus.Info("Database auto-migration completed.")

	// Seed the settings row so the first GET after install sees a bare document
	if err := a.settingsService.EnsureDocument(context.Background()); err != nil {
		return fmt.Errorf("failed to initialize settings document: %w", err)
	}

	// Hash the operator key into the database so login can verify it
	if err := a.authService.EnsureOperatorKeyHash(context.Background()); err != nil {
		return fmt.Errorf("failed to initialize operator key: %w", err)
	}
	logrus.Info("Settings document and operator key initialized in DB.")

	// Display configuration and start the HTTP server
	a.configManager.DisplayServerConfig()

	serverConfig := a.configManager.GetEffectiveServerConfig()
	a.httpServer = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", serverConfig.Host, serverConfig.Port),
		Handler:        a.engine,
		ReadTimeout:    time.Duration(serverConfig.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(serverConfig.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(serverConfig.IdleTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logrus.Infof("FarmGate settings server started successfully on Version: %s", version.Version)
		logrus.Infof("Server address: http://%s:%d", serverConfig.Host, serverConfig.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server startup failed: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the application.
func (a *App) Stop(ctx context.Context) {
	logrus.Info("Shutting down server...")

	httpShutdownStart := time.Now()
	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			logrus.Debug("HTTP server graceful shutdown timed out, forcing remaining connections to close.")
			if closeErr := a.httpServer.Close(); closeErr != nil {
				logrus.Errorf("Error forcing HTTP server to close: %v", closeErr)
			}
		}
		logrus.Infof("HTTP server has been shut down. (took %v)", time.Since(httpShutdownStart))
	}

	// Close idle HTTP connections for all managed clients to free resources
	if a.httpClientManager != nil {
		a.httpClientManager.CloseIdleConnections()
	}

	if a.storage != nil {
		if err := a.storage.Close(); err != nil {
			logrus.Errorf("Error closing storage: %v", err)
		}
	}

	// The read-only pool is a distinct connection only under SQLite
	if db.ReadDB != nil && db.ReadDB != a.db {
		closeDBConnection(db.ReadDB, "Read database")
	}
	closeDBConnection(a.db, "Main database")

	logrus.Info("Server exited gracefully")
}

// closeDBConnection closes a GORM connection pool with a bounded wait so a
// stuck connection cannot hang shutdown.
func closeDBConnection(gormDB *gorm.DB, name string) {
	if gormDB == nil {
		return
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logrus.Errorf("Error getting sql.DB for %s: %v", name, err)
		return
	}

	// Drop idle connections immediately so Close has less to wait for
	sqlDB.SetMaxIdleConns(0)
	sqlDB.SetConnMaxIdleTime(0)
	sqlDB.SetConnMaxLifetime(0)

	done := make(chan error, 1)
	go func() {
		done <- sqlDB.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			logrus.Errorf("[%s] Error closing connection: %v", name, err)
		} else {
			logrus.Debugf("[%s] Connection closed successfully.", name)
		}
	case <-time.After(1 * time.Second):
		logrus.Warnf("[%s] Connection close timed out after 1s, proceeding anyway", name)
	}
}
