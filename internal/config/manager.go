// Package config provides environment-driven static configuration.
package config

import (
	"fmt"
	"strings"

	"farmgate/internal/types"
	"farmgate/internal/utils"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Constants for configuration defaults
const (
	DefaultPort                    = 3001
	DefaultHost                    = "0.0.0.0"
	DefaultReadTimeout             = 300
	DefaultWriteTimeout            = 600
	DefaultIdleTimeout             = 120
	DefaultGracefulShutdownTimeout = 10
	MinGracefulShutdownTimeout     = 10
	DefaultMaxConcurrentRequests   = 100
	DefaultDatabaseDSN             = "./data/farmgate.db"
	DefaultUpstreamRequestTimeout  = 10
)

// Config holds the full static configuration loaded from the environment.
type Config struct {
	Server      types.ServerConfig      `json:"server"`
	Auth        types.AuthConfig        `json:"auth"`
	CORS        types.CORSConfig        `json:"cors"`
	Performance types.PerformanceConfig `json:"performance"`
	Log         types.LogConfig         `json:"log"`
	Database    types.DatabaseConfig    `json:"database"`
	RedisDSN    string                  `json:"redis_dsn"`
	Upstream    types.UpstreamConfig    `json:"upstream"`
	EnableGzip  bool                    `json:"enable_gzip"`
	DebugMode   bool                    `json:"debug_mode"`
}

// Manager implements types.ConfigManager on top of environment variables.
// Static configuration is read once at startup; ReloadConfig re-reads the
// environment, which tests use to exercise different configurations.
type Manager struct {
	config *Config
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	// A missing .env file is fine; the environment may be set by the runtime.
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables")
	}

	manager := &Manager{}
	if err := manager.ReloadConfig(); err != nil {
		return nil, err
	}

	return manager, nil
}

// ReloadConfig re-reads configuration from the environment and validates it.
func (m *Manager) ReloadConfig() error {
	config := &Config{
		Server: types.ServerConfig{
			Port:                    utils.ParseInteger(utils.GetEnvOrDefault("PORT", ""), DefaultPort),
			Host:                    utils.GetEnvOrDefault("HOST", DefaultHost),
			ReadTimeout:             utils.ParseInteger(utils.GetEnvOrDefault("SERVER_READ_TIMEOUT", ""), DefaultReadTimeout),
			WriteTimeout:            utils.ParseInteger(utils.GetEnvOrDefault("SERVER_WRITE_TIMEOUT", ""), DefaultWriteTimeout),
			IdleTimeout:             utils.ParseInteger(utils.GetEnvOrDefault("SERVER_IDLE_TIMEOUT", ""), DefaultIdleTimeout),
			GracefulShutdownTimeout: utils.ParseInteger(utils.GetEnvOrDefault("SERVER_GRACEFUL_SHUTDOWN_TIMEOUT", ""), DefaultGracefulShutdownTimeout),
		},
		Auth: types.AuthConfig{
			Key: utils.GetEnvOrDefault("AUTH_KEY", ""),
		},
		CORS: types.CORSConfig{
			Enabled:          utils.ParseBoolean(utils.GetEnvOrDefault("ENABLE_CORS", ""), false),
			AllowedOrigins:   utils.SplitAndTrim(utils.GetEnvOrDefault("ALLOWED_ORIGINS", ""), ","),
			AllowedMethods:   utils.SplitAndTrim(utils.GetEnvOrDefault("ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS"), ","),
			AllowedHeaders:   utils.SplitAndTrim(utils.GetEnvOrDefault("ALLOWED_HEADERS", "*"), ","),
			AllowCredentials: utils.ParseBoolean(utils.GetEnvOrDefault("ALLOW_CREDENTIALS", ""), false),
		},
		Performance: types.PerformanceConfig{
			MaxConcurrentRequests: utils.ParseInteger(utils.GetEnvOrDefault("MAX_CONCURRENT_REQUESTS", ""), DefaultMaxConcurrentRequests),
		},
		Log: types.LogConfig{
			Level:      utils.GetEnvOrDefault("LOG_LEVEL", "info"),
			Format:     utils.GetEnvOrDefault("LOG_FORMAT", "text"),
			EnableFile: utils.ParseBoolean(utils.GetEnvOrDefault("LOG_ENABLE_FILE", ""), false),
			FilePath:   utils.GetEnvOrDefault("LOG_FILE_PATH", "./data/logs/app.log"),
		},
		Database: types.DatabaseConfig{
			DSN: utils.GetEnvOrDefault("DATABASE_DSN", DefaultDatabaseDSN),
		},
		RedisDSN: utils.GetEnvOrDefault("REDIS_DSN", ""),
		Upstream: types.UpstreamConfig{
			BaseURL:        utils.GetEnvOrDefault("UPSTREAM_BASE_URL", ""),
			RequestTimeout: utils.ParseInteger(utils.GetEnvOrDefault("UPSTREAM_REQUEST_TIMEOUT", ""), DefaultUpstreamRequestTimeout),
		},
		EnableGzip: utils.ParseBoolean(utils.GetEnvOrDefault("ENABLE_GZIP", ""), true),
		DebugMode:  utils.ParseBoolean(utils.GetEnvOrDefault("DEBUG_MODE", ""), false),
	}

	if config.Server.GracefulShutdownTimeout < MinGracefulShutdownTimeout {
		config.Server.GracefulShutdownTimeout = MinGracefulShutdownTimeout
	}

	m.config = config
	return m.Validate()
}

// Validate checks the configuration for invalid or dangerous values.
func (m *Manager) Validate() error {
	var validationErrors []string

	if m.config.Server.Port < 1 || m.config.Server.Port > 65535 {
		validationErrors = append(validationErrors, fmt.Sprintf("port must be between 1 and 65535, got: %d", m.config.Server.Port))
	}

	if strings.TrimSpace(m.config.Auth.Key) == "" {
		validationErrors = append(validationErrors, "AUTH_KEY is required")
	}

	if m.config.Performance.MaxConcurrentRequests < 1 {
		validationErrors = append(validationErrors, "max concurrent requests cannot be less than 1")
	}

	if m.config.CORS.Enabled {
		if len(m.config.CORS.AllowedOrigins) == 0 {
			validationErrors = append(validationErrors, "ALLOWED_ORIGINS is required when CORS is enabled")
		} else {
			for _, origin := range m.config.CORS.AllowedOrigins {
				if origin == "*" {
					logrus.Warn("CORS allows all origins, this is not recommended for production")
					break
				}
			}
		}
	}

	if m.config.Upstream.RequestTimeout < 1 {
		validationErrors = append(validationErrors, "upstream request timeout cannot be less than 1 second")
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(validationErrors, "; "))
	}

	return nil
}

// GetAuthConfig returns the authentication configuration.
func (m *Manager) GetAuthConfig() types.AuthConfig {
	return m.config.Auth
}

// GetCORSConfig returns the CORS configuration.
func (m *Manager) GetCORSConfig() types.CORSConfig {
	return m.config.CORS
}

// GetPerformanceConfig returns the performance configuration.
func (m *Manager) GetPerformanceConfig() types.PerformanceConfig {
	return m.config.Performance
}

// GetLogConfig returns the logging configuration.
func (m *Manager) GetLogConfig() types.LogConfig {
	return m.config.Log
}

// GetDatabaseConfig returns the database configuration.
func (m *Manager) GetDatabaseConfig() types.DatabaseConfig {
	return m.config.Database
}

// GetEffectiveServerConfig returns the server configuration.
func (m *Manager) GetEffectiveServerConfig() types.ServerConfig {
	return m.config.Server
}

// GetRedisDSN returns the Redis connection string, empty for single-node mode.
func (m *Manager) GetRedisDSN() string {
	return m.config.RedisDSN
}

// GetUpstreamConfig returns the settings upstream configuration.
func (m *Manager) GetUpstreamConfig() types.UpstreamConfig {
	return m.config.Upstream
}

// IsGzipEnabled reports whether response compression is enabled.
func (m *Manager) IsGzipEnabled() bool {
	return m.config.EnableGzip
}

// IsDebugMode returns whether debug mode is enabled.
func (m *Manager) IsDebugMode() bool {
	return m.config.DebugMode || strings.ToLower(m.config.Log.Level) == "debug"
}

// DisplayServerConfig logs the effective server configuration at startup.
func (m *Manager) DisplayServerConfig() {
	cfg := m.config

	storageType := "SQLite"
	dsn := strings.ToLower(cfg.Database.DSN)
	switch {
	case strings.Contains(dsn, "@tcp("):
		storageType = "MySQL"
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host="):
		storageType = "PostgreSQL"
	}

	cacheType := "Memory"
	if cfg.RedisDSN != "" {
		cacheType = "Redis"
	}

	logrus.Info("========= FarmGate Settings Service =========")
	logrus.Infof("  Listen: %s:%d", cfg.Server.Host, cfg.Server.Port)
	logrus.Infof("  Database: %s", storageType)
	logrus.Infof("  Cache: %s", cacheType)
	logrus.Infof("  CORS: %t", cfg.CORS.Enabled)
	logrus.Infof("  Gzip: %t", cfg.EnableGzip)
	logrus.Infof("  Debug: %t", m.IsDebugMode())
	logrus.Info("=============================================")
}
