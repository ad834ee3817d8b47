// Package handler implements the HTTP endpoints of the settings backend:
// the public settings document, the authenticated replace/reset/export/
// import operations, operator login and the health probe.
package handler

import (
	"farmgate/internal/services"
	"farmgate/internal/types"

	"gorm.io/gorm"
)

// Server bundles the handler dependencies.
type Server struct {
	DB              *gorm.DB
	config          types.ConfigManager
	SettingsService *services.SettingsService
	AuthService     *services.AuthService
}

// NewServer creates a Server with all handler dependencies.
func NewServer(
	db *gorm.DB,
	configManager types.ConfigManager,
	settingsService *services.SettingsService,
	authService *services.AuthService,
) *Server {
	return &Server{
		DB:              db,
		config:          configManager,
		SettingsService: settingsService,
		AuthService:     authService,
	}
}
