// Package container wires the application dependencies together.
package container

import (
	"farmgate/internal/app"
	"farmgate/internal/client"
	"farmgate/internal/config"
	"farmgate/internal/db"
	"farmgate/internal/handler"
	"farmgate/internal/httpclient"
	"farmgate/internal/router"
	"farmgate/internal/services"
	"farmgate/internal/store"
	"farmgate/internal/types"

	"go.uber.org/dig"
)

// BuildContainer creates the dependency injection container and registers
// every constructor. UI assets (embed.FS and the index page) are provided
// by main, which is the only place //go:embed can live.
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	providers := []interface{}{
		// Configuration
		func() (types.ConfigManager, error) {
			return config.NewManager()
		},

		// Infrastructure
		store.NewStore,
		db.NewDB,
		httpclient.NewHTTPClientManager,

		// Services
		services.NewSettingsService,
		services.NewAuthService,

		// Storefront settings client
		client.NewClient,

		// HTTP layer
		handler.NewServer,
		router.NewRouter,

		// Application
		app.NewApp,
	}

	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return nil, err
		}
	}

	return container, nil
}
