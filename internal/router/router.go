// Package router wires the HTTP routes: the public settings endpoint, the
// authenticated admin API and the embedded admin panel assets.
package router

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"farmgate/internal/handler"
	"farmgate/internal/i18n"
	"farmgate/internal/middleware"
	"farmgate/internal/types"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

type embedFileSystem struct {
	http.FileSystem
}

func (e embedFileSystem) Exists(prefix string, path string) bool {
	_, err := e.Open(path)
	return err == nil
}

// EmbedFolder exposes a subdirectory of an embed.FS as a static file system.
func EmbedFolder(fsEmbed embed.FS, targetPath string) static.ServeFileSystem {
	efs, err := fs.Sub(fsEmbed, targetPath)
	if err != nil {
		panic(err)
	}
	return embedFileSystem{
		FileSystem: http.FS(efs),
	}
}

// NewRouter builds the gin engine with all middleware and routes.
func NewRouter(
	serverHandler *handler.Server,
	configManager types.ConfigManager,
	buildFS embed.FS,
	indexPage []byte,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Register global middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Logger(configManager.GetLogConfig()))
	router.Use(middleware.CORS(configManager.GetCORSConfig()))
	router.Use(middleware.RateLimiter(configManager.GetPerformanceConfig()))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestBodySizeLimit(0))
	startTime := time.Now()
	router.Use(func(c *gin.Context) {
		c.Set("serverStartTime", startTime)
		c.Next()
	})

	registerSystemRoutes(router, serverHandler)
	registerAPIRoutes(router, serverHandler, configManager)
	registerFrontendRoutes(router, configManager, buildFS, indexPage)

	return router
}

// registerSystemRoutes registers system-level routes
func registerSystemRoutes(router *gin.Engine, serverHandler *handler.Server) {
	router.GET("/health", serverHandler.Health)
}

// registerAPIRoutes registers API routes
func registerAPIRoutes(
	router *gin.Engine,
	serverHandler *handler.Server,
	configManager types.ConfigManager,
) {
	api := router.Group("/api")
	api.Use(i18n.Middleware())

	// Public routes: the storefront reads settings without credentials.
	api.GET("/settings", serverHandler.GetSettings)
	api.POST("/auth/login", serverHandler.Login)

	// Protected routes
	protectedAPI := api.Group("")
	protectedAPI.Use(middleware.Auth(configManager.GetAuthConfig()))

	settings := protectedAPI.Group("/settings")
	{
		settings.PUT("", serverHandler.UpdateSettings)
		settings.POST("/reset", serverHandler.ResetSettings)
		settings.GET("/export", serverHandler.ExportSettings)
		settings.POST("/import", serverHandler.ImportSettings)
	}
}

// registerFrontendRoutes serves the embedded admin panel build.
func registerFrontendRoutes(router *gin.Engine, configManager types.ConfigManager, buildFS embed.FS, indexPage []byte) {
	if configManager.IsGzipEnabled() {
		router.Use(gzip.Gzip(gzip.DefaultCompression))
	}

	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	router.Use(static.Serve("/", EmbedFolder(buildFS, "web/dist")))
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.RequestURI, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
			return
		}
		// HTML pages are not cached so admin panel updates take effect immediately
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
	})
}
