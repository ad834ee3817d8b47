package handler

import (
	"fmt"
	"io"
	"time"

	app_errors "farmgate/internal/errors"
	"farmgate/internal/response"
	"farmgate/internal/settings"
	"farmgate/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ExportSettings handles GET /api/settings/export.
// The current document is streamed as a gzip-compressed JSON attachment.
func (s *Server) ExportSettings(c *gin.Context) {
	doc, version, err := s.SettingsService.GetDocument(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Failed to load settings document for export")
		response.Error(c, app_errors.ErrDatabase)
		return
	}

	compressed, err := utils.CompressGzip(doc)
	if err != nil {
		logrus.WithError(err).Error("Failed to compress settings export")
		response.Error(c, app_errors.ErrInternalServer)
		return
	}

	filename := fmt.Sprintf("farmgate-settings-v%d-%s.json.gz", version, time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(200, "application/gzip", compressed)
}

// ImportSettings handles POST /api/settings/import.
// The body is a backup produced by ExportSettings, gzip or plain JSON.
// It replaces the current document through the same save-time rules as a
// PUT; the version token of the backup is ignored.
func (s *Server) ImportSettings(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.ErrorI18n(c, app_errors.ErrBadRequest, "import.invalid_format")
		return
	}

	if utils.IsGzip(body) {
		body, err = utils.DecompressGzip(body)
		if err != nil {
			response.ErrorI18n(c, app_errors.ErrBadRequest, "import.invalid_format")
			return
		}
	}

	doc := settings.SanitizeRawDocument(body)

	newVersion, err := s.SettingsService.SaveDocument(c.Request.Context(), doc, 0)
	if err != nil {
		s.respondSaveError(c, err)
		return
	}

	logrus.WithField("version", newVersion).Info("Settings document imported")
	s.respondWithDocument(c)
}
