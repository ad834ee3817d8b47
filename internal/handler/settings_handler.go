package handler

import (
	"errors"
	"io"
	"strconv"

	app_errors "farmgate/internal/errors"
	"farmgate/internal/response"
	"farmgate/internal/settings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// GetSettings handles GET /api/settings.
// The raw partial document is returned bare, exactly as stored plus the
// server-stamped version field. Storefront nodes merge it client-side.
func (s *Server) GetSettings(c *gin.Context) {
	doc, _, err := s.SettingsService.GetDocument(c.Request.Context())
	if err != nil {
		if errors.Is(err, app_errors.ErrResourceNotFound) {
			// Fresh install before the seed ran; serve the empty document.
			response.RawJSON(c, []byte("{}"))
			return
		}
		logrus.WithError(err).Error("Failed to load settings document")
		response.Error(c, app_errors.ErrServiceUnavailable)
		return
	}

	response.RawJSON(c, doc)
}

// UpdateSettings handles PUT /api/settings.
// The body replaces the whole document after passing the save-time rules.
// The version token is taken from the If-Match header, falling back to
// the body's version field; a stale token yields 409.
func (s *Server) UpdateSettings(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.ErrorI18n(c, app_errors.ErrBadRequest, "settings.invalid_payload")
		return
	}

	doc := settings.SanitizeRawDocument(body)

	newVersion, err := s.SettingsService.SaveDocument(c.Request.Context(), doc, s.expectedVersion(c, body))
	if err != nil {
		s.respondSaveError(c, err)
		return
	}

	logrus.WithField("version", newVersion).Debug("Settings document replaced")
	s.respondWithDocument(c)
}

// ResetSettings handles POST /api/settings/reset, restoring full defaults.
func (s *Server) ResetSettings(c *gin.Context) {
	if _, err := s.SettingsService.ResetDocument(c.Request.Context()); err != nil {
		s.respondSaveError(c, err)
		return
	}
	s.respondWithDocument(c)
}

// expectedVersion extracts the optimistic-concurrency token. Zero means
// "no token, last write wins".
func (s *Server) expectedVersion(c *gin.Context, body []byte) int64 {
	if header := c.GetHeader("If-Match"); header != "" {
		if v, err := strconv.ParseInt(header, 10, 64); err == nil && v > 0 {
			return v
		}
	}
	if v := gjson.GetBytes(body, "version"); v.Int() > 0 {
		return v.Int()
	}
	return 0
}

func (s *Server) respondSaveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app_errors.ErrInvalidJSON):
		response.ErrorI18n(c, app_errors.ErrInvalidJSON, "settings.invalid_payload")
	case errors.Is(err, app_errors.ErrVersionConflict):
		response.ErrorI18n(c, app_errors.ErrVersionConflict, "settings.version_conflict")
	case errors.Is(err, app_errors.ErrResourceNotFound):
		response.Error(c, app_errors.ErrResourceNotFound)
	default:
		logrus.WithError(err).Error("Failed to save settings document")
		response.Error(c, app_errors.ErrDatabase)
	}
}

// respondWithDocument returns the freshly stored, version-stamped document
// so the caller learns the new version without a second round trip.
func (s *Server) respondWithDocument(c *gin.Context) {
	doc, _, err := s.SettingsService.GetDocument(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Failed to reload settings document after save")
		response.Error(c, app_errors.ErrDatabase)
		return
	}
	response.RawJSON(c, doc)
}
