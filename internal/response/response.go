// Package response provides JSON response helpers for the settings API.
//
// The storefront client contract is deliberately plain: success bodies are
// the raw JSON document with no envelope, and failures carry a single
// {"error": "..."} object.
package response

import (
	"net/http"

	app_errors "farmgate/internal/errors"
	"farmgate/internal/i18n"

	"github.com/gin-gonic/gin"
)

// ErrorResponse defines the JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON sends a raw success body with no envelope.
func JSON(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// RawJSON sends pre-serialized JSON bytes as a success body.
func RawJSON(c *gin.Context, body []byte) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// Error sends an error response using an APIError.
func Error(c *gin.Context, apiErr *app_errors.APIError) {
	c.JSON(apiErr.HTTPStatus, ErrorResponse{
		Error: apiErr.Message,
	})
}

// ErrorI18n sends an error response with a localized message.
func ErrorI18n(c *gin.Context, apiErr *app_errors.APIError, msgID string, templateData ...map[string]any) {
	message := i18n.Message(c, msgID, templateData...)
	c.JSON(apiErr.HTTPStatus, ErrorResponse{
		Error: message,
	})
}
