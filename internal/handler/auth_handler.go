package handler

import (
	app_errors "farmgate/internal/errors"
	"farmgate/internal/i18n"
	"farmgate/internal/response"

	"github.com/gin-gonic/gin"
)

// LoginRequest is the operator login payload.
type LoginRequest struct {
	Key string `json:"key"`
}

// LoginResponse acknowledges a successful login.
type LoginResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// Login handles POST /api/auth/login. The operator key is checked against
// the stored bcrypt hash; subsequent requests carry it as a bearer token.
func (s *Server) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorI18n(c, app_errors.ErrBadRequest, "auth.key_required")
		return
	}
	if req.Key == "" {
		response.ErrorI18n(c, app_errors.ErrBadRequest, "auth.key_required")
		return
	}

	if !s.AuthService.VerifyOperatorKey(c.Request.Context(), req.Key) {
		response.ErrorI18n(c, app_errors.ErrUnauthorized, "auth.invalid_key")
		return
	}

	response.JSON(c, LoginResponse{
		OK:      true,
		Message: i18n.Message(c, "auth.login_success"),
	})
}
