package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	require.NoError(t, Init())
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		acceptLang   string
		expectedLang string
	}{
		{"english request", "en-US", "en-US"},
		{"swahili request", "sw-KE", "sw-KE"},
		{"no header defaults to english", "", "en-US"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(Middleware())
			router.GET("/", func(c *gin.Context) {
				assert.NotNil(t, GetLocalizerFromContext(c))
				c.String(http.StatusOK, GetLangFromContext(c))
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.acceptLang != "" {
				req.Header.Set("Accept-Language", tt.acceptLang)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedLang, w.Body.String())
		})
	}
}

func TestGetLocalizerFromContext_Fallback(t *testing.T) {
	require.NoError(t, Init())
	gin.SetMode(gin.TestMode)

	// Context without the middleware applied
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	localizer := GetLocalizerFromContext(c)
	assert.NotNil(t, localizer)
	assert.Equal(t, "en-US", GetLangFromContext(c))
}

func TestMessage(t *testing.T) {
	require.NoError(t, Init())
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Accept-Language", "sw-KE")

	Middleware()(c)

	msg := Message(c, "auth.invalid_key")
	assert.Equal(t, "Ufunguo wa idhini si sahihi", msg)
}
