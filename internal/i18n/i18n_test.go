package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	err := Init()
	require.NoError(t, err)
	require.NotNil(t, bundle)
}

func TestGetLocalizer(t *testing.T) {
	require.NoError(t, Init())

	tests := []struct {
		name       string
		acceptLang string
	}{
		{"english", "en-US"},
		{"swahili", "sw-KE"},
		{"empty defaults to english", ""},
		{"with quality factor", "sw-KE;q=0.9,en-US;q=0.8"},
		{"unknown language", "fr-FR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			localizer := GetLocalizer(tt.acceptLang)
			assert.NotNil(t, localizer)
		})
	}
}

func TestParseAcceptLanguage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"single language", "en-US", []string{"en-US"}},
		{"multiple languages takes first", "sw-KE,en-US", []string{"sw-KE"}},
		{"with quality factor", "sw;q=0.9", []string{"sw-KE"}},
		{"with spaces", " en-US ", []string{"en-US"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseAcceptLanguage(tt.input))
		})
	}
}

func TestNormalizeLanguageCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "en-US"},
		{"en-US", "en-US"},
		{"en-GB", "en-US"},
		{"sw", "sw-KE"},
		{"sw-KE", "sw-KE"},
		{"sw-TZ", "sw-KE"},
		{"SW-ke", "sw-KE"},
		{"fr-FR", "en-US"},
		{"", "en-US"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeLanguageCode(tt.input))
		})
	}
}

func TestT(t *testing.T) {
	require.NoError(t, Init())

	t.Run("known message", func(t *testing.T) {
		localizer := GetLocalizer("en-US")
		msg := T(localizer, "settings.saved")
		assert.Equal(t, "Settings saved successfully", msg)
	})

	t.Run("swahili message", func(t *testing.T) {
		localizer := GetLocalizer("sw-KE")
		msg := T(localizer, "settings.saved")
		assert.Equal(t, "Mipangilio imehifadhiwa", msg)
	})

	t.Run("unknown message falls back to ID", func(t *testing.T) {
		localizer := GetLocalizer("en-US")
		msg := T(localizer, "does.not.exist")
		assert.Equal(t, "does.not.exist", msg)
	})
}

func TestGetMessages(t *testing.T) {
	assert.NotEmpty(t, getMessages("en-US"))
	assert.NotEmpty(t, getMessages("sw-KE"))
	// Unknown languages fall back to English
	assert.Equal(t, getMessages("en-US")["success"], getMessages("fr-FR")["success"])
}
