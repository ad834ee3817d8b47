package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"farmgate/internal/config"
	"farmgate/internal/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	mockConfig := &config.MockConfig{
		AuthKeyValue: "test-key",
		UpstreamURL:  server.URL,
	}
	return NewClient(mockConfig, httpclient.NewHTTPClientManager())
}

func TestFetchSiteSettings(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/settings", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"header":{"brandName":"FarmGate"},"version":3}`))
	}))

	doc, err := client.FetchSiteSettings(context.Background())
	require.NoError(t, err)

	header, ok := doc["header"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "FarmGate", header["brandName"])
	assert.Equal(t, float64(3), doc["version"])
}

func TestFetchSiteSettings_NonObjectBody(t *testing.T) {
	// A corrupted backend must yield an empty document, never an error.
	tests := []struct {
		name string
		body string
	}{
		{"array", `[1,2,3]`},
		{"string", `"hello"`},
		{"number", `42`},
		{"null", `null`},
		{"malformed", `{"header":`},
		{"empty", ``},
		{"html", `<html>maintenance</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))

			doc, err := client.FetchSiteSettings(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, doc)
			assert.Empty(t, doc)
		})
	}
}

func TestFetchSiteSettings_ServiceUnavailable(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := client.FetchSiteSettings(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestFetchSiteSettings_UnexpectedStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.FetchSiteSettings(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Status)
	assert.Contains(t, statusErr.Message, "failed to load settings")
}

func TestUpdateSiteSettings(t *testing.T) {
	var gotAuth, gotIfMatch string
	var gotBody map[string]any

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/settings", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotIfMatch = r.Header.Get("If-Match")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"header":{"brandName":"FarmGate"},"version":4}`))
	}))

	payload := map[string]any{
		"header":  map[string]any{"brandName": "FarmGate"},
		"version": 3,
	}

	result, err := client.UpdateSiteSettings(context.Background(), "secret-token", payload)
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "3", gotIfMatch)
	assert.Equal(t, "FarmGate", gotBody["header"].(map[string]any)["brandName"])
	assert.Equal(t, float64(4), result["version"])
}

func TestUpdateSiteSettings_NoVersionNoIfMatch(t *testing.T) {
	var gotIfMatch string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIfMatch = r.Header.Get("If-Match")
		w.Write([]byte(`{}`))
	}))

	_, err := client.UpdateSiteSettings(context.Background(), "secret-token", map[string]any{"header": map[string]any{}})
	require.NoError(t, err)
	assert.Empty(t, gotIfMatch)
}

func TestUpdateSiteSettings_ErrorBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"Settings document was modified by another editor"}`))
	}))

	_, err := client.UpdateSiteSettings(context.Background(), "secret-token", map[string]any{})
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusConflict, statusErr.Status)
	assert.Equal(t, "Settings document was modified by another editor", statusErr.Message)
}

func TestUpdateSiteSettings_UnparseableErrorBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>bad gateway</html>`))
	}))

	_, err := client.UpdateSiteSettings(context.Background(), "secret-token", map[string]any{})
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Contains(t, statusErr.Message, "failed to save settings: status 502")
}

func TestUpdateSiteSettings_NonObjectResponse(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`"ok"`))
	}))

	result, err := client.UpdateSiteSettings(context.Background(), "secret-token", map[string]any{})
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestFetchSiteSettings_ContextCancelled(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchSiteSettings(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
