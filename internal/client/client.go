// Package client is the sole network boundary for storefront settings.
// It performs raw GET/PUT calls against the settings API and normalizes
// error responses into typed failures. It never merges documents; callers
// pass raw partial documents to the merge engine themselves.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"farmgate/internal/httpclient"
	"farmgate/internal/types"

	"github.com/tidwall/gjson"
)

// ErrServiceUnavailable reports that the settings API answered HTTP 503.
// Storefront nodes treat this as "render defaults, retry later".
var ErrServiceUnavailable = errors.New("service unavailable")

// StatusError carries the HTTP status of a failed settings API call so
// callers can distinguish conflicts from authentication failures.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

// Client talks to the settings API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a settings API client from the upstream configuration,
// drawing its pooled transport from the shared client manager.
func NewClient(configManager types.ConfigManager, clientManager *httpclient.HTTPClientManager) *Client {
	upstream := configManager.GetUpstreamConfig()

	timeout := time.Duration(upstream.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	httpClient := clientManager.GetClient(&httpclient.Config{
		ConnectTimeout:        5 * time.Second,
		RequestTimeout:        timeout,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   10,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	})

	return &Client{
		baseURL:    strings.TrimRight(upstream.BaseURL, "/"),
		httpClient: httpClient,
	}
}

// FetchSiteSettings retrieves the raw partial settings document.
// A 200 response whose body is not a JSON object yields an empty map,
// never an error, so a corrupted backend cannot break storefront renders.
func (c *Client) FetchSiteSettings(ctx context.Context) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/settings", nil)
	if err != nil {
		return nil, fmt.Errorf("build settings request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch site settings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		return nil, ErrServiceUnavailable
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("failed to load settings: status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read settings response: %w", err)
	}

	return decodeObject(body), nil
}

// UpdateSiteSettings persists the full settings payload with the given
// operator token. When the payload carries a "version" field it is also
// sent as If-Match so the backend can reject stale writes. Returns the
// parsed response object, or an empty map when the body is not an object.
func (c *Client) UpdateSiteSettings(ctx context.Context, token string, payload any) (map[string]any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode settings payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/api/settings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build settings request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	if version := gjson.GetBytes(body, "version"); version.Exists() && version.Int() > 0 {
		req.Header.Set("If-Match", strconv.FormatInt(version.Int(), 10))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("update site settings: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read settings response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			Status:  resp.StatusCode,
			Message: errorMessage(respBody, resp.StatusCode),
		}
	}

	return decodeObject(respBody), nil
}

// decodeObject parses body into a map when it is a JSON object and
// returns an empty map for anything else.
func decodeObject(body []byte) map[string]any {
	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsObject() {
		return map[string]any{}
	}

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return map[string]any{}
	}
	return doc
}

// errorMessage extracts the backend's {"error": "..."} message, falling
// back to a generic one when the body is not parseable.
func errorMessage(body []byte, status int) string {
	if msg := gjson.GetBytes(body, "error"); msg.Exists() && msg.String() != "" {
		return msg.String()
	}
	return fmt.Sprintf("failed to save settings: status %d", status)
}
