package editor

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"farmgate/internal/settings"

	"github.com/tidwall/gjson"
)

// Saver persists a full settings payload. Implemented by client.Client.
type Saver interface {
	UpdateSiteSettings(ctx context.Context, token string, payload any) (map[string]any, error)
}

// Refetcher reloads the shared settings snapshot after a save.
// Implemented by provider.SettingsProvider.
type Refetcher interface {
	Refetch(ctx context.Context) error
}

// Fetcher loads the raw partial document an editing session starts from.
type Fetcher interface {
	FetchSiteSettings(ctx context.Context) (map[string]any, error)
}

// SettingsAPI is the pair of calls a session needs from the settings
// client.
type SettingsAPI interface {
	Fetcher
	Saver
}

// Session is one operator's editing flow on the admin settings page:
// fetch the current document, mutate a draft, save the full sanitized
// document, then refetch the shared snapshot so all readers converge.
//
// Save failures are recorded as a page-level error string; no retry is
// attempted, the operator re-triggers the save.
type Session struct {
	client    SettingsAPI
	refetcher Refetcher
	token     string

	mu      sync.Mutex
	draft   *Draft
	saveErr string
}

// NewSession builds an editing session. The token is the operator's
// bearer token for the settings API.
func NewSession(client SettingsAPI, refetcher Refetcher, token string) *Session {
	return &Session{
		client:    client,
		refetcher: refetcher,
		token:     token,
	}
}

// Begin fetches the current document and opens a fresh draft from it.
// Any previous draft and save error are discarded.
func (s *Session) Begin(ctx context.Context) error {
	raw, err := s.client.FetchSiteSettings(ctx)
	if err != nil {
		return fmt.Errorf("load settings for editing: %w", err)
	}

	version := int64(0)
	if v, ok := raw["version"]; ok {
		if f, ok := v.(float64); ok && f > 0 {
			version = int64(f)
		}
	}

	s.mu.Lock()
	s.draft = NewDraft(raw, version)
	s.saveErr = ""
	s.mu.Unlock()
	return nil
}

// Draft returns the open draft, or nil before Begin.
func (s *Session) Draft() *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// SaveError returns the error message of the last failed save, or "".
func (s *Session) SaveError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveErr
}

// Save sanitizes the draft, persists the full document and refetches the
// shared snapshot. Placeholder and blank nav links are dropped here, at
// the save boundary; the draft itself keeps them so the operator can
// finish editing them later.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	draft := s.draft
	s.mu.Unlock()

	if draft == nil {
		return fmt.Errorf("no draft open, call Begin first")
	}

	payload, err := savePayload(draft)
	if err != nil {
		s.recordSaveError(err)
		return err
	}

	resp, err := s.client.UpdateSiteSettings(ctx, s.token, payload)
	if err != nil {
		s.recordSaveError(err)
		return err
	}

	s.mu.Lock()
	s.saveErr = ""
	// The backend stamps the new version into its response; carry it into
	// the draft so a follow-up save is not a stale write.
	if data, err := json.Marshal(resp); err == nil {
		if v := gjson.GetBytes(data, "version"); v.Int() > 0 {
			draft.version = v.Int()
		}
	}
	s.mu.Unlock()

	// A failed refetch does not fail the save; the stale snapshot heals
	// on the next change notification.
	_ = s.refetcher.Refetch(ctx)
	return nil
}

func (s *Session) recordSaveError(err error) {
	s.mu.Lock()
	s.saveErr = err.Error()
	s.mu.Unlock()
}

// savePayload converts the sanitized draft into the JSON object sent to
// the settings API, with the draft's version as the concurrency token.
func savePayload(draft *Draft) (map[string]any, error) {
	sanitized := settings.SanitizeForSave(draft.Settings())

	data, err := json.Marshal(sanitized)
	if err != nil {
		return nil, fmt.Errorf("encode settings draft: %w", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("encode settings draft: %w", err)
	}

	if draft.Version() > 0 {
		payload["version"] = draft.Version()
	}
	return payload, nil
}
