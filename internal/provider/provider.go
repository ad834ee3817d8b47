// Package provider owns the process-wide settings snapshot for storefront
// nodes. It fetches the raw partial document over the settings client,
// keeps the last good copy warm in the shared store, and refetches when
// another node publishes a change. Consumers always read a fully merged
// document; a failed or pending fetch degrades to defaults, never to nil.
package provider

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"farmgate/internal/models"
	"farmgate/internal/settings"
	"farmgate/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// Fetcher loads a raw partial settings document from the settings API.
type Fetcher interface {
	FetchSiteSettings(ctx context.Context) (map[string]any, error)
}

// SettingsProvider holds the raw settings snapshot. It has exactly one
// writer (fetch completion) and any number of readers.
type SettingsProvider struct {
	fetcher     Fetcher
	store       store.Store
	channelName string
	cacheKey    string
	logger      *logrus.Entry

	mu      sync.RWMutex
	raw     map[string]any
	loading bool
	lastErr error

	// seq orders concurrent refetches; a response whose sequence number
	// is no longer current is discarded instead of clobbering a newer one.
	seq atomic.Uint64

	subscription store.Subscription
	stopOnce     sync.Once
	done         chan struct{}
}

// NewSettingsProvider builds a provider, warm-starts it from the store
// cache, performs an initial fetch, and subscribes to change
// notifications. A failed initial fetch is recorded, not fatal; the
// provider keeps serving defaults until a refetch succeeds.
func NewSettingsProvider(fetcher Fetcher, st store.Store, channelName string, logger *logrus.Entry) (*SettingsProvider, error) {
	p := &SettingsProvider{
		fetcher:     fetcher,
		store:       st,
		channelName: channelName,
		cacheKey:    "farmgate:settings:doc",
		logger:      logger,
		loading:     true,
		done:        make(chan struct{}),
	}

	p.warmStart()

	sub, err := st.Subscribe(channelName)
	if err != nil {
		return nil, err
	}
	p.subscription = sub

	// The initial fetch runs in the background so a warm-started node can
	// serve its cached document immediately.
	go func() {
		if err := p.Refetch(context.Background()); err != nil {
			logger.WithError(err).Warn("Initial settings fetch failed, serving defaults")
		}
	}()

	go p.listen()

	return p, nil
}

// Settings returns the fully merged settings document. It never returns
// a partial document, regardless of loading or error state.
func (p *SettingsProvider) Settings() models.SiteSettings {
	p.mu.RLock()
	raw := p.raw
	p.mu.RUnlock()

	if raw == nil {
		return settings.MergeWithDefaults(nil)
	}
	return settings.MergeWithDefaults(raw)
}

// Raw returns the current raw partial document, or nil when no fetch has
// succeeded. The map must not be mutated by callers.
func (p *SettingsProvider) Raw() map[string]any {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.raw
}

// Loading reports whether a fetch is in flight.
func (p *SettingsProvider) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

// Err returns the error of the most recent failed fetch, or nil.
func (p *SettingsProvider) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastErr
}

// Refetch loads a fresh raw document. Concurrent calls are safe; only
// the most recently issued call may commit its result.
func (p *SettingsProvider) Refetch(ctx context.Context) error {
	seq := p.seq.Add(1)

	p.mu.Lock()
	p.loading = true
	p.lastErr = nil
	p.mu.Unlock()

	raw, err := p.fetcher.FetchSiteSettings(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	if seq != p.seq.Load() {
		// A newer refetch was issued while this one was in flight.
		return nil
	}

	p.loading = false
	if err != nil {
		p.raw = nil
		p.lastErr = err
		return err
	}

	p.raw = raw
	p.cacheRaw(raw)
	return nil
}

// warmStart seeds the raw snapshot from the store cache so a restarted
// node renders the last known document before its first fetch completes.
func (p *SettingsProvider) warmStart() {
	cached, err := p.store.Get(p.cacheKey)
	if err != nil {
		return
	}
	if !gjson.ValidBytes(cached) || !gjson.ParseBytes(cached).IsObject() {
		return
	}

	var raw map[string]any
	if err := json.Unmarshal(cached, &raw); err != nil {
		return
	}

	p.mu.Lock()
	p.raw = raw
	p.mu.Unlock()
	p.logger.Debug("Settings warm-started from store cache")
}

// cacheRaw writes the fetched document back to the store. Callers hold
// p.mu; failures only cost the next warm start.
func (p *SettingsProvider) cacheRaw(raw map[string]any) {
	data, err := json.Marshal(raw)
	if err != nil {
		return
	}
	if err := p.store.Set(p.cacheKey, data, 0); err != nil {
		p.logger.WithError(err).Warn("Failed to cache settings document")
	}
}

// listen refetches whenever another node announces a settings change.
func (p *SettingsProvider) listen() {
	for {
		select {
		case msg, ok := <-p.subscription.Channel():
			if !ok {
				return
			}
			p.logger.WithField("channel", msg.Channel).Debug("Settings change notification received")
			if err := p.Refetch(context.Background()); err != nil {
				p.logger.WithError(err).Warn("Settings refetch after change notification failed")
			}
		case <-p.done:
			return
		}
	}
}

// Stop unsubscribes from change notifications and halts the listener.
func (p *SettingsProvider) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
		if err := p.subscription.Close(); err != nil {
			p.logger.WithError(err).Warn("Failed to close settings subscription")
		}
	})
	p.logger.Debug("Settings provider stopped")
}
