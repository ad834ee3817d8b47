package provider

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"farmgate/internal/settings"
	"farmgate/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testChannel = "farmgate:settings:changed"

// fetcherFunc adapts a function to the Fetcher interface.
type fetcherFunc func(ctx context.Context) (map[string]any, error)

func (f fetcherFunc) FetchSiteSettings(ctx context.Context) (map[string]any, error) {
	return f(ctx)
}

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(logger)
}

func newTestProvider(t *testing.T, fetcher Fetcher, st store.Store) *SettingsProvider {
	t.Helper()

	p, err := NewSettingsProvider(fetcher, st, testChannel, testLogger())
	require.NoError(t, err)
	t.Cleanup(p.Stop)
	return p
}

func TestProvider_InitialFetch(t *testing.T) {
	st := store.NewMemoryStore()
	defer st.Close()

	fetcher := fetcherFunc(func(ctx context.Context) (map[string]any, error) {
		return map[string]any{"header": map[string]any{"brandName": "Acme Farms"}}, nil
	})

	p := newTestProvider(t, fetcher, st)

	require.Eventually(t, func() bool {
		return !p.Loading()
	}, time.Second, 10*time.Millisecond)

	assert.NoError(t, p.Err())
	merged := p.Settings()
	assert.Equal(t, "Acme Farms", merged.Header.BrandName)

	// Untouched fields come from defaults.
	defaults := settings.Defaults()
	assert.Equal(t, defaults.Header.SearchPlaceholder, merged.Header.SearchPlaceholder)
	assert.NotEmpty(t, merged.HeroSlides)
}

func TestProvider_FetchFailureServesDefaults(t *testing.T) {
	st := store.NewMemoryStore()
	defer st.Close()

	fetchErr := errors.New("connection refused")
	fetcher := fetcherFunc(func(ctx context.Context) (map[string]any, error) {
		return nil, fetchErr
	})

	p := newTestProvider(t, fetcher, st)

	require.Eventually(t, func() bool {
		return p.Err() != nil
	}, time.Second, 10*time.Millisecond)

	assert.Nil(t, p.Raw())
	assert.False(t, p.Loading())

	// Consumers still get a fully populated document.
	merged := p.Settings()
	defaults := settings.Defaults()
	assert.Equal(t, defaults.Header.BrandName, merged.Header.BrandName)
	assert.Len(t, merged.HeroSlides, len(defaults.HeroSlides))
}

func TestProvider_WarmStartFromCache(t *testing.T) {
	st := store.NewMemoryStore()
	defer st.Close()

	cached, err := json.Marshal(map[string]any{"header": map[string]any{"brandName": "Cached Farms"}})
	require.NoError(t, err)
	require.NoError(t, st.Set("farmgate:settings:doc", cached, 0))

	release := make(chan struct{})
	fetcher := fetcherFunc(func(ctx context.Context) (map[string]any, error) {
		<-release
		return map[string]any{"header": map[string]any{"brandName": "Fresh Farms"}}, nil
	})

	p := newTestProvider(t, fetcher, st)

	// Before the first fetch lands the cached document is served.
	assert.Equal(t, "Cached Farms", p.Settings().Header.BrandName)

	close(release)
	require.Eventually(t, func() bool {
		return p.Settings().Header.BrandName == "Fresh Farms"
	}, time.Second, 10*time.Millisecond)
}

func TestProvider_WarmStartIgnoresCorruptCache(t *testing.T) {
	st := store.NewMemoryStore()
	defer st.Close()

	require.NoError(t, st.Set("farmgate:settings:doc", []byte(`[not an object`), 0))

	fetcher := fetcherFunc(func(ctx context.Context) (map[string]any, error) {
		return map[string]any{}, nil
	})

	p := newTestProvider(t, fetcher, st)
	assert.Nil(t, p.Raw())
}

func TestProvider_RefetchCachesDocument(t *testing.T) {
	st := store.NewMemoryStore()
	defer st.Close()

	fetcher := fetcherFunc(func(ctx context.Context) (map[string]any, error) {
		return map[string]any{"footer": map[string]any{"tagline": "Fresh from the gate"}}, nil
	})

	_ = newTestProvider(t, fetcher, st)

	require.Eventually(t, func() bool {
		cached, err := st.Get("farmgate:settings:doc")
		if err != nil {
			return false
		}
		var doc map[string]any
		if json.Unmarshal(cached, &doc) != nil {
			return false
		}
		footer, _ := doc["footer"].(map[string]any)
		return footer != nil && footer["tagline"] == "Fresh from the gate"
	}, time.Second, 10*time.Millisecond)
}

func TestProvider_StaleResponseDiscarded(t *testing.T) {
	st := store.NewMemoryStore()
	defer st.Close()

	var mu sync.Mutex
	calls := 0
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})

	fetcher := fetcherFunc(func(ctx context.Context) (map[string]any, error) {
		mu.Lock()
		calls++
		call := calls
		mu.Unlock()

		if call == 2 {
			// The constructor's background fetch is call 1; this is the
			// slow refetch that must lose to the one issued after it.
			close(firstStarted)
			<-releaseFirst
			return map[string]any{"header": map[string]any{"brandName": "Stale"}}, nil
		}
		return map[string]any{"header": map[string]any{"brandName": "Current"}}, nil
	})

	p := newTestProvider(t, fetcher, st)
	require.Eventually(t, func() bool { return !p.Loading() }, time.Second, 10*time.Millisecond)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = p.Refetch(context.Background())
	}()

	<-firstStarted
	require.NoError(t, p.Refetch(context.Background()))
	assert.Equal(t, "Current", p.Settings().Header.BrandName)

	close(releaseFirst)
	wg.Wait()

	// The slow, older response must not overwrite the newer one.
	assert.Equal(t, "Current", p.Settings().Header.BrandName)
	assert.NoError(t, p.Err())
}

func TestProvider_RefetchOnChangeNotification(t *testing.T) {
	st := store.NewMemoryStore()
	defer st.Close()

	var mu sync.Mutex
	brand := "Before"
	fetcher := fetcherFunc(func(ctx context.Context) (map[string]any, error) {
		mu.Lock()
		defer mu.Unlock()
		return map[string]any{"header": map[string]any{"brandName": brand}}, nil
	})

	p := newTestProvider(t, fetcher, st)
	require.Eventually(t, func() bool {
		return p.Settings().Header.BrandName == "Before"
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	brand = "After"
	mu.Unlock()

	require.NoError(t, st.Publish(testChannel, []byte(`{"version":2}`)))

	require.Eventually(t, func() bool {
		return p.Settings().Header.BrandName == "After"
	}, time.Second, 10*time.Millisecond)
}

func TestProvider_StopIsIdempotent(t *testing.T) {
	st := store.NewMemoryStore()
	defer st.Close()

	fetcher := fetcherFunc(func(ctx context.Context) (map[string]any, error) {
		return map[string]any{}, nil
	})

	p, err := NewSettingsProvider(fetcher, st, testChannel, testLogger())
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		p.Stop()
		p.Stop()
	})
}
