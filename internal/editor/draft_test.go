package editor

import (
	"testing"

	"farmgate/internal/models"
	"farmgate/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDraft_ClonesMergedDocument(t *testing.T) {
	raw := map[string]any{
		"header": map[string]any{"brandName": "Acme Farms"},
	}

	draft := NewDraft(raw, 7)

	doc := draft.Settings()
	assert.Equal(t, "Acme Farms", doc.Header.BrandName)
	assert.Equal(t, settings.Defaults().Header.SearchPlaceholder, doc.Header.SearchPlaceholder)
	assert.Equal(t, int64(7), draft.Version())

	// Every positional entry carries a draft key.
	links, keys := draft.NavLinks()
	assert.Len(t, keys, len(links))
	quick, quickKeys := draft.QuickLinks()
	assert.Len(t, quickKeys, len(quick))
}

func TestDraft_SettingsReturnsCopy(t *testing.T) {
	draft := NewDraft(nil, 0)

	doc := draft.Settings()
	doc.HeroSlides[0].Title = "mutated"
	doc.Header.BrandName = "mutated"

	fresh := draft.Settings()
	assert.NotEqual(t, "mutated", fresh.HeroSlides[0].Title)
	assert.NotEqual(t, "mutated", fresh.Header.BrandName)
}

func TestDraft_AddHeroSlideAssignsMaxPlusOne(t *testing.T) {
	draft := NewDraft(map[string]any{
		"heroSlides": []any{
			map[string]any{"id": 4, "title": "a"},
			map[string]any{"id": 9, "title": "b"},
		},
	}, 0)

	slide := draft.AddHeroSlide()
	assert.Equal(t, 10, slide.ID)

	// max+1 is recomputed after a delete, so an id can be reissued.
	draft.RemoveHeroSlide(10)
	again := draft.AddHeroSlide()
	assert.Equal(t, 10, again.ID)
}

func TestDraft_UpdateHeroSlideKeepsID(t *testing.T) {
	draft := NewDraft(nil, 0)

	draft.UpdateHeroSlide(1, models.HeroSlideItem{ID: 99, Title: "Changed"})

	doc := draft.Settings()
	assert.Equal(t, 1, doc.HeroSlides[0].ID)
	assert.Equal(t, "Changed", doc.HeroSlides[0].Title)
}

func TestDraft_RemoveLastHeroSlideRestoresDefault(t *testing.T) {
	draft := NewDraft(map[string]any{
		"heroSlides": []any{map[string]any{"id": 5, "title": "only"}},
	}, 0)

	draft.RemoveHeroSlide(5)

	doc := draft.Settings()
	require.Len(t, doc.HeroSlides, 1)
	assert.Equal(t, settings.Defaults().HeroSlides[0], doc.HeroSlides[0])
}

func TestDraft_SetHeroAutoSlideInterval(t *testing.T) {
	draft := NewDraft(nil, 0)

	draft.SetHeroAutoSlideInterval(8000)
	assert.Equal(t, 8000, draft.Settings().HeroAutoSlideInterval)

	draft.SetHeroAutoSlideInterval(0)
	assert.Equal(t, settings.DefaultHeroAutoSlideInterval, draft.Settings().HeroAutoSlideInterval)
}

func TestDraft_AddFeatureGeneratesUniqueID(t *testing.T) {
	draft := NewDraft(nil, 0)

	a := draft.AddFeature()
	b := draft.AddFeature()

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)

	ids := make(map[string]struct{})
	for _, f := range draft.Settings().Features {
		_, dup := ids[f.ID]
		assert.False(t, dup, "duplicate feature id %q", f.ID)
		ids[f.ID] = struct{}{}
	}
}

func TestDraft_RemoveLastFeatureRestoresDefault(t *testing.T) {
	draft := NewDraft(map[string]any{
		"features": []any{map[string]any{"id": "f1", "title": "only"}},
	}, 0)

	draft.RemoveFeature("f1")

	doc := draft.Settings()
	require.Len(t, doc.Features, 1)
	assert.Equal(t, settings.Defaults().Features[0], doc.Features[0])
}

func TestDraft_SetFooterTextPreservesQuickLinks(t *testing.T) {
	draft := NewDraft(nil, 0)
	before, _ := draft.QuickLinks()

	draft.SetFooterText(models.FooterConfig{Tagline: "Hello"})

	doc := draft.Settings()
	assert.Equal(t, "Hello", doc.Footer.Tagline)
	assert.Equal(t, before, doc.Footer.QuickLinks)
}

func TestDraft_QuickLinkOperations(t *testing.T) {
	draft := NewDraft(nil, 0)

	key := draft.AddQuickLink()
	draft.UpdateQuickLink(key, models.FooterQuickLink{Label: "Markets", Path: "/markets"})

	links, keys := draft.QuickLinks()
	i := len(links) - 1
	assert.Equal(t, "Markets", links[i].Label)
	assert.Equal(t, key, keys[i])

	// Keys stay attached to their entries through reorders.
	draft.MoveQuickLink(key, -1)
	links, keys = draft.QuickLinks()
	assert.Equal(t, "Markets", links[i-1].Label)
	assert.Equal(t, key, keys[i-1])

	draft.RemoveQuickLink(key)
	links, _ = draft.QuickLinks()
	for _, l := range links {
		assert.NotEqual(t, "Markets", l.Label)
	}
}

func TestDraft_RemoveLastQuickLinkRestoresDefault(t *testing.T) {
	draft := NewDraft(map[string]any{
		"footer": map[string]any{
			"quickLinks": []any{map[string]any{"label": "Only", "path": "/only"}},
		},
	}, 0)

	_, keys := draft.QuickLinks()
	require.Len(t, keys, 1)
	draft.RemoveQuickLink(keys[0])

	links, newKeys := draft.QuickLinks()
	require.Len(t, links, 1)
	assert.Equal(t, settings.Defaults().Footer.QuickLinks[0], links[0])
	assert.NotEqual(t, keys[0], newKeys[0])
}

func TestDraft_NavLinkOperations(t *testing.T) {
	draft := NewDraft(nil, 0)

	key := draft.AddNavLink()
	links, _ := draft.NavLinks()
	added := links[len(links)-1]
	assert.Equal(t, "New Link", added.Label)

	draft.UpdateNavLink(key, models.NavLinkItem{Label: "Sellers", Path: "/sellers"})
	links, keys := draft.NavLinks()
	assert.Equal(t, "Sellers", links[len(links)-1].Label)

	// Move to the front one step at a time.
	for i := len(keys) - 1; i > 0; i-- {
		draft.MoveNavLink(key, -1)
	}
	links, keys = draft.NavLinks()
	assert.Equal(t, "Sellers", links[0].Label)
	assert.Equal(t, key, keys[0])

	// Moving past the front is a no-op.
	draft.MoveNavLink(key, -1)
	links, _ = draft.NavLinks()
	assert.Equal(t, "Sellers", links[0].Label)
}

func TestDraft_RemoveLastNavLinkRestoresDefault(t *testing.T) {
	draft := NewDraft(map[string]any{
		"navLinks": []any{map[string]any{"label": "Only", "path": "/only"}},
	}, 0)

	_, keys := draft.NavLinks()
	require.Len(t, keys, 1)
	draft.RemoveNavLink(keys[0])

	links, _ := draft.NavLinks()
	require.Len(t, links, 1)
	assert.Equal(t, settings.Defaults().NavLinks[0], links[0])
}

func TestDraft_UpdatePriceItemClamps(t *testing.T) {
	draft := NewDraft(nil, 0)
	id := draft.Settings().MarketPrices.PriceItems[0].ID

	local := -5.0
	draft.UpdatePriceItem(id, models.PriceItem{
		Name:       "Maize",
		UnitLabel:  "per 90kg bag",
		LocalPrice: &local,
		WorldPrice: -12,
	})

	item := draft.Settings().MarketPrices.PriceItems[0]
	assert.Equal(t, id, item.ID)
	require.NotNil(t, item.LocalPrice)
	assert.Equal(t, 0.0, *item.LocalPrice)
	assert.Equal(t, 0.0, item.WorldPrice)
}

func TestDraft_UpdatePriceItemNilLocalPrice(t *testing.T) {
	draft := NewDraft(nil, 0)
	id := draft.Settings().MarketPrices.PriceItems[0].ID

	draft.UpdatePriceItem(id, models.PriceItem{
		Name:              "Coffee",
		UnitLabel:         "per kg",
		LocalPrice:        nil,
		WorldPrice:        4.2,
		LocalEmptyMessage: "Not traded locally",
	})

	item := draft.Settings().MarketPrices.PriceItems[0]
	assert.Nil(t, item.LocalPrice)
}

func TestDraft_RemoveLastPriceItemRestoresDefault(t *testing.T) {
	draft := NewDraft(map[string]any{
		"marketPrices": map[string]any{
			"priceItems": []any{map[string]any{"id": "p1", "name": "only", "worldPrice": 1.0}},
		},
	}, 0)

	draft.RemovePriceItem("p1")

	doc := draft.Settings()
	require.Len(t, doc.MarketPrices.PriceItems, 1)
	assert.Equal(t, settings.Defaults().MarketPrices.PriceItems[0], doc.MarketPrices.PriceItems[0])
}

func TestDraft_SetMarketPricesTextPreservesItems(t *testing.T) {
	draft := NewDraft(nil, 0)
	before := draft.Settings().MarketPrices.PriceItems

	draft.SetMarketPricesText(models.MarketPricesConfig{ModalTitle: "Today's prices"})

	doc := draft.Settings()
	assert.Equal(t, "Today's prices", doc.MarketPrices.ModalTitle)
	assert.Equal(t, before, doc.MarketPrices.PriceItems)
}
