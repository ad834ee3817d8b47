// Package editor implements the admin-side draft model for the settings
// document. A Draft is a deep clone of the merged settings; operators
// mutate it through section operations and commit it with a Session save.
// Nothing here touches the network.
package editor

import (
	"farmgate/internal/models"
	"farmgate/internal/settings"
	"farmgate/internal/utils"

	"github.com/google/uuid"
)

// Draft is an uncommitted working copy of the settings document.
//
// Nav links and footer quick links have no persisted identity; the draft
// assigns each entry a synthetic key at clone or insert time so editors
// can address entries stably while reordering. Keys live only as long as
// the draft and are never written to the document.
type Draft struct {
	doc           models.SiteSettings
	navKeys       []string
	quickLinkKeys []string
	version       int64
}

// NewDraft clones the raw partial document into a fully merged working
// copy. Version is the optimistic-concurrency token of the fetched
// document; zero means "no token, last write wins".
func NewDraft(raw map[string]any, version int64) *Draft {
	doc := settings.MergeWithDefaults(raw)
	return &Draft{
		doc:           doc,
		navKeys:       newKeys(len(doc.NavLinks)),
		quickLinkKeys: newKeys(len(doc.Footer.QuickLinks)),
		version:       version,
	}
}

func newKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = uuid.NewString()
	}
	return keys
}

// Settings returns a copy of the current draft document.
func (d *Draft) Settings() models.SiteSettings {
	doc := d.doc
	doc.HeroSlides = append([]models.HeroSlideItem(nil), d.doc.HeroSlides...)
	doc.Features = append([]models.FeatureItem(nil), d.doc.Features...)
	doc.NavLinks = append([]models.NavLinkItem(nil), d.doc.NavLinks...)
	doc.Footer.QuickLinks = append([]models.FooterQuickLink(nil), d.doc.Footer.QuickLinks...)
	doc.MarketPrices.PriceItems = append([]models.PriceItem(nil), d.doc.MarketPrices.PriceItems...)
	return doc
}

// Version returns the optimistic-concurrency token the draft was created
// with.
func (d *Draft) Version() int64 {
	return d.version
}

// AddHeroSlide appends a blank slide with id max(existing)+1 and returns it.
func (d *Draft) AddHeroSlide() models.HeroSlideItem {
	maxID := 0
	for _, slide := range d.doc.HeroSlides {
		if slide.ID > maxID {
			maxID = slide.ID
		}
	}

	slide := models.HeroSlideItem{
		ID:         maxID + 1,
		SmallLabel: "New",
		Title:      "New Slide",
		ButtonText: "Shop Now",
		Link:       "/products",
	}
	d.doc.HeroSlides = append(d.doc.HeroSlides, slide)
	return slide
}

// UpdateHeroSlide replaces the slide with the given id. Unknown ids are
// ignored; the id of the replacement cannot change.
func (d *Draft) UpdateHeroSlide(id int, slide models.HeroSlideItem) {
	for i := range d.doc.HeroSlides {
		if d.doc.HeroSlides[i].ID == id {
			slide.ID = id
			d.doc.HeroSlides[i] = slide
			return
		}
	}
}

// RemoveHeroSlide deletes the slide with the given id. Deleting the last
// slide restores the default first slide; the carousel is never empty.
func (d *Draft) RemoveHeroSlide(id int) {
	d.doc.HeroSlides = removeByMatch(d.doc.HeroSlides, func(s models.HeroSlideItem) bool { return s.ID == id })
	if len(d.doc.HeroSlides) == 0 {
		d.doc.HeroSlides = []models.HeroSlideItem{settings.Defaults().HeroSlides[0]}
	}
}

// SetHeroAutoSlideInterval sets the carousel interval in milliseconds.
// Non-positive values fall back to the default interval.
func (d *Draft) SetHeroAutoSlideInterval(ms int) {
	if ms <= 0 {
		ms = settings.DefaultHeroAutoSlideInterval
	}
	d.doc.HeroAutoSlideInterval = ms
}

// AddFeature appends a feature with a fresh collision-checked id.
func (d *Draft) AddFeature() models.FeatureItem {
	taken := make(map[string]struct{}, len(d.doc.Features))
	for _, f := range d.doc.Features {
		taken[f.ID] = struct{}{}
	}

	feature := models.FeatureItem{
		ID:       utils.GenerateItemID("feature", taken),
		IconID:   "sprout",
		Title:    "New Feature",
		Subtitle: "Describe this feature",
		BgColor:  settings.FeatureGradient("harvest"),
	}
	d.doc.Features = append(d.doc.Features, feature)
	return feature
}

// UpdateFeature replaces the feature with the given id.
func (d *Draft) UpdateFeature(id string, feature models.FeatureItem) {
	for i := range d.doc.Features {
		if d.doc.Features[i].ID == id {
			feature.ID = id
			d.doc.Features[i] = feature
			return
		}
	}
}

// RemoveFeature deletes a feature; deleting the last one restores the
// default first feature.
func (d *Draft) RemoveFeature(id string) {
	d.doc.Features = removeByMatch(d.doc.Features, func(f models.FeatureItem) bool { return f.ID == id })
	if len(d.doc.Features) == 0 {
		d.doc.Features = []models.FeatureItem{settings.Defaults().Features[0]}
	}
}

// SetAnnouncementBar replaces the announcement bar section.
func (d *Draft) SetAnnouncementBar(cfg models.AnnouncementBarConfig) {
	d.doc.AnnouncementBar = cfg
}

// SetHeader replaces the header section.
func (d *Draft) SetHeader(cfg models.HeaderConfig) {
	d.doc.Header = cfg
}

// SetFooterText updates the footer's scalar fields, leaving quick links
// untouched.
func (d *Draft) SetFooterText(cfg models.FooterConfig) {
	cfg.QuickLinks = d.doc.Footer.QuickLinks
	d.doc.Footer = cfg
}

// QuickLinks returns the footer quick links paired with their draft keys.
func (d *Draft) QuickLinks() ([]models.FooterQuickLink, []string) {
	links := append([]models.FooterQuickLink(nil), d.doc.Footer.QuickLinks...)
	keys := append([]string(nil), d.quickLinkKeys...)
	return links, keys
}

// AddQuickLink appends a blank quick link and returns its draft key.
func (d *Draft) AddQuickLink() string {
	key := uuid.NewString()
	d.doc.Footer.QuickLinks = append(d.doc.Footer.QuickLinks, models.FooterQuickLink{Label: "New Link", Path: "/"})
	d.quickLinkKeys = append(d.quickLinkKeys, key)
	return key
}

// UpdateQuickLink replaces the quick link addressed by its draft key.
func (d *Draft) UpdateQuickLink(key string, link models.FooterQuickLink) {
	if i := indexOfKey(d.quickLinkKeys, key); i >= 0 {
		d.doc.Footer.QuickLinks[i] = link
	}
}

// RemoveQuickLink deletes the quick link addressed by its draft key.
// Deleting the last one restores the default first entry.
func (d *Draft) RemoveQuickLink(key string) {
	i := indexOfKey(d.quickLinkKeys, key)
	if i < 0 {
		return
	}
	d.doc.Footer.QuickLinks = append(d.doc.Footer.QuickLinks[:i], d.doc.Footer.QuickLinks[i+1:]...)
	d.quickLinkKeys = append(d.quickLinkKeys[:i], d.quickLinkKeys[i+1:]...)

	if len(d.doc.Footer.QuickLinks) == 0 {
		d.doc.Footer.QuickLinks = []models.FooterQuickLink{settings.Defaults().Footer.QuickLinks[0]}
		d.quickLinkKeys = newKeys(1)
	}
}

// MoveQuickLink shifts the quick link addressed by key one position up or
// down. Moves past either end are no-ops.
func (d *Draft) MoveQuickLink(key string, delta int) {
	i := indexOfKey(d.quickLinkKeys, key)
	j := i + delta
	if i < 0 || j < 0 || j >= len(d.quickLinkKeys) {
		return
	}
	d.doc.Footer.QuickLinks[i], d.doc.Footer.QuickLinks[j] = d.doc.Footer.QuickLinks[j], d.doc.Footer.QuickLinks[i]
	d.quickLinkKeys[i], d.quickLinkKeys[j] = d.quickLinkKeys[j], d.quickLinkKeys[i]
}

// NavLinks returns the nav links paired with their draft keys.
func (d *Draft) NavLinks() ([]models.NavLinkItem, []string) {
	links := append([]models.NavLinkItem(nil), d.doc.NavLinks...)
	keys := append([]string(nil), d.navKeys...)
	return links, keys
}

// AddNavLink appends a placeholder nav link and returns its draft key.
// The placeholder label keeps the entry out of the persisted document
// until the operator renames it.
func (d *Draft) AddNavLink() string {
	key := uuid.NewString()
	d.doc.NavLinks = append(d.doc.NavLinks, models.NavLinkItem{Label: "New Link", Path: "/"})
	d.navKeys = append(d.navKeys, key)
	return key
}

// UpdateNavLink replaces the nav link addressed by its draft key.
func (d *Draft) UpdateNavLink(key string, link models.NavLinkItem) {
	if i := indexOfKey(d.navKeys, key); i >= 0 {
		d.doc.NavLinks[i] = link
	}
}

// RemoveNavLink deletes the nav link addressed by its draft key. Deleting
// the last one restores the default first entry.
func (d *Draft) RemoveNavLink(key string) {
	i := indexOfKey(d.navKeys, key)
	if i < 0 {
		return
	}
	d.doc.NavLinks = append(d.doc.NavLinks[:i], d.doc.NavLinks[i+1:]...)
	d.navKeys = append(d.navKeys[:i], d.navKeys[i+1:]...)

	if len(d.doc.NavLinks) == 0 {
		d.doc.NavLinks = []models.NavLinkItem{settings.Defaults().NavLinks[0]}
		d.navKeys = newKeys(1)
	}
}

// MoveNavLink shifts the nav link addressed by key one position up or
// down. Moves past either end are no-ops.
func (d *Draft) MoveNavLink(key string, delta int) {
	i := indexOfKey(d.navKeys, key)
	j := i + delta
	if i < 0 || j < 0 || j >= len(d.navKeys) {
		return
	}
	d.doc.NavLinks[i], d.doc.NavLinks[j] = d.doc.NavLinks[j], d.doc.NavLinks[i]
	d.navKeys[i], d.navKeys[j] = d.navKeys[j], d.navKeys[i]
}

// SetSectionVisibility replaces the section visibility toggles.
func (d *Draft) SetSectionVisibility(cfg models.SectionVisibility) {
	d.doc.SectionVisibility = cfg
}

// SetMarketPricesText updates the market prices modal's scalar fields,
// leaving the price items untouched.
func (d *Draft) SetMarketPricesText(cfg models.MarketPricesConfig) {
	cfg.PriceItems = d.doc.MarketPrices.PriceItems
	d.doc.MarketPrices = cfg
}

// AddPriceItem appends a price item with a fresh collision-checked id.
func (d *Draft) AddPriceItem() models.PriceItem {
	taken := make(map[string]struct{}, len(d.doc.MarketPrices.PriceItems))
	for _, item := range d.doc.MarketPrices.PriceItems {
		taken[item.ID] = struct{}{}
	}

	item := models.PriceItem{
		ID:        utils.GenerateItemID("price", taken),
		Name:      "New Item",
		UnitLabel: "per kg",
	}
	d.doc.MarketPrices.PriceItems = append(d.doc.MarketPrices.PriceItems, item)
	return item
}

// UpdatePriceItem replaces the price item with the given id, clamping
// prices to be non-negative. A nil LocalPrice means "no local price".
func (d *Draft) UpdatePriceItem(id string, item models.PriceItem) {
	for i := range d.doc.MarketPrices.PriceItems {
		if d.doc.MarketPrices.PriceItems[i].ID == id {
			item.ID = id
			item.WorldPrice = settings.ClampPrice(item.WorldPrice)
			if item.LocalPrice != nil {
				clamped := settings.ClampPrice(*item.LocalPrice)
				item.LocalPrice = &clamped
			}
			d.doc.MarketPrices.PriceItems[i] = item
			return
		}
	}
}

// RemovePriceItem deletes a price item; deleting the last one restores
// the default first item.
func (d *Draft) RemovePriceItem(id string) {
	d.doc.MarketPrices.PriceItems = removeByMatch(d.doc.MarketPrices.PriceItems, func(p models.PriceItem) bool { return p.ID == id })
	if len(d.doc.MarketPrices.PriceItems) == 0 {
		d.doc.MarketPrices.PriceItems = []models.PriceItem{settings.Defaults().MarketPrices.PriceItems[0]}
	}
}

func removeByMatch[T any](list []T, match func(T) bool) []T {
	out := list[:0]
	for _, item := range list {
		if !match(item) {
			out = append(out, item)
		}
	}
	return out
}

func indexOfKey(keys []string, key string) int {
	for i, k := range keys {
		if k == key {
			return i
		}
	}
	return -1
}
