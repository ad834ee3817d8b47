package settings

import (
	"math"

	"farmgate/internal/models"
)

// MergeWithDefaults reconciles a partial settings document against the
// defaults and returns a structurally complete SiteSettings. The input is
// whatever a JSON decode produced: nil, a map, or any other value. The
// function is total; malformed input at any level falls back to defaults
// instead of failing.
//
// Merge policy, per section:
//   - singleton sections merge key-by-key (shallow spread semantics);
//   - list sections replace wholesale when the partial list decodes to at
//     least one entry, otherwise the full default list is kept. Lists are
//     deliberately never merged element-wise: an admin who customizes a
//     list owns the whole list from then on.
func MergeWithDefaults(partial any) models.SiteSettings {
	out := Defaults()

	obj, ok := partial.(map[string]any)
	if !ok || obj == nil {
		return out
	}

	if slides := decodeHeroSlides(obj["heroSlides"]); len(slides) > 0 {
		out.HeroSlides = slides
	}
	if interval, ok := obj["heroAutoSlideInterval"].(float64); ok && !math.IsNaN(interval) {
		out.HeroAutoSlideInterval = int(interval)
	}
	if features := decodeFeatures(obj["features"]); len(features) > 0 {
		out.Features = features
	}
	out.AnnouncementBar = mergeAnnouncementBar(out.AnnouncementBar, obj["announcementBar"])
	out.Header = mergeHeader(out.Header, obj["header"])
	out.Footer = mergeFooter(out.Footer, obj["footer"])
	if links := decodeNavLinks(obj["navLinks"]); len(links) > 0 {
		out.NavLinks = links
	}
	out.SectionVisibility = mergeSectionVisibility(out.SectionVisibility, obj["sectionVisibility"])
	out.MarketPrices = mergeMarketPrices(out.MarketPrices, obj["marketPrices"])

	return out
}

// --- field helpers ---

func stringField(obj map[string]any, key, def string) string {
	if v, ok := obj[key].(string); ok {
		return v
	}
	return def
}

func boolField(obj map[string]any, key string, def bool) bool {
	if v, ok := obj[key].(bool); ok {
		return v
	}
	return def
}

func floatField(obj map[string]any, key string, def float64) float64 {
	if v, ok := obj[key].(float64); ok && !math.IsNaN(v) {
		return v
	}
	return def
}

func intField(obj map[string]any, key string, def int) int {
	if v, ok := obj[key].(float64); ok && !math.IsNaN(v) {
		return int(v)
	}
	return def
}

// asList returns the value as a JSON array, or nil.
func asList(v any) []any {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	return list
}

// --- singleton sections ---

func mergeAnnouncementBar(def models.AnnouncementBarConfig, v any) models.AnnouncementBarConfig {
	obj, ok := v.(map[string]any)
	if !ok {
		return def
	}
	def.Enabled = boolField(obj, "enabled", def.Enabled)
	def.PromoText = stringField(obj, "promoText", def.PromoText)
	def.Email = stringField(obj, "email", def.Email)
	def.Currency = stringField(obj, "currency", def.Currency)
	def.Language = stringField(obj, "language", def.Language)
	def.SecondaryText = stringField(obj, "secondaryText", def.SecondaryText)
	return def
}

func mergeHeader(def models.HeaderConfig, v any) models.HeaderConfig {
	obj, ok := v.(map[string]any)
	if !ok {
		return def
	}
	def.BrandName = stringField(obj, "brandName", def.BrandName)
	def.BrandMark = stringField(obj, "brandMark", def.BrandMark)
	def.SearchPlaceholder = stringField(obj, "searchPlaceholder", def.SearchPlaceholder)
	return def
}

func mergeFooter(def models.FooterConfig, v any) models.FooterConfig {
	obj, ok := v.(map[string]any)
	if !ok {
		return def
	}
	def.Tagline = stringField(obj, "tagline", def.Tagline)
	def.Description = stringField(obj, "description", def.Description)
	// Shallow spread: a quickLinks key that decodes to an array replaces the
	// default list even when empty; the editor keeps it from going empty.
	if list, ok := obj["quickLinks"].([]any); ok {
		def.QuickLinks = decodeQuickLinks(list)
	}
	def.ContactEmail = stringField(obj, "contactEmail", def.ContactEmail)
	def.ContactPhone = stringField(obj, "contactPhone", def.ContactPhone)
	def.ContactAddress = stringField(obj, "contactAddress", def.ContactAddress)
	def.BottomLine = stringField(obj, "bottomLine", def.BottomLine)
	return def
}

func mergeSectionVisibility(def models.SectionVisibility, v any) models.SectionVisibility {
	obj, ok := v.(map[string]any)
	if !ok {
		return def
	}
	def.AnnouncementBar = boolField(obj, "announcementBar", def.AnnouncementBar)
	def.CategoryNav = boolField(obj, "categoryNav", def.CategoryNav)
	def.PricesButton = boolField(obj, "pricesButton", def.PricesButton)
	def.PricesButtonLabel = stringField(obj, "pricesButtonLabel", def.PricesButtonLabel)
	def.Hero = boolField(obj, "hero", def.Hero)
	def.Features = boolField(obj, "features", def.Features)
	def.Communities = boolField(obj, "communities", def.Communities)
	def.SellerSection = boolField(obj, "sellerSection", def.SellerSection)
	return def
}

func mergeMarketPrices(def models.MarketPricesConfig, v any) models.MarketPricesConfig {
	obj, ok := v.(map[string]any)
	if !ok {
		return def
	}
	def.ModalTitle = stringField(obj, "modalTitle", def.ModalTitle)
	def.ModalSubtitle = stringField(obj, "modalSubtitle", def.ModalSubtitle)
	def.ExplanationText = stringField(obj, "explanationText", def.ExplanationText)
	def.Currency = stringField(obj, "currency", def.Currency)
	// priceItems follows the ordered-list rule, independently of the scalar
	// merge above: a non-empty partial list replaces the default list.
	if items := decodePriceItems(obj["priceItems"]); len(items) > 0 {
		def.PriceItems = items
	}
	return def
}

// --- list sections ---

func decodeHeroSlides(v any) []models.HeroSlideItem {
	list := asList(v)
	if len(list) == 0 {
		return nil
	}
	slides := make([]models.HeroSlideItem, 0, len(list))
	for _, raw := range list {
		obj, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		slides = append(slides, models.HeroSlideItem{
			ID:          intField(obj, "id", 0),
			SmallLabel:  stringField(obj, "smallLabel", ""),
			Title:       stringField(obj, "title", ""),
			Description: stringField(obj, "description", ""),
			Image:       stringField(obj, "image", ""),
			ButtonText:  stringField(obj, "buttonText", ""),
			Link:        stringField(obj, "link", ""),
		})
	}
	return slides
}

func decodeFeatures(v any) []models.FeatureItem {
	list := asList(v)
	if len(list) == 0 {
		return nil
	}
	features := make([]models.FeatureItem, 0, len(list))
	for _, raw := range list {
		obj, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		features = append(features, models.FeatureItem{
			ID:       stringField(obj, "id", ""),
			IconID:   stringField(obj, "iconId", ""),
			Title:    stringField(obj, "title", ""),
			Subtitle: stringField(obj, "subtitle", ""),
			BgColor:  stringField(obj, "bgColor", ""),
		})
	}
	return features
}

func decodeNavLinks(v any) []models.NavLinkItem {
	list := asList(v)
	if len(list) == 0 {
		return nil
	}
	links := make([]models.NavLinkItem, 0, len(list))
	for _, raw := range list {
		obj, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		links = append(links, models.NavLinkItem{
			Path:  stringField(obj, "path", ""),
			Label: stringField(obj, "label", ""),
		})
	}
	return links
}

func decodeQuickLinks(list []any) []models.FooterQuickLink {
	links := make([]models.FooterQuickLink, 0, len(list))
	for _, raw := range list {
		obj, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		links = append(links, models.FooterQuickLink{
			Label: stringField(obj, "label", ""),
			Path:  stringField(obj, "path", ""),
		})
	}
	return links
}

func decodePriceItems(v any) []models.PriceItem {
	list := asList(v)
	if len(list) == 0 {
		return nil
	}
	items := make([]models.PriceItem, 0, len(list))
	for _, raw := range list {
		obj, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		item := models.PriceItem{
			ID:                  stringField(obj, "id", ""),
			Name:                stringField(obj, "name", ""),
			UnitLabel:           stringField(obj, "unitLabel", ""),
			WorldPrice:          floatField(obj, "worldPrice", 0),
			LocalEmptyMessage:   stringField(obj, "localEmptyMessage", ""),
			WorldReferenceLabel: stringField(obj, "worldReferenceLabel", ""),
		}
		// localPrice is tri-state: number, explicit null, or absent.
		// Null and absent both mean "no local price".
		if lp, ok := obj["localPrice"].(float64); ok && !math.IsNaN(lp) {
			item.LocalPrice = &lp
		}
		items = append(items, item)
	}
	return items
}
