package settings

import (
	"math"
	"strings"

	"farmgate/internal/models"
)

// placeholderNavLabels are the sentinel labels the admin editor seeds new
// nav entries with. Entries still carrying one of these at save time were
// never finished and must not be persisted.
var placeholderNavLabels = map[string]struct{}{
	"new link": {},
	"new":      {},
	"newlink":  {},
}

// IsPlaceholderNavLink reports whether a nav entry is invalid for
// persistence: blank label or path, or a label matching one of the known
// placeholder sentinels (case-insensitive, trimmed).
func IsPlaceholderNavLink(link models.NavLinkItem) bool {
	label := strings.TrimSpace(link.Label)
	path := strings.TrimSpace(link.Path)
	if label == "" || path == "" {
		return true
	}
	_, placeholder := placeholderNavLabels[strings.ToLower(label)]
	return placeholder
}

// FilterNavLinks drops invalid entries and returns the remainder in order.
// The result may be empty; callers deciding to keep a default entry do so
// themselves (the storefront falls back to default nav links on merge).
func FilterNavLinks(links []models.NavLinkItem) []models.NavLinkItem {
	filtered := make([]models.NavLinkItem, 0, len(links))
	for _, link := range links {
		if !IsPlaceholderNavLink(link) {
			filtered = append(filtered, link)
		}
	}
	return filtered
}

// ClampPrice normalizes an edited price value: negative and NaN inputs
// become zero.
func ClampPrice(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

// NormalizePricesButtonLabel returns the label trimmed, or the default
// when blank.
func NormalizePricesButtonLabel(label string) string {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return DefaultPricesButtonLabel
	}
	return trimmed
}

// SanitizeForSave applies every save-time rule to a full document before it
// is sent to the backend: the nav-link validity filter, price clamping and
// the prices-button label fallback. The input is not mutated.
func SanitizeForSave(s models.SiteSettings) models.SiteSettings {
	s.NavLinks = FilterNavLinks(s.NavLinks)

	items := make([]models.PriceItem, len(s.MarketPrices.PriceItems))
	copy(items, s.MarketPrices.PriceItems)
	for i := range items {
		items[i].WorldPrice = ClampPrice(items[i].WorldPrice)
		if items[i].LocalPrice != nil {
			clamped := ClampPrice(*items[i].LocalPrice)
			items[i].LocalPrice = &clamped
		}
	}
	s.MarketPrices.PriceItems = items

	s.SectionVisibility.PricesButtonLabel = NormalizePricesButtonLabel(s.SectionVisibility.PricesButtonLabel)
	return s
}
