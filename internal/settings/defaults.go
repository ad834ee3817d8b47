// Package settings holds the storefront settings schema defaults, the
// default-merging engine and the save-time validation rules.
package settings

import "farmgate/internal/models"

// DefaultHeroAutoSlideInterval is the hero carousel advance interval in
// milliseconds, used whenever the stored value is missing or non-numeric.
const DefaultHeroAutoSlideInterval = 5000

// DefaultPricesButtonLabel is used when the configured label is blank.
const DefaultPricesButtonLabel = "PRICES"

// Design tokens shared by the feature-card defaults. The admin panel offers
// these as presets; arbitrary CSS color/gradient strings are also accepted.
var featureGradients = map[string]string{
	"harvest": "linear-gradient(135deg, #7cb342 0%, #33691e 100%)",
	"soil":    "linear-gradient(135deg, #8d6e63 0%, #4e342e 100%)",
	"sun":     "linear-gradient(135deg, #ffb300 0%, #ef6c00 100%)",
	"water":   "linear-gradient(135deg, #4fc3f7 0%, #01579b 100%)",
}

// FeatureGradient returns a named design-token gradient, or the harvest
// gradient when the token is unknown.
func FeatureGradient(token string) string {
	if g, ok := featureGradients[token]; ok {
		return g
	}
	return featureGradients["harvest"]
}

// Defaults returns a structurally complete settings document. Every field is
// populated; the merge engine relies on that. Each call returns fresh slices
// so callers can mutate the result freely.
func Defaults() models.SiteSettings {
	return models.SiteSettings{
		HeroSlides: []models.HeroSlideItem{
			{
				ID:          1,
				SmallLabel:  "Fresh from local farms",
				Title:       "Taste the season, support your neighbours",
				Description: "Fruit, vegetables, grains and dairy brought to market by the growers themselves.",
				Image:       "/images/hero/market-morning.jpg",
				ButtonText:  "Shop the market",
				Link:        "/shop",
			},
			{
				ID:          2,
				SmallLabel:  "Community spotlight",
				Title:       "Meet the hands behind your food",
				Description: "Every seller on FarmGate is a local grower, herder or maker with a story.",
				Image:       "/images/hero/grower-portrait.jpg",
				ButtonText:  "Browse sellers",
				Link:        "/sellers",
			},
			{
				ID:          3,
				SmallLabel:  "Fair prices, daily",
				Title:       "Know what your harvest is worth",
				Description: "Daily local and world reference prices for the region's staple crops.",
				Image:       "/images/hero/price-board.jpg",
				ButtonText:  "See market prices",
				Link:        "/prices",
			},
		},
		HeroAutoSlideInterval: DefaultHeroAutoSlideInterval,
		Features: []models.FeatureItem{
			{
				ID:       "feature-farm-direct",
				IconID:   "sprout",
				Title:    "Farm direct",
				Subtitle: "No middlemen between grower and table",
				BgColor:  featureGradients["harvest"],
			},
			{
				ID:       "feature-same-day",
				IconID:   "truck",
				Title:    "Same-day pickup",
				Subtitle: "Reserve online, collect at the market gate",
				BgColor:  featureGradients["sun"],
			},
			{
				ID:       "feature-community",
				IconID:   "users",
				Title:    "Community owned",
				Subtitle: "Run by the growers' cooperative",
				BgColor:  featureGradients["soil"],
			},
			{
				ID:       "feature-fair-price",
				IconID:   "scale",
				Title:    "Fair prices",
				Subtitle: "Transparent daily price boards",
				BgColor:  featureGradients["water"],
			},
		},
		AnnouncementBar: models.AnnouncementBarConfig{
			Enabled:       true,
			PromoText:     "Market day every Saturday — fresh stock from 7am",
			Email:         "hello@farmgate.market",
			Currency:      "USD",
			Language:      "EN",
			SecondaryText: "",
		},
		Header: models.HeaderConfig{
			BrandName:         "FarmGate",
			BrandMark:         "FG",
			SearchPlaceholder: "Search produce, sellers, communities...",
		},
		Footer: models.FooterConfig{
			Tagline:     "Grown together.",
			Description: "FarmGate is a community marketplace connecting local growers with the people they feed.",
			QuickLinks: []models.FooterQuickLink{
				{Label: "Shop", Path: "/shop"},
				{Label: "Sellers", Path: "/sellers"},
				{Label: "Communities", Path: "/communities"},
				{Label: "About", Path: "/about"},
			},
			ContactEmail:   "hello@farmgate.market",
			ContactPhone:   "+1 (555) 014-7788",
			ContactAddress: "12 Market Lane, Greenfield",
			BottomLine:     "© FarmGate cooperative. All rights reserved.",
		},
		NavLinks: []models.NavLinkItem{
			{Path: "/", Label: "Home"},
			{Path: "/shop", Label: "Shop"},
			{Path: "/communities", Label: "Communities"},
			{Path: "/sellers", Label: "Sellers"},
		},
		SectionVisibility: models.SectionVisibility{
			AnnouncementBar:   true,
			CategoryNav:       true,
			PricesButton:      true,
			PricesButtonLabel: DefaultPricesButtonLabel,
			Hero:              true,
			Features:          true,
			Communities:       true,
			SellerSection:     true,
		},
		MarketPrices: models.MarketPricesConfig{
			ModalTitle:      "Today's market prices",
			ModalSubtitle:   "Local board and world reference, updated daily",
			ExplanationText: "Local prices are collected from the cooperative's morning board. World prices are indicative wholesale references and may differ from what buyers pay at the gate.",
			Currency:        "USD",
			PriceItems: []models.PriceItem{
				{
					ID:                  "price-maize",
					Name:                "Maize",
					UnitLabel:           "per 90kg bag",
					LocalPrice:          floatPtr(38),
					WorldPrice:          42.5,
					WorldReferenceLabel: "World wholesale",
				},
				{
					ID:                  "price-beans",
					Name:                "Beans",
					UnitLabel:           "per 90kg bag",
					LocalPrice:          floatPtr(95),
					WorldPrice:          104,
					WorldReferenceLabel: "World wholesale",
				},
				{
					ID:                "price-coffee",
					Name:              "Coffee (cherry)",
					UnitLabel:         "per kg",
					LocalPrice:        nil,
					WorldPrice:        2.3,
					LocalEmptyMessage: "No local auction this week",
				},
				{
					ID:                  "price-avocado",
					Name:                "Avocado",
					UnitLabel:           "per crate",
					LocalPrice:          floatPtr(14),
					WorldPrice:          18.75,
					WorldReferenceLabel: "Export reference",
				},
			},
		},
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
