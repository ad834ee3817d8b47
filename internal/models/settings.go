// Package models declares the settings document schema and persistence models.
package models

// HeroSlideItem is one slide of the homepage hero carousel.
// IDs are numeric and unique within the ordered sequence; new slides are
// assigned max(existing)+1 by the editor.
type HeroSlideItem struct {
	ID          int    `json:"id"`
	SmallLabel  string `json:"smallLabel"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ButtonText  string `json:"buttonText,omitempty"`
	Link        string `json:"link,omitempty"`
}

// FeatureItem is one entry of the homepage feature highlights strip.
type FeatureItem struct {
	ID       string `json:"id"`
	IconID   string `json:"iconId"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	BgColor  string `json:"bgColor"`
}

// AnnouncementBarConfig configures the thin promo bar above the header.
type AnnouncementBarConfig struct {
	Enabled       bool   `json:"enabled"`
	PromoText     string `json:"promoText"`
	Email         string `json:"email"`
	Currency      string `json:"currency"`
	Language      string `json:"language"`
	SecondaryText string `json:"secondaryText,omitempty"`
}

// HeaderConfig configures the storefront header.
type HeaderConfig struct {
	BrandName         string `json:"brandName"`
	BrandMark         string `json:"brandMark"`
	SearchPlaceholder string `json:"searchPlaceholder"`
}

// FooterQuickLink is a positional footer link; it has no identity beyond
// its index and is always replaced wholesale with its siblings.
type FooterQuickLink struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// FooterConfig configures the storefront footer.
type FooterConfig struct {
	Tagline        string            `json:"tagline"`
	Description    string            `json:"description"`
	QuickLinks     []FooterQuickLink `json:"quickLinks"`
	ContactEmail   string            `json:"contactEmail"`
	ContactPhone   string            `json:"contactPhone"`
	ContactAddress string            `json:"contactAddress"`
	BottomLine     string            `json:"bottomLine"`
}

// NavLinkItem is a positional navigation entry.
type NavLinkItem struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

// SectionVisibility toggles homepage sections on and off.
type SectionVisibility struct {
	AnnouncementBar   bool   `json:"announcementBar"`
	CategoryNav       bool   `json:"categoryNav"`
	PricesButton      bool   `json:"pricesButton"`
	PricesButtonLabel string `json:"pricesButtonLabel"`
	Hero              bool   `json:"hero"`
	Features          bool   `json:"features"`
	Communities       bool   `json:"communities"`
	SellerSection     bool   `json:"sellerSection"`
}

// PriceItem is one row of the market prices modal. LocalPrice is nullable:
// nil means "no local price available" and renders the localEmptyMessage.
type PriceItem struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	UnitLabel           string   `json:"unitLabel"`
	LocalPrice          *float64 `json:"localPrice"`
	WorldPrice          float64  `json:"worldPrice"`
	LocalEmptyMessage   string   `json:"localEmptyMessage,omitempty"`
	WorldReferenceLabel string   `json:"worldReferenceLabel,omitempty"`
}

// MarketPricesConfig configures the market prices informational modal.
type MarketPricesConfig struct {
	ModalTitle      string      `json:"modalTitle"`
	ModalSubtitle   string      `json:"modalSubtitle"`
	ExplanationText string      `json:"explanationText"`
	Currency        string      `json:"currency"`
	PriceItems      []PriceItem `json:"priceItems"`
}

// SiteSettings is the full settings document. A merged SiteSettings is
// always structurally complete; partial documents only exist as raw JSON
// maps before they pass through the merge engine.
type SiteSettings struct {
	HeroSlides            []HeroSlideItem       `json:"heroSlides"`
	HeroAutoSlideInterval int                   `json:"heroAutoSlideInterval"`
	Features              []FeatureItem         `json:"features"`
	AnnouncementBar       AnnouncementBarConfig `json:"announcementBar"`
	Header                HeaderConfig          `json:"header"`
	Footer                FooterConfig          `json:"footer"`
	NavLinks              []NavLinkItem         `json:"navLinks"`
	SectionVisibility     SectionVisibility     `json:"sectionVisibility"`
	MarketPrices          MarketPricesConfig    `json:"marketPrices"`
}
