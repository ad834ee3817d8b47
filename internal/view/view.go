// Package view builds render-ready view models from a merged settings
// document. Builders are pure readers.
//
// Every builder carries its own field-level fallbacks, independent of the
// schema defaults. The merge engine already guarantees populated sections,
// but view models are also built in contexts that bypass it (template
// previews, tests), so a blank field degrades to a usable value here too.
package view

import (
	"fmt"
	"strings"

	"farmgate/internal/models"
)

// HeaderView is the storefront header.
type HeaderView struct {
	BrandName         string
	BrandMark         string
	SearchPlaceholder string
}

// Header builds the header view model.
func Header(s models.SiteSettings) HeaderView {
	return HeaderView{
		BrandName:         fallback(s.Header.BrandName, "FarmGate"),
		BrandMark:         fallback(s.Header.BrandMark, "FG"),
		SearchPlaceholder: fallback(s.Header.SearchPlaceholder, "Search the market"),
	}
}

// AnnouncementView is the promo bar above the header. Visible combines
// the section toggle with the bar's own enabled flag.
type AnnouncementView struct {
	Visible       bool
	PromoText     string
	Email         string
	Currency      string
	Language      string
	SecondaryText string
}

// Announcement builds the announcement bar view model.
func Announcement(s models.SiteSettings) AnnouncementView {
	return AnnouncementView{
		Visible:       s.SectionVisibility.AnnouncementBar && s.AnnouncementBar.Enabled,
		PromoText:     s.AnnouncementBar.PromoText,
		Email:         fallback(s.AnnouncementBar.Email, "hello@farmgate.example"),
		Currency:      fallback(s.AnnouncementBar.Currency, "KES"),
		Language:      fallback(s.AnnouncementBar.Language, "EN"),
		SecondaryText: s.AnnouncementBar.SecondaryText,
	}
}

// NavView is the main navigation.
type NavView struct {
	Links []models.NavLinkItem
}

// Nav builds the navigation view model. Entries with a blank label or
// path are not rendered; an empty result falls back to a single home
// link so the nav bar never disappears.
func Nav(s models.SiteSettings) NavView {
	links := make([]models.NavLinkItem, 0, len(s.NavLinks))
	for _, l := range s.NavLinks {
		if strings.TrimSpace(l.Label) == "" || strings.TrimSpace(l.Path) == "" {
			continue
		}
		links = append(links, l)
	}
	if len(links) == 0 {
		links = []models.NavLinkItem{{Path: "/", Label: "Home"}}
	}
	return NavView{Links: links}
}

// HeroView is the homepage hero carousel.
type HeroView struct {
	Visible    bool
	Slides     []models.HeroSlideItem
	IntervalMs int
}

// Hero builds the hero carousel view model.
func Hero(s models.SiteSettings) HeroView {
	slides := s.HeroSlides
	if len(slides) == 0 {
		slides = []models.HeroSlideItem{{
			ID:         1,
			SmallLabel: "Fresh from local farms",
			Title:      "Welcome to the market",
			Image:      "/images/hero/market-morning.jpg",
		}}
	}

	interval := s.HeroAutoSlideInterval
	if interval <= 0 {
		interval = 5000
	}

	return HeroView{
		Visible:    s.SectionVisibility.Hero,
		Slides:     slides,
		IntervalMs: interval,
	}
}

// FooterView is the storefront footer.
type FooterView struct {
	Tagline        string
	Description    string
	QuickLinks     []models.FooterQuickLink
	ContactEmail   string
	ContactPhone   string
	ContactAddress string
	BottomLine     string
}

// Footer builds the footer view model.
func Footer(s models.SiteSettings) FooterView {
	quickLinks := s.Footer.QuickLinks
	if len(quickLinks) == 0 {
		quickLinks = []models.FooterQuickLink{{Label: "Home", Path: "/"}}
	}

	return FooterView{
		Tagline:        fallback(s.Footer.Tagline, "Fresh from the gate"),
		Description:    s.Footer.Description,
		QuickLinks:     quickLinks,
		ContactEmail:   s.Footer.ContactEmail,
		ContactPhone:   s.Footer.ContactPhone,
		ContactAddress: s.Footer.ContactAddress,
		BottomLine:     fallback(s.Footer.BottomLine, "FarmGate"),
	}
}

// TogglesView exposes the section visibility switches and the prices
// button label.
type TogglesView struct {
	AnnouncementBar   bool
	CategoryNav       bool
	PricesButton      bool
	PricesButtonLabel string
	Hero              bool
	Features          bool
	Communities       bool
	SellerSection     bool
}

// Toggles builds the section visibility view model.
func Toggles(s models.SiteSettings) TogglesView {
	label := strings.TrimSpace(s.SectionVisibility.PricesButtonLabel)
	if label == "" {
		label = "PRICES"
	}

	return TogglesView{
		AnnouncementBar:   s.SectionVisibility.AnnouncementBar,
		CategoryNav:       s.SectionVisibility.CategoryNav,
		PricesButton:      s.SectionVisibility.PricesButton,
		PricesButtonLabel: label,
		Hero:              s.SectionVisibility.Hero,
		Features:          s.SectionVisibility.Features,
		Communities:       s.SectionVisibility.Communities,
		SellerSection:     s.SectionVisibility.SellerSection,
	}
}

// PriceRow is one formatted row of the market prices modal.
type PriceRow struct {
	Name         string
	UnitLabel    string
	LocalDisplay string
	WorldDisplay string
}

// PricesModalView is the market prices modal.
type PricesModalView struct {
	Title       string
	Subtitle    string
	Explanation string
	Currency    string
	Rows        []PriceRow
}

// PricesModal builds the market prices modal view model. A nil local
// price renders the item's empty message, falling back to "N/A".
func PricesModal(s models.SiteSettings) PricesModalView {
	currency := fallback(s.MarketPrices.Currency, "KES")

	rows := make([]PriceRow, 0, len(s.MarketPrices.PriceItems))
	for _, item := range s.MarketPrices.PriceItems {
		local := fallback(item.LocalEmptyMessage, "N/A")
		if item.LocalPrice != nil {
			local = formatPrice(currency, *item.LocalPrice)
		}

		world := formatPrice(currency, item.WorldPrice)
		if item.WorldReferenceLabel != "" {
			world = fmt.Sprintf("%s (%s)", world, item.WorldReferenceLabel)
		}

		rows = append(rows, PriceRow{
			Name:         item.Name,
			UnitLabel:    item.UnitLabel,
			LocalDisplay: local,
			WorldDisplay: world,
		})
	}

	return PricesModalView{
		Title:       fallback(s.MarketPrices.ModalTitle, "Market prices"),
		Subtitle:    s.MarketPrices.ModalSubtitle,
		Explanation: s.MarketPrices.ExplanationText,
		Currency:    currency,
		Rows:        rows,
	}
}

func formatPrice(currency string, v float64) string {
	return fmt.Sprintf("%s %.2f", currency, v)
}

func fallback(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
