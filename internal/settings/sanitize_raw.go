package settings

import (
	"encoding/json"

	"farmgate/internal/models"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// SanitizeRawDocument applies the save-time rules to a raw partial
// document without merging it: only sections present in the input are
// touched, everything else passes through verbatim. Sections that fail to
// decode are left as-is; the merge engine defaults them at read time.
func SanitizeRawDocument(doc []byte) []byte {
	if !gjson.ValidBytes(doc) || !gjson.ParseBytes(doc).IsObject() {
		return doc
	}

	if nav := gjson.GetBytes(doc, "navLinks"); nav.IsArray() {
		var links []models.NavLinkItem
		if err := json.Unmarshal([]byte(nav.Raw), &links); err == nil {
			if out, err := sjson.SetBytes(doc, "navLinks", FilterNavLinks(links)); err == nil {
				doc = out
			}
		}
	}

	if label := gjson.GetBytes(doc, "sectionVisibility.pricesButtonLabel"); label.Exists() && label.Type == gjson.String {
		if out, err := sjson.SetBytes(doc, "sectionVisibility.pricesButtonLabel", NormalizePricesButtonLabel(label.String())); err == nil {
			doc = out
		}
	}

	if items := gjson.GetBytes(doc, "marketPrices.priceItems"); items.IsArray() {
		var priceItems []models.PriceItem
		if err := json.Unmarshal([]byte(items.Raw), &priceItems); err == nil {
			for i := range priceItems {
				priceItems[i].WorldPrice = ClampPrice(priceItems[i].WorldPrice)
				if priceItems[i].LocalPrice != nil {
					clamped := ClampPrice(*priceItems[i].LocalPrice)
					priceItems[i].LocalPrice = &clamped
				}
			}
			if out, err := sjson.SetBytes(doc, "marketPrices.priceItems", priceItems); err == nil {
				doc = out
			}
		}
	}

	return doc
}
