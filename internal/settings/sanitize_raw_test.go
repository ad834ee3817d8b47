package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestSanitizeRawDocument_FiltersNavLinks(t *testing.T) {
	doc := []byte(`{"navLinks":[{"label":"New Link","path":"/x"},{"label":"","path":"/y"},{"label":"Home","path":"/"}],"header":{"brandName":"Acme"}}`)

	out := SanitizeRawDocument(doc)

	links := gjson.GetBytes(out, "navLinks").Array()
	require.Len(t, links, 1)
	assert.Equal(t, "Home", links[0].Get("label").String())

	// Untouched sections pass through verbatim.
	assert.Equal(t, "Acme", gjson.GetBytes(out, "header.brandName").String())
}

func TestSanitizeRawDocument_AbsentSectionsUntouched(t *testing.T) {
	doc := []byte(`{"header":{"brandName":"Acme"}}`)

	out := SanitizeRawDocument(doc)

	assert.False(t, gjson.GetBytes(out, "navLinks").Exists())
	assert.False(t, gjson.GetBytes(out, "sectionVisibility").Exists())
}

func TestSanitizeRawDocument_NormalizesPricesButtonLabel(t *testing.T) {
	doc := []byte(`{"sectionVisibility":{"pricesButton":true,"pricesButtonLabel":"   "}}`)

	out := SanitizeRawDocument(doc)

	assert.Equal(t, DefaultPricesButtonLabel, gjson.GetBytes(out, "sectionVisibility.pricesButtonLabel").String())
	assert.True(t, gjson.GetBytes(out, "sectionVisibility.pricesButton").Bool())
}

func TestSanitizeRawDocument_ClampsPrices(t *testing.T) {
	doc := []byte(`{"marketPrices":{"modalTitle":"Prices","priceItems":[{"id":"a","name":"Maize","unitLabel":"bag","localPrice":-5,"worldPrice":-1},{"id":"b","name":"Tea","unitLabel":"kg","localPrice":null,"worldPrice":2.5}]}}`)

	out := SanitizeRawDocument(doc)

	items := gjson.GetBytes(out, "marketPrices.priceItems").Array()
	require.Len(t, items, 2)
	assert.Equal(t, float64(0), items[0].Get("localPrice").Float())
	assert.Equal(t, float64(0), items[0].Get("worldPrice").Float())

	// An explicit null local price survives sanitization.
	assert.Equal(t, gjson.Null, items[1].Get("localPrice").Type)
	assert.Equal(t, 2.5, items[1].Get("worldPrice").Float())

	assert.Equal(t, "Prices", gjson.GetBytes(out, "marketPrices.modalTitle").String())
}

func TestSanitizeRawDocument_MalformedInputPassesThrough(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"array", `[1,2]`},
		{"invalid", `{"navLinks":`},
		{"wrong-typed navLinks", `{"navLinks":"nope"}`},
		{"wrong-typed entries", `{"navLinks":[42]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				SanitizeRawDocument([]byte(tt.doc))
			})
		})
	}
}
