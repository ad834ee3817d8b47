package locales

// MessagesSwKE holds Swahili (Kenya) translations
var MessagesSwKE = map[string]string{
	// Common messages
	"success":        "Imefanikiwa",
	"common.success": "Imefanikiwa",
	"error":          "Imeshindikana",
	"unauthorized":   "Huna ruhusa",
	"forbidden":      "Imekatazwa",
	"not_found":      "Haipatikani",
	"bad_request":    "Ombi batili",
	"internal_error": "Hitilafu ya ndani",
	"invalid_param":  "Kigezo batili",

	// Authentication related
	"auth.invalid_key":   "Ufunguo wa idhini si sahihi",
	"auth.key_required":  "Ufunguo wa idhini unahitajika",
	"auth.login_success": "Umeingia kikamilifu",

	// Settings related
	"settings.saved":           "Mipangilio imehifadhiwa",
	"settings.invalid_payload": "Mipangilio lazima iwe kitu cha JSON",
	"settings.version_conflict": "Mipangilio ilibadilishwa na mtu mwingine, pakia upya kisha ujaribu tena",
	"settings.reset":           "Mipangilio imerejeshwa kwa chaguo-msingi",

	// Export and import
	"export.success":        "Mipangilio imehamishwa kikamilifu",
	"import.success":        "Mipangilio imeingizwa kikamilifu",
	"import.invalid_format": "Faili la kuingiza si kumbukumbu sahihi ya mipangilio",
}
