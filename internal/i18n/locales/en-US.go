package locales

// MessagesEnUS holds English (US) translations
var MessagesEnUS = map[string]string{
	// Common messages
	"success":        "Operation successful",
	"common.success": "Success",
	"error":          "Operation failed",
	"unauthorized":   "Unauthorized",
	"forbidden":      "Forbidden",
	"not_found":      "Not found",
	"bad_request":    "Bad request",
	"internal_error": "Internal error",
	"invalid_param":  "Invalid parameter",

	// Authentication related
	"auth.invalid_key":   "Invalid authorization key",
	"auth.key_required":  "Authorization key required",
	"auth.login_success": "Login successful",

	// Settings related
	"settings.saved":           "Settings saved successfully",
	"settings.invalid_payload": "Settings payload must be a JSON object",
	"settings.version_conflict": "Settings were changed by someone else, reload and try again",
	"settings.reset":           "Settings reset to defaults",

	// Export and import
	"export.success":        "Settings exported successfully",
	"import.success":        "Settings imported successfully",
	"import.invalid_format": "Import file is not a valid settings archive",
}
