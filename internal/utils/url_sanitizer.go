package utils

import (
	"net/url"
)

// sensitiveQueryParams are query parameters that must never reach the logs.
var sensitiveQueryParams = []string{"key", "token", "auth"}

// SanitizeURLForLog returns a string form of the URL safe for logging:
// userinfo is removed and sensitive query parameters are redacted.
func SanitizeURLForLog(u *url.URL) string {
	if u == nil {
		return ""
	}

	clean := *u
	clean.User = nil

	query := clean.Query()
	changed := false
	for _, param := range sensitiveQueryParams {
		if query.Has(param) {
			query.Set(param, "[REDACTED]")
			changed = true
		}
	}
	if changed {
		clean.RawQuery = query.Encode()
	}

	return clean.String()
}
